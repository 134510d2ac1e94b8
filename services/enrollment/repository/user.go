package repository

import (
	"context"
	"errors"
	"fmt"

	"enrollment/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

func (ur *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("LOWER(email) = ?", domain.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: "user", Key: email}
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

// CreateUser stores an already hashed user. A duplicate email becomes a
// ValidationError.
func (ur *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)

	var count int64
	if err := ur.db.WithContext(ctx).Model(&domain.User{}).Where("LOWER(email) = ?", user.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("could not check email: %w", err)
	}
	if count > 0 {
		return domain.NewValidationError(fmt.Sprintf("email %s already exists", user.Email), "email")
	}

	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError(fmt.Sprintf("email %s already exists", user.Email), "email")
		}
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
