package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enrollment/domain"
	"enrollment/middleware"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authUC struct {
	userRepo domain.UserRepo
	TimeOut  time.Duration
}

func NewAuthUseCase(repo domain.UserRepo, to time.Duration) domain.AuthUseCase {
	return &authUC{
		userRepo: repo,
		TimeOut:  to,
	}
}

func (auc *authUC) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	user, err := auc.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("could not sign token: %w", err)
	}

	return &domain.LoginResponse{
		Success: true,
		User: domain.SafeUser{
			UserID: user.UserID,
			Email:  user.Email,
			RoleID: user.RoleID,
		},
		Token: token,
	}, nil
}

// Signup creates a parent account.
func (auc *authUC) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.SafeUser, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := domain.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		RoleID:   domain.RoleParent,
	}
	if err := auc.userRepo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	return &domain.SafeUser{
		UserID: user.UserID,
		Email:  user.Email,
		RoleID: user.RoleID,
	}, nil
}
