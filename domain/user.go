package domain

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin  = 1
	RoleParent = 2
)

var roleNames = map[int]string{
	RoleAdmin:  "admin",
	RoleParent: "parent",
}

// RoleName maps a role id to the name used in tokens and route guards.
func RoleName(roleID int) string {
	if n, ok := roleNames[roleID]; ok {
		return n
	}
	return "unknown"
}

type User struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement" json:"userid"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID    int       `gorm:"not null;default:2" json:"roleid"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

type LoginRequest struct {
	Email    string `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Password string `json:"password" valid:"required~Password is required"`
}

type SignupRequest struct {
	Email    string `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Password string `json:"password" valid:"required~Password is required,length(8|72)~Password must be 8 to 72 characters"`
}

type SafeUser struct {
	UserID uint   `json:"userid"`
	Email  string `json:"email"`
	RoleID int    `json:"roleid"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    SafeUser `json:"user"`
	Token   string   `json:"token"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token belongs to an admin account.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleName(RoleAdmin)
}

type UserRepo interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}

type AuthUseCase interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Signup(ctx context.Context, req *SignupRequest) (*SafeUser, error)
}
