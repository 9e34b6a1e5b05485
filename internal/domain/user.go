package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleAdmin         = "admin"
	RoleRecruiter     = "recruiter"
	RoleHiringManager = "hiring_manager"
)

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	CompanyName    *string   `json:"company_name,omitempty"`
	Role           string    `json:"role"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AuthToken is the login/register response payload
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// ProfileUpdate carries the optional profile fields; nil means "leave as is"
type ProfileUpdate struct {
	FullName    *string `json:"full_name"`
	CompanyName *string `json:"company_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	Register(ctx context.Context, email, password, fullName, companyName string) (*AuthToken, error)
	Login(ctx context.Context, email, password string) (*AuthToken, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (*User, error)
}
