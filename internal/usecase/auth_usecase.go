package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
	"talentbridge-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *token.Manager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *token.Manager) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (u *authUsecase) Register(ctx context.Context, email, password, fullName, companyName string) (*domain.AuthToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, apperror.BadRequest("Password must be at least 8 characters")
	}

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.BadRequest("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:          email,
		HashedPassword: string(hash),
		FullName:       fullName,
		Role:           domain.RoleRecruiter,
		IsActive:       true,
		IsVerified:     false,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if companyName != "" {
		user.CompanyName = &companyName
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	return u.issueToken(user)
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Incorrect email or password")
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Incorrect email or password")
	}

	if !user.IsActive {
		return nil, apperror.Forbidden("Account is deactivated")
	}

	return u.issueToken(user)
}

func (u *authUsecase) issueToken(user *domain.User) (*domain.AuthToken, error) {
	accessToken, err := u.tokens.Mint(token.Claims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthToken{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := u.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.CompanyName != nil {
		user.CompanyName = update.CompanyName
	}
	if update.AvatarURL != nil {
		user.AvatarURL = update.AvatarURL
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := u.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(oldPassword)); err != nil {
		return apperror.BadRequest("Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return apperror.BadRequest("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(err)
	}
	user.HashedPassword = string(hash)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (*domain.User, error) {
	return u.UpdateProfile(ctx, userID, domain.ProfileUpdate{AvatarURL: &avatarURL})
}
