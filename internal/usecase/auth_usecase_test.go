package usecase_test

import (
	"context"
	"testing"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/internal/usecase"
	"talentbridge-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(userRepo *MockUserRepo) domain.AuthUsecase {
	return usecase.NewAuthUsecase(userRepo, token.NewManager("test-secret", time.Hour))
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	t.Run("Should reject short passwords", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo))
		_, err := uc.Register(context.Background(), "a@b.com", "short", "A B", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("Should reject duplicate emails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 1}, nil)

		_, err := uc.Register(context.Background(), "taken@example.com", "password123", "A B", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email already registered")
	})

	t.Run("Should create a recruiter and issue a token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = 7
			assert.Equal(t, domain.RoleRecruiter, u.Role)
			assert.True(t, u.IsActive)
			assert.False(t, u.IsVerified)
		})

		result, err := uc.Register(context.Background(), "New@Example.com ", "password123", "New User", "Acme")
		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "bearer", result.TokenType)
		assert.Equal(t, "new@example.com", result.User.Email)
		userRepo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(context.Background(), "ghost@example.com", "whatever1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect email or password")
	})

	t.Run("Should reject a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
			ID: 1, Email: "user@example.com", HashedPassword: hashPassword(t, "correct-horse"), IsActive: true,
		}, nil)

		_, err := uc.Login(context.Background(), "user@example.com", "wrong-horse")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect email or password")
	})

	t.Run("Should reject a deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
			ID: 1, Email: "user@example.com", HashedPassword: hashPassword(t, "correct-horse"), IsActive: false,
		}, nil)

		_, err := uc.Login(context.Background(), "user@example.com", "correct-horse")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Account is deactivated")
	})

	t.Run("Should issue a verifiable token on success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := token.NewManager("test-secret", time.Hour)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
			ID: 12, Email: "user@example.com", Role: domain.RoleRecruiter,
			HashedPassword: hashPassword(t, "correct-horse"), IsActive: true,
		}, nil)

		result, err := uc.Login(context.Background(), "User@Example.com", "correct-horse")
		assert.NoError(t, err)

		claims, err := tokens.Verify(result.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, int64(12), claims.UserID)
		assert.Equal(t, domain.RoleRecruiter, claims.Role)
	})
}

func TestChangePassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUsecase(userRepo)

	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{
		ID: 1, HashedPassword: hashPassword(t, "old-password"),
	}, nil)

	t.Run("Should reject a wrong current password", func(t *testing.T) {
		err := uc.ChangePassword(context.Background(), 1, "not-the-old-one", "new-password")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("Should reject a short new password", func(t *testing.T) {
		err := uc.ChangePassword(context.Background(), 1, "old-password", "tiny")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("Should rehash and store the new password", func(t *testing.T) {
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("new-password")))
		})
		err := uc.ChangePassword(context.Background(), 1, "old-password", "new-password")
		assert.NoError(t, err)
	})
}
