package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talentbridge-backend/internal/delivery/http/middleware"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, email, password, fullName, companyName string) (*domain.AuthToken, error) {
	args := m.Called(ctx, email, password, fullName, companyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthToken), args.Error(1)
}
func (m *MockAuthUsecase) Login(ctx context.Context, email, password string) (*domain.AuthToken, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthToken), args.Error(1)
}
func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUsecase) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}
func (m *MockAuthUsecase) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (*domain.User, error) {
	args := m.Called(ctx, userID, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupAuthRouter(tokens *token.Manager, authUC domain.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(tokens, authUC), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(string(domain.KeyUserID))})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)

	t.Run("Should reject a missing Authorization header", func(t *testing.T) {
		r := setupAuthRouter(tokens, new(MockAuthUsecase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("Should reject a garbage token", func(t *testing.T) {
		r := setupAuthRouter(tokens, new(MockAuthUsecase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := token.NewManager("other-secret", time.Hour)
		forged, err := other.Mint(token.Claims{UserID: 1})
		assert.NoError(t, err)

		r := setupAuthRouter(tokens, new(MockAuthUsecase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject a deactivated user", func(t *testing.T) {
		authUC := new(MockAuthUsecase)
		authUC.On("GetCurrentUser", mock.Anything, int64(5)).Return(&domain.User{ID: 5, IsActive: false}, nil)

		valid, err := tokens.Mint(token.Claims{UserID: 5})
		assert.NoError(t, err)

		r := setupAuthRouter(tokens, authUC)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+valid)

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Account is deactivated")
	})

	t.Run("Should pass the user id to the handler", func(t *testing.T) {
		authUC := new(MockAuthUsecase)
		authUC.On("GetCurrentUser", mock.Anything, int64(5)).Return(&domain.User{ID: 5, IsActive: true}, nil)

		valid, err := tokens.Mint(token.Claims{UserID: 5})
		assert.NoError(t, err)

		r := setupAuthRouter(tokens, authUC)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+valid)

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":5`)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should generate an id when none is supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		r.ServeHTTP(w, req)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Should honor an upstream id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "trace-abc-123")

		r.ServeHTTP(w, req)
		assert.Equal(t, "trace-abc-123", w.Header().Get("X-Request-ID"))
	})
}
