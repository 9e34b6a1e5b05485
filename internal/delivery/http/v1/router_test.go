package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talentbridge-backend/config"
	v1 "talentbridge-backend/internal/delivery/http/v1"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		Tokens: token.NewManager("test-secret", time.Hour),
		Config: &config.Config{
			RateLimitWindowSeconds:   60,
			RateLimitLoginThreshold:  100,
			RateLimitGlobalThreshold: 10000,
		},
	})
}

func TestServiceInfoRoute(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "endpoints")
	assert.Contains(t, w.Body.String(), "/api/jobs")
}

func TestRouteSurface(t *testing.T) {
	r := newTestRouter()

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/auth/me",
		"PUT /api/auth/me",
		"POST /api/auth/me/avatar",
		"POST /api/auth/change-password",
		"GET /api/public/jobs",
		"POST /api/public/apply",
		"GET /api/public/status",
		"POST /api/applications/bulk-invite-screening",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

// MockApplicationUsecase stubs domain.ApplicationUsecase for handler tests
type MockApplicationUsecase struct {
	mock.Mock
}

func (m *MockApplicationUsecase) CreateApplication(ctx context.Context, create domain.ApplicationCreate) (*domain.Application, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) ListApplications(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) UpdateApplication(ctx context.Context, id int64, update domain.ApplicationUpdate) (*domain.Application, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) DeleteApplication(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationUsecase) Shortlist(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) Reject(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) BulkInviteScreening(ctx context.Context, ids []int64) (*domain.BulkInviteResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkInviteResult), args.Error(1)
}

func (m *MockApplicationUsecase) GetApplicationStats(ctx context.Context, jobID int64) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}

func TestDeleteApplicationReturnsNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uc := new(MockApplicationUsecase)
	uc.On("DeleteApplication", mock.Anything, int64(5)).Return(nil)

	r := gin.New()
	group := r.Group("/api")
	v1.NewApplicationHandler(group, uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/applications/5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	uc.AssertExpectations(t)
}
