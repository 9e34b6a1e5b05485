package v1

import (
	"net/http"
	"time"

	"talentbridge-backend/config"
	"talentbridge-backend/internal/delivery/http/middleware"
	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/redis"
	"talentbridge-backend/pkg/storage"
	"talentbridge-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// rfc3339 validates request timestamp strings before parsing
		v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(time.RFC3339, fl.Field().String())
			return err == nil
		})
	}
}

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	CandidateUC   domain.CandidateUsecase
	ApplicationUC domain.ApplicationUsecase
	ScreeningUC   domain.ScreeningUsecase
	DashboardUC   domain.DashboardUsecase
	SettingsUC    domain.SettingsUsecase
	PublicUC      domain.PublicUsecase
	Tokens        *token.Manager
	Files         storage.Storage
	DB            *pgxpool.Pool
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	api := r.Group("/api")

	// Service info
	api.GET("", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "TalentBridge API", gin.H{
			"name":    "TalentBridge",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":         "/api/auth",
				"jobs":         "/api/jobs",
				"candidates":   "/api/candidates",
				"applications": "/api/applications",
				"screenings":   "/api/screenings",
				"dashboard":    "/api/dashboard",
				"public":       "/api/public",
			},
		})
	})

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status := gin.H{"database": "ok"}
		code := http.StatusOK
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
		if redis.Client() != nil {
			status["redis"] = "ok"
			if err := redis.HealthCheck(c.Request.Context()); err != nil {
				status["redis"] = "unreachable"
			}
		}
		if code == http.StatusOK {
			response.Success(c, code, "System operational", status)
		} else {
			response.Error(c, code, "System degraded", status)
		}
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Login gets its own stricter limit on top of the global one
	loginLimit := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	// Public routes
	NewPublicHandler(api, deps.PublicUC)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewJobHandler(protected, deps.JobUC)
		NewCandidateHandler(protected, deps.CandidateUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewScreeningHandler(protected, deps.ScreeningUC)
		NewDashboardHandler(protected, deps.DashboardUC)
		NewSettingsHandler(protected, deps.SettingsUC)
	}

	NewAuthHandler(api, protected, deps.AuthUC, deps.Files, loginLimit)

	return r
}
