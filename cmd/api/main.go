package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentbridge-backend/config"
	_ "talentbridge-backend/docs" // Important for Swagger
	v1 "talentbridge-backend/internal/delivery/http/v1"
	"talentbridge-backend/internal/repository/postgres"
	"talentbridge-backend/internal/usecase"
	"talentbridge-backend/pkg/database"
	"talentbridge-backend/pkg/email"
	"talentbridge-backend/pkg/logger"
	"talentbridge-backend/pkg/redis"
	"talentbridge-backend/pkg/storage"
	"talentbridge-backend/pkg/token"
)

// @title           TalentBridge API
// @version         1.0
// @description     Recruitment tracking backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talentbridge backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiting falls back to in-memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup File Storage (MinIO when configured, local disk otherwise)
	var files storage.Storage
	if cfg.MinioEndpoint != "" {
		files, err = storage.NewMinioStorage(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			logger.Log.Error("Failed to connect to MinIO", "error", err)
			os.Exit(1)
		}
	} else {
		files, err = storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			logger.Log.Error("Failed to prepare upload directory", "error", err)
			os.Exit(1)
		}
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - screening invites will not be sent")
	}

	// 7. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	screeningRepo := postgres.NewScreeningRepository(dbPool)
	dashboardRepo := postgres.NewDashboardRepository(dbPool)
	settingRepo := postgres.NewSettingRepository(dbPool)
	activityRepo := postgres.NewActivityRepository(dbPool)

	// 8. Setup UseCases
	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMins)*time.Minute)
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	jobUC := usecase.NewJobUsecase(jobRepo)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, applicationRepo, files)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, candidateRepo, jobRepo, screeningRepo, activityRepo, emailService)
	screeningUC := usecase.NewScreeningUsecase(screeningRepo, applicationRepo, emailService)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, activityRepo)
	settingsUC := usecase.NewSettingsUsecase(settingRepo)
	publicUC := usecase.NewPublicUsecase(jobRepo, candidateRepo, applicationRepo, screeningRepo, activityRepo, settingsUC, files, emailService)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		CandidateUC:   candidateUC,
		ApplicationUC: applicationUC,
		ScreeningUC:   screeningUC,
		DashboardUC:   dashboardUC,
		SettingsUC:    settingsUC,
		PublicUC:      publicUC,
		Tokens:        tokens,
		Files:         files,
		DB:            dbPool,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
