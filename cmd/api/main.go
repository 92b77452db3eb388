package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/edupath/backend/docs"
	"github.com/edupath/backend/internal/auth/middleware"
	"github.com/edupath/backend/internal/auth/service"
	"github.com/edupath/backend/internal/config"
	"github.com/edupath/backend/internal/database"
	"github.com/edupath/backend/internal/handlers"
	"github.com/edupath/backend/internal/logger"
	loggerMiddleware "github.com/edupath/backend/internal/logger/middleware"
	"github.com/edupath/backend/internal/middlewares"
	"github.com/edupath/backend/internal/repositories"
	"github.com/edupath/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title EduPath Learning API
// @version 1.0
// @description API for course progress tracking, enrollments and quizzes
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
// @securityDefinitions.apikey ServiceKeyAuth
// @in header
// @name X-API-Key
// @description API key for service-to-service maintenance endpoints
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting EduPath API")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	quizRepo := repositories.NewQuizRepository(db)
	quizResultRepo := repositories.NewQuizResultRepository(db)

	// Initialize services
	progressService := services.NewProgressService(txManager, courseRepo, lessonRepo, enrollmentRepo, progressRepo, logger.Logger)
	lessonService := services.NewLessonService(lessonRepo, enrollmentRepo, progressRepo, logger.Logger)
	enrollmentService := services.NewEnrollmentService(courseRepo, enrollmentRepo, logger.Logger)
	quizService := services.NewQuizService(txManager, quizRepo, quizResultRepo, logger.Logger)
	quizAdminService := services.NewQuizAdminService(txManager, courseRepo, lessonRepo, quizRepo, quizResultRepo, logger.Logger)

	// Initialize handlers
	progressHandler := handlers.NewProgressHandler(progressService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, progressService, logger.Logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, logger.Logger)
	quizHandler := handlers.NewQuizHandler(quizService, quizAdminService, logger.Logger)
	maintenanceHandler := handlers.NewMaintenanceHandler(progressService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	r.Use(middlewares.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize, logger.Logger))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		progressHandler.RegisterRoutes(r, authMiddleware)
		lessonHandler.RegisterRoutes(r, authMiddleware)
		enrollmentHandler.RegisterRoutes(r, authMiddleware)
		quizHandler.RegisterRoutes(r, authMiddleware)
		maintenanceHandler.RegisterRoutes(r, apiKeyMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
