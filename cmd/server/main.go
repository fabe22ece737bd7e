// Package main is the entry point for the Naturalize API server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/naturalize-app/api/internal/config"
	"github.com/naturalize-app/api/internal/database"
	"github.com/naturalize-app/api/internal/handler"
	"github.com/naturalize-app/api/internal/middleware"
	"github.com/naturalize-app/api/internal/pkg/response"
	"github.com/naturalize-app/api/internal/repository"
	"github.com/naturalize-app/api/internal/service"
	"github.com/naturalize-app/api/internal/storage"
)

func main() {
	// Setup structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Starting Naturalize API",
		slog.String("environment", cfg.Server.Environment),
		slog.Int("port", cfg.Server.Port),
	)

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed")

	// Connect to Redis
	redis, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	logger.Info("Connected to Redis")

	// Uploaded-image storage
	blobs, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload storage: %v", err)
	}

	// Wire repositories, services, handlers
	userRepo := repository.NewUserRepository(db.Pool())
	leaderboardRepo := repository.NewLeaderboardRepository(db.Pool())
	lessonRepo := repository.NewLessonRepository(db.Pool())
	questionRepo := repository.NewQuestionRepository(db.Pool())

	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(userRepo, leaderboardRepo, lessonRepo, questionRepo)
	avatarService := service.NewAvatarService(userRepo, blobs, cfg.Server.BaseURL)

	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService, avatarService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// Health check endpoints (no auth required)
	r.Get("/health", healthHandler(db, redis))
	r.Get("/ready", readyHandler(db, redis))
	r.Handle("/metrics", promhttp.Handler())

	// Uploaded profile images
	fileServer := http.FileServer(http.Dir(blobs.Dir()))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(redis, middleware.DefaultRateLimitConfig()))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			response.OK(w, map[string]string{
				"name":    "Naturalize API",
				"version": "1.0.0",
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth.JWTSecret))

			profileHandler.RegisterRoutes(r)
			userHandler.RegisterRoutes(r)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", slog.String("signal", sig.String()))

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// healthHandler reports liveness.
func healthHandler(db *database.Postgres, redis *database.Redis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	}
}

// readyHandler reports readiness of the backing stores.
func readyHandler(db *database.Postgres, redis *database.Redis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{
			"postgres": "ok",
			"redis":    "ok",
		}
		healthy := true

		if err := db.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		}
		if err := redis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		response.JSON(w, status, checks)
	}
}
