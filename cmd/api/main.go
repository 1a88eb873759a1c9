package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/eventboard/backend/docs"
	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/config"
	"github.com/eventboard/backend/internal/docstore"
	"github.com/eventboard/backend/internal/handlers"
	"github.com/eventboard/backend/internal/logger"
	loggerMiddleware "github.com/eventboard/backend/internal/logger/middleware"
	"github.com/eventboard/backend/internal/middlewares"
	"github.com/eventboard/backend/internal/notify"
	"github.com/eventboard/backend/internal/repositories"
	"github.com/eventboard/backend/internal/services"
	"github.com/eventboard/backend/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Eventboard API
// @version 1.0
// @description API for the event listing application: session-based auth and the shared event grid.

// @host localhost:8080
// @BasePath /api/v1
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

	logger.Logger.Info("Starting Eventboard API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	// Initialize session token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.Session.Secret, cfg.Session.TTL)

	// Initialize stores and repositories
	sessionStore := session.NewStore(rdb, cfg.Session.TTL, logger.Logger)
	visitStore := session.NewVisitStore(rdb, logger.Logger)
	publisher := notify.NewPublisher(rdb, logger.Logger)
	documents := docstore.New(db, logger.Logger)
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	eventRepo := repositories.NewEventRepository(documents, publisher, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionStore, tokenGenerator, logger.Logger)
	eventService := services.NewEventService(eventRepo, visitStore, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session.TTL, cfg.Session.SecureCookie, logger.Logger)
	profileHandler := handlers.NewProfileHandler(authService, logger.Logger)
	eventHandler := handlers.NewEventHandler(eventService, logger.Logger)

	// Initialize session middleware
	sessionMiddleware := auth.SessionMiddleware(tokenGenerator, sessionStore)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB
	r.Use(sessionMiddleware)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes: signup/login and the event grid; event mutations
		// are admin-gated inside RegisterRoutes
		authHandler.RegisterRoutes(r)
		eventHandler.RegisterRoutes(r)
		// Profile routes require a session
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			profileHandler.RegisterRoutes(r)
		})
	})

	// Schedule the visit marker janitor
	janitor := services.NewJanitor(eventRepo, visitStore, logger.Logger)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if err := janitor.Run(context.Background()); err != nil {
			logger.Logger.Error("janitor run failed", zap.Error(err))
		}
	}); err != nil {
		logger.Logger.Fatal("Failed to schedule janitor", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

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

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
