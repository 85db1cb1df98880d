package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bencare/bencare/internal/adminview"
	"github.com/bencare/bencare/internal/api/router"
	"github.com/bencare/bencare/internal/appointments"
	appconfig "github.com/bencare/bencare/internal/config"
	"github.com/bencare/bencare/internal/diagnostics"
	"github.com/bencare/bencare/internal/notify"
	"github.com/bencare/bencare/internal/observability/metrics"
	"github.com/bencare/bencare/internal/patients"
	"github.com/bencare/bencare/internal/users"
	"github.com/bencare/bencare/pkg/logging"
)

func main() {
	// Load .env in development; ignored when the file is absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting bencare API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := users.NewPostgresRepository(pool)
	patientRepo := patients.NewPostgresRepository(pool)
	apptRepo := appointments.NewPostgresRepository(pool)

	// Admin view invalidation: redis-backed when configured, in-process
	// otherwise.
	var invalidator adminview.Invalidator = adminview.NewMemoryInvalidator()
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		defer func() { _ = redisClient.Close() }()
		invalidator = adminview.NewRedisInvalidator(redisClient, logger)
	}

	registry := prometheus.NewRegistry()
	apptMetrics := metrics.NewAppointmentMetrics(registry)

	smsSender := notify.NewStubSMSSender(logger)
	apptService := appointments.NewService(apptRepo, smsSender, invalidator, apptMetrics, logger, cfg.SMSFromName)

	// Initialize handlers
	usersHandler := users.NewHandler(userRepo, logger)
	patientsHandler := patients.NewHandler(patientRepo, logger)
	apptHandler := appointments.NewHandler(apptService, logger)
	checker := diagnostics.NewChecker(pool, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		UsersHandler:        usersHandler,
		PatientsHandler:     patientsHandler,
		AppointmentsHandler: apptHandler,
		Checker:             checker,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
