// Package main runs the exercise tracker HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "github.com/R3E-Network/exercise_tracker/internal/app"
	"github.com/R3E-Network/exercise_tracker/internal/app/httpapi"
	"github.com/R3E-Network/exercise_tracker/internal/app/system"
	"github.com/R3E-Network/exercise_tracker/internal/config"
	"github.com/R3E-Network/exercise_tracker/internal/middleware"
	"github.com/R3E-Network/exercise_tracker/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default "+config.DefaultPath+" when present)")
	flag.Parse()

	path := *configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.NewDefault("main").WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New("exercise-tracker", logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if path != "" {
		log.WithField("config", path).Info("configuration loaded")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(app.Stores{}, log.Named("app"))
	if err != nil {
		return err
	}

	audit, err := httpapi.NewAuditLog(cfg.Audit.Capacity, cfg.Audit.Path)
	if err != nil {
		return err
	}
	defer audit.Close()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log.Named("ratelimit"))
		scheduler := system.NewScheduler(log.Named("scheduler"))
		if err := limiter.ScheduleCleanup(scheduler, cfg.RateLimit.CleanupSchedule, cfg.RateLimit.IdleTTL); err != nil {
			return err
		}
		if err := application.Attach(scheduler); err != nil {
			return err
		}
	}

	if err := application.Start(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: httpapi.NewHandler(application, httpapi.Options{
			Logger:      log.Named("http"),
			Audit:       audit,
			CORSOrigins: cfg.CORS.Origins(),
			RateLimiter: limiter,
			StaticDir:   cfg.Static.Dir,
			IndexFile:   cfg.Static.Index,
		}),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("Your app is listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		_ = application.Stop(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	return application.Stop(shutdownCtx)
}
