package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/config"
	"github.com/ArseniiKunilovskii/reminder/internal/notify"
	"github.com/ArseniiKunilovskii/reminder/internal/persistence"
	"github.com/ArseniiKunilovskii/reminder/internal/scheduler"
	"github.com/ArseniiKunilovskii/reminder/internal/server"
	"github.com/ArseniiKunilovskii/reminder/internal/service"
	"github.com/ArseniiKunilovskii/reminder/internal/store"
)

func main() {
	// Optional .env file for local runs
	_ = godotenv.Load()

	// Initialize logger with console writer for better formatting
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().
		Timestamp().
		Logger()

	cfg := config.Load()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zerolog.DefaultContextLogger = &logger

	// Persistence
	persist, err := persistence.New(cfg.Store.Path, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("Failed to open agenda database")
	}
	defer persist.Close()

	// Event store and facade
	eventStore := store.New(logger)
	agenda := service.New(eventStore, persist, logger)

	// Populate from disk. A decode failure keeps the empty store and is
	// surfaced loudly instead of silently wiping the file's data.
	if err := agenda.Load(); err != nil {
		logger.Error().Err(err).Msg("Starting with empty store; saved data left on disk")
	}

	// Reminder delivery collaborator
	var notifier notify.Notifier
	if cfg.Redis.Addr != "" {
		redisNotifier, err := notify.NewRedisNotifier(cfg.Redis.Addr, cfg.Redis.Channel, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to log reminders")
			notifier = notify.NewLogNotifier(logger)
		} else {
			defer redisNotifier.Close()
			notifier = redisNotifier
		}
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	// Background schedulers
	notifications := scheduler.NewNotificationScheduler(
		eventStore, notifier, cfg.Scheduler.ScanPeriod, cfg.Scheduler.ScanWindow, logger)
	if err := notifications.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start notification scheduler")
	}

	autosave := scheduler.NewAutosaveScheduler(agenda.Save, cfg.Scheduler.AutosavePeriod, logger)
	if err := autosave.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start autosave scheduler")
	}

	// HTTP facade
	srv := server.New(cfg.Server.Host+":"+cfg.Server.Port, agenda, &logger)
	srv.Server.ReadTimeout = cfg.Server.ReadTimeout
	srv.Server.WriteTimeout = cfg.Server.WriteTimeout
	srv.Server.IdleTimeout = cfg.Server.IdleTimeout

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop both schedulers, letting in-flight ticks finish, then flush
	// the store one last time.
	notifications.Stop(ctx)
	autosave.Stop(ctx)
	if err := agenda.Save(); err != nil {
		logger.Error().Err(err).Msg("Final save failed")
	}

	logger.Info().Msg("Stopped")
}
