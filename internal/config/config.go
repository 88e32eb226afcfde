package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server struct {
		Host         string
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	Store struct {
		Path string
	}
	Scheduler struct {
		ScanPeriod     time.Duration
		ScanWindow     time.Duration
		AutosavePeriod time.Duration
	}
	Redis struct {
		Addr    string
		Channel string
		DB      int
	}
	LogLevel string
}

func Load() *Config {
	cfg := &Config{}

	// Server configuration
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", "10s")
	cfg.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", "10s")
	cfg.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s")

	// Store configuration
	cfg.Store.Path = getEnv("STORE_PATH", "./data/agenda.db")

	// Scheduler configuration
	cfg.Scheduler.ScanPeriod = getEnvAsDuration("NOTIFY_SCAN_PERIOD", "30s")
	cfg.Scheduler.ScanWindow = getEnvAsDuration("NOTIFY_WINDOW", "5m")
	cfg.Scheduler.AutosavePeriod = getEnvAsDuration("AUTOSAVE_PERIOD", "5m")

	// Redis delivery (optional; empty addr keeps reminders on the log)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Channel = getEnv("REDIS_CHANNEL", "agenda:reminders")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	val := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(val)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsInt(key string, defaultValue int) int {
	val := getEnv(key, strconv.Itoa(defaultValue))
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}
