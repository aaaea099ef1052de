package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Save backends.
const (
	BackendLocal  = "local"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Environment   string        `env:"ENVIRONMENT"     envDefault:"development"`
	LogLevelName  string        `env:"LOG_LEVEL"       envDefault:"info"`
	DataDir       string        `env:"DATA_DIR"        envDefault:"./assets"`
	ChapterPath   string        `env:"CHAPTER_PATH"    envDefault:"advscene/scenariochapter/config.chapter.json"`
	SaveBackend   string        `env:"SAVE_BACKEND"    envDefault:"local"`
	RedisURL      string        `env:"REDIS_URL"       envDefault:"redis://localhost:6379/0"`
	SaveTTL       time.Duration `env:"SAVE_TTL"        envDefault:"0s"`
	SettingsFile  string        `env:"SETTINGS_FILE"   envDefault:"player.yaml"`
	PlayerLogFile string        `env:"PLAYER_LOG_FILE" envDefault:"player.log"`

	LogLevel slog.Level
}

// Load reads the process configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	cfg.SaveBackend = strings.ToLower(cfg.SaveBackend)

	switch cfg.SaveBackend {
	case BackendLocal, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown SAVE_BACKEND %q", cfg.SaveBackend)
	}
	if cfg.SaveTTL < 0 {
		return nil, fmt.Errorf("SAVE_TTL must not be negative, got %s", cfg.SaveTTL)
	}
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
