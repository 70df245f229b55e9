package config

import (
	"fmt"
	"time"

	"github.com/bdfdm25/task-manager/internal/utils"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or bare number = seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

// SetValue implements cleanenv.Setter.
func (d *durationSeconds) SetValue(data string) error {
	v, err := utils.ParseDurationEnv(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	PG   PGConfig
	JWT  JWTConfig
	Log  LogConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	// Value: "10s", "5m" or a bare number of seconds (e.g. 10).
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type PGConfig struct {
	DSN string `env:"PG_DSN" env-required:"true"`
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET" env-required:"true"`
	// TTL for issued access tokens. Value: "2h", "30m" or seconds.
	TTL durationSeconds `env:"JWT_TTL" env-default:"2h"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
	// File enables rotated file output when set; empty means stderr only.
	File       string `env:"LOG_FILE" env-default:""`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" env-default:"28"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.JWT.TTL.Duration() <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive")
	}
	return cfg, nil
}
