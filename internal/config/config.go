package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "drivemap/libs/config"
)

// Config defines drivemap service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"DRIVEMAP_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"DRIVEMAP_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"DRIVEMAP_REDIS_ADDR"`
		Password string `yaml:"password" env:"DRIVEMAP_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Source struct {
		Path      string `yaml:"path" env:"DRIVEMAP_SOURCE_PATH"`
		BatchSize int    `yaml:"batch_size" env:"DRIVEMAP_SOURCE_BATCH_SIZE"`
		// PaceMs spaces out batches so the store and subscribers are not
		// flooded at file-read speed. 0 disables pacing.
		PaceMs int `yaml:"pace_ms" env:"DRIVEMAP_SOURCE_PACE_MS"`
	} `yaml:"source"`
	Stream struct {
		WriteTimeoutMs int `yaml:"write_timeout_ms" env:"DRIVEMAP_STREAM_WRITE_TIMEOUT_MS"`
		SendBuffer     int `yaml:"send_buffer" env:"DRIVEMAP_STREAM_SEND_BUFFER"`
	} `yaml:"stream"`
}

// Load configuration using shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Source.BatchSize = 100
	cfg.Source.PaceMs = 1000
	cfg.Stream.WriteTimeoutMs = 10000
	cfg.Stream.SendBuffer = 16

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Source.Path) == "" {
		return nil, errors.New("config: source path required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// Pace returns the ingestion pacing interval.
func (c *Config) Pace() time.Duration {
	return time.Duration(c.Source.PaceMs) * time.Millisecond
}

// WriteTimeout returns the per-subscriber delivery timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Stream.WriteTimeoutMs) * time.Millisecond
}
