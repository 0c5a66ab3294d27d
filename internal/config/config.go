// Package config loads server settings from the environment, an optional
// .env file and command-line flags, in increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds server configuration.
type Config struct {
	Port int `env:"ROICOMPAGNIE_PORT" envDefault:"8080"`

	// PublicURL is the base URL encoded in spectator QR codes. Empty means
	// the request host is used.
	PublicURL string `env:"ROICOMPAGNIE_PUBLIC_URL"`

	Store         string `env:"ROICOMPAGNIE_STORE" envDefault:"sqlite"`
	SQLitePath    string `env:"ROICOMPAGNIE_SQLITE_PATH" envDefault:"roicompagnie.db"`
	RedisAddr     string `env:"ROICOMPAGNIE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"ROICOMPAGNIE_REDIS_PASSWORD"`
	RedisDB       int    `env:"ROICOMPAGNIE_REDIS_DB" envDefault:"0"`

	LogLevel  string `env:"ROICOMPAGNIE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ROICOMPAGNIE_LOG_FORMAT" envDefault:"text"`

	// Seed fixes match randomness; 0 draws a fresh seed per match.
	Seed uint64 `env:"ROICOMPAGNIE_SEED" envDefault:"0"`
}

// LoadDotEnv loads variables from path into the environment. A missing
// file is not an error; variables already set are kept.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "base URL for spectator links")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "save store: sqlite or redis")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite save database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the redis store")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "fixed random seed, 0 for random")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite store needs a path")
		}
	case StoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redis store needs an address")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger described by the config.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
