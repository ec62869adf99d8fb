package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Services   Services   `yaml:"services"`
	Session    Session    `yaml:"session"`
	Cache      Cache      `yaml:"cache"`
	DB         DB         `yaml:"db"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Services holds the base URLs of the remote services.
type Services struct {
	UserURL      string        `yaml:"user_url" env:"USER_SERVICE_URL" env-default:"https://insightflow-users-service.onrender.com"`
	DocumentURL  string        `yaml:"document_url" env:"DOCUMENT_SERVICE_URL" env-default:"https://document-service-backend.onrender.com"`
	WorkspaceURL string        `yaml:"workspace_url" env:"WORKSPACE_SERVICE_URL" env-default:"https://insightflow-workspace-service-qw4p.onrender.com"`
	Timeout      time.Duration `yaml:"timeout" env:"SERVICES_TIMEOUT" env-default:"10s"`
}

type Session struct {
	Backend      string `yaml:"backend" env:"SESSION_BACKEND" env-default:"memory"`
	CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"insightflow_sid"`
	CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	FilePath     string `yaml:"file_path" env:"SESSION_FILE_PATH" env-default:"./data/session.json"`
}

type Cache struct {
	Addr       string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password   string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB         int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"REDIS_SESSION_TTL" env-default:"0s"`
}

type DB struct {
	Addr     string `yaml:"addr" env:"DB_ADDR" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DB       string `yaml:"db" env:"DB_NAME" env-default:"insightflow"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`
}

// MustLoad loads the configuration and panics when it is invalid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the YAML file at CONFIG_PATH when set, otherwise environment
// variables and defaults only. Environment variables win over the file.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case "local", "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("env %q is not one of local, dev, prod", c.Env))
	}

	switch c.Session.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	case BackendFile:
		if c.Session.FilePath == "" {
			errs = append(errs, errors.New("session.file_path is required for the file backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("session.backend %q is not supported", c.Session.Backend))
	}

	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}

	if c.Services.UserURL == "" || c.Services.DocumentURL == "" || c.Services.WorkspaceURL == "" {
		errs = append(errs, errors.New("all service URLs are required"))
	}

	if c.Services.Timeout <= 0 {
		errs = append(errs, errors.New("services.timeout must be positive"))
	}

	return errors.Join(errs...)
}
