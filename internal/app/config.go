package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matchpointhq/matchpoint-backend/internal/platform/envutil"
)

// Config is the process configuration. Values come from an optional YAML file
// overridden by environment variables, so containers can run file-less.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Otel     OtelConfig     `yaml:"otel"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

type OtelConfig struct {
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// LoadConfig reads the file at path (skipped when empty or absent), then
// applies environment overrides on top of file values and defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "matchpoint",
			SSLMode: "disable",
		},
		Auth: AuthConfig{
			JWTSecret:       "defaultsecret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Log:  LogConfig{Mode: "development"},
		Otel: OtelConfig{ServiceName: "matchpoint"},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Server.Addr = envutil.String("SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.ShutdownTimeout = envutil.Duration("SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = envutil.String("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Postgres.Name)
	cfg.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.Postgres.SSLMode)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)

	cfg.Auth.JWTSecret = envutil.String("JWT_SECRET_KEY", cfg.Auth.JWTSecret)
	cfg.Auth.AccessTokenTTL = envutil.Duration("ACCESS_TOKEN_TTL", cfg.Auth.AccessTokenTTL)
	cfg.Auth.RefreshTokenTTL = envutil.Duration("REFRESH_TOKEN_TTL", cfg.Auth.RefreshTokenTTL)

	cfg.Log.Mode = envutil.String("LOG_MODE", cfg.Log.Mode)

	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version)

	return cfg, nil
}
