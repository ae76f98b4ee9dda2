// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	// DevJWTSecret is only accepted outside production.
	DevJWTSecret = "dev-secret-change-me"
)

// Config holds all application configuration. It is built once at startup and
// passed to the components that need it.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Store    StoreConfig    `mapstructure:"store"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Env         string   `mapstructure:"env" validate:"required,oneof=development production test"`
	Port        int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// AuthConfig contains token signing settings.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// StoreConfig selects the storage backend.
type StoreConfig struct {
	Driver        string `mapstructure:"driver" validate:"required,oneof=mongo postgres sqlite"`
	RunMigrations bool   `mapstructure:"run_migrations"`
}

// MongoConfig contains document store settings.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// PostgresConfig contains relational store settings.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// SQLiteConfig contains the local development store settings.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig contains cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr          string        `mapstructure:"addr"`
	Password      string        `mapstructure:"password"`
	CardsCacheTTL time.Duration `mapstructure:"cards_cache_ttl"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// envBindings maps config keys to the environment variables they are read from.
// The first variable found wins.
var envBindings = map[string][]string{
	"server.env":               {"APP_ENV", "NODE_ENV"},
	"server.port":              {"PORT"},
	"server.log_level":         {"LOG_LEVEL"},
	"server.cors_origins":      {"CORS_ORIGINS"},
	"auth.jwt_secret":          {"JWT_SECRET"},
	"auth.token_ttl":           {"JWT_TTL"},
	"store.driver":             {"STORE_DRIVER"},
	"store.run_migrations":     {"RUN_MIGRATIONS"},
	"mongo.uri":                {"MONGODB_URI"},
	"mongo.database":           {"MONGODB_DATABASE"},
	"mongo.connect_timeout":    {"MONGODB_CONNECT_TIMEOUT"},
	"postgres.host":            {"DB_HOST"},
	"postgres.port":            {"DB_PORT"},
	"postgres.user":            {"DB_USER"},
	"postgres.password":        {"DB_PASSWORD"},
	"postgres.name":            {"DB_NAME"},
	"postgres.sslmode":         {"DB_SSLMODE"},
	"postgres.connect_timeout": {"DB_CONNECT_TIMEOUT"},
	"sqlite.path":              {"SQLITE_PATH"},
	"redis.addr":               {"REDIS_ADDR"},
	"redis.password":           {"REDIS_PASSWORD"},
	"redis.cards_cache_ttl":    {"CARDS_CACHE_TTL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", []string{
		"https://www.arounadaly.mooo.com",
		"https://arounadaly.mooo.com",
		"http://localhost:3000",
	})
	v.SetDefault("auth.jwt_secret", DevJWTSecret)
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("store.driver", "mongo")
	v.SetDefault("store.run_migrations", true)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "aroundb")
	v.SetDefault("mongo.connect_timeout", 10*time.Second)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.name", "aroundb")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.connect_timeout", 60*time.Second)
	v.SetDefault("sqlite.path", "./around.db")
	v.SetDefault("redis.cards_cache_ttl", 30*time.Second)
}

// Load reads configuration from environment variables on top of defaults and
// validates the result.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Server.Env = strings.ToLower(strings.TrimSpace(cfg.Server.Env))
	cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel))
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the production-only rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.IsProduction() && c.Auth.JWTSecret == DevJWTSecret {
		return errors.New("invalid configuration: JWT_SECRET must be set in production")
	}
	switch c.Store.Driver {
	case "mongo":
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("invalid configuration: MONGODB_URI and MONGODB_DATABASE are required for the mongo store")
		}
	case "postgres":
		if c.Postgres.Host == "" || c.Postgres.Name == "" {
			return errors.New("invalid configuration: DB_HOST and DB_NAME are required for the postgres store")
		}
	}
	return nil
}

// splitList accepts both list values and a single comma separated value from the environment.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
