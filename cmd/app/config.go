package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/sushihentaime/bloglist/internal/common"
)

type Config struct {
	Port         string `mapstructure:"PORT" validate:"required,numeric"`
	Environment  string `mapstructure:"ENVIRONMENT" validate:"oneof=development test production"`
	Version      string `mapstructure:"VERSION"`
	LogLevel     string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	StoreBackend string `mapstructure:"STORE_BACKEND" validate:"oneof=postgres memory"`

	DBHost     string `mapstructure:"POSTGRES_HOST" validate:"required_if=StoreBackend postgres"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER" validate:"required_if=StoreBackend postgres"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB" validate:"required_if=StoreBackend postgres"`

	// An empty MQHost runs without the broker.
	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	JWTSecret  string `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	BcryptCost int    `mapstructure:"BCRYPT_COST" validate:"min=4,max=31"`

	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST" validate:"gt=0"`

	// UnauthorizedStatus is sent when a caller touches a blog it does not own.
	UnauthorizedStatus int `mapstructure:"UNAUTHORIZED_STATUS" validate:"oneof=401 404"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE" validate:"required_if=Environment production"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE" validate:"required_if=Environment production"`
}

var configDefaults = map[string]any{
	"PORT":                "3003",
	"ENVIRONMENT":         "development",
	"VERSION":             "1.0.0",
	"LOG_LEVEL":           "info",
	"STORE_BACKEND":       "postgres",
	"POSTGRES_HOST":       "",
	"POSTGRES_PORT":       "5432",
	"POSTGRES_USER":       "",
	"POSTGRES_PASSWORD":   "",
	"POSTGRES_DB":         "",
	"RABBITMQ_HOST":       "",
	"RABBITMQ_PORT":       "5672",
	"RABBITMQ_USER":       "guest",
	"RABBITMQ_PASSWORD":   "guest",
	"JWT_SECRET":          "",
	"BCRYPT_COST":         10,
	"TRUSTED_ORIGINS":     "",
	"RATE_LIMIT_ENABLED":  true,
	"RATE_LIMIT_RPS":      2,
	"RATE_LIMIT_BURST":    4,
	"UNAUTHORIZED_STATUS": 401,
	"TLS_CERT_FILE":       "",
	"TLS_KEY_FILE":        "",
}

// loadConfig reads the dotenv file at path, if there is one, and lets
// environment variables override it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.TrustedOrigins = splitOrigins(config.TrustedOrigins)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func splitOrigins(origins []string) []string {
	var out []string
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) logLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) dsn() string {
	return common.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) amqpURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}
