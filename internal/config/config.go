package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Session store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`                                                        // current application environment (local, dev, production)
	LogLevel         string  `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"` // overrides the environment's default level
	TelegramAPIToken string  `mapstructure:"-"`                                                          // Telegram API token loaded from environment
	ContentPath      string  `mapstructure:"content_path" validate:"required"`                           // path to the YAML library catalog
	HTTP             HTTP    `mapstructure:"http"`                                                       // ops endpoint
	Quiz             Quiz    `mapstructure:"quiz"`                                                       // quiz behaviour
	Session          Session `mapstructure:"session"`                                                    // chat session persistence
	DB               DB      `mapstructure:"database"`                                                   // database configuration section
	Redis            Redis   `mapstructure:"redis"`                                                      // redis configuration section
}

type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address; empty disables the server
}

type Quiz struct {
	AdvanceDelay time.Duration `mapstructure:"advance_delay" validate:"gt=0"` // pause between the reveal and the next question
}

// Session controls where chat sessions live and how long idle ones are kept.
type Session struct {
	Store         string        `mapstructure:"store" validate:"oneof=memory postgres redis"`
	TTL           time.Duration `mapstructure:"ttl" validate:"gt=0"`
	SweepSchedule string        `mapstructure:"sweep_schedule" validate:"required"` // cron spec for the idle sweeper
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                                  // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections" validate:"gte=1"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime" validate:"gte=0"` // maximum lifetime of a single connection
}

type Redis struct {
	URL       string `mapstructure:"-"`          // redis url loaded from environment
	KeyPrefix string `mapstructure:"key_prefix"` // prefix of every session key
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string) (*Config, error) {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("content_path", "assets/content.yaml")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("quiz.advance_delay", "1500ms")
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.sweep_schedule", "@every 1h")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.key_prefix", "maktabati:")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("session.store", "SESSION_STORE")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that the secrets the chosen session
// store needs are present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var missing []string
	if c.TelegramAPIToken == "" {
		missing = append(missing, "TELEGRAM_API_TOKEN")
	}
	if c.Session.Store == StorePostgres && c.DB.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Session.Store == StoreRedis && c.Redis.URL == "" {
		missing = append(missing, "REDIS_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnvironmentVariables, strings.Join(missing, ", "))
	}
	return nil
}
