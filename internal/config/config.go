package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Config represents the todolist runtime configuration.
// Every field has a working default; the environment only overrides.
type Config struct {
	DB  DBConfig
	Log LogConfig
}

// DBConfig describes the connection target.
type DBConfig struct {
	Driver   string `env:"TODO_DB_DRIVER" env-default:"mysql"`
	Host     string `env:"TODO_DB_HOST" env-default:"localhost"`
	Port     int    `env:"TODO_DB_PORT" env-default:"3306"`
	User     string `env:"TODO_DB_USER" env-default:"root"`
	Password string `env:"TODO_DB_PASSWORD"` // prompted when empty
	Name     string `env:"TODO_DB_NAME" env-default:"todo_list_db"`
	Charset  string `env:"TODO_DB_CHARSET" env-default:"utf8"`
	Path     string `env:"TODO_DB_PATH"` // sqlite3 only
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `env:"TODO_LOG_LEVEL" env-default:"warn"`
}

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.DB.Driver == DriverSQLite && cfg.DB.Path == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that are interpolated or switched on.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL:
		if !identifierRe.MatchString(c.DB.Name) {
			return fmt.Errorf("invalid database name %q", c.DB.Name)
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			return fmt.Errorf("invalid database port %d", c.DB.Port)
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("sqlite3 driver requires TODO_DB_PATH")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (want %s or %s)", c.DB.Driver, DriverMySQL, DriverSQLite)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// NeedsPassword reports whether the password must be solicited interactively.
func (c *Config) NeedsPassword() bool {
	return c.DB.Driver == DriverMySQL && c.DB.Password == ""
}

// DefaultDBPath returns the default sqlite3 database path.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".todolist", "todolist.db"), nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
