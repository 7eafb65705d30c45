// Package config handles the XDG configuration directory and the optional
// config.yaml / CHECKLIST_* environment settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"checklist/internal/storage"
)

const (
	// AppName is the application directory name.
	AppName = "checklist"

	// ConfigFile is the optional configuration filename inside Dir.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides (CHECKLIST_STORAGE_BACKEND, ...).
	EnvPrefix = "CHECKLIST"

	// DataDir is the default data directory name inside Dir.
	DataDir = "data"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file memory mysql"`
	Key     string `mapstructure:"key" validate:"required,excludesall=/\\"`
	// Path is the data directory for the file backend.
	Path string `mapstructure:"path" validate:"required_if=Backend file"`
	// DSN is the data source name for the mysql backend.
	DSN string `mapstructure:"dsn" validate:"required_if=Backend mysql"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// New creates a Config with the default or specified config directory and
// loads settings from config.yaml and the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/checklist or $HOME/.config/checklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir}

	v := viper.New()
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.key", "tasks")
	v.SetDefault("storage.path", filepath.Join(dir, DataDir))
	v.SetDefault("storage.dsn", "")
	v.SetDefault("log.level", "warn")

	v.SetConfigType("yaml")
	v.SetConfigFile(cfg.ConfigPath())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := storage.ValidateKey(c.Storage.Key); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the optional configuration file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogLevel returns the effective log level; Debug overrides the configured one.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.Log.Level
}
