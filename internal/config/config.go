package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Export   ExportConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig selects the record store backend.
type DatabaseConfig struct {
	Driver string // sqlite3 or postgres
	Path   string // sqlite file
	DSN    string // postgres connection URL
	Seed   bool
}

// Source returns the driver-specific connection source.
func (d DatabaseConfig) Source() string {
	if d.Driver == "postgres" {
		return d.DSN
	}
	return d.Path
}

// ExportConfig holds export destination settings.
type ExportConfig struct {
	Dir string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	YesLabel string `mapstructure:"yes_label"`
	NoLabel  string `mapstructure:"no_label"`
}

// LogConfig holds diagnostic channel settings.
type LogConfig struct {
	Path         string
	RollbarToken string `mapstructure:"rollbar_token"`
	Environment  string
}

// Load reads configuration from .env, file and env. Env var overrides use prefix TEACHDESK_.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "teachdesk", "teachdesk.db"))
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.seed", true)
	v.SetDefault("export.dir", filepath.Join(home, "Documents", "teachdesk"))
	v.SetDefault("ui.yes_label", "Yes")
	v.SetDefault("ui.no_label", "No")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "teachdesk", "teachdesk.log"))
	v.SetDefault("log.rollbar_token", "")
	v.SetDefault("log.environment", "development")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TEACHDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "teachdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TEACHDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects configurations the store cannot open.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3":
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database.path is required for sqlite3")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("TEACHDESK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "teachdesk", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.driver", cfg.Database.Driver)
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.dsn", cfg.Database.DSN)
	v.Set("database.seed", cfg.Database.Seed)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("ui.yes_label", cfg.UI.YesLabel)
	v.Set("ui.no_label", cfg.UI.NoLabel)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.rollbar_token", cfg.Log.RollbarToken)
	v.Set("log.environment", cfg.Log.Environment)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
