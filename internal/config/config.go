package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from files and
// environment variables.
type Config struct {
	// User is the local player name sessions are recorded under.
	User string `mapstructure:"user"`

	// DBPath is the SQLite database file; empty means the default
	// XDG path.
	DBPath string `mapstructure:"db_path"`

	// CatalogTTL is how long the catalog cache stays fresh.
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`

	// RecentWindow is how long a shown question stays excluded.
	RecentWindow time.Duration `mapstructure:"recent_window"`

	// StreakBonus enables the streak score multiplier.
	StreakBonus bool `mapstructure:"streak_bonus"`

	// Debug switches the logger to development output.
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from .env, an optional config.yaml, and
// environment variables prefixed VERSEWISE_, in increasing priority.
func Load() (*Config, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/versewise")

	v.SetDefault("user", "local")
	v.SetDefault("db_path", "")
	v.SetDefault("catalog_ttl", "5m")
	v.SetDefault("recent_window", "24h")
	v.SetDefault("streak_bonus", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("versewise")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.User == "" {
		cfg.User = "local"
	}
	return &cfg, nil
}
