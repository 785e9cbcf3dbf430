// Package config loads careerpath settings from an optional config.yaml,
// CAREERPATH_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/careerpath/internal/achievements"
)

// EnvPrefix is prepended to every environment override, e.g. CAREERPATH_DB.
const EnvPrefix = "CAREERPATH"

// Catalog source kinds.
const (
	SourceSample   = "sample"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	// DB is the SQLite file for the completion log. Empty means the
	// default data directory.
	DB string

	Catalog      CatalogConfig
	Log          LogConfig
	Cache        CacheConfig
	Achievements AchievementsConfig

	// DatabaseURL is the Postgres milestone store, used when
	// Catalog.Source is "postgres".
	DatabaseURL string
}

// CatalogConfig selects where the roadmap comes from.
type CatalogConfig struct {
	Source string // "sample", "file" or "postgres"
	Path   string // catalog file for the "file" source
	Slug   string // catalog name in the Postgres store
	Watch  bool   // reload the file when it changes
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// CacheConfig sizes the status memo cache.
type CacheConfig struct {
	Size int
}

// AchievementsConfig tunes the velocity achievement.
type AchievementsConfig struct {
	VelocityCount  int
	VelocityWindow time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	ach := achievements.DefaultConfig()
	return Config{
		Catalog: CatalogConfig{
			Source: SourceSample,
			Slug:   "frontend",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Cache: CacheConfig{
			Size: 64,
		},
		Achievements: AchievementsConfig{
			VelocityCount:  ach.VelocityCount,
			VelocityWindow: ach.VelocityWindow,
		},
	}
}

// DefaultDir returns $XDG_CONFIG_HOME/careerpath, falling back to
// ~/.config/careerpath.
func DefaultDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "careerpath"), nil
}

// Overrides are command-line values applied on top of the file and the
// environment, before validation. Empty fields are ignored.
type Overrides struct {
	DB string
	// CatalogPath selects the file source.
	CatalogPath string
}

func (o Overrides) apply(cfg *Config) {
	if o.DB != "" {
		cfg.DB = o.DB
	}
	if o.CatalogPath != "" {
		cfg.Catalog.Source = SourceFile
		cfg.Catalog.Path = o.CatalogPath
	}
}

// Load reads configuration. When path is empty, config.yaml is looked up
// in DefaultDir and a missing file means defaults. An explicit path must
// exist. Environment variables override the file and o overrides both.
// The merged result is validated.
func Load(path string, o Overrides) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set Viper defaults so missing keys fall back gracefully and every key
	// can be overridden from the environment.
	v.SetDefault("db", cfg.DB)
	v.SetDefault("catalog.source", cfg.Catalog.Source)
	v.SetDefault("catalog.path", cfg.Catalog.Path)
	v.SetDefault("catalog.slug", cfg.Catalog.Slug)
	v.SetDefault("catalog.watch", cfg.Catalog.Watch)
	v.SetDefault("database_url", cfg.DatabaseURL)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("cache.size", cfg.Cache.Size)
	v.SetDefault("achievements.velocity_count", cfg.Achievements.VelocityCount)
	v.SetDefault("achievements.velocity_window", cfg.Achievements.VelocityWindow)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg.DB = v.GetString("db")
	cfg.Catalog.Source = strings.ToLower(v.GetString("catalog.source"))
	cfg.Catalog.Path = v.GetString("catalog.path")
	cfg.Catalog.Slug = v.GetString("catalog.slug")
	cfg.Catalog.Watch = v.GetBool("catalog.watch")
	cfg.DatabaseURL = v.GetString("database_url")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Cache.Size = v.GetInt("cache.size")
	cfg.Achievements.VelocityCount = v.GetInt("achievements.velocity_count")
	cfg.Achievements.VelocityWindow = v.GetDuration("achievements.velocity_window")
	o.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	switch c.Catalog.Source {
	case SourceSample:
	case SourceFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for the file source"))
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("database_url is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source: unknown source %q", c.Catalog.Source))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}
	if c.Achievements.VelocityCount < 1 {
		errs = append(errs, errors.New("achievements.velocity_count must be at least 1"))
	}
	if c.Achievements.VelocityWindow <= 0 {
		errs = append(errs, errors.New("achievements.velocity_window must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AchievementConfig converts the achievement settings.
func (c Config) AchievementConfig() achievements.Config {
	return achievements.Config{
		VelocityCount:  c.Achievements.VelocityCount,
		VelocityWindow: c.Achievements.VelocityWindow,
	}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
