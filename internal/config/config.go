package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TRIP"

// Config holds tripctl configuration.
// Priority: CLI flags > environment variables > config file > defaults.
type Config struct {
	BaseURL  string        `yaml:"api_base_url" envconfig:"API_BASE_URL"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	LogLevel string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	Debug    bool          `yaml:"debug" envconfig:"DEBUG"`
}

func defaults() *Config {
	return &Config{
		BaseURL:  "http://localhost:8080",
		Timeout:  240 * time.Second,
		LogLevel: "info",
	}
}

// DefaultPath returns ~/.config/tripctl/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tripctl", "config.yaml")
}

// Load reads the config file at path (a missing file is not an error), then
// applies TRIP_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// No default tags: envconfig only touches fields whose variable is set.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// Level parses LogLevel, defaulting to info. Debug forces debug level.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	switch c.LogLevel {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
