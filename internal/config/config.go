// Package config loads honyaku's process configuration from an optional file
// and HONYAKU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable honyaku reads.
const EnvPrefix = "HONYAKU"

// Config holds application configuration.
type Config struct {
	Log    LogConfig
	DB     DBConfig
	HTTP   HTTPConfig
	Gemini ProviderConfig
	OpenAI ProviderConfig
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string
	Format string
}

// DBConfig locates the settings database.
type DBConfig struct {
	Path string
}

// HTTPConfig covers both the local HTTP transport and outbound provider calls.
type HTTPConfig struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// ProviderConfig overrides a provider's API location and model.
type ProviderConfig struct {
	BaseURL string
	Model   string
}

// DefaultDBPath is the settings database used when none is configured.
func DefaultDBPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "honyaku", "settings.db")
	}
	return filepath.Join(".", "data", "honyaku.db")
}

// New returns a viper instance with defaults and env binding applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("db.path", DefaultDBPath())
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 8787)
	v.SetDefault("http.timeout", time.Duration(0))
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.model", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file into v. An explicit path must exist; without one
// the default location is tried and silently skipped when absent.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "honyaku"))
		}
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		HTTP: HTTPConfig{
			Host:    v.GetString("http.host"),
			Port:    v.GetInt("http.port"),
			Timeout: v.GetDuration("http.timeout"),
		},
		Gemini: ProviderConfig{
			BaseURL: v.GetString("gemini.base_url"),
			Model:   v.GetString("gemini.model"),
		},
		OpenAI: ProviderConfig{
			BaseURL: v.GetString("openai.base_url"),
			Model:   v.GetString("openai.model"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db.path is required")
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535")
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must be >= 0")
	}
	return nil
}
