// Package config loads the typed Elemental settings from YAML files,
// environment variables and Docker secrets. The loaded Config is built once
// at process start and passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigPath is the config file directory, "./configs" by default.
	ConfigPath string
	// EnvPrefix enables viper.AutomaticEnv with this prefix.
	EnvPrefix string
	// AllowNoConfig permits running on environment variables alone.
	AllowNoConfig bool
}

// Load reads config_<APP_ENV>.yaml plus .env and environment overrides
// into cfg, which must be a pointer to a config struct.
func Load(cfg any, opts ...LoadOptions) error {
	opt := LoadOptions{ConfigPath: "./configs"}
	if len(opts) > 0 {
		opt = opts[0]
	}

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s failed: %w", envFile, err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config_%s", Env()))
	viper.SetConfigType("yaml")
	viper.AddConfigPath(opt.ConfigPath)

	if opt.EnvPrefix != "" {
		viper.SetEnvPrefix(opt.EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !(errors.As(err, &notFound) && opt.AllowNoConfig) {
			return fmt.Errorf("read config failed: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config failed: %w", err)
	}
	return nil
}

// LoadElemental loads, defaults and validates the full settings surface in
// one call.
func LoadElemental(opts ...LoadOptions) (*Config, error) {
	cfg := &Config{}
	if err := Load(cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Env returns the current environment, "development" by default.
func Env() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
