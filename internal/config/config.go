// Package config loads tipack defaults from the environment and an optional
// config file. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "tipack"
	// EnvPrefix prefixes every environment variable, e.g. TIPACK_LOG_LEVEL.
	EnvPrefix = "TIPACK"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
)

// Config holds every setting that can come from outside the command line.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	JSONLog  bool   `mapstructure:"json_log"`
	LogPath  string `mapstructure:"log_path"`
	Comment  string `mapstructure:"comment"`
	Model    string `mapstructure:"model"`
	Folder   string `mapstructure:"folder"`
	InputOps string `mapstructure:"input_ops"`
	FileMode string `mapstructure:"file_mode"`
}

// DefaultComment is stamped into files when no comment is configured.
func DefaultComment(version string) string {
	return "Created by " + AppName + " " + version
}

// DefaultConfig returns the built-in settings.
func DefaultConfig(version string) Config {
	return Config{
		LogLevel: "warn",
		Comment:  DefaultComment(version),
		FileMode: "0644",
	}
}

// Dir returns the per-user config directory following platform conventions.
func Dir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, AppName), nil
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", AppName), nil
	}

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load resolves the configuration. An explicit path must exist; otherwise
// the user config directory is searched and a missing file is not an error.
func Load(path, version string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig(version)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("json_log", defaults.JSONLog)
	v.SetDefault("log_path", defaults.LogPath)
	v.SetDefault("comment", defaults.Comment)
	v.SetDefault("model", defaults.Model)
	v.SetDefault("folder", defaults.Folder)
	v.SetDefault("input_ops", defaults.InputOps)
	v.SetDefault("file_mode", defaults.FileMode)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
