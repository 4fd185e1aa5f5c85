// Package config loads infodump configuration from file and environment.
//
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/infodump/config.yaml
//   - $HOME/.config/infodump/config.yaml
//
// Environment variables are prefixed with INFODUMP_
// (e.g., INFODUMP_LARGEST, INFODUMP_PING_TARGET).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
	MaxBackups   int   `mapstructure:"max_backups"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level        string            `mapstructure:"level"`
	Path         string            `mapstructure:"path"`
	ConsoleLevel string            `mapstructure:"console_level"`
	Rotation     RotationConfig    `mapstructure:"rotation"`
	Components   map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// Path is the root directory for the largest-files scan.
	Path string `mapstructure:"path"`

	// Largest is the number of largest files to report.
	Largest int `mapstructure:"largest"`

	// CPU is the number of top CPU processes to report.
	CPU int `mapstructure:"cpu"`

	// Exclude contains glob patterns skipped during the file scan.
	Exclude []string `mapstructure:"exclude"`

	// PingTarget is the address probed for outbound connectivity.
	PingTarget string `mapstructure:"ping_target"`

	// NoColor disables styled output.
	NoColor bool `mapstructure:"no_color"`

	// NoTemp disables the temperature section.
	NoTemp bool `mapstructure:"no_temp"`

	// NoNvidia disables the NVIDIA GPU section.
	NoNvidia bool `mapstructure:"no_nvidia"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// A non-empty path names an explicit config file; empty searches the
// XDG locations.
func Load(path string) (*Config, error) {
	v := viper.New()

	homeDir, err := os.UserHomeDir()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, "infodump"))
		}
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "infodump"))
		}
	}

	v.SetEnvPrefix("INFODUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.Path, "~") && homeDir != "" {
		cfg.Path = filepath.Join(homeDir, cfg.Path[1:])
	}

	return &cfg, nil
}

// SetDefaults registers the default values on a viper instance.
// The CLI shares these with Load so flags and config agree.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("path", DefaultPath())
	v.SetDefault("largest", DefaultLargest)
	v.SetDefault("cpu", DefaultCPU)
	v.SetDefault("exclude", DefaultExclusions)
	v.SetDefault("ping_target", DefaultPingTarget)
	v.SetDefault("no_color", false)
	v.SetDefault("no_temp", false)
	v.SetDefault("no_nvidia", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means DefaultLogPath.
	v.SetDefault("logging.console_level", "")
	v.SetDefault("logging.rotation.max_size_bytes", int64(10*1024*1024))
	v.SetDefault("logging.rotation.max_backups", 5)
	v.SetDefault("logging.components", map[string]string{
		"scanner": "info",
		"procs":   "info",
		"report":  "info",
		"thermal": "warn",
	})
}

