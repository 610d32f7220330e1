// Package config loads and validates the gestao client configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete gestao configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Poll          PollConfig          `mapstructure:"poll"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	TUI           TUIConfig           `mapstructure:"tui"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig points the client at the backend REST API.
type ServerConfig struct {
	// URL is the backend base URL. The /api/v1 prefix is appended by the
	// API client; do not include it here.
	URL string `mapstructure:"url"`
	// TimeoutSeconds is an optional per-request timeout. 0 means no timeout,
	// which matches the web client: a hung request blocks that load.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// PollConfig controls the live-refresh intervals.
type PollConfig struct {
	// DashboardSeconds is the dashboard refresh interval (default: 15).
	DashboardSeconds int `mapstructure:"dashboard_seconds"`
	// TVSeconds is the TV dashboard refresh interval (default: 30).
	TVSeconds int `mapstructure:"tv_seconds"`
}

// NotificationsConfig controls the new-ticket alert.
type NotificationsConfig struct {
	// Enabled controls whether any alert is produced (default: true).
	Enabled bool `mapstructure:"enabled"`
	// Chime enables the synthesized two-tone chime in addition to the
	// terminal bell (default: true). Chime failures are logged, never shown.
	Chime bool `mapstructure:"chime"`
}

// TUIConfig controls the terminal UI behavior.
type TUIConfig struct {
	// Theme is the color theme: "dark" or "light" (default: "dark").
	Theme string `mapstructure:"theme"`
	// MaxRecentTickets limits the dashboard's recent-tickets list (default: 5).
	MaxRecentTickets int `mapstructure:"max_recent_tickets"`
}

// LoggingConfig controls debug logging behavior.
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: true).
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "DEBUG", "INFO", "WARN", "ERROR" (default: "INFO").
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10).
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3).
	MaxBackups int `mapstructure:"max_backups"`
}

// DashboardInterval returns the dashboard poll interval as a time.Duration.
func (p *PollConfig) DashboardInterval() time.Duration {
	return time.Duration(p.DashboardSeconds) * time.Second
}

// TVInterval returns the TV dashboard poll interval as a time.Duration.
func (p *PollConfig) TVInterval() time.Duration {
	return time.Duration(p.TVSeconds) * time.Second
}

// Timeout returns the per-request timeout (0 means disabled).
func (s *ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://localhost:8080",
			TimeoutSeconds: 0,
		},
		Poll: PollConfig{
			DashboardSeconds: 15,
			TVSeconds:        30,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Chime:   true,
		},
		TUI: TUIConfig{
			Theme:            "dark",
			MaxRecentTickets: 5,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("server.url", defaults.Server.URL)
	viper.SetDefault("server.timeout_seconds", defaults.Server.TimeoutSeconds)

	viper.SetDefault("poll.dashboard_seconds", defaults.Poll.DashboardSeconds)
	viper.SetDefault("poll.tv_seconds", defaults.Poll.TVSeconds)

	viper.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	viper.SetDefault("notifications.chime", defaults.Notifications.Chime)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.max_recent_tickets", defaults.TUI.MaxRecentTickets)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gestao")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gestao"
	}
	return filepath.Join(home, ".config", "gestao")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the path to the user's data directory, used for the
// persisted session and log files.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "gestao")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gestao"
	}
	return filepath.Join(home, ".local", "share", "gestao")
}
