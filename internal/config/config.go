package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"visitor-reception/internal/email"
)

const QR_IMAGE_SIZE = 512

type Config struct {
	// Address the HTTP server listens on, e.g. ":8080"
	Listen string `mapstructure:"listen"`

	LogLevel string `mapstructure:"log_level"`

	// Base URL for the application. Used to build approval links embedded in
	// emails and QR codes. May be empty, in which case links are derived from
	// the incoming request host.
	BaseURL string `mapstructure:"base_url"`

	// Directory for locally stored photo and QR code files.
	DataDir string `mapstructure:"data_dir"`

	// Address the approval request email is always sent to.
	HREmail string `mapstructure:"hr_email"`

	Storage Storage `mapstructure:"storage"`

	// SMTP configuration
	Email email.SMTPConfig `mapstructure:"email"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from environment variables and returns a Config struct.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	// Convert relative sqlite path to absolute instance folder
	if cfg.Storage.SQLite != nil {
		cfg.Storage.SQLite.Path = resolveSQLitePath(cfg.Storage.SQLite.Path)
	}

	if cfg.HREmail == "" {
		slog.Warn("HR_EMAIL is not set, approval emails will only reach the host")
	}

	return &cfg, nil
}

// resolveSQLitePath anchors a relative sqlite path under the instance folder.
// Empty paths, ":memory:" and absolute paths pass through unchanged.
func resolveSQLitePath(path string) string {
	if path == "" || path == ":memory:" || os.IsPathSeparator(path[0]) {
		return path
	}
	return fmt.Sprintf("%s/%s", getConfigPath(), path)
}
