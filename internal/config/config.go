package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Upload MIME types accepted by default: PDF, Word and PowerPoint.
var DefaultAllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		StoragePath    string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		StaticDir      string   `yaml:"static_dir" env:"SERVER_STATIC_DIR"`
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
	} `yaml:"server"`

	Session struct {
		Secret          string `yaml:"secret" env:"SESSION_SECRET"`
		CookieName      string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		MaxAge          string `yaml:"max_age" env:"SESSION_MAX_AGE"`
		CleanupInterval string `yaml:"cleanup_interval" env:"SESSION_CLEANUP_INTERVAL"`
		Secure          bool   `yaml:"secure" env:"SESSION_SECURE"`
		Issuer          string `yaml:"issuer" env:"SESSION_ISSUER"`
	} `yaml:"session"`

	Upload struct {
		MaxFileSize  int64    `yaml:"max_file_size" env:"UPLOAD_MAX_FILE_SIZE"`
		AllowedTypes []string `yaml:"allowed_types" env:"UPLOAD_ALLOWED_TYPES"`
	} `yaml:"upload"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
		File   string `yaml:"file" env:"LOG_FILE"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from defaults, a YAML file, a .env file and
// environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env values never override variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.TrustedProxies = []string{"127.0.0.1"}

	// Session defaults
	config.Session.Secret = "studyshare-session-secret"
	config.Session.CookieName = "studyshare.sid"
	config.Session.MaxAge = "168h"
	config.Session.CleanupInterval = "24h"
	config.Session.Issuer = "studyshare"

	// Upload defaults
	config.Upload.MaxFileSize = 10 * 1024 * 1024
	config.Upload.AllowedTypes = append([]string(nil), DefaultAllowedTypes...)

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}

	if strings.TrimSpace(config.Server.StoragePath) == "" {
		return fmt.Errorf("storage path is required")
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if d, err := time.ParseDuration(config.Session.MaxAge); err != nil || d <= 0 {
		return fmt.Errorf("invalid session max age %q", config.Session.MaxAge)
	}

	if d, err := time.ParseDuration(config.Session.CleanupInterval); err != nil || d <= 0 {
		return fmt.Errorf("invalid session cleanup interval %q", config.Session.CleanupInterval)
	}

	if config.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload max file size must be positive")
	}

	if len(config.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("at least one allowed upload type is required")
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", config.Logging.Format)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
