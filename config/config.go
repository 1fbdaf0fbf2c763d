package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for the service. Values come from the
// environment, optionally seeded from a .env file and overridden by a YAML
// file named in CONFIG_FILE.
type Config struct {
	ListenAddr  string `yaml:"listenAddr"`
	UploadsDir  string `yaml:"uploadsDir"`
	OutputDir   string `yaml:"outputDir"`
	LogLevel    string `yaml:"logLevel"`
	LogEncoding string `yaml:"logEncoding"`

	// MaxUploadBytes is the authoritative per-file size ceiling enforced at
	// intake. A single layer owns this limit.
	MaxUploadBytes     int64         `yaml:"maxUploadBytes"`
	MaxFilesPerRequest int           `yaml:"maxFilesPerRequest"`
	RetentionWindow    time.Duration `yaml:"retentionWindow"`

	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		ListenAddr:         ":8080",
		UploadsDir:         "uploads",
		OutputDir:          "output",
		LogLevel:           "info",
		LogEncoding:        "json",
		MaxUploadBytes:     50 * 1024 * 1024, // 50MB
		MaxFilesPerRequest: 10,
		RetentionWindow:    time.Hour,
		AllowedOrigins:     []string{"*"},
	}
}

// Load builds the configuration from defaults, a YAML file (if CONFIG_FILE is
// set) and environment variables, in that order of precedence.
func Load() (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		cfg.UploadsDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q: %w", v, err)
		}
		cfg.MaxUploadBytes = n
	}
	if v := os.Getenv("MAX_FILES_PER_REQUEST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_FILES_PER_REQUEST %q: %w", v, err)
		}
		cfg.MaxFilesPerRequest = n
	}
	if v := os.Getenv("RETENTION_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RETENTION_WINDOW %q: %w", v, err)
		}
		cfg.RetentionWindow = d
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("upload size ceiling must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxFilesPerRequest <= 0 {
		return nil, fmt.Errorf("max files per request must be positive, got %d", cfg.MaxFilesPerRequest)
	}
	if cfg.RetentionWindow <= 0 {
		return nil, fmt.Errorf("retention window must be positive, got %s", cfg.RetentionWindow)
	}

	return cfg, nil
}
