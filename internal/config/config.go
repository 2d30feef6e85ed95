package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/AnshRaj112/moments-backend/internal/store"
)

// Config holds process settings. Values come from defaults, then the optional
// YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	Environment string `yaml:"env" env:"ENV"`
	Port        string `yaml:"port" env:"PORT"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`

	// AllowedOrigins is the CORS allow list; "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`

	MaxMoments   int   `yaml:"max_moments" env:"MAX_MOMENTS"`
	MaxReplies   int   `yaml:"max_replies" env:"MAX_REPLIES"`
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`

	MetricsEnabled bool `yaml:"metrics_enabled" env:"METRICS_ENABLED"`

	CloudinaryName      string `yaml:"cloudinary_cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key" env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret" env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `yaml:"cloudinary_folder" env:"CLOUDINARY_FOLDER"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Environment:      "development",
		Port:             "8080",
		AllowedOrigins:   []string{"*"},
		MaxMoments:       store.DefaultMaxMoments,
		MaxReplies:       store.DefaultMaxReplies,
		MaxBodyBytes:     5 << 20, // images arrive as data URIs
		MetricsEnabled:   true,
		CloudinaryFolder: "moments",
	}
}

// Load builds the configuration. A missing CONFIG_FILE is an error; a missing
// .env file is handled by the caller.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.Port = strings.TrimSpace(c.Port)

	var origins []string
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.AllowedOrigins = origins
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.MaxMoments <= 0 {
		errs = append(errs, fmt.Errorf("MAX_MOMENTS must be positive, got %d", c.MaxMoments))
	}
	if c.MaxReplies <= 0 {
		errs = append(errs, fmt.Errorf("MAX_REPLIES must be positive, got %d", c.MaxReplies))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}
	return errors.Join(errs...)
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
