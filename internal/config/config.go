package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/email-intel-hub/")
	v.AddConfigPath("$HOME/.email-intel-hub")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("EMAIL_INTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a new configuration instance from a specific config file
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.threat_threshold", 0.7)
	v.SetDefault("analysis.batch_chunk_size", 50)
	v.SetDefault("analysis.fingerprint_body_length", 1000)
	v.SetDefault("analysis.body_preview_length", 500)
	v.SetDefault("analysis.sentiment_penalty_threshold", -0.5)

	// Detector weight defaults (must sum to 1.0)
	v.SetDefault("detectors.weights.phishing", 0.30)
	v.SetDefault("detectors.weights.malware", 0.25)
	v.SetDefault("detectors.weights.social_engineering", 0.20)
	v.SetDefault("detectors.weights.spam", 0.15)
	v.SetDefault("detectors.weights.bec", 0.10)
	v.SetDefault("detectors.trusted_domains", []string{
		"paypal.com", "amazon.com", "microsoft.com", "google.com",
		"apple.com", "netflix.com", "chase.com", "wellsfargo.com",
	})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.sweep_frequency", "5m")
	v.SetDefault("cache.sqlite_path", "/data/analysis_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/email_intel")

	// Ingest defaults
	v.SetDefault("ingest.directory", "/var/spool/email-intel")
	v.SetDefault("ingest.poll_interval", "10s")
	v.SetDefault("ingest.delete_after", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
