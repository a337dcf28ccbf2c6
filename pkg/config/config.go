// Package config loads application configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ErrGoldViewRequired is returned when training is requested without a gold
// view to read labels from.
var ErrGoldViewRequired = errors.New("extraction.gold_view must be set for training")

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Extraction configuration
	Extraction ExtractionConfig `mapstructure:"extraction"`

	// Diagnostics configuration
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`

	// Classifier configuration
	Classifier ClassifierConfig `mapstructure:"classifier"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// Store configuration
	Store StoreConfig `mapstructure:"store"`

	// Export configuration
	Export ExportConfig `mapstructure:"export"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// ExtractionConfig holds the knobs governing candidate generation and labeling
type ExtractionConfig struct {
	// GoldView names the annotation view holding manual relation labels.
	// Required for training.
	GoldView string `mapstructure:"gold_view"`

	// BothDirections classifies each pair {X,Y} twice, once per order.
	// Off by default: each pair is seen once and reversed relations get the
	// inverted label suffix.
	BothDirections bool `mapstructure:"both_directions"`

	// NegativeRate is the probability of keeping a negative training example.
	NegativeRate float64 `mapstructure:"negative_rate"`

	// Seed for the negative sampler's random stream.
	Seed int64 `mapstructure:"seed"`

	// SchemaPath optionally points to a YAML relation schema; predictions
	// outside the schema are dropped.
	SchemaPath string `mapstructure:"schema_path"`
}

// DiagnosticsConfig holds error-analysis output configuration
type DiagnosticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Category restricts diagnostic records to pairs with this gold category.
	Category string `mapstructure:"category"`
	// Output is a file path; empty means stdout.
	Output string `mapstructure:"output"`
	// ParquetDir optionally mirrors records to parquet files.
	ParquetDir string `mapstructure:"parquet_dir"`
}

// ClassifierConfig holds configuration for the inference classifier
type ClassifierConfig struct {
	Provider    string  `mapstructure:"provider"` // openai, static
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// StoreConfig holds relation store configuration
type StoreConfig struct {
	// Path of the badger database; empty uses an in-memory store.
	Path string `mapstructure:"path"`
}

// ExportConfig holds Neo4j export configuration
type ExportConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// ValidateForTraining checks the configuration needed before a training run.
func (c *Config) ValidateForTraining() error {
	if c.Extraction.GoldView == "" {
		return ErrGoldViewRequired
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("extraction.both_directions", false)
	viper.SetDefault("extraction.negative_rate", 1.0)
	viper.SetDefault("extraction.seed", 0)

	viper.SetDefault("diagnostics.enabled", false)
	viper.SetDefault("diagnostics.output", "")

	viper.SetDefault("classifier.provider", "openai")
	viper.SetDefault("classifier.model", "gpt-4o-mini")

	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)

	viper.SetDefault("export.database", "neo4j")
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Classifier.APIKey = apiKey
	}

	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Export.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Export.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Export.Password = pass
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
}
