package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Firestore FirestoreConfig
	PDF       PDFConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds the name-cleaning model configuration.
// An empty API key disables cleaning (the pipeline degrades to identity
// naming), so it is intentionally not validated as required.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// FirestoreConfig holds price-store configuration. An empty project ID
// disables dedupe persistence (every row prints).
type FirestoreConfig struct {
	ProjectID  string `mapstructure:"project_id"`
	Collection string `mapstructure:"collection"`
}

// PDFConfig holds rendering configuration
type PDFConfig struct {
	FontsDir string `mapstructure:"fonts_dir"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelflabels/")

	// Environment variable settings
	v.SetEnvPrefix("SHELFLABELS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-flash-latest")

	// Firestore defaults
	v.SetDefault("firestore.collection", "products")

	// PDF defaults
	v.SetDefault("pdf.fonts_dir", "./fonts")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Gemini.Model == "" {
		return fmt.Errorf("Gemini model name is required")
	}

	if config.Firestore.ProjectID != "" && config.Firestore.Collection == "" {
		return fmt.Errorf("Firestore collection is required when a project ID is set")
	}

	return nil
}
