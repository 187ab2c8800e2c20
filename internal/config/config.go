package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the service.
type Config struct {
	AppPort  string
	LogLevel string

	// ModelPath is where the serialized regression artifact is read from.
	// When the MinIO settings below are present, the artifact is first
	// downloaded to this path at startup.
	ModelPath string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioObject    string
	MinioSSL       bool
}

// LoadConfig reads configuration from an optional config.yaml in the working
// directory, overridden by environment variables (APP_PORT, MODEL_PATH, ...).
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("app_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("model_path", "models/air_quality_ensemble.json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A config file is optional; environment variables and defaults suffice.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		AppPort:        v.GetString("app_port"),
		LogLevel:       v.GetString("log_level"),
		ModelPath:      v.GetString("model_path"),
		MinioEndpoint:  v.GetString("minio_endpoint"),
		MinioAccessKey: v.GetString("minio_access_key"),
		MinioSecretKey: v.GetString("minio_secret_key"),
		MinioBucket:    v.GetString("minio_bucket"),
		MinioObject:    v.GetString("minio_object"),
		MinioSSL:       v.GetBool("minio_ssl"),
	}

	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model_path must not be empty")
	}
	// MinIO is an optional artifact source; if an endpoint is given the rest
	// of the settings must be complete.
	if cfg.MinioEndpoint != "" {
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" || cfg.MinioObject == "" {
			return nil, fmt.Errorf("minio configuration is incomplete")
		}
	}
	return cfg, nil
}
