package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GRPCAddr      string `yaml:"grpc_addr"`
	HTTPAddr      string `yaml:"http_addr"`
	Shards        int    `yaml:"shards"`
	MaxValueBytes int    `yaml:"max_value_bytes"`
	LogLevel      string `yaml:"log_level"`
}

const (
	DefaultGRPCAddr = ":50051"
	DefaultHTTPAddr = ":8080"
	DefaultLogLevel = "info"
)

// LoadConfig loads configuration from a YAML file if path is provided,
// otherwise it falls back to environment variables. Environment variables
// override file values either way.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			// If path was explicitly provided but file doesn't exist, return error
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if cfg.Shards < 0 {
		return nil, fmt.Errorf("shards must be non-negative, got %d", cfg.Shards)
	}
	if cfg.MaxValueBytes < 0 {
		return nil, fmt.Errorf("max_value_bytes must be non-negative, got %d", cfg.MaxValueBytes)
	}

	return &cfg, nil
}

// applyEnvOverrides allows environment variables to override YAML config values
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ESPIKEY_GRPC_ADDR"); v != "" {
		cfg.GRPCAddr = v
	}
	if v := os.Getenv("ESPIKEY_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ESPIKEY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ESPIKEY_SHARDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ESPIKEY_SHARDS value: %w", err)
		}
		cfg.Shards = n
	}
	if v := os.Getenv("ESPIKEY_MAX_VALUE_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ESPIKEY_MAX_VALUE_BYTES value: %w", err)
		}
		cfg.MaxValueBytes = n
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.GRPCAddr == "" {
		cfg.GRPCAddr = DefaultGRPCAddr
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}
