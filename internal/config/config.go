// Package config provides configuration loading and management for the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/pools-config/internal/types"
)

// Config holds all application configuration
type Config struct {
	// HTTP server port
	Port string

	// Network used when no RPC endpoint is configured or detection fails
	ActiveNetwork types.Network

	// Optional EVM JSON-RPC endpoint used to detect the active network
	RPCURL     string
	RPCTimeout time.Duration

	// Optional YAML file replacing the built-in pools table
	PoolsFile string

	// OpenTelemetry endpoint for observability
	OtelEndpoint string

	// Request rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	EnableMetrics bool

	LogLevel  string
	LogFormat string
}

// Load creates a new Config from environment variables
func Load() (Config, error) {
	network, err := types.ParseNetwork(GetEnvOrDefault("ACTIVE_NETWORK", string(types.NetworkMainnet)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ACTIVE_NETWORK: %w", err)
	}

	return Config{
		Port:           GetEnvOrDefault("PORT", "8080"),
		ActiveNetwork:  network,
		RPCURL:         GetEnvOrDefault("RPC_URL", ""),
		RPCTimeout:     GetEnvAsDuration("RPC_TIMEOUT", 10*time.Second),
		PoolsFile:      GetEnvOrDefault("POOLS_FILE", ""),
		OtelEndpoint:   GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RateLimitRPS:   GetEnvAsFloat("RATE_LIMIT_RPS", 50.0),
		RateLimitBurst: GetEnvAsInt("RATE_LIMIT_BURST", 100),
		EnableMetrics:  GetEnvAsBool("ENABLE_METRICS", true),
		LogLevel:       strings.ToLower(GetEnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(GetEnvOrDefault("LOG_FORMAT", "text")),
	}, nil
}

// GetEnv retrieves an environment variable and whether it exists
func GetEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetEnvOrDefault retrieves an environment variable or returns the default value if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := GetEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an integer with a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := GetEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsFloat retrieves an environment variable as a float with a default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := GetEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvAsBool retrieves an environment variable as a boolean with a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := GetEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration retrieves an environment variable as a duration with a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := GetEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
