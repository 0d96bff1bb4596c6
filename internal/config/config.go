// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobradar/internal/types"
)

// Config holds the service configuration. Credential fields may be empty;
// the source they gate is then disabled rather than erroring.
type Config struct {
	Port         int           `validate:"min=1,max=65535"`
	CacheTTL     time.Duration `validate:"min=0"`
	RapidAPIKey  string
	AdzunaAppID  string
	AdzunaAppKey string
	WarmSchedule string `validate:"required"`
}

var validate = validator.New()

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvInt("PORT", 8080),
		CacheTTL:     getEnvDuration("CACHE_TTL", time.Hour),
		RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"),
		AdzunaAppID:  os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey: os.Getenv("ADZUNA_APP_KEY"),
		WarmSchedule: getEnvString("WARM_SCHEDULE", "@every 30m"),
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// EnabledSources returns the sources that will contribute listings given
// the configured credentials, in aggregation order. Keyless boards are
// always enabled.
func (c *Config) EnabledSources() []types.Source {
	enabled := make([]types.Source, 0, 4)
	for _, src := range types.Sources() {
		switch src {
		case types.SourceJSearch:
			if c.RapidAPIKey == "" {
				continue
			}
		case types.SourceAdzuna:
			if c.AdzunaAppID == "" || c.AdzunaAppKey == "" {
				continue
			}
		}
		enabled = append(enabled, src)
	}
	return enabled
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
