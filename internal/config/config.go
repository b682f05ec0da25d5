package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment  string
	Server       ServerConfig
	Catalog      CatalogConfig
	Configurator ConfiguratorConfig
	PCPartPicker PCPartPickerConfig
	LogLevel     string
}

type ServerConfig struct {
	Port string
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ConfiguratorConfig struct {
	PageSize int
	// "timestamp" or "uuid"
	DefaultNaming string
}

type PCPartPickerConfig struct {
	Region string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8080/api"),
			Timeout: getEnvAsDuration("CATALOG_TIMEOUT", 10*time.Second),
		},
		Configurator: ConfiguratorConfig{
			PageSize:      getEnvAsInt("PAGE_SIZE", 12),
			DefaultNaming: strings.ToLower(getEnv("DEFAULT_NAMING", "timestamp")),
		},
		PCPartPicker: PCPartPickerConfig{
			Region: getEnv("PCPP_REGION", "us"),
		},
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
