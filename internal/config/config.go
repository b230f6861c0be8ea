package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Batch     BatchConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string // empty DSN runs the API on the in-memory store
}

type BatchConfig struct {
	MaxBatchSize    int
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type CacheConfig struct {
	SnapshotTTL time.Duration
}

type TelemetryConfig struct {
	Enabled     bool
	SampleRate  float64
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Batch: BatchConfig{
			MaxBatchSize:    getEnvAsInt("BATCH_MAX_SIZE", 500),
			MaxAttempts:     getEnvAsInt("BATCH_MAX_ATTEMPTS", 5),
			InitialInterval: getEnvAsDuration("BATCH_INITIAL_BACKOFF", 200*time.Millisecond),
			MaxInterval:     getEnvAsDuration("BATCH_MAX_BACKOFF", 5*time.Second),
		},
		Cache: CacheConfig{
			SnapshotTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			SampleRate:  ClampRate(getEnvAsFloat("OTEL_SAMPLE_RATE", 1.0)),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "vpp-configurator"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ClampRate bounds a sample rate to [0, 1]. NaN reads as 0.
func ClampRate(rate float64) float64 {
	if !(rate > 0) {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
