package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	RateLimitPerSecond float64
	RateLimitBurst     int

	NotifyInterval      time.Duration
	NotifyBatchSize     int
	NotifySMSProvider   string
	NotifyEmailProvider string

	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads .env when present, then the environment. Missing keys fall back
// to defaults suitable for local development.
func Load() Config {
	_ = godotenv.Load()

	port := os.Getenv("MEDBUD_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DB_DSN"),

		RateLimitPerSecond: readFloat("MEDBUD_RATE_LIMIT_PER_SEC", 5),
		RateLimitBurst:     readInt("MEDBUD_RATE_LIMIT_BURST", 20),

		NotifyInterval:      readDuration("MEDBUD_NOTIFY_INTERVAL", 5*time.Second),
		NotifyBatchSize:     readInt("MEDBUD_NOTIFY_BATCH", 50),
		NotifySMSProvider:   os.Getenv("MEDBUD_NOTIFY_SMS_PROVIDER"),
		NotifyEmailProvider: os.Getenv("MEDBUD_NOTIFY_EMAIL_PROVIDER"),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
