package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the backend service
type Config struct {
	// HTTP
	Port           string
	AllowedOrigins []string

	// Simulation
	DefaultCity    string
	CacheTTL       time.Duration
	TickInterval   time.Duration
	StreamInterval time.Duration

	// Geocoding
	OfflineMode  bool
	NominatimURL string
	UserAgent    string

	// Contact mail
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	ContactTo string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// HTTP
		Port:           getEnv("PORT", "4000"),
		AllowedOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),

		// Simulation
		DefaultCity:    getEnv("DEFAULT_CITY", "Bengaluru"),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		TickInterval:   time.Duration(getEnvInt("TICK_INTERVAL_SECONDS", 1)) * time.Second,
		StreamInterval: time.Duration(getEnvInt("STREAM_INTERVAL_SECONDS", 1)) * time.Second,

		// Geocoding
		OfflineMode:  getEnvBool("OFFLINE", false),
		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		UserAgent:    getEnv("GEOCODER_USER_AGENT", "sanketa-demo/0.1 (+https://example.com)"),

		// Contact mail
		SMTPHost:  getEnv("SMTP_HOST", ""),
		SMTPPort:  getEnvInt("SMTP_PORT", 587),
		SMTPUser:  getEnv("SMTP_USER", ""),
		SMTPPass:  getEnv("SMTP_PASS", ""),
		ContactTo: getEnv("CONTACT_TO", ""),
	}
}

func getEnv(key, defaultValue string) string {
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
