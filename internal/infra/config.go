package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	GeoIPDBPath    string

	// ScreenshotDir, when set, enables archiving of renderer screenshots.
	ScreenshotDir string

	// Primary queue-based image provider.
	QueueImageAPIKey  string
	QueueImageBaseURL string
	QueueImageModel   string

	// Secondary structured image provider.
	StructuredImageAPIKey  string
	StructuredImageBaseURL string
	StructuredImageProxy   bool

	// Scene instruction translator.
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		GeoIPDBPath:    os.Getenv("GEOIP_DB_PATH"),
		ScreenshotDir:  os.Getenv("SCREENSHOT_DIR"),

		QueueImageAPIKey:  os.Getenv("QUEUE_IMAGE_API_KEY"),
		QueueImageBaseURL: getEnv("QUEUE_IMAGE_BASE_URL", "https://queue.fal.run"),
		QueueImageModel:   getEnv("QUEUE_IMAGE_MODEL", "fal-ai/flux/schnell"),

		StructuredImageAPIKey:  os.Getenv("STRUCTURED_IMAGE_API_KEY"),
		StructuredImageBaseURL: getEnv("STRUCTURED_IMAGE_BASE_URL", "https://api.scenepix.dev/v1/generate"),
		StructuredImageProxy:   getEnvBool("STRUCTURED_IMAGE_PROXY", false),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
