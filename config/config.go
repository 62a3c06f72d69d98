package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Gemini configuration
	GeminiAPIKey     string
	GeminiAPIKeyFile string
	GeminiModel      string

	// Unsplash configuration (optional; meal images are skipped without it)
	UnsplashAccessKey string

	// CORS configuration
	AllowedOrigins []string

	// Generation rate limit configuration
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

// LoadConfig creates a new Config instance from environment variables. A .env
// file in the working directory is loaded first if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "platewise"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiAPIKeyFile: os.Getenv("GEMINI_API_KEY_FILE"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.GenerateRateLimit, err = getEnvInt("GENERATE_RATE_LIMIT", 10); err != nil {
		return nil, err
	}

	windowMinutes, err := getEnvInt("GENERATE_RATE_WINDOW_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	cfg.GenerateRateWindow = time.Duration(windowMinutes) * time.Minute

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that required settings are present and sane.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.GeminiAPIKey == "" && cfg.GeminiAPIKeyFile == "" {
		return fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE is required")
	}
	if cfg.GenerateRateLimit < 1 {
		return fmt.Errorf("GENERATE_RATE_LIMIT must be at least 1")
	}
	if cfg.GenerateRateWindow < time.Minute {
		return fmt.Errorf("GENERATE_RATE_WINDOW_MINUTES must be at least 1")
	}
	return nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
