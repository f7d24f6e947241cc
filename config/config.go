package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port         string
	AllowOrigins []string

	// Gemini
	GeminiAPIKey string
	TextModel    string
	ImageModel   string
	EditModel    string

	// Upload limits
	MaxUploadBytes int64

	// Session lifecycle
	WorkspaceTTL    time.Duration
	JanitorInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		AllowOrigins: parseList(getEnv("ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		TextModel:    getEnv("TEXT_MODEL", "gemini-2.5-flash"),
		ImageModel:   getEnv("IMAGE_MODEL", "imagen-4.0-generate-001"),
		EditModel:    getEnv("EDIT_MODEL", "gemini-2.5-flash-image"),

		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 8*1024*1024)),

		WorkspaceTTL:    getEnvAsDuration("WORKSPACE_TTL", time.Hour),
		JanitorInterval: getEnvAsDuration("JANITOR_INTERVAL", 10*time.Minute),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if c.WorkspaceTTL <= 0 {
		return errors.New("WORKSPACE_TTL must be positive")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseList(listStr string) []string {
	if listStr == "" {
		return []string{}
	}
	parts := strings.Split(listStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, TextModel: %s, ImageModel: %s, EditModel: %s, APIKey set: %t}",
		c.Port, c.TextModel, c.ImageModel, c.EditModel, c.GeminiAPIKey != "")
}
