package config

import (
	"testing"
	"time"
)

func TestLoadConfig_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("TEXT_MODEL", "")
	t.Setenv("WORKSPACE_TTL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TextModel == "" {
		t.Error("Expected a default text model")
	}
	if cfg.ImageModel == "" {
		t.Error("Expected a default image model")
	}
	if cfg.WorkspaceTTL != time.Hour {
		t.Errorf("Expected default TTL of 1h, got %v", cfg.WorkspaceTTL)
	}
	if len(cfg.AllowOrigins) == 0 {
		t.Error("Expected default CORS origins")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("WORKSPACE_TTL", "30m")
	t.Setenv("ALLOW_ORIGINS", "https://studio.example.com, https://app.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.WorkspaceTTL != 30*time.Minute {
		t.Errorf("Expected TTL 30m, got %v", cfg.WorkspaceTTL)
	}
	if len(cfg.AllowOrigins) != 2 || cfg.AllowOrigins[1] != "https://app.example.com" {
		t.Errorf("Unexpected origins: %v", cfg.AllowOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		GeminiAPIKey:   "key",
		MaxUploadBytes: 1024,
		WorkspaceTTL:   time.Hour,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}

	cfg.MaxUploadBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for non-positive MAX_UPLOAD_BYTES")
	}
}
