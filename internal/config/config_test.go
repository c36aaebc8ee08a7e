package config

import (
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{
			"PORT", "DEFAULT_RANK_K", "DEFAULT_PLAN_DAYS", "REQUEST_TIMEOUT", "RATE_LIMIT_PER_MINUTE",
			"CORS_ALLOWED_ORIGINS", "API_JWT_SECRET", "GEMINI_API_KEY", "GEMINI_EMBEDDING_MODEL",
		} {
			setEnv(key, "")
		}

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
		}
		if cfg.DefaultRankK != 40 {
			t.Errorf("Expected DefaultRankK to be 40, got %d", cfg.DefaultRankK)
		}
		if cfg.DefaultDays != 7 {
			t.Errorf("Expected DefaultDays to be 7, got %d", cfg.DefaultDays)
		}
		if cfg.RequestTimeout != 10*time.Second {
			t.Errorf("Expected RequestTimeout to be 10s, got %v", cfg.RequestTimeout)
		}
		if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
			t.Errorf("Expected AllowedOrigins to be [*], got %v", cfg.AllowedOrigins)
		}
		if cfg.EmbeddingModel != "text-embedding-004" {
			t.Errorf("Expected EmbeddingModel to be 'text-embedding-004', got '%s'", cfg.EmbeddingModel)
		}
		if cfg.TasteEmbeddingsEnabled() {
			t.Error("Expected taste embeddings to be disabled without GEMINI_API_KEY")
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("PORT", "9090")
		setEnv("DEFAULT_RANK_K", "12")
		setEnv("DEFAULT_PLAN_DAYS", "5")
		setEnv("REQUEST_TIMEOUT", "750ms")
		setEnv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test ,")
		setEnv("GEMINI_API_KEY", "gemini_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "9090" || cfg.DefaultRankK != 12 || cfg.DefaultDays != 5 {
			t.Errorf("Expected overrides to apply, got %+v", cfg)
		}
		if cfg.RequestTimeout != 750*time.Millisecond {
			t.Errorf("Expected RequestTimeout to be 750ms, got %v", cfg.RequestTimeout)
		}
		if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.test" {
			t.Errorf("Expected two trimmed origins, got %v", cfg.AllowedOrigins)
		}
		if !cfg.TasteEmbeddingsEnabled() {
			t.Error("Expected taste embeddings to be enabled")
		}
	})

	t.Run("InvalidRankK", func(t *testing.T) {
		setEnv("DEFAULT_RANK_K", "many")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for invalid DEFAULT_RANK_K, got nil")
		}
		expectedError := `invalid DEFAULT_RANK_K: strconv.Atoi: parsing "many": invalid syntax`
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("ZeroPlanDays", func(t *testing.T) {
		setEnv("DEFAULT_RANK_K", "")
		setEnv("DEFAULT_PLAN_DAYS", "0")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for DEFAULT_PLAN_DAYS=0, got nil")
		}
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		setEnv("DEFAULT_PLAN_DAYS", "")
		setEnv("REQUEST_TIMEOUT", "soon")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for invalid REQUEST_TIMEOUT, got nil")
		}
	})
}
