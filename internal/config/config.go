package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ai-meal-ranker/internal/reco"
)

// Config holds the configuration for the application.
type Config struct {
	Port           string
	DefaultRankK   int
	DefaultDays    int
	RequestTimeout time.Duration

	RateLimitPerMinute int
	AllowedOrigins     []string
	// JWTSecret enables bearer authentication when set.
	JWTSecret string

	// Taste embeddings (optional)
	GeminiAPIKey       string
	EmbeddingModel     string
	EmbeddingCachePath string

	LogLevel  string
	LogFormat string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	defaultK, err := intFromEnv("DEFAULT_RANK_K", reco.DefaultK)
	if err != nil {
		return nil, err
	}
	if defaultK < 1 {
		return nil, fmt.Errorf("invalid DEFAULT_RANK_K: must be at least 1")
	}

	defaultDays, err := intFromEnv("DEFAULT_PLAN_DAYS", reco.DefaultDays)
	if err != nil {
		return nil, err
	}
	if defaultDays < 1 {
		return nil, fmt.Errorf("invalid DEFAULT_PLAN_DAYS: must be at least 1")
	}

	rateLimit, err := intFromEnv("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}

	timeout := 10 * time.Second
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		timeout, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
	}

	// Fallback to the public model when none is configured. text-embedding-004
	// returns 768 values; candidates embedded in another space (384 in the
	// reference catalog) get no cosine term from it, only cuisine overlap.
	embeddingModel := os.Getenv("GEMINI_EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = "text-embedding-004"
	}

	return &Config{
		Port:               envOr("PORT", "8080"),
		DefaultRankK:       defaultK,
		DefaultDays:        defaultDays,
		RequestTimeout:     timeout,
		RateLimitPerMinute: rateLimit,
		AllowedOrigins:     splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:          os.Getenv("API_JWT_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		EmbeddingModel:     embeddingModel,
		EmbeddingCachePath: os.Getenv("EMBEDDING_CACHE_PATH"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "json"),
	}, nil
}

// TasteEmbeddingsEnabled reports whether a Gemini key was provided.
func (c *Config) TasteEmbeddingsEnabled() bool {
	return c.GeminiAPIKey != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
