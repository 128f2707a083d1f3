// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// CompletionConfig provides settings for the text completion client.
type CompletionConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// GeoConfig provides settings for the address normalization and
// administrative boundary collaborators.
type GeoConfig interface {
	GetNormalizerURL() string
	GetBoundaryBaseURL() string
}

// OverpassConfig provides settings for the spatial-data query API.
type OverpassConfig interface {
	GetOverpassURL() string
	GetOverpassRPS() float64
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides settings for the resolve endpoint rate limiter.
type RateLimitConfig interface {
	GetResolveRPM() float64
	GetResolveBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	CORSAllowAll    bool
	CORSOrigins     []string
	CORSAllowCreds  bool
	GeminiAPIKey    string
	GeminiModel     string
	NormalizerURL   string
	BoundaryBaseURL string
	OverpassURL     string
	OverpassRPS     float64
	ResolveRPM      float64
	ResolveBurst    int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// CompletionConfig implementation
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }

// GeoConfig implementation
func (c *Config) GetNormalizerURL() string   { return c.NormalizerURL }
func (c *Config) GetBoundaryBaseURL() string { return c.BoundaryBaseURL }

// OverpassConfig implementation
func (c *Config) GetOverpassURL() string  { return c.OverpassURL }
func (c *Config) GetOverpassRPS() float64 { return c.OverpassRPS }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetResolveRPM() float64 { return c.ResolveRPM }
func (c *Config) GetResolveBurst() int   { return c.ResolveBurst }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		NormalizerURL:   getEnv("ADDRESS_NORMALIZER_URL", ""),
		BoundaryBaseURL: getEnv("BOUNDARY_BASE_URL", "https://naogify.github.io/japanese-admins"),
		OverpassURL:     getEnv("OVERPASS_API_URL", "https://overpass-api.de/api/interpreter"),
		OverpassRPS:     mustFloat(getEnv("OVERPASS_RPS", "1")),
		ResolveRPM:      mustFloat(getEnv("RESOLVE_RATE_LIMIT_RPM", "10")),
		ResolveBurst:    int(mustFloat(getEnv("RESOLVE_RATE_LIMIT_BURST", "3"))),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.NormalizerURL == "" {
		return nil, fmt.Errorf("ADDRESS_NORMALIZER_URL is required")
	}
	if cfg.OverpassRPS <= 0 {
		return nil, fmt.Errorf("OVERPASS_RPS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
