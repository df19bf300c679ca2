package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OFFER_PRICE_CENTS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.OfferPriceCents != 29700 {
		t.Fatalf("expected default offer price, got %d", cfg.OfferPriceCents)
	}
	if cfg.OfferListPriceCents != 49700 {
		t.Fatalf("expected default list price, got %d", cfg.OfferListPriceCents)
	}
	if cfg.OfferWindow != 24*time.Hour {
		t.Fatalf("expected default offer window, got %s", cfg.OfferWindow)
	}
	if cfg.ProcessingDelay != 3*time.Second {
		t.Fatalf("expected default processing delay, got %s", cfg.ProcessingDelay)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no default CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("OFFER_PRICE_CENTS", "19700")
	t.Setenv("PROCESSING_DELAY", "50ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected database url override, got %s", cfg.DatabaseURL)
	}
	if cfg.OfferPriceCents != 19700 {
		t.Fatalf("expected offer price override, got %d", cfg.OfferPriceCents)
	}
	if cfg.ProcessingDelay != 50*time.Millisecond {
		t.Fatalf("expected processing delay override, got %s", cfg.ProcessingDelay)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected parsed CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerSecond != 2.5 {
		t.Fatalf("expected rate limit override, got %f", cfg.RateLimitPerSecond)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("OFFER_PRICE_CENTS", "not-a-number")
	t.Setenv("PROCESSING_DELAY", "soon")
	t.Setenv("REDIS_TLS", "maybe")

	cfg := Load()
	if cfg.OfferPriceCents != 29700 {
		t.Fatalf("expected fallback offer price, got %d", cfg.OfferPriceCents)
	}
	if cfg.ProcessingDelay != 3*time.Second {
		t.Fatalf("expected fallback processing delay, got %s", cfg.ProcessingDelay)
	}
	if cfg.RedisTLS {
		t.Fatal("expected fallback redis TLS false")
	}
}
