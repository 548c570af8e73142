package main

import (
	"testing"

	"github.com/vladislavdragonenkov/shopcart/internal/app"
)

func TestReadConfig_Defaults(t *testing.T) {
	cfg := readConfig()

	if cfg != app.DefaultConfig() {
		t.Fatalf("expected default config, got %#v", cfg)
	}
}

func TestReadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SHOPCART_HTTP_ADDR", "localhost:8081")
	t.Setenv("SHOPCART_METRICS_ADDR", "localhost:9091")
	t.Setenv("SHOPCART_STORAGE", "redis")
	t.Setenv("SHOPCART_REDIS_ADDR", "redis:6379")
	t.Setenv("SHOPCART_CATALOG_URL", "http://catalog.local")
	t.Setenv("SHOPCART_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SHOPCART_SNAPSHOT_KEY", "cart-v2")
	t.Setenv("SHOPCART_PAGE_SIZE", "6")

	cfg := readConfig()

	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != "localhost:9091" {
		t.Fatalf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.StorageBackend != "redis" {
		t.Fatalf("unexpected storage backend: %s", cfg.StorageBackend)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected redis addr: %s", cfg.RedisAddr)
	}
	if cfg.CatalogBaseURL != "http://catalog.local" {
		t.Fatalf("unexpected catalog url: %s", cfg.CatalogBaseURL)
	}
	if cfg.KafkaBrokers != "kafka-1:9092,kafka-2:9092" {
		t.Fatalf("unexpected kafka brokers: %s", cfg.KafkaBrokers)
	}
	if cfg.SnapshotKey != "cart-v2" {
		t.Fatalf("unexpected snapshot key: %s", cfg.SnapshotKey)
	}
	if cfg.PageSize != 6 {
		t.Fatalf("unexpected page size: %d", cfg.PageSize)
	}
}

func TestReadConfig_InvalidPageSizeIgnored(t *testing.T) {
	t.Setenv("SHOPCART_PAGE_SIZE", "three")

	cfg := readConfig()
	if cfg.PageSize != app.DefaultConfig().PageSize {
		t.Fatalf("invalid page size must keep default, got %d", cfg.PageSize)
	}
}
