package app

import (
	"fmt"

	"github.com/vladislavdragonenkov/shopcart/internal/browse"
	"github.com/vladislavdragonenkov/shopcart/internal/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
)

// Backend снапшот-хранилища корзины.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	CatalogBaseURL string

	// StorageBackend — memory, redis или postgres.
	StorageBackend string
	RedisAddr      string
	PostgresDSN    string

	// KafkaBrokers — список брокеров через запятую; пустой отключает
	// публикацию событий корзины.
	KafkaBrokers string

	SnapshotKey string
	PageSize    int
}

// DefaultConfig возвращает базовую конфигурацию для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		MetricsAddr:    ":9090",
		CatalogBaseURL: catalog.DefaultBaseURL,
		StorageBackend: StorageMemory,
		RedisAddr:      "localhost:6379",
		SnapshotKey:    cart.DefaultSnapshotKey,
		PageSize:       browse.DefaultPageSize,
	}
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis backend requires redis address")
		}
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres backend requires DSN")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	return nil
}
