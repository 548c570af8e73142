package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/redis"
)

// newSnapshotStore выбирает backend снапшот-хранилища по конфигурации.
// Возвращает хранилище и функцию освобождения ресурсов.
func newSnapshotStore(ctx context.Context, cfg Config, logger *log.Entry) (domain.SnapshotStore, func(), error) {
	switch cfg.StorageBackend {
	case "", StorageMemory:
		logger.Info("using in-memory snapshot store")
		return memory.NewSnapshotStore(), func() {}, nil

	case StorageRedis:
		client, err := redis.Open(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.WithField("addr", cfg.RedisAddr).Info("using redis snapshot store")
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.WithError(err).Warn("failed to close redis client")
			}
		}
		return redis.NewSnapshotStore(client), closeFn, nil

	case StoragePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("using postgres snapshot store")
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}
		return postgres.NewSnapshotStore(store), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
