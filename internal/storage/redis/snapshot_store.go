package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

const opTimeout = 3 * time.Second

// snapshotStore хранит снапшот корзины в Redis. TTL не задаётся:
// корзина живёт в хранилище бессрочно, пока её явно не очистят.
type snapshotStore struct {
	client *goredis.Client
}

// NewSnapshotStore создаёт Redis-реализацию SnapshotStore.
func NewSnapshotStore(client *goredis.Client) domain.SnapshotStore {
	return &snapshotStore{client: client}
}

// Open подключается к Redis и проверяет доступность.
func Open(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *snapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	value, err := s.client.Get(opCtx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

func (s *snapshotStore) Set(ctx context.Context, key string, value []byte) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(opCtx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *snapshotStore) Delete(ctx context.Context, key string) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Del(opCtx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *snapshotStore) Ping(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.client.Ping(opCtx).Err()
}

var _ domain.SnapshotStore = (*snapshotStore)(nil)
