package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

const opTimeout = 5 * time.Second

type snapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore создаёт PostgreSQL-реализацию SnapshotStore поверх
// таблицы cart_snapshots (key -> jsonb payload).
func NewSnapshotStore(store *Store) domain.SnapshotStore {
	return &snapshotStore{db: store.DB()}
}

func (s *snapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var payload []byte
	err := s.db.QueryRowContext(opCtx, `
		SELECT payload
		FROM cart_snapshots
		WHERE key = $1
	`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("select cart snapshot: %w", err)
	}
	return payload, nil
}

func (s *snapshotStore) Set(ctx context.Context, key string, value []byte) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.ExecContext(opCtx, `
		INSERT INTO cart_snapshots (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert cart snapshot: %w", err)
	}
	return nil
}

func (s *snapshotStore) Delete(ctx context.Context, key string) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(opCtx, `DELETE FROM cart_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}

func (s *snapshotStore) Ping(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.db.PingContext(opCtx)
}

var _ domain.SnapshotStore = (*snapshotStore)(nil)
