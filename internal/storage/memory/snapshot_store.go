package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// snapshotStoreInMemory — простая in-memory реализация SnapshotStore
// для локальной разработки и тестов.
type snapshotStoreInMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewSnapshotStore возвращает in-memory хранилище снапшотов.
func NewSnapshotStore() domain.SnapshotStore {
	return &snapshotStoreInMemory{
		values: make(map[string][]byte),
	}
}

func (s *snapshotStoreInMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	// Отдаём копию, чтобы избежать непредсказуемых мутаций извне.
	cloned := make([]byte, len(value))
	copy(cloned, value)
	return cloned, nil
}

func (s *snapshotStoreInMemory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cloned := make([]byte, len(value))
	copy(cloned, value)
	s.values[key] = cloned
	return nil
}

func (s *snapshotStoreInMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *snapshotStoreInMemory) Ping(context.Context) error {
	return nil
}

var _ domain.SnapshotStore = (*snapshotStoreInMemory)(nil)
