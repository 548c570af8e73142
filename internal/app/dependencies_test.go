package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewSnapshotStore_Memory(t *testing.T) {
	logger := log.WithField("component", "test")

	store, closeFn, err := newSnapshotStore(context.Background(), DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("memory backend must not fail: %v", err)
	}
	defer closeFn()

	if store == nil {
		t.Fatal("expected snapshot store")
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("memory store ping failed: %v", err)
	}
}

func TestNewSnapshotStore_UnknownBackend(t *testing.T) {
	logger := log.WithField("component", "test")
	cfg := DefaultConfig()
	cfg.StorageBackend = "etcd"

	if _, _, err := newSnapshotStore(context.Background(), cfg, logger); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
