// Package backend selects the storage.Adapter named by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"checklist/internal/backend/filekv"
	"checklist/internal/backend/memkv"
	"checklist/internal/backend/mysqlkv"
	"checklist/internal/config"
	"checklist/internal/storage"
)

// Backend names accepted in storage.backend.
const (
	File   = "file"
	Memory = "memory"
	MySQL  = "mysql"
)

// Open returns the adapter for cfg.Storage.Backend and a function that
// releases its resources.
func Open(ctx context.Context, cfg *config.Config) (storage.Adapter, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case File, "":
		s, err := filekv.New(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		slog.DebugContext(ctx, "storage opened", "backend", File, "dir", s.Dir())
		return s, noop, nil
	case Memory:
		slog.DebugContext(ctx, "storage opened", "backend", Memory)
		return memkv.New(), noop, nil
	case MySQL:
		s, err := mysqlkv.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		slog.DebugContext(ctx, "storage opened", "backend", MySQL)
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
