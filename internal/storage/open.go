package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stationq/internal/queue"
	"stationq/pkg/logx"
)

// Config configures storage.
//
// Driver values:
//   - "sqlite" (or empty): SQLite database file
//   - "memory": in-process store, nothing persists
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Store is the persistence API the rest of the tool relies on.
//
// InsertTask must be atomic; that is the only guarantee cross-process
// submitters depend on. MarkDone exists for the external worker that
// drains the queue; nothing in this tool calls it outside tests.
type Store interface {
	GetSetting(ctx context.Context, key string) (value string, found bool, err error)
	SetSetting(ctx context.Context, key, value string) error

	InsertTask(ctx context.Context, action queue.Action, priority int, options string) error
	// ListPending returns undone tasks ordered by priority, then id.
	ListPending(ctx context.Context) ([]queue.Task, error)
	MarkDone(ctx context.Context, id int64) error

	Close() error
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	case "memory":
		return newMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", driver)
	}
}
