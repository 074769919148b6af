package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"stationq/internal/queue"
	"stationq/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log}

	// Basic pragmas.
	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *sqliteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings(name, value) VALUES(?,?)
		 ON CONFLICT(name) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

func (s *sqliteStore) InsertTask(ctx context.Context, action queue.Action, priority int, options string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queue(action, priority, options, done) VALUES(?,?,?,0)`,
		string(action), priority, options,
	)
	return err
}

func (s *sqliteStore) ListPending(ctx context.Context) ([]queue.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, priority, options FROM queue
		 WHERE done = 0 ORDER BY priority ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []queue.Task
	for rows.Next() {
		var t queue.Task
		var action string
		if err := rows.Scan(&t.ID, &action, &t.Priority, &t.Options); err != nil {
			return nil, err
		}
		t.Action = queue.Action(action)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *sqliteStore) MarkDone(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE queue SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %d not found", id)
	}
	return nil
}
