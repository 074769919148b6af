package storage

import (
	"context"
	"path/filepath"
	"testing"

	"stationq/internal/queue"
	"stationq/pkg/logx"
)

// testStores builds one store per driver so every driver is held to the
// same contract.
func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlitePath := filepath.Join(t.TempDir(), "stationq.db")
	sq, err := Open(Config{Driver: "sqlite", Path: sqlitePath}, logx.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })

	mem, err := Open(Config{Driver: "memory"}, logx.Nop())
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	t.Cleanup(func() { _ = mem.Close() })

	return map[string]Store{"sqlite": sq, "memory": mem}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, found, err := st.GetSetting(ctx, "manual"); err != nil || found {
				t.Fatalf("fresh store: found=%v err=%v", found, err)
			}
			if err := st.SetSetting(ctx, "manual", "0"); err != nil {
				t.Fatalf("SetSetting: %v", err)
			}
			// Upsert replaces the value.
			if err := st.SetSetting(ctx, "manual", "1"); err != nil {
				t.Fatalf("SetSetting upsert: %v", err)
			}
			v, found, err := st.GetSetting(ctx, "manual")
			if err != nil || !found || v != "1" {
				t.Fatalf("GetSetting = %q, %v, %v", v, found, err)
			}
		})
	}
}

func TestQueueOrderingAndMarkDone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			inserts := []struct {
				action   queue.Action
				priority int
				options  string
			}{
				{queue.ActionBackupFTP, 2, ""},
				{queue.ActionMeasure, 1, "fast"},
				{queue.ActionMeasure, 2, ""},
				{queue.ActionSetClockGNSS, 1, ""},
			}
			for _, in := range inserts {
				if err := st.InsertTask(ctx, in.action, in.priority, in.options); err != nil {
					t.Fatalf("InsertTask: %v", err)
				}
			}

			tasks, err := st.ListPending(ctx)
			if err != nil {
				t.Fatalf("ListPending: %v", err)
			}
			if len(tasks) != len(inserts) {
				t.Fatalf("pending = %d, want %d", len(tasks), len(inserts))
			}
			// Priority ascending, then id ascending within a priority.
			for i := 1; i < len(tasks); i++ {
				prev, cur := tasks[i-1], tasks[i]
				if prev.Priority > cur.Priority ||
					(prev.Priority == cur.Priority && prev.ID >= cur.ID) {
					t.Fatalf("ordering violated at %d: %+v before %+v", i, prev, cur)
				}
			}
			if tasks[0].Action != queue.ActionMeasure || tasks[0].Options != "fast" {
				t.Fatalf("first pending task should be the priority-1 measure: %+v", tasks[0])
			}

			if err := st.MarkDone(ctx, tasks[0].ID); err != nil {
				t.Fatalf("MarkDone: %v", err)
			}
			tasks, err = st.ListPending(ctx)
			if err != nil {
				t.Fatalf("ListPending after MarkDone: %v", err)
			}
			if len(tasks) != len(inserts)-1 {
				t.Fatalf("pending after MarkDone = %d, want %d", len(tasks), len(inserts)-1)
			}
			for _, task := range tasks {
				if task.Options == "fast" {
					t.Fatal("done task still listed as pending")
				}
			}

			if err := st.MarkDone(ctx, 999999); err == nil {
				t.Fatal("MarkDone on a missing id should fail")
			}
		})
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if err := st.InsertTask(ctx, queue.ActionMeasure, 2, ""); err != nil {
					t.Fatalf("InsertTask: %v", err)
				}
			}
			tasks, err := st.ListPending(ctx)
			if err != nil {
				t.Fatalf("ListPending: %v", err)
			}
			for i := 1; i < len(tasks); i++ {
				if tasks[i].ID <= tasks[i-1].ID {
					t.Fatalf("ids not increasing: %d then %d", tasks[i-1].ID, tasks[i].ID)
				}
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "postgres"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "sqlite"}, logx.Nop()); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
}
