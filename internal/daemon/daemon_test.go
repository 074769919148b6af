package daemon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"stationq/internal/config"
	"stationq/pkg/logx"
)

func TestRunRejectsBadSchedule(t *testing.T) {
	t.Parallel()
	s := New(config.DaemonConfig{Schedule: "every other tuesday"}, func(context.Context) error { return nil }, logx.Nop())
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected invalid schedule to fail Run")
	}
}

func TestRunRejectsBadTimezone(t *testing.T) {
	t.Parallel()
	s := New(config.DaemonConfig{Schedule: "@hourly", Timezone: "Mars/Olympus"}, func(context.Context) error { return nil }, logx.Nop())
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected invalid timezone to fail Run")
	}
}

func TestRunFiresCycle(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	cycle := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := New(config.DaemonConfig{Schedule: "@every 50ms"}, cycle, logx.Nop())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(3 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("cycle never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestApplyKeepsPreviousScheduleOnError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(config.DaemonConfig{Schedule: "@every 1h"}, func(context.Context) error { return nil }, logx.Nop())
	go func() { _ = s.Run(ctx) }()

	// Wait for the cron instance to come up.
	deadline := time.After(3 * time.Second)
	for {
		s.mu.Lock()
		running := s.c != nil
		s.mu.Unlock()
		if running {
			break
		}
		select {
		case <-deadline:
			t.Fatal("daemon never started")
		case <-time.After(10 * time.Millisecond):
		}
	}

	s.Apply(config.DaemonConfig{Schedule: "gibberish"})
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		t.Fatal("daemon lost its cron instance after a bad reload")
	}
}
