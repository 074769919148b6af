// Package daemon runs the admission check on a schedule so stations
// without a crontab can keep `stationq run` resident under systemd.
package daemon

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	sd "github.com/coreos/go-systemd/v22/daemon"
	"github.com/robfig/cron/v3"

	"stationq/internal/config"
	"stationq/pkg/logx"
)

// Cycle is one admission attempt. Errors are reported, never fatal: the
// next tick retries naturally.
type Cycle func(ctx context.Context) error

type Service struct {
	log   logx.Logger
	cycle Cycle

	mu     sync.Mutex
	cfg    config.DaemonConfig
	parser cron.Parser
	c      *cron.Cron

	runCtx context.Context
}

func New(cfg config.DaemonConfig, cycle Cycle, log logx.Logger) *Service {
	return &Service{
		log:   log,
		cycle: cycle,
		cfg:   cfg,
		parser: cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		),
	}
}

// Run blocks until ctx is cancelled. It notifies systemd READY once the
// schedule is armed and feeds the watchdog when one is configured.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	err := s.startLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	_, _ = sd.SdNotify(false, sd.SdNotifyReady)
	s.log.Info("daemon started",
		logx.String("schedule", s.cfg.Schedule),
		logx.String("timezone", timezoneLabel(s.cfg.Timezone)),
	)

	stopWatchdog := s.startWatchdog(ctx)

	<-ctx.Done()

	_, _ = sd.SdNotify(false, sd.SdNotifyStopping)
	stopWatchdog()

	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c != nil {
		// Let an in-flight cycle finish before returning.
		<-c.Stop().Done()
	}
	s.log.Info("daemon stopped")
	return nil
}

// Apply reacts to a config reload: if schedule or timezone changed, the
// cron instance is rebuilt. Safe to call while running.
func (s *Service) Apply(cfg config.DaemonConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.cfg.Schedule != cfg.Schedule ||
		strings.TrimSpace(s.cfg.Timezone) != strings.TrimSpace(cfg.Timezone)
	s.cfg = cfg
	if !changed || s.c == nil {
		return
	}

	old := s.c
	s.c = nil
	old.Stop()
	if err := s.startLocked(); err != nil {
		s.log.Error("schedule rejected; daemon keeps previous schedule", logx.Err(err))
		s.c = old
		s.c.Start()
		return
	}
	s.log.Info("schedule applied",
		logx.String("schedule", cfg.Schedule),
		logx.String("timezone", timezoneLabel(cfg.Timezone)),
	)
}

func (s *Service) startLocked() error {
	loc := time.Local
	if tz := strings.TrimSpace(s.cfg.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("daemon.timezone: %w", err)
		}
		loc = l
	}

	c := cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))
	ctx := s.runCtx
	_, err := c.AddFunc(s.cfg.Schedule, func() {
		if ctx.Err() != nil {
			return
		}
		if err := s.cycle(ctx); err != nil {
			s.log.Warn("admission cycle failed", logx.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("daemon.schedule %q: %w", s.cfg.Schedule, err)
	}
	c.Start()
	s.c = c
	return nil
}

// startWatchdog feeds the systemd watchdog at half its interval. Returns
// a stop func; a no-op when no watchdog is configured.
func (s *Service) startWatchdog(ctx context.Context) func() {
	interval, err := sd.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return func() {}
	}

	done := make(chan struct{})
	var once sync.Once
	go func() {
		t := time.NewTicker(interval / 2)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-t.C:
				_, _ = sd.SdNotify(false, sd.SdNotifyWatchdog)
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

func timezoneLabel(tz string) string {
	if strings.TrimSpace(tz) == "" {
		return "local"
	}
	return tz
}
