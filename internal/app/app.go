// Package app wires config, logging, storage and the admission engine
// into the operations the CLI exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"stationq/internal/admission"
	"stationq/internal/config"
	"stationq/internal/daemon"
	"stationq/internal/queue"
	"stationq/internal/settings"
	"stationq/internal/storage"
	"stationq/pkg/logx"
	"stationq/pkg/mail"
)

type App struct {
	cfgMgr *config.Manager
	logSvc *logx.Service
	log    logx.Logger
	store  storage.Store
	engine *admission.Engine
}

// New loads the config file (falling back to defaults when none exists),
// brings up logging and opens the store. The store connection is released
// by Close on every exit path.
func New(ctx context.Context, cfgPath string) (*App, error) {
	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
		mgr.Commit(cfg)
	} else if err != nil {
		return nil, fmt.Errorf("load config %q: %w", cfgPath, err)
	}

	logSvc, log := logx.New(logxConfig(cfg.Logging))
	mgr.SetLogger(log)

	st, err := storage.Open(storage.Config{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		BusyTimeout: cfg.BusyTimeout(),
	}, log)
	if err != nil {
		_ = logSvc.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if err := settings.EnsureDefaults(ctx, st); err != nil {
		_ = st.Close()
		_ = logSvc.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	return &App{
		cfgMgr: mgr,
		logSvc: logSvc,
		log:    log,
		store:  st,
		engine: admission.New(st, st, log),
	}, nil
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logSvc != nil {
		_ = a.logSvc.Close()
	}
}

// Add normalizes a raw manual submission and queues it.
func (a *App) Add(ctx context.Context, raw string) error {
	sub, err := queue.Normalize(raw)
	if err != nil {
		return err
	}
	if err := a.store.InsertTask(ctx, sub.Action, sub.Priority, sub.Options); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	a.log.Info("task queued",
		logx.String("action", string(sub.Action)),
		logx.Int("priority", sub.Priority),
		logx.String("options", sub.Options),
	)
	return nil
}

// List writes the pending-task table to w. An empty queue writes nothing.
func (a *App) List(ctx context.Context, w io.Writer) error {
	tasks, err := a.store.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}
	_, err = io.WriteString(w, queue.Render(tasks))
	return err
}

// Cron runs one admission cycle, the operation the station's scheduler
// triggers unattended. Email log reporting is armed first so a
// configuration error reaches the operator, matching how the station has
// always reported cron failures.
func (a *App) Cron(ctx context.Context) (admission.Outcome, error) {
	a.armEmailLog(ctx)
	outcome, err := a.engine.ConsiderMeasurement(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrInvalid) || errors.Is(err, settings.ErrNotFound) {
			a.log.Error("invalid configuration value; measurement not considered", logx.Err(err))
		} else {
			a.log.Error("admission cycle failed", logx.Err(err))
		}
		return outcome, err
	}
	return outcome, nil
}

// Boot records that the system restarted and needs clock/location setup.
func (a *App) Boot(ctx context.Context) error {
	if err := settings.MarkNeedsSetup(ctx, a.store); err != nil {
		return fmt.Errorf("mark needs setup: %w", err)
	}
	a.log.Info("post-boot marker set", logx.String("setting", settings.KeySystemSetUp))
	return nil
}

// Run keeps the process resident: admission cycles on the configured
// schedule, config hot reload, systemd integration.
func (a *App) Run(ctx context.Context) error {
	cfg := a.cfgMgr.Get()
	svc := daemon.New(cfg.Daemon, func(ctx context.Context) error {
		_, err := a.Cron(ctx)
		return err
	}, a.log)

	go func() {
		err := a.cfgMgr.Watch(ctx, func(cfg *config.Config) {
			a.logSvc.Apply(logxConfig(cfg.Logging))
			svc.Apply(cfg.Daemon)
		})
		if err != nil {
			a.log.Warn("config watch unavailable", logx.Err(err))
		}
	}()

	return svc.Run(ctx)
}

// armEmailLog attaches the email sink when the station's settings enable
// it. Any gap in the email_* settings just leaves the sink off; email is
// a reporting channel, never a reason to fail the cycle itself.
func (a *App) armEmailLog(ctx context.Context) {
	if !a.cfgMgr.Get().Logging.Email.Enabled {
		return
	}
	enabled, err := settings.GetBool(ctx, a.store, settings.KeyEmailEnabled)
	if err != nil || !enabled {
		return
	}

	get := func(key string) string {
		v, err := settings.Get(ctx, a.store, key)
		if err != nil {
			return ""
		}
		return v
	}
	recipient := get(settings.KeyEmailRecipient)
	server := get(settings.KeyEmailServerPort)
	if strings.TrimSpace(recipient) == "" || strings.TrimSpace(server) == "" {
		a.log.Warn("email reporting enabled but email_recipient/email_server_port not set")
		return
	}
	stationID := get(settings.KeyStationID)

	sender := mail.NewSMTP(server, get(settings.KeyEmailUser), get(settings.KeyEmailPassword))
	a.logSvc.SetEmail(sender, recipient, stationID)
}

func logxConfig(lc config.LoggingConfig) logx.Config {
	return logx.Config{
		Level:   lc.Level,
		Console: lc.Console,
		File: logx.FileConfig{
			Enabled: lc.File.Enabled,
			Path:    lc.File.Path,
		},
		Email: logx.EmailConfig{
			Enabled:    lc.Email.Enabled,
			MinLevel:   lc.Email.MinLevel,
			RatePerSec: lc.Email.RatePerSec,
		},
	}
}
