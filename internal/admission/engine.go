package admission

import (
	"context"
	"fmt"
	"time"

	"stationq/internal/queue"
	"stationq/internal/settings"
	"stationq/pkg/logx"
)

// Outcome is the result of one admission cycle. Both values are normal,
// non-error results; configuration and store failures are reported through
// the error return instead.
type Outcome int

const (
	OutcomeSuppressed Outcome = iota
	OutcomeAdmitted
)

func (o Outcome) String() string {
	if o == OutcomeAdmitted {
		return "admitted"
	}
	return "suppressed"
}

// Inserter is the queue surface the engine writes to.
type Inserter interface {
	InsertTask(ctx context.Context, action queue.Action, priority int, options string) error
}

// Engine evaluates the time-window gate against live settings and, when it
// admits, queues one measurement. It keeps no state between cycles and
// does not deduplicate: every admitted cycle inserts a new task, so the
// call cadence (one cron tick per hour, typically) is the dedup policy.
type Engine struct {
	settings settings.Store
	queue    Inserter
	now      func() time.Time
	log      logx.Logger
}

func New(st settings.Store, q Inserter, log logx.Logger) *Engine {
	return &Engine{
		settings: st,
		queue:    q,
		now:      time.Now,
		log:      log,
	}
}

// ConsiderMeasurement runs one admission cycle.
//
// A missing or unparseable setting aborts the cycle before anything is
// queued: the returned error wraps settings.ErrInvalid or
// settings.ErrNotFound and nothing else has happened. Gate denial is not
// an error.
func (e *Engine) ConsiderMeasurement(ctx context.Context) (Outcome, error) {
	manual, err := settings.GetBool(ctx, e.settings, settings.KeyManual)
	if err != nil {
		return OutcomeSuppressed, err
	}
	start, err := settings.GetInt(ctx, e.settings, settings.KeyMeasurementsStartHour)
	if err != nil {
		return OutcomeSuppressed, err
	}
	stop, err := settings.GetInt(ctx, e.settings, settings.KeyMeasurementsStopHour)
	if err != nil {
		return OutcomeSuppressed, err
	}

	hour := e.now().Hour()
	w := Window{Start: start, Stop: stop}
	if !Admit(hour, manual, w) {
		e.log.Debug("measurement suppressed",
			logx.Int("hour", hour),
			logx.Bool("manual", manual),
			logx.Int("start_hour", start),
			logx.Int("stop_hour", stop),
		)
		return OutcomeSuppressed, nil
	}

	if err := e.queue.InsertTask(ctx, queue.ActionMeasure, queue.PriorityNormal, ""); err != nil {
		return OutcomeSuppressed, fmt.Errorf("queue measurement: %w", err)
	}
	e.log.Info("measurement queued", logx.Int("hour", hour))
	return OutcomeAdmitted, nil
}
