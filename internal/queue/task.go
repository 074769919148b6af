// Package queue holds the station's task model: the closed set of actions,
// the manual-submission normalizer, and the pending-task presenter.
package queue

// Action identifies a kind of work the station worker knows how to run.
// The set is closed: anything else is rejected before it reaches the store.
type Action string

const (
	ActionBackupFTP        Action = "backup_ftp"
	ActionMeasure          Action = "measure"
	ActionSetClockGNSS     Action = "set_clock_gnss"
	ActionSetStationParams Action = "set_station_params"
	ActionVacuum           Action = "vacuum_"
)

// Actions lists every action accepted from manual submissions,
// in a stable order (used for usage text).
func Actions() []Action {
	return []Action{
		ActionBackupFTP,
		ActionMeasure,
		ActionSetClockGNSS,
		ActionSetStationParams,
		ActionVacuum,
	}
}

// ParseAction maps a raw string onto the closed action set.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionBackupFTP, ActionMeasure, ActionSetClockGNSS, ActionSetStationParams, ActionVacuum:
		return a, true
	}
	return "", false
}

// Priorities. 1 runs before 2.
const (
	PriorityHigh   = 1
	PriorityNormal = 2
)

// Task is a queued unit of work. ID is store-assigned and monotonically
// increasing. Done is flipped exactly once, by the external worker; this
// tool never mutates a task after insertion.
type Task struct {
	ID       int64
	Action   Action
	Priority int
	Options  string
	Done     bool
}

// Submission is a validated manual request, ready for the store.
type Submission struct {
	Action   Action
	Priority int
	Options  string
}
