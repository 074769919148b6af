// Package admission decides whether the recurring measurement task may be
// queued: a pure time-of-day gate plus an engine that reads the relevant
// settings and performs the insert.
package admission

// Window is the daily measurement window in whole hours on a 24-hour
// clock. The interval is half open: Start is included, Stop is excluded,
// so Start==Stop admits nothing.
//
// A window with Start > Stop is NOT treated as wrapping past midnight; it
// also admits nothing. Overnight windows have never been supported on the
// stations and silently "fixing" the interval here would change deployed
// scheduling behavior.
type Window struct {
	Start int
	Stop  int
}

// Admit reports whether an automated measurement may be queued at the
// given hour. Manual mode suppresses admission regardless of the window.
func Admit(hour int, manual bool, w Window) bool {
	if manual {
		return false
	}
	return w.Start <= hour && hour < w.Stop
}
