// Package settings gives typed access to the station's key/value
// configuration table.
//
// Values are stored as strings and interpreted by the reader. A value that
// does not parse is an operator misconfiguration of scheduling-critical
// state, so the typed getters fail loudly (ErrInvalid) instead of
// defaulting.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Well-known setting keys.
const (
	KeyManual                = "manual"
	KeyMeasurementsStartHour = "measurements_start_hour"
	KeyMeasurementsStopHour  = "measurements_stop_hour"
	KeySystemSetUp           = "system_set_up"
	KeyStationID             = "station_id"
	KeyEmailEnabled          = "email_enabled"
	KeyEmailRecipient        = "email_recipient"
	KeyEmailServerPort       = "email_server_port"
	KeyEmailUser             = "email_user"
	KeyEmailPassword         = "email_password"
)

var (
	// ErrNotFound reports a key with no row in the settings table.
	ErrNotFound = errors.New("setting not found")
	// ErrInvalid reports a value that does not parse as the expected type.
	ErrInvalid = errors.New("invalid setting value")
)

// Store is the key/value surface this package needs from the storage layer.
type Store interface {
	GetSetting(ctx context.Context, key string) (value string, found bool, err error)
	SetSetting(ctx context.Context, key, value string) error
}

// Get returns the raw string value for key.
func Get(ctx context.Context, st Store, key string) (string, error) {
	v, found, err := st.GetSetting(ctx, key)
	if err != nil {
		return "", fmt.Errorf("setting %q: %w", key, err)
	}
	if !found {
		return "", fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	return v, nil
}

// GetInt returns the value for key parsed as an integer.
func GetInt(ctx context.Context, st Store, key string) (int, error) {
	v, err := Get(ctx, st, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("setting %q = %q: %w", key, v, ErrInvalid)
	}
	return n, nil
}

// GetBool interprets the value as an integer flag: zero is false,
// anything else is true. Non-integer values are ErrInvalid.
func GetBool(ctx context.Context, st Store, key string) (bool, error) {
	n, err := GetInt(ctx, st, key)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// MarkNeedsSetup records that the station has rebooted and its clock and
// location must be re-established before unattended operation resumes.
func MarkNeedsSetup(ctx context.Context, st Store) error {
	return st.SetSetting(ctx, KeySystemSetUp, "0")
}

// Defaults seeds a fresh database: no manual override, an 08:00-18:00
// measurement window, email reporting off.
var Defaults = map[string]string{
	KeyManual:                "0",
	KeyMeasurementsStartHour: "8",
	KeyMeasurementsStopHour:  "18",
	KeySystemSetUp:           "1",
	KeyStationID:             "station",
	KeyEmailEnabled:          "0",
}

// EnsureDefaults inserts any missing default setting. Existing values are
// never overwritten.
func EnsureDefaults(ctx context.Context, st Store) error {
	for key, value := range Defaults {
		_, found, err := st.GetSetting(ctx, key)
		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		if found {
			continue
		}
		if err := st.SetSetting(ctx, key, value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return nil
}
