package queue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction marks a manual submission whose action is not in the
// closed set. Match with errors.Is.
var ErrUnknownAction = errors.New("unknown action")

// Normalize parses a raw manual submission of the form
//
//	action[,priority[,option1,option2,...]]
//
// The action must be a member of the closed set. A second field of "1" or
// "2" selects the priority; any other value (or none) silently falls back
// to priority 2. Remaining fields are rejoined with commas into the options
// string. The lax priority handling is deliberate: operator typos in a
// manual submission degrade to the default instead of failing, while
// scheduling settings (see internal/settings) fail loudly.
func Normalize(raw string) (Submission, error) {
	fields := strings.Split(raw, ",")

	action, ok := ParseAction(fields[0])
	if !ok {
		return Submission{}, fmt.Errorf("%q: %w", fields[0], ErrUnknownAction)
	}

	sub := Submission{Action: action, Priority: PriorityNormal}
	if len(fields) > 1 && fields[1] == "1" {
		sub.Priority = PriorityHigh
	}
	if len(fields) > 2 {
		sub.Options = strings.Join(fields[2:], ",")
	}
	return sub, nil
}
