package logx

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in, zerolog.InfoLevel); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatEmailJSON(t *testing.T) {
	t.Parallel()
	line := `{"level":"warn","time":"x","message":"queue insert failed","action":"measure","attempt":2}`
	got := formatEmailJSON([]byte(line))
	if !strings.HasPrefix(got, "[WARN] queue insert failed") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	// Keys are sorted so messages are stable across runs.
	if !strings.Contains(got, "\n- action=measure\n- attempt=2") {
		t.Fatalf("fields missing or unordered: %q", got)
	}
}

func TestFormatEmailJSONNonJSON(t *testing.T) {
	t.Parallel()
	if got := formatEmailJSON([]byte("  plain text \n")); got != "plain text" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	if got := truncate("abcdefghijkl", 10); got != "abcdefg..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestZeroLoggerIsSafe(t *testing.T) {
	t.Parallel()
	var l Logger
	l.Info("no sink") // must not panic
	if !l.IsZero() {
		t.Fatal("zero logger should report IsZero")
	}
	if Nop().IsZero() {
		t.Fatal("Nop logger has a base and should not report IsZero")
	}
}
