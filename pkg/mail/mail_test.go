package mail

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()
	msg := string(buildMessage("station@example.org", "ops@example.org", "hello", "body line"))
	for _, want := range []string{
		"From: station@example.org\r\n",
		"To: ops@example.org\r\n",
		"Subject: hello\r\n",
		"\r\n\r\nbody line\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSanitizeHeader(t *testing.T) {
	t.Parallel()
	got := sanitizeHeader("a\r\nBcc: evil@example.org")
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("header still contains CR/LF: %q", got)
	}
}
