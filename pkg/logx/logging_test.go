package logx

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"nope", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in, zerolog.InfoLevel); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 100); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 20)
	if len(got) != 20 || !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q (len %d)", got, len(got))
	}
}

func TestFormatTelegramJSON(t *testing.T) {
	line := `{"level":"warn","time":"2025-01-01T08:00:00Z","message":"send failed","chat":"100","err":"boom"}`
	got := formatTelegramJSON([]byte(line))
	if !strings.HasPrefix(got, "[WARN] send failed") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "chat=100") || !strings.Contains(got, "err=boom") {
		t.Fatalf("fields missing: %q", got)
	}
	if strings.Contains(got, "time=") {
		t.Fatalf("time field should be dropped: %q", got)
	}
}

func TestFormatTelegramJSONNonJSON(t *testing.T) {
	if got := formatTelegramJSON([]byte("plain text line\n")); got != "plain text line" {
		t.Fatalf("got %q", got)
	}
}

func TestZeroLoggerIsSafe(t *testing.T) {
	var l Logger
	if !l.IsZero() {
		t.Fatal("zero value should report IsZero")
	}
	// Must not panic.
	l.Info("noop", String("k", "v"))
	l.With(Int("n", 1)).Error("noop", Err(nil))
}

func TestNopLoggerNotZero(t *testing.T) {
	l := Nop()
	if l.IsZero() {
		t.Fatal("Nop logger is a real (discarding) logger")
	}
	l.Warn("discarded")
}
