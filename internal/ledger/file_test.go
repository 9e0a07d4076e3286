package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"festbot/pkg/logx"
)

func openTestStore(t *testing.T, path string) Store {
	t.Helper()
	s, err := Open(Config{Driver: "file", Path: path}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkSentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deliveries.json")
	s := openTestStore(t, path)

	ts := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	if err := s.MarkSent("100", "holiday-2025-01-01", ts); err != nil {
		t.Fatal(err)
	}
	got, ok := s.LastSent("100", "holiday-2025-01-01")
	if !ok || !got.Equal(ts) {
		t.Fatalf("LastSent = %v ok=%v, want %v", got, ok, ts)
	}

	// Survives a reopen.
	reopened := openTestStore(t, path)
	got, ok = reopened.LastSent("100", "holiday-2025-01-01")
	if !ok || !got.Equal(ts) {
		t.Fatalf("after reopen: LastSent = %v ok=%v", got, ok)
	}
}

func TestShouldSendCooldownHours(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "led.json"))

	base := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	if !s.ShouldSend("c", "k", base, 24) {
		t.Fatal("never-sent pair must be due")
	}
	if err := s.MarkSent("c", "k", base); err != nil {
		t.Fatal(err)
	}
	if s.ShouldSend("c", "k", base.Add(23*time.Hour), 24) {
		t.Fatal("23h after send is inside the cooldown")
	}
	if !s.ShouldSend("c", "k", base.Add(25*time.Hour), 24) {
		t.Fatal("25h after send is past the cooldown")
	}
}

func TestShouldSendCalendarDayRule(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "led.json"))

	sent := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	if err := s.MarkSent("c", "k", sent); err != nil {
		t.Fatal(err)
	}
	// Later the same calendar day: not due, no matter the elapsed hours.
	if s.ShouldSend("c", "k", sent.Add(15*time.Hour), 0) {
		t.Fatal("same calendar day must not be due with cooldown 0")
	}
	// Shortly after midnight the next day: due, although < 24h elapsed.
	if !s.ShouldSend("c", "k", sent.Add(17*time.Hour), 0) {
		t.Fatal("next calendar day must be due with cooldown 0")
	}
}

func TestPruneBefore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "led.json")
	doc := `{
  "deliveries": {
    "100": {
      "old-2023-01-01": "2023-01-01T08:00:00Z",
      "new-2025-01-01": "2025-01-01T08:00:00Z",
      "broken": "not-a-timestamp"
    },
    "200": {
      "old-2022-05-01": "2022-05-01T08:00:00Z"
    }
  }
}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openTestStore(t, path)

	cutoff := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := s.PruneBefore(cutoff); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.LastSent("100", "new-2025-01-01"); !ok {
		t.Fatal("recent record must survive the prune")
	}
	if _, ok := s.LastSent("100", "old-2023-01-01"); ok {
		t.Fatal("old record must be pruned")
	}
	got := s.Recipients()
	if len(got) != 1 || got[0] != "100" {
		t.Fatalf("chat 200 should be gone after pruning its last record: %v", got)
	}
}

func TestUnparsableTimestampReportsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "led.json")
	doc := `{"deliveries": {"100": {"k": "garbage"}}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openTestStore(t, path)

	if _, ok := s.LastSent("100", "k"); ok {
		t.Fatal("unparsable timestamp must report as absent")
	}
	if !s.ShouldSend("100", "k", time.Now(), 24) {
		t.Fatal("pair with unparsable timestamp must be due")
	}
}

func TestMalformedDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "led.json")
	if err := os.WriteFile(path, []byte("{{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openTestStore(t, path)
	if got := s.Recipients(); len(got) != 0 {
		t.Fatalf("malformed document must yield an empty ledger: %v", got)
	}
}

func TestMalformedChatEntrySkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "led.json")
	doc := `{"deliveries": {"bad": 42, "good": {"k": "2025-01-01T08:00:00Z"}}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openTestStore(t, path)

	got := s.Recipients()
	if len(got) != 1 || got[0] != "good" {
		t.Fatalf("only the parsable chat entry should load: %v", got)
	}
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "led.json"))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkSent("c", "k", time.Now()); err != ErrClosed {
		t.Fatalf("MarkSent after Close = %v, want ErrClosed", err)
	}
	if err := s.PruneBefore(time.Now()); err != ErrClosed {
		t.Fatalf("PruneBefore after Close = %v, want ErrClosed", err)
	}
}

func TestUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "bolt"}, logx.Nop()); err == nil {
		t.Fatal("unknown driver must error")
	}
}
