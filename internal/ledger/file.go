package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"festbot/pkg/logx"
)

const defaultFilePath = "./data/deliveries.json"

// fileStore keeps the whole ledger in memory and rewrites the JSON document
// on every mutation. Timestamps are kept as the stored strings so a
// load/flush cycle round-trips byte-identical values, including entries
// written by older versions that no longer parse.
type fileStore struct {
	log  logx.Logger
	path string

	mu sync.Mutex
	// chat id -> occurrence key -> RFC3339 timestamp
	deliveries map[string]map[string]string
	closed     bool
}

// document is the on-disk shape.
type document struct {
	Deliveries map[string]json.RawMessage `json:"deliveries"`
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultFilePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	s := &fileStore{log: log, path: path, deliveries: map[string]map[string]string{}}
	s.load()
	return s, nil
}

// load tolerates every corruption short of an unreadable filesystem:
// a missing file means an empty ledger, a malformed document or malformed
// per-chat records are discarded with a warning. The store always starts
// in a valid state.
func (s *fileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("ledger unreadable; starting empty", logx.String("path", s.path), logx.Err(err))
		}
		return
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("ledger malformed; starting empty", logx.String("path", s.path), logx.Err(err))
		return
	}
	for chat, raw := range doc.Deliveries {
		var records map[string]string
		if err := json.Unmarshal(raw, &records); err != nil {
			s.log.Warn("ledger records malformed; dropping chat entry", logx.String("chat", chat), logx.Err(err))
			continue
		}
		s.deliveries[chat] = records
	}
}

func (s *fileStore) flushLocked() error {
	doc := struct {
		Deliveries map[string]map[string]string `json:"deliveries"`
	}{Deliveries: s.deliveries}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

func (s *fileStore) LastSent(chatID, key string) (time.Time, bool) {
	s.mu.Lock()
	raw, ok := s.deliveries[chatID][key]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *fileStore) ShouldSend(chatID, key string, now time.Time, cooldownHours int) bool {
	last, ok := s.LastSent(chatID, key)
	return due(last, ok, now, cooldownHours)
}

func (s *fileStore) MarkSent(chatID, key string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	records, ok := s.deliveries[chatID]
	if !ok {
		records = map[string]string{}
		s.deliveries[chatID] = records
	}
	records[key] = ts.Format(time.RFC3339)
	// The in-memory write above is committed regardless of flush outcome.
	return s.flushLocked()
}

func (s *fileStore) Recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.deliveries))
	for chat := range s.deliveries {
		out = append(out, chat)
	}
	sort.Strings(out)
	return out
}

func (s *fileStore) PruneBefore(cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for chat, records := range s.deliveries {
		for key, raw := range records {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil || t.Before(cutoff) {
				delete(records, key)
			}
		}
		if len(records) == 0 {
			delete(s.deliveries, chat)
		}
	}
	return s.flushLocked()
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
