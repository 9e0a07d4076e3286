// Package ledger persists which (chat, holiday occurrence) pairs have been
// greeted, so a greeting is delivered at most once per cooldown window even
// across restarts.
package ledger

import (
	"errors"
	"time"
)

var ErrClosed = errors.New("ledger closed")

// Config configures the ledger backend.
//
// Driver values:
//   - "file": whole-document JSON ledger, rewritten on every mutation (default)
//   - "sqlite": SQLite database file (requires the "sqlite" build tag)
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Store is the delivery-state API used by the greeter. Implementations
// serialize all operations internally; callers never touch the backing
// storage directly.
type Store interface {
	// LastSent returns the recorded delivery time for the pair, if any.
	// A stored-but-unparsable timestamp reports as absent.
	LastSent(chatID, key string) (time.Time, bool)

	// ShouldSend reports whether the pair is due at now.
	// cooldownHours <= 0 means "once per calendar day": due iff the stored
	// timestamp's date (in now's zone) differs from now's date.
	ShouldSend(chatID, key string, now time.Time, cooldownHours int) bool

	// MarkSent upserts the pair's delivery time and persists the ledger
	// before returning. A persistence error is returned for logging but the
	// in-memory record is already committed.
	MarkSent(chatID, key string, ts time.Time) error

	// Recipients lists every chat with at least one record.
	Recipients() []string

	// PruneBefore removes records older than cutoff. Chats left with no
	// records are removed entirely; unparsable timestamps are removed too.
	PruneBefore(cutoff time.Time) error

	Close() error
}

// due applies the cooldown rule shared by all drivers.
func due(last time.Time, ok bool, now time.Time, cooldownHours int) bool {
	if !ok {
		return true
	}
	if cooldownHours <= 0 {
		ly, lm, ld := last.In(now.Location()).Date()
		ny, nm, nd := now.Date()
		return ly != ny || lm != nm || ld != nd
	}
	return now.Sub(last) >= time.Duration(cooldownHours)*time.Hour
}
