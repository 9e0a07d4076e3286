//go:build sqlite
// +build sqlite

package ledger

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"festbot/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(string(b)); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, log: log}, nil
}

func (s *sqliteStore) LastSent(chatID, key string) (time.Time, bool) {
	var ms int64
	err := s.db.QueryRow(`SELECT sent_at FROM deliveries WHERE chat_id = ? AND key = ?`, chatID, key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false
	}
	if err != nil {
		s.log.Warn("ledger read failed", logx.Err(err))
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func (s *sqliteStore) ShouldSend(chatID, key string, now time.Time, cooldownHours int) bool {
	last, ok := s.LastSent(chatID, key)
	return due(last, ok, now, cooldownHours)
}

func (s *sqliteStore) MarkSent(chatID, key string, ts time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO deliveries(chat_id, key, sent_at) VALUES(?,?,?)
		 ON CONFLICT(chat_id, key) DO UPDATE SET sent_at=excluded.sent_at`,
		chatID, key, ts.UnixMilli(),
	)
	return err
}

func (s *sqliteStore) Recipients() []string {
	rows, err := s.db.Query(`SELECT DISTINCT chat_id FROM deliveries ORDER BY chat_id`)
	if err != nil {
		s.log.Warn("ledger recipients query failed", logx.Err(err))
		return nil
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var chat string
		if err := rows.Scan(&chat); err == nil {
			out = append(out, chat)
		}
	}
	return out
}

func (s *sqliteStore) PruneBefore(cutoff time.Time) error {
	_, err := s.db.Exec(`DELETE FROM deliveries WHERE sent_at < ?`, cutoff.UnixMilli())
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
