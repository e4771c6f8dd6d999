// Package sqlite opens an embedded SQLite database through the pure Go
// modernc driver
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Config configures the database file
type Config struct {
	// Path is a file path or ":memory:"
	Path        string
	BusyTimeout time.Duration
	WAL         bool
}

// DSN renders cfg as a modernc connection string with pragmas
func DSN(cfg Config) string {
	q := url.Values{}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.WAL && cfg.Path != ":memory:" {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + cfg.Path + "?" + q.Encode()
}

var sqlOpen = sql.Open

// Open creates parent directories, opens the file and pings it.
// The pool is capped at one connection so writers serialise
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create dir: %w", err)
			}
		}
	}
	db, err := sqlOpen("sqlite", DSN(cfg))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}
