// Package store opens the configured SQL backend and exposes it through
// small driver-neutral interfaces
package store

import (
	"context"
	"errors"
	"fmt"

	"batchtrace/internal/platform/logger"
)

// Driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store holds the opened backend. The zero value has no backend
type Store struct {
	Log logger.Logger

	// DB is the SQL seam repos bind to
	DB TxRunner

	// Driver is DriverSQLite or DriverPostgres
	Driver string
}

// Row is a single scannable row
type Row interface {
	Scan(dest ...any) error
}

// Rows is an iterable result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports the outcome of a write
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is what repos read and write through
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in a transaction, committing when fn returns nil
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the backend named by cfg.Driver
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	switch cfg.Driver {
	case DriverPostgres:
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB, s.Driver = db, DriverPostgres
	case DriverSQLite, "":
		db, err := openSQLite(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB, s.Driver = db, DriverSQLite
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	s.Log.Info().Str("driver", s.Driver).Msg("store opened")
	return s, nil
}

// Guard pings the backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store: no backend")
	}
	if p, ok := s.DB.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Driver, err)
		}
	}
	return nil
}

// Ping satisfies Pinger so readiness checks can take the Store itself
func (s *Store) Ping(ctx context.Context) error { return s.Guard(ctx) }

// Close releases the backend
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
