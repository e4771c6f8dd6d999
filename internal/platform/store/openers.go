package store

import (
	"context"
	"fmt"
	"time"

	"batchtrace/internal/platform/store/pg"
	"batchtrace/internal/platform/store/sqlite"
	"batchtrace/internal/platform/store/trace"
)

var sleep = time.Sleep

// openPG builds the pool and pings it with capped exponential backoff
// before handing out the adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer trace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = trace.Zerolog(s.Log, "pg")
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTO := cfg.PG.PingTimeout
	if pingTO <= 0 {
		pingTO = 3 * time.Second
	}
	const ceiling = 2 * time.Second

	backoff := 150 * time.Millisecond
	var lastErr error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTO)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")
		sleep(backoff)
		backoff = min(backoff*2, ceiling)
	}
	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
		WAL:         cfg.SQLite.WAL,
	})
	if err != nil {
		return nil, err
	}
	var tracer trace.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = trace.Zerolog(s.Log, "sqlite")
	}
	return NewSQLAdapter(db, tracer, cfg.SQLite.SlowQueryMs), nil
}
