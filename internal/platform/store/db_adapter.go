package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"batchtrace/internal/platform/store/trace"
)

// SQLAdapter implements TxRunner over database/sql. The SQLite backend
// uses it and tests drive it with sqlmock
type SQLAdapter struct {
	db *sql.DB
	emitter
}

// NewSQLAdapter wraps db. tracer may be nil
func NewSQLAdapter(db *sql.DB, tracer trace.QueryTracer, slowMs int) *SQLAdapter {
	return &SQLAdapter{db: db, emitter: emitter{tracer: tracer, slowMs: slowMs}}
}

func (a *SQLAdapter) Ping(ctx context.Context) error { return a.db.PingContext(ctx) }

func (a *SQLAdapter) Close() error { return a.db.Close() }

func (a *SQLAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return execSQL(ctx, a.db, a.emitter, q, args)
}

func (a *SQLAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return querySQL(ctx, a.db, a.emitter, q, args)
}

func (a *SQLAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	r := a.db.QueryRowContext(ctx, q, args...)
	return scanHook{r: r, after: func(err error) { a.emit(ctx, q, args, start, err) }}
}

// Tx begins a transaction, runs fn and commits. Any error from fn rolls back
func (a *SQLAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTx{tx: tx, emitter: a.emitter}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlConn is the subset shared by *sql.DB and *sql.Tx
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func execSQL(ctx context.Context, c sqlConn, e emitter, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	e.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		n = -1
	}
	return sqlTag{n: n}, nil
}

func querySQL(ctx context.Context, c sqlConn, e emitter, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	e.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

type sqlTx struct {
	tx *sql.Tx
	emitter
}

func (t sqlTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return execSQL(ctx, t.tx, t.emitter, q, args)
}

func (t sqlTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return querySQL(ctx, t.tx, t.emitter, q, args)
}

func (t sqlTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRowContext(ctx, q, args...)
	return scanHook{r: r, after: func(err error) { t.emit(ctx, q, args, start, err) }}
}

type sqlRows struct{ r *sql.Rows }

func (x *sqlRows) Next() bool            { return x.r.Next() }
func (x *sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *sqlRows) Err() error            { return x.r.Err() }
func (x *sqlRows) Close()                { _ = x.r.Close() }
func (x *sqlRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

type sqlTag struct{ n int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("ROWS %d", t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }
