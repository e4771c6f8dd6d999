// Package repo stores submission documents in the kv_store table
package repo

import (
	"context"

	"batchtrace/internal/modkit/repokit"
	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/store"
)

// Repo is a string keyed document table
type Repo interface {
	// EnsureSchema creates kv_store when missing
	EnsureSchema(ctx context.Context) error
	// Get reads key. A missing key is ("", false, nil)
	Get(ctx context.Context, key string) (string, bool, error)
	// Lock seeds key with seed when missing and reads it, holding a row
	// lock until the transaction ends where the backend supports one
	Lock(ctx context.Context, key, seed string) (string, error)
	// Put overwrites an existing key
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// SQLite implements the Repo interface using SQLite
	SQLite struct{}

	// queries holds the dialect statements and the bound queryer
	queries struct {
		q    repokit.Queryer
		sql  statements
		wrap func(error, string) error
	}

	statements struct {
		schema string
		get    string
		seed   string
		lock   string
		put    string
		del    string
	}
)

var pgSQL = statements{
	schema: `
CREATE TABLE IF NOT EXISTS kv_store (
	key        text PRIMARY KEY,
	value      text NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`,
	get:  `SELECT value FROM kv_store WHERE key = $1`,
	seed: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO NOTHING`,
	lock: `SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`,
	put:  `UPDATE kv_store SET value = $2, updated_at = now() WHERE key = $1`,
	del:  `DELETE FROM kv_store WHERE key = $1`,
}

var sqliteSQL = statements{
	schema: `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`,
	get:  `SELECT value FROM kv_store WHERE key = ?`,
	seed: `INSERT OR IGNORE INTO kv_store (key, value) VALUES (?, ?)`,
	lock: `SELECT value FROM kv_store WHERE key = ?`,
	put:  `UPDATE kv_store SET value = ?2, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now') WHERE key = ?1`,
	del:  `DELETE FROM kv_store WHERE key = ?`,
}

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// NewSQLite creates a new SQLite repository binder
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// ForDialect picks the binder for a repokit dialect, SQLite when unknown
func ForDialect(dialect string) repokit.Binder[Repo] {
	if dialect == repokit.DialectPostgres {
		return NewPG()
	}
	return NewSQLite()
}

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo {
	return &queries{q: q, sql: pgSQL, wrap: perr.FromPostgres}
}

// Bind binds a SQLite queryer to the Repo implementation
func (SQLite) Bind(q repokit.Queryer) Repo {
	return &queries{q: q, sql: sqliteSQL, wrap: perr.FromSQLite}
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	_, err := r.q.Exec(ctx, r.sql.schema)
	return r.wrap(err, "create kv_store")
}

func (r *queries) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := store.Scalar[string](ctx, r.q, r.sql.get, key)
	if err != nil {
		if store.IsNoRows(err) {
			return "", false, nil
		}
		return "", false, r.wrap(err, "read kv_store")
	}
	return v, true, nil
}

func (r *queries) Lock(ctx context.Context, key, seed string) (string, error) {
	if _, err := r.q.Exec(ctx, r.sql.seed, key, seed); err != nil {
		return "", r.wrap(err, "seed kv_store")
	}
	v, err := store.Scalar[string](ctx, r.q, r.sql.lock, key)
	if err != nil {
		return "", r.wrap(err, "lock kv_store")
	}
	return v, nil
}

func (r *queries) Put(ctx context.Context, key, value string) error {
	tag, err := r.q.Exec(ctx, r.sql.put, key, value)
	if err != nil {
		return r.wrap(err, "write kv_store")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("kv_store key %q vanished", key)
	}
	return nil
}

func (r *queries) Delete(ctx context.Context, key string) error {
	_, err := r.q.Exec(ctx, r.sql.del, key)
	return r.wrap(err, "delete kv_store")
}
