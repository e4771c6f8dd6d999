package repo

import (
	"context"
	"errors"
	"testing"

	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/store"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*store.SQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return store.NewSQLAdapter(db, nil, 0), mock
}

func TestSQLiteGet(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		expect func(sqlmock.Sqlmock)
		value  string
		found  bool
		code   perr.ErrorCode
		err    bool
	}{
		{
			name: "present",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sqliteSQL.get).WithArgs("submissions").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))
			},
			value: "[]", found: true,
		},
		{
			name: "missing",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sqliteSQL.get).WithArgs("submissions").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
		},
		{
			name: "driver failure",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(sqliteSQL.get).WithArgs("submissions").WillReturnError(errors.New("disk I/O error"))
			},
			err: true, code: perr.ErrorCodeDB,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, mock := newMock(t)
			tc.expect(mock)
			v, ok, err := NewSQLite().Bind(a).Get(ctx, "submissions")
			if tc.err != (err != nil) {
				t.Fatalf("err = %v", err)
			}
			if tc.err && !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v", perr.CodeOf(err))
			}
			if v != tc.value || ok != tc.found {
				t.Fatalf("got %q %v", v, ok)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestSQLiteLockSeedsThenReads(t *testing.T) {
	a, mock := newMock(t)
	mock.ExpectExec(sqliteSQL.seed).WithArgs("submissions", "[]").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(sqliteSQL.lock).WithArgs("submissions").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	v, err := NewSQLite().Bind(a).Lock(context.Background(), "submissions", "[]")
	if err != nil || v != "[]" {
		t.Fatalf("lock = %q %v", v, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGLockUsesRowLock(t *testing.T) {
	a, mock := newMock(t)
	mock.ExpectExec(pgSQL.seed).WithArgs("k", "[]").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"a"}]`))

	v, err := NewPG().Bind(a).Lock(context.Background(), "k", "[]")
	if err != nil || v != `[{"id":"a"}]` {
		t.Fatalf("lock = %q %v", v, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPutMissingRow(t *testing.T) {
	a, mock := newMock(t)
	mock.ExpectExec(sqliteSQL.put).WithArgs("k", "[]").WillReturnResult(sqlmock.NewResult(0, 0))
	err := NewSQLite().Bind(a).Put(context.Background(), "k", "[]")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteAndSchema(t *testing.T) {
	a, mock := newMock(t)
	mock.ExpectExec(sqliteSQL.schema).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(sqliteSQL.del).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewSQLite().Bind(a)
	if err := r.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := r.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestForDialect(t *testing.T) {
	if _, ok := ForDialect("postgres").(PG); !ok {
		t.Fatalf("postgres binder")
	}
	if _, ok := ForDialect("").(SQLite); !ok {
		t.Fatalf("default binder")
	}
}
