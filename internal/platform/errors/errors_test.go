package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeCorrupt, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatusCode(tc.code); got != tc.want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestWrapAndWire(t *testing.T) {
	cause := stderrs.New("socket closed")
	err := Wrapf(cause, ErrorCodeUnavailable, "catalog %s", "offline")
	if !stderrs.Is(err, cause) {
		t.Fatal("Wrapf must keep the cause reachable")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
	w := WireFrom(WithField(err, "batch_code"))
	if w.Code != ErrorCodeUnavailable || w.Message != "catalog offline" || w.Field != "batch_code" {
		t.Fatalf("unexpected wire %+v", w)
	}
	if got := WireFrom(fmt.Errorf("plain")); got.Code != ErrorCodeUnknown {
		t.Fatalf("foreign error code = %d", got.Code)
	}
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil error should give zero wire")
	}
}

func TestCodeOfThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFoundf("session %s", "x"))
	if !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("code = %d", CodeOf(err))
	}
	if HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatal("nil in, nil out")
	}
	dup := &pgconn.PgError{Code: "23505"}
	if got := CodeOf(FromPostgres(dup, "insert")); got != ErrorCodeDuplicateKey {
		t.Fatalf("dup code = %d", got)
	}
	busy := &pgconn.PgError{Code: "55P03"}
	if got := CodeOf(FromPostgres(busy, "lock")); got != ErrorCodeUnavailable {
		t.Fatalf("lock code = %d", got)
	}
	if got := CodeOf(FromPostgres(stderrs.New("eof"), "read")); got != ErrorCodeDB {
		t.Fatalf("generic code = %d", got)
	}
	if !IsUndefinedTable(Wrap(&pgconn.PgError{Code: "42P01"}, ErrorCodeDB, "x")) {
		t.Fatal("expected undefined table")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(&pgconn.PgError{Code: "40001"}) {
		t.Fatal("serialization failure should retry")
	}
	if Retryable(context.Canceled) {
		t.Fatal("cancellation must not retry")
	}
	if !Retryable(stderrs.New("ERROR: deadlock detected")) {
		t.Fatal("deadlock text should retry")
	}
	if Retryable(nil) {
		t.Fatal("nil must not retry")
	}
}

func TestFromSQLite_Foreign(t *testing.T) {
	if FromSQLite(nil, "x") != nil {
		t.Fatal("nil in, nil out")
	}
	if got := CodeOf(FromSQLite(stderrs.New("disk"), "write")); got != ErrorCodeDB {
		t.Fatalf("code = %d", got)
	}
	if IsSQLiteBusy(stderrs.New("busy")) {
		t.Fatal("plain error is not a driver busy error")
	}
}

func TestCodeString(t *testing.T) {
	cases := map[ErrorCode]string{
		ErrorCodeNotFound:    "not_found",
		ErrorCodeCorrupt:     "corrupt",
		ErrorCodeUnavailable: "unavailable",
		ErrorCode(999):       "code(999)",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("String(%d) = %q, want %q", code, got, want)
		}
	}
	if HTTPStatusCode(ErrorCode(999)) != http.StatusInternalServerError {
		t.Fatal("unknown codes map to 500")
	}
}
