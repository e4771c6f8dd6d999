package errors

// SQLite error classification for the modernc driver

import (
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteCode returns the primary result code of a driver error
func sqliteCode(err error) (int, bool) {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return 0, false
	}
	return se.Code() & 0xff, true
}

// IsSQLiteBusy reports SQLITE_BUSY or SQLITE_LOCKED
func IsSQLiteBusy(err error) bool {
	c, ok := sqliteCode(err)
	return ok && (c == sqlite3.SQLITE_BUSY || c == sqlite3.SQLITE_LOCKED)
}

// FromSQLite wraps err with a code derived from the SQLite result code. nil stays nil
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	c, ok := sqliteCode(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	switch c {
	case sqlite3.SQLITE_CONSTRAINT:
		return Wrap(err, ErrorCodeDuplicateKey, msg)
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN:
		return Wrap(err, ErrorCodeUnavailable, msg)
	case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
		return Wrap(err, ErrorCodeCorrupt, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
