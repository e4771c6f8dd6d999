package errors

// Postgres error classification

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUndefinedTable = "42P01"

// pgCodes maps SQLSTATEs to project codes. Unlisted states are ErrorCodeDB
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"55P03": ErrorCodeUnavailable,     // lock_not_available
}

// pgRetry lists SQLSTATEs worth another attempt of the whole transaction
var pgRetry = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUndefinedTable reports a missing relation, e.g. before the schema exists
func IsUndefinedTable(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgUndefinedTable
}

// FromPostgres wraps err with the code its SQLSTATE maps to. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pgErr, ok := pgError(err); ok {
		if c, ok := pgCodes[pgErr.Code]; ok {
			code = c
		}
	}
	return Wrap(err, code, msg)
}

// IsRetryable reports transient Postgres contention. Context cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := pgError(err); ok {
		return pgRetry[pgErr.Code]
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "deadlock detected") ||
		strings.Contains(s, "could not serialize access")
}
