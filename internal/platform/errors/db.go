package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstateCode classifies postgres SQLSTATEs, anything else is ErrorCodeDB
var sqlstateCode = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// sqliteText classifies modernc sqlite errors, which only carry a message
var sqliteText = []struct {
	fragment string
	code     ErrorCode
}{
	{"UNIQUE constraint failed", ErrorCodeDuplicateKey},
	{"PRIMARY KEY constraint failed", ErrorCodeDuplicateKey},
	{"NOT NULL constraint failed", ErrorCodeValidation},
	{"CHECK constraint failed", ErrorCodeValidation},
	{"SQLITE_BUSY", ErrorCodeUnavailable},
	{"database is locked", ErrorCodeUnavailable},
}

// DBErrorCode classifies a driver error, ok is false when neither driver recognises it
func DBErrorCode(err error) (ErrorCode, bool) {
	if err == nil {
		return ErrorCodeUnknown, false
	}
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		if c, ok := sqlstateCode[pgErr.Code]; ok {
			return c, true
		}
		return ErrorCodeDB, true
	}
	msg := err.Error()
	for _, t := range sqliteText {
		if strings.Contains(msg, t.fragment) {
			return t.code, true
		}
	}
	return ErrorCodeUnknown, false
}

// FromDB wraps a store error under msg
// an already classified perr keeps its code, unrecognised errors become ErrorCodeDB
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if e, ok := As(err); ok && e.Code() != ErrorCodeUnknown {
		code = e.Code()
	} else if c, ok := DBErrorCode(err); ok {
		code = c
	}
	return Wrap(err, code, msg)
}
