package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromDB(t *testing.T) {
	if FromDB(nil, "history insert") != nil {
		t.Fatal("nil must stay nil")
	}

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"pg unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey},
		{"pg fk", &pgconn.PgError{Code: "23503"}, ErrorCodeInvalidArgument},
		{"pg check", &pgconn.PgError{Code: "23514"}, ErrorCodeValidation},
		{"pg bad text", &pgconn.PgError{Code: "22P02"}, ErrorCodeInvalidArgument},
		{"pg starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, ErrorCodeDB},
		{"pg wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrorCodeDuplicateKey},
		{"sqlite pk", stderrs.New("constraint failed: UNIQUE constraint failed: analysis_history.id (1555)"), ErrorCodeDuplicateKey},
		{"sqlite not null", stderrs.New("NOT NULL constraint failed: analysis_history.message"), ErrorCodeValidation},
		{"sqlite busy", stderrs.New("database is locked (5) (SQLITE_BUSY)"), ErrorCodeUnavailable},
		{"already classified", NotFoundf("history entry a-1 not found"), ErrorCodeNotFound},
		{"unknown perr", New(ErrorCodeUnknown, "?"), ErrorCodeDB},
		{"foreign", stderrs.New("no such table: analysis_history"), ErrorCodeDB},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := FromDB(tc.err, "history")
			if CodeOf(err) != tc.want {
				t.Fatalf("code = %v, want %v", CodeOf(err), tc.want)
			}
			if !stderrs.Is(err, tc.err) {
				t.Fatalf("cause lost: %v", err)
			}
			if WireFrom(err).Message != "history" {
				t.Fatalf("driver text leaked to the wire: %+v", WireFrom(err))
			}
		})
	}
}

func TestDBErrorCode_Unrecognised(t *testing.T) {
	for _, err := range []error{nil, stderrs.New("dial tcp: connection refused")} {
		if _, ok := DBErrorCode(err); ok {
			t.Fatalf("%v recognised", err)
		}
	}
}
