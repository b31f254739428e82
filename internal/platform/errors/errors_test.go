package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrorCodeValidation, "분석할 텍스트를 입력해주세요."), http.StatusBadRequest},
		{JSONErrf("malformed body"), http.StatusBadRequest},
		{NotFoundf("history entry %s not found", "a-1"), http.StatusNotFound},
		{New(ErrorCodeInvalidArgument, "x"), http.StatusUnprocessableEntity},
		{New(ErrorCodeDuplicateKey, "x"), http.StatusConflict},
		{New(ErrorCodeTooManyRequests, "x"), http.StatusTooManyRequests},
		{Unavailablef("detector down"), http.StatusServiceUnavailable},
		{New(ErrorCodeDB, "x"), http.StatusInternalServerError},
		{New(ErrorCodePanic, "x"), http.StatusInternalServerError},
		{New(ErrorCode(999), "x"), http.StatusInternalServerError},
		{stderrs.New("foreign"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestError_Rendering(t *testing.T) {
	cause := stderrs.New("dial tcp: i/o timeout")
	tests := []struct {
		name    string
		err     error
		text    string
		wire    Wire
		wrapped bool
	}{
		{"plain", New(ErrorCodeValidation, "bad"), "bad", Wire{Code: ErrorCodeValidation, Message: "bad"}, false},
		{"formatted", Newf(ErrorCodeValidation, "텍스트는 %d자 이하로 입력해주세요.", 50000), "텍스트는 50000자 이하로 입력해주세요.", Wire{Code: ErrorCodeValidation, Message: "텍스트는 50000자 이하로 입력해주세요."}, false},
		{"wrapped hides cause on the wire", Wrapf(cause, ErrorCodeUnavailable, "detector %s", "do failed"), "detector do failed: dial tcp: i/o timeout", Wire{Code: ErrorCodeUnavailable, Message: "detector do failed"}, true},
		{"field", WithField(New(ErrorCodeValidation, "required"), "text"), "required", Wire{Code: ErrorCodeValidation, Message: "required", Field: "text"}, false},
		{"foreign", cause, cause.Error(), Wire{Code: ErrorCodeUnknown, Message: cause.Error()}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Error() != tc.text {
				t.Fatalf("Error() = %q", tc.err.Error())
			}
			if got := WireFrom(tc.err); got != tc.wire {
				t.Fatalf("wire = %+v, want %+v", got, tc.wire)
			}
			if stderrs.Is(tc.err, cause) != (tc.wrapped || tc.err == cause) {
				t.Fatalf("Is(cause) mismatch")
			}
		})
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatal("nil *Error must render")
	}
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("WireFrom(nil) must be zero")
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	base := New(ErrorCodeValidation, "required")
	tagged := WithField(base, "text")
	if e, _ := As(base); e.Field() != "" {
		t.Fatal("original mutated")
	}
	if e, ok := As(fmt.Errorf("bind: %w", tagged)); !ok || e.Field() != "text" {
		t.Fatal("As must find the tagged error through wrapping")
	}
	foreign := stderrs.New("x")
	if WithField(foreign, "text") != foreign {
		t.Fatal("foreign errors pass through")
	}
}

func TestErrNotFound_Is(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrNotFound, true},
		{NotFoundf("history entry a-1 not found"), true},
		{fmt.Errorf("repo: %w", NotFoundf("gone")), true},
		{New(ErrorCodeValidation, "x"), false},
		{stderrs.New("not found"), false},
	}
	for _, tc := range tests {
		if got := stderrs.Is(tc.err, ErrNotFound); got != tc.want {
			t.Fatalf("Is(%v, ErrNotFound) = %v", tc.err, got)
		}
		if IsCode(tc.err, ErrorCodeNotFound) != tc.want {
			t.Fatalf("IsCode(%v) mismatch", tc.err)
		}
	}
}
