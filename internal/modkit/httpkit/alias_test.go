package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "chimera/internal/platform/errors"
)

type analyzeIn struct {
	Text   string `json:"text" validate:"required"`
	APIKey string `json:"api_key"`
}

func serve(h Handler, method, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, "/analysis/analyze", strings.NewReader(body)))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("body %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestCall(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(*http.Request) (any, error)
		wantCode int
		wantBody string
	}{
		{"plain value wraps in 200", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil }, 200, `"n":1`},
		{"response passes through", func(*http.Request) (any, error) { return Response{Status: 201, Data: "made"}, nil }, 201, "made"},
		{"perr keeps its status", func(*http.Request) (any, error) { return nil, perr.NotFoundf("history entry x not found") }, 404, "not found"},
		{"plain error is 500", func(*http.Request) (any, error) { return nil, errors.New("boom") }, 500, `"error"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(Call(tc.fn), http.MethodGet, "")
			if rec.Code != tc.wantCode || !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Fatalf("got %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestJSON(t *testing.T) {
	var seen analyzeIn
	h := JSON(func(_ *http.Request, in analyzeIn) (any, error) {
		seen = in
		if in.Text == "fail" {
			return nil, errors.New("nope")
		}
		return Response{Status: http.StatusAccepted, Data: in.Text}, nil
	})

	tests := []struct {
		name     string
		body     string
		wantCode int
		reached  bool
	}{
		{"binds", `{"text":"원문","api_key":"k"}`, 202, true},
		{"malformed", `{`, 400, false},
		{"unknown field", `{"text":"a","mode":"fast"}`, 400, false},
		{"validation", `{"api_key":"k"}`, 400, false},
		{"handler error", `{"text":"fail"}`, 500, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = analyzeIn{}
			rec := serve(h, http.MethodPost, tc.body)
			if rec.Code != tc.wantCode {
				t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
			}
			if reached := seen.Text != ""; reached != tc.reached {
				t.Fatalf("handler reached = %v", reached)
			}
			if tc.wantCode >= 400 {
				if _, ok := decode(t, rec)["error"]; !ok {
					t.Fatalf("error envelope missing: %s", rec.Body.String())
				}
			}
		})
	}
}
