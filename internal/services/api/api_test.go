package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"chimera/internal/platform/config"
	phttp "chimera/internal/platform/net/http"
	"chimera/internal/platform/store"
)

func newServer(t *testing.T, st *store.Store) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New().Prefix("CHIMERA_"),
		Store:         st,
		EnableSwagger: true,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any, want int) map[string]any {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, rdr)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		t.Fatalf("%s %s status = %d, want %d", method, url, resp.StatusCode, want)
	}
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return out
}

const essay = "지난 여름 할머니 댁에서 처음으로 김치를 담갔다. 손이 매웠지만 할머니의 이야기를 들으며 웃었다."

func TestMount_AnalyzeIsRecorded(t *testing.T) {
	t.Setenv("CHIMERA_HISTORY_DRIVER", "sqlite")
	st, err := store.Open(context.Background(), store.Config{SQLite: store.SQLiteConfig{Enabled: true}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	srv := newServer(t, st)

	res := do(t, http.MethodPost, srv.URL+"/api/v1/analysis/analyze", map[string]string{"text": essay}, http.StatusOK)
	data := res["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("no id in %v", data)
	}

	got := do(t, http.MethodGet, srv.URL+"/api/v1/history/"+id, nil, http.StatusOK)
	if got["data"].(map[string]any)["plagiarism_rate"] != data["plagiarism_rate"] {
		t.Fatalf("history = %v, report = %v", got["data"], data)
	}

	ready := do(t, http.MethodGet, srv.URL+"/api/v1/meta/ready", nil, http.StatusOK)
	if ready["data"].(map[string]any)["status"] != "ok" {
		t.Fatalf("ready = %v", ready)
	}

	do(t, http.MethodPost, srv.URL+"/api/v1/analysis/analyze", map[string]string{"text": "  "}, http.StatusBadRequest)
	do(t, http.MethodGet, srv.URL+"/api/docs/doc.json", nil, http.StatusOK)
}

func TestMount_HistoryDisabled(t *testing.T) {
	t.Setenv("CHIMERA_HISTORY_DRIVER", "none")
	srv := newServer(t, &store.Store{})

	do(t, http.MethodPost, srv.URL+"/api/v1/analysis/analyze", map[string]string{"text": essay}, http.StatusOK)
	do(t, http.MethodGet, srv.URL+"/api/v1/history", nil, http.StatusNotFound)
	do(t, http.MethodGet, srv.URL+"/api/v1/analysis/calibration", nil, http.StatusOK)
}
