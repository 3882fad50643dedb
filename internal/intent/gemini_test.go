package intent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func geminiServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "key" {
			t.Errorf("missing api key header")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected json mime type, got %q", req.GenerationConfig.ResponseMimeType)
		}
		if !strings.Contains(req.Contents[0].Parts[0].Text, "Current Date: 2024-05-20") {
			t.Errorf("prompt should carry the current date")
		}

		w.WriteHeader(status)
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestParser(endpoint, key string) *GeminiParser {
	p := NewGeminiParser(key, "test-model", endpoint, time.Second, quietLogger())
	p.clock = func() time.Time { return time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestGeminiParser_Parse(t *testing.T) {
	t.Parallel()

	srv := geminiServer(t, http.StatusOK, `{"origin":"Sài Gòn","destination":"Bình Phước","time":"14:00","type":"Xe ghép"}`)
	defer srv.Close()

	got := newTestParser(srv.URL, "key").Parse(context.Background(), "SG đi BP 2h chiều xe ghép")

	want := domain.SearchFilters{Origin: "Sài Gòn", Destination: "Bình Phước", Time: "14:00", Type: domain.RideTypeShared}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGeminiParser_FailuresYieldEmptyFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		text   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"malformed json text", http.StatusOK, `not json`},
		{"empty text", http.StatusOK, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, tt.status, tt.text)
			defer srv.Close()

			got := newTestParser(srv.URL, "key").Parse(context.Background(), "query")
			if !got.Empty() {
				t.Errorf("expected empty filters, got %+v", got)
			}
		})
	}
}

func TestGeminiParser_NoKey(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	got := newTestParser(srv.URL, "").Parse(context.Background(), "SG đi BP")
	if !got.Empty() {
		t.Errorf("expected empty filters, got %+v", got)
	}
	if called {
		t.Error("no request should be made without an api key")
	}
}
