package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faizmokh/gideon/internal/journal"
)

type mapSource map[string]journal.Entry

func (m mapSource) Entry(_ context.Context, date time.Time) (journal.Entry, error) {
	entry, ok := m[journal.Key(date)]
	if !ok {
		return journal.Entry{}, journal.ErrEntryNotFound
	}
	return entry, nil
}

func newTestRouter(src journal.Source, key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(Options{Source: src, Key: key}).InitRoutes()
}

func serve(t *testing.T, r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%q)", err, w.Body.String())
	}
	return body["error"]
}

func TestHealth(t *testing.T) {
	r := newTestRouter(mapSource{}, "")
	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestListEntriesReturnsSingleRow(t *testing.T) {
	created := time.Date(2024, time.March, 1, 8, 30, 0, 0, time.UTC)
	r := newTestRouter(mapSource{
		"2024-03-01": {ID: 7, Date: "2024-03-01", Content: "# Hello", CreatedAt: created},
	}, "")

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/rest/v1/blog_entries?select=*&date=eq.2024-03-01&limit=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rows []row
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != 7 || rows[0].Content != "# Hello" || rows[0].Date != "2024-03-01" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[0].CreatedAt == nil || !rows[0].CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %s, got %v", created, rows[0].CreatedAt)
	}
}

func TestListEntriesReturnsEmptyArrayWhenAbsent(t *testing.T) {
	r := newTestRouter(mapSource{}, "")
	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/rest/v1/blog_entries?date=eq.2024-03-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestListEntriesErrors(t *testing.T) {
	failing := journal.SourceFunc(func(context.Context, time.Time) (journal.Entry, error) {
		return journal.Entry{}, &journal.FetchError{Date: "2024-03-01", Err: errors.New("disk on fire")}
	})

	cases := []struct {
		name   string
		src    journal.Source
		target string
		code   int
	}{
		{name: "unknown table", src: mapSource{}, target: "/rest/v1/posts?date=eq.2024-03-01", code: http.StatusNotFound},
		{name: "missing filter", src: mapSource{}, target: "/rest/v1/blog_entries?select=*", code: http.StatusBadRequest},
		{name: "unsupported operator", src: mapSource{}, target: "/rest/v1/blog_entries?date=gt.2024-03-01", code: http.StatusBadRequest},
		{name: "invalid date", src: mapSource{}, target: "/rest/v1/blog_entries?date=eq.2024-13-40", code: http.StatusBadRequest},
		{name: "invalid limit", src: mapSource{}, target: "/rest/v1/blog_entries?date=eq.2024-03-01&limit=x", code: http.StatusBadRequest},
		{name: "source failure", src: failing, target: "/rest/v1/blog_entries?date=eq.2024-03-01", code: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.src, "")
			w := serve(t, r, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
			if decodeError(t, w) == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := newTestRouter(mapSource{}, "secret")
	target := "/rest/v1/blog_entries?date=eq.2024-03-01"

	cases := []struct {
		name   string
		header string
		value  string
		code   int
	}{
		{name: "missing key", code: http.StatusUnauthorized},
		{name: "wrong apikey", header: "apikey", value: "nope", code: http.StatusUnauthorized},
		{name: "apikey header", header: "apikey", value: "secret", code: http.StatusOK},
		{name: "bearer token", header: "Authorization", value: "Bearer secret", code: http.StatusOK},
		{name: "wrong scheme", header: "Authorization", value: "Token secret", code: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			w := serve(t, r, req)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestHealthSkipsAPIKey(t *testing.T) {
	r := newTestRouter(mapSource{}, "secret")
	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"8080":           ":8080",
		":9090":          ":9090",
		"127.0.0.1:8080": "127.0.0.1:8080",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShutdownWithoutRun(t *testing.T) {
	var s Server
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestRunWithoutNew(t *testing.T) {
	var s Server
	if err := s.Run(); err == nil {
		t.Fatalf("expected error from unconfigured server")
	}
}

func TestRunAndShutdown(t *testing.T) {
	s := New("127.0.0.1:0", newTestRouter(mapSource{}, ""))
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Shutdown may race ListenAndServe; either way Run must return nil.
	for {
		if err := s.Shutdown(ctx); err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
		select {
		case err := <-errCh:
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			return
		case <-time.After(20 * time.Millisecond):
		}
	}
}
