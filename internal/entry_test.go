package internal

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nancruz/blogindex/internal/sse"
	"github.com/nancruz/blogindex/internal/testutil"
)

func testRouter(t *testing.T, authToken string) (string, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.md", testutil.PostFile("A", "2023-01-01", []string{"x"}, "body\n"))

	cfg := NewDefaultConfig()
	cfg.Content.Path = dir
	cfg.SQLite.Path = ""
	if authToken != "" {
		cfg.Auth = AuthConfig{Mode: AuthModeToken, Token: authToken}
	}

	svc, closeSvc, err := OpenService(cfg, nil)
	if err != nil {
		t.Fatalf("OpenService: %v", err)
	}
	t.Cleanup(closeSvc)

	broker := sse.NewBroker()
	t.Cleanup(broker.Close)
	return dir, newRouter(cfg, svc, broker)
}

func TestHealthLive(t *testing.T) {
	_, r := testRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("live = %d", w.Code)
	}
}

func TestHealthReady_FailsOnBrokenPost(t *testing.T) {
	dir, r := testRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready = %d, body = %s", w.Code, w.Body.String())
	}

	testutil.WriteFile(t, dir, "bad.md", "---\ndate: 2023-01-01\n---\nno title\n")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready with bad post = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "bad.md") || strings.Contains(body, dir) {
		t.Errorf("ready body leaks content details: %s", body)
	}
	if !strings.Contains(body, `"unavailable"`) {
		t.Errorf("ready body = %s", body)
	}
}

func TestHealthUnauthenticated(t *testing.T) {
	_, r := testRouter(t, "secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health behind auth: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("api without token = %d, want 401", w.Code)
	}
}

func TestAPIMounted(t *testing.T) {
	_, r := testRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/a", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get post = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestOpenService_MissingContentDir(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.Path = filepath.Join(t.TempDir(), "absent")
	cfg.SQLite.Path = ""

	if _, _, err := OpenService(cfg, nil); err == nil {
		t.Fatal("expected error for missing content dir")
	}
}

func TestOpenService_WithSearch(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.Content.Path = dir
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "search.db")

	svc, closeSvc, err := OpenService(cfg, nil)
	if err != nil {
		t.Fatalf("OpenService: %v", err)
	}
	defer closeSvc()
	if svc.SearchDB() == nil {
		t.Fatal("search db should be open")
	}
	if _, err := os.Stat(cfg.SQLite.Path); err != nil {
		t.Errorf("search db file not created: %v", err)
	}
}
