package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hylla/assetdex/internal/adapters/server/common"
	"github.com/hylla/assetdex/internal/app"
)

type stubIndexService struct{}

func (stubIndexService) RenderIndex(context.Context, common.IndexRequest) (app.IndexPage, error) {
	return app.IndexPage{Organization: app.OrganizationSummary{ID: "org-1"}}, nil
}

func (stubIndexService) ListColumns(context.Context, string) ([]app.ColumnHeader, error) {
	return []app.ColumnHeader{{Key: "name", Label: "Name"}}, nil
}

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Info(msg any, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg.(string))
}

func (l *recordingLogger) Warn(msg any, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg.(string))
}

// TestNewHandlerRoutesEndpoints verifies health and API routes are mounted.
func TestNewHandlerRoutesEndpoints(t *testing.T) {
	logger := &recordingLogger{}
	handler, cfg, err := NewHandler(Config{APIEndpoint: "api/v1/", MCPEndpoint: "mcp"}, Dependencies{Index: stubIndexService{}, Logger: logger})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if cfg.APIEndpoint != "/api/v1" || cfg.MCPEndpoint != "/mcp" || cfg.HTTPBind != defaultBindAddress {
		t.Fatalf("unexpected normalized config %#v", cfg)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/columns", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name"`) {
		t.Fatalf("columns = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing = %d, want 404", rec.Code)
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.infos) != 2 || len(logger.warns) != 1 {
		t.Fatalf("unexpected log counts infos=%v warns=%v", logger.infos, logger.warns)
	}
}

func TestNewHandlerRejectsBadConfig(t *testing.T) {
	if _, _, err := NewHandler(Config{}, Dependencies{}); err == nil {
		t.Fatal("expected error without index dependency")
	}
	if _, _, err := NewHandler(Config{APIEndpoint: "/x", MCPEndpoint: "/x/"}, Dependencies{Index: stubIndexService{}}); err == nil {
		t.Fatal("expected error for colliding endpoints")
	}
	for _, cfg := range []Config{{APIEndpoint: "/healthz"}, {MCPEndpoint: "readyz/"}} {
		if _, _, err := NewHandler(cfg, Dependencies{Index: stubIndexService{}}); err == nil {
			t.Fatalf("expected health route collision error for %#v", cfg)
		}
	}
}

// TestReadyzReportsServerIdentity verifies the readiness body carries name and version.
func TestReadyzReportsServerIdentity(t *testing.T) {
	handler, _, err := NewHandler(Config{ServerName: "dexx", ServerVersion: "1.2.3"}, Dependencies{Index: stubIndexService{}})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	want := `{"status":"ok","server":"dexx","version":"1.2.3"}` + "\n"
	if rec.Code != http.StatusOK || rec.Body.String() != want {
		t.Fatalf("readyz = %d %q, want %q", rec.Code, rec.Body.String(), want)
	}
}

func TestMountPath(t *testing.T) {
	cases := map[string]string{
		"":          DefaultAPIEndpoint,
		"/":         DefaultAPIEndpoint,
		" api/v2/ ": "/api/v2",
		"//tools//": "/tools",
		"/api/v1":   "/api/v1",
	}
	for raw, want := range cases {
		if got := mountPath(raw, DefaultAPIEndpoint); got != want {
			t.Fatalf("mountPath(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, Config{HTTPBind: "127.0.0.1:0"}, Dependencies{Index: stubIndexService{}}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
