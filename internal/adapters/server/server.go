// Package server mounts the asset index HTTP API and MCP tools on one listener.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hylla/assetdex/internal/adapters/server/common"
	"github.com/hylla/assetdex/internal/adapters/server/httpapi"
	"github.com/hylla/assetdex/internal/adapters/server/mcpapi"
)

// Serve defaults.
const (
	defaultBindAddress  = "127.0.0.1:5437"
	DefaultAPIEndpoint  = "/api/v1"
	DefaultMCPEndpoint  = "/mcp"
	defaultServerName   = "assetdex"
	defaultVersion      = "dev"
	shutdownGracePeriod = 5 * time.Second
	readHeaderTimeout   = 10 * time.Second
)

// healthPaths are mounted ahead of the configured endpoints.
var healthPaths = []string{"/healthz", "/readyz"}

// Config holds the listen address and the mount points for both transports.
type Config struct {
	HTTPBind      string
	APIEndpoint   string
	MCPEndpoint   string
	ServerName    string
	ServerVersion string
}

// Dependencies are the app-facing services the transports call into.
type Dependencies struct {
	Index  common.IndexService
	Logger Logger
}

// Logger receives request and lifecycle events.
type Logger interface {
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

// NewHandler builds the root mux: health routes, the REST index API, and the MCP endpoint.
// It returns the config with defaults applied.
func NewHandler(cfg Config, deps Dependencies) (http.Handler, Config, error) {
	if deps.Index == nil {
		return nil, Config{}, errors.New("index service is required")
	}
	resolved, err := cfg.withDefaults()
	if err != nil {
		return nil, Config{}, err
	}

	tools, err := mcpapi.NewHandler(mcpapi.Config{
		ServerName:    resolved.ServerName,
		ServerVersion: resolved.ServerVersion,
		EndpointPath:  resolved.MCPEndpoint,
	}, deps.Index)
	if err != nil {
		return nil, Config{}, fmt.Errorf("configure mcp tools: %w", err)
	}
	api := http.StripPrefix(resolved.APIEndpoint, httpapi.NewHandler(deps.Index))

	mux := http.NewServeMux()
	health := healthHandler(resolved)
	for _, path := range healthPaths {
		mux.Handle(path, health)
	}
	mux.Handle(resolved.MCPEndpoint, tools)
	mux.Handle(resolved.APIEndpoint, api)
	mux.Handle(resolved.APIEndpoint+"/", api)

	if deps.Logger == nil {
		return mux, resolved, nil
	}
	return logRequests(mux, deps.Logger), resolved, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg Config, deps Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}
	handler, resolved, err := NewHandler(cfg, deps)
	if err != nil {
		return fmt.Errorf("build server handler: %w", err)
	}

	srv := &http.Server{
		Addr:              resolved.HTTPBind,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	if deps.Logger != nil {
		deps.Logger.Info("serving asset index", "bind", resolved.HTTPBind, "api", resolved.APIEndpoint, "mcp", resolved.MCPEndpoint)
	}

	served := make(chan error, 1)
	go func() { served <- srv.ListenAndServe() }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", resolved.HTTPBind, err)
	case <-ctx.Done():
		return drain(srv, served)
	}
}

// drain shuts srv down within the grace period and collects the serve result.
func drain(srv *http.Server, served <-chan error) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	serveErr := <-served
	switch {
	case shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled):
		return fmt.Errorf("shutdown server: %w", shutdownErr)
	case serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed):
		return fmt.Errorf("serve after shutdown: %w", serveErr)
	}
	return nil
}

// withDefaults fills blank fields and rejects mount points that would shadow
// each other or the health routes.
func (c Config) withDefaults() (Config, error) {
	c.HTTPBind = strings.TrimSpace(c.HTTPBind)
	if c.HTTPBind == "" {
		c.HTTPBind = defaultBindAddress
	}
	c.APIEndpoint = mountPath(c.APIEndpoint, DefaultAPIEndpoint)
	c.MCPEndpoint = mountPath(c.MCPEndpoint, DefaultMCPEndpoint)
	if c.APIEndpoint == c.MCPEndpoint {
		return Config{}, fmt.Errorf("api and mcp endpoints both resolve to %s", c.APIEndpoint)
	}
	for _, path := range healthPaths {
		if c.APIEndpoint == path || c.MCPEndpoint == path {
			return Config{}, fmt.Errorf("endpoint %s is reserved for health checks", path)
		}
	}

	c.ServerName = strings.TrimSpace(c.ServerName)
	if c.ServerName == "" {
		c.ServerName = defaultServerName
	}
	c.ServerVersion = strings.TrimSpace(c.ServerVersion)
	if c.ServerVersion == "" {
		c.ServerVersion = defaultVersion
	}
	return c, nil
}

// mountPath turns "api/v1/" or " /api/v1 " into "/api/v1". Blank or root input yields fallback.
func mountPath(raw, fallback string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return fallback
	}
	return "/" + trimmed
}

// healthStatus is the body served on the health and readiness routes.
type healthStatus struct {
	Status  string `json:"status"`
	Server  string `json:"server"`
	Version string `json:"version"`
}

func healthHandler(cfg Config) http.Handler {
	body, _ := json.Marshal(healthStatus{Status: "ok", Server: cfg.ServerName, Version: cfg.ServerVersion})
	body = append(body, '\n')
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader records the status before delegating.
func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards streaming flushes used by the MCP transport.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// logRequests logs one line per request, warning on 4xx/5xx.
func logRequests(next http.Handler, logger Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		keyvals := []any{"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start)}
		if rec.status >= http.StatusBadRequest {
			logger.Warn("http request failed", keyvals...)
			return
		}
		logger.Info("http request", keyvals...)
	})
}
