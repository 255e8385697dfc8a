// Package httpapi provides the REST HTTP adapter for the server surfaces.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hylla/assetdex/internal/adapters/server/common"
)

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	index common.IndexService
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs one HTTP API adapter over the index service.
func NewHandler(index common.IndexService) *Handler {
	return &Handler{index: index}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.Path)
	switch path {
	case "assets/index":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		h.handleIndex(w, r)
	case "columns":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		h.handleColumns(w, r)
	default:
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "endpoint not found",
		})
	}
}

// handleIndex serves GET `/assets/index`.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: "index service is not configured",
		})
		return
	}
	req, err := ParseIndexQuery(r.URL.Query())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	page, err := h.index.RenderIndex(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleColumns serves GET `/columns`.
func (h *Handler) handleColumns(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: "index service is not configured",
		})
		return
	}
	columns, err := h.index.ListColumns(r.Context(), r.URL.Query().Get("org"))
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns": columns,
	})
}

// ParseIndexQuery maps query parameters onto one index request. `columns`
// and `roles` accept repeated or comma-separated values.
func ParseIndexQuery(values url.Values) (common.IndexRequest, error) {
	req := common.IndexRequest{
		OrganizationID: strings.TrimSpace(values.Get("org")),
		Columns:        values["columns"],
		Roles:          values["roles"],
		Locale:         strings.TrimSpace(values.Get("locale")),
		TimeZone:       strings.TrimSpace(values.Get("tz")),
		Mode:           strings.TrimSpace(values.Get("mode")),
		TrackingRef:    strings.TrimSpace(values.Get("ref")),
	}
	var err error
	if req.ShowImage, err = parseOptionalBool(values, "show_image"); err != nil {
		return common.IndexRequest{}, err
	}
	if req.FreezeColumn, err = parseOptionalBool(values, "freeze_column"); err != nil {
		return common.IndexRequest{}, err
	}
	return req, nil
}

// parseOptionalBool parses one boolean query parameter, nil when absent.
func parseOptionalBool(values url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, errors.Join(common.ErrInvalidRequest, err))
	}
	return &v, nil
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeErrorFrom maps adapter errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "unknown error",
		})
	case errors.Is(err, common.ErrBootstrapRequired):
		writeJSONError(w, http.StatusConflict, APIError{
			Code:    "bootstrap_required",
			Message: err.Error(),
			Hint:    "Run `assetdex seed` or create an organization first.",
		})
	case errors.Is(err, common.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, common.ErrInvalidRequest):
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
	}
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response envelope.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}
