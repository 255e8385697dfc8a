// Package common provides transport-agnostic server contracts used by HTTP and MCP adapters.
package common

import (
	"context"
	"errors"

	"github.com/hylla/assetdex/internal/app"
)

// ErrInvalidRequest reports malformed index or column input.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound reports missing transport-visible resources.
var ErrNotFound = errors.New("not found")

// ErrBootstrapRequired reports that no organization exists yet.
var ErrBootstrapRequired = errors.New("bootstrap required")

// IndexRequest is the transport form of one index render request. Blank
// fields and nil pointers fall back to the service defaults.
type IndexRequest struct {
	OrganizationID string   `json:"organization_id,omitempty"`
	Columns        []string `json:"columns,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	Locale         string   `json:"locale,omitempty"`
	TimeZone       string   `json:"time_zone,omitempty"`
	ShowImage      *bool    `json:"show_image,omitempty"`
	FreezeColumn   *bool    `json:"freeze_column,omitempty"`
	Mode           string   `json:"mode,omitempty"`
	TrackingRef    string   `json:"tracking_ref,omitempty"`
}

// IndexService renders the advanced index and its column catalog.
type IndexService interface {
	RenderIndex(context.Context, IndexRequest) (app.IndexPage, error)
	ListColumns(context.Context, string) ([]app.ColumnHeader, error)
}
