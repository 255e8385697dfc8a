package common

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/cell"
	"github.com/hylla/assetdex/internal/domain"
)

func newTestAdapter() *AppServiceAdapter {
	svc := app.NewService(nil, nil, nil, app.ServiceConfig{
		Preferences: cell.Preferences{ShowImage: true, FreezeColumn: true, Mode: cell.ModeAdvanced},
	})
	return NewAppServiceAdapter(svc)
}

// TestToAppRequestNormalizesFields verifies list splitting, role parsing, and preference overlays.
func TestToAppRequestNormalizesFields(t *testing.T) {
	freeze := false
	req, err := newTestAdapter().toAppRequest(IndexRequest{
		OrganizationID: " org-1 ",
		Columns:        []string{"name, status", "cf_Serial number"},
		Roles:          []string{"base,self_service"},
		Locale:         "de-DE",
		TimeZone:       "Europe/Oslo",
		FreezeColumn:   &freeze,
		TrackingRef:    " shelf ",
	})
	if err != nil {
		t.Fatalf("toAppRequest() error = %v", err)
	}
	if req.OrganizationID != "org-1" || req.TrackingRef != "shelf" {
		t.Fatalf("unexpected trimmed fields %#v", req)
	}
	got := make([]string, 0, len(req.Columns))
	for _, column := range req.Columns {
		got = append(got, column.String())
	}
	if !slices.Equal(got, []string{"name", "status", "cf_Serial number"}) {
		t.Fatalf("columns = %#v", got)
	}
	if !slices.Equal(req.Roles, []domain.Role{domain.RoleBase, domain.RoleSelfService}) {
		t.Fatalf("roles = %#v", req.Roles)
	}
	if req.Preferences == nil {
		t.Fatal("expected preferences overlay")
	}
	if req.Preferences.FreezeColumn || !req.Preferences.ShowImage || req.Preferences.Mode != cell.ModeAdvanced {
		t.Fatalf("unexpected preferences %#v", *req.Preferences)
	}
}

// TestToAppRequestKeepsDefaultsWhenUnset verifies nil preferences defer to the service.
func TestToAppRequestKeepsDefaultsWhenUnset(t *testing.T) {
	req, err := newTestAdapter().toAppRequest(IndexRequest{})
	if err != nil {
		t.Fatalf("toAppRequest() error = %v", err)
	}
	if req.Preferences != nil || len(req.Columns) != 0 || len(req.Roles) != 0 {
		t.Fatalf("expected zero request, got %#v", req)
	}
}

func TestToAppRequestRejectsInvalidInput(t *testing.T) {
	cases := map[string]IndexRequest{
		"column":    {Columns: []string{"cf_"}},
		"role":      {Roles: []string{"guest"}},
		"locale":    {Locale: "not a locale"},
		"time zone": {TimeZone: "Nowhere/Land"},
		"mode":      {Mode: "grid"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newTestAdapter().toAppRequest(in)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("toAppRequest() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestMapAppError(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{app.ErrNoOrganization, ErrBootstrapRequired},
		{app.ErrNotFound, ErrNotFound},
		{app.ErrInvalidRequest, ErrInvalidRequest},
		{domain.ErrInvalidRole, ErrInvalidRequest},
	}
	for _, tc := range cases {
		if err := mapAppError("op", tc.in); !errors.Is(err, tc.want) || !errors.Is(err, tc.in) {
			t.Fatalf("mapAppError(%v) = %v, want wrap of %v", tc.in, err, tc.want)
		}
	}
	if mapAppError("op", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	plain := errors.New("disk full")
	if err := mapAppError("op", plain); errors.Is(err, ErrInvalidRequest) || !errors.Is(err, plain) {
		t.Fatalf("unexpected mapping for plain error: %v", err)
	}
}

func TestUnconfiguredAdapterFails(t *testing.T) {
	var adapter *AppServiceAdapter
	if _, err := adapter.RenderIndex(context.Background(), IndexRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("RenderIndex() error = %v", err)
	}
	if _, err := adapter.ListColumns(context.Background(), ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("ListColumns() error = %v", err)
	}
}
