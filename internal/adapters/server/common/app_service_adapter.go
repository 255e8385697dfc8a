package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/cell"
	"github.com/hylla/assetdex/internal/domain"
	"golang.org/x/text/language"
)

// AppServiceAdapter maps transport contracts onto app.Service index APIs.
type AppServiceAdapter struct {
	service *app.Service
}

// NewAppServiceAdapter builds one common adapter over an app.Service instance.
func NewAppServiceAdapter(service *app.Service) *AppServiceAdapter {
	return &AppServiceAdapter{service: service}
}

// RenderIndex validates one transport request and renders the index page.
func (a *AppServiceAdapter) RenderIndex(ctx context.Context, in IndexRequest) (app.IndexPage, error) {
	if a == nil || a.service == nil {
		return app.IndexPage{}, fmt.Errorf("app service adapter is not configured: %w", ErrInvalidRequest)
	}
	req, err := a.toAppRequest(in)
	if err != nil {
		return app.IndexPage{}, err
	}
	page, err := a.service.RenderIndex(ctx, req)
	if err != nil {
		return app.IndexPage{}, mapAppError("render index", err)
	}
	return page, nil
}

// ListColumns lists the organization's selectable columns.
func (a *AppServiceAdapter) ListColumns(ctx context.Context, orgID string) ([]app.ColumnHeader, error) {
	if a == nil || a.service == nil {
		return nil, fmt.Errorf("app service adapter is not configured: %w", ErrInvalidRequest)
	}
	columns, err := a.service.ListColumns(ctx, strings.TrimSpace(orgID))
	if err != nil {
		return nil, mapAppError("list columns", err)
	}
	return columns, nil
}

// toAppRequest normalizes transport fields into an app.IndexRequest.
func (a *AppServiceAdapter) toAppRequest(in IndexRequest) (app.IndexRequest, error) {
	columns, err := app.ParseColumns(splitList(in.Columns))
	if err != nil {
		return app.IndexRequest{}, fmt.Errorf("columns: %w", errors.Join(ErrInvalidRequest, err))
	}
	roles, err := domain.ParseRoles(splitList(in.Roles))
	if err != nil {
		return app.IndexRequest{}, fmt.Errorf("roles: %w", errors.Join(ErrInvalidRequest, err))
	}
	locale := strings.TrimSpace(in.Locale)
	if locale != "" {
		if _, err := language.Parse(locale); err != nil {
			return app.IndexRequest{}, fmt.Errorf("locale %q: %w", locale, errors.Join(ErrInvalidRequest, err))
		}
	}
	timeZone := strings.TrimSpace(in.TimeZone)
	if timeZone != "" {
		if _, err := time.LoadLocation(timeZone); err != nil {
			return app.IndexRequest{}, fmt.Errorf("time_zone %q: %w", timeZone, errors.Join(ErrInvalidRequest, err))
		}
	}

	req := app.IndexRequest{
		OrganizationID: strings.TrimSpace(in.OrganizationID),
		Columns:        columns,
		Roles:          roles,
		Locale:         locale,
		TimeZone:       timeZone,
		TrackingRef:    strings.TrimSpace(in.TrackingRef),
	}
	mode := cell.Mode(strings.ToLower(strings.TrimSpace(in.Mode)))
	switch mode {
	case "", cell.ModeSimple, cell.ModeAdvanced:
	default:
		return app.IndexRequest{}, fmt.Errorf("mode %q: %w", in.Mode, ErrInvalidRequest)
	}
	if in.ShowImage != nil || in.FreezeColumn != nil || mode != "" {
		prefs := a.service.Preferences()
		if in.ShowImage != nil {
			prefs.ShowImage = *in.ShowImage
		}
		if in.FreezeColumn != nil {
			prefs.FreezeColumn = *in.FreezeColumn
		}
		if mode != "" {
			prefs.Mode = mode
		}
		req.Preferences = &prefs
	}
	return req, nil
}

// splitList flattens comma-separated entries into one trimmed list.
func splitList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for part := range strings.SplitSeq(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// mapAppError maps app/domain errors into transport-layer error sentinels.
func mapAppError(operation string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, app.ErrNoOrganization):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrBootstrapRequired, err))
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrNotFound, err))
	case errors.Is(err, app.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidColumnKey),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidID):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrInvalidRequest, err))
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
