package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hylla/assetdex/internal/cell"
	"github.com/hylla/assetdex/internal/domain"
	"github.com/hylla/assetdex/internal/format"
	"github.com/hylla/assetdex/internal/permission"
)

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	OrganizationID string
	Locale         string
	TimeZone       string
	Roles          []domain.Role
	Preferences    cell.Preferences
	Columns        []domain.ColumnKey
	TrackingRef    string
	Logger         Logger
}

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service loads asset rows and renders the advanced index.
type Service struct {
	repo     Repository
	idGen    IDGenerator
	clock    Clock
	defaults ServiceConfig
	logger   Logger
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		cfg.Locale = format.DefaultLocale
	}
	if strings.TrimSpace(cfg.TimeZone) == "" {
		cfg.TimeZone = "UTC"
	}
	if cfg.Preferences.Mode == "" {
		cfg.Preferences.Mode = cell.ModeAdvanced
	}
	if strings.TrimSpace(cfg.TrackingRef) == "" {
		cfg.TrackingRef = cell.DefaultTrackingRef
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger{}
	}
	return &Service{
		repo:     repo,
		idGen:    idGen,
		clock:    clock,
		defaults: cfg,
		logger:   logger,
	}
}

// Preferences returns the configured default viewer preferences.
func (s *Service) Preferences() cell.Preferences {
	return s.defaults.Preferences
}

// IndexRequest selects what one render pass shows. Zero fields fall back to
// the service defaults.
type IndexRequest struct {
	OrganizationID string
	Columns        []domain.ColumnKey
	Roles          []domain.Role
	Locale         string
	TimeZone       string
	Preferences    *cell.Preferences
	TrackingRef    string
}

// OrganizationSummary is the organization shown above an index page.
type OrganizationSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// ColumnHeader describes one visible index column.
type ColumnHeader struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	CustomField bool   `json:"customField,omitempty"`
	FieldType   string `json:"fieldType,omitempty"`
	Frozen      bool   `json:"frozen,omitempty"`
}

// IndexPage is one rendered advanced index.
type IndexPage struct {
	Organization OrganizationSummary `json:"organization"`
	Locale       string              `json:"locale"`
	TimeZone     string              `json:"timeZone"`
	Columns      []ColumnHeader      `json:"columns"`
	Rows         []cell.Row          `json:"rows"`
	RenderedAt   time.Time           `json:"renderedAt"`
}

// ResolveOrganization returns the requested organization, or the first one
// when id is blank.
func (s *Service) ResolveOrganization(ctx context.Context, id string) (domain.Organization, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = s.defaults.OrganizationID
	}
	if id != "" {
		org, err := s.repo.GetOrganization(ctx, id)
		if err != nil {
			return domain.Organization{}, fmt.Errorf("get organization %q: %w", id, err)
		}
		return org, nil
	}
	orgs, err := s.repo.ListOrganizations(ctx)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("list organizations: %w", err)
	}
	if len(orgs) == 0 {
		return domain.Organization{}, ErrNoOrganization
	}
	return orgs[0], nil
}

// RenderIndex loads the organization's assets and renders every visible cell.
func (s *Service) RenderIndex(ctx context.Context, req IndexRequest) (IndexPage, error) {
	org, err := s.ResolveOrganization(ctx, req.OrganizationID)
	if err != nil {
		return IndexPage{}, err
	}
	fields, err := s.repo.ListCustomFields(ctx, org.ID, false)
	if err != nil {
		return IndexPage{}, fmt.Errorf("list custom fields: %w", err)
	}

	now := s.clock().UTC()
	viewer := s.viewerFor(req, org, now)
	columns := s.columnsFor(req, fields)

	assets, err := s.repo.ListIndexAssets(ctx, org.ID, now)
	if err != nil {
		return IndexPage{}, fmt.Errorf("list index assets: %w", err)
	}

	page := IndexPage{
		Organization: OrganizationSummary{ID: org.ID, Name: org.Name, Currency: org.Currency},
		Locale:       viewer.Locale,
		TimeZone:     viewer.TimeZone,
		Columns:      headersFor(columns, fields, viewer),
		Rows:         make([]cell.Row, 0, len(assets)),
		RenderedAt:   now,
	}
	for _, asset := range assets {
		if asset.UpcomingReminder != nil {
			reminder := *asset.UpcomingReminder
			reminder.DisplayDate = format.DateTime(reminder.AlertAt, viewer.Locale, viewer.TimeZone)
			asset.UpcomingReminder = &reminder
		}
		page.Rows = append(page.Rows, cell.RenderRow(columns, asset, viewer))
	}
	s.logger.Debug("rendered asset index", "org", org.ID, "rows", len(page.Rows), "columns", len(page.Columns))
	return page, nil
}

// ListColumns returns every column available to the organization: the fixed
// columns followed by one cf_ column per active custom field.
func (s *Service) ListColumns(ctx context.Context, orgID string) ([]ColumnHeader, error) {
	org, err := s.ResolveOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	fields, err := s.repo.ListCustomFields(ctx, org.ID, false)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	viewer := s.viewerFor(IndexRequest{}, org, s.clock())
	viewer.Can = func([]domain.Role, permission.Entity, permission.Action) bool { return true }
	return headersFor(DefaultColumns(fields), fields, viewer), nil
}

// DefaultColumns lists every fixed column, then one column per active custom field.
func DefaultColumns(fields []domain.CustomField) []domain.ColumnKey {
	out := make([]domain.ColumnKey, 0, len(domain.FixedColumns())+len(fields))
	for _, column := range domain.FixedColumns() {
		if column == domain.ColumnActions {
			continue
		}
		out = append(out, domain.FixedColumnKey(column))
	}
	for _, field := range fields {
		if !field.Active {
			continue
		}
		out = append(out, domain.CustomFieldColumnKey(field.Name))
	}
	return append(out, domain.FixedColumnKey(domain.ColumnActions))
}

func (s *Service) viewerFor(req IndexRequest, org domain.Organization, now time.Time) cell.Viewer {
	locale := firstNonBlank(req.Locale, s.defaults.Locale)
	timeZone := firstNonBlank(req.TimeZone, s.defaults.TimeZone)
	roles := req.Roles
	if len(roles) == 0 {
		roles = s.defaults.Roles
	}
	prefs := s.defaults.Preferences
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	viewer := cell.NewViewer(locale, timeZone, org.Currency, roles, prefs, now)
	viewer.TrackingRef = firstNonBlank(req.TrackingRef, s.defaults.TrackingRef)
	return viewer
}

func (s *Service) columnsFor(req IndexRequest, fields []domain.CustomField) []domain.ColumnKey {
	columns := req.Columns
	if len(columns) == 0 {
		columns = s.defaults.Columns
	}
	if len(columns) == 0 {
		return DefaultColumns(fields)
	}
	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field.Name] = struct{}{}
	}
	for _, column := range columns {
		if !column.IsCustomField() {
			if !column.Known() {
				s.logger.Warn("unknown column renders empty", "column", column.String())
			}
			continue
		}
		if _, ok := known[column.CustomFieldName()]; !ok {
			s.logger.Warn("column references unknown custom field", "column", column.String())
		}
	}
	return columns
}

func headersFor(columns []domain.ColumnKey, fields []domain.CustomField, viewer cell.Viewer) []ColumnHeader {
	types := make(map[string]domain.CustomFieldType, len(fields))
	for _, field := range fields {
		types[field.Name] = field.Type
	}
	out := make([]ColumnHeader, 0, len(columns))
	for _, column := range columns {
		if !cell.Visible(column, viewer) {
			continue
		}
		header := ColumnHeader{
			Key:         column.String(),
			Label:       column.Label(),
			CustomField: column.IsCustomField(),
			Frozen:      column.Fixed() == domain.ColumnName && viewer.FreezesTitle(),
		}
		if header.CustomField {
			header.FieldType = string(types[column.CustomFieldName()])
		}
		out = append(out, header)
	}
	return out
}

// ParseColumns parses column keys, wrapping failures as ErrInvalidRequest.
func ParseColumns(raw []string) ([]domain.ColumnKey, error) {
	keys, err := domain.ParseColumnKeys(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	return keys, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
