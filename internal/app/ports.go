package app

import (
	"context"
	"time"

	"github.com/hylla/assetdex/internal/domain"
)

// Repository is the storage port used by the index service.
type Repository interface {
	CreateOrganization(context.Context, domain.Organization) error
	GetOrganization(context.Context, string) (domain.Organization, error)
	ListOrganizations(context.Context) ([]domain.Organization, error)

	CreateCategory(context.Context, string, domain.Category) error
	CreateTag(context.Context, string, domain.Tag) error
	CreateLocation(context.Context, string, domain.Location) error
	CreateKit(context.Context, string, domain.Kit) error
	CreateTeamMember(context.Context, string, domain.TeamMember) error

	CreateCustomField(context.Context, domain.CustomField) error
	ListCustomFields(context.Context, string, bool) ([]domain.CustomField, error)

	CreateAsset(context.Context, domain.Asset) error
	AssignCustody(context.Context, domain.Custody) error
	CreateReminder(context.Context, domain.Reminder) error

	// ListIndexAssets returns fully assembled rows; UpcomingReminder is the
	// earliest reminder alerting at or after now.
	ListIndexAssets(context.Context, string, time.Time) ([]domain.Asset, error)
}

// Logger is the subset of charm's log.Logger the service writes to.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

type discardLogger struct{}

func (discardLogger) Debug(any, ...any) {}
func (discardLogger) Info(any, ...any)  {}
func (discardLogger) Warn(any, ...any)  {}
