package domain

import (
	"slices"
	"strings"
	"time"
)

// AssetStatus is the lifecycle state shown in the status badge.
type AssetStatus string

// AssetStatusAvailable and related constants enumerate asset states.
const (
	AssetStatusAvailable  AssetStatus = "AVAILABLE"
	AssetStatusInCustody  AssetStatus = "IN_CUSTODY"
	AssetStatusCheckedOut AssetStatus = "CHECKED_OUT"
)

// Valid reports whether the status is known.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusAvailable, AssetStatusInCustody, AssetStatusCheckedOut:
		return true
	default:
		return false
	}
}

// Asset is one row of the advanced index. Relations are nil when absent.
type Asset struct {
	ID                  string
	OrganizationID      string
	Title               string
	Description         string
	QRID                string
	Status              AssetStatus
	Valuation           *float64
	AvailableToBook     bool
	MainImage           string
	MainImageExpiration *time.Time
	ThumbnailImage      string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Category         *Category
	Tags             []Tag
	Location         *Location
	Kit              *Kit
	Custody          *Custody
	UpcomingReminder *Reminder
	CustomFields     []CustomFieldValue
}

// AssetInput holds input values for NewAsset.
type AssetInput struct {
	ID                  string
	OrganizationID      string
	Title               string
	Description         string
	QRID                string
	Status              AssetStatus
	Valuation           *float64
	AvailableToBook     bool
	MainImage           string
	MainImageExpiration *time.Time
	ThumbnailImage      string
	Category            *Category
	Tags                []Tag
	Location            *Location
	Kit                 *Kit
	CustomFields        []CustomFieldValue
}

// NewAsset constructs a new value for this package.
func NewAsset(in AssetInput, now time.Time) (Asset, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OrganizationID = strings.TrimSpace(in.OrganizationID)
	in.Title = strings.TrimSpace(in.Title)
	if in.ID == "" || in.OrganizationID == "" {
		return Asset{}, ErrInvalidID
	}
	if in.Title == "" {
		return Asset{}, ErrInvalidTitle
	}
	if in.Status == "" {
		in.Status = AssetStatusAvailable
	}
	if !in.Status.Valid() {
		return Asset{}, ErrInvalidStatus
	}
	seen := make([]string, 0, len(in.CustomFields))
	for _, v := range in.CustomFields {
		if slices.Contains(seen, v.CustomField.Name) {
			return Asset{}, ErrDuplicateCustomField
		}
		seen = append(seen, v.CustomField.Name)
	}
	qrID := strings.TrimSpace(in.QRID)
	if qrID == "" {
		qrID = in.ID
	}
	ts := now.UTC()
	return Asset{
		ID:                  in.ID,
		OrganizationID:      in.OrganizationID,
		Title:               in.Title,
		Description:         in.Description,
		QRID:                qrID,
		Status:              in.Status,
		Valuation:           in.Valuation,
		AvailableToBook:     in.AvailableToBook,
		MainImage:           strings.TrimSpace(in.MainImage),
		MainImageExpiration: in.MainImageExpiration,
		ThumbnailImage:      strings.TrimSpace(in.ThumbnailImage),
		CreatedAt:           ts,
		UpdatedAt:           ts,
		Category:            in.Category,
		Tags:                slices.Clone(in.Tags),
		Location:            in.Location,
		Kit:                 in.Kit,
		CustomFields:        slices.Clone(in.CustomFields),
	}, nil
}

// CustomFieldValue finds the value whose field definition has the given name.
func (a Asset) CustomFieldValue(name string) (CustomFieldValue, bool) {
	for _, v := range a.CustomFields {
		if v.CustomField.Name == name {
			return v, true
		}
	}
	return CustomFieldValue{}, false
}
