package domain

import (
	"strings"
	"time"
)

// User is the login account optionally linked to a team member.
type User struct {
	ID             string
	FirstName      string
	LastName       string
	ProfilePicture string
}

// TeamMember represents a person who can hold custody of an asset.
type TeamMember struct {
	ID   string
	Name string
	User *User
}

// DisplayName prefers the linked user's full name over the member name.
func (m TeamMember) DisplayName() string {
	if m.User != nil {
		full := strings.TrimSpace(strings.TrimSpace(m.User.FirstName) + " " + strings.TrimSpace(m.User.LastName))
		if full != "" {
			return full
		}
	}
	return strings.TrimSpace(m.Name)
}

// Custody assigns an asset to a team member.
type Custody struct {
	ID        string
	AssetID   string
	Custodian TeamMember
	CreatedAt time.Time
}

// Reminder is a scheduled alert attached to an asset.
type Reminder struct {
	ID      string
	AssetID string
	Name    string
	Message string
	AlertAt time.Time
	// DisplayDate is filled by the loader with the viewer's formatted alert time.
	DisplayDate string
}

// NewReminder constructs a new value for this package.
func NewReminder(id, assetID, name, message string, alertAt time.Time) (Reminder, error) {
	id = strings.TrimSpace(id)
	assetID = strings.TrimSpace(assetID)
	name = strings.TrimSpace(name)
	if id == "" || assetID == "" {
		return Reminder{}, ErrInvalidID
	}
	if name == "" {
		return Reminder{}, ErrInvalidName
	}
	if alertAt.IsZero() {
		return Reminder{}, ErrInvalidReminderMoment
	}
	return Reminder{
		ID:      id,
		AssetID: assetID,
		Name:    name,
		Message: message,
		AlertAt: alertAt.UTC(),
	}, nil
}
