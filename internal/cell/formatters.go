package cell

import (
	"fmt"
	"strings"

	"github.com/hylla/assetdex/internal/domain"
	"github.com/hylla/assetdex/internal/format"
)

const (
	// TextLimit is the longest value shown without truncation.
	TextLimit = 60
	// Ellipsis follows a truncated value.
	Ellipsis = "..."
	// ReminderMessageLimit caps the reminder message shown in its tooltip.
	ReminderMessageLimit = 1000
	// VisibleTags is how many tags render as badges before the overflow counter.
	VisibleTags = 2

	// UncategorizedColor is the neutral badge color for assets without a category.
	UncategorizedColor = "#808080"
	// UncategorizedLabel labels assets without a category.
	UncategorizedLabel = "Uncategorized"
	// NoReminderText is shown when an asset has no upcoming reminder.
	NoReminderText = "No upcoming reminder"
	// DescriptionHeading titles the description tooltip.
	DescriptionHeading = "Asset description"
	// ViewContentText is the trigger for multiline custom field popovers.
	ViewContentText = "View content"
)

// Truncate returns the first limit characters of s and whether it cut anything.
func Truncate(s string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

func textCell(value string) Cell {
	if value == "" {
		return Cell{Kind: KindEmpty}
	}
	short, cut := Truncate(value, TextLimit)
	if !cut {
		return Cell{Kind: KindText, Text: value}
	}
	return Cell{
		Kind:    KindText,
		Text:    short + Ellipsis,
		Tooltip: &Tooltip{Body: value},
	}
}

func descriptionCell(value string) Cell {
	c := textCell(value)
	if c.Tooltip != nil {
		c.Tooltip.Heading = DescriptionHeading
		c.Tooltip.PreserveLineBreaks = true
	}
	return c
}

func titleCell(asset domain.Asset, viewer Viewer) Cell {
	c := Cell{
		Kind:   KindTitle,
		Text:   asset.Title,
		Link:   &Link{Href: AssetPath(asset.ID), Title: asset.Title},
		Frozen: viewer.FreezesTitle(),
	}
	if viewer.Prefs.ShowImage {
		c.Image = &Image{URL: ImageURL(asset, viewer), Alt: asset.Title}
	}
	return c
}

// ImageURL picks the thumbnail, then an unexpired main image, else "".
func ImageURL(asset domain.Asset, viewer Viewer) string {
	if asset.ThumbnailImage != "" {
		return asset.ThumbnailImage
	}
	if asset.MainImage == "" {
		return ""
	}
	if asset.MainImageExpiration != nil && !viewer.Now.IsZero() && !asset.MainImageExpiration.After(viewer.Now) {
		return ""
	}
	return asset.MainImage
}

func qrCell(asset domain.Asset) Cell {
	return Cell{
		Kind: KindQR,
		Text: asset.QRID,
		Dialog: &Dialog{
			Title: asset.Title,
			QRID:  asset.QRID,
			URL:   QRPath(asset.QRID),
		},
	}
}

var statusBadges = map[domain.AssetStatus]Badge{
	domain.AssetStatusAvailable:  {Label: "Available", Color: "#12B76A"},
	domain.AssetStatusInCustody:  {Label: "In custody", Color: "#2E90FA"},
	domain.AssetStatusCheckedOut: {Label: "Checked out", Color: "#7A5AF8"},
}

// StatusBadge returns the badge for status, marked when the asset is not bookable.
func StatusBadge(status domain.AssetStatus, availableToBook bool) Badge {
	badge, ok := statusBadges[status]
	if !ok {
		badge = Badge{Label: string(status), Color: UncategorizedColor}
	}
	if !availableToBook {
		badge.Marker = "unavailable"
	}
	return badge
}

func statusCell(asset domain.Asset) Cell {
	// availableToBook has its own column, so the marker is always suppressed here.
	badge := StatusBadge(asset.Status, true)
	return Cell{Kind: KindStatus, Text: badge.Label, Badge: &badge}
}

func valuationCell(valuation *float64, viewer Viewer) Cell {
	if valuation == nil {
		return Cell{Kind: KindEmpty}
	}
	c := textCell(viewer.currency(*valuation))
	c.Kind = KindMoney
	return c
}

func dateCell(value string) Cell {
	if value == "" {
		return Cell{Kind: KindEmpty}
	}
	return Cell{Kind: KindDate, Text: value}
}

func categoryCell(category *domain.Category) Cell {
	badge := Badge{Label: UncategorizedLabel, Color: UncategorizedColor}
	if category != nil {
		badge = Badge{Label: category.Name, Color: category.Color}
	}
	return Cell{Kind: KindBadge, Text: badge.Label, Badge: &badge}
}

func tagsCell(tags []domain.Tag) Cell {
	if len(tags) == 0 {
		return Cell{Kind: KindEmpty}
	}
	c := Cell{Kind: KindTags}
	for i, tag := range tags {
		if i == VisibleTags {
			break
		}
		c.Tags = append(c.Tags, Badge{Label: tag.Name})
	}
	if rest := tags[min(len(tags), VisibleTags):]; len(rest) > 0 {
		names := make([]string, 0, len(rest))
		for _, tag := range rest {
			names = append(names, tag.Name)
		}
		c.Overflow = len(rest)
		c.Tooltip = &Tooltip{Body: strings.Join(names, ", ")}
	}
	return c
}

func locationCell(location *domain.Location) Cell {
	if location == nil || strings.TrimSpace(location.Name) == "" {
		return Cell{Kind: KindEmpty}
	}
	return Cell{
		Kind: KindLink,
		Text: location.Name,
		Link: &Link{Href: "/locations/" + location.ID, Title: location.Name, External: true},
	}
}

func kitCell(kit *domain.Kit) Cell {
	if kit == nil || strings.TrimSpace(kit.Name) == "" {
		return Cell{Kind: KindEmpty}
	}
	return Cell{
		Kind: KindLink,
		Text: kit.Name,
		Link: &Link{Href: "/kits/" + kit.ID, Title: kit.Name},
	}
}

func custodyCell(custody *domain.Custody) Cell {
	if custody == nil {
		return Cell{Kind: KindTeamMember}
	}
	name := custody.Custodian.DisplayName()
	c := Cell{Kind: KindTeamMember, Text: name, Badge: &Badge{Label: name}}
	if u := custody.Custodian.User; u != nil && u.ProfilePicture != "" {
		c.Image = &Image{URL: u.ProfilePicture, Alt: name}
	}
	return c
}

func availabilityCell(available bool) Cell {
	return textCell(format.YesNo(available))
}

func reminderCell(asset domain.Asset, viewer Viewer) Cell {
	reminder := asset.UpcomingReminder
	if reminder == nil {
		return Cell{Kind: KindText, Text: NoReminderText}
	}
	label := reminder.DisplayDate
	if label == "" {
		label = format.DateTime(reminder.AlertAt, viewer.Locale, viewer.TimeZone)
	}
	message, _ := Truncate(reminder.Message, ReminderMessageLimit)
	return Cell{
		Kind:    KindLink,
		Text:    label,
		Link:    &Link{Href: RemindersPath(asset.ID)},
		Tooltip: &Tooltip{Heading: reminder.Name, Body: message},
	}
}

func actionsCell(asset domain.Asset) Cell {
	base := AssetPath(asset.ID)
	return Cell{
		Kind: KindMenu,
		Actions: []Action{
			{ID: "edit", Label: "Edit", Href: base + "/edit"},
			{ID: "duplicate", Label: "Duplicate", Href: base + "/duplicate"},
			{ID: "delete", Label: "Delete", Href: base + "/delete"},
		},
	}
}

// AssetPath is the detail route of an asset.
func AssetPath(id string) string {
	return "/assets/" + id
}

// RemindersPath is the reminders route of an asset.
func RemindersPath(id string) string {
	return fmt.Sprintf("/assets/%s/reminders", id)
}

// QRPath is the preview route of a QR code.
func QRPath(qrID string) string {
	return "/qr/" + qrID
}
