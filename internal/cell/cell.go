// Package cell renders one advanced index cell from a column key, an asset row,
// and the viewer context.
package cell

import "strings"

// Kind identifies the presentation of a cell.
type Kind string

// Kind values.
const (
	KindEmpty      Kind = "empty"
	KindText       Kind = "text"
	KindTitle      Kind = "title"
	KindQR         Kind = "qr"
	KindBadge      Kind = "badge"
	KindStatus     Kind = "status"
	KindDate       Kind = "date"
	KindLink       Kind = "link"
	KindTags       Kind = "tags"
	KindTeamMember Kind = "team_member"
	KindPopover    Kind = "popover"
	KindMoney      Kind = "money"
	KindMenu       Kind = "menu"
)

// Cell is the rendered output for one (row, column) pair.
type Cell struct {
	Column   string   `json:"column"`
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Tooltip  *Tooltip `json:"tooltip,omitempty"`
	Link     *Link    `json:"link,omitempty"`
	Badge    *Badge   `json:"badge,omitempty"`
	Image    *Image   `json:"image,omitempty"`
	Popover  *Popover `json:"popover,omitempty"`
	Dialog   *Dialog  `json:"dialog,omitempty"`
	Tags     []Badge  `json:"tags,omitempty"`
	Overflow int      `json:"overflow,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
	Frozen   bool     `json:"frozen,omitempty"`
}

// Tooltip is content revealed on hover or focus.
type Tooltip struct {
	Heading            string `json:"heading,omitempty"`
	Body               string `json:"body"`
	PreserveLineBreaks bool   `json:"preserveLineBreaks,omitempty"`
}

// Link points at an in-app route or an external page.
type Link struct {
	Href     string `json:"href"`
	External bool   `json:"external,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Badge is a colored label.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	// Marker is an extra hint shown next to the label, e.g. "unavailable".
	Marker string `json:"marker,omitempty"`
}

// Image is a thumbnail shown beside the asset title.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Popover hides content behind a trigger until it is opened.
type Popover struct {
	Trigger  string `json:"trigger"`
	Markdown string `json:"markdown"`
}

// Dialog is the QR preview opened from a QR cell.
type Dialog struct {
	Title string `json:"title"`
	QRID  string `json:"qrId"`
	URL   string `json:"url"`
}

// Action is one entry of the row action menu.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// Plain returns the cell's full textual value, ignoring truncation.
func (c Cell) Plain() string {
	switch {
	case c.Popover != nil:
		return c.Popover.Markdown
	case c.Kind == KindText && c.Tooltip != nil:
		return c.Tooltip.Body
	case c.Kind == KindTitle && c.Link != nil && c.Link.Title != "":
		return c.Link.Title
	case c.Badge != nil:
		return c.Badge.Label
	case len(c.Tags) > 0:
		names := make([]string, 0, len(c.Tags)+1)
		for _, tag := range c.Tags {
			names = append(names, tag.Label)
		}
		if c.Tooltip != nil {
			names = append(names, c.Tooltip.Body)
		}
		return strings.Join(names, ", ")
	default:
		return c.Text
	}
}

// Empty reports whether the cell carries nothing to display.
func (c Cell) Empty() bool {
	return c.Kind == KindEmpty
}
