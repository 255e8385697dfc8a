package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/cell"
	"github.com/hylla/assetdex/internal/domain"
)

// column widths in terminal cells.
const (
	titleColumnWidth   = 30
	wideColumnWidth    = 26
	defaultColumnWidth = 16
	narrowColumnWidth  = 8
)

// painter renders rendered cells as styled single-line terminal text.
type painter struct {
	muted  lipgloss.Style
	title  lipgloss.Style
	link   lipgloss.Style
	header lipgloss.Style
	marker lipgloss.Style
}

// newPainter constructs the default painter palette.
func newPainter() painter {
	return painter{
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		link:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		marker: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// columnWidth picks a display width for one column header.
func columnWidth(header app.ColumnHeader) int {
	if header.CustomField {
		return defaultColumnWidth
	}
	key, err := domain.ParseColumnKey(header.Key)
	if err != nil {
		return defaultColumnWidth
	}
	switch key.Fixed() {
	case domain.ColumnName:
		return titleColumnWidth
	case domain.ColumnDescription, domain.ColumnTags, domain.ColumnUpcomingReminder:
		return wideColumnWidth
	case domain.ColumnQRID, domain.ColumnAvailableToBook, domain.ColumnActions:
		return narrowColumnWidth
	default:
		return defaultColumnWidth
	}
}

// badge renders one colored label.
func (p painter) badge(b cell.Badge) string {
	style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255"))
	if domain.IsHexColor(b.Color) {
		style = style.Background(lipgloss.Color(b.Color))
	} else {
		style = style.Background(lipgloss.Color("240"))
	}
	out := style.Render(b.Label)
	if b.Marker != "" {
		out += " " + p.marker.Render("!"+b.Marker)
	}
	return out
}

// paint renders one cell at a fixed width; longer content is truncated.
func (p painter) paint(c cell.Cell, width int) string {
	return fitWidth(p.content(c), width)
}

// content renders the cell without width constraints.
func (p painter) content(c cell.Cell) string {
	switch c.Kind {
	case cell.KindEmpty:
		return ""
	case cell.KindTitle:
		text := p.title.Render(c.Text)
		if c.Image != nil {
			text = p.muted.Render("▣ ") + text
		}
		return text
	case cell.KindQR:
		return p.link.Render("QR")
	case cell.KindBadge, cell.KindStatus:
		if c.Badge == nil {
			return c.Text
		}
		return p.badge(*c.Badge)
	case cell.KindTeamMember:
		if c.Badge == nil {
			return ""
		}
		return p.badge(*c.Badge)
	case cell.KindTags:
		parts := make([]string, 0, len(c.Tags)+1)
		for _, tag := range c.Tags {
			parts = append(parts, p.badge(tag))
		}
		if c.Overflow > 0 {
			parts = append(parts, p.muted.Render(fmt.Sprintf("+%d", c.Overflow)))
		}
		return strings.Join(parts, " ")
	case cell.KindLink:
		return p.link.Render(c.Text)
	case cell.KindPopover:
		if c.Popover == nil {
			return c.Text
		}
		return p.link.Render(c.Popover.Trigger)
	case cell.KindMenu:
		return p.muted.Render("⋯")
	default:
		return c.Text
	}
}

// tooltip renders the hover text for one cell, or "" when it has none.
func (p painter) tooltip(c cell.Cell) string {
	if c.Tooltip == nil {
		return ""
	}
	body := c.Tooltip.Body
	if !c.Tooltip.PreserveLineBreaks {
		body = strings.Join(strings.Fields(body), " ")
	}
	if c.Tooltip.Heading == "" {
		return body
	}
	return p.title.Render(c.Tooltip.Heading) + "\n" + body
}

// copyValue returns what `y` places on the clipboard for one cell.
func copyValue(c cell.Cell) string {
	switch {
	case c.Dialog != nil:
		return c.Dialog.URL
	case c.Link != nil && c.Link.External:
		return c.Link.Href
	default:
		return c.Plain()
	}
}

// fitWidth truncates styled text to width and pads it to exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
