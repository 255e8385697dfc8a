package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/cell"
)

// RenderTable renders one index page as a static bordered table. Columns
// that do not fit within maxWidth are dropped from the right; the frozen
// title column is always kept. maxWidth <= 0 disables the limit.
func RenderTable(page app.IndexPage, maxWidth int) string {
	p := newPainter()
	headers := visibleHeaders(page.Columns, maxWidth)
	if len(headers) == 0 {
		return p.muted.Render("no columns to show")
	}

	names := make([]string, 0, len(headers))
	for _, h := range headers {
		names = append(names, h.Label)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers(names...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, row := range page.Rows {
		byColumn := cellsByColumn(row)
		values := make([]string, 0, len(headers))
		for _, h := range headers {
			values = append(values, p.paint(byColumn[h.Key], columnWidth(h)))
		}
		t.Row(values...)
	}

	var b strings.Builder
	b.WriteString(p.title.Render(page.Organization.Name))
	b.WriteString(p.muted.Render(fmt.Sprintf("  %d assets · %s · %s", len(page.Rows), page.Locale, page.TimeZone)))
	b.WriteString("\n")
	b.WriteString(t.String())
	return b.String()
}

// visibleHeaders keeps the columns whose padded widths fit maxWidth.
func visibleHeaders(headers []app.ColumnHeader, maxWidth int) []app.ColumnHeader {
	if maxWidth <= 0 {
		return headers
	}
	out := make([]app.ColumnHeader, 0, len(headers))
	used := 1
	for _, h := range headers {
		// cell width plus padding and one border rune.
		need := columnWidth(h) + 3
		if used+need > maxWidth && !h.Frozen && len(out) > 0 {
			continue
		}
		used += need
		out = append(out, h)
	}
	return out
}

// cellsByColumn indexes one row's cells by column key.
func cellsByColumn(row cell.Row) map[string]cell.Cell {
	out := make(map[string]cell.Cell, len(row.Cells))
	for _, c := range row.Cells {
		out[c.Column] = c
	}
	return out
}
