package tui

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"
	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/cell"
)

// TestPainterContent verifies each cell kind renders its visible text.
func TestPainterContent(t *testing.T) {
	p := newPainter()
	cases := []struct {
		name string
		cell cell.Cell
		want string
	}{
		{name: "empty", cell: cell.Cell{Kind: cell.KindEmpty, Text: "ignored"}, want: ""},
		{name: "title", cell: cell.Cell{Kind: cell.KindTitle, Text: "Drill"}, want: "Drill"},
		{name: "title image", cell: cell.Cell{Kind: cell.KindTitle, Text: "Drill", Image: &cell.Image{URL: "/img/a1", Alt: "Drill"}}, want: "▣ Drill"},
		{name: "qr", cell: cell.Cell{Kind: cell.KindQR, Text: "qr-1"}, want: "QR"},
		{name: "status badge", cell: cell.Cell{Kind: cell.KindStatus, Badge: &cell.Badge{Label: "Available", Color: "#16a34a"}}, want: " Available "},
		{name: "badge marker", cell: cell.Cell{Kind: cell.KindBadge, Badge: &cell.Badge{Label: "Power", Color: "#ff0000", Marker: "archived"}}, want: " Power  !archived"},
		{name: "badge without data", cell: cell.Cell{Kind: cell.KindBadge, Text: "Uncategorized"}, want: "Uncategorized"},
		{name: "team member empty", cell: cell.Cell{Kind: cell.KindTeamMember}, want: ""},
		{name: "tags overflow", cell: cell.Cell{Kind: cell.KindTags, Tags: []cell.Badge{{Label: "a"}, {Label: "b"}}, Overflow: 3}, want: " a   b  +3"},
		{name: "link", cell: cell.Cell{Kind: cell.KindLink, Text: "example.test"}, want: "example.test"},
		{name: "popover", cell: cell.Cell{Kind: cell.KindPopover, Popover: &cell.Popover{Trigger: "View content"}}, want: "View content"},
		{name: "menu", cell: cell.Cell{Kind: cell.KindMenu}, want: "⋯"},
		{name: "money", cell: cell.Cell{Kind: cell.KindMoney, Text: "$1,250.00"}, want: "$1,250.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ansi.Strip(p.content(tc.cell)); got != tc.want {
				t.Fatalf("content() = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestPainterTooltip verifies whitespace handling and headings.
func TestPainterTooltip(t *testing.T) {
	p := newPainter()
	if got := p.tooltip(cell.Cell{}); got != "" {
		t.Fatalf("tooltip() = %q, want empty", got)
	}
	got := p.tooltip(cell.Cell{Tooltip: &cell.Tooltip{Body: "one\n  two   three"}})
	if got != "one two three" {
		t.Fatalf("tooltip() = %q", got)
	}
	got = p.tooltip(cell.Cell{Tooltip: &cell.Tooltip{Body: "line one\nline two", PreserveLineBreaks: true}})
	if got != "line one\nline two" {
		t.Fatalf("tooltip() = %q, want preserved breaks", got)
	}
	got = ansi.Strip(p.tooltip(cell.Cell{Tooltip: &cell.Tooltip{Heading: "Drill", Body: "body"}}))
	if got != "Drill\nbody" {
		t.Fatalf("tooltip() = %q, want heading line", got)
	}
}

// TestCopyValue verifies which value is copied for each cell shape.
func TestCopyValue(t *testing.T) {
	cases := []struct {
		name string
		cell cell.Cell
		want string
	}{
		{name: "dialog url", cell: cell.Cell{Kind: cell.KindQR, Text: "qr-1", Dialog: &cell.Dialog{URL: "https://example.test/qr/qr-1"}}, want: "https://example.test/qr/qr-1"},
		{name: "external link", cell: cell.Cell{Kind: cell.KindLink, Text: "example.test", Link: &cell.Link{Href: "https://example.test/?ref=x", External: true}}, want: "https://example.test/?ref=x"},
		{name: "internal link uses title", cell: cell.Cell{Kind: cell.KindTitle, Text: "Dri...", Link: &cell.Link{Href: "/assets/a1", Title: "Drill press"}}, want: "Drill press"},
		{name: "popover markdown", cell: cell.Cell{Kind: cell.KindPopover, Popover: &cell.Popover{Trigger: "View", Markdown: "# Notes"}}, want: "# Notes"},
		{name: "plain text", cell: cell.Cell{Kind: cell.KindText, Text: "Aisle 4"}, want: "Aisle 4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := copyValue(tc.cell); got != tc.want {
				t.Fatalf("copyValue() = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestFitWidth verifies truncation and padding use terminal cell widths.
func TestFitWidth(t *testing.T) {
	if got := fitWidth("abc", 5); got != "abc  " {
		t.Fatalf("fitWidth pad = %q", got)
	}
	if got := fitWidth("abcdefgh", 5); ansi.StringWidth(got) != 5 || !strings.HasSuffix(got, "…") {
		t.Fatalf("fitWidth truncate = %q", got)
	}
	styled := newPainter().title.Render("abcdefgh")
	if got := fitWidth(styled, 4); ansi.StringWidth(got) != 4 {
		t.Fatalf("fitWidth styled width = %d", ansi.StringWidth(got))
	}
	if got := fitWidth("abc", 0); got != "" {
		t.Fatalf("fitWidth zero = %q", got)
	}
}

// TestColumnWidth verifies width classes per column.
func TestColumnWidth(t *testing.T) {
	cases := []struct {
		header app.ColumnHeader
		want   int
	}{
		{header: app.ColumnHeader{Key: "name"}, want: titleColumnWidth},
		{header: app.ColumnHeader{Key: "description"}, want: wideColumnWidth},
		{header: app.ColumnHeader{Key: "qrId"}, want: narrowColumnWidth},
		{header: app.ColumnHeader{Key: "status"}, want: defaultColumnWidth},
		{header: app.ColumnHeader{Key: "cf_Serial", CustomField: true}, want: defaultColumnWidth},
		{header: app.ColumnHeader{Key: "bogus"}, want: defaultColumnWidth},
	}
	for _, tc := range cases {
		if got := columnWidth(tc.header); got != tc.want {
			t.Fatalf("columnWidth(%q) = %d, want %d", tc.header.Key, got, tc.want)
		}
	}
}

// TestRenderTable verifies the static table lists the org, headers, and cells.
func TestRenderTable(t *testing.T) {
	out := ansi.Strip(RenderTable(samplePage(), 0))
	for _, want := range []string{"Acme Rentals", "2 assets · en-US · UTC", "Name", "Status", "Available", "Ladder", "View content"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}

	narrow := ansi.Strip(RenderTable(samplePage(), 50))
	if !strings.Contains(narrow, "Name") {
		t.Fatalf("expected frozen name column in narrow table:\n%s", narrow)
	}
	if strings.Contains(narrow, "Vendor") || strings.Contains(narrow, "Actions") {
		t.Fatalf("expected trailing columns dropped in narrow table:\n%s", narrow)
	}

	empty := RenderTable(app.IndexPage{}, 80)
	if ansi.Strip(empty) != "no columns to show" {
		t.Fatalf("empty table = %q", empty)
	}
}

// TestKeyMapHelp verifies help groups include the index bindings.
func TestKeyMapHelp(t *testing.T) {
	keys := newKeyMap()
	short := keys.ShortHelp()
	if len(short) == 0 || short[len(short)-1].Help().Key != "q" {
		t.Fatalf("unexpected short help %#v", short)
	}
	var all []key.Binding
	for _, group := range keys.FullHelp() {
		all = append(all, group...)
	}
	found := false
	for _, binding := range all {
		if binding.Help().Key == "i" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected toggle images in full help")
	}
	if !key.Matches(keyRune('y'), keys.copyValue) {
		t.Fatal("expected y to match copy binding")
	}
}
