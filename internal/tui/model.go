package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/cell"
)

// Service is the index surface the model reads from.
type Service interface {
	RenderIndex(context.Context, app.IndexRequest) (app.IndexPage, error)
	Preferences() cell.Preferences
}

// overlayMode identifies the modal opened on the focused cell.
type overlayMode int

// overlayNone and related constants enumerate cell overlays.
const (
	overlayNone overlayMode = iota
	overlayPopover
	overlayDialog
	overlayActions
	overlayTooltip
)

// chrome heights reserved around the row area.
const (
	headerLines  = 3
	tooltipLines = 4
)

// loadedMsg carries one index load result.
type loadedMsg struct {
	page app.IndexPage
	err  error
}

// clipboardMsg reports one clipboard write.
type clipboardMsg struct {
	value string
	err   error
}

// Model is the interactive advanced index.
type Model struct {
	svc            Service
	request        app.IndexRequest
	showImage      bool
	writeClipboard func(string) error

	ready  bool
	width  int
	height int
	err    error
	status string

	help     help.Model
	keys     keyMap
	painter  painter
	markdown *markdownRenderer

	page      app.IndexPage
	loaded    bool
	row       int
	col       int
	colOffset int

	overlay     overlayMode
	actionIndex int
}

// NewModel constructs the index model.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:            svc,
		status:         "loading...",
		help:           h,
		keys:           newKeyMap(),
		painter:        newPainter(),
		markdown:       &markdownRenderer{},
		writeClipboard: clipboard.WriteAll,
	}
	if svc != nil {
		m.showImage = svc.Preferences().ShowImage
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.ensureColumnVisible()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.page = msg.page
		m.loaded = true
		m.row = clamp(m.row, 0, len(m.page.Rows)-1)
		m.col = clamp(m.col, 0, len(m.page.Columns)-1)
		m.ensureColumnVisible()
		if m.status == "" || m.status == "loading..." {
			m.status = fmt.Sprintf("%d assets", len(m.page.Rows))
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "copied " + truncate(msg.value, 40)
		return m, nil

	case tea.KeyPressMsg:
		if m.overlay != overlayNone {
			return m.handleOverlayKey(msg)
		}
		return m.handleNormalModeKey(msg)

	default:
		return m, nil
	}
}

// loadData renders the index through the service.
func (m Model) loadData() tea.Msg {
	if m.svc == nil {
		return loadedMsg{err: fmt.Errorf("index service is not configured")}
	}
	page, err := m.svc.RenderIndex(context.Background(), m.request)
	return loadedMsg{page: page, err: err}
}

// handleNormalModeKey handles keys while no overlay is open.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadData
	}
	if m.err != nil || !m.loaded {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.moveLeft):
		m.col = clamp(m.col-1, 0, len(m.page.Columns)-1)
		m.ensureColumnVisible()
	case key.Matches(msg, m.keys.moveRight):
		m.col = clamp(m.col+1, 0, len(m.page.Columns)-1)
		m.ensureColumnVisible()
	case key.Matches(msg, m.keys.moveUp):
		m.row = clamp(m.row-1, 0, len(m.page.Rows)-1)
	case key.Matches(msg, m.keys.moveDown):
		m.row = clamp(m.row+1, 0, len(m.page.Rows)-1)
	case key.Matches(msg, m.keys.open):
		m.openFocusedCell()
	case key.Matches(msg, m.keys.copyValue):
		return m, m.copyFocusedCell()
	case key.Matches(msg, m.keys.toggleImage):
		cmd := m.toggleImage()
		return m, cmd
	}
	return m, nil
}

// handleOverlayKey handles keys while an overlay is open.
func (m Model) handleOverlayKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.close), msg.String() == "q":
		m.overlay = overlayNone
		return m, nil
	case key.Matches(msg, m.keys.copyValue):
		return m, m.copyFocusedCell()
	}
	if m.overlay != overlayActions {
		if key.Matches(msg, m.keys.open) {
			m.overlay = overlayNone
		}
		return m, nil
	}
	c, _ := m.focusedCell()
	switch {
	case key.Matches(msg, m.keys.moveUp):
		m.actionIndex = wrapIndex(m.actionIndex, -1, len(c.Actions))
	case key.Matches(msg, m.keys.moveDown):
		m.actionIndex = wrapIndex(m.actionIndex, 1, len(c.Actions))
	case key.Matches(msg, m.keys.open):
		if len(c.Actions) > 0 {
			action := c.Actions[clamp(m.actionIndex, 0, len(c.Actions)-1)]
			m.status = fmt.Sprintf("%s → %s", action.Label, action.Href)
		}
		m.overlay = overlayNone
	}
	return m, nil
}

// openFocusedCell opens the overlay matching the focused cell.
func (m *Model) openFocusedCell() {
	c, ok := m.focusedCell()
	if !ok {
		m.status = "nothing to open"
		return
	}
	switch {
	case c.Popover != nil:
		m.overlay = overlayPopover
	case c.Dialog != nil:
		m.overlay = overlayDialog
	case len(c.Actions) > 0:
		m.overlay = overlayActions
		m.actionIndex = 0
	case c.Link != nil:
		m.status = "link: " + c.Link.Href
	case c.Tooltip != nil:
		m.overlay = overlayTooltip
	default:
		m.status = "nothing to open"
	}
}

// copyFocusedCell copies the focused cell's full value or link.
func (m Model) copyFocusedCell() tea.Cmd {
	c, ok := m.focusedCell()
	if !ok {
		return nil
	}
	value := copyValue(c)
	if strings.TrimSpace(value) == "" {
		return func() tea.Msg { return clipboardMsg{err: fmt.Errorf("cell is empty")} }
	}
	write := m.writeClipboard
	return func() tea.Msg {
		return clipboardMsg{value: value, err: write(value)}
	}
}

// toggleImage flips the show-image preference and reloads.
func (m *Model) toggleImage() tea.Cmd {
	prefs := cell.Preferences{}
	switch {
	case m.request.Preferences != nil:
		prefs = *m.request.Preferences
	case m.svc != nil:
		prefs = m.svc.Preferences()
	}
	m.showImage = !m.showImage
	prefs.ShowImage = m.showImage
	m.request.Preferences = &prefs
	if m.showImage {
		m.status = "images on"
	} else {
		m.status = "images off"
	}
	return m.loadData
}

// focusedCell returns the cell under the cursor.
func (m Model) focusedCell() (cell.Cell, bool) {
	if len(m.page.Rows) == 0 || len(m.page.Columns) == 0 {
		return cell.Cell{}, false
	}
	row := m.page.Rows[clamp(m.row, 0, len(m.page.Rows)-1)]
	column := m.page.Columns[clamp(m.col, 0, len(m.page.Columns)-1)]
	c, ok := cellsByColumn(row)[column.Key]
	if !ok || c.Empty() {
		return c, false
	}
	return c, true
}

// splitColumns partitions column indexes into frozen and scrollable groups.
func (m Model) splitColumns() (frozen, scroll []int) {
	for idx, column := range m.page.Columns {
		if column.Frozen {
			frozen = append(frozen, idx)
			continue
		}
		scroll = append(scroll, idx)
	}
	return frozen, scroll
}

// visibleColumns returns the frozen columns followed by the scroll window.
func (m Model) visibleColumns() []int {
	frozen, scroll := m.splitColumns()
	out := append([]int(nil), frozen...)
	used := 0
	for _, idx := range frozen {
		used += columnWidth(m.page.Columns[idx]) + 1
	}
	width := m.width
	if width <= 0 {
		width = 120
	}
	for i := clamp(m.colOffset, 0, len(scroll)); i < len(scroll); i++ {
		need := columnWidth(m.page.Columns[scroll[i]]) + 1
		if used+need > width && len(out) > len(frozen) {
			break
		}
		used += need
		out = append(out, scroll[i])
	}
	return out
}

// ensureColumnVisible scrolls horizontally so the cursor column is shown.
func (m *Model) ensureColumnVisible() {
	if len(m.page.Columns) == 0 {
		m.colOffset = 0
		return
	}
	_, scroll := m.splitColumns()
	pos := -1
	for i, idx := range scroll {
		if idx == m.col {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}
	if pos < m.colOffset {
		m.colOffset = pos
		return
	}
	for m.colOffset < pos {
		if containsInt(m.visibleColumns(), m.col) {
			return
		}
		m.colOffset++
	}
}

// View renders the index, tooltip panel, help, and any overlay.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.AltScreen = true
		return v
	}
	if !m.ready || !m.loaded {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	sections := []string{
		m.painter.title.Render(m.page.Organization.Name) + "  " + statusStyle.Render(m.status),
		"",
	}
	if len(m.page.Rows) == 0 {
		sections = append(sections, "No assets yet. Run `assetdex seed` to create demo data.")
	} else {
		sections = append(sections, m.renderGrid())
	}
	sections = append(sections, m.renderTooltipPanel(dim))
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	fullContent := content + "\n" + helpLine
	if overlay := m.renderOverlay(max(30, m.width-8)); overlay != "" {
		height := lipgloss.Height(fullContent)
		if m.height > 0 {
			height = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, height))
	}
	v := tea.NewView(fullContent)
	v.AltScreen = true
	return v
}

// renderGrid renders the header row and the visible row window.
func (m Model) renderGrid() string {
	columns := m.visibleColumns()
	selected := lipgloss.NewStyle().Reverse(true)

	headers := make([]string, 0, len(columns))
	for _, idx := range columns {
		h := m.page.Columns[idx]
		headers = append(headers, m.painter.header.Render(fitWidth(h.Label, columnWidth(h))))
	}
	lines := []string{strings.Join(headers, " ")}

	rowsHeight := len(m.page.Rows)
	if m.height > 0 {
		rowsHeight = max(1, m.height-headerLines-tooltipLines-3)
	}
	start, end := windowBounds(len(m.page.Rows), m.row, rowsHeight)
	for r := start; r < end; r++ {
		byColumn := cellsByColumn(m.page.Rows[r])
		parts := make([]string, 0, len(columns))
		for _, idx := range columns {
			h := m.page.Columns[idx]
			painted := m.painter.paint(byColumn[h.Key], columnWidth(h))
			if r == m.row && idx == m.col {
				painted = selected.Render(ansi.Strip(painted))
			}
			parts = append(parts, painted)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// renderTooltipPanel renders the focused cell's tooltip below the grid.
func (m Model) renderTooltipPanel(dim color.Color) string {
	c, ok := m.focusedCell()
	body := ""
	if ok {
		body = m.painter.tooltip(c)
	}
	if body == "" {
		return ""
	}
	return lipgloss.NewStyle().
		BorderTop(true).
		BorderForeground(dim).
		Width(max(0, m.width)).
		Render(fitLines(body, tooltipLines-1))
}

// renderOverlay renders the open overlay box, or "" when none is open.
func (m Model) renderOverlay(width int) string {
	if m.overlay == overlayNone {
		return ""
	}
	c, _ := m.focusedCell()
	boxWidth := min(width, 72)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(boxWidth)
	hint := m.painter.muted.Render("esc close • y copy")

	switch m.overlay {
	case overlayPopover:
		if c.Popover == nil {
			return ""
		}
		body := m.markdown.render(c.Popover.Markdown, boxWidth-4)
		return box.Render(m.painter.title.Render(c.Popover.Trigger) + "\n\n" + body + "\n\n" + hint)
	case overlayDialog:
		if c.Dialog == nil {
			return ""
		}
		lines := []string{
			m.painter.title.Render(c.Dialog.Title),
			"",
			"QR id: " + c.Dialog.QRID,
			m.painter.link.Render(c.Dialog.URL),
			"",
			hint,
		}
		return box.Render(strings.Join(lines, "\n"))
	case overlayActions:
		lines := []string{m.painter.title.Render("Actions"), ""}
		for i, action := range c.Actions {
			prefix := "  "
			if i == m.actionIndex {
				prefix = "› "
			}
			lines = append(lines, prefix+action.Label)
		}
		lines = append(lines, "", m.painter.muted.Render("enter select • esc close"))
		return box.Render(strings.Join(lines, "\n"))
	case overlayTooltip:
		return box.Render(m.painter.tooltip(c) + "\n\n" + hint)
	default:
		return ""
	}
}

// clamp clamps v into [minV, maxV]; an empty range yields minV.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// wrapIndex moves current by delta, wrapping within [0,total).
func wrapIndex(current, delta, total int) int {
	if total <= 0 {
		return 0
	}
	next := (current + delta) % total
	if next < 0 {
		next += total
	}
	return next
}

// windowBounds returns a [start,end) window of size windowSize around selected.
func windowBounds(total, selected, windowSize int) (int, int) {
	if total <= 0 || windowSize <= 0 {
		return 0, 0
	}
	if total <= windowSize {
		return 0, total
	}
	start := selected - windowSize/2
	start = clamp(start, 0, total-windowSize)
	return start, start + windowSize
}

func containsInt(values []int, v int) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

// fitLines pads or cuts content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay on top of base.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate shortens s to max runes with a trailing ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
