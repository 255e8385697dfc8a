package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the index key bindings.
type keyMap struct {
	quit        key.Binding
	reload      key.Binding
	toggleHelp  key.Binding
	moveLeft    key.Binding
	moveRight   key.Binding
	moveUp      key.Binding
	moveDown    key.Binding
	open        key.Binding
	copyValue   key.Binding
	toggleImage key.Binding
	close       key.Binding
}

// newKeyMap constructs the default bindings.
func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "asset up")),
		moveDown:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "asset down")),
		open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open cell")),
		copyValue:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy value")),
		toggleImage: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "toggle images")),
		close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp returns the compact help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.open, k.copyValue, k.toggleImage, k.reload, k.toggleHelp, k.quit}
}

// FullHelp returns grouped bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.open, k.close, k.copyValue, k.toggleImage},
		{k.reload, k.toggleHelp, k.quit},
	}
}
