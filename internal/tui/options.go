package tui

import "github.com/hylla/assetdex/internal/app"

type Option func(*Model)

// WithRequest sets the index request used for every load.
func WithRequest(req app.IndexRequest) Option {
	return func(m *Model) {
		m.request = req
	}
}

// WithShowImage sets the initial show-image preference used by `i`.
func WithShowImage(show bool) Option {
	return func(m *Model) {
		m.showImage = show
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}
