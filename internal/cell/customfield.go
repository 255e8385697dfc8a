package cell

import (
	"github.com/hylla/assetdex/internal/domain"
	"github.com/hylla/assetdex/internal/format"
)

// customFieldCell renders a cf_ column. Branch order: multiline, link-shaped
// text, amount, plain.
func customFieldCell(name string, asset domain.Asset, viewer Viewer) Cell {
	value, ok := asset.CustomFieldValue(name)
	if !ok {
		return Cell{Kind: KindEmpty}
	}
	fieldType := value.CustomField.Type
	display := viewer.displayValue(fieldType, value.Value)

	switch {
	case fieldType == domain.CustomFieldTypeMultilineText:
		return Cell{
			Kind:    KindPopover,
			Text:    ViewContentText,
			Popover: &Popover{Trigger: ViewContentText, Markdown: display},
		}
	case fieldType == domain.CustomFieldTypeText && format.IsLink(display):
		return Cell{
			Kind: KindLink,
			Text: display,
			Link: &Link{Href: format.WithTrackingRef(display, viewer.TrackingRef), External: true, Title: display},
		}
	case fieldType == domain.CustomFieldTypeAmount:
		if amount, ok := value.Value.Amount(); ok {
			return Cell{Kind: KindMoney, Text: viewer.currency(amount)}
		}
	}
	if display == "" {
		return Cell{Kind: KindEmpty}
	}
	return Cell{Kind: KindText, Text: display}
}
