package cell

import (
	"github.com/hylla/assetdex/internal/domain"
	"github.com/hylla/assetdex/internal/permission"
)

// Render produces the cell for column on asset. The boolean is false when the
// cell must be left out of the row entirely (a denied permission gate).
func Render(column domain.ColumnKey, asset domain.Asset, viewer Viewer) (Cell, bool) {
	if column.IsCustomField() {
		return withColumn(column, customFieldCell(column.CustomFieldName(), asset, viewer)), true
	}

	var out Cell
	switch column.Fixed() {
	case domain.ColumnName:
		out = titleCell(asset, viewer)
	case domain.ColumnID:
		out = textCell(asset.ID)
	case domain.ColumnQRID:
		out = qrCell(asset)
	case domain.ColumnStatus:
		out = statusCell(asset)
	case domain.ColumnDescription:
		out = descriptionCell(asset.Description)
	case domain.ColumnValuation:
		out = valuationCell(asset.Valuation, viewer)
	case domain.ColumnCreatedAt:
		out = dateCell(viewer.date(asset.CreatedAt))
	case domain.ColumnCategory:
		out = categoryCell(asset.Category)
	case domain.ColumnTags:
		out = tagsCell(asset.Tags)
	case domain.ColumnLocation:
		out = locationCell(asset.Location)
	case domain.ColumnKit:
		out = kitCell(asset.Kit)
	case domain.ColumnCustody:
		if !viewer.can(permission.EntityCustody, permission.ActionRead) {
			return Cell{}, false
		}
		out = custodyCell(asset.Custody)
	case domain.ColumnAvailableToBook:
		out = availabilityCell(asset.AvailableToBook)
	case domain.ColumnUpcomingReminder:
		out = reminderCell(asset, viewer)
	case domain.ColumnActions:
		out = actionsCell(asset)
	default:
		out = Cell{Kind: KindEmpty}
	}
	return withColumn(column, out), true
}

// Row is one rendered index row. Omitted columns have no entry in Cells.
type Row struct {
	AssetID string `json:"assetId"`
	Title   string `json:"title"`
	Cells   []Cell `json:"cells"`
}

// RenderRow renders every column for asset, dropping omitted cells.
func RenderRow(columns []domain.ColumnKey, asset domain.Asset, viewer Viewer) Row {
	row := Row{AssetID: asset.ID, Title: asset.Title, Cells: make([]Cell, 0, len(columns))}
	for _, column := range columns {
		c, ok := Render(column, asset, viewer)
		if !ok {
			continue
		}
		row.Cells = append(row.Cells, c)
	}
	return row
}

// Visible reports whether column produces cells for this viewer at all.
func Visible(column domain.ColumnKey, viewer Viewer) bool {
	if column.Fixed() == domain.ColumnCustody {
		return viewer.can(permission.EntityCustody, permission.ActionRead)
	}
	return true
}

func withColumn(column domain.ColumnKey, c Cell) Cell {
	c.Column = column.String()
	if c.Kind == "" {
		c.Kind = KindEmpty
	}
	return c
}
