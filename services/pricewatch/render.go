package pricewatch

import (
	"io"

	"beerwatch-backend/lib/pricing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const absentCell = "-"

// RenderTable writes the matrix as a terminal table, products down the
// side, dates across the top, "-" for absent cells. rows are tinted by
// status: red for missing, yellow for changed.
func RenderTable(w io.Writer, matrix Matrix, rows []Row) {
	statusByName := map[string]RowStatus{}
	for _, row := range rows {
		statusByName[row.Name] = row.Status
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	header := table.Row{"name"}
	for _, date := range matrix.Dates {
		header = append(header, date)
	}
	header = append(header, "status")
	t.AppendHeader(header)

	for _, row := range rows {
		cells := table.Row{row.Name}
		for _, cell := range row.Cells {
			if cell == nil {
				cells = append(cells, absentCell)
			} else {
				cells = append(cells, pricing.Format(*cell))
			}
		}
		cells = append(cells, row.Status.String())
		t.AppendRow(cells)
	}

	t.SetRowPainter(func(row table.Row) text.Colors {
		name, _ := row[0].(string)
		switch statusByName[name] {
		case RowMissing:
			return text.Colors{text.FgRed}
		case RowChanged:
			return text.Colors{text.FgYellow}
		}
		return nil
	})

	t.Render()
}
