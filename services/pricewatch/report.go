package pricewatch

import (
	"sort"
)

type RowStatus int

const (
	RowStable RowStatus = iota
	// price present on every date in the window but not constant
	RowChanged
	// at least one date in the window has no observation for this product.
	// takes priority over RowChanged when both apply.
	RowMissing
)

func (s RowStatus) String() string {
	switch s {
	case RowChanged:
		return "changed"
	case RowMissing:
		return "missing"
	}
	return "stable"
}

// Row is one product's prices across the date window. Cells aligns with
// Matrix.Dates, nil marks an absent observation.
type Row struct {
	Name   string
	Cells  []*float64
	Status RowStatus
}

func (r Row) Flagged() bool {
	return r.Status != RowStable
}

// Matrix is the date-indexed pivot of observations per product, built
// fresh on every report request.
type Matrix struct {
	Dates []string
	Rows  []Row
}

// Flagged returns only the rows worth looking at: something changed or
// something disappeared. the report exists to show movement, not to
// restate the catalogue.
func (m Matrix) Flagged() []Row {
	var out []Row
	for _, row := range m.Rows {
		if row.Flagged() {
			out = append(out, row)
		}
	}
	return out
}

// BuildMatrix pivots observations into rows-by-name over the most recent
// `windowSize` distinct dates. where duplicate logical entries exist for a
// (name, date) cell the first encountered wins.
func BuildMatrix(observations []Observation, windowSize int) Matrix {
	if windowSize <= 0 {
		windowSize = 4
	}

	dateSet := map[string]bool{}
	for _, obs := range observations {
		dateSet[obs.Date] = true
	}
	allDates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		allDates = append(allDates, date)
	}
	sort.Strings(allDates)
	if len(allDates) > windowSize {
		allDates = allDates[len(allDates)-windowSize:]
	}

	dateIndex := map[string]int{}
	for i, date := range allDates {
		dateIndex[date] = i
	}

	cells := map[string][]*float64{}
	for _, obs := range observations {
		i, inWindow := dateIndex[obs.Date]
		if !inWindow {
			continue
		}
		row, exists := cells[obs.Name]
		if !exists {
			row = make([]*float64, len(allDates))
			cells[obs.Name] = row
		}
		if row[i] == nil {
			price := obs.Price
			row[i] = &price
		}
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, Row{
			Name:   name,
			Cells:  cells[name],
			Status: classifyRow(cells[name]),
		})
	}

	return Matrix{
		Dates: allDates,
		Rows:  rows,
	}
}

func classifyRow(cells []*float64) RowStatus {
	distinct := map[float64]bool{}
	missing := false
	for _, cell := range cells {
		if cell == nil {
			missing = true
			continue
		}
		distinct[*cell] = true
	}
	if missing {
		return RowMissing
	}
	if len(distinct) > 1 {
		return RowChanged
	}
	return RowStable
}
