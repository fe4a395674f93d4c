package pricewatch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMatrixFlagging(t *testing.T) {
	observations := []Observation{
		{Date: "2026-01-01", Name: "Lager A", Price: 3.49},
		{Date: "2026-01-02", Name: "Lager A", Price: 3.49},
		{Date: "2026-01-01", Name: "Lager B", Price: 3.49},
		{Date: "2026-01-02", Name: "Lager B", Price: 3.99},
		{Date: "2026-01-01", Name: "Lager C", Price: 3.49},
	}

	matrix := BuildMatrix(observations, 2)
	require.Equal(t, []string{"2026-01-01", "2026-01-02"}, matrix.Dates)
	require.Len(t, matrix.Rows, 3)

	byName := map[string]Row{}
	for _, row := range matrix.Rows {
		byName[row.Name] = row
	}
	require.Equal(t, RowStable, byName["Lager A"].Status)
	require.Equal(t, RowChanged, byName["Lager B"].Status)
	require.Equal(t, RowMissing, byName["Lager C"].Status)

	flagged := matrix.Flagged()
	require.Len(t, flagged, 2)
	for _, row := range flagged {
		require.NotEqual(t, "Lager A", row.Name)
	}
}

func TestBuildMatrixMissingBeatsChanged(t *testing.T) {
	// price moved AND a cell is absent: surfaced as missing
	observations := []Observation{
		{Date: "2026-01-01", Name: "Lager D", Price: 3.49},
		{Date: "2026-01-02", Name: "Lager D", Price: 3.99},
		{Date: "2026-01-03", Name: "Lager A", Price: 3.49},
	}

	matrix := BuildMatrix(observations, 3)
	byName := map[string]Row{}
	for _, row := range matrix.Rows {
		byName[row.Name] = row
	}
	require.Equal(t, RowMissing, byName["Lager D"].Status)
}

func TestBuildMatrixWindow(t *testing.T) {
	observations := []Observation{
		{Date: "2026-01-01", Name: "Retired Lager", Price: 2.99},
		{Date: "2026-01-02", Name: "Lager A", Price: 3.49},
		{Date: "2026-01-03", Name: "Lager A", Price: 3.49},
		{Date: "2026-01-04", Name: "Lager A", Price: 3.49},
		{Date: "2026-01-05", Name: "Lager A", Price: 3.49},
	}

	matrix := BuildMatrix(observations, 4)
	require.Equal(
		t,
		[]string{"2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05"},
		matrix.Dates,
	)
	// a product seen only before the window does not produce a row
	require.Len(t, matrix.Rows, 1)
	require.Equal(t, "Lager A", matrix.Rows[0].Name)
	require.Equal(t, RowStable, matrix.Rows[0].Status)
}

func TestBuildMatrixFirstObservationWins(t *testing.T) {
	// two logical entries for the same cell should not happen given the
	// identity invariant, but if they do, the first encountered is kept
	observations := []Observation{
		{Date: "2026-01-01", Name: "Lager A", Price: 3.49},
		{Date: "2026-01-01", Name: "Lager A", Price: 9.99},
	}

	matrix := BuildMatrix(observations, 4)
	require.Len(t, matrix.Rows, 1)
	require.NotNil(t, matrix.Rows[0].Cells[0])
	require.Equal(t, 3.49, *matrix.Rows[0].Cells[0])
}

func TestRenderTable(t *testing.T) {
	observations := []Observation{
		{Date: "2026-01-01", Name: "Lager B", Price: 3.49},
		{Date: "2026-01-02", Name: "Lager B", Price: 3.99},
		{Date: "2026-01-01", Name: "Lager C", Price: 3.49},
	}
	matrix := BuildMatrix(observations, 2)

	var buf bytes.Buffer
	RenderTable(&buf, matrix, matrix.Flagged())
	out := buf.String()

	require.Contains(t, out, "Lager B")
	require.Contains(t, out, "3.99")
	require.Contains(t, out, "changed")
	require.Contains(t, out, "missing")
	require.Contains(t, out, absentCell)
}
