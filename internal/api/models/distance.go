package models

import (
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/table"
)

// DistanceMatrix is the wire form of a symmetric distance matrix:
// ordered labels plus a dense row-major grid.
type DistanceMatrix struct {
	Labels []string    `json:"labels"`
	Rows   [][]float64 `json:"rows"`
}

// NewDistanceMatrix flattens a matrix into its wire form.
func NewDistanceMatrix(m *table.Matrix) DistanceMatrix {
	rows := make([][]float64, m.Rows())
	for i := range rows {
		row := make([]float64, m.Cols())
		for j := range row {
			row[j] = m.At(i, j)
		}
		rows[i] = row
	}
	return DistanceMatrix{Labels: m.RowLabels(), Rows: rows}
}

// UnrolledDistances wraps the long-form distance records.
type UnrolledDistances struct {
	Pairs []distance.PairRecord `json:"pairs"`
}

// NearbyIDs lists the identifiers within the distance threshold of a
// reference, with their average distances.
type NearbyIDs struct {
	Reference string                     `json:"reference"`
	IDs       []distance.AverageDistance `json:"ids"`
}
