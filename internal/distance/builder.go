package distance

import (
	"github.com/tollgrid/tollgrid/internal/table"
)

// BuildMatrix constructs the symmetric distance matrix from long-form
// pair records. The matrix is keyed on both axes by the sorted union
// of identifiers appearing as either endpoint; missing cells default
// to 0. Symmetry comes from adding the matrix to its transpose, so a
// pair supplied in one direction fills both cells. If callers supply
// both directions with differing values the cell holds their sum;
// supply each pair in one canonical direction to avoid that. The
// diagonal is forced to 0 regardless of input.
func BuildMatrix(records []PairRecord) (*table.Matrix, error) {
	ids := make([]string, 0, len(records)*2)
	for _, rec := range records {
		ids = append(ids, rec.IDStart, rec.IDEnd)
	}
	labels := table.SortedLabels(ids)

	m := table.NewMatrix(labels, labels)
	for _, rec := range records {
		m.SetCell(rec.IDStart, rec.IDEnd, rec.Distance)
	}

	sym, err := m.Add(m.Transpose())
	if err != nil {
		return nil, err
	}
	sym.FillDiagonal(0)
	return sym, nil
}

// Unroll flattens a square identifier-labelled matrix back to
// long-form records, row-major by label order. Every cell is emitted,
// the diagonal included: the transform is a pure reshape and does not
// filter. Matrices produced by BuildMatrix carry a zero diagonal, so
// callers needing distance semantics drop self-pairs themselves (see
// WithoutSelfPairs).
func Unroll(m *table.Matrix) ([]PairRecord, error) {
	if !m.IsSquare() {
		return nil, ErrNotSquare
	}

	labels := m.RowLabels()
	records := make([]PairRecord, 0, len(labels)*len(labels))
	for i, start := range labels {
		for j, end := range labels {
			records = append(records, PairRecord{
				IDStart:  start,
				IDEnd:    end,
				Distance: m.At(i, j),
			})
		}
	}
	return records, nil
}

// WithoutSelfPairs returns the records whose endpoints differ.
func WithoutSelfPairs(records []PairRecord) []PairRecord {
	out := make([]PairRecord, 0, len(records))
	for _, rec := range records {
		if rec.IDStart == rec.IDEnd {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Frame converts pair records to the long-form tabular boundary shape
// with the fixed columns id_start, id_end, distance.
func Frame(records []PairRecord) (*table.Frame, error) {
	starts := make([]string, len(records))
	ends := make([]string, len(records))
	dists := make([]float64, len(records))
	for i, rec := range records {
		starts[i] = rec.IDStart
		ends[i] = rec.IDEnd
		dists[i] = rec.Distance
	}
	return table.NewFrame(
		table.StringColumn(ColIDStart, starts),
		table.StringColumn(ColIDEnd, ends),
		table.FloatColumn(ColDistance, dists),
	)
}
