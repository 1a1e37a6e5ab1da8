// Package distance derives the pairwise distance artifacts: the
// symmetric identifier-by-identifier matrix, its long-form unroll, and
// the nearest-average-distance neighbourhood filter.
package distance

import "errors"

// Long-form column names at the tabular boundary.
const (
	ColIDStart  = "id_start"
	ColIDEnd    = "id_end"
	ColDistance = "distance"
)

// Package errors.
var (
	// ErrReferenceNotFound is returned when the threshold filter's
	// reference identifier has no records. The reference average is
	// undefined in that case and is never treated as zero.
	ErrReferenceNotFound = errors.New("reference identifier not found")

	// ErrNotSquare is returned when an operation requiring a square,
	// identically-labelled matrix receives something else.
	ErrNotSquare = errors.New("matrix is not square")
)

// PairRecord is one measured or inferred segment between two location
// identifiers. Distance is non-negative; symmetry (A→B == B→A) is an
// invariant established by BuildMatrix, not assumed of raw input.
type PairRecord struct {
	IDStart  string  `json:"id_start"`
	IDEnd    string  `json:"id_end"`
	Distance float64 `json:"distance"`
}
