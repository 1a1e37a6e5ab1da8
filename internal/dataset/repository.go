// Package dataset is the storage boundary for the raw toll datasets
// (segment distances, vehicle counts, timestamped trip reviews) and
// the derived artifacts the worker persists.
package dataset

import (
	"context"
	"errors"

	"github.com/tollgrid/tollgrid/internal/analysis"
	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/toll"
)

// Repository errors.
var (
	// ErrDatasetEmpty is returned when a requested dataset holds no
	// records.
	ErrDatasetEmpty = errors.New("dataset is empty")
)

// Repository reads the raw datasets the pipeline consumes.
type Repository interface {
	// ListSegments returns the long-form segment distance records.
	ListSegments(ctx context.Context) ([]distance.PairRecord, error)

	// ListVehicleCounts returns the per-pair vehicle count records.
	ListVehicleCounts(ctx context.Context) ([]analysis.CountRecord, error)

	// ListObservations returns the timestamped review observations.
	ListObservations(ctx context.Context) ([]coverage.Observation, error)
}

// ArtifactStore persists derived artifacts recomputed by the worker.
type ArtifactStore interface {
	// SaveDistancePairs replaces the stored unrolled distance table.
	SaveDistancePairs(ctx context.Context, pairs []distance.PairRecord) error

	// SaveTollRates replaces the stored base toll rate table.
	SaveTollRates(ctx context.Context, rates []toll.RateRecord) error

	// SaveCoverage replaces the stored completeness report.
	SaveCoverage(ctx context.Context, results []coverage.PairCoverage) error
}

// Importer replaces the raw datasets, used by the admin reload
// endpoint and the remote source sync.
type Importer interface {
	// ReplaceSegments swaps in a new segment dataset.
	ReplaceSegments(ctx context.Context, records []distance.PairRecord) error

	// ReplaceVehicleCounts swaps in a new vehicle count dataset.
	ReplaceVehicleCounts(ctx context.Context, records []analysis.CountRecord) error

	// ReplaceObservations swaps in a new observation dataset.
	ReplaceObservations(ctx context.Context, records []coverage.Observation) error
}
