package dataset

import (
	"context"
	"sync"

	"github.com/tollgrid/tollgrid/internal/analysis"
	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/toll"
)

// InMemoryRepository holds the raw datasets in memory. It backs tests
// and single-node deployments that load CSV snapshots at startup;
// production uses PostgresRepository.
type InMemoryRepository struct {
	mu           sync.RWMutex
	segments     []distance.PairRecord
	counts       []analysis.CountRecord
	observations []coverage.Observation
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// ListSegments returns the segment records.
func (r *InMemoryRepository) ListSegments(_ context.Context) ([]distance.PairRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.segments) == 0 {
		return nil, ErrDatasetEmpty
	}
	return append([]distance.PairRecord(nil), r.segments...), nil
}

// ListVehicleCounts returns the vehicle count records.
func (r *InMemoryRepository) ListVehicleCounts(_ context.Context) ([]analysis.CountRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.counts) == 0 {
		return nil, ErrDatasetEmpty
	}
	return append([]analysis.CountRecord(nil), r.counts...), nil
}

// ListObservations returns the observation records.
func (r *InMemoryRepository) ListObservations(_ context.Context) ([]coverage.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.observations) == 0 {
		return nil, ErrDatasetEmpty
	}
	return append([]coverage.Observation(nil), r.observations...), nil
}

// ReplaceSegments swaps in a new segment dataset.
func (r *InMemoryRepository) ReplaceSegments(_ context.Context, records []distance.PairRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append([]distance.PairRecord(nil), records...)
	return nil
}

// ReplaceVehicleCounts swaps in a new vehicle count dataset.
func (r *InMemoryRepository) ReplaceVehicleCounts(_ context.Context, records []analysis.CountRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append([]analysis.CountRecord(nil), records...)
	return nil
}

// ReplaceObservations swaps in a new observation dataset.
func (r *InMemoryRepository) ReplaceObservations(_ context.Context, records []coverage.Observation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observations = append([]coverage.Observation(nil), records...)
	return nil
}

// Interface guards.
var (
	_ Repository = (*InMemoryRepository)(nil)
	_ Importer   = (*InMemoryRepository)(nil)
)

// InMemoryArtifactStore holds derived artifacts in memory, mirroring
// the derived tables PostgresRepository maintains.
type InMemoryArtifactStore struct {
	mu       sync.RWMutex
	pairs    []distance.PairRecord
	rates    []toll.RateRecord
	coverage []coverage.PairCoverage
}

// NewInMemoryArtifactStore creates an empty in-memory artifact store.
func NewInMemoryArtifactStore() *InMemoryArtifactStore {
	return &InMemoryArtifactStore{}
}

// SaveDistancePairs replaces the stored unrolled distance table.
func (s *InMemoryArtifactStore) SaveDistancePairs(_ context.Context, pairs []distance.PairRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs = append([]distance.PairRecord(nil), pairs...)
	return nil
}

// SaveTollRates replaces the stored base toll rate table.
func (s *InMemoryArtifactStore) SaveTollRates(_ context.Context, rates []toll.RateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = append([]toll.RateRecord(nil), rates...)
	return nil
}

// SaveCoverage replaces the stored completeness report.
func (s *InMemoryArtifactStore) SaveCoverage(_ context.Context, results []coverage.PairCoverage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coverage = append([]coverage.PairCoverage(nil), results...)
	return nil
}

// DistancePairs returns the stored unrolled distance table.
func (s *InMemoryArtifactStore) DistancePairs() []distance.PairRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]distance.PairRecord(nil), s.pairs...)
}

// TollRates returns the stored base toll rate table.
func (s *InMemoryArtifactStore) TollRates() []toll.RateRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]toll.RateRecord(nil), s.rates...)
}

// Coverage returns the stored completeness report.
func (s *InMemoryArtifactStore) Coverage() []coverage.PairCoverage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]coverage.PairCoverage(nil), s.coverage...)
}

var _ ArtifactStore = (*InMemoryArtifactStore)(nil)
