// Package pipeline composes the analytics flow end to end: raw
// datasets in, derived distance, toll, coverage and vehicle-count
// artifacts out. The API handlers and the recompute worker both sit on
// top of this service.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tollgrid/tollgrid/internal/analysis"
	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/dataset"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/table"
	"github.com/tollgrid/tollgrid/internal/toll"
)

// ServiceConfig holds the service's collaborators.
type ServiceConfig struct {
	Repository dataset.Repository
	Engine     *toll.Engine
	Checker    *coverage.Checker
	Logger     zerolog.Logger
}

// Service derives tabular artifacts from the raw datasets. Every
// method is a pure function of the repository contents; nothing is
// cached, so callers always see the current datasets.
type Service struct {
	repo    dataset.Repository
	engine  *toll.Engine
	checker *coverage.Checker
	logger  zerolog.Logger
}

// NewService creates a pipeline service, defaulting the engine and
// checker when unset.
func NewService(cfg ServiceConfig) *Service {
	engine := cfg.Engine
	if engine == nil {
		engine = toll.NewEngine(toll.DefaultEngineConfig())
	}
	checker := cfg.Checker
	if checker == nil {
		checker = coverage.NewChecker(coverage.DefaultCheckerConfig())
	}
	return &Service{
		repo:    cfg.Repository,
		engine:  engine,
		checker: checker,
		logger:  cfg.Logger,
	}
}

// DistanceMatrix builds the symmetric distance matrix from the
// segment dataset.
func (s *Service) DistanceMatrix(ctx context.Context) (*table.Matrix, error) {
	segments, err := s.repo.ListSegments(ctx)
	if err != nil {
		return nil, err
	}
	return distance.BuildMatrix(segments)
}

// UnrolledDistances builds the matrix and flattens it back to
// long-form records with self-pairs removed.
func (s *Service) UnrolledDistances(ctx context.Context) ([]distance.PairRecord, error) {
	matrix, err := s.DistanceMatrix(ctx)
	if err != nil {
		return nil, err
	}
	unrolled, err := distance.Unroll(matrix)
	if err != nil {
		return nil, err
	}
	return distance.WithoutSelfPairs(unrolled), nil
}

// NearbyIDs selects the identifiers whose average distance lies within
// ±10% of the reference identifier's average.
func (s *Service) NearbyIDs(ctx context.Context, referenceID string) ([]distance.AverageDistance, error) {
	unrolled, err := s.UnrolledDistances(ctx)
	if err != nil {
		return nil, err
	}
	return distance.IDsWithinThreshold(unrolled, referenceID)
}

// BaseTollRates derives the per-vehicle toll columns from the unrolled
// distances, before any time-based discounting.
func (s *Service) BaseTollRates(ctx context.Context) ([]toll.RateRecord, error) {
	unrolled, err := s.UnrolledDistances(ctx)
	if err != nil {
		return nil, err
	}
	return toll.ApplyVehicleRates(unrolled), nil
}

// ScheduledTollRates derives the base rates, stamps the given schedule
// onto every record, and applies the time-window discount.
func (s *Service) ScheduledTollRates(ctx context.Context, schedule toll.Schedule) ([]toll.RateRecord, error) {
	records, err := s.BaseTollRates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		sched := schedule
		records[i].Schedule = &sched
	}
	discounted, err := s.engine.Apply(records)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("records", len(discounted)).
		Msg("applied time-window discounts")
	return discounted, nil
}

// Coverage evaluates temporal completeness over the observation
// dataset.
func (s *Service) Coverage(ctx context.Context) ([]coverage.PairCoverage, error) {
	observations, err := s.repo.ListObservations(ctx)
	if err != nil {
		return nil, err
	}
	return s.checker.Check(observations), nil
}

// CarMatrix pivots the vehicle count dataset into the car count
// matrix.
func (s *Service) CarMatrix(ctx context.Context) (*table.Matrix, error) {
	counts, err := s.repo.ListVehicleCounts(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.CarMatrix(counts)
}

// ScaledCarMatrix applies the conditional multiplier to the car count
// matrix.
func (s *Service) ScaledCarMatrix(ctx context.Context) (*table.Matrix, error) {
	matrix, err := s.CarMatrix(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.ScaleMatrix(matrix), nil
}

// CarTypeCounts buckets the car counts into low/medium/high.
func (s *Service) CarTypeCounts(ctx context.Context) ([]analysis.CarTypeCount, error) {
	counts, err := s.repo.ListVehicleCounts(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.CarTypeCounts(counts), nil
}

// BusOutliers returns the record indexes whose bus count exceeds twice
// the mean.
func (s *Service) BusOutliers(ctx context.Context) ([]int, error) {
	counts, err := s.repo.ListVehicleCounts(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.BusOutlierIndexes(counts), nil
}

// HighTruckRoutes returns the routes averaging more than 7 trucks.
func (s *Service) HighTruckRoutes(ctx context.Context) ([]string, error) {
	counts, err := s.repo.ListVehicleCounts(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.HighTruckRoutes(counts), nil
}
