package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tollgrid/tollgrid/internal/dataset"
	"github.com/tollgrid/tollgrid/internal/pipeline"
)

// RefreshJob rebuilds the derived artifact tables from the raw
// datasets.
type RefreshJob struct {
	config  RefreshConfig
	logger  zerolog.Logger
	service *pipeline.Service
	store   dataset.ArtifactStore

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns           int64
	SuccessfulArtifacts int64
	FailedArtifacts     int64
	DistanceRefreshes   int64
	TollRateRefreshes   int64
	CoverageRefreshes   int64

	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config  RefreshConfig
	Logger  zerolog.Logger
	Service *pipeline.Service
	Store   dataset.ArtifactStore
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.TotalArtifacts() == 0 {
		config = DefaultRefreshConfig()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshConfig().Timeout
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		service: cfg.Service,
		store:   cfg.Store,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalArtifacts int
	Successful     int
	Failed         int
	Errors         []RefreshError

	DistancePairs int
	TollRates     int
	CoveragePairs int
}

// RefreshError represents an error during a refresh run.
type RefreshError struct {
	Artifact string
	Error    string
}

// Run rebuilds every enabled artifact. A failure in one artifact does
// not stop the others; the result carries the per-artifact errors.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{
		StartTime:      startTime,
		TotalArtifacts: j.config.TotalArtifacts(),
	}

	j.logger.Info().
		Int("total_artifacts", result.TotalArtifacts).
		Msg("starting artifact refresh job")

	if j.config.RefreshDistances {
		j.runArtifact(ctx, result, "distance_pairs", j.refreshDistances, &j.metrics.DistanceRefreshes)
	}
	if j.config.RefreshTollRates {
		j.runArtifact(ctx, result, "toll_rates", j.refreshTollRates, &j.metrics.TollRateRefreshes)
	}
	if j.config.RefreshCoverage {
		j.runArtifact(ctx, result, "coverage_results", j.refreshCoverage, &j.metrics.CoverageRefreshes)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("artifact refresh job completed")

	return result
}

func (j *RefreshJob) runArtifact(ctx context.Context, result *RefreshResult, name string, build func(context.Context, *RefreshResult) error, counter *int64) {
	artifactCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if err := build(artifactCtx, result); err != nil {
		j.logger.Error().Err(err).Str("artifact", name).Msg("artifact refresh failed")
		result.Failed++
		result.Errors = append(result.Errors, RefreshError{Artifact: name, Error: err.Error()})
		return
	}

	result.Successful++
	j.metrics.mu.Lock()
	*counter++
	j.metrics.mu.Unlock()
}

func (j *RefreshJob) refreshDistances(ctx context.Context, result *RefreshResult) error {
	pairs, err := j.service.UnrolledDistances(ctx)
	if err != nil {
		return err
	}
	if err := j.store.SaveDistancePairs(ctx, pairs); err != nil {
		return err
	}
	result.DistancePairs = len(pairs)
	return nil
}

func (j *RefreshJob) refreshTollRates(ctx context.Context, result *RefreshResult) error {
	rates, err := j.service.BaseTollRates(ctx)
	if err != nil {
		return err
	}
	if err := j.store.SaveTollRates(ctx, rates); err != nil {
		return err
	}
	result.TollRates = len(rates)
	return nil
}

func (j *RefreshJob) refreshCoverage(ctx context.Context, result *RefreshResult) error {
	report, err := j.service.Coverage(ctx)
	if err != nil {
		return err
	}
	if err := j.store.SaveCoverage(ctx, report); err != nil {
		return err
	}
	result.CoveragePairs = len(report)
	return nil
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulArtifacts += int64(result.Successful)
	j.metrics.FailedArtifacts += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:           j.metrics.TotalRuns,
		SuccessfulArtifacts: j.metrics.SuccessfulArtifacts,
		FailedArtifacts:     j.metrics.FailedArtifacts,
		DistanceRefreshes:   j.metrics.DistanceRefreshes,
		TollRateRefreshes:   j.metrics.TollRateRefreshes,
		CoverageRefreshes:   j.metrics.CoverageRefreshes,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":            m.TotalRuns,
		"successful_artifacts":  m.SuccessfulArtifacts,
		"failed_artifacts":      m.FailedArtifacts,
		"distance_refreshes":    m.DistanceRefreshes,
		"toll_rate_refreshes":   m.TollRateRefreshes,
		"coverage_refreshes":    m.CoverageRefreshes,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
