package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/dataset"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/pipeline"
	"github.com/tollgrid/tollgrid/internal/worker"
)

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.RefreshDistances)
	assert.True(t, cfg.RefreshTollRates)
	assert.True(t, cfg.RefreshCoverage)
	assert.Equal(t, 3, cfg.TotalArtifacts())
}

func TestRefreshConfig_TotalArtifacts(t *testing.T) {
	cfg := worker.RefreshConfig{RefreshDistances: true}
	assert.Equal(t, 1, cfg.TotalArtifacts())

	cfg.RefreshCoverage = true
	assert.Equal(t, 2, cfg.TotalArtifacts())
}

func seededService(t *testing.T) *pipeline.Service {
	t.Helper()
	repo := dataset.NewInMemoryRepository()
	require.NoError(t, repo.ReplaceSegments(context.Background(), []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	}))

	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC) // a Monday
	var obs []coverage.Observation
	for day := 0; day < 7; day++ {
		start := base.AddDate(0, 0, day)
		obs = append(obs,
			coverage.Observation{ID: "1", ID2: "2", Timestamp: start},
			coverage.Observation{ID: "1", ID2: "2", Timestamp: start.Add(23*time.Hour + 59*time.Minute + 59*time.Second)},
		)
	}
	require.NoError(t, repo.ReplaceObservations(context.Background(), obs))

	return pipeline.NewService(pipeline.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})
}

func TestRefreshJob_Run(t *testing.T) {
	store := dataset.NewInMemoryArtifactStore()
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: seededService(t),
		Store:   store,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 3, result.TotalArtifacts)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)

	// The single segment expands to both directions.
	pairs := store.DistancePairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, 2, result.DistancePairs)

	rates := store.TollRates()
	require.Len(t, rates, 2)
	assert.Equal(t, 12.0, rates[0].Car)

	report := store.Coverage()
	require.Len(t, report, 1)
	assert.True(t, report[0].Complete)
}

func TestRefreshJob_Run_EmptyDatasets(t *testing.T) {
	repo := dataset.NewInMemoryRepository()
	svc := pipeline.NewService(pipeline.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})
	store := dataset.NewInMemoryArtifactStore()
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: svc,
		Store:   store,
	})

	result := job.Run(context.Background())

	// All three artifacts fail against empty datasets, independently.
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "distance_pairs", result.Errors[0].Artifact)
	assert.Empty(t, store.DistancePairs())
}

func TestRefreshJob_Run_SubsetOfArtifacts(t *testing.T) {
	store := dataset.NewInMemoryArtifactStore()
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Timeout:          time.Second,
			RefreshDistances: true,
		},
		Logger:  zerolog.Nop(),
		Service: seededService(t),
		Store:   store,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.TotalArtifacts)
	assert.Equal(t, 1, result.Successful)
	assert.NotEmpty(t, store.DistancePairs())
	assert.Empty(t, store.TollRates())
	assert.Empty(t, store.Coverage())
}

func TestRefreshJob_Metrics(t *testing.T) {
	store := dataset.NewInMemoryArtifactStore()
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: seededService(t),
		Store:   store,
	})

	job.Run(context.Background())
	job.Run(context.Background())

	m := job.GetMetrics()
	assert.Equal(t, int64(2), m.TotalRuns)
	assert.Equal(t, int64(6), m.SuccessfulArtifacts)
	assert.Equal(t, int64(0), m.FailedArtifacts)
	assert.Equal(t, int64(2), m.DistanceRefreshes)
	assert.Equal(t, int64(2), m.TollRateRefreshes)
	assert.Equal(t, int64(2), m.CoverageRefreshes)
	assert.False(t, m.LastRefreshAt.IsZero())

	snapshot := job.MetricsSnapshot()
	assert.Equal(t, int64(2), snapshot["total_runs"])
}
