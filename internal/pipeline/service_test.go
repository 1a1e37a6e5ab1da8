package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tollgrid/tollgrid/internal/analysis"
	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/dataset"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/table"
	"github.com/tollgrid/tollgrid/internal/toll"
)

func cell(t *testing.T, m *table.Matrix, row, col string) float64 {
	t.Helper()
	v, ok := m.Cell(row, col)
	require.True(t, ok, "cell (%s,%s) not present", row, col)
	return v
}

func newTestService(t *testing.T) (*Service, *dataset.InMemoryRepository) {
	t.Helper()
	repo := dataset.NewInMemoryRepository()
	svc := NewService(ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})
	return svc, repo
}

func seedSegments(t *testing.T, repo *dataset.InMemoryRepository, segments []distance.PairRecord) {
	t.Helper()
	require.NoError(t, repo.ReplaceSegments(context.Background(), segments))
}

func TestServiceTwoStationFlow(t *testing.T) {
	svc, repo := newTestService(t)
	seedSegments(t, repo, []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
		{IDStart: "2", IDEnd: "1", Distance: 10},
	})
	ctx := context.Background()

	matrix, err := svc.DistanceMatrix(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, matrix.RowLabels())
	// Both directions contribute, so the symmetric sum is 10+10=20.
	assert.Equal(t, 20.0, cell(t, matrix, "1", "2"))
	assert.Equal(t, 20.0, cell(t, matrix, "2", "1"))
	assert.Equal(t, 0.0, cell(t, matrix, "1", "1"))
	assert.Equal(t, 0.0, cell(t, matrix, "2", "2"))
}

func TestServiceSingleDirectionFlow(t *testing.T) {
	svc, repo := newTestService(t)
	seedSegments(t, repo, []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	})
	ctx := context.Background()

	matrix, err := svc.DistanceMatrix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cell(t, matrix, "1", "2"))
	assert.Equal(t, 10.0, cell(t, matrix, "2", "1"))

	unrolled, err := svc.UnrolledDistances(ctx)
	require.NoError(t, err)
	require.Equal(t, []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
		{IDStart: "2", IDEnd: "1", Distance: 10},
	}, unrolled)

	rates, err := svc.BaseTollRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, 8.0, rates[0].Moto)
	assert.Equal(t, 12.0, rates[0].Car)
	assert.Equal(t, 15.0, rates[0].RV)
	assert.Equal(t, 22.0, rates[0].Bus)
	assert.Equal(t, 36.0, rates[0].Truck)
}

func TestServiceScheduledRatesWeekend(t *testing.T) {
	svc, repo := newTestService(t)
	seedSegments(t, repo, []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	})

	sched := toll.Schedule{
		StartDay:  time.Saturday,
		StartTime: toll.Midnight,
		EndDay:    time.Saturday,
		EndTime:   toll.EndOfDay,
	}
	rates, err := svc.ScheduledTollRates(context.Background(), sched)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	for _, r := range rates {
		require.NotNil(t, r.Schedule)
		assert.Equal(t, time.Saturday, r.Schedule.StartDay)
		assert.InDelta(t, 12.0*0.7, r.Car, 1e-9)
		assert.InDelta(t, 36.0*0.7, r.Truck, 1e-9)
	}
}

func TestServiceNearbyIDs(t *testing.T) {
	svc, repo := newTestService(t)
	seedSegments(t, repo, []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 100},
		{IDStart: "1", IDEnd: "3", Distance: 100},
		{IDStart: "2", IDEnd: "3", Distance: 100},
	})

	nearby, err := svc.NearbyIDs(context.Background(), "1")
	require.NoError(t, err)
	ids := make([]string, 0, len(nearby))
	for _, n := range nearby {
		ids = append(ids, n.ID)
	}
	// Every station averages the same distance, so all are within 10%.
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	_, err = svc.NearbyIDs(context.Background(), "99")
	assert.ErrorIs(t, err, distance.ErrReferenceNotFound)
}

func TestServiceEmptyRepository(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.DistanceMatrix(context.Background())
	assert.ErrorIs(t, err, dataset.ErrDatasetEmpty)

	_, err = svc.CarTypeCounts(context.Background())
	assert.ErrorIs(t, err, dataset.ErrDatasetEmpty)
}

func TestServiceCoverage(t *testing.T) {
	svc, repo := newTestService(t)

	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC) // a Monday
	var obs []coverage.Observation
	for day := 0; day < 7; day++ {
		start := base.AddDate(0, 0, day)
		obs = append(obs,
			coverage.Observation{ID: "1", ID2: "2", Timestamp: start},
			coverage.Observation{ID: "1", ID2: "2", Timestamp: start.Add(23*time.Hour + 59*time.Minute + 59*time.Second)},
		)
	}
	obs = append(obs, coverage.Observation{ID: "3", ID2: "4", Timestamp: base})
	require.NoError(t, repo.ReplaceObservations(context.Background(), obs))

	results, err := svc.Coverage(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Complete)
	assert.Equal(t, "1", results[0].ID)
	assert.False(t, results[1].Complete)
}

func TestServiceVehicleCountAnalyses(t *testing.T) {
	svc, repo := newTestService(t)
	counts := []analysis.CountRecord{
		{ID1: "1", ID2: "2", Route: "A", Moto: 1, Car: 10, RV: 1, Bus: 1, Truck: 9},
		{ID1: "2", ID2: "1", Route: "A", Moto: 1, Car: 20, RV: 1, Bus: 1, Truck: 8},
		{ID1: "1", ID2: "3", Route: "B", Moto: 1, Car: 30, RV: 1, Bus: 10, Truck: 1},
	}
	require.NoError(t, repo.ReplaceVehicleCounts(context.Background(), counts))
	ctx := context.Background()

	matrix, err := svc.CarMatrix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cell(t, matrix, "1", "2"))
	assert.Equal(t, 0.0, cell(t, matrix, "1", "1"))

	scaled, err := svc.ScaledCarMatrix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.5, cell(t, scaled, "1", "2")) // 10 ≤ 20, so ×1.25
	assert.Equal(t, 22.5, cell(t, scaled, "1", "3")) // 30 > 20, so ×0.75

	buckets, err := svc.CarTypeCounts(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	outliers, err := svc.BusOutliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, outliers) // mean bus = 4, only 10 > 8

	routes, err := svc.HighTruckRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, routes) // mean truck on A is 8.5
}
