package distance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tollgrid/tollgrid/internal/distance"
)

func testRecords() []distance.PairRecord {
	return []distance.PairRecord{
		{IDStart: "1001400", IDEnd: "1001402", Distance: 9.7},
		{IDStart: "1001402", IDEnd: "1001404", Distance: 20.2},
		{IDStart: "1001404", IDEnd: "1001406", Distance: 16.0},
		{IDStart: "1001406", IDEnd: "1001408", Distance: 21.7},
	}
}

func TestBuildMatrix_Symmetric(t *testing.T) {
	m, err := distance.BuildMatrix(testRecords())
	require.NoError(t, err)
	require.True(t, m.IsSquare())

	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			assert.Equal(t, m.At(j, i), m.At(i, j), "cell (%d,%d) not symmetric", i, j)
		}
	}

	// One direction supplied fills both cells.
	v, ok := m.Cell("1001402", "1001400")
	require.True(t, ok)
	assert.Equal(t, 9.7, v)
}

func TestBuildMatrix_ZeroDiagonal(t *testing.T) {
	records := append(testRecords(), distance.PairRecord{
		IDStart: "1001400", IDEnd: "1001400", Distance: 42,
	})

	m, err := distance.BuildMatrix(records)
	require.NoError(t, err)

	for i := 0; i < m.Rows(); i++ {
		assert.Equal(t, 0.0, m.At(i, i))
	}
}

func TestBuildMatrix_SortedLabels(t *testing.T) {
	m, err := distance.BuildMatrix([]distance.PairRecord{
		{IDStart: "10", IDEnd: "2", Distance: 5},
		{IDStart: "1", IDEnd: "10", Distance: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "10"}, m.RowLabels())
	assert.Equal(t, []string{"1", "2", "10"}, m.ColLabels())
}

func TestUnroll_RowMajorIncludingDiagonal(t *testing.T) {
	m, err := distance.BuildMatrix([]distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	})
	require.NoError(t, err)

	records, err := distance.Unroll(m)
	require.NoError(t, err)

	want := []distance.PairRecord{
		{IDStart: "1", IDEnd: "1", Distance: 0},
		{IDStart: "1", IDEnd: "2", Distance: 10},
		{IDStart: "2", IDEnd: "1", Distance: 10},
		{IDStart: "2", IDEnd: "2", Distance: 0},
	}
	assert.Equal(t, want, records)
}

func TestBuildMatrix_BothDirectionsSum(t *testing.T) {
	// Supplying both directions of the same pair sums them, matching
	// the transpose addition in BuildMatrix.
	m, err := distance.BuildMatrix([]distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
		{IDStart: "2", IDEnd: "1", Distance: 10},
	})
	require.NoError(t, err)

	v, ok := m.Cell("1", "2")
	require.True(t, ok)
	assert.Equal(t, 20.0, v)

	v, ok = m.Cell("2", "1")
	require.True(t, ok)
	assert.Equal(t, 20.0, v)
}

func TestWithoutSelfPairs(t *testing.T) {
	m, err := distance.BuildMatrix([]distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	})
	require.NoError(t, err)

	records, err := distance.Unroll(m)
	require.NoError(t, err)

	filtered := distance.WithoutSelfPairs(records)
	assert.Equal(t, []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
		{IDStart: "2", IDEnd: "1", Distance: 10},
	}, filtered)
}

func TestRoundTrip_UnrollAndRebuild(t *testing.T) {
	original, err := distance.BuildMatrix(testRecords())
	require.NoError(t, err)

	unrolled, err := distance.Unroll(original)
	require.NoError(t, err)

	// Drop the zero diagonal and keep one canonical direction so the
	// rebuild's transpose addition does not double-count.
	var oneWay []distance.PairRecord
	for _, rec := range distance.WithoutSelfPairs(unrolled) {
		if rec.IDStart < rec.IDEnd {
			oneWay = append(oneWay, rec)
		}
	}

	rebuilt, err := distance.BuildMatrix(oneWay)
	require.NoError(t, err)

	require.Equal(t, original.RowLabels(), rebuilt.RowLabels())
	for i := 0; i < original.Rows(); i++ {
		for j := 0; j < original.Cols(); j++ {
			assert.InDelta(t, original.At(i, j), rebuilt.At(i, j), 1e-9)
		}
	}
}

func TestIDsWithinThreshold(t *testing.T) {
	records := []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 100},
		{IDStart: "1", IDEnd: "3", Distance: 100}, // mean 100
		{IDStart: "2", IDEnd: "3", Distance: 105}, // mean 105, within ±10
		{IDStart: "3", IDEnd: "1", Distance: 111}, // mean 111, outside
		{IDStart: "4", IDEnd: "1", Distance: 90},  // mean 90, boundary inclusive
	}

	got, err := distance.IDsWithinThreshold(records, "1")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "4", got[2].ID)

	for _, avg := range got {
		assert.GreaterOrEqual(t, avg.Mean, 90.0)
		assert.LessOrEqual(t, avg.Mean, 110.0)
	}
}

func TestIDsWithinThreshold_ReferenceMissing(t *testing.T) {
	_, err := distance.IDsWithinThreshold(testRecords(), "9999999")
	assert.ErrorIs(t, err, distance.ErrReferenceNotFound)
}
