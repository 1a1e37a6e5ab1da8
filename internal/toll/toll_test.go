package toll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/toll"
)

func TestApplyVehicleRates(t *testing.T) {
	pairs := []distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	}

	records := toll.ApplyVehicleRates(pairs)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "1", rec.IDStart)
	assert.Equal(t, "2", rec.IDEnd)
	assert.InDelta(t, 8.0, rec.Moto, 1e-9)
	assert.InDelta(t, 12.0, rec.Car, 1e-9)
	assert.InDelta(t, 15.0, rec.RV, 1e-9)
	assert.InDelta(t, 22.0, rec.Bus, 1e-9)
	assert.InDelta(t, 36.0, rec.Truck, 1e-9)
}

func TestApplyVehicleRates_InputUntouched(t *testing.T) {
	pairs := []distance.PairRecord{{IDStart: "1", IDEnd: "2", Distance: 5}}
	_ = toll.ApplyVehicleRates(pairs)
	assert.Equal(t, 5.0, pairs[0].Distance)
}

func TestRateTableExhaustive(t *testing.T) {
	types := toll.VehicleTypes()
	require.Equal(t, []toll.VehicleType{
		toll.VehicleMoto, toll.VehicleCar, toll.VehicleRV, toll.VehicleBus, toll.VehicleTruck,
	}, types)

	for _, v := range types {
		rate, ok := toll.RateFor(v)
		require.True(t, ok, "missing rate for %s", v)
		assert.Greater(t, rate, 0.0)
	}
}

func TestParseClockTime(t *testing.T) {
	c, err := toll.ParseClockTime("10:00:00")
	require.NoError(t, err)
	assert.Equal(t, toll.NewClockTime(10, 0, 0), c)

	c, err = toll.ParseClockTime("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, toll.EndOfDay, c)

	_, err = toll.ParseClockTime("25:00:00")
	assert.ErrorIs(t, err, toll.ErrMalformedClockTime)

	_, err = toll.ParseClockTime("not a time")
	assert.ErrorIs(t, err, toll.ErrMalformedClockTime)
}

func TestParseClockTime_Strict(t *testing.T) {
	cases := []string{
		"10:00:00xyz", // trailing text
		"9:00:00",     // missing zero padding
		"10:00",       // missing seconds
		"10:60:00",    // minute out of range
		"",
	}
	for _, in := range cases {
		_, err := toll.ParseClockTime(in)
		assert.ErrorIs(t, err, toll.ErrMalformedClockTime, "input %q", in)
	}
}

func scheduledRecord(day time.Weekday, start toll.ClockTime) toll.RateRecord {
	rec := toll.ApplyVehicleRates([]distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	})[0]
	rec.Schedule = &toll.Schedule{
		StartDay:  day,
		StartTime: start,
		EndDay:    day,
		EndTime:   toll.EndOfDay,
	}
	return rec
}

func TestEngine_Discount_WeekdayBands(t *testing.T) {
	engine := toll.NewEngine(toll.DefaultEngineConfig())

	tests := []struct {
		name  string
		day   time.Weekday
		start toll.ClockTime
		want  float64
	}{
		{"weekday morning", time.Monday, toll.NewClockTime(9, 0, 0), 0.8},
		{"weekday midday", time.Wednesday, toll.NewClockTime(12, 0, 0), 1.2},
		{"weekday evening", time.Friday, toll.NewClockTime(20, 0, 0), 0.8},
		{"band boundary 10:00 belongs to midday", time.Tuesday, toll.NewClockTime(10, 0, 0), 1.2},
		{"band boundary 18:00 belongs to evening", time.Tuesday, toll.NewClockTime(18, 0, 0), 0.8},
		{"end of day included", time.Thursday, toll.EndOfDay, 0.8},
		{"saturday any time", time.Saturday, toll.NewClockTime(12, 0, 0), 0.7},
		{"sunday any time", time.Sunday, toll.NewClockTime(3, 0, 0), 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := toll.Schedule{StartDay: tt.day, StartTime: tt.start}
			assert.InDelta(t, tt.want, engine.Discount(s), 1e-9)
		})
	}
}

func TestEngine_Apply(t *testing.T) {
	engine := toll.NewEngine(toll.DefaultEngineConfig())

	rec := scheduledRecord(time.Monday, toll.NewClockTime(12, 0, 0))
	out, err := engine.Apply([]toll.RateRecord{rec})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// 1.2 midday multiplier on every vehicle column.
	assert.InDelta(t, 9.6, out[0].Moto, 1e-9)
	assert.InDelta(t, 14.4, out[0].Car, 1e-9)
	assert.InDelta(t, 18.0, out[0].RV, 1e-9)
	assert.InDelta(t, 26.4, out[0].Bus, 1e-9)
	assert.InDelta(t, 43.2, out[0].Truck, 1e-9)

	// Input untouched, no factor retained anywhere on the record.
	assert.InDelta(t, 12.0, rec.Car, 1e-9)
}

func TestEngine_Apply_MissingSchedule(t *testing.T) {
	engine := toll.NewEngine(toll.DefaultEngineConfig())

	rec := toll.ApplyVehicleRates([]distance.PairRecord{
		{IDStart: "1", IDEnd: "2", Distance: 10},
	})[0]

	_, err := engine.Apply([]toll.RateRecord{rec})
	assert.ErrorIs(t, err, toll.ErrScheduleMissing)
}

func TestEngine_Apply_NonNegativeTolls(t *testing.T) {
	engine := toll.NewEngine(toll.DefaultEngineConfig())

	rec := scheduledRecord(time.Sunday, toll.NewClockTime(1, 0, 0))
	out, err := engine.Apply([]toll.RateRecord{rec})
	require.NoError(t, err)

	for _, v := range toll.VehicleTypes() {
		assert.GreaterOrEqual(t, out[0].Toll(v), 0.0)
	}
}
