// Package toll computes per-vehicle-type toll rates from segment
// distances and rescales them by time-of-day and day-of-week discount
// bands.
package toll

import (
	"errors"
	"fmt"
	"time"
)

// Package errors.
var (
	// ErrScheduleMissing is returned when a record reaches the
	// discount engine without its temporal fields populated. There is
	// no safe default for an absent schedule.
	ErrScheduleMissing = errors.New("toll schedule not populated")

	// ErrMalformedClockTime is returned when a clock time string
	// cannot be parsed as HH:MM:SS.
	ErrMalformedClockTime = errors.New("malformed clock time")
)

// VehicleType names one of the fixed vehicle rate classes.
type VehicleType string

const (
	VehicleMoto  VehicleType = "moto"
	VehicleCar   VehicleType = "car"
	VehicleRV    VehicleType = "rv"
	VehicleBus   VehicleType = "bus"
	VehicleTruck VehicleType = "truck"
)

// VehicleTypes returns all vehicle classes in the fixed output column
// order: moto, car, rv, bus, truck.
func VehicleTypes() []VehicleType {
	return []VehicleType{VehicleMoto, VehicleCar, VehicleRV, VehicleBus, VehicleTruck}
}

// vehicleRates maps each vehicle class to its fixed per-distance rate.
var vehicleRates = map[VehicleType]float64{
	VehicleMoto:  0.8,
	VehicleCar:   1.2,
	VehicleRV:    1.5,
	VehicleBus:   2.2,
	VehicleTruck: 3.6,
}

// RateFor returns the fixed rate for a vehicle class.
func RateFor(v VehicleType) (float64, bool) {
	rate, ok := vehicleRates[v]
	return rate, ok
}

// ClockTime is a time of day expressed as whole seconds since
// midnight, in [0, 86399].
type ClockTime int

// Clock time constants.
const (
	Midnight  ClockTime = 0
	EndOfDay  ClockTime = 24*3600 - 1 // 23:59:59
	secondsIn           = 24 * 3600
)

// NewClockTime builds a ClockTime from hour, minute and second.
func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ParseClockTime parses a zero-padded HH:MM:SS string. Trailing text
// and non-padded components are rejected.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != len("15:04:05") {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClockTime, s)
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClockTime, s)
	}
	return NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
}

// String renders the clock time as HH:MM:SS.
func (c ClockTime) String() string {
	t := int(c) % secondsIn
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, (t/60)%60, t%60)
}

// MarshalJSON renders the clock time as an HH:MM:SS string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Schedule is the time span attached to a rate record by the caller.
// The engine only consumes it; it never sources timestamps itself.
type Schedule struct {
	StartDay  time.Weekday `json:"start_day"`
	StartTime ClockTime    `json:"start_time"`
	EndDay    time.Weekday `json:"end_day"`
	EndTime   ClockTime    `json:"end_time"`
}

// IsWeekend reports whether the schedule starts on Saturday or Sunday.
func (s Schedule) IsWeekend() bool {
	return s.StartDay == time.Saturday || s.StartDay == time.Sunday
}

// RateRecord is one unrolled segment with its per-vehicle tolls. The
// vehicle columns start as distance times the fixed rate and are
// rescaled by the discount engine; tolls are always non-negative and
// the discount factor itself is never stored on the record.
type RateRecord struct {
	IDStart  string    `json:"id_start"`
	IDEnd    string    `json:"id_end"`
	Distance float64   `json:"distance"`
	Schedule *Schedule `json:"schedule,omitempty"`

	Moto  float64 `json:"moto"`
	Car   float64 `json:"car"`
	RV    float64 `json:"rv"`
	Bus   float64 `json:"bus"`
	Truck float64 `json:"truck"`
}

// Toll returns the record's toll for a vehicle class.
func (r *RateRecord) Toll(v VehicleType) float64 {
	switch v {
	case VehicleMoto:
		return r.Moto
	case VehicleCar:
		return r.Car
	case VehicleRV:
		return r.RV
	case VehicleBus:
		return r.Bus
	case VehicleTruck:
		return r.Truck
	}
	return 0
}

// scaleTolls multiplies every vehicle column by factor.
func (r *RateRecord) scaleTolls(factor float64) {
	r.Moto *= factor
	r.Car *= factor
	r.RV *= factor
	r.Bus *= factor
	r.Truck *= factor
}
