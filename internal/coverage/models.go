// Package coverage verifies temporal completeness of timestamped
// observations: whether each (id, id_2) pair's records span all seven
// weekdays and the full 24-hour clock.
package coverage

import (
	"errors"
	"fmt"
	"time"
)

// Package errors.
var (
	// ErrMalformedTimestamp is returned when a temporal field cannot
	// be parsed. Day and time classification has no safe default, so
	// the whole load fails.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// timestampLayouts are the accepted timestamp formats, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Observation is one timestamped record for a (id, id_2) pair. End is
// optional: when set, the observation covers the span between the two
// instants; when zero, it is a point observation at Timestamp. Only
// the merged-interval span mode consults End.
type Observation struct {
	ID        string    `json:"id"`
	ID2       string    `json:"id_2"`
	Timestamp time.Time `json:"timestamp"`
	End       time.Time `json:"end,omitempty"`
}

// ParseTimestamp parses an ISO-like timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}

// ParseObservation builds an observation from raw string fields.
func ParseObservation(id, id2, timestamp string) (Observation, error) {
	ts, err := ParseTimestamp(timestamp)
	if err != nil {
		return Observation{}, err
	}
	return Observation{ID: id, ID2: id2, Timestamp: ts}, nil
}

// dayIndex maps a weekday to the Monday-based 0..6 range used for
// coverage accounting (Monday=0 .. Sunday=6).
func dayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// secondOfDay returns the time of day as whole seconds since midnight.
func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
