package coverage

import (
	"sort"

	"github.com/tollgrid/tollgrid/internal/table"
)

// fullDaySeconds is the span a pair's observed times must reach for
// exact-span clock coverage: 23h59m59s expressed in seconds.
const fullDaySeconds = 24*3600 - 1

// SpanMode selects how full-clock coverage is judged.
type SpanMode int

const (
	// SpanExact requires max(time_of_day) - min(time_of_day) to equal
	// exactly 23:59:59. This reproduces the upstream semantic: a pair
	// observed at 00:00:00 and 23:59:59 passes even with interior
	// gaps.
	SpanExact SpanMode = iota

	// SpanInterval merges the [Timestamp, End] spans of a pair's
	// observations and requires their union to cover the whole clock.
	// Hardened alternative to the exact-span test.
	SpanInterval
)

// CheckerConfig holds configuration for the completeness checker.
type CheckerConfig struct {
	// Mode selects the clock-coverage semantic. Default: SpanExact.
	Mode SpanMode
}

// DefaultCheckerConfig returns the default configuration.
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{Mode: SpanExact}
}

// PairCoverage is the completeness verdict for one (id, id_2) pair.
type PairCoverage struct {
	ID  string `json:"id"`
	ID2 string `json:"id_2"`

	// AllDays is true when all seven weekday values were observed.
	AllDays bool `json:"all_days"`

	// FullClock is true when the pair's times satisfy the configured
	// clock-coverage mode.
	FullClock bool `json:"full_clock"`

	// Complete is AllDays AND FullClock.
	Complete bool `json:"is_complete"`
}

// Checker groups observations by pair and evaluates their temporal
// completeness.
type Checker struct {
	config CheckerConfig
}

// NewChecker creates a checker with the given configuration.
func NewChecker(config CheckerConfig) *Checker {
	return &Checker{config: config}
}

// interval is a half-inclusive second-of-day range [from, to].
type interval struct {
	from, to int
}

// pairAccumulator collects per-pair temporal evidence.
type pairAccumulator struct {
	id, id2   string
	days      [7]bool
	minSecond int
	maxSecond int
	seen      bool
	intervals []interval
}

// Check evaluates every pair appearing in the input. The result
// contains exactly the observed pairs, sorted by (id, id_2); pairs
// absent from the input never appear.
func (c *Checker) Check(observations []Observation) []PairCoverage {
	byPair := make(map[[2]string]*pairAccumulator)
	var order [][2]string

	for _, obs := range observations {
		key := [2]string{obs.ID, obs.ID2}
		acc, ok := byPair[key]
		if !ok {
			acc = &pairAccumulator{id: obs.ID, id2: obs.ID2}
			byPair[key] = acc
			order = append(order, key)
		}
		acc.observe(obs)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i][0] != order[j][0] {
			return table.LessIdentifier(order[i][0], order[j][0])
		}
		return table.LessIdentifier(order[i][1], order[j][1])
	})

	results := make([]PairCoverage, 0, len(order))
	for _, key := range order {
		acc := byPair[key]
		allDays := acc.allDays()
		fullClock := acc.fullClock(c.config.Mode)
		results = append(results, PairCoverage{
			ID:        acc.id,
			ID2:       acc.id2,
			AllDays:   allDays,
			FullClock: fullClock,
			Complete:  allDays && fullClock,
		})
	}
	return results
}

func (a *pairAccumulator) observe(obs Observation) {
	a.days[dayIndex(obs.Timestamp)] = true
	start := secondOfDay(obs.Timestamp)
	end := start
	if !obs.End.IsZero() {
		a.days[dayIndex(obs.End)] = true
		end = secondOfDay(obs.End)
	}

	for _, s := range []int{start, end} {
		if !a.seen || s < a.minSecond {
			a.minSecond = s
		}
		if !a.seen || s > a.maxSecond {
			a.maxSecond = s
		}
		a.seen = true
	}

	if end < start {
		// Span wraps midnight: split at the day boundary.
		a.intervals = append(a.intervals,
			interval{from: start, to: fullDaySeconds},
			interval{from: 0, to: end})
	} else {
		a.intervals = append(a.intervals, interval{from: start, to: end})
	}
}

func (a *pairAccumulator) allDays() bool {
	for _, seen := range a.days {
		if !seen {
			return false
		}
	}
	return true
}

func (a *pairAccumulator) fullClock(mode SpanMode) bool {
	if !a.seen {
		return false
	}
	if mode == SpanExact {
		return a.maxSecond-a.minSecond == fullDaySeconds
	}
	return a.intervalsCoverDay()
}

// intervalsCoverDay merges the accumulated intervals and reports
// whether their union covers [0, 23:59:59] without gaps. Adjacent
// seconds count as contiguous.
func (a *pairAccumulator) intervalsCoverDay() bool {
	if len(a.intervals) == 0 {
		return false
	}
	merged := append([]interval(nil), a.intervals...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].from < merged[j].from })

	if merged[0].from > 0 {
		return false
	}
	reach := merged[0].to
	for _, iv := range merged[1:] {
		if iv.from > reach+1 {
			return false
		}
		if iv.to > reach {
			reach = iv.to
		}
	}
	return reach >= fullDaySeconds
}
