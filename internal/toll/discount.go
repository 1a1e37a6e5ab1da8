package toll

// DiscountBand is one time-of-day discount window. A clock time t
// matches when From <= t < To; the final weekday band runs to end of
// day, so 23:59:59 always falls in a band. Bands are checked in order
// and the first match wins.
type DiscountBand struct {
	From   ClockTime
	To     ClockTime
	Factor float64
}

// contains reports whether t falls in the band. A band whose To is
// EndOfDay includes it.
func (b DiscountBand) contains(t ClockTime) bool {
	if b.To >= EndOfDay {
		return t >= b.From && t <= EndOfDay
	}
	return t >= b.From && t < b.To
}

// EngineConfig holds the discount engine's band layout.
type EngineConfig struct {
	// WeekdayBands apply Monday through Friday, keyed on the record's
	// start time. Bands must be contiguous and cover the full day.
	WeekdayBands []DiscountBand

	// WeekendFactor applies flat on Saturday and Sunday regardless of
	// time. Default: 0.7.
	WeekendFactor float64
}

// DefaultEngineConfig returns the production band layout: weekdays get
// 0.8 before 10:00, 1.2 from 10:00 to 18:00, and 0.8 from 18:00 to end
// of day; weekends get a flat 0.7.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		WeekdayBands: []DiscountBand{
			{From: Midnight, To: NewClockTime(10, 0, 0), Factor: 0.8},
			{From: NewClockTime(10, 0, 0), To: NewClockTime(18, 0, 0), Factor: 1.2},
			{From: NewClockTime(18, 0, 0), To: EndOfDay, Factor: 0.8},
		},
		WeekendFactor: 0.7,
	}
}

// Engine classifies each rate record's schedule into a discount band
// and rescales its vehicle tolls accordingly.
type Engine struct {
	config EngineConfig
}

// NewEngine creates a discount engine, filling unset config fields
// with the defaults.
func NewEngine(config EngineConfig) *Engine {
	if len(config.WeekdayBands) == 0 {
		config.WeekdayBands = DefaultEngineConfig().WeekdayBands
	}
	if config.WeekendFactor <= 0 {
		config.WeekendFactor = DefaultEngineConfig().WeekendFactor
	}
	return &Engine{config: config}
}

// Apply rescales every record's vehicle tolls by the discount factor
// for its schedule, returning new records. A record without a
// populated schedule is ErrScheduleMissing: the engine never defaults
// an absent time span. The factor is applied and discarded, never
// retained on the output.
func (e *Engine) Apply(records []RateRecord) ([]RateRecord, error) {
	out := make([]RateRecord, len(records))
	for i, rec := range records {
		if rec.Schedule == nil {
			return nil, ErrScheduleMissing
		}
		out[i] = rec
		out[i].scaleTolls(e.Discount(*rec.Schedule))
	}
	return out, nil
}

// Discount returns the discount factor for a schedule: the weekend
// factor on Saturday and Sunday, otherwise the first weekday band
// containing the start time. A start time outside every band (only
// possible with a custom non-exhaustive layout) keeps factor 1.
func (e *Engine) Discount(s Schedule) float64 {
	if s.IsWeekend() {
		return e.config.WeekendFactor
	}
	for _, band := range e.config.WeekdayBands {
		if band.contains(s.StartTime) {
			return band.Factor
		}
	}
	return 1
}
