package models

import (
	"time"

	"github.com/tollgrid/tollgrid/internal/toll"
)

// TollRates wraps the per-vehicle toll rate records.
type TollRates struct {
	Rates []toll.RateRecord `json:"rates"`
}

// ScheduleRequest is the body of the toll scheduling call: a day/time
// window to stamp onto every rate record before discounting.
type ScheduleRequest struct {
	StartDay  string `json:"start_day"`
	StartTime string `json:"start_time"`
	EndDay    string `json:"end_day"`
	EndTime   string `json:"end_time"`
}

// weekdays maps the wire day names onto time.Weekday.
var weekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// Validate checks the request and converts it to a schedule. It
// returns a FieldError per invalid field.
func (r *ScheduleRequest) Validate() (toll.Schedule, []FieldError) {
	var fieldErrors []FieldError
	var sched toll.Schedule

	day, ok := weekdays[r.StartDay]
	if !ok {
		fieldErrors = append(fieldErrors, FieldError{Field: "start_day", Message: "must be a weekday name", Code: "INVALID_DAY"})
	}
	sched.StartDay = day

	day, ok = weekdays[r.EndDay]
	if !ok {
		fieldErrors = append(fieldErrors, FieldError{Field: "end_day", Message: "must be a weekday name", Code: "INVALID_DAY"})
	}
	sched.EndDay = day

	start, err := toll.ParseClockTime(r.StartTime)
	if err != nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "start_time", Message: "must be HH:MM:SS", Code: "INVALID_TIME"})
	}
	sched.StartTime = start

	end, err := toll.ParseClockTime(r.EndTime)
	if err != nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "end_time", Message: "must be HH:MM:SS", Code: "INVALID_TIME"})
	}
	sched.EndTime = end

	return sched, fieldErrors
}
