package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"jamcal/internal/model"
)

// ExpandConfig controls occurrence expansion.
type ExpandConfig struct {
	// Location is the timezone occurrences are returned in. Nil means UTC.
	Location *time.Location

	// RangeStart / RangeEnd bound the expansion window (inclusive).
	RangeStart time.Time
	RangeEnd   time.Time
}

// weekdays maps time.Weekday (Sunday-indexed) onto rrule weekday constants.
var weekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Occurrences expands a session's recurrence interval into concrete start
// instants within the configured window. Regular intervals are expanded via
// an RRULE anchored on the session's UTC start; IrregularWeekly sessions use
// their explicit dates list with the start's time-of-day; Once yields the
// start itself if it falls inside the window.
func Occurrences(s model.SessionProperties, cfg ExpandConfig) ([]time.Time, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	start := s.StartTimeUTC.UTC()

	switch s.Interval {
	case model.Once:
		if start.Before(cfg.RangeStart) || start.After(cfg.RangeEnd) {
			return nil, nil
		}
		return []time.Time{start.In(cfg.Location)}, nil

	case model.IrregularWeekly:
		out := make([]time.Time, 0, len(s.Dates))
		for _, d := range s.Dates {
			day := d.Time()
			t := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
			if t.Before(cfg.RangeStart) || t.After(cfg.RangeEnd) {
				continue
			}
			out = append(out, t.In(cfg.Location))
		}
		return out, nil
	}

	opt, err := ruleOption(s.Interval, start)
	if err != nil {
		return nil, err
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, err
	}

	times := r.Between(cfg.RangeStart.UTC(), cfg.RangeEnd.UTC(), true)
	out := make([]time.Time, len(times))
	for i, t := range times {
		out[i] = t.In(cfg.Location)
	}
	return out, nil
}

// ruleOption maps a regular interval onto an rrule anchored at start.
func ruleOption(interval model.Interval, start time.Time) (rrule.ROption, error) {
	wd := weekdays[start.Weekday()]
	opt := rrule.ROption{Dtstart: start}
	switch interval {
	case model.Daily:
		opt.Freq = rrule.DAILY
	case model.Weekly:
		opt.Freq = rrule.WEEKLY
	case model.Fortnightly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case model.FirstOfMonth:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(1)}
	case model.SecondOfMonth:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(2)}
	case model.ThirdOfMonth:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(3)}
	case model.FourthOfMonth:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(4)}
	case model.LastOfMonth:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(-1)}
	default:
		return rrule.ROption{}, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	return opt, nil
}
