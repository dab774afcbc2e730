// Package schedule turns session timing data (start instant, duration,
// recurrence interval) into human-readable phrases and concrete occurrence
// times.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"jamcal/internal/model"
)

// ErrInvalidInterval reports an interval value outside the closed set that
// DescribeInterval knows how to phrase. Hitting it indicates a programming
// error or an API change, not a user-facing condition.
var ErrInvalidInterval = errors.New("unrecognized interval")

// DescribeInterval renders a recurrence interval as a descriptive phrase,
// e.g. "every week (Tuesday)" or "every second Monday of the month". The
// weekday is taken from anchor, which should be the session's start instant
// in the display timezone. The IrregularWeekly phrase carries markdown
// emphasis around the weekday name.
func DescribeInterval(interval model.Interval, anchor time.Time) (string, error) {
	dow := anchor.Weekday().String()
	switch interval {
	case model.Once:
		return "as a one-off event", nil
	case model.Daily:
		return "everyday", nil
	case model.Weekly:
		return "every week (" + dow + ")", nil
	case model.IrregularWeekly:
		return "irregularly on *" + dow + "*s", nil
	case model.FirstOfMonth:
		return "every first " + dow + " of the month", nil
	case model.SecondOfMonth:
		return "every second " + dow + " of the month", nil
	case model.ThirdOfMonth:
		return "every third " + dow + " of the month", nil
	case model.FourthOfMonth:
		return "every fourth " + dow + " of the month", nil
	case model.LastOfMonth:
		return "every last " + dow + " of the month", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
}

// DescribeSession produces the full "when" string for a session, e.g.
// "20:00 - 23:00, every week (Tuesday)". The start instant is converted to
// loc (the fixed display timezone, not the viewer's), the end instant is the
// start plus durationMinutes, and both are formatted as 24-hour HH:MM.
// A nil loc falls back to UTC.
func DescribeSession(startUTC time.Time, durationMinutes int, interval model.Interval, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	start := startUTC.In(loc)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	phrase, err := DescribeInterval(interval, start)
	if err != nil {
		return "", err
	}
	return start.Format("15:04") + " - " + end.Format("15:04") + ", " + phrase, nil
}
