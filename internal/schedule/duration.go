package schedule

import (
	"strconv"
	"strings"
)

// MinutesBetween returns the number of whole minutes between two HH:MM
// clock times read on the same day. Callers are expected to pass end at or
// after start; a reversed pair yields a negative count rather than an
// error. Parsing is lenient: a component that is not a base-10 integer
// contributes zero. Use this only when no date context exists; with full
// instants, add the duration to the start instant instead.
func MinutesBetween(start, end string) int {
	h1, m1 := splitClock(start)
	h2, m2 := splitClock(end)
	return (h2*60 + m2) - (h1*60 + m1)
}

func splitClock(s string) (hours, minutes int) {
	hh, mm, _ := strings.Cut(s, ":")
	hours, _ = strconv.Atoi(hh)
	minutes, _ = strconv.Atoi(mm)
	return hours, minutes
}
