// Package ics generates an iCalendar feed from fetched jam sessions, one
// VEVENT per concrete occurrence within the configured horizon.
package ics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "jamcal/internal/log"
	"jamcal/internal/model"
	"jamcal/internal/schedule"
	"jamcal/internal/webutil"
)

// CalendarOptions controls calendar generation.
type CalendarOptions struct {
	// Name is the calendar display name (X-WR-CALNAME).
	Name string

	// Location is the display timezone for event times and schedule
	// phrases. Nil means UTC.
	Location *time.Location

	// RangeStart / RangeEnd bound occurrence expansion.
	RangeStart time.Time
	RangeEnd   time.Time
}

// BuildCalendar expands every session in fc into occurrences and assembles a
// VCALENDAR. Sessions whose interval cannot be expanded or described are
// logged and skipped; the rest of the feed is still produced.
func BuildCalendar(fc model.SessionWithVenueFeatureCollection, opts CalendarOptions) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//jamcal//EN")
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	now := time.Now().UTC()
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	for _, f := range fc.Features {
		p := f.Properties

		occs, err := schedule.Occurrences(p.SessionProperties, schedule.ExpandConfig{
			Location:   opts.Location,
			RangeStart: opts.RangeStart,
			RangeEnd:   opts.RangeEnd,
		})
		if err != nil {
			appLog.Error("skipping session: occurrence expansion failed", err, "session", p.SessionName)
			continue
		}

		duration := time.Duration(p.DurationMinutes) * time.Minute

		when, err := schedule.DescribeSession(p.StartTimeUTC, p.DurationMinutes, p.Interval, loc)
		if err != nil {
			// Intervals the describer has no phrase for (e.g. Fortnightly)
			// still get a bare time range.
			start := p.StartTimeUTC.In(loc)
			when = start.Format("15:04") + " - " + start.Add(duration).Format("15:04")
		}

		summary := p.SessionName
		description := eventDescription(p, when)
		location := venueAddress(p.VenueProperties)

		for _, start := range occs {
			ev := cal.AddEvent(eventUID(p, start))
			ev.SetDtStampTime(now)
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(duration))
			ev.SetSummary(summary)
			if location != "" {
				ev.SetLocation(location)
			}
			if description != "" {
				ev.SetDescription(description)
			}
			if p.SessionWebsite != "" {
				ev.SetURL(p.SessionWebsite)
			} else if p.VenueWebsite != "" {
				ev.SetURL(p.VenueWebsite)
			}
		}
	}

	return cal
}

// WriteFile serializes cal to path atomically (temp file + rename).
func WriteFile(path string, cal *ical.Calendar) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".jamcal-*.ics")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(cal.Serialize()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// eventUID derives a stable per-occurrence UID from the session id (or a
// slug of its name when the id is absent) and the occurrence start.
func eventUID(p model.SessionWithVenueProperties, start time.Time) string {
	base := webutil.Slugify(p.SessionName)
	if p.SessionID != nil {
		base = fmt.Sprintf("session-%d", *p.SessionID)
	}
	return fmt.Sprintf("%s-%d@jamcal", base, start.Unix())
}

// eventDescription combines the session's free-text description, the
// schedule phrase and the reconciled website links.
func eventDescription(p model.SessionWithVenueProperties, when string) string {
	lines := make([]string, 0, 4)
	if p.Description != "" {
		lines = append(lines, p.Description)
	}
	lines = append(lines, when)

	sites := webutil.ResolveWebsites(p.VenueWebsite, p.SessionWebsite)
	if sites.Venue != "" {
		lines = append(lines, "Venue: "+sites.Venue)
	}
	if sites.Session != "" {
		lines = append(lines, "Session: "+sites.Session)
	}
	return strings.Join(lines, "\n")
}

// venueAddress renders the venue's address fields as a single LOCATION line.
func venueAddress(v model.VenueProperties) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{v.VenueName, v.AddressFirstLine} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if v.AddressSecondLine != nil && *v.AddressSecondLine != "" {
		parts = append(parts, *v.AddressSecondLine)
	}
	for _, s := range []string{v.City, v.Postcode} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
