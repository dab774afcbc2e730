package api

import (
	"strings"
	"time"

	"jamcal/internal/model"
)

// SessionOptions is the filter applied to the session listing endpoint.
// The zero value means no filtering.
type SessionOptions struct {
	// Date restricts the listing to sessions happening on a single day, or,
	// together with EndDate, to a date range.
	Date    *time.Time
	EndDate *time.Time

	// Genre filters by musical style. Empty and model.Any both mean no
	// genre filter.
	Genre model.Genre

	// Backline lists required equipment; empty entries are dropped.
	Backline []model.Backline
}

// Query renders the options as a canonical query string, including the
// leading "?" when at least one parameter is emitted. Parameter order is
// fixed (date, genre, backline) regardless of how the options were set. The
// separator of a date range is pre-encoded as %2F since the server parses
// the slash inside a single query value.
func (o SessionOptions) Query() string {
	params := make([]string, 0, 3)

	if o.Date != nil && o.EndDate == nil {
		params = append(params, "date="+o.Date.Format(time.DateOnly))
	}
	if o.Date != nil && o.EndDate != nil {
		params = append(params, "date="+o.Date.Format(time.DateOnly)+"%2F"+o.EndDate.Format(time.DateOnly))
	}
	if o.Genre != "" && o.Genre != model.Any {
		params = append(params, "genre="+o.Genre.String())
	}
	backline := make([]string, 0, len(o.Backline))
	for _, b := range o.Backline {
		if b != "" {
			backline = append(backline, b.String())
		}
	}
	if len(backline) > 0 {
		params = append(params, "backline="+strings.Join(backline, ","))
	}

	if len(params) == 0 {
		return ""
	}
	return "?" + strings.Join(params, "&")
}
