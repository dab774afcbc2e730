package model

import "time"

// VenueProperties describes a venue record as delivered by the API.
type VenueProperties struct {
	VenueID           *int32     `json:"venue_id,omitempty"`
	VenueName         string     `json:"venue_name"`
	AddressFirstLine  string     `json:"address_first_line"`
	AddressSecondLine *string    `json:"address_second_line,omitempty"`
	City              string     `json:"city"`
	Postcode          string     `json:"postcode"`
	VenueWebsite      string     `json:"venue_website"`
	Backline          []Backline `json:"backline"`
	VenueComments     []string   `json:"venue_comments,omitempty"`
	VenueDtUpdatedUTC *time.Time `json:"venue_dt_updated_utc,omitempty"`
}

// SessionProperties describes a jam session record as delivered by the API.
// StartTimeUTC is the reference instant for recurrence: its time-of-day is
// the session start and its weekday anchors weekly/monthly intervals.
type SessionProperties struct {
	SessionID       *int32     `json:"session_id,omitempty"`
	Venue           *int32     `json:"venue,omitempty"`
	SessionName     string     `json:"session_name"`
	Genres          []Genre    `json:"genres"`
	Description     string     `json:"description"`
	StartTimeUTC    time.Time  `json:"start_time_utc"`
	Dates           []Date     `json:"dates,omitempty"` // explicit dates for IrregularWeekly sessions
	Interval        Interval   `json:"interval"`
	DurationMinutes int        `json:"duration_minutes"`
	SessionWebsite  string     `json:"session_website"`
	Rating          *int       `json:"rating,omitempty"`
	DtUpdatedUTC    *time.Time `json:"dt_updated_utc,omitempty"`
}

// SessionWithVenueProperties is a session joined with its venue, the shape
// returned by the session listing endpoints.
type SessionWithVenueProperties struct {
	SessionProperties
	VenueProperties
}

// SessionComment is a user comment attached to a session.
type SessionComment struct {
	CommentID int32  `json:"comment_id"`
	Session   int32  `json:"session"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	DtPosted  string `json:"dt_posted"`
	Rating    int    `json:"rating"` // between 1 and 5
}

// CommentBody is the request payload for posting a comment or suggestion.
type CommentBody struct {
	Session *int32 `json:"session,omitempty"`
	Author  string `json:"author,omitempty"`
	Content string `json:"content"`
	Rating  *int   `json:"rating,omitempty"`
}

// Point is a GeoJSON point geometry (longitude, latitude).
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Feature pairs a point location with domain properties of type P.
type Feature[P any] struct {
	Type       string `json:"type"`
	Geometry   Point  `json:"geometry"`
	Properties P      `json:"properties"`
}

// FeatureCollection is an ordered list of features.
type FeatureCollection[P any] struct {
	Type     string       `json:"type"`
	Features []Feature[P] `json:"features"`
}

type (
	VenueFeature                      = Feature[VenueProperties]
	SessionWithVenueFeature           = Feature[SessionWithVenueProperties]
	VenuesFeatureCollection           = FeatureCollection[VenueProperties]
	SessionWithVenueFeatureCollection = FeatureCollection[SessionWithVenueProperties]
)
