package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"jamcal/internal/model"
)

func TestGenreUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    model.Genre
		wantErr bool
	}{
		{name: "valid", in: `"Straight-Ahead_Jazz"`, want: model.StraightAhead},
		{name: "sentinel", in: `"Any"`, want: model.Any},
		{name: "unknown", in: `"Death_Metal"`, wantErr: true},
		{name: "wrong case", in: `"blues"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g model.Genre
			err := json.Unmarshal([]byte(tt.in), &g)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				var verr model.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error type = %T, want ValidationError", err)
				}
				return
			}
			if g != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, g, tt.want)
			}
		})
	}
}

func TestBacklineUnmarshal(t *testing.T) {
	var b model.Backline
	if err := json.Unmarshal([]byte(`"Guitar_Amp"`), &b); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if b != model.GuitarAmp {
		t.Errorf("got %q, want Guitar_Amp", b)
	}
	if err := json.Unmarshal([]byte(`"Theremin"`), &b); err == nil {
		t.Error("expected error for unknown backline value")
	}
}

func TestIntervalUnmarshal(t *testing.T) {
	for _, valid := range []string{"Once", "Daily", "Weekly", "Fortnightly", "FirstOfMonth", "SecondOfMonth", "ThirdOfMonth", "FourthOfMonth", "LastOfMonth", "IrregularWeekly"} {
		var i model.Interval
		if err := json.Unmarshal([]byte(`"`+valid+`"`), &i); err != nil {
			t.Errorf("Unmarshal(%q) error = %v", valid, err)
		}
	}
	var i model.Interval
	err := json.Unmarshal([]byte(`"Hourly"`), &i)
	if err == nil {
		t.Fatal("expected error for unknown interval value")
	}
	if !strings.Contains(err.Error(), "Valid values:") {
		t.Errorf("error %q should list valid values", err)
	}
}

func TestDateRoundTrip(t *testing.T) {
	var d model.Date
	if err := json.Unmarshal([]byte(`"2024-01-30"`), &d); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if got := d.Time(); got.Year() != 2024 || got.Month() != time.January || got.Day() != 30 {
		t.Errorf("parsed date = %v, want 2024-01-30", got)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `"2024-01-30"` {
		t.Errorf("Marshal = %s, want \"2024-01-30\"", out)
	}
}

func TestFeatureCollectionDecode(t *testing.T) {
	body := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-0.0387, 51.5441]},
			"properties": {
				"venue_id": 3,
				"venue_name": "The Example Arms",
				"address_first_line": "1 Example St",
				"city": "London",
				"postcode": "E1 1AA",
				"venue_website": "http://example.com",
				"backline": ["PA", "Drums"]
			}
		}]
	}`

	var fc model.VenuesFeatureCollection
	if err := json.Unmarshal([]byte(body), &fc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}
	f := fc.Features[0]
	if f.Geometry.Coordinates != [2]float64{-0.0387, 51.5441} {
		t.Errorf("coordinates = %v", f.Geometry.Coordinates)
	}
	if f.Properties.VenueName != "The Example Arms" {
		t.Errorf("venue name = %q", f.Properties.VenueName)
	}
	if len(f.Properties.Backline) != 2 || f.Properties.Backline[0] != model.PA {
		t.Errorf("backline = %v", f.Properties.Backline)
	}
}

func TestSessionWithVenuePropertiesFlattened(t *testing.T) {
	// The joined shape is delivered as a single flat properties object.
	body := `{
		"session_id": 7,
		"session_name": "Tuesday Night Jam",
		"genres": ["Blues"],
		"description": "",
		"start_time_utc": "2024-01-02T20:00:00Z",
		"interval": "Weekly",
		"duration_minutes": 180,
		"session_website": "http://example.com/events",
		"venue_name": "The Example Arms",
		"address_first_line": "1 Example St",
		"city": "London",
		"postcode": "E1 1AA",
		"venue_website": "http://example.com",
		"backline": []
	}`

	var p model.SessionWithVenueProperties
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if p.SessionName != "Tuesday Night Jam" || p.VenueName != "The Example Arms" {
		t.Errorf("unexpected properties: %+v", p)
	}
	if !p.StartTimeUTC.Equal(time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", p.StartTimeUTC)
	}
}
