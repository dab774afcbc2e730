package schedule_test

import (
	"errors"
	"testing"
	"time"

	"jamcal/internal/model"
	"jamcal/internal/schedule"
)

// 2024-01-02 is a Tuesday.
var tuesday = time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)

func TestDescribeInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval model.Interval
		anchor   time.Time
		want     string
	}{
		{name: "once", interval: model.Once, anchor: tuesday, want: "as a one-off event"},
		{name: "daily", interval: model.Daily, anchor: tuesday, want: "everyday"},
		{name: "weekly", interval: model.Weekly, anchor: tuesday, want: "every week (Tuesday)"},
		{name: "irregular weekly", interval: model.IrregularWeekly, anchor: tuesday, want: "irregularly on *Tuesday*s"},
		{name: "first of month", interval: model.FirstOfMonth, anchor: tuesday, want: "every first Tuesday of the month"},
		{name: "second of month", interval: model.SecondOfMonth, anchor: tuesday, want: "every second Tuesday of the month"},
		{name: "third of month", interval: model.ThirdOfMonth, anchor: tuesday, want: "every third Tuesday of the month"},
		{name: "fourth of month", interval: model.FourthOfMonth, anchor: tuesday, want: "every fourth Tuesday of the month"},
		{name: "last of month", interval: model.LastOfMonth, anchor: tuesday, want: "every last Tuesday of the month"},
		{
			name:     "weekday follows anchor",
			interval: model.Weekly,
			anchor:   time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), // a Sunday
			want:     "every week (Sunday)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schedule.DescribeInterval(tt.interval, tt.anchor)
			if err != nil {
				t.Fatalf("DescribeInterval(%v) error = %v", tt.interval, err)
			}
			if got != tt.want {
				t.Errorf("DescribeInterval(%v) = %q, want %q", tt.interval, got, tt.want)
			}
		})
	}
}

func TestDescribeIntervalInvalid(t *testing.T) {
	for _, interval := range []model.Interval{"", "Hourly", model.Fortnightly} {
		t.Run(string(interval), func(t *testing.T) {
			_, err := schedule.DescribeInterval(interval, tuesday)
			if !errors.Is(err, schedule.ErrInvalidInterval) {
				t.Errorf("DescribeInterval(%q) error = %v, want ErrInvalidInterval", interval, err)
			}
		})
	}
}

func TestDescribeSession(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		name     string
		startUTC time.Time
		duration int
		interval model.Interval
		want     string
	}{
		{
			name:     "winter time matches UTC",
			startUTC: time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC),
			duration: 180,
			interval: model.Weekly,
			want:     "20:00 - 23:00, every week (Tuesday)",
		},
		{
			name:     "summer time shifts one hour",
			startUTC: time.Date(2024, 7, 2, 19, 0, 0, 0, time.UTC),
			duration: 120,
			interval: model.Weekly,
			want:     "20:00 - 22:00, every week (Tuesday)",
		},
		{
			name:     "end wraps past midnight",
			startUTC: time.Date(2024, 1, 5, 22, 30, 0, 0, time.UTC),
			duration: 150,
			interval: model.Once,
			want:     "22:30 - 01:00, as a one-off event",
		},
		{
			name:     "weekday anchored in display zone not UTC",
			startUTC: time.Date(2024, 6, 30, 23, 30, 0, 0, time.UTC), // Sunday in UTC, Monday in London
			duration: 60,
			interval: model.Weekly,
			want:     "00:30 - 01:30, every week (Monday)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schedule.DescribeSession(tt.startUTC, tt.duration, tt.interval, london)
			if err != nil {
				t.Fatalf("DescribeSession() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DescribeSession() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeSessionInvalidInterval(t *testing.T) {
	_, err := schedule.DescribeSession(tuesday, 60, "Sometimes", nil)
	if !errors.Is(err, schedule.ErrInvalidInterval) {
		t.Errorf("DescribeSession() error = %v, want ErrInvalidInterval", err)
	}
}
