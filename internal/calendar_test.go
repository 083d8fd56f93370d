package internal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

func TestUpcomingWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 23, 45, 0, time.Local)

	window := UpcomingWindow(now, 1)

	wantStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	if !window.Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", window.Start, wantStart)
	}
	if !window.End.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Errorf("window end = %v, want next midnight", window.End)
	}
}

func TestUpcomingWindow_SameDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local)

	window := UpcomingWindow(now, 0)

	wantStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	if !window.Start.Equal(wantStart) {
		t.Errorf("window start = %v, want today's midnight", window.Start)
	}
}

func TestEventStart(t *testing.T) {
	tests := []struct {
		name string
		item *calendar.Event
		want time.Time
	}{
		{
			name: "timed event",
			item: &calendar.Event{Start: &calendar.EventDateTime{DateTime: "2026-09-01T16:30:00+03:00"}},
			want: time.Date(2026, 9, 1, 16, 30, 0, 0, time.FixedZone("", 3*3600)),
		},
		{
			name: "all day event",
			item: &calendar.Event{Start: &calendar.EventDateTime{Date: "2026-09-01"}},
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "no start",
			item: &calendar.Event{},
			want: time.Time{},
		},
		{
			name: "malformed datetime",
			item: &calendar.Event{Start: &calendar.EventDateTime{DateTime: "tomorrow-ish"}},
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventStart(tt.item); !got.Equal(tt.want) {
				t.Errorf("eventStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchUpcomingEvents_MissingCredentials(t *testing.T) {
	dir := t.TempDir()
	source := NewGoogleCalendar(CalendarConfig{
		CalendarID:  "primary",
		Credentials: filepath.Join(dir, "credentials.json"),
		Token:       filepath.Join(dir, "token.json"),
	})

	_, err := source.FetchUpcomingEvents(context.Background(), UpcomingWindow(time.Now(), 1))
	if err == nil {
		t.Fatal("FetchUpcomingEvents() error = nil without credentials, want FetchError")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("FetchUpcomingEvents() error = %T, want *FetchError", err)
	}
	if fetchErr.Source != "google-calendar" {
		t.Errorf("FetchError.Source = %s, want google-calendar", fetchErr.Source)
	}
}
