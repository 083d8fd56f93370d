package internal

import (
	"testing"
	"time"
)

func TestExtractReminders(t *testing.T) {
	start := time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		events []RawEvent
		want   int
	}{
		{
			name:   "no events",
			events: []RawEvent{},
			want:   0,
		},
		{
			name: "unmarked event is skipped",
			events: []RawEvent{
				{ID: "e1", Title: "Team meeting", Description: "Ann\nBob", StartTime: start},
			},
			want: 0,
		},
		{
			name: "marked event with recipients",
			events: []RawEvent{
				{ID: "e1", Title: "🔔 Team meeting", Description: "Ann\nBob", StartTime: start},
			},
			want: 1,
		},
		{
			name: "marked event without recipients is dropped",
			events: []RawEvent{
				{ID: "e1", Title: "🔔 Team meeting", Description: "", StartTime: start},
			},
			want: 0,
		},
		{
			name: "marked event with only blank lines is dropped",
			events: []RawEvent{
				{ID: "e1", Title: "🔔 Team meeting", Description: "\n  \n\t\n", StartTime: start},
			},
			want: 0,
		},
		{
			name: "mixed events",
			events: []RawEvent{
				{ID: "e1", Title: "Dentist", Description: "Ann", StartTime: start},
				{ID: "e2", Title: "🔔 Party", Description: "Ann\nBob", StartTime: start},
				{ID: "e3", Title: "🔔 Empty", Description: "", StartTime: start},
				{ID: "e4", Title: "Picnic 🔔 tomorrow", Description: "Carol", StartTime: start},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReminders(tt.events)
			if len(got) != tt.want {
				t.Errorf("ExtractReminders() returned %d reminders, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExtractReminders_RecipientOrder(t *testing.T) {
	events := []RawEvent{
		{ID: "e1", Title: "🔔 Party", Description: "  Carol \nAnn\n\nBob  "},
	}

	got := ExtractReminders(events)
	if len(got) != 1 {
		t.Fatalf("ExtractReminders() returned %d reminders, want 1", len(got))
	}

	want := []string{"Carol", "Ann", "Bob"}
	if len(got[0].Recipients) != len(want) {
		t.Fatalf("Recipients = %v, want %v", got[0].Recipients, want)
	}
	for i := range want {
		if got[0].Recipients[i] != want[i] {
			t.Errorf("Recipients[%d] = %q, want %q (insertion order must be preserved)", i, got[0].Recipients[i], want[i])
		}
	}
}

func TestExtractReminders_CopiesEventFields(t *testing.T) {
	start := time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC)
	events := []RawEvent{
		{ID: "e1", Title: "🔔 Party", Description: "Ann", StartTime: start},
	}

	got := ExtractReminders(events)
	if len(got) != 1 {
		t.Fatalf("ExtractReminders() returned %d reminders, want 1", len(got))
	}
	r := got[0]
	if r.EventID != "e1" || r.Title != "🔔 Party" || !r.ScheduledAt.Equal(start) {
		t.Errorf("ExtractReminders() = %+v, fields not carried over", r)
	}
}
