package internal

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReminderMessage_ContainsEventTime(t *testing.T) {
	event := createTestEvent("E1", "Ann")
	msg := ReminderMessage(event)

	if !strings.Contains(msg, event.ScheduledAt.Format("15:04")) {
		t.Errorf("ReminderMessage() = %q, must contain the event time", msg)
	}
}

func TestSummaryMessage(t *testing.T) {
	event := createTestEvent("E1", "Ann", "Bob", "Carol")
	now := time.Date(2026, 8, 31, 19, 5, 0, 0, time.UTC)

	results := []RecipientResult{
		{Recipient: "Ann", Outcome: OutcomeDelivered},
		{Recipient: "Bob", Outcome: OutcomeContactNotFound},
		{Recipient: "Carol", Outcome: OutcomeChatNotFound},
	}

	summary := SummaryMessage(event, results, now)

	for _, name := range []string{"Ann", "Bob", "Carol"} {
		if !strings.Contains(summary, name) {
			t.Errorf("summary missing recipient %s:\n%s", name, summary)
		}
	}
	if !strings.Contains(summary, event.Title) {
		t.Errorf("summary missing event title:\n%s", summary)
	}
	if !strings.Contains(summary, "19:05") {
		t.Errorf("summary missing timestamp:\n%s", summary)
	}
	// Delivered and failed recipients land in separate sections
	if !strings.Contains(summary, "✅") || !strings.Contains(summary, "⚠️") {
		t.Errorf("summary missing outcome sections:\n%s", summary)
	}
}

func TestSummaryMessage_AllFailed(t *testing.T) {
	event := createTestEvent("E1", "Ann")
	results := []RecipientResult{
		{Recipient: "Ann", Outcome: OutcomeError, Detail: "failed to send message"},
	}

	summary := SummaryMessage(event, results, time.Now())
	if strings.Contains(summary, "✅") {
		t.Errorf("summary has a delivered section with zero deliveries:\n%s", summary)
	}
	if !strings.Contains(summary, "Ann") {
		t.Errorf("summary missing failed recipient:\n%s", summary)
	}
}

func TestRecipientResult_Reason(t *testing.T) {
	tests := []struct {
		name   string
		result RecipientResult
		want   string
	}{
		{"delivered", RecipientResult{Outcome: OutcomeDelivered}, "delivered"},
		{"contact not found", RecipientResult{Outcome: OutcomeContactNotFound}, "contact not found"},
		{"chat not found", RecipientResult{Outcome: OutcomeChatNotFound}, "chat not found"},
		{"error without detail", RecipientResult{Outcome: OutcomeError}, "error"},
		{"error with detail", RecipientResult{Outcome: OutcomeError, Detail: "boom"}, "error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureNotice(t *testing.T) {
	notice := FailureNotice(&FetchError{Source: "google-calendar", Err: errors.New("boom")})
	if !strings.Contains(notice, "google-calendar") {
		t.Errorf("FailureNotice() = %q, must include the wrapped error", notice)
	}
}
