package internal

import (
	"time"
)

// RawEvent represents a calendar entry as fetched from the event source
type RawEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
}

// ReminderEvent represents a calendar entry marked for reminder dispatch.
// Recipients is never empty: events with no resolvable recipients are
// dropped by the parser and never reach the dispatcher.
type ReminderEvent struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Recipients  []string  `json:"recipients"`
}

// Outcome classifies the result of one delivery attempt
type Outcome string

const (
	OutcomeDelivered       Outcome = "delivered"
	OutcomeContactNotFound Outcome = "contact_not_found"
	OutcomeChatNotFound    Outcome = "chat_not_found"
	OutcomeError           Outcome = "error"
)

// RecipientResult records the outcome of one recipient within one event.
// Detail is only set for OutcomeError.
type RecipientResult struct {
	Recipient string  `json:"recipient"`
	Outcome   Outcome `json:"outcome"`
	Detail    string  `json:"detail,omitempty"`
}

// Delivered reports whether the reminder reached the recipient
func (r RecipientResult) Delivered() bool {
	return r.Outcome == OutcomeDelivered
}

// Reason returns a human-readable explanation for a non-delivered outcome
func (r RecipientResult) Reason() string {
	switch r.Outcome {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeContactNotFound:
		return "contact not found"
	case OutcomeChatNotFound:
		return "chat not found"
	case OutcomeError:
		if r.Detail != "" {
			return "error: " + r.Detail
		}
		return "error"
	default:
		return string(r.Outcome)
	}
}

// SentRecord is the persisted proof that an event was fully processed.
// Exactly one record is written per event ID, and only after every
// recipient has a result and the summary was attempted.
type SentRecord struct {
	EventID     string            `json:"event_id"`
	Title       string            `json:"event_title"`
	ProcessedAt time.Time         `json:"sent_at"`
	Results     []RecipientResult `json:"recipients"`
}

// Contact is one directory entry mapping a name to a phone number
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Type  string `json:"type,omitempty"` // "parent" or "staff"
}

// TimeRange bounds a calendar fetch
type TimeRange struct {
	Start time.Time
	End   time.Time
}
