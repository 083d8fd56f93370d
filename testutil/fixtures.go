package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ykarmi/kinderbell/internal"
)

// WriteJSONFile marshals v and writes it to path, creating parent
// directories as needed
func WriteJSONFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

// CreateContactsFixture writes a contacts file with the given contacts
func CreateContactsFixture(t *testing.T, path string, contacts []internal.Contact) {
	t.Helper()
	WriteJSONFile(t, path, map[string]interface{}{"contacts": contacts})
}

// CreateLedgerFixture writes a ledger file that already contains one
// committed record per event ID
func CreateLedgerFixture(t *testing.T, path string, eventIDs ...string) {
	t.Helper()
	records := make([]internal.SentRecord, 0, len(eventIDs))
	for _, id := range eventIDs {
		records = append(records, internal.SentRecord{
			EventID:     id,
			Title:       "🔔 Fixture event " + id,
			ProcessedAt: time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC),
			Results: []internal.RecipientResult{
				{Recipient: "Ann", Outcome: internal.OutcomeDelivered},
			},
		})
	}
	WriteJSONFile(t, path, map[string]interface{}{"sent_reminders": records})
}

// CreateReminderEvent builds a reminder event with sample data
func CreateReminderEvent(id string, recipients ...string) internal.ReminderEvent {
	return internal.ReminderEvent{
		EventID:     id,
		Title:       "🔔 Meeting " + id,
		ScheduledAt: time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC),
		Recipients:  recipients,
	}
}
