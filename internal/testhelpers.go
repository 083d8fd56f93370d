package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestEvent creates a reminder event with sample data
func createTestEvent(id string, recipients ...string) ReminderEvent {
	return ReminderEvent{
		EventID:     id,
		Title:       "🔔 Meeting " + id,
		ScheduledAt: time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC),
		Recipients:  recipients,
	}
}

// createTestLedger creates a ledger backed by a fresh temp file path
func createTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(filepath.Join(t.TempDir(), "state.json"))
}

// writeTestFile writes content to path, creating parent directories
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}
