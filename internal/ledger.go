package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ledgerDocument is the on-disk shape of the send-state ledger
type ledgerDocument struct {
	SentReminders []SentRecord `json:"sent_reminders"`
}

// Ledger is the durable send-state store. Every read goes back to disk so
// a crash between two invocations can never answer from a stale cache.
type Ledger struct {
	path string
}

// NewLedger creates a ledger bound to the given file path
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// load reads the latest on-disk document. A missing or unparseable file
// degrades to an empty ledger: starting empty can at worst cause an extra
// send, never a lost notification.
func (l *Ledger) load() ledgerDocument {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			LogWarn("could not read ledger %s, starting fresh: %v", l.path, err)
		}
		return ledgerDocument{}
	}

	var doc ledgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		LogWarn("could not parse ledger %s, starting fresh: %v", l.path, err)
		return ledgerDocument{}
	}
	return doc
}

// IsPending reports whether no SentRecord exists yet for eventID
func (l *Ledger) IsPending(eventID string) bool {
	doc := l.load()
	for _, r := range doc.SentReminders {
		if r.EventID == eventID {
			return false
		}
	}
	return true
}

// Commit appends record and durably rewrites the whole document before
// returning. A write failure is a PersistenceError: the caller must not
// proceed as if the record was saved.
func (l *Ledger) Commit(record SentRecord) error {
	doc := l.load()
	doc.SentReminders = append(doc.SentReminders, record)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}

	// Write-rename so a crash mid-write never corrupts the document
	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".state-*.json")
	if err != nil {
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName)
		return &PersistenceError{Path: l.path, Op: "write", Err: err}
	}

	LogInfo("marked event %s as sent", record.EventID)
	return nil
}

// History returns all committed records in commit order
func (l *Ledger) History() []SentRecord {
	doc := l.load()
	out := make([]SentRecord, len(doc.SentReminders))
	copy(out, doc.SentReminders)
	return out
}
