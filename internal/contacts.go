package internal

import (
	"encoding/json"
	"os"
	"strings"
)

// contactsDocument is the on-disk shape of the contacts file
type contactsDocument struct {
	Contacts []Contact `json:"contacts"`
}

// Directory is the name-to-phone lookup table for recipients
type Directory struct {
	contacts []Contact
}

// LoadDirectory reads the contacts file at path. An unreadable or invalid
// file degrades to an empty directory: every lookup then misses, which the
// dispatcher records as contact_not_found rather than failing the run.
func LoadDirectory(path string) *Directory {
	data, err := os.ReadFile(path)
	if err != nil {
		LogError("failed to load contacts from %s: %v", path, err)
		return &Directory{}
	}

	var doc contactsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		LogError("failed to parse contacts %s: %v", path, err)
		return &Directory{}
	}

	LogInfo("loaded %d contacts", len(doc.Contacts))
	return &Directory{contacts: doc.Contacts}
}

// Resolve finds the contact for name: exact match first, then a trimmed
// case-insensitive fallback
func (d *Directory) Resolve(name string) (Contact, bool) {
	for _, c := range d.contacts {
		if c.Name == name {
			return c, true
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, c := range d.contacts {
		if strings.ToLower(strings.TrimSpace(c.Name)) == normalized {
			return c, true
		}
	}

	return Contact{}, false
}

// All returns a copy of every loaded contact
func (d *Directory) All() []Contact {
	out := make([]Contact, len(d.contacts))
	copy(out, d.contacts)
	return out
}
