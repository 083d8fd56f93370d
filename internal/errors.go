package internal

import "fmt"

// ConfigError represents errors loading or validating configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PersistenceError represents errors writing the send-state ledger or the
// outcome journal
type PersistenceError struct {
	Path string
	Op   string // "load", "write", "append"
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FetchError represents errors fetching calendar events
type FetchError struct {
	Source string // "google-calendar"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error [%s]: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
