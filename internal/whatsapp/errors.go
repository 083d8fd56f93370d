package whatsapp

import "fmt"

// InitializationError represents an unrecoverable transport startup
// failure. Nothing else can proceed without a session, so the run driver
// treats this as fatal.
type InitializationError struct {
	Step string // "launch", "navigate", "handshake"
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("whatsapp initialization error [%s]: %v", e.Step, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// PreconditionError reports an operation called from the wrong session
// state, turning the implicit "currently selected conversation" UI
// invariant into a checkable contract
type PreconditionError struct {
	Op    string
	State State
	Want  State
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("whatsapp precondition error: %s requires state %s, session is %s", e.Op, e.Want, e.State)
}
