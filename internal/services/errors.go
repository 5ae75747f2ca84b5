package services

import "errors"

var (
	// ErrSyncInProgress is returned when a sync pass is refused because one
	// is already in flight.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrOffline aborts a sync pass before any side effect when the backend
	// is unreachable.
	ErrOffline = errors.New("no connectivity to backend")
	// ErrNotAuthenticated aborts operations that require an active session.
	ErrNotAuthenticated = errors.New("no active session")
	// ErrOrderLocked rejects edits to an order whose workflow status has
	// moved past "pendiente" on the server.
	ErrOrderLocked = errors.New("order is being processed and can no longer be edited")
	// ErrInvalidCredentials covers both online and offline login failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError rejects bad input before anything is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func newValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
