package conversation

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a turn is already running.
	ErrBusy = errors.New("a turn is already in progress")
	// ErrTerminated is returned once the story has ended.
	ErrTerminated = errors.New("session has ended")
)

// BackendError wraps any failure talking to the narrative backend.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
