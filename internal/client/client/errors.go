package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend could not be reached or did not answer
	// in time.
	ErrUnavailable = errors.New("server unavailable")
	// ErrRejected is matched by every *RejectedError.
	ErrRejected = errors.New("request rejected")
	// ErrDecode means a successful response carried an unreadable body.
	ErrDecode = errors.New("unexpected response")
)

// RejectedError is a non-2xx answer. Message is the envelope's error or
// message text when the body could be decoded.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected with status %d", e.Status)
	}
	return fmt.Sprintf("request rejected with status %d: %s", e.Status, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
