package viewstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/session"
)

const (
	MsgNetwork      = "Network error. Please check your connection and try again."
	MsgUnexpected   = "Unexpected response from server. Please try again later."
	MsgFillAll      = "Please fill in all fields"
	MsgLoginFirst   = "Please log in first"
	MsgNoGoal       = "No goal set"
	MsgStartGoal    = "Tap Update Goal to start"
	MsgStorage      = "Could not access local session data"
	MsgLoginOK      = "Login successful"
	MsgLoginFail    = "Login failed"
	MsgNoUserID     = "Login failed: the server did not return a user id"
	MsgRegisterOK   = "Registration successful"
	MsgRegisterFail = "Registration failed"
	MsgGoalFail     = "Failed to update goal"
	MsgGoalLoad     = "Failed to load goal"
	MsgHistoryFail  = "Failed to fetch history"
	MsgRecordFail   = "Failed to add record"
	MsgProfileFail  = "Failed to load profile"
	MsgProfileOK    = "Profile updated"
	MsgUpdateFail   = "Update failed"
)

// ValidationError is a local input failure detected before any backend
// call. Message is meant to be shown next to the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var errNoSession = &ValidationError{Field: "session", Message: MsgLoginFirst}

// storageError marks a failure of the local session store.
type storageError struct {
	err error
}

func (e *storageError) Error() string { return "session store: " + e.err.Error() }
func (e *storageError) Unwrap() error { return e.err }

// envelopeError is a 2xx response whose envelope reported success=false.
type envelopeError struct {
	message string
}

func (e *envelopeError) Error() string { return e.message }

// UserMessage turns err into the text shown to the user.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var rejected *client.RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	var eerr *envelopeError
	if errors.As(err, &eerr) && eerr.message != "" {
		return eerr.message
	}
	var serr *storageError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return MsgNetwork
	case errors.Is(err, client.ErrDecode):
		return MsgUnexpected
	case errors.As(err, &serr):
		return MsgStorage
	}
	return fallback
}

// Session is the subset of the session store used by holders.
type Session interface {
	SaveUserID(ctx context.Context, id int) error
	UserID(ctx context.Context) (int, error)
	SaveBodyInfo(ctx context.Context, weight, height float64, age int) error
	Weight(ctx context.Context) (float64, error)
	Height(ctx context.Context) (float64, error)
	Clear(ctx context.Context) error
}

var _ Session = (*session.Store)(nil)

// currentUser returns the signed-in user id or errNoSession.
func currentUser(ctx context.Context, s Session) (int, error) {
	id, err := s.UserID(ctx)
	if err != nil {
		return session.NoUser, &storageError{err: err}
	}
	if id <= 0 {
		return session.NoUser, errNoSession
	}
	return id, nil
}
