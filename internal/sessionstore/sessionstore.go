package sessionstore

import (
	"context"
	"fmt"

	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

// Record is the durable snapshot of an authenticated session: the bearer
// token issued by the API and the user profile returned alongside it.
type Record struct {
	Token string
	User  models.User
}

// Store defines how the client's session is persisted across runs.
//
// A store holds at most one session. The token and the user profile are kept
// as two independently keyed entries but are always written and removed
// together; a store must never expose one without the other.
type Store interface {
	// Load retrieves the persisted session, if any.
	// Returns (nil, nil) when no session is stored. Returns a
	// MalformedSessionError when the stored state is incomplete or
	// undecodable; callers are expected to treat that as logged-out.
	Load(ctx context.Context) (*Record, error)

	// Save persists the session, replacing any previous one.
	// Both entries are written in a single transaction.
	Save(ctx context.Context, rec Record) error

	// Clear removes the persisted session. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

// Storage keys for the two entries making up a persisted session.
const (
	keyToken = "session_token"
	keyUser  = "session_user"
)

var ErrMalformedSession = &MalformedSessionError{}

// errors
type MalformedSessionError struct {
	Reason string
}

func (e *MalformedSessionError) Error() string {
	return fmt.Sprintf("persisted session is malformed: %s", e.Reason)
}

func (e *MalformedSessionError) Is(target error) bool {
	_, ok := target.(*MalformedSessionError)
	return ok
}

func newMalformedSessionError(reason string) *MalformedSessionError {
	return &MalformedSessionError{Reason: reason}
}
