// Package session holds per-browser-session key-value data that must not
// outlive the session, such as the admin authentication flag.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when the session backend cannot be reached.
var ErrUnavailable = errors.New("session: backend unavailable")

// Store keeps values scoped to a session id.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid, key string) error
	// Destroy drops everything held for sid.
	Destroy(ctx context.Context, sid string) error
}

// NewID returns a fresh opaque session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether sid looks like an id produced by NewID.
func ValidID(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil
}
