// File: services/session/store.go
package session

import (
	"context"
	"errors"

	"tablewala/models"
)

// ErrNotFound signals that no session exists for the given id. Callers
// respond by starting a fresh session from greeting rather than failing.
var ErrNotFound = errors.New("session not found")

// Store maps a session id to its dialogue session. Backing is pluggable:
// Redis in production, in-memory for tests. Eviction of abandoned sessions is
// the store's responsibility (TTL), not the state machine's.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Set(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, sessionID string) error
}
