package sessionRepo

import (
	"context"
	"errors"
	"time"

	"radiant/models"
)

// ErrNotFound is returned when a session id matches no record.
var ErrNotFound = errors.New("booking session not found")

// SessionRepository persists booking-funnel sessions.
type SessionRepository interface {
	// Create is idempotent on duplicate session ids: a client retry or race
	// on the same id is treated as success, never an error.
	Create(ctx context.Context, session models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	// Patch sets the given fields and optionally appends a visited step.
	// Callers are responsible for restricting fields to the allow-list.
	Patch(ctx context.Context, sessionID string, set map[string]any, stepVisited *int) error
	FindStaleInProgress(ctx context.Context, cutoff time.Time) ([]models.BookingSession, error)
	MarkAbandoned(ctx context.Context, sessionID string, abandonStep int) error
}
