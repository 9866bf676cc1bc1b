package session

import (
	"context"
	"fmt"
	"time"

	sessionRepo "radiant/database/repository/session"
	"radiant/models"
	"radiant/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// inactivityThreshold is how long an in-progress session may sit idle before
// the sweep marks it abandoned.
const inactivityThreshold = 30 * time.Minute

// TrackerService records booking-funnel progress and closes out stale
// sessions.
type TrackerService interface {
	Create(ctx context.Context, session models.BookingSession) (*models.BookingSession, error)
	Update(ctx context.Context, sessionID string, update models.BookingSessionUpdate) error
	FinalizeStale(ctx context.Context) (int, error)
}

// DefaultTrackerService implements TrackerService.
type DefaultTrackerService struct {
	Repo sessionRepo.SessionRepository
	// Now is injectable for finalizer tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultTrackerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create starts a funnel session. Client-generated ids are kept so retried
// creates land on the same record; a duplicate id is success, not an error.
func (s *DefaultTrackerService) Create(ctx context.Context, session models.BookingSession) (*models.BookingSession, error) {
	if session.SessionID == "" {
		session.SessionID = uuid.New().String()
	}
	now := s.now()
	session.Outcome = models.SessionInProgress
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create booking session: %w", err)
	}
	return &session, nil
}

// Update patches a session. Only the allow-listed fields below can be
// written; anything else a client sends is dropped before it reaches
// storage.
func (s *DefaultTrackerService) Update(ctx context.Context, sessionID string, update models.BookingSessionUpdate) error {
	set := map[string]any{}
	if update.Outcome != nil {
		switch *update.Outcome {
		case models.SessionInProgress, models.SessionCompleted, models.SessionAbandoned:
			set["outcome"] = *update.Outcome
		default:
			return fmt.Errorf("invalid outcome %q", *update.Outcome)
		}
	}
	if update.AbandonStep != nil {
		set["abandonStep"] = *update.AbandonStep
	}
	if update.MaxStep != nil {
		set["maxStep"] = *update.MaxStep
	}
	if update.ServiceSlug != nil {
		set["serviceSlug"] = *update.ServiceSlug
	}
	if update.StaffID != nil {
		set["staffId"] = *update.StaffID
	}
	if update.ContactEmail != nil {
		set["contactEmail"] = *update.ContactEmail
	}
	if update.ContactPhone != nil {
		set["contactPhone"] = *update.ContactPhone
	}

	if err := s.Repo.Patch(ctx, sessionID, set, update.StepVisited); err != nil {
		return fmt.Errorf("failed to update booking session: %w", err)
	}
	return nil
}

// FinalizeStale marks every in-progress session idle beyond the threshold
// as abandoned, backfilling the abandonment step from the max step reached
// when none was recorded. Returns how many sessions were closed.
func (s *DefaultTrackerService) FinalizeStale(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-inactivityThreshold)
	stale, err := s.Repo.FindStaleInProgress(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find stale sessions: %w", err)
	}

	closed := 0
	for _, sess := range stale {
		abandonStep := sess.MaxStep
		if sess.AbandonStep != nil {
			abandonStep = *sess.AbandonStep
		}
		if err := s.Repo.MarkAbandoned(ctx, sess.SessionID, abandonStep); err != nil {
			utils.GetLogger().Error("failed to finalize stale session",
				zap.String("sessionID", sess.SessionID), zap.Error(err))
			continue
		}
		closed++
	}
	if closed > 0 {
		utils.GetLogger().Info("finalized stale booking sessions", zap.Int("count", closed))
	}
	return closed, nil
}
