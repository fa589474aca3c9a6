// File: services/dialogue/service.go
package dialogue

import (
	"context"
	"errors"
	"time"

	reservationRepo "tablewala/database/repository/reservation"
	"tablewala/models"
	"tablewala/services/allocation"
	"tablewala/services/extract"
	"tablewala/services/session"
	"tablewala/services/tasks"
	"tablewala/services/weather"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxAlternatives caps how many open slots are offered after a conflict.
const maxAlternatives = 3

// Service drives one dialogue turn from raw utterance to reply.
type Service interface {
	// ProcessTurn runs one turn of the conversation. Turns for one session
	// are serialized internally; callers may invoke it concurrently.
	ProcessTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error)
	// Abandon drops an in-progress session.
	Abandon(ctx context.Context, sessionID string) error
}

// DefaultDialogueService is the production implementation.
type DefaultDialogueService struct {
	Sessions       session.Store
	Extractor      *extract.Engine
	Allocator      allocation.Engine
	Advisor        weather.Advisor
	Reservations   reservationRepo.ReservationRepository
	Reminders      tasks.Scheduler // optional
	RestaurantName string
	Logger         *zap.Logger

	turns keyedMutex
}

func newSession(sessionID string) *models.Session {
	return &models.Session{
		SessionID: sessionID,
		State:     models.StateGreeting,
		CreatedAt: time.Now(),
	}
}

func (s *DefaultDialogueService) ProcessTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	// One turn at a time per session: two racing final turns would otherwise
	// both read the same snapshot and each book seats.
	s.turns.lock(sessionID)
	defer s.turns.unlock(sessionID)

	sess, err := s.Sessions.Get(ctx, sessionID)
	switch {
	case errors.Is(err, session.ErrNotFound):
		sess = newSession(sessionID)
	case err != nil:
		return nil, err
	case !validState(sess.State):
		// Session corruption: restart from greeting rather than propagate.
		s.Logger.Warn("corrupt session state, restarting conversation",
			zap.String("sessionId", sessionID),
			zap.String("state", string(sess.State)))
		sess = newSession(sessionID)
	}

	if sess.State == models.StateCompleted {
		// Terminal state is sticky; repeat the confirmation.
		return s.respond(sess, nil, nil), nil
	}

	// Each turn produces a fresh snapshot; the stored one is never mutated
	// until the turn commits.
	fields := sess.Fields
	if req.KnownFields != nil {
		fields = mergeKnown(fields, *req.KnownFields)
	}

	if field, ok := ownedField[sess.State]; ok {
		fields, _ = s.Extractor.Apply(field, req.Utterance, fields)
	}
	// Special requests are optional and non-blocking; collect them on any turn.
	fields, _ = s.Extractor.Apply(extract.FieldSpecialRequests, req.Utterance, fields)

	sess.Fields = fields
	sess.State = nextCollectState(fields)

	var alternatives []string
	var reservation *models.Reservation
	if sess.State == models.StateFetchingWeather {
		s.ensureAdvisory(ctx, sess)
		sess.State = models.StateSuggestingSeating
		// A recommendation now exists, so confirmation follows immediately.
		sess.State = models.StateConfirming
		reservation, alternatives, err = s.confirm(ctx, sess)
		if err != nil {
			return nil, err
		}
	}

	sess.LastUpdated = time.Now()
	if err := s.Sessions.Set(ctx, sess); err != nil {
		return nil, err
	}

	return s.respond(sess, alternatives, reservation), nil
}

func (s *DefaultDialogueService) Abandon(ctx context.Context, sessionID string) error {
	s.turns.lock(sessionID)
	defer s.turns.unlock(sessionID)
	return s.Sessions.Delete(ctx, sessionID)
}

// ensureAdvisory fetches the seating advisory at most once per session per
// date, substituting the neutral default when the collaborator fails.
func (s *DefaultDialogueService) ensureAdvisory(ctx context.Context, sess *models.Session) {
	if sess.Advisory != nil && sess.AdvisoryDate == sess.Fields.Date {
		return
	}
	advisory, err := s.Advisor.Recommend(ctx, sess.Fields.Date)
	if err != nil {
		s.Logger.Warn("weather advisory unavailable, using default",
			zap.String("sessionId", sess.SessionID),
			zap.Error(err))
		advisory = weather.DefaultAdvisory()
	}
	sess.Advisory = advisory
	sess.AdvisoryDate = sess.Fields.Date
}

// confirm attempts the reservation. On conflict the machine reverts to
// collecting_time with the time slot forced empty and the nearest open
// alternatives in hand; conflicts are expected outcomes, never failures.
func (s *DefaultDialogueService) confirm(ctx context.Context, sess *models.Session) (*models.Reservation, []string, error) {
	fields := sess.Fields
	reservationID := uuid.New().String()

	err := s.Allocator.Reserve(ctx, fields.Date, fields.Time, fields.GuestCount, reservationID)
	if errors.Is(err, allocation.ErrSlotConflict) || errors.Is(err, allocation.ErrOutsideOperatingHours) {
		alternatives, altErr := s.Allocator.FindNearest(ctx, fields.Date, fields.Time, fields.GuestCount, maxAlternatives)
		if altErr != nil {
			s.Logger.Warn("failed to compute alternative slots",
				zap.String("sessionId", sess.SessionID),
				zap.Error(altErr))
		}
		sess.Fields.Time = ""
		sess.State = models.StateCollectingTime
		return nil, alternatives, nil
	}
	if err != nil {
		return nil, nil, err
	}

	seating := ""
	if sess.Advisory != nil {
		seating = sess.Advisory.Recommendation
	}
	reservation := &models.Reservation{
		ReservationID:   reservationID,
		SessionID:       sess.SessionID,
		CustomerName:    fields.CustomerName,
		Date:            fields.Date,
		Time:            fields.Time,
		GuestCount:      fields.GuestCount,
		Cuisine:         fields.Cuisine,
		SpecialRequests: fields.SpecialRequests,
		Seating:         seating,
		Status:          models.ReservationConfirmed,
		CreatedAt:       time.Now(),
	}
	if err := s.Reservations.Create(ctx, *reservation); err != nil {
		// Keep the bucket in lockstep with the persisted reservations.
		if relErr := s.Allocator.Release(ctx, fields.Date, fields.Time, fields.GuestCount, reservationID); relErr != nil {
			s.Logger.Error("failed to release seats after persistence failure",
				zap.String("reservationId", reservationID),
				zap.Error(relErr))
		}
		return nil, nil, err
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReservationReminder(*reservation); err != nil {
			s.Logger.Warn("failed to schedule reservation reminder",
				zap.String("reservationId", reservationID),
				zap.Error(err))
		}
	}

	sess.ReservationID = reservationID
	sess.State = models.StateCompleted
	return reservation, nil, nil
}

func (s *DefaultDialogueService) respond(sess *models.Session, alternatives []string, reservation *models.Reservation) *models.TurnResponse {
	return &models.TurnResponse{
		SessionID:        sess.SessionID,
		PromptText:       s.promptFor(sess, alternatives, reservation),
		State:            sess.State,
		Fields:           sess.Fields,
		MissingFields:    sess.Fields.Missing(),
		ReadyToReserve:   sess.Fields.Complete(),
		SeatingAdvisory:  sess.Advisory,
		Reservation:      reservation,
		AlternativeTimes: alternatives,
	}
}

// mergeKnown overlays caller-supplied slots onto the snapshot without
// clobbering anything already collected.
func mergeKnown(fields, known models.Fields) models.Fields {
	if fields.CustomerName == "" && known.CustomerName != "" {
		fields.CustomerName = known.CustomerName
	}
	if fields.GuestCount == 0 && known.GuestCount >= extract.MinGuests && known.GuestCount <= extract.MaxGuests {
		fields.GuestCount = known.GuestCount
	}
	if fields.Date == "" && known.Date != "" {
		fields.Date = known.Date
	}
	if fields.Time == "" && known.Time != "" {
		fields.Time = known.Time
	}
	if fields.Cuisine == "" && known.Cuisine != "" {
		fields.Cuisine = known.Cuisine
	}
	return fields
}
