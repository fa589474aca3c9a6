// File: services/dialogue/service_test.go
package dialogue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bucketRepo "tablewala/database/repository/bucket"
	reservationRepo "tablewala/database/repository/reservation"
	"tablewala/models"
	"tablewala/services/allocation"
	"tablewala/services/extract"
	"tablewala/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAdvisor struct {
	advisory *models.SeatingAdvisory
	err      error
	calls    int
}

func (a *stubAdvisor) Recommend(_ context.Context, _ string) (*models.SeatingAdvisory, error) {
	a.calls++
	return a.advisory, a.err
}

type recordingScheduler struct {
	scheduled []models.Reservation
}

func (s *recordingScheduler) ScheduleReservationReminder(res models.Reservation) error {
	s.scheduled = append(s.scheduled, res)
	return nil
}

type fixture struct {
	svc          *DefaultDialogueService
	allocator    *allocation.DefaultEngine
	reservations reservationRepo.ReservationRepository
	advisor      *stubAdvisor
	scheduler    *recordingScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	extractor := extract.NewEngine(nil)
	// 2026-09-02 is a Wednesday.
	extractor.Now = func() time.Time {
		return time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
	}

	cfg := allocation.DefaultConfig()
	cfg.DefaultCapacity = 10
	allocator := allocation.NewDefaultEngine(bucketRepo.NewMemoryBucketRepo(), cfg, zap.NewNop())

	advisor := &stubAdvisor{advisory: &models.SeatingAdvisory{
		Condition:      "clear sky",
		Recommendation: models.SeatingOutdoor,
		Reason:         "clear sky and 26.0 degrees",
	}}
	scheduler := &recordingScheduler{}
	reservations := reservationRepo.NewMemoryReservationRepo()

	svc := &DefaultDialogueService{
		Sessions:       session.NewMemoryStore(0),
		Extractor:      extractor,
		Allocator:      allocator,
		Advisor:        advisor,
		Reservations:   reservations,
		Reminders:      scheduler,
		RestaurantName: "Tablewala",
		Logger:         zap.NewNop(),
	}
	return &fixture{
		svc:          svc,
		allocator:    allocator,
		reservations: reservations,
		advisor:      advisor,
		scheduler:    scheduler,
	}
}

func (f *fixture) turn(t *testing.T, sessionID, utterance string) *models.TurnResponse {
	t.Helper()
	resp, err := f.svc.ProcessTurn(context.Background(), models.TurnRequest{
		SessionID: sessionID,
		Utterance: utterance,
	})
	require.NoError(t, err)
	return resp
}

func TestFullConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := f.turn(t, "sess-1", "I'm Alex")
	assert.Equal(t, models.StateCollectingGuests, resp.State)
	assert.Equal(t, "Alex", resp.Fields.CustomerName)

	resp = f.turn(t, "sess-1", "4")
	assert.Equal(t, models.StateCollectingDate, resp.State)
	assert.Equal(t, 4, resp.Fields.GuestCount)

	resp = f.turn(t, "sess-1", "tomorrow")
	assert.Equal(t, models.StateCollectingTime, resp.State)
	assert.Equal(t, "2026-09-03", resp.Fields.Date)

	resp = f.turn(t, "sess-1", "7pm")
	assert.Equal(t, models.StateCollectingCuisine, resp.State)
	assert.Equal(t, "19:00", resp.Fields.Time)

	resp = f.turn(t, "sess-1", "italian")
	assert.Equal(t, models.StateCompleted, resp.State)
	assert.True(t, resp.ReadyToReserve)
	require.NotNil(t, resp.Reservation)
	assert.Equal(t, models.ReservationConfirmed, resp.Reservation.Status)
	require.NotNil(t, resp.SeatingAdvisory)
	assert.Equal(t, models.SeatingOutdoor, resp.SeatingAdvisory.Recommendation)

	bucket, err := f.allocator.GetOrCreate(ctx, "2026-09-03", "19:00")
	require.NoError(t, err)
	assert.Equal(t, 4, bucket.Booked)

	stored, err := f.reservations.GetByID(ctx, resp.Reservation.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "Alex", stored.CustomerName)
	assert.Equal(t, models.SeatingOutdoor, stored.Seating)

	require.Len(t, f.scheduler.scheduled, 1)
	assert.Equal(t, resp.Reservation.ReservationID, f.scheduler.scheduled[0].ReservationID)

	// Terminal state is sticky: another message repeats the confirmation
	// without booking again.
	resp = f.turn(t, "sess-1", "thanks!")
	assert.Equal(t, models.StateCompleted, resp.State)
	assert.Nil(t, resp.Reservation)
	bucket, err = f.allocator.GetOrCreate(ctx, "2026-09-03", "19:00")
	require.NoError(t, err)
	assert.Equal(t, 4, bucket.Booked)
}

func TestUnparseableInputHoldsState(t *testing.T) {
	f := newFixture(t)

	f.turn(t, "sess-1", "I'm Alex")

	// Five turns of noise in a row must neither advance nor corrupt state.
	for i := 0; i < 5; i++ {
		resp := f.turn(t, "sess-1", "umm not sure yet")
		assert.Equal(t, models.StateCollectingGuests, resp.State)
		assert.Equal(t, 0, resp.Fields.GuestCount)
		assert.Contains(t, resp.MissingFields, "guestCount")
	}

	resp := f.turn(t, "sess-1", "6 people")
	assert.Equal(t, models.StateCollectingDate, resp.State)
	assert.Equal(t, 6, resp.Fields.GuestCount)
}

func TestConflictRevertsToCollectingTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Fill 19:00 for the target date before the conversation gets there.
	require.NoError(t, f.allocator.Reserve(ctx, "2026-09-03", "19:00", 10, "earlier"))

	f.turn(t, "sess-1", "I'm Alex")
	f.turn(t, "sess-1", "4")
	f.turn(t, "sess-1", "tomorrow")
	f.turn(t, "sess-1", "7pm")
	resp := f.turn(t, "sess-1", "italian")

	assert.Equal(t, models.StateCollectingTime, resp.State)
	assert.Empty(t, resp.Fields.Time)
	assert.Nil(t, resp.Reservation)
	require.NotEmpty(t, resp.AlternativeTimes)
	assert.Equal(t, "18:30", resp.AlternativeTimes[0])
	assert.Contains(t, resp.PromptText, "18:30")

	// Picking an offered slot completes the booking.
	resp = f.turn(t, "sess-1", "18:30")
	assert.Equal(t, models.StateCompleted, resp.State)
	require.NotNil(t, resp.Reservation)
	assert.Equal(t, "18:30", resp.Reservation.Time)
}

func TestOutsideOperatingHoursTreatedAsConflict(t *testing.T) {
	f := newFixture(t)

	f.turn(t, "sess-1", "I'm Alex")
	f.turn(t, "sess-1", "2")
	f.turn(t, "sess-1", "tomorrow")
	f.turn(t, "sess-1", "23:30")
	resp := f.turn(t, "sess-1", "thai")

	assert.Equal(t, models.StateCollectingTime, resp.State)
	assert.Empty(t, resp.Fields.Time)
	require.NotEmpty(t, resp.AlternativeTimes)
	assert.Equal(t, "22:00", resp.AlternativeTimes[0])
}

func TestAdvisorFailureFallsBackToIndoor(t *testing.T) {
	f := newFixture(t)
	f.advisor.advisory = nil
	f.advisor.err = errors.New("forecast service down")

	f.turn(t, "sess-1", "I'm Alex")
	f.turn(t, "sess-1", "2")
	f.turn(t, "sess-1", "tomorrow")
	f.turn(t, "sess-1", "7pm")
	resp := f.turn(t, "sess-1", "chinese")

	assert.Equal(t, models.StateCompleted, resp.State)
	require.NotNil(t, resp.SeatingAdvisory)
	assert.Equal(t, models.SeatingIndoor, resp.SeatingAdvisory.Recommendation)
	assert.True(t, resp.SeatingAdvisory.Fallback)
}

func TestAdvisoryFetchedOncePerDate(t *testing.T) {
	f := newFixture(t)

	// Fill the preferred slot so the conversation passes fetching_weather
	// twice for the same date.
	require.NoError(t, f.allocator.Reserve(context.Background(), "2026-09-03", "19:00", 10, "earlier"))

	f.turn(t, "sess-1", "I'm Alex")
	f.turn(t, "sess-1", "4")
	f.turn(t, "sess-1", "tomorrow")
	f.turn(t, "sess-1", "7pm")
	f.turn(t, "sess-1", "italian")
	f.turn(t, "sess-1", "18:30")

	assert.Equal(t, 1, f.advisor.calls)
}

func TestKnownFieldsPrefillWithoutClobbering(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ProcessTurn(context.Background(), models.TurnRequest{
		SessionID: "sess-1",
		Utterance: "I'm Alex",
		KnownFields: &models.Fields{
			GuestCount: 4,
			Date:       "2026-09-05",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectingTime, resp.State)
	assert.Equal(t, "Alex", resp.Fields.CustomerName)
	assert.Equal(t, 4, resp.Fields.GuestCount)

	// A later overlay never overwrites what is already collected.
	resp, err = f.svc.ProcessTurn(context.Background(), models.TurnRequest{
		SessionID:   "sess-1",
		Utterance:   "8pm",
		KnownFields: &models.Fields{GuestCount: 9},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Fields.GuestCount)
	assert.Equal(t, "20:00", resp.Fields.Time)
}

func TestSpecialRequestsCollectedOnAnyTurn(t *testing.T) {
	f := newFixture(t)

	f.turn(t, "sess-1", "I'm Alex")
	resp := f.turn(t, "sess-1", "4, it's her birthday")
	assert.Contains(t, resp.Fields.SpecialRequests, "birthday celebration")

	resp = f.turn(t, "sess-1", "tomorrow, window seat please")
	assert.ElementsMatch(t, []string{"birthday celebration", "window seat"}, resp.Fields.SpecialRequests)
}

func TestEmptySessionIDStartsNewSession(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ProcessTurn(context.Background(), models.TurnRequest{Utterance: "hello i want to book a table"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, models.StateCollectingName, resp.State)
}

func TestConcurrentFinalTurnsBookOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.turn(t, "sess-1", "I'm Alex")
	f.turn(t, "sess-1", "4")
	f.turn(t, "sess-1", "tomorrow")
	f.turn(t, "sess-1", "7pm")

	// Two racing final turns for the same session: without per-session
	// serialization both would read the pre-confirmation snapshot and each
	// book seats. Exactly one may confirm; the other sees the terminal state.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ProcessTurn(ctx, models.TurnRequest{
				SessionID: "sess-1",
				Utterance: "italian",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	bucket, err := f.allocator.GetOrCreate(ctx, "2026-09-03", "19:00")
	require.NoError(t, err)
	assert.Equal(t, 4, bucket.Booked)

	booked, err := f.reservations.FindByBucket(ctx, "2026-09-03", "19:00")
	require.NoError(t, err)
	require.Len(t, booked, 1)
}

func TestAbandonDropsSession(t *testing.T) {
	f := newFixture(t)

	f.turn(t, "sess-1", "I'm Alex")
	require.NoError(t, f.svc.Abandon(context.Background(), "sess-1"))

	// The next message starts over from greeting.
	resp := f.turn(t, "sess-1", "i want to make a new booking")
	assert.Equal(t, models.StateCollectingName, resp.State)
	assert.Empty(t, resp.Fields.CustomerName)
}
