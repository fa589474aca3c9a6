// File: database/repository/reservation/memory.go
package reservationRepo

import (
	"context"
	"sync"

	"tablewala/models"
)

// memoryReservationRepo is an in-memory ReservationRepository for tests and
// single-node development.
type memoryReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]models.Reservation
}

// NewMemoryReservationRepo constructs an in-memory ReservationRepository.
func NewMemoryReservationRepo() ReservationRepository {
	return &memoryReservationRepo{reservations: make(map[string]models.Reservation)}
}

func (r *memoryReservationRepo) Create(_ context.Context, res models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations[res.ReservationID] = res
	return nil
}

func (r *memoryReservationRepo) GetByID(_ context.Context, reservationID string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[reservationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (r *memoryReservationRepo) FindByBucket(_ context.Context, date, slotTime string) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.Date == date && res.Time == slotTime {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memoryReservationRepo) Cancel(_ context.Context, reservationID string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[reservationID]
	if !ok || res.Status != models.ReservationConfirmed {
		return nil, ErrNotFound
	}
	before := res
	res.Status = models.ReservationCancelled
	r.reservations[reservationID] = res
	return &before, nil
}
