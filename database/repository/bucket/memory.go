// File: database/repository/bucket/memory.go
package bucketRepo

import (
	"context"
	"sync"

	"tablewala/models"
)

// memoryBucketRepo is an in-memory BucketRepository. The mutex makes the
// check-then-increment in TryReserve indivisible, matching the Mongo
// implementation's conditional update semantics. Used for tests and
// single-node development.
type memoryBucketRepo struct {
	mu      sync.Mutex
	buckets map[string]*models.TimeSlotBucket
}

// NewMemoryBucketRepo constructs an in-memory BucketRepository.
func NewMemoryBucketRepo() BucketRepository {
	return &memoryBucketRepo{buckets: make(map[string]*models.TimeSlotBucket)}
}

func bucketKey(date, slotTime string) string {
	return date + "|" + slotTime
}

func (r *memoryBucketRepo) getOrCreateLocked(date, slotTime string, defaultCapacity int) *models.TimeSlotBucket {
	key := bucketKey(date, slotTime)
	b, ok := r.buckets[key]
	if !ok {
		b = &models.TimeSlotBucket{
			Date:     date,
			Time:     slotTime,
			Capacity: defaultCapacity,
		}
		r.buckets[key] = b
	}
	return b
}

func (r *memoryBucketRepo) GetOrCreate(_ context.Context, date, slotTime string, defaultCapacity int) (*models.TimeSlotBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := *r.getOrCreateLocked(date, slotTime, defaultCapacity)
	snapshot.ReservationIDs = append([]string(nil), snapshot.ReservationIDs...)
	return &snapshot, nil
}

func (r *memoryBucketRepo) GetByDate(_ context.Context, date string) ([]models.TimeSlotBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimeSlotBucket
	for _, b := range r.buckets {
		if b.Date == date {
			snapshot := *b
			snapshot.ReservationIDs = append([]string(nil), b.ReservationIDs...)
			out = append(out, snapshot)
		}
	}
	return out, nil
}

func (r *memoryBucketRepo) TryReserve(_ context.Context, date, slotTime string, guestCount int, reservationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[bucketKey(date, slotTime)]
	if !ok || b.Blocked || b.Booked+guestCount > b.Capacity {
		return ErrSlotConflict
	}
	b.Booked += guestCount
	for _, id := range b.ReservationIDs {
		if id == reservationID {
			return nil
		}
	}
	b.ReservationIDs = append(b.ReservationIDs, reservationID)
	return nil
}

func (r *memoryBucketRepo) Release(_ context.Context, date, slotTime string, guestCount int, reservationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[bucketKey(date, slotTime)]
	if !ok {
		return nil
	}
	b.Booked -= guestCount
	if b.Booked < 0 {
		b.Booked = 0
	}
	kept := b.ReservationIDs[:0]
	for _, id := range b.ReservationIDs {
		if id != reservationID {
			kept = append(kept, id)
		}
	}
	b.ReservationIDs = kept
	return nil
}

func (r *memoryBucketRepo) SetBlocked(_ context.Context, date, slotTime string, blocked bool, actorID, reason string, defaultCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.getOrCreateLocked(date, slotTime, defaultCapacity)
	b.Blocked = blocked
	b.BlockedReason = reason
	b.BlockedBy = actorID
	return nil
}
