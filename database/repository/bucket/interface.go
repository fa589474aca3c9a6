// File: database/repository/bucket/interface.go
package bucketRepo

import (
	"context"
	"errors"

	"tablewala/database"
	"tablewala/models"
	"tablewala/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotConflict signals that a reservation could not be accepted because the
// bucket is blocked or lacks remaining capacity. It is an expected business
// outcome, not a system failure.
var ErrSlotConflict = errors.New("time slot cannot accept the reservation")

// BucketRepository owns persistence of TimeSlotBucket capacity accounting.
// Identity key is (date, time); buckets materialize lazily on first access.
type BucketRepository interface {
	// GetOrCreate returns the bucket for (date, time), creating it with the
	// given default capacity when it does not exist yet. Idempotent.
	GetOrCreate(ctx context.Context, date, time string, defaultCapacity int) (*models.TimeSlotBucket, error)
	// GetByDate returns every materialized bucket for the date.
	GetByDate(ctx context.Context, date string) ([]models.TimeSlotBucket, error)
	// TryReserve atomically increments booked by guestCount only if the bucket
	// is unblocked and the result stays within capacity. The check and the
	// increment are one indivisible operation; on failure nothing changes and
	// ErrSlotConflict is returned.
	TryReserve(ctx context.Context, date, time string, guestCount int, reservationID string) error
	// Release decrements booked by guestCount (floored at zero) and removes
	// the reservation id from the bucket.
	Release(ctx context.Context, date, time string, guestCount int, reservationID string) error
	// SetBlocked toggles administrative blocking independent of capacity.
	// Existing reservations are unaffected.
	SetBlocked(ctx context.Context, date, time string, blocked bool, actorID, reason string, defaultCapacity int) error
}

type mongoBucketRepo struct {
	coll *mongo.Collection
}

// NewMongoBucketRepo constructs a MongoDB-backed BucketRepository.
func NewMongoBucketRepo() BucketRepository {
	db := database.MongoClient.Database("tablewala")
	repo := &mongoBucketRepo{
		coll: db.Collection("timeslot_buckets"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("bucket repo: failed to ensure indexes: %v", err)
	}
	return repo
}
