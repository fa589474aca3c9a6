// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"

	"tablewala/database"
	"tablewala/models"
	"tablewala/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound signals that no reservation exists for the given id.
var ErrNotFound = errors.New("reservation not found")

// ReservationRepository is the persistence collaborator for confirmed
// reservations. It lives in the same transactional domain as the bucket
// store; the allocation engine keeps the two in lockstep.
type ReservationRepository interface {
	Create(ctx context.Context, res models.Reservation) error
	GetByID(ctx context.Context, reservationID string) (*models.Reservation, error)
	FindByBucket(ctx context.Context, date, time string) ([]models.Reservation, error)
	// Cancel marks the reservation cancelled and returns it as it was when
	// confirmed, so the caller can release the exact guest count reserved.
	Cancel(ctx context.Context, reservationID string) (*models.Reservation, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a MongoDB-backed ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("tablewala")
	repo := &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("reservation repo: failed to ensure indexes: %v", err)
	}
	return repo
}
