// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"tablewala/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoReservationRepo) Create(ctx context.Context, res models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("failed to create reservation %s: %w", res.ReservationID, err)
	}
	return nil
}

func (r *mongoReservationRepo) GetByID(ctx context.Context, reservationID string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"reservationId": reservationID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", reservationID, err)
	}
	return &res, nil
}

func (r *mongoReservationRepo) FindByBucket(ctx context.Context, date, slotTime string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date, "time": slotTime})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for %s %s: %w", date, slotTime, err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// Cancel flips status to cancelled only if still confirmed, returning the
// pre-cancellation document so the stored guest count can be released.
func (r *mongoReservationRepo) Cancel(ctx context.Context, reservationID string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"reservationId": reservationID, "status": models.ReservationConfirmed}
	update := bson.M{"$set": bson.M{"status": models.ReservationCancelled}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var res models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel reservation %s: %w", reservationID, err)
	}
	return &res, nil
}
