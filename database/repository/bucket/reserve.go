// File: database/repository/bucket/reserve.go
package bucketRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TryReserve performs the correctness-critical conditional increment as a
// single UpdateOne: the capacity check lives in the filter, so two concurrent
// reservations can never both observe availability and both succeed.
func (r *mongoBucketRepo) TryReserve(ctx context.Context, date, slotTime string, guestCount int, reservationID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":    date,
		"time":    slotTime,
		"blocked": false,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{"$booked", guestCount}},
				"$capacity",
			},
		},
	}
	update := bson.M{
		"$inc":      bson.M{"booked": guestCount},
		"$addToSet": bson.M{"reservationIds": reservationID},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve bucket %s %s: %w", date, slotTime, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotConflict
	}
	return nil
}

// Release reverses a reservation by the exact amount originally reserved.
// The subtraction floors at zero so accounting drift can never push booked
// negative.
func (r *mongoBucketRepo) Release(ctx context.Context, date, slotTime string, guestCount int, reservationID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time": slotTime}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"booked": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$booked", guestCount}}}},
			"reservationIds": bson.M{
				"$filter": bson.M{
					"input": bson.M{"$ifNull": bson.A{"$reservationIds", bson.A{}}},
					"cond":  bson.M{"$ne": bson.A{"$$this", reservationID}},
				},
			},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release bucket %s %s: %w", date, slotTime, err)
	}
	if res.MatchedCount == 0 {
		// Bucket never materialized; nothing to release.
		return nil
	}
	return nil
}

func (r *mongoBucketRepo) SetBlocked(ctx context.Context, date, slotTime string, blocked bool, actorID, reason string, defaultCapacity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time": slotTime}
	update := bson.M{
		"$set": bson.M{
			"blocked":       blocked,
			"blockedReason": reason,
			"blockedBy":     actorID,
		},
		"$setOnInsert": bson.M{
			"date":     date,
			"time":     slotTime,
			"capacity": defaultCapacity,
			"booked":   0,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set block state for bucket %s %s: %w", date, slotTime, err)
	}
	return nil
}
