// File: database/repository/bucket/crud.go
package bucketRepo

import (
	"context"
	"fmt"
	"time"

	"tablewala/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBucketRepo) GetOrCreate(ctx context.Context, date, slotTime string, defaultCapacity int) (*models.TimeSlotBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time": slotTime}
	update := bson.M{
		"$setOnInsert": bson.M{
			"date":     date,
			"time":     slotTime,
			"capacity": defaultCapacity,
			"booked":   0,
			"blocked":  false,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var bucket models.TimeSlotBucket
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&bucket); err != nil {
		return nil, fmt.Errorf("failed to get or create bucket %s %s: %w", date, slotTime, err)
	}
	return &bucket, nil
}

func (r *mongoBucketRepo) GetByDate(ctx context.Context, date string) ([]models.TimeSlotBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch buckets for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var buckets []models.TimeSlotBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("error decoding buckets: %w", err)
	}
	return buckets, nil
}
