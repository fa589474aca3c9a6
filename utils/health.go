package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest probe of the two external stores this service
// depends on: MongoDB for buckets and reservations, Redis for sessions.
type HealthStatus struct {
	Mongo        bool      `json:"mongo"`
	SessionCache bool      `json:"sessionCache"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func checkStores(ctx context.Context, sessionCache *redis.Client, mongoClient *mongo.Client) HealthStatus {
	return HealthStatus{
		Mongo:        mongoClient.Ping(ctx, nil) == nil,
		SessionCache: sessionCache.Ping(ctx).Err() == nil,
		CheckedAt:    time.Now(),
	}
}

// StartHealthMonitor probes the stores once immediately and then every minute,
// updating the in-memory snapshot served by the admin health endpoint.
func StartHealthMonitor(sessionCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ctx := context.Background()

		store := func() {
			status := checkStores(ctx, sessionCache, mongoClient)
			mu.Lock()
			currentHealth = status
			mu.Unlock()
		}

		store()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			store()
		}
	}()
}
