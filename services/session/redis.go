// File: services/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"tablewala/models"
	"tablewala/utils"

	"github.com/go-redis/redis/v8"
)

// RedisStore is the production session store: one JSON document per session
// under a TTL so abandoned conversations expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a session store over the given Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = utils.DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, utils.SessionCachePrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		// Corrupt session payloads are treated as absent so the dialogue
		// restarts from greeting instead of surfacing the error.
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, utils.SessionCachePrefix+sess.SessionID, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, utils.SessionCachePrefix+sessionID).Err()
}
