// File: services/planner/session_store.go
package planner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rangelkoli/Wanderly/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "planner:sess:"

// SessionStore persists planner sessions between suspension points.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.PlannerSession, error)
	Set(ctx context.Context, session *models.PlannerSession) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis with a TTL that acts as the
// host-side suspension timeout.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.PlannerSession, error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.PlannerSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.PlannerSession) error {
	key := sessionKeyPrefix + session.SessionID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
