package sessioninfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
)

// RedisStore implements session.Store with one JSON value per user
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ session.Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store. Keys are prefix + user id and
// expire after ttl of inactivity.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) key(userID kernel.UserID) string {
	return s.prefix + userID.String()
}

// Load reads and decodes the user's state
func (s *RedisStore) Load(ctx context.Context, userID kernel.UserID) (*session.State, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound().WithDetail("user_id", userID.String())
		}
		return nil, fmt.Errorf("load session %s: %w", userID, err)
	}

	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, session.ErrSessionCorrupted().WithCause(err).WithDetail("user_id", userID.String())
	}
	return &state, nil
}

// Save encodes the state and resets its expiry
func (s *RedisStore) Save(ctx context.Context, userID kernel.UserID, state session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", userID, err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", userID, err)
	}
	return nil
}

// Delete removes the user's state
func (s *RedisStore) Delete(ctx context.Context, userID kernel.UserID) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", userID, err)
	}
	return nil
}
