package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Verification state machine values. A cart with no stored state is
// implicitly unverified.
const (
	StateCodeSent = "code_sent"
	StateVerified = "verified"
	StateLocked   = "locked"
)

const stateTTL = 10 * time.Minute

// State is the per-cart verification record.
type State struct {
	State         string `json:"state"`
	TransactionID string `json:"transactionId"`
	Phone         string `json:"phone"`
	Attempts      int    `json:"attempts"`
}

// Store persists per-cart verification state with a TTL matching the
// upstream cart's useful lifetime.
type Store interface {
	Get(ctx context.Context, cartID string) (*State, error)
	Put(ctx context.Context, cartID string, state State) error
	Delete(ctx context.Context, cartID string) error
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a verification state store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func stateKey(cartID string) string {
	return "verify:" + cartID
}

// Get returns the stored state, or nil when the cart has none (unverified).
func (s *RedisStore) Get(ctx context.Context, cartID string) (*State, error) {
	payload, err := s.client.Get(ctx, stateKey(cartID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read verification state: %w", err)
	}
	var state State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("failed to parse verification state: %w", err)
	}
	return &state, nil
}

// Put stores the state, refreshing the TTL.
func (s *RedisStore) Put(ctx context.Context, cartID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal verification state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(cartID), payload, stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to store verification state: %w", err)
	}
	return nil
}

// Delete removes the state record.
func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, stateKey(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete verification state: %w", err)
	}
	return nil
}
