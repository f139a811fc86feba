package security

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
)

// AttemptStore persists the rate limiter's attempt map: every identifier is
// mapped to an ascending list of attempt timestamps in epoch milliseconds.
// The whole map lives under one fixed key as a JSON object, so a store can
// be inspected or wiped with a single command.
type AttemptStore interface {
	Load(ctx context.Context) (map[string][]int64, error)
	Save(ctx context.Context, attempts map[string][]int64) error
}

// RedisStore keeps the attempt map in Redis.  It is the production store:
// attempts survive restarts and are shared between replicas.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore returns a RedisStore persisting under the given key.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	return &RedisStore{rdb: rdb, key: key}
}

// Load reads and decodes the attempt map.  A missing key is an empty map,
// not an error.
func (s *RedisStore) Load(ctx context.Context) (map[string][]int64, error) {
	raw, err := s.rdb.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return map[string][]int64{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := map[string][]int64{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save encodes and writes the attempt map back under the fixed key.
func (s *RedisStore) Save(ctx context.Context, attempts map[string][]int64) error {
	raw, err := json.Marshal(attempts)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, raw, 0).Err()
}

// MemoryStore keeps the attempt map in process memory.  It is used in tests
// and as the fallback when no Redis server is reachable at startup; in that
// mode attempts do not survive restarts, which the limiter's fail-open
// design already tolerates.
type MemoryStore struct {
	mu       sync.Mutex
	attempts map[string][]int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{attempts: map[string][]int64{}}
}

func (s *MemoryStore) Load(ctx context.Context) (map[string][]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]int64, len(s.attempts))
	for k, v := range s.attempts {
		out[k] = append([]int64(nil), v...)
	}
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, attempts map[string][]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string][]int64, len(attempts))
	for k, v := range attempts {
		cp[k] = append([]int64(nil), v...)
	}
	s.attempts = cp
	return nil
}
