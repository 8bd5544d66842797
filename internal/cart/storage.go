package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hearthside-goods/storefront-backend/pkg/redis"
)

// Storage persists cart snapshots across restarts. Persistence is best
// effort: the in-memory cart stays authoritative when a write fails.
type Storage interface {
	Save(ctx context.Context, sessionID string, items []Item) error
	Load(ctx context.Context, sessionID string) ([]Item, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

const cartTTL = 30 * 24 * time.Hour

// RedisStorage keeps cart snapshots in Redis under namespaced session keys.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage wraps the shared Redis client as cart storage.
func NewRedisStorage(client *redis.Client) (*RedisStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStorage{client: client}, nil
}

func (s *RedisStorage) Save(ctx context.Context, sessionID string, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	return s.client.Set(ctx, s.client.CartKey(sessionID), payload, cartTTL)
}

func (s *RedisStorage) Load(ctx context.Context, sessionID string) ([]Item, bool, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	return items, true, nil
}

func (s *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartKey(sessionID))
}

// MemoryStorage is a map-backed Storage for tests and local development.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]Item
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string][]Item{}}
}

func (s *MemoryStorage) Save(_ context.Context, sessionID string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Item, len(items))
	copy(snapshot, items)
	s.items[sessionID] = snapshot
	return nil
}

func (s *MemoryStorage) Load(_ context.Context, sessionID string) ([]Item, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.items[sessionID]
	if !ok {
		return nil, false, nil
	}
	snapshot := make([]Item, len(items))
	copy(snapshot, items)
	return snapshot, true, nil
}

func (s *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}
