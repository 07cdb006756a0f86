package cache

import (
	"context"
	"sync"
	"time"

	pkgredis "github.com/readshelf/core/internal/pkg/redis"
)

// Store is the byte-level backend a Cache sits on.
// Remove of an absent key must succeed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time // zero = no expiry
}

// MemoryStore is an in-process Store with lazy expiry.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		s.mu.Lock()
		if cur, still := s.items[key]; still && cur.expiresAt.Equal(item.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// RedisStore keeps entries in Redis under a shared key prefix.
type RedisStore struct {
	client *pkgredis.Client
	prefix string
}

func NewRedisStore(client *pkgredis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.client.GetBytes(ctx, s.prefix+key)
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl)
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key)
}
