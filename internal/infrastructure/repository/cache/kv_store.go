package cache

import (
	"context"
	"time"

	"github.com/dinkanimations/squadbets/internal/domain/season"
	basecache "github.com/dinkanimations/squadbets/internal/platform/cache"
)

// KVStore is a read-through cache in front of another store. Writes go to the
// backend first and then refresh the cached entry.
type KVStore struct {
	next  season.Store
	cache *basecache.Store[cachedValue]
}

type cachedValue struct {
	value  string
	exists bool
}

func NewKVStore(next season.Store, ttl time.Duration) *KVStore {
	return &KVStore{next: next, cache: basecache.NewStore[cachedValue](ttl)}
}

// Purge forgets every cached value.
func (s *KVStore) Purge(ctx context.Context) {
	s.cache.Purge(ctx)
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.cache.GetOrLoad(ctx, cacheKey(key), func(ctx context.Context) (cachedValue, error) {
		value, exists, err := s.next.Get(ctx, key)
		if err != nil {
			return cachedValue{}, err
		}
		return cachedValue{value: value, exists: exists}, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.value, v.exists, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.cache.Delete(ctx, cacheKey(key))
		return err
	}
	s.cache.Set(ctx, cacheKey(key), cachedValue{value: value, exists: true})
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	err := s.next.Remove(ctx, key)
	s.cache.Delete(ctx, cacheKey(key))
	return err
}

func cacheKey(key string) string {
	return "kv:" + key
}
