package resilient

import (
	"context"

	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/platform/resilience"
)

// KVStore guards a remote store with a circuit breaker. While the circuit is
// open calls fail fast with resilience.ErrCircuitOpen.
type KVStore struct {
	next    season.Store
	breaker *resilience.CircuitBreaker
}

func NewKVStore(next season.Store, breaker *resilience.CircuitBreaker) *KVStore {
	return &KVStore{next: next, breaker: breaker}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value  string
		exists bool
	)
	err := s.breaker.Execute(func() error {
		var err error
		value, exists, err = s.next.Get(ctx, key)
		return err
	})
	if err != nil {
		return "", false, err
	}
	return value, exists, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return s.breaker.Execute(func() error {
		return s.next.Set(ctx, key, value)
	})
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	return s.breaker.Execute(func() error {
		return s.next.Remove(ctx, key)
	})
}

func (s *KVStore) State() resilience.CircuitState {
	return s.breaker.State()
}
