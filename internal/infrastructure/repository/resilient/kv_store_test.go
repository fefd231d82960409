package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	seasonmock "github.com/dinkanimations/squadbets/internal/mocks/domain/season"
	"github.com/dinkanimations/squadbets/internal/platform/resilience"
)

func TestKVStore_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("connection refused")
	next := seasonmock.NewStore(t)
	next.On("Get", mock.Anything, "currentWeek").Return("", false, boom).Twice()

	store := NewKVStore(next, resilience.NewCircuitBreaker(2, time.Minute, 1))
	for i := 0; i < 2; i++ {
		if _, _, err := store.Get(ctx, "currentWeek"); !errors.Is(err, boom) {
			t.Fatalf("expected backend error, got %v", err)
		}
	}

	if _, _, err := store.Get(ctx, "currentWeek"); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open, got %v", err)
	}
	if err := store.Set(ctx, "currentWeek", "2"); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open on write, got %v", err)
	}
	if store.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open state, got %s", store.State())
	}
}

func TestKVStore_PassesThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := seasonmock.NewStore(t)
	next.On("Get", mock.Anything, "currentWeek").Return("5", true, nil).Once()
	next.On("Remove", mock.Anything, "currentWeek").Return(nil).Once()

	store := NewKVStore(next, nil)
	value, ok, err := store.Get(ctx, "currentWeek")
	if err != nil || !ok || value != "5" {
		t.Fatalf("expected 5, got %q ok=%v err=%v", value, ok, err)
	}
	if err := store.Remove(ctx, "currentWeek"); err != nil {
		t.Fatalf("remove: %v", err)
	}
}
