package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without touching the season store while the
// breaker is open or its half-open trial slots are taken.
var ErrCircuitOpen = errors.New("season store circuit is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs after the breaker
// lock is released, so it may call back into the breaker.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker sits in front of a remote season store (postgres, redis,
// sqlite). After failureThreshold consecutive store errors every Get, Set and
// Remove fails fast for openTimeout. Then up to trialLimit calls are let
// through, and the circuit closes once that many succeed in a row.
//
// A nil *CircuitBreaker lets every call through, which is what the in-memory
// backend gets.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	trialLimit       int

	state     CircuitState
	failures  int
	openedAt  time.Time
	trials    int
	successes int

	onChange StateChangeFunc
	now      func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, trialLimit int) *CircuitBreaker {
	if openTimeout <= 0 {
		openTimeout = defaultOpenTimeout
	}
	return &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		openTimeout:      openTimeout,
		trialLimit:       max(trialLimit, 1),
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// OnStateChange registers fn for every transition. It returns b for chaining.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) *CircuitBreaker {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
	return b
}

// Allow reserves a slot for one store call or returns ErrCircuitOpen.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	from := b.state
	err := b.admitLocked()
	b.unlockAndNotify(from)
	return err
}

func (b *CircuitBreaker) admitLocked() error {
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.enterLocked(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.trials >= b.trialLimit {
			return ErrCircuitOpen
		}
		b.trials++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.record(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			b.trials = max(b.trials-1, 0)
			b.successes++
			if b.successes >= b.trialLimit && b.trials == 0 {
				b.enterLocked(CircuitStateClosed)
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.record(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.failureThreshold {
				b.enterLocked(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.enterLocked(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
	})
}

// release frees a half-open slot without counting the call either way.
func (b *CircuitBreaker) release() {
	b.record(func() {
		if b.state == CircuitStateHalfOpen {
			b.trials = max(b.trials-1, 0)
		}
	})
}

func (b *CircuitBreaker) record(update func()) {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	update()
	b.unlockAndNotify(from)
}

// State reports the effective state. An open circuit whose timeout has
// passed reads as half-open even before the next call moves it there.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// Execute runs one store call behind the breaker. A canceled request context
// is the caller going away, not the store failing, so it is not counted.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	switch {
	case err == nil:
		b.RecordSuccess()
	case errors.Is(err, context.Canceled):
		b.release()
	default:
		b.RecordFailure()
	}
	return err
}

func (b *CircuitBreaker) enterLocked(next CircuitState) {
	b.state = next
	b.trials = 0
	b.successes = 0
	switch next {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) unlockAndNotify(from CircuitState) {
	to, fn := b.state, b.onChange
	b.mu.Unlock()
	if fn != nil && to != from {
		fn(from, to)
	}
}
