package resilience

import (
	"errors"
	"fmt"
	"sync"
)

// ErrFlightPanicked is returned to callers that were waiting on a call whose
// fn panicked. The caller that ran fn sees the panic itself.
var ErrFlightPanicked = errors.New("shared call panicked")

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight[V any] struct {
	mu    sync.Mutex
	calls map[string]*call[V]
}

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Do runs fn once per key at a time. Callers arriving while fn runs share its
// result and get shared=true.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (val V, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[V])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &call[V]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	finished := false
	defer func() {
		if !finished {
			c.err = fmt.Errorf("%w: key %q", ErrFlightPanicked, key)
		}
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
	finished = true
	return c.val, c.err, false
}
