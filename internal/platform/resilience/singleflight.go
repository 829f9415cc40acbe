package resilience

import (
	"context"
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent calls sharing a key into one execution.
// The zero value is ready to use.
type SingleFlight[T any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[T]
}

type flight[T any] struct {
	done    chan struct{}
	cancel  context.CancelFunc
	waiters int
	val     T
	err     error
}

// Do runs fn once per key among overlapping callers and reports whether the
// result came from an execution another caller started.
//
// fn runs on its own goroutine under a context detached from any single caller,
// so one caller giving up does not fail the others. The shared context is
// cancelled once every caller has left. A panic in fn becomes an error.
func (g *SingleFlight[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flight[T])
	}
	f, shared := g.inflight[key]
	if !shared {
		flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight[T]{done: make(chan struct{}), cancel: cancel}
		g.inflight[key] = f
		go g.run(flightCtx, key, f, fn)
	}
	f.waiters++
	g.mu.Unlock()

	select {
	case <-f.done:
		return f.val, f.err, shared
	case <-ctx.Done():
		g.mu.Lock()
		f.waiters--
		if f.waiters == 0 {
			f.cancel()
			if g.inflight[key] == f {
				delete(g.inflight, key)
			}
		}
		g.mu.Unlock()

		var zero T
		return zero, ctx.Err(), shared
	}
}

func (g *SingleFlight[T]) run(ctx context.Context, key string, f *flight[T], fn func(context.Context) (T, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			f.val, f.err = zero, fmt.Errorf("singleflight %q: panic: %v", key, rec)
		}

		g.mu.Lock()
		if g.inflight[key] == f {
			delete(g.inflight, key)
		}
		g.mu.Unlock()

		f.cancel()
		close(f.done)
	}()

	f.val, f.err = fn(ctx)
}
