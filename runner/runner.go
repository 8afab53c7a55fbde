// Package runner provides the bounded executor behind a conveyor queue:
// a concurrency-limited pool that accepts items together with a settle
// callback, executes them through a worker function, and supports
// front/back insertion, pause/resume, and destructive draining.
package runner

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Worker executes a single item and reports its outcome through done.
// done MUST be called exactly once per invocation; extra calls are
// ignored, and a worker that never calls it leaks a concurrency slot.
type Worker[T, R any] func(item T, done func(result R, err error))

// Settle receives the outcome of one item after its worker reports it.
// The pool never invokes two settle callbacks concurrently, so a
// consumer may mutate its own state from them without extra locking.
type Settle[R any] func(result R, err error)

type item[T, R any] struct {
	value  T
	settle Settle[R]
}

// Pool runs items through a Worker with a fixed concurrency ceiling.
// Items dispatch in pending order: Push appends to the back, Unshift
// inserts at the front. The zero value is not usable; create pools
// with New.
type Pool[T, R any] struct {
	worker  Worker[T, R]
	limiter *rate.Limiter

	mu          sync.Mutex
	pending     []*item[T, R]
	running     int
	paused      bool
	drain       func()
	waking      bool
	concurrency int

	// cbMu serializes settle callbacks across worker goroutines.
	cbMu sync.Mutex
}

type config struct {
	concurrency int
	rateLimit   float64
	rateBurst   int
}

// Option configures a Pool.
type Option func(*config)

// WithConcurrency sets the maximum number of items executed at once.
// Values below 1 are treated as 1. The default is 10.
func WithConcurrency(n int) Option {
	return func(c *config) { c.concurrency = n }
}

// WithRateLimit caps sustained dispatches per second with a token
// bucket. burst defaults to 1 when not positive. A zero or negative
// perSecond disables rate limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) {
		c.rateLimit = perSecond
		c.rateBurst = burst
	}
}

// New creates a Pool that executes items through worker.
func New[T, R any](worker Worker[T, R], opts ...Option) *Pool[T, R] {
	cfg := config{concurrency: 10}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}

	p := &Pool[T, R]{
		worker:      worker,
		concurrency: cfg.concurrency,
	}
	if cfg.rateLimit > 0 {
		burst := cfg.rateBurst
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.rateLimit), burst)
	}
	return p
}

// Push appends an item to the back of the pending order. It never
// blocks; execution starts as soon as a concurrency slot is free.
// settle may be nil.
func (p *Pool[T, R]) Push(v T, settle Settle[R]) {
	p.mu.Lock()
	p.pending = append(p.pending, &item[T, R]{value: v, settle: settle})
	p.dispatchLocked()
	p.mu.Unlock()
}

// Unshift inserts an item at the front of the pending order, ahead of
// all pending (but not running) items.
func (p *Pool[T, R]) Unshift(v T, settle Settle[R]) {
	p.mu.Lock()
	p.pending = append([]*item[T, R]{{value: v, settle: settle}}, p.pending...)
	p.dispatchLocked()
	p.mu.Unlock()
}

// Pause halts the start of new executions. Items already running
// continue to completion; pending items keep their order.
func (p *Pool[T, R]) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

// Resume re-enables execution of pending and newly added items,
// subject to the concurrency ceiling.
func (p *Pool[T, R]) Resume() {
	p.mu.Lock()
	p.paused = false
	p.dispatchLocked()
	p.mu.Unlock()
}

// Idle reports whether no items are running and none are pending.
func (p *Pool[T, R]) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running == 0 && len(p.pending) == 0
}

// Length returns the number of items not yet started. In-flight items
// are not counted.
func (p *Pool[T, R]) Length() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Running returns the number of items currently executing.
func (p *Pool[T, R]) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// SetDrain sets the callback invoked each time the pool transitions
// from busy to fully idle (no running, no pending). nil disables it.
func (p *Pool[T, R]) SetDrain(fn func()) {
	p.mu.Lock()
	p.drain = fn
	p.mu.Unlock()
}

// KillAndDrain discards all pending items, invokes the drain callback
// once, and clears the drain slot as part of the flush. Items already
// running are not interrupted and their settle callbacks still fire;
// no drain fires when they finish unless SetDrain is called again.
func (p *Pool[T, R]) KillAndDrain() {
	p.mu.Lock()
	p.pending = nil
	d := p.drain
	p.drain = nil
	p.mu.Unlock()

	if d != nil {
		d()
	}
}

// dispatchLocked starts pending items while slots are available.
// Callers must hold p.mu.
func (p *Pool[T, R]) dispatchLocked() {
	for !p.paused && p.running < p.concurrency && len(p.pending) > 0 {
		if p.limiter != nil {
			res := p.limiter.Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				if !p.waking {
					p.waking = true
					time.AfterFunc(delay, p.wake)
				}
				return
			}
		}

		it := p.pending[0]
		p.pending = p.pending[1:]
		p.running++
		go p.execute(it)
	}
}

// wake retries dispatch after a rate-limit backoff.
func (p *Pool[T, R]) wake() {
	p.mu.Lock()
	p.waking = false
	p.dispatchLocked()
	p.mu.Unlock()
}

func (p *Pool[T, R]) execute(it *item[T, R]) {
	var once sync.Once
	p.worker(it.value, func(r R, err error) {
		once.Do(func() { p.settled(it, r, err) })
	})
}

// settled runs the item's settle callback, releases the concurrency
// slot, fires drain on the busy-to-idle transition, and dispatches
// whatever is next.
func (p *Pool[T, R]) settled(it *item[T, R], r R, err error) {
	p.cbMu.Lock()
	if it.settle != nil {
		it.settle(r, err)
	}
	p.cbMu.Unlock()

	p.mu.Lock()
	p.running--
	drained := p.running == 0 && len(p.pending) == 0
	d := p.drain
	p.dispatchLocked()
	p.mu.Unlock()

	if drained && d != nil {
		d()
	}
}
