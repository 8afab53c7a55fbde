package conveyor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/xraph/conveyor/middleware"
	"github.com/xraph/conveyor/runner"
)

// Queue is an in-process background task queue with a bounded
// concurrency ceiling. Callers fire and forget work with [Queue.Push]
// or [Queue.Unshift] and observe it through [Hooks] or through
// notifiers created with [Queue.CreateNotifier].
//
// A Queue has a single logical owner; its methods may be called from
// multiple goroutines, but tasks execute under the pool's own
// serialized completion handling.
type Queue struct {
	pool    *runner.Pool[Task, Result]
	mw      middleware.Middleware
	mws     []middleware.Middleware
	logger  *slog.Logger
	baseCtx context.Context
	config  Config

	mu        sync.Mutex
	notifiers []*Notifier
	hooks     Hooks
	drainHook func() // last explicitly assigned; reapplied after Kill
}

// New creates a Queue with the given options.
func New(opts ...Option) *Queue {
	q := &Queue{
		config:  DefaultConfig(),
		logger:  slog.Default(),
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(q)
	}

	// Panic recovery is always the outermost wrapper so a panicking
	// task settles as a failure instead of crashing the process.
	q.mw = middleware.Chain(append(
		[]middleware.Middleware{middleware.Recover(q.logger)},
		q.mws...,
	)...)

	ropts := []runner.Option{runner.WithConcurrency(q.config.Concurrency)}
	if q.config.RateLimit > 0 {
		ropts = append(ropts, runner.WithRateLimit(q.config.RateLimit, q.config.RateBurst))
	}
	q.pool = runner.New(q.execute, ropts...)

	q.drainHook = q.hooks.Drained
	q.pool.SetDrain(q.drainHook)

	return q
}

// Push appends a task to the back of the pending order. The TaskAdded
// hook fires synchronously with the submitted shape before admission.
// Push never blocks and never fails for a normal task shape; it
// returns the queue to allow chaining. A nil task is ignored.
func (q *Queue) Push(t Task) *Queue {
	if t == nil {
		q.logger.Warn("nil task ignored")
		return q
	}
	if fn := q.snapshotHooks().TaskAdded; fn != nil {
		fn(t)
	}
	q.pool.Push(t, q.settled)
	return q
}

// Unshift inserts a task at the front of the pending order, ahead of
// all pending (but not running) tasks. Used to prioritize urgent work.
// Otherwise identical to [Queue.Push].
func (q *Queue) Unshift(t Task) *Queue {
	if t == nil {
		q.logger.Warn("nil task ignored")
		return q
	}
	if fn := q.snapshotHooks().TaskAdded; fn != nil {
		fn(t)
	}
	q.pool.Unshift(t, q.settled)
	return q
}

// CreateNotifier allocates a single-shot future resolved by the next
// unmatched task completion and returns it immediately. It may be
// called any number of times, in any queue state, including before the
// corresponding task is submitted. Matching is strictly positional;
// see [Notifier].
func (q *Queue) CreateNotifier() *Notifier {
	n := newNotifier()
	q.mu.Lock()
	q.notifiers = append(q.notifiers, n)
	q.mu.Unlock()
	return n
}

// Pause halts the start of new task executions. Tasks already running
// continue to completion; pending tasks keep their order. Admission
// (Push, Unshift, CreateNotifier) stays legal while paused.
func (q *Queue) Pause() { q.pool.Pause() }

// Resume re-enables execution of pending and newly queued tasks,
// subject to the concurrency ceiling.
func (q *Queue) Resume() { q.pool.Resume() }

// IsIdle reports whether there are no running and no pending tasks.
func (q *Queue) IsIdle() bool { return q.pool.Idle() }

// Size returns the count of tasks not yet started. In-flight tasks are
// not counted.
func (q *Queue) Size() int { return q.pool.Length() }

// Kill immediately discards all pending tasks. Tasks already running
// are allowed to finish. The Drained hook fires exactly once
// synchronously as part of the flush, even though the queue was not
// naturally drained; afterwards the last explicitly assigned drain
// hook is restored so future natural drains still notify the caller.
func (q *Queue) Kill() {
	q.logger.Debug("queue killed", slog.Int("discarded", q.pool.Length()))
	q.pool.KillAndDrain()
	q.restoreDrainHook()
}

// SetHooks replaces the queue's lifecycle hooks.
func (q *Queue) SetHooks(h Hooks) {
	q.mu.Lock()
	q.hooks = h
	q.drainHook = h.Drained
	q.mu.Unlock()
	q.pool.SetDrain(h.Drained)
}

// SetDrainHook replaces only the Drained hook, forwarding it to the
// executor's drain slot and remembering it for restoration after Kill.
func (q *Queue) SetDrainHook(fn func()) {
	q.mu.Lock()
	q.hooks.Drained = fn
	q.drainHook = fn
	q.mu.Unlock()
	q.pool.SetDrain(fn)
}

// restoreDrainHook reapplies the last explicitly assigned drain hook.
// Killing the pool clears its drain slot as a side effect of the
// flush; this undoes that reset.
func (q *Queue) restoreDrainHook() {
	q.mu.Lock()
	fn := q.drainHook
	q.mu.Unlock()
	q.pool.SetDrain(fn)
}

func (q *Queue) snapshotHooks() Hooks {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.hooks
}

// execute is the pool worker. It normalizes the submitted shape to its
// (name, invoke) pair, runs the invocation through the middleware
// chain, and settles exactly once.
func (q *Queue) execute(t Task, done func(Result, error)) {
	name, invoke := t.normalize()
	if invoke == nil {
		done(Result{Name: name}, ErrNilTask)
		return
	}

	resp, err := q.mw(q.baseCtx, &middleware.Invocation{Name: name}, middleware.Handler(invoke))
	if err != nil {
		done(Result{Name: name}, err)
		return
	}
	done(Result{Name: name, Response: resp}, nil)
}

// settled is the per-task completion handler, invoked serially by the
// pool exactly once per task. It pops the oldest pending notifier (if
// any), dispatches the matching hook, and resolves the notifier with
// the real outcome — the notifier itself is always resolved, with its
// Status carrying success or failure.
func (q *Queue) settled(res Result, err error) {
	q.mu.Lock()
	var n *Notifier
	if len(q.notifiers) > 0 {
		n = q.notifiers[0]
		q.notifiers = q.notifiers[1:]
	}
	hooks := q.hooks
	q.mu.Unlock()

	if err != nil {
		q.logger.Debug("task failed",
			slog.String("task_name", res.Name),
			slog.String("error", err.Error()),
		)
		if hooks.TaskFailed != nil {
			hooks.TaskFailed(err, res.Name)
		}
		if n != nil {
			n.resolve(rejected(err))
		}
		return
	}

	if hooks.TaskCompleted != nil {
		hooks.TaskCompleted(res)
	}
	if n != nil {
		n.resolve(fulfilled(res))
	}
}
