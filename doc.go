// Package conveyor provides an in-process, bounded-concurrency
// background task queue. Callers fire and forget asynchronous work
// while retaining the ability to observe completion, failure, and
// drainage — for production monitoring and for deterministic testing
// of otherwise-unawaited background work.
//
// # Quick Start
//
//	q := conveyor.New(conveyor.WithConcurrency(4))
//
//	q.Push(conveyor.Named{Name: "send-email", Run: sendEmail})
//	q.Push(conveyor.Func(cleanupTempFiles))
//
// # Observing background work
//
// Lifecycle hooks fire synchronously at defined points:
//
//	q := conveyor.New(conveyor.WithHooks(conveyor.Hooks{
//	    TaskCompleted: func(res conveyor.Result) { log.Println("done:", res.Name) },
//	    TaskFailed:    func(err error, name string) { log.Println("failed:", name, err) },
//	    Drained:       func() { log.Println("queue empty") },
//	}))
//
// Notifiers linearize assertions against background work. A notifier
// is created before the completion it observes and resolved by it:
//
//	n := q.CreateNotifier()
//	q.Push(conveyor.Named{Name: "refresh", Run: refresh})
//	out, err := n.Wait(ctx)
//
// Notifier matching is strictly positional (FIFO), with no identity
// check: the Nth notifier created is resolved by the Nth subsequent
// completion, whichever task that is. Create exactly one notifier per
// task you intend to observe, in completion order, or the wrong
// notifier pairs with the wrong outcome.
//
// # Flow control
//
// Pause and Resume gate the start of new executions; Kill discards all
// pending tasks, fires the Drained hook once as part of the flush, and
// leaves in-flight tasks to finish. Execution failures never escape
// the queue: they surface only through the TaskFailed hook and through
// notifier outcomes with StatusRejected.
package conveyor
