package conveyor

// Hooks are optional callbacks the queue invokes synchronously at
// defined lifecycle points. Any field may be nil. Hooks run on the
// queue's own call path: the queue does not recover panics raised
// inside a hook, and a slow hook delays completion handling.
type Hooks struct {
	// TaskAdded fires before a task is admitted, once per Push or
	// Unshift, with the submitted shape (Func or Named) untouched.
	TaskAdded func(t Task)

	// TaskCompleted fires after a task settles successfully.
	TaskCompleted func(res Result)

	// TaskFailed fires after a task settles with an error. name is the
	// failed task's canonical name.
	TaskFailed func(err error, name string)

	// Drained fires each time the queue transitions from busy to fully
	// idle (no pending, no running tasks), and once synchronously as
	// part of Kill.
	Drained func()
}
