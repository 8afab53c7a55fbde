package conveyor

// Status classifies a settled Outcome.
type Status string

const (
	// StatusFulfilled means the task returned without error.
	StatusFulfilled Status = "fulfilled"
	// StatusRejected means the task returned an error or panicked.
	StatusRejected Status = "rejected"
)

// Result is the success payload of one task execution.
type Result struct {
	// Name is the task's canonical name at invocation time.
	Name string
	// Response is whatever the task's operation produced.
	Response any
}

// Outcome is the settled result of executing one task: fulfilled with
// a Value, or rejected with a Reason. Produced exactly once per task.
type Outcome struct {
	Status Status
	// Value holds the result when Status is StatusFulfilled.
	Value Result
	// Reason holds the failure when Status is StatusRejected.
	Reason error
}

func fulfilled(res Result) Outcome {
	return Outcome{Status: StatusFulfilled, Value: res}
}

func rejected(err error) Outcome {
	return Outcome{Status: StatusRejected, Reason: err}
}
