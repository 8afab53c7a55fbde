package conveyor

import (
	"context"
	"reflect"
	"runtime"
	"strings"
)

// TaskFunc is the operation a task performs. The response may be any
// value the task wants observers to see; a non-nil error marks the
// task as failed.
type TaskFunc func(ctx context.Context) (any, error)

// Task is a unit of submitted work. Exactly two shapes are admissible:
// a bare [Func], whose name derives from the function's own symbol,
// and a [Named] task with an explicit name and run operation.
//
// The TaskAdded hook observes the submitted shape untouched;
// normalization to a (name, invoke) pair happens at dispatch time.
type Task interface {
	normalize() (name string, invoke TaskFunc)
}

// Func is a bare callable task.
type Func func(ctx context.Context) (any, error)

func (f Func) normalize() (string, TaskFunc) { return funcName(f), TaskFunc(f) }

// Named is a task with an explicit name and run operation.
type Named struct {
	Name string
	Run  TaskFunc
}

func (n Named) normalize() (string, TaskFunc) { return n.Name, n.Run }

// funcName derives a task name from the function's own symbol:
// "sendReport" for a top-level function, a "parent.funcN" suffix for a
// closure, or the empty string when no symbol is available.
func funcName(f Func) string {
	if f == nil {
		return ""
	}
	rf := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
