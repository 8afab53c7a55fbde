package conveyor

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNotifier_WaitHonoursContext(t *testing.T) {
	n := newNotifier()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := n.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait on pending notifier = %v, want DeadlineExceeded", err)
	}
}

func TestNotifier_OutcomeNonBlocking(t *testing.T) {
	n := newNotifier()

	if _, ok := n.Outcome(); ok {
		t.Fatal("pending notifier should report no outcome")
	}

	n.resolve(fulfilled(Result{Name: "x", Response: 42}))

	out, ok := n.Outcome()
	if !ok {
		t.Fatal("resolved notifier should report an outcome")
	}
	if out.Value.Response != 42 {
		t.Errorf("Response = %v, want 42", out.Value.Response)
	}
}

func TestNotifier_ResolveTwiceIsNoOp(t *testing.T) {
	n := newNotifier()

	n.resolve(fulfilled(Result{Name: "first"}))
	n.resolve(rejected(errors.New("late")))

	out, ok := n.Outcome()
	if !ok {
		t.Fatal("notifier should be resolved")
	}
	if out.Status != StatusFulfilled || out.Value.Name != "first" {
		t.Errorf("outcome = %+v, want the first resolution to win", out)
	}
}

func TestNotifier_DoneClosesOnResolve(t *testing.T) {
	n := newNotifier()

	select {
	case <-n.Done():
		t.Fatal("Done should not be closed before resolution")
	default:
	}

	n.resolve(rejected(errors.New("boom")))

	select {
	case <-n.Done():
	case <-time.After(time.Second):
		t.Fatal("Done should be closed after resolution")
	}
}
