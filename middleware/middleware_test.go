package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/xraph/conveyor/middleware"
)

func TestChain_ExecutionOrder(t *testing.T) {
	var order []string

	mw1 := func(ctx context.Context, _ *middleware.Invocation, next middleware.Handler) (any, error) {
		order = append(order, "mw1-before")
		resp, err := next(ctx)
		order = append(order, "mw1-after")
		return resp, err
	}

	mw2 := func(ctx context.Context, _ *middleware.Invocation, next middleware.Handler) (any, error) {
		order = append(order, "mw2-before")
		resp, err := next(ctx)
		order = append(order, "mw2-after")
		return resp, err
	}

	chain := middleware.Chain(mw1, mw2)
	handler := func(_ context.Context) (any, error) {
		order = append(order, "handler")
		return nil, nil
	}

	_, err := chain(context.Background(), &middleware.Invocation{Name: "test"}, handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"mw1-before", "mw2-before", "handler", "mw2-after", "mw1-after"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(order), order)
	}
	for i, want := range expected {
		if order[i] != want {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want)
		}
	}
}

func TestChain_Empty(t *testing.T) {
	chain := middleware.Chain()
	called := false
	handler := func(_ context.Context) (any, error) {
		called = true
		return "resp", nil
	}

	resp, err := chain(context.Background(), &middleware.Invocation{}, handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called with empty chain")
	}
	if resp != "resp" {
		t.Errorf("response = %v, want %q", resp, "resp")
	}
}

func TestChain_PropagatesError(t *testing.T) {
	mw := func(ctx context.Context, _ *middleware.Invocation, next middleware.Handler) (any, error) {
		return next(ctx)
	}
	chain := middleware.Chain(mw)
	want := errors.New("handler error")

	_, err := chain(context.Background(), &middleware.Invocation{}, func(_ context.Context) (any, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestRecover_ConvertsPanicToError(t *testing.T) {
	m := middleware.Recover(slog.Default())

	resp, err := m(context.Background(), &middleware.Invocation{Name: "volatile"}, func(_ context.Context) (any, error) {
		panic("kaboom")
	})
	if err == nil {
		t.Fatal("expected an error from a panicking handler")
	}
	if resp != nil {
		t.Errorf("response = %v, want nil after panic", resp)
	}
	if !strings.Contains(err.Error(), "panic in task volatile") {
		t.Errorf("err = %v, want panic conversion message", err)
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("err = %v, want the panic value included", err)
	}
}

func TestRecover_PassesThroughSuccess(t *testing.T) {
	m := middleware.Recover(slog.Default())

	resp, err := m(context.Background(), &middleware.Invocation{Name: "calm"}, func(_ context.Context) (any, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != 42 {
		t.Errorf("response = %v, want 42", resp)
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	m := middleware.Logging(slog.Default())
	want := errors.New("task error")

	resp, err := m(context.Background(), &middleware.Invocation{Name: "noisy"}, func(_ context.Context) (any, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Fatalf("(%v, %v), want (ok, nil)", resp, err)
	}

	_, err = m(context.Background(), &middleware.Invocation{Name: "noisy"}, func(_ context.Context) (any, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestTimeout_CancelsContext(t *testing.T) {
	m := middleware.Timeout(20 * time.Millisecond)

	_, err := m(context.Background(), &middleware.Invocation{Name: "slow"}, func(ctx context.Context) (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return nil, errors.New("deadline never fired")
		}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	m := middleware.Timeout(0)

	_, err := m(context.Background(), &middleware.Invocation{Name: "free"}, func(ctx context.Context) (any, error) {
		if _, ok := ctx.Deadline(); ok {
			return nil, errors.New("unexpected deadline")
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
