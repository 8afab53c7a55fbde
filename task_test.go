package conveyor

import (
	"context"
	"strings"
	"testing"
)

func reportTask(_ context.Context) (any, error) { return "report", nil }

func TestFunc_NameFromSymbol(t *testing.T) {
	name, invoke := Func(reportTask).normalize()
	if name != "reportTask" {
		t.Errorf("name = %q, want %q", name, "reportTask")
	}

	resp, err := invoke(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "report" {
		t.Errorf("response = %v, want %q", resp, "report")
	}
}

func TestFunc_ClosureNameCarriesSuffix(t *testing.T) {
	f := Func(func(_ context.Context) (any, error) { return nil, nil })

	name, _ := f.normalize()
	if !strings.Contains(name, "func") {
		t.Errorf("closure name = %q, want a funcN suffix", name)
	}
}

func TestFunc_NilHasNoName(t *testing.T) {
	name, _ := Func(nil).normalize()
	if name != "" {
		t.Errorf("name = %q, want empty for nil func", name)
	}
}

func TestNamed_Normalize(t *testing.T) {
	n := Named{Name: "cleanup", Run: func(_ context.Context) (any, error) { return 7, nil }}

	name, invoke := n.normalize()
	if name != "cleanup" {
		t.Errorf("name = %q, want %q", name, "cleanup")
	}
	resp, err := invoke(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != 7 {
		t.Errorf("response = %v, want 7", resp)
	}
}
