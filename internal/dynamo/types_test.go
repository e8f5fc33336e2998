package dynamo

import (
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	if n := (State{3, 4}).Norm(); n != 5 {
		t.Errorf("Norm = %v, want 5", n)
	}
}

func TestRecover(t *testing.T) {
	next := State{math.NaN(), 2, math.Inf(1)}
	prev := State{0.5, 1, math.NaN()}
	fallback := State{9, 9, 7}

	got, n := Recover(next, prev, fallback)
	if n != 2 {
		t.Fatalf("expected 2 recovered dimensions, got %d", n)
	}
	if got[0] != 0.5 || got[1] != 2 || got[2] != 7 {
		t.Errorf("Recover = %v", got)
	}
	if !got.IsValid() {
		t.Error("recovered state still invalid")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(math.NaN(), 1, 2) != 1 {
		t.Error("NaN should clamp to lower bound")
	}
	if Clamp(5, 1, 2) != 2 || Clamp(-5, 1, 2) != 1 || Clamp(1.5, 1, 2) != 1.5 {
		t.Error("Clamp bounds wrong")
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
