package sim

import (
	"testing"
	"time"

	"github.com/san-kum/simlab/internal/dynamo"
)

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{"zero", Config{}, DefaultConfig()},
		{"negative dt", Config{Dt: -1, MaxFrameDelta: time.Second}, Config{Dt: DefaultDt, MaxFrameDelta: time.Second}},
		{"kept", Config{Dt: 0.005, MaxFrameDelta: time.Millisecond}, Config{Dt: 0.005, MaxFrameDelta: time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.normalize(); got != tt.want {
				t.Errorf("normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestObserverFunc(t *testing.T) {
	called := 0
	var o Observer = ObserverFunc(func(step int, tm float64, d dynamo.Diagnostics) { called += step })
	o.OnStep(3, 0, nil)
	if called != 3 {
		t.Errorf("called = %d", called)
	}
}
