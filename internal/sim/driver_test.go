package sim

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/san-kum/kinesim/internal/backend"
	"github.com/san-kum/kinesim/internal/motion"
	"github.com/san-kum/kinesim/internal/pose"
)

func newTestDriver(t *testing.T, kind string) *Driver {
	t.Helper()
	world, err := backend.Select(kind, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := world.Spawn("cart", pose.Identity(), r3.Vector{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	return New(world, ref, motion.DefaultParams(), nil)
}

func TestDriverReachesGoal(t *testing.T) {
	for _, kind := range backend.Kinds() {
		t.Run(kind, func(t *testing.T) {
			d := newTestDriver(t, kind)

			goal := Goal{Displacement: 0.5, CruiseSpeed: 0.2}
			cfg := Config{Dt: 0.01, Duration: 60, StopWhenSettled: true}

			result, err := d.Run(context.Background(), goal, cfg)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if !result.Settled {
				t.Fatal("driver never settled")
			}

			final := result.Traveled[len(result.Traveled)-1]
			if math.Abs(goal.Displacement-final) > motion.DefaultParams().DxMin+1e-9 {
				t.Errorf("stopped at %g, want within tolerance of %g", final, goal.Displacement)
			}

			for i, v := range result.Commands {
				if math.Abs(v) > 0.2+1e-12 {
					t.Fatalf("command %d exceeds v_max: %g", i, v)
				}
			}
		})
	}
}

func TestDriverNegativeGoal(t *testing.T) {
	d := newTestDriver(t, "modern")

	result, err := d.Run(context.Background(),
		Goal{Displacement: -0.3, CruiseSpeed: 0.2},
		Config{Dt: 0.01, Duration: 60, StopWhenSettled: true})
	if err != nil {
		t.Fatal(err)
	}

	if !result.Settled {
		t.Fatal("driver never settled")
	}
	final := result.Traveled[len(result.Traveled)-1]
	if math.Abs(final+0.3) > motion.DefaultParams().DxMin+1e-9 {
		t.Errorf("stopped at %g, want near -0.3", final)
	}
}

func TestDriverPhaseSequence(t *testing.T) {
	// A full move passes cruise -> brake -> arrived in that order.
	d := newTestDriver(t, "classic")

	result, err := d.Run(context.Background(),
		Goal{Displacement: 1.0, CruiseSpeed: 0.2},
		Config{Dt: 0.01, Duration: 60, StopWhenSettled: true})
	if err != nil {
		t.Fatal(err)
	}

	if result.Phases[0] != motion.CruisePhase {
		t.Errorf("first phase = %v, want cruise", result.Phases[0])
	}
	last := result.Phases[len(result.Phases)-1]
	if last != motion.ArrivedPhase {
		t.Errorf("last phase = %v, want arrived", last)
	}

	sawBrake := false
	for i := 1; i < len(result.Phases); i++ {
		if result.Phases[i] == motion.BrakePhase {
			sawBrake = true
		}
		if result.Phases[i-1] == motion.ArrivedPhase && result.Phases[i] == motion.CruisePhase {
			t.Fatalf("phase regressed from arrived to cruise at step %d", i)
		}
	}
	if !sawBrake {
		t.Error("never entered the braking phase")
	}
}

func TestDriverRejectsBadConfig(t *testing.T) {
	d := newTestDriver(t, "modern")

	cases := []struct {
		name string
		goal Goal
		cfg  Config
	}{
		{"zero dt", Goal{Displacement: 1, CruiseSpeed: 0.2}, Config{Dt: 0, Duration: 1}},
		{"zero duration", Goal{Displacement: 1, CruiseSpeed: 0.2}, Config{Dt: 0.01, Duration: 0}},
		{"negative cruise", Goal{Displacement: 1, CruiseSpeed: -0.1}, Config{Dt: 0.01, Duration: 1}},
		{"NaN displacement", Goal{Displacement: math.NaN(), CruiseSpeed: 0.2}, Config{Dt: 0.01, Duration: 1}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.Run(context.Background(), tt.goal, tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDriverRejectsBadParams(t *testing.T) {
	world, _ := backend.Select("modern", nil)
	ref, _ := world.Spawn("cart", pose.Identity(), r3.Vector{X: 1})
	d := New(world, ref, motion.Params{VMax: -1, AMax: 0.1, ANom: 0.08}, nil)

	_, err := d.Run(context.Background(),
		Goal{Displacement: 1, CruiseSpeed: 0.2},
		Config{Dt: 0.01, Duration: 1})
	if err == nil {
		t.Error("invalid params should be rejected before the loop starts")
	}
}

func TestDriverContextCancellation(t *testing.T) {
	d := newTestDriver(t, "modern")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, Goal{Displacement: 1, CruiseSpeed: 0.2}, Config{Dt: 0.01, Duration: 10})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDriverCallbackStops(t *testing.T) {
	d := newTestDriver(t, "classic")

	count := 0
	err := d.RunWithCallback(context.Background(),
		Goal{Displacement: 1, CruiseSpeed: 0.2},
		Config{Dt: 0.01, Duration: 10},
		func(s Sample) bool {
			count++
			return count < 5
		})
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("callback called %d times, want 5", count)
	}
}
