// Package sim runs the per-tick drive loop: read actuator state,
// compute the remaining displacement to the goal, ask the motion
// profile for a bounded velocity, command it, advance the world.
package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/kinesim/internal/motion"
)

// Sample is one tick of the drive loop as seen by observers and
// metrics.
type Sample struct {
	T         float64
	Traveled  float64
	Remaining float64
	Velocity  float64
	Command   float64
	Phase     motion.Phase
}

// Observer receives every sample as the loop runs.
type Observer interface {
	OnStep(s Sample)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Goal is one move request: a signed displacement along the actuator's
// travel axis, the speed to hold en route, and the speed to arrive
// with.
type Goal struct {
	Displacement float64
	CruiseSpeed  float64
	DestSpeed    float64
}

func (g Goal) validate() error {
	if g.CruiseSpeed < 0 || math.IsNaN(g.CruiseSpeed) {
		return fmt.Errorf("sim: cruise speed must be non-negative, got %g", g.CruiseSpeed)
	}
	if g.DestSpeed < 0 || math.IsNaN(g.DestSpeed) {
		return fmt.Errorf("sim: destination speed must be non-negative, got %g", g.DestSpeed)
	}
	if math.IsNaN(g.Displacement) || math.IsInf(g.Displacement, 0) {
		return fmt.Errorf("sim: displacement must be finite, got %g", g.Displacement)
	}
	return nil
}

// Config controls one run of the loop.
type Config struct {
	Dt       float64
	Duration float64
	// StopWhenSettled ends the run once the actuator is inside the
	// tolerance band with the loop commanding the destination speed.
	StopWhenSettled bool
}

func (c Config) validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) {
		return fmt.Errorf("sim: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 || math.IsNaN(c.Duration) {
		return fmt.Errorf("sim: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// Result is the recorded trace of a run.
type Result struct {
	Times      []float64
	Traveled   []float64
	Velocities []float64
	Commands   []float64
	Phases     []motion.Phase
	Metrics    map[string]float64

	Settled   bool
	SettledAt float64
}
