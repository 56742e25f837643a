// Package metrics provides run metrics for the drive loop: scalar
// summaries accumulated sample by sample.
package metrics

import (
	"math"

	"github.com/san-kum/kinesim/internal/sim"
)

// PeakSpeed records the largest commanded speed magnitude.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(s sim.Sample) {
	if v := math.Abs(s.Command); v > p.peak {
		p.peak = v
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// CommandEffort averages the commanded speed magnitude over the run.
type CommandEffort struct {
	sum     float64
	samples int
}

func NewCommandEffort() *CommandEffort { return &CommandEffort{} }

func (c *CommandEffort) Name() string { return "command_effort" }

func (c *CommandEffort) Observe(s sim.Sample) {
	c.sum += math.Abs(s.Command)
	c.samples++
}

func (c *CommandEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *CommandEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// Overshoot records how far the actuator traveled past the goal, in
// displacement units. Zero when the goal was never crossed.
type Overshoot struct {
	worst float64
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s sim.Sample) {
	// Remaining flips sign against the goal displacement once the goal
	// is crossed; its magnitude on the far side is the overshoot.
	goal := s.Traveled + s.Remaining
	if goal*s.Remaining < 0 {
		if d := math.Abs(s.Remaining); d > o.worst {
			o.worst = d
		}
	}
}

func (o *Overshoot) Value() float64 { return o.worst }
func (o *Overshoot) Reset()         { o.worst = 0 }

// SettlingTime records when the actuator first entered the arrived
// band and stayed there. Value is -1 if it never settled.
type SettlingTime struct {
	tolerance float64
	settledAt float64
	settled   bool
}

// NewSettlingTime uses the same displacement tolerance as the motion
// params driving the run.
func NewSettlingTime(tolerance float64) *SettlingTime {
	return &SettlingTime{tolerance: tolerance, settledAt: -1}
}

func (s *SettlingTime) Name() string { return "settling_time" }

func (s *SettlingTime) Observe(sample sim.Sample) {
	inside := math.Abs(sample.Remaining) < s.tolerance
	if inside && !s.settled {
		s.settled = true
		s.settledAt = sample.T
	} else if !inside && s.settled {
		// Left the band again: the earlier entry was not a settle.
		s.settled = false
		s.settledAt = -1
	}
}

func (s *SettlingTime) Value() float64 { return s.settledAt }

func (s *SettlingTime) Reset() {
	s.settled = false
	s.settledAt = -1
}
