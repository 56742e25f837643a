// Package motion implements the kinematic motion-profile controller.
// Each tick it turns a remaining displacement and current velocity into
// a bounded velocity command: accelerate toward the cruise speed while
// far from the goal, then decelerate so the destination speed is reached
// without overshoot.
package motion

import (
	"fmt"
	"math"
)

// Phase labels the controller's state for a given tick.
type Phase int

const (
	// CruisePhase accelerates or holds speed toward the cruise target.
	CruisePhase Phase = iota
	// BrakePhase decelerates toward the destination target speed.
	BrakePhase
	// ArrivedPhase settles inside the DxMin tolerance band.
	ArrivedPhase
)

func (p Phase) String() string {
	switch p {
	case CruisePhase:
		return "cruise"
	case BrakePhase:
		return "brake"
	case ArrivedPhase:
		return "arrived"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Params holds the kinematic limits for one actuator. Immutable once
// validated; construct with NewParams or call Validate before use.
type Params struct {
	VMax  float64 `yaml:"v_max"`  // maximum speed magnitude
	AMax  float64 `yaml:"a_max"`  // acceleration bound in the cruise phase
	ANom  float64 `yaml:"a_nom"`  // deceleration bound when approaching the destination
	DxMin float64 `yaml:"dx_min"` // displacement tolerance for "arrived"
}

// DefaultParams mirrors the conventional slow-indoor-platform limits.
func DefaultParams() Params {
	return Params{VMax: 0.2, AMax: 0.1, ANom: 0.08, DxMin: 0.01}
}

// NewParams validates and returns a Params value.
func NewParams(vMax, aMax, aNom, dxMin float64) (Params, error) {
	p := Params{VMax: vMax, AMax: aMax, ANom: aNom, DxMin: dxMin}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate rejects limits that would make the controller divide by zero
// or command unbounded velocities.
func (p Params) Validate() error {
	if p.VMax <= 0 || math.IsNaN(p.VMax) {
		return fmt.Errorf("motion: v_max must be positive, got %g", p.VMax)
	}
	if p.AMax <= 0 || math.IsNaN(p.AMax) {
		return fmt.Errorf("motion: a_max must be positive, got %g", p.AMax)
	}
	if p.ANom <= 0 || math.IsNaN(p.ANom) {
		return fmt.Errorf("motion: a_nom must be positive, got %g", p.ANom)
	}
	if p.DxMin < 0 || math.IsNaN(p.DxMin) {
		return fmt.Errorf("motion: dx_min must be non-negative, got %g", p.DxMin)
	}
	return nil
}

// DesiredVelocity computes the next tick's velocity command.
//
// remaining is the signed displacement still to travel, current the
// actuator's velocity along the same axis. cruiseTarget is the speed to
// hold while far from the destination, destTarget the speed to approach
// as the destination nears (zero to stop). The result keeps the sign of
// remaining, never exceeds VMax in magnitude, and differs from current
// by at most the applicable acceleration bound times dt.
func DesiredVelocity(remaining, current, cruiseTarget, destTarget float64, p Params, dt float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if dt <= 0 || math.IsNaN(dt) {
		return 0, fmt.Errorf("motion: dt must be positive, got %g", dt)
	}

	v, _ := step(remaining, current, cruiseTarget, destTarget, p, dt)
	return v, nil
}

// DesiredPhase reports which phase the controller is in for the given
// inputs, using the same transition tests as DesiredVelocity.
func DesiredPhase(remaining, current, destTarget float64, p Params) Phase {
	if math.Abs(remaining) < p.DxMin {
		return ArrivedPhase
	}
	if math.Abs(remaining) <= brakingDistance(current, destTarget, p.ANom) {
		return BrakePhase
	}
	return CruisePhase
}

// brakingDistance is the distance needed to move from speed v to speed
// vDest under constant deceleration a: d = (v² − vDest²) / (2a).
func brakingDistance(v, vDest, a float64) float64 {
	d := (v*v - vDest*vDest) / (2 * a)
	if d < 0 {
		return 0
	}
	return d
}

func step(remaining, current, cruiseTarget, destTarget float64, p Params, dt float64) (float64, Phase) {
	dir := sign(remaining)

	// Inside the tolerance band: settle onto the destination speed,
	// limited by the nominal deceleration, instead of oscillating
	// around the band edge.
	if math.Abs(remaining) < p.DxMin {
		vNext := approach(current, dir*destTarget, p.ANom*dt)
		return clamp(vNext, -p.VMax, p.VMax), ArrivedPhase
	}

	// Velocities resolved along the direction of travel. A negative
	// vAlong means the actuator is moving away from the destination.
	vAlong := dir * current

	if math.Abs(remaining) <= brakingDistance(vAlong, destTarget, p.ANom) {
		// Braking: close on destTarget without crossing past it.
		vNext := approach(vAlong, destTarget, p.ANom*dt)
		return dir * clamp(vNext, -p.VMax, p.VMax), BrakePhase
	}

	// Cruise: move toward the cruise speed under the a_max bound.
	vNext := approach(vAlong, cruiseTarget, p.AMax*dt)
	return dir * clamp(vNext, -p.VMax, p.VMax), CruisePhase
}

// approach moves v toward target by at most maxDelta, never crossing it.
func approach(v, target, maxDelta float64) float64 {
	switch {
	case v < target:
		return math.Min(v+maxDelta, target)
	case v > target:
		return math.Max(v-maxDelta, target)
	default:
		return v
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
