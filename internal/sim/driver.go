package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/kinesim/internal/backend"
	"github.com/san-kum/kinesim/internal/entity"
	"github.com/san-kum/kinesim/internal/motion"
	"github.com/san-kum/kinesim/pkg/log"
)

// Driver owns one actuator's control loop against a world.
type Driver struct {
	world     backend.World
	ref       entity.Ref
	params    motion.Params
	logger    log.Logger
	metrics   []Metric
	observers []Observer
}

// New builds a driver. The params are validated on the first call to
// Run so a bad configuration fails before any command is issued.
func New(world backend.World, ref entity.Ref, params motion.Params, logger log.Logger) *Driver {
	if logger == nil {
		logger = log.Nop{}
	}
	return &Driver{
		world:  world,
		ref:    ref,
		params: params,
		logger: logger,
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Ref returns the identity of the driven actuator.
func (d *Driver) Ref() entity.Ref { return d.ref }

// Run drives the actuator toward the goal displacement, recording the
// full trace. The loop runs for cfg.Duration or, with StopWhenSettled,
// until the actuator settles inside the tolerance band.
func (d *Driver) Run(ctx context.Context, goal Goal, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := goal.validate(); err != nil {
		return nil, err
	}
	if err := d.params.Validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:      make([]float64, 0, steps),
		Traveled:   make([]float64, 0, steps),
		Velocities: make([]float64, 0, steps),
		Commands:   make([]float64, 0, steps),
		Phases:     make([]motion.Phase, 0, steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	err := d.loop(ctx, goal, cfg, steps, func(s Sample) bool {
		result.Times = append(result.Times, s.T)
		result.Traveled = append(result.Traveled, s.Traveled)
		result.Velocities = append(result.Velocities, s.Velocity)
		result.Commands = append(result.Commands, s.Command)
		result.Phases = append(result.Phases, s.Phase)

		if !result.Settled && settled(s, goal, d.params) {
			result.Settled = true
			result.SettledAt = s.T
			d.logger.Debugf("sim: %s settled at t=%.3f", d.ref, s.T)
			if cfg.StopWhenSettled {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback drives the actuator and hands every sample to the
// callback; returning false stops the run. No trace is recorded.
func (d *Driver) RunWithCallback(ctx context.Context, goal Goal, cfg Config, callback func(Sample) bool) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if err := goal.validate(); err != nil {
		return err
	}
	if err := d.params.Validate(); err != nil {
		return err
	}

	steps := int(cfg.Duration / cfg.Dt)
	return d.loop(ctx, goal, cfg, steps, callback)
}

func (d *Driver) loop(ctx context.Context, goal Goal, cfg Config, steps int, sink func(Sample) bool) error {
	origin, _, err := d.world.State(d.ref)
	if err != nil {
		return fmt.Errorf("sim: reading start state: %w", err)
	}
	axis, err := d.world.Axis(d.ref)
	if err != nil {
		return fmt.Errorf("sim: reading travel axis: %w", err)
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p, v, err := d.world.State(d.ref)
		if err != nil {
			return err
		}

		traveled := p.Translation.Sub(origin.Translation).Dot(axis)
		remaining := goal.Displacement - traveled

		cmd, err := motion.DesiredVelocity(remaining, v, goal.CruiseSpeed, goal.DestSpeed, d.params, cfg.Dt)
		if err != nil {
			return err
		}

		s := Sample{
			T:         t,
			Traveled:  traveled,
			Remaining: remaining,
			Velocity:  v,
			Command:   cmd,
			Phase:     motion.DesiredPhase(remaining, v, goal.DestSpeed, d.params),
		}

		for _, m := range d.metrics {
			m.Observe(s)
		}
		for _, obs := range d.observers {
			obs.OnStep(s)
		}

		if err := d.world.Command(d.ref, cmd); err != nil {
			return err
		}
		d.world.Step(cfg.Dt)
		t += cfg.Dt

		if !sink(s) {
			return nil
		}
	}

	return nil
}

// settled means inside the tolerance band with the command already on
// the destination speed.
func settled(s Sample, goal Goal, p motion.Params) bool {
	return math.Abs(s.Remaining) < p.DxMin &&
		math.Abs(math.Abs(s.Command)-goal.DestSpeed) < 1e-9
}
