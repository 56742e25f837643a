package modern

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/san-kum/kinesim/internal/entity"
	"github.com/san-kum/kinesim/internal/pose"
	"github.com/san-kum/kinesim/pkg/log"
)

type actuator struct {
	name     string
	pose     Pose
	axis     Vector3
	velocity float64
}

// World is a kinematic handle-addressed world. Actuators move along a
// fixed travel axis at their commanded velocity; there is no dynamics,
// only displacement integration.
type World struct {
	logger    log.Logger
	next      uint64
	actuators map[uint64]*actuator
}

// NewWorld builds an empty world.
func NewWorld(logger log.Logger) *World {
	if logger == nil {
		logger = log.Nop{}
	}
	return &World{
		logger:    logger,
		next:      1,
		actuators: make(map[uint64]*actuator),
	}
}

// Kind identifies this back-end.
func (w *World) Kind() string { return "modern" }

// Spawn registers an actuator at the given start pose with a travel
// axis and returns its handle-addressed ref.
func (w *World) Spawn(name string, start pose.Pose, axis r3.Vector) (entity.Ref, error) {
	if axis.Norm() == 0 {
		return entity.Ref{}, fmt.Errorf("modern: actuator %q needs a non-zero travel axis", name)
	}

	h := w.next
	w.next++
	w.actuators[h] = &actuator{
		name: name,
		pose: FromPose(start),
		axis: FromVector(axis.Normalize()),
	}

	w.logger.Debugf("modern: spawned %q as handle %d", name, h)
	return entity.ByHandle(h), nil
}

// State reads an actuator's pose (converted to the neutral
// representation) and current velocity.
func (w *World) State(ref entity.Ref) (pose.Pose, float64, error) {
	a, err := w.resolve(ref)
	if err != nil {
		return pose.Pose{}, 0, err
	}
	return ToPose(a.pose), a.velocity, nil
}

// Axis returns the actuator's unit travel axis in neutral terms.
func (w *World) Axis(ref entity.Ref) (r3.Vector, error) {
	a, err := w.resolve(ref)
	if err != nil {
		return r3.Vector{}, err
	}
	return ToVector(a.axis), nil
}

// Command sets the actuator's velocity for the next step.
func (w *World) Command(ref entity.Ref, v float64) error {
	a, err := w.resolve(ref)
	if err != nil {
		return err
	}
	a.velocity = v
	return nil
}

// Step advances every actuator along its axis by velocity*dt.
func (w *World) Step(dt float64) {
	for _, a := range w.actuators {
		a.pose.Position.X += a.axis.X * a.velocity * dt
		a.pose.Position.Y += a.axis.Y * a.velocity * dt
		a.pose.Position.Z += a.axis.Z * a.velocity * dt
	}
}

func (w *World) resolve(ref entity.Ref) (*actuator, error) {
	h, err := ref.Handle()
	if err != nil {
		w.logger.Warnf("modern: %v", err)
		return nil, err
	}
	a, ok := w.actuators[h]
	if !ok {
		return nil, fmt.Errorf("modern: unknown handle %d", h)
	}
	return a, nil
}
