package classic

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/san-kum/kinesim/internal/entity"
	"github.com/san-kum/kinesim/internal/pose"
	"github.com/san-kum/kinesim/pkg/log"
)

type actuator struct {
	pose     Pose
	axis     Vec
	velocity float64
}

// World is a kinematic name-addressed world. Registration names are
// sanitized the way the transport layer expects node names.
type World struct {
	logger    log.Logger
	actuators map[string]*actuator
}

// NewWorld builds an empty world.
func NewWorld(logger log.Logger) *World {
	if logger == nil {
		logger = log.Nop{}
	}
	return &World{
		logger:    logger,
		actuators: make(map[string]*actuator),
	}
}

// Kind identifies this back-end.
func (w *World) Kind() string { return "classic" }

// Spawn registers an actuator under its sanitized name and returns its
// name-addressed ref.
func (w *World) Spawn(name string, start pose.Pose, axis r3.Vector) (entity.Ref, error) {
	if axis.Norm() == 0 {
		return entity.Ref{}, fmt.Errorf("classic: actuator %q needs a non-zero travel axis", name)
	}

	clean := SanitizeNodeName(name)
	if clean == "" {
		return entity.Ref{}, fmt.Errorf("classic: %q sanitizes to an empty name", name)
	}
	if _, exists := w.actuators[clean]; exists {
		return entity.Ref{}, fmt.Errorf("classic: name %q already registered", clean)
	}

	w.actuators[clean] = &actuator{
		pose: FromPose(start),
		axis: FromVector(axis.Normalize()),
	}

	w.logger.Debugf("classic: spawned %q", clean)
	return entity.ByName(clean), nil
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
		for i := range a.pose.Pos {
			a.pose.Pos[i] += a.axis[i] * a.velocity * dt
		}
	}
}

func (w *World) resolve(ref entity.Ref) (*actuator, error) {
	n, err := ref.Name()
	if err != nil {
		w.logger.Warnf("classic: %v", err)
		return nil, err
	}
	a, ok := w.actuators[n]
	if !ok {
		return nil, fmt.Errorf("classic: unknown name %q", n)
	}
	return a, nil
}
