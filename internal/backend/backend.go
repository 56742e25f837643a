// Package backend selects between the two simulated back-ends. Both
// worlds expose the same surface over different native pose types and
// addressing schemes, so the drive loop is written once against the
// World interface.
package backend

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/san-kum/kinesim/internal/backend/classic"
	"github.com/san-kum/kinesim/internal/backend/modern"
	"github.com/san-kum/kinesim/internal/entity"
	"github.com/san-kum/kinesim/internal/pose"
	"github.com/san-kum/kinesim/pkg/log"
)

// World is the surface the drive loop needs from a back-end: spawn an
// actuator, read its state in neutral terms, command a velocity, and
// advance time.
type World interface {
	Kind() string
	Spawn(name string, start pose.Pose, axis r3.Vector) (entity.Ref, error)
	State(ref entity.Ref) (pose.Pose, float64, error)
	Axis(ref entity.Ref) (r3.Vector, error)
	Command(ref entity.Ref, velocity float64) error
	Step(dt float64)
}

var _ World = (*modern.World)(nil)
var _ World = (*classic.World)(nil)

// Select returns the world for the named back-end: "modern"
// (handle-addressed) or "classic" (name-addressed).
func Select(kind string, logger log.Logger) (World, error) {
	switch kind {
	case "modern":
		return modern.NewWorld(logger), nil
	case "classic":
		return classic.NewWorld(logger), nil
	default:
		return nil, fmt.Errorf("backend: unknown back-end %q (want modern or classic)", kind)
	}
}

// Kinds lists the available back-ends.
func Kinds() []string {
	return []string{"modern", "classic"}
}
