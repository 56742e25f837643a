// Package response builds the stamped status messages the drive loop
// emits about its actuators. The wire format belongs to the transport
// layer; this package only assembles and timestamps the value.
package response

import (
	"fmt"
	"time"
)

// Status codes carried by a response.
const (
	StatusQueued uint8 = iota
	StatusInProgress
	StatusCompleted
	StatusFailed
)

// Clock converts a simulated-time scalar (seconds since simulation
// start) into the timestamp representation the transport expects.
// Injected so the factory stays pure and testable.
type Clock interface {
	At(simTime float64) time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func(simTime float64) time.Time

func (f ClockFunc) At(simTime float64) time.Time { return f(simTime) }

// EpochClock maps simulated seconds onto a fixed wall-clock epoch.
func EpochClock(epoch time.Time) Clock {
	return ClockFunc(func(simTime float64) time.Time {
		return epoch.Add(time.Duration(simTime * float64(time.Second)))
	})
}

// Response is one stamped outbound status message.
type Response struct {
	Status      uint8
	Time        time.Time
	RequestGUID string
	SourceGUID  string
}

// Factory stamps responses using an injected clock.
type Factory struct {
	clock Clock
}

// NewFactory builds a factory around the given clock.
func NewFactory(clock Clock) (*Factory, error) {
	if clock == nil {
		return nil, fmt.Errorf("response: clock must not be nil")
	}
	return &Factory{clock: clock}, nil
}

// New assembles a response for the given status at the given simulated
// time, correlated to the request and tagged with the source actuator.
func (f *Factory) New(status uint8, simTime float64, requestGUID, sourceGUID string) Response {
	return Response{
		Status:      status,
		Time:        f.clock.At(simTime),
		RequestGUID: requestGUID,
		SourceGUID:  sourceGUID,
	}
}
