package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/kinesim/internal/sim"
)

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed()
	for _, cmd := range []float64{0.05, -0.18, 0.1} {
		m.Observe(sim.Sample{Command: cmd})
	}
	if m.Value() != 0.18 {
		t.Errorf("peak = %g, want 0.18", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("after reset peak = %g, want 0", m.Value())
	}
}

func TestCommandEffort(t *testing.T) {
	m := NewCommandEffort()
	if m.Value() != 0 {
		t.Error("empty metric should read 0")
	}

	for _, cmd := range []float64{0.1, -0.1, 0.4} {
		m.Observe(sim.Sample{Command: cmd})
	}
	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("effort = %g, want 0.2", m.Value())
	}
}

func TestOvershoot(t *testing.T) {
	m := NewOvershoot()

	// Approaching: no overshoot recorded.
	m.Observe(sim.Sample{Traveled: 0.8, Remaining: 0.2})
	if m.Value() != 0 {
		t.Errorf("no crossing yet, got %g", m.Value())
	}

	// Past the goal by 0.03.
	m.Observe(sim.Sample{Traveled: 1.03, Remaining: -0.03})
	if math.Abs(m.Value()-0.03) > 1e-12 {
		t.Errorf("overshoot = %g, want 0.03", m.Value())
	}

	// Negative-direction goal, past by 0.01: keeps the worst case.
	m.Observe(sim.Sample{Traveled: -0.51, Remaining: 0.01})
	if math.Abs(m.Value()-0.03) > 1e-12 {
		t.Errorf("overshoot = %g, want 0.03 kept", m.Value())
	}
}

func TestSettlingTime(t *testing.T) {
	m := NewSettlingTime(0.01)

	if m.Value() != -1 {
		t.Error("unsettled metric should read -1")
	}

	m.Observe(sim.Sample{T: 1.0, Remaining: 0.5})
	m.Observe(sim.Sample{T: 2.0, Remaining: 0.005})
	if m.Value() != 2.0 {
		t.Errorf("settled at %g, want 2.0", m.Value())
	}

	// Leaving the band invalidates the settle.
	m.Observe(sim.Sample{T: 3.0, Remaining: 0.05})
	if m.Value() != -1 {
		t.Errorf("after leaving band, value = %g, want -1", m.Value())
	}

	m.Observe(sim.Sample{T: 4.0, Remaining: 0.002})
	if m.Value() != 4.0 {
		t.Errorf("re-settled at %g, want 4.0", m.Value())
	}
}
