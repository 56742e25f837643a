package storage

import (
	"testing"

	"github.com/san-kum/kinesim/internal/motion"
	"github.com/san-kum/kinesim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times:      []float64{0, 0.01, 0.02},
		Traveled:   []float64{0, 0.0001, 0.0003},
		Velocities: []float64{0, 0.001, 0.002},
		Commands:   []float64{0.001, 0.002, 0.003},
		Phases:     []motion.Phase{motion.CruisePhase, motion.CruisePhase, motion.BrakePhase},
		Metrics:    map[string]float64{"peak_speed": 0.003},
		Settled:    true,
		SettledAt:  0.02,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("modern", "cart_1", 0.01, 30, 0.5, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Backend != "modern" || meta.Actuator != "cart_1" {
		t.Errorf("metadata wrong: %+v", meta)
	}
	if !meta.Settled || meta.SettledAt != 0.02 {
		t.Errorf("settle info lost: %+v", meta)
	}
	if meta.Metrics["peak_speed"] != 0.003 {
		t.Errorf("metrics lost: %v", meta.Metrics)
	}
}

func TestLoadTrace(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("classic", "cart_1", 0.01, 30, 0.5, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(trace.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(trace.Times))
	}
	if trace.Commands[2] != 0.003 {
		t.Errorf("command[2] = %g, want 0.003", trace.Commands[2])
	}
	if trace.Phases[2] != "brake" {
		t.Errorf("phase[2] = %q, want brake", trace.Phases[2])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store should be empty, got %d runs", len(runs))
	}

	if _, err := st.Save("modern", "cart_1", 0.01, 30, 0.5, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}
