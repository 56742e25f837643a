package storage

import (
	"encoding/json"
	"io"
)

// ExportData is the full-trace JSON form of a stored run, for
// downstream analysis outside kinesim.
type ExportData struct {
	ID           string             `json:"id"`
	Backend      string             `json:"backend"`
	Actuator     string             `json:"actuator"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Displacement float64            `json:"displacement"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	Traveled     []float64          `json:"traveled"`
	Velocities   []float64          `json:"velocities"`
	Commands     []float64          `json:"commands"`
	Phases       []string           `json:"phases"`
	Metrics      map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's metadata and full trace as one JSON
// document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:           meta.ID,
		Backend:      meta.Backend,
		Actuator:     meta.Actuator,
		Dt:           meta.Dt,
		Duration:     meta.Duration,
		Displacement: meta.Displacement,
		Steps:        len(trace.Times),
		Times:        trace.Times,
		Traveled:     trace.Traveled,
		Velocities:   trace.Velocities,
		Commands:     trace.Commands,
		Phases:       trace.Phases,
		Metrics:      meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
