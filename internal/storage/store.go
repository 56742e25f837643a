package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/kinesim/internal/sim"
)

// Store persists drive runs as one directory per run: metadata.json
// plus a trace.csv of the per-tick samples.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one stored run.
type RunMetadata struct {
	ID           string             `json:"id"`
	Backend      string             `json:"backend"`
	Actuator     string             `json:"actuator"`
	Timestamp    time.Time          `json:"timestamp"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Displacement float64            `json:"displacement"`
	Settled      bool               `json:"settled"`
	SettledAt    float64            `json:"settled_at"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes the run and returns its generated id.
func (s *Store) Save(backendKind, actuator string, dt, duration, displacement float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", backendKind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Backend:      backendKind,
		Actuator:     actuator,
		Timestamp:    time.Now(),
		Dt:           dt,
		Duration:     duration,
		Displacement: displacement,
		Settled:      result.Settled,
		SettledAt:    result.SettledAt,
		Metrics:      result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "traveled", "velocity", "command", "phase"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Traveled[i], 'f', 6, 64),
			strconv.FormatFloat(result.Velocities[i], 'f', 6, 64),
			strconv.FormatFloat(result.Commands[i], 'f', 6, 64),
			result.Phases[i].String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Trace holds the numeric columns of a stored run.
type Trace struct {
	Times      []float64
	Traveled   []float64
	Velocities []float64
	Commands   []float64
	Phases     []string
}

// LoadTrace reads back the per-tick samples of a run.
func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := &Trace{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		u, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}

		trace.Times = append(trace.Times, t)
		trace.Traveled = append(trace.Traveled, x)
		trace.Velocities = append(trace.Velocities, v)
		trace.Commands = append(trace.Commands, u)
		trace.Phases = append(trace.Phases, record[4])
	}

	return trace, nil
}
