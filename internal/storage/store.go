// Package storage persists runs: one directory per run holding a
// metadata document and the raw diagnostic trace.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"` // "moments" or "laser"
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Integrator  string             `json:"integrator"`
	Thermostat  string             `json:"thermostat"`
	Observable  string             `json:"observable"`
	Temperature float64            `json:"temperature"`
	Alpha       float64            `json:"alpha"`
	Final       map[string]float64 `json:"final"`
}

// Save writes metadata.json and trace.dat under a fresh run directory and
// returns the run ID.
func (s *Store) Save(meta RunMetadata, trace string) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Kind, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("storage: encoding metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "metadata.json"), data, 0644); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(runDir, "trace.dat"), []byte(trace), 0644); err != nil {
		return "", err
	}

	return runID, nil
}

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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decoding metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace parses the stored trace into float columns, one row per step.
func (s *Store) LoadTrace(runID string) ([][]float64, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "trace.dat"))
	if err != nil {
		return nil, err
	}

	var rows [][]float64
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: trace %s: %w", runID, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
