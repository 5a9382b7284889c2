package engine

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/spinlab/internal/analysis"
	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/thermal"
)

// SinkNone suppresses the end-of-run flush entirely.
const SinkNone = "none"

// Observable selects which reduction each trace line carries.
type Observable int

const (
	// ObservableSpins records the raw spin components of the probe sites.
	ObservableSpins Observable = iota
	// ObservableMagnetization records the aggregate magnetization
	// components and norm.
	ObservableMagnetization
	// ObservableSusceptibility records the nine covariance components.
	ObservableSusceptibility
	// ObservableTemperatures records the three bath temperatures.
	ObservableTemperatures
)

func (o Observable) String() string {
	switch o {
	case ObservableSpins:
		return "spins"
	case ObservableMagnetization:
		return "magnetization"
	case ObservableSusceptibility:
		return "susceptibility"
	case ObservableTemperatures:
		return "temperatures"
	default:
		return fmt.Sprintf("Observable(%d)", int(o))
	}
}

// ParseObservable maps a configuration name to an observable.
func ParseObservable(name string) (Observable, error) {
	switch name {
	case "spins":
		return ObservableSpins, nil
	case "magnetization":
		return ObservableMagnetization, nil
	case "susceptibility":
		return ObservableSusceptibility, nil
	case "temperatures":
		return ObservableTemperatures, nil
	default:
		return 0, fmt.Errorf("engine: unsupported observable %q", name)
	}
}

// Recorder accumulates one space-separated diagnostic line per step in
// memory and flushes once at run end. There is no file I/O inside the
// hot loop.
type Recorder struct {
	observable Observable
	probes     []int
	sink       string
	buf        bytes.Buffer
	lines      int
}

// NewRecorder builds a recorder writing to the named sink at flush time.
// The sink name "none" (or empty) suppresses output. probes selects the
// sites reported by the spins observable.
func NewRecorder(observable Observable, probes []int, sink string) *Recorder {
	return &Recorder{observable: observable, probes: probes, sink: sink}
}

// Record appends one line for the current step.
func (r *Recorder) Record(t float64, sites []spin.Site) {
	fmt.Fprintf(&r.buf, "%e", t)
	switch r.observable {
	case ObservableSpins:
		for _, p := range r.probes {
			if p < 0 || p >= len(sites) {
				continue
			}
			s := sites[p].Moments.Spin
			fmt.Fprintf(&r.buf, " %f %f %f", s.X, s.Y, s.Z)
		}
	case ObservableMagnetization:
		m := analysis.Magnetization(sites)
		fmt.Fprintf(&r.buf, " %f %f %f %f", m.X, m.Y, m.Z, m.Norm())
	case ObservableSusceptibility:
		chi := analysis.Susceptibility(sites)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				fmt.Fprintf(&r.buf, " %e", chi[i][j])
			}
		}
	}
	r.buf.WriteByte('\n')
	r.lines++
}

// RecordBath appends one temperature-trace line.
func (r *Recorder) RecordBath(t float64, s thermal.State) {
	fmt.Fprintf(&r.buf, "%e %f %f %f\n", t, s.Electron, s.Phonon, s.Spin)
	r.lines++
}

// Lines reports how many trace lines have been recorded.
func (r *Recorder) Lines() int { return r.lines }

// Observable reports what each line carries.
func (r *Recorder) Observable() Observable { return r.observable }

// Content returns the accumulated trace text.
func (r *Recorder) Content() string { return r.buf.String() }

// Rows parses the accumulated trace back into float columns.
func (r *Recorder) Rows() [][]float64 {
	var rows [][]float64
	for _, line := range strings.Split(strings.TrimSpace(r.buf.String()), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			fmt.Sscanf(f, "%g", &row[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// Flush writes the trace to the sink. A "none" sink discards it.
func (r *Recorder) Flush() error {
	if r.sink == "" || r.sink == SinkNone {
		return nil
	}
	if err := os.WriteFile(r.sink, r.buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("engine: flushing trace to %s: %w", r.sink, err)
	}
	return nil
}
