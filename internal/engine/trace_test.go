package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/thermal"
	"github.com/san-kum/spinlab/internal/vecmat"
)

func traceSites() []spin.Site {
	a := spin.NewSite("a", 0, spin.Params{G: 2}, vecmat.Vector3{}, vecmat.New(1, 0, 0))
	b := spin.NewSite("b", 0, spin.Params{G: 2}, vecmat.Vector3{}, vecmat.New(0, 0, 1))
	return []spin.Site{a, b}
}

func TestRecordSpins(t *testing.T) {
	r := NewRecorder(ObservableSpins, []int{0, 1}, SinkNone)
	r.Record(1e-12, traceSites())

	line := strings.TrimSpace(r.Content())
	fieldCount := len(strings.Fields(line))
	if fieldCount != 1+2*3 {
		t.Errorf("field count = %d, want 7: %q", fieldCount, line)
	}
}

func TestRecordMagnetization(t *testing.T) {
	r := NewRecorder(ObservableMagnetization, nil, SinkNone)
	r.Record(0.5e-12, traceSites())

	rows := r.Rows()
	if len(rows) != 1 || len(rows[0]) != 5 {
		t.Fatalf("rows = %v", rows)
	}
	// two unit spins along x and z with equal weight
	if rows[0][1] != 0.5 || rows[0][3] != 0.5 {
		t.Errorf("magnetization components = %v", rows[0])
	}
}

func TestRecordSusceptibilityWidth(t *testing.T) {
	r := NewRecorder(ObservableSusceptibility, nil, SinkNone)
	r.Record(1e-12, traceSites())

	if got := len(strings.Fields(strings.TrimSpace(r.Content()))); got != 10 {
		t.Errorf("field count = %d, want 10", got)
	}
}

func TestRecordBathFormat(t *testing.T) {
	r := NewRecorder(ObservableTemperatures, nil, SinkNone)
	r.RecordBath(2.5e-12, thermal.State{Electron: 450.5, Phonon: 310.25, Spin: 305})

	line := strings.TrimSpace(r.Content())
	if line != "2.500000e-12 450.500000 310.250000 305.000000" {
		t.Errorf("line = %q", line)
	}
}

func TestFlushToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.dat")
	r := NewRecorder(ObservableMagnetization, nil, path)
	r.Record(1e-12, traceSites())
	r.Record(2e-12, traceSites())

	if err := r.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(strings.Split(strings.TrimSpace(string(data)), "\n")); got != 2 {
		t.Errorf("flushed lines = %d, want 2", got)
	}
}

func TestFlushSuppressed(t *testing.T) {
	for _, sink := range []string{SinkNone, ""} {
		r := NewRecorder(ObservableMagnetization, nil, sink)
		r.Record(1e-12, traceSites())
		if err := r.Flush(); err != nil {
			t.Errorf("sink %q: %v", sink, err)
		}
	}
}

func TestParseObservable(t *testing.T) {
	for name, want := range map[string]Observable{
		"spins":          ObservableSpins,
		"magnetization":  ObservableMagnetization,
		"susceptibility": ObservableSusceptibility,
		"temperatures":   ObservableTemperatures,
	} {
		got, err := ParseObservable(name)
		if err != nil || got != want {
			t.Errorf("ParseObservable(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseObservable("torque"); err == nil {
		t.Error("expected error for unknown observable")
	}
}
