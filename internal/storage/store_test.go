package storage

import (
	"strings"
	"testing"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	meta := RunMetadata{
		Kind:        "moments",
		Dt:          1e-15,
		Steps:       1000,
		Integrator:  "rk4",
		Thermostat:  "classical",
		Observable:  "magnetization",
		Temperature: 300,
		Alpha:       0.05,
		Final:       map[string]float64{"magnetization": 0.98},
	}
	trace := "1.000000e-15 0.990000 0.000000 0.000000 0.990000\n" +
		"2.000000e-15 0.980000 0.000000 0.000000 0.980000\n"

	id, err := s.Save(meta, trace)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(id, "moments_") {
		t.Errorf("run id = %q", id)
	}

	loaded, err := s.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Steps != 1000 || loaded.Integrator != "rk4" || loaded.Final["magnetization"] != 0.98 {
		t.Errorf("metadata roundtrip lost fields: %+v", loaded)
	}

	rows, err := s.LoadTrace(id)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}
	if len(rows) != 2 || len(rows[0]) != 5 {
		t.Fatalf("trace shape = %dx%d", len(rows), len(rows[0]))
	}
	if rows[1][1] != 0.98 {
		t.Errorf("trace value = %v", rows[1][1])
	}
}

func TestListSkipsBrokenRuns(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save(RunMetadata{Kind: "laser"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(RunMetadata{Kind: "moments"}, ""); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("run count = %d", len(runs))
	}
}

func TestListEmptyBase(t *testing.T) {
	s := New(t.TempDir() + "/missing")
	runs, err := s.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List on missing dir: %v, %v", runs, err)
	}
}
