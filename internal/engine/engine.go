package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/units"
)

// FieldSource recomputes every site's pulsation vector from the current
// moments. Refresh must observe every post-sweep moment and complete
// before the next sweep starts; the engine only calls it between sweeps,
// never concurrently with a moment mutation.
type FieldSource interface {
	Refresh(sites []spin.Site)
}

// SweepParams carries the thermodynamic inputs threaded into each site's
// advance.
type SweepParams struct {
	Temperature float64
	Alpha       float64
	Thermostat  spin.Thermostat
}

// Engine owns the site arena and drives the sweep/refresh/trace cycle.
// Sites live in a value slice indexed by position; workers operate on
// exclusive subslices during a sweep, so no site ever reads or writes
// another site's state.
type Engine struct {
	sites  []spin.Site
	fields FieldSource
	consts units.Constants
	rec    *Recorder
	t      float64
}

// New builds an engine over the populated site collection and primes the
// pulsation vectors with one field refresh.
func New(sites []spin.Site, fields FieldSource, consts units.Constants, rec *Recorder) (*Engine, error) {
	if len(sites) == 0 {
		return nil, ErrNoSites
	}
	fields.Refresh(sites)
	return &Engine{sites: sites, fields: fields, consts: consts, rec: rec}, nil
}

// Sites exposes the arena. Callers must not mutate it while an evolve
// call is running.
func (e *Engine) Sites() []spin.Site { return e.sites }

// Time is the accumulated simulation time.
func (e *Engine) Time() float64 { return e.t }

// Recorder returns the diagnostic trace.
func (e *Engine) Recorder() *Recorder { return e.rec }

// EvolveEuler advances the collection by steps Euler sweeps. Within a
// step every site sees the omega frozen at the start of the sweep; the
// field refresh after the sweep is a hard barrier.
func (e *Engine) EvolveEuler(ctx context.Context, steps int, dt float64, p SweepParams) error {
	return e.evolve(ctx, steps, dt, p, spin.MethodEuler)
}

// EvolveRK4 advances the collection by steps RK4 sweeps, threading the
// thermostat temperature, damping and thermostat kind into each site's
// advance. Diagnostics are recorded from post-step state; the historical
// one-step probe lag is gone.
func (e *Engine) EvolveRK4(ctx context.Context, steps int, dt float64, p SweepParams) error {
	return e.evolve(ctx, steps, dt, p, spin.MethodRK4)
}

func (e *Engine) evolve(ctx context.Context, steps int, dt float64, p SweepParams, m spin.Method) error {
	if err := validate(steps, dt); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.sweep(m, dt, p)
		e.fields.Refresh(e.sites) // barrier: sweep workers have joined
		e.t += dt
		e.record()
	}

	return nil
}

// sweep advances every site by dt over exclusive worker subslices.
func (e *Engine) sweep(m spin.Method, dt float64, p SweepParams) {
	parallelFor(len(e.sites), func(start, end int) {
		for i := start; i < end; i++ {
			e.sites[i].Advance(m, dt, p.Temperature, p.Alpha, p.Thermostat, e.consts)
		}
	})
}

// EvolveSplit advances the collection by staggered splitting sweeps:
// sites 0..N-2 by dt/2 in order, site N-1 by the full dt, then N-2..0 by
// dt/2 in reverse. Each site substep uses the geometric per-site advance
// and is followed by a field refresh, so every substep sees the fields
// induced by the previous one. The sweep is inherently sequential.
func (e *Engine) EvolveSplit(ctx context.Context, steps int, dt float64, p SweepParams) error {
	if err := validate(steps, dt); err != nil {
		return err
	}
	n := len(e.sites)
	if n < 2 {
		return ErrTooFewSites
	}

	substep := func(i int, h float64) {
		e.sites[i].Advance(spin.MethodSymplectic, h, p.Temperature, p.Alpha, p.Thermostat, e.consts)
		e.fields.Refresh(e.sites)
	}

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for i := 0; i < n-1; i++ {
			substep(i, dt/2)
		}
		substep(n-1, dt)
		for i := n - 2; i >= 0; i-- {
			substep(i, dt/2)
		}

		e.t += dt
		e.record()
	}

	return nil
}

func (e *Engine) record() {
	if e.rec != nil {
		e.rec.Record(e.t, e.sites)
	}
}

func validate(steps int, dt float64) error {
	if steps <= 0 {
		return fmt.Errorf("engine: steps must be positive, got %d", steps)
	}
	if dt <= 0 {
		return fmt.Errorf("engine: dt must be positive, got %g", dt)
	}
	return nil
}
