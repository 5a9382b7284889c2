// Package thermal implements the two/three-temperature model: coupled
// ODEs for electron, phonon and spin bath temperatures driven by a
// pulsed power source, with Euler/RK2/RK4 steppers and a single-shot
// step-size heuristic. The external driver typically feeds the spin or
// electron temperature into the per-site thermostat.
package thermal
