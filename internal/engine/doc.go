// Package engine orchestrates time evolution of a site collection: it
// drives the Euler, RK4 and operator-splitting sweeps, enforces the
// field-refresh barrier between sweeps, and accumulates the diagnostic
// trace flushed at run end.
//
// # Concurrency
//
// A sweep advances sites in parallel over exclusive index ranges; each
// site's RHS reads only its own moments and the omega frozen for the
// sweep. The field refresh runs strictly between sweeps. The splitting
// sweep is sequential by construction.
package engine
