// Package spin implements the per-site moment dynamics: the dLLB
// right-hand side over the first and second spin cumulants, the
// classical and quantum thermostat coefficients, and the family of
// per-site time steppers.
//
// A [Site] owns its [Moments] exclusively. The pulsation vector Omega is
// written by the field aggregator between sweeps and read by the RHS;
// within a sweep it is frozen, so per-site advances are independent.
package spin
