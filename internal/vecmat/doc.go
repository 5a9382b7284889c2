// Package vecmat provides the 3-component vector and 3x3 matrix algebra
// the moment dynamics are written in.
//
// Both types are plain values: operators return fresh results, the only
// compound operator is AddAssign, and equality is exact component
// comparison. Inversion of a singular matrix fails with [ErrSingular]
// rather than dividing by zero.
package vecmat
