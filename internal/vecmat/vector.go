package vecmat

import (
	"fmt"
	"math"
	"math/rand"
)

// Vector3 is a 3-component real vector. It is a value type: every operator
// returns a fresh value, equality is exact component comparison.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func New(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Unit returns the unit vector for a direction preset ("+x", "-x", "+y",
// "-y", "+z", "-z").
func Unit(direction string) (Vector3, error) {
	switch direction {
	case "+x":
		return Vector3{X: 1}, nil
	case "-x":
		return Vector3{X: -1}, nil
	case "+y":
		return Vector3{Y: 1}, nil
	case "-y":
		return Vector3{Y: -1}, nil
	case "+z":
		return Vector3{Z: 1}, nil
	case "-z":
		return Vector3{Z: -1}, nil
	default:
		return Vector3{}, fmt.Errorf("vecmat: unknown direction %q", direction)
	}
}

// RandomUnit samples a direction uniformly in the cube and normalizes it.
func RandomUnit(rng *rand.Rand) Vector3 {
	v := Vector3{
		X: 2*rng.Float64() - 1,
		Y: 2*rng.Float64() - 1,
		Z: 2*rng.Float64() - 1,
	}
	return v.Normalized()
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: s * v.X, Y: s * v.Y, Z: s * v.Z}
}

// AddAssign replaces the held value with v+o. It is the only compound
// operator; everything else allocates a fresh value.
func (v *Vector3) AddAssign(o Vector3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) NormSq() float64 {
	return v.Dot(v)
}

func (v Vector3) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector3) Normalized() Vector3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Outer returns the tensor product v ⊗ o.
func (v Vector3) Outer(o Vector3) Matrix3 {
	return Matrix3{
		{v.X * o.X, v.X * o.Y, v.X * o.Z},
		{v.Y * o.X, v.Y * o.Y, v.Y * o.Z},
		{v.Z * o.X, v.Z * o.Y, v.Z * o.Z},
	}
}
