package vecmat

// Matrix3 is a 3x3 real matrix, row-major. Value type like Vector3.
type Matrix3 [3][3]float64

// Identity returns the 3x3 identity matrix.
func Identity() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (m Matrix3) Add(o Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + o[i][j]
		}
	}
	return r
}

func (m Matrix3) Sub(o Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] - o[i][j]
		}
	}
	return r
}

func (m Matrix3) Scale(s float64) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = s * m[i][j]
		}
	}
	return r
}

// AddAssign replaces the held value with m+o.
func (m *Matrix3) AddAssign(o Matrix3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] += o[i][j]
		}
	}
}

func (m Matrix3) Transpose() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

func (m Matrix3) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// Diagonal returns the literal diagonal entries as a vector.
func (m Matrix3) Diagonal() Vector3 {
	return Vector3{X: m[0][0], Y: m[1][1], Z: m[2][2]}
}

func (m Matrix3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Adjugate returns the transpose of the cofactor matrix.
func (m Matrix3) Adjugate() Matrix3 {
	return Matrix3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
}

// Inverse returns adjugate/determinant. A zero determinant yields
// ErrSingular instead of dividing through.
func (m Matrix3) Inverse() (Matrix3, error) {
	d := m.Det()
	if d == 0 {
		return Matrix3{}, ErrSingular
	}
	return m.Adjugate().Scale(1 / d), nil
}

func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Matrix3) MulMat(o Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Col returns column j as a vector.
func (m Matrix3) Col(j int) Vector3 {
	return Vector3{X: m[0][j], Y: m[1][j], Z: m[2][j]}
}

// CrossMat crosses v with each column of m, yielding the matrix whose
// column j is v x m.Col(j). This expresses the antisymmetric coupling
// between a field direction and a second-moment tensor.
func CrossMat(v Vector3, m Matrix3) Matrix3 {
	var r Matrix3
	for j := 0; j < 3; j++ {
		c := v.Cross(m.Col(j))
		r[0][j] = c.X
		r[1][j] = c.Y
		r[2][j] = c.Z
	}
	return r
}
