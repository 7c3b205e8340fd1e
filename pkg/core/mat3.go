package core

// Mat3 is a 3x3 double matrix stored row-major, used to build local
// shading frames and to carry instance transforms from scene loaders.
type Mat3 struct {
	M [3][3]float64
}

// NewMat3FromRows builds a Mat3 from three row vectors.
func NewMat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{M: [3][3]float64{
		{r0.X, r0.Y, r0.Z},
		{r1.X, r1.Y, r1.Z},
		{r2.X, r2.Y, r2.Z},
	}}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// MulVec multiplies the matrix by a column vector.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Transpose returns the transpose of the matrix.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.M[j][i] = m.M[i][j]
		}
	}
	return t
}

// Mul returns the matrix product m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m.M[i][k] * o.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// MakeCoordSpace builds an orthonormal frame with n as the local z axis,
// per spec.md §4.4: pick the axis of smallest magnitude in n, set that
// axis component of a helper to 1, then y = normalize(h x z), x = normalize(z x y).
// Returns the matrix whose rows are (x, y, z) so MulVec maps world -> local.
func MakeCoordSpace(n Vec3) Mat3 {
	z := n.Normalize()

	var h Vec3
	ax, ay, az := abs(z.X), abs(z.Y), abs(z.Z)
	switch {
	case ax <= ay && ax <= az:
		h = Vec3{X: 1}
	case ay <= ax && ay <= az:
		h = Vec3{Y: 1}
	default:
		h = Vec3{Z: 1}
	}

	y := h.Cross(z).Normalize()
	x := z.Cross(y).Normalize()

	return NewMat3FromRows(x, y, z)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
