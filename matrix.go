package serenity

import "math"

// Matrix is a 3×3 homogeneous 2D affine transform.
//
// Points are column vectors: a point p maps to M·[p.X p.Y 1]ᵀ. Under this
// convention Multiply(a, b) yields the transform that applies b first and
// then a, so a parent-times-child product places the child in its parent's
// space.
//
//	| m[0][0]  m[0][1]  m[0][2] |   | a  c  tx |
//	| m[1][0]  m[1][1]  m[1][2] | = | b  d  ty |
//	| m[2][0]  m[2][1]  m[2][2] |   | 0  0   1 |
//
// The zero Matrix is not a valid transform; start from Identity or one of
// the factory functions. Every function returns a fresh Matrix and none
// mutates its operands.
type Matrix struct {
	m [3][3]float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{m: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix {
	t := Identity()
	t.m[0][2] = tx
	t.m[1][2] = ty
	return t
}

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix {
	s := Identity()
	s.m[0][0] = sx
	s.m[1][1] = sy
	return s
}

// Rotate returns a rotation by angle radians about the origin. Positive
// angles turn +X toward +Y (clockwise on a Y-down screen).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	r := Identity()
	r.m[0][0] = cos
	r.m[0][1] = -sin
	r.m[1][0] = sin
	r.m[1][1] = cos
	return r
}

// Multiply returns the row-by-column product a·b:
//
//	result[i][j] = Σ_k a[i][k]·b[k][j]
//
// Applied to a point, the result performs b first and then a.
func Multiply(a, b Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[i][j] = a.m[i][0]*b.m[0][j] + a.m[i][1]*b.m[1][j] + a.m[i][2]*b.m[2][j]
		}
	}
	return r
}

// Then returns the transform that applies m first and next second.
// Identity().Then(Scale(2, 2)).Then(Translate(10, 0)) scales, then moves.
func (m Matrix) Then(next Matrix) Matrix {
	return Multiply(next, m)
}

// At returns the entry at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.m[i][j]
}

// Apply transforms the point p.
func (m Matrix) Apply(p Vector2) Vector2 {
	return Vector2{
		X: m.m[0][0]*p.X + m.m[0][1]*p.Y + m.m[0][2],
		Y: m.m[1][0]*p.X + m.m[1][1]*p.Y + m.m[1][2],
	}
}

// Invert returns the inverse of an affine matrix. For a singular matrix
// (determinant ≈ 0) it returns the identity and false.
func (m Matrix) Invert() (Matrix, bool) {
	a, b := m.m[0][0], m.m[1][0]
	c, d := m.m[0][1], m.m[1][1]
	tx, ty := m.m[0][2], m.m[1][2]

	det := a*d - c*b
	if det > -1e-12 && det < 1e-12 {
		return Identity(), false
	}
	invDet := 1.0 / det
	ia := d * invDet
	ib := -b * invDet
	ic := -c * invDet
	id := a * invDet

	inv := Identity()
	inv.m[0][0] = ia
	inv.m[1][0] = ib
	inv.m[0][1] = ic
	inv.m[1][1] = id
	inv.m[0][2] = -(ia*tx + ic*ty)
	inv.m[1][2] = -(ib*tx + id*ty)
	return inv, true
}

// Affine returns the six affine coefficients as [a, b, c, d, tx, ty], the
// layout used by ebiten.GeoM.SetElement and most 2D canvas APIs.
func (m Matrix) Affine() [6]float64 {
	return [6]float64{m.m[0][0], m.m[1][0], m.m[0][1], m.m[1][1], m.m[0][2], m.m[1][2]}
}

// Equal reports whether every entry of m and o differs by at most eps.
func (m Matrix) Equal(o Matrix, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m.m[i][j]-o.m[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
