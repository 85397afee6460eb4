package core

import "math"

// Mat4 is a row-major 4x4 matrix
type Mat4 [4][4]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m * other
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return out
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Transform is an affine transform that carries its own inverse, so normals can
// be transformed without inverting a matrix at use time.
type Transform struct {
	M   Mat4
	Inv Mat4
}

// IdentityTransform returns the transform that leaves everything unchanged
func IdentityTransform() Transform {
	return Transform{M: Identity(), Inv: Identity()}
}

// Translate returns a translation by offset
func Translate(offset Vec3) Transform {
	m, inv := Identity(), Identity()
	m[0][3], m[1][3], m[2][3] = offset.X, offset.Y, offset.Z
	inv[0][3], inv[1][3], inv[2][3] = -offset.X, -offset.Y, -offset.Z
	return Transform{M: m, Inv: inv}
}

// Scale returns a per-axis scale. Components must be non-zero.
func Scale(factor Vec3) Transform {
	m, inv := Identity(), Identity()
	m[0][0], m[1][1], m[2][2] = factor.X, factor.Y, factor.Z
	inv[0][0], inv[1][1], inv[2][2] = 1/factor.X, 1/factor.Y, 1/factor.Z
	return Transform{M: m, Inv: inv}
}

// RotateX returns a rotation of angle radians around the X axis
func RotateX(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[1][1], m[1][2] = cos, -sin
	m[2][1], m[2][2] = sin, cos
	return Transform{M: m, Inv: m.Transpose()}
}

// RotateY returns a rotation of angle radians around the Y axis
func RotateY(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0][0], m[0][2] = cos, sin
	m[2][0], m[2][2] = -sin, cos
	return Transform{M: m, Inv: m.Transpose()}
}

// RotateZ returns a rotation of angle radians around the Z axis
func RotateZ(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0][0], m[0][1] = cos, -sin
	m[1][0], m[1][1] = sin, cos
	return Transform{M: m, Inv: m.Transpose()}
}

// Then returns the transform that applies t first and next afterwards
func (t Transform) Then(next Transform) Transform {
	return Transform{
		M:   next.M.Mul(t.M),
		Inv: t.Inv.Mul(next.Inv),
	}
}

// Point transforms a position
func (t Transform) Point(p Vec3) Vec3 {
	m := t.M
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// Vector transforms a direction (translation is ignored)
func (t Transform) Vector(v Vec3) Vec3 {
	m := t.M
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Normal transforms a surface normal with the inverse transpose and renormalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	m := t.Inv
	return Vec3{
		X: m[0][0]*n.X + m[1][0]*n.Y + m[2][0]*n.Z,
		Y: m[0][1]*n.X + m[1][1]*n.Y + m[2][1]*n.Z,
		Z: m[0][2]*n.X + m[1][2]*n.Y + m[2][2]*n.Z,
	}.Normalize()
}
