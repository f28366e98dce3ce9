package core

import (
	"fmt"
	"math"
)

// Matrix4x4 is a 4x4 transform stored as four Float4 rows
type Matrix4x4 struct {
	Rows [4]Float4
}

// IdentityMatrix returns the identity transform
func IdentityMatrix() Matrix4x4 {
	return Matrix4x4{Rows: [4]Float4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// NewMatrix4x4 builds a matrix from 16 values in row-major order
func NewMatrix4x4(m [16]float64) Matrix4x4 {
	return Matrix4x4{Rows: [4]Float4{
		{m[0], m[1], m[2], m[3]},
		{m[4], m[5], m[6], m[7]},
		{m[8], m[9], m[10], m[11]},
		{m[12], m[13], m[14], m[15]},
	}}
}

// TranslationMatrix returns a transform that translates by t
func TranslationMatrix(t Vec3) Matrix4x4 {
	return Matrix4x4{Rows: [4]Float4{
		{1, 0, 0, t.X},
		{0, 1, 0, t.Y},
		{0, 0, 1, t.Z},
		{0, 0, 0, 1},
	}}
}

// ScaleMatrix returns a transform that scales by s per axis
func ScaleMatrix(s Vec3) Matrix4x4 {
	return Matrix4x4{Rows: [4]Float4{
		{s.X, 0, 0, 0},
		{0, s.Y, 0, 0},
		{0, 0, s.Z, 0},
		{0, 0, 0, 1},
	}}
}

// LookAtMatrix builds a camera-to-world transform from an eye position, a
// target point and an up vector
func LookAtMatrix(eye, target, up Vec3) Matrix4x4 {
	forward := target.Subtract(eye).Normalize()
	right := forward.Cross(up.Normalize()).Normalize()
	trueUp := right.Cross(forward)

	return Matrix4x4{Rows: [4]Float4{
		{right.X, trueUp.X, -forward.X, eye.X},
		{right.Y, trueUp.Y, -forward.Y, eye.Y},
		{right.Z, trueUp.Z, -forward.Z, eye.Z},
		{0, 0, 0, 1},
	}}
}

// column returns column j as a Float4
func (m Matrix4x4) column(j int) Float4 {
	return Float4{m.Rows[0][j], m.Rows[1][j], m.Rows[2][j], m.Rows[3][j]}
}

// Mul returns the matrix product m * other
func (m Matrix4x4) Mul(other Matrix4x4) Matrix4x4 {
	var out Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out.Rows[i][j] = m.Rows[i].Dot(other.column(j))
		}
	}
	return out
}

// Transposed returns the transpose of the matrix
func (m Matrix4x4) Transposed() Matrix4x4 {
	var out Matrix4x4
	for i := 0; i < 4; i++ {
		out.Rows[i] = m.column(i)
	}
	return out
}

// TransformPoint applies the transform to a point (w = 1)
func (m Matrix4x4) TransformPoint(p Vec3) Vec3 {
	co := Float4{p.X, p.Y, p.Z, 1}
	x := m.Rows[0].Dot(co)
	y := m.Rows[1].Dot(co)
	z := m.Rows[2].Dot(co)
	w := m.Rows[3].Dot(co)
	if w != 1 && w != 0 {
		inv := 1.0 / w
		return Vec3{x * inv, y * inv, z * inv}
	}
	return Vec3{x, y, z}
}

// TransformVector applies the transform to a direction vector (w = 0)
func (m Matrix4x4) TransformVector(v Vec3) Vec3 {
	co := Float4{v.X, v.Y, v.Z, 0}
	return Vec3{
		m.Rows[0].Dot(co),
		m.Rows[1].Dot(co),
		m.Rows[2].Dot(co),
	}
}

// TransformNormal applies the inverse-transpose of the transform to a
// surface normal. The caller supplies the inverse; this keeps the per-normal
// cost to a matrix multiply.
func (inv Matrix4x4) TransformNormal(n Vec3) Vec3 {
	t := inv.Transposed()
	return t.TransformVector(n)
}

// Determinant returns the determinant of the matrix
func (m Matrix4x4) Determinant() float64 {
	a := m.Rows
	s0 := a[0][0]*a[1][1] - a[1][0]*a[0][1]
	s1 := a[0][0]*a[1][2] - a[1][0]*a[0][2]
	s2 := a[0][0]*a[1][3] - a[1][0]*a[0][3]
	s3 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	s4 := a[0][1]*a[1][3] - a[1][1]*a[0][3]
	s5 := a[0][2]*a[1][3] - a[1][2]*a[0][3]

	c5 := a[2][2]*a[3][3] - a[3][2]*a[2][3]
	c4 := a[2][1]*a[3][3] - a[3][1]*a[2][3]
	c3 := a[2][1]*a[3][2] - a[3][1]*a[2][2]
	c2 := a[2][0]*a[3][3] - a[3][0]*a[2][3]
	c1 := a[2][0]*a[3][2] - a[3][0]*a[2][2]
	c0 := a[2][0]*a[3][1] - a[3][0]*a[2][1]

	return s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
}

// Inverse returns the inverse of the matrix, or an error when the matrix is
// singular
func (m Matrix4x4) Inverse() (Matrix4x4, error) {
	a := m.Rows
	s0 := a[0][0]*a[1][1] - a[1][0]*a[0][1]
	s1 := a[0][0]*a[1][2] - a[1][0]*a[0][2]
	s2 := a[0][0]*a[1][3] - a[1][0]*a[0][3]
	s3 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	s4 := a[0][1]*a[1][3] - a[1][1]*a[0][3]
	s5 := a[0][2]*a[1][3] - a[1][2]*a[0][3]

	c5 := a[2][2]*a[3][3] - a[3][2]*a[2][3]
	c4 := a[2][1]*a[3][3] - a[3][1]*a[2][3]
	c3 := a[2][1]*a[3][2] - a[3][1]*a[2][2]
	c2 := a[2][0]*a[3][3] - a[3][0]*a[2][3]
	c1 := a[2][0]*a[3][2] - a[3][0]*a[2][2]
	c0 := a[2][0]*a[3][1] - a[3][0]*a[2][1]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 || math.IsNaN(det) {
		return Matrix4x4{}, fmt.Errorf("matrix is singular, determinant %v", det)
	}
	invDet := 1.0 / det

	var out Matrix4x4
	out.Rows[0] = Float4{
		(a[1][1]*c5 - a[1][2]*c4 + a[1][3]*c3) * invDet,
		(-a[0][1]*c5 + a[0][2]*c4 - a[0][3]*c3) * invDet,
		(a[3][1]*s5 - a[3][2]*s4 + a[3][3]*s3) * invDet,
		(-a[2][1]*s5 + a[2][2]*s4 - a[2][3]*s3) * invDet,
	}
	out.Rows[1] = Float4{
		(-a[1][0]*c5 + a[1][2]*c2 - a[1][3]*c1) * invDet,
		(a[0][0]*c5 - a[0][2]*c2 + a[0][3]*c1) * invDet,
		(-a[3][0]*s5 + a[3][2]*s2 - a[3][3]*s1) * invDet,
		(a[2][0]*s5 - a[2][2]*s2 + a[2][3]*s1) * invDet,
	}
	out.Rows[2] = Float4{
		(a[1][0]*c4 - a[1][1]*c2 + a[1][3]*c0) * invDet,
		(-a[0][0]*c4 + a[0][1]*c2 - a[0][3]*c0) * invDet,
		(a[3][0]*s4 - a[3][1]*s2 + a[3][3]*s0) * invDet,
		(-a[2][0]*s4 + a[2][1]*s2 - a[2][3]*s0) * invDet,
	}
	out.Rows[3] = Float4{
		(-a[1][0]*c3 + a[1][1]*c1 - a[1][2]*c0) * invDet,
		(a[0][0]*c3 - a[0][1]*c1 + a[0][2]*c0) * invDet,
		(-a[3][0]*s3 + a[3][1]*s1 - a[3][2]*s0) * invDet,
		(a[2][0]*s3 - a[2][1]*s1 + a[2][2]*s0) * invDet,
	}

	return out, nil
}
