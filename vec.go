package shading

import "github.com/chewxy/math32"

// Vec2 is a two-component float32 vector (GLSL vec2, WGSL vec2<f32>).
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Vec3 is a three-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Length returns the length of the vector.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Pow raises each component to the power e, like GLSL pow(vec3, vec3(e)).
func (v Vec3) Pow(e float32) Vec3 {
	return Vec3{X: math32.Pow(v.X, e), Y: math32.Pow(v.Y, e), Z: math32.Pow(v.Z, e)}
}

// Vec4 is a four-component float32 vector. Colors use X,Y,Z,W as r,g,b,a.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// RGB returns the first three components.
func (v Vec4) RGB() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns the sum of two vectors.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z, W: v.W + w.W}
}

// Mul returns the vector scaled by a scalar.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

// Mat3 is a column-major 3x3 float32 matrix, laid out like GLSL mat3.
// Columns are typically tangent, bitangent and normal of a surface basis.
type Mat3 [3]Vec3

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		{X: 1},
		{Y: 1},
		{Z: 1},
	}
}

// Mat3FromColumns builds a matrix from three column vectors.
func Mat3FromColumns(c0, c1, c2 Vec3) Mat3 {
	return Mat3{c0, c1, c2}
}

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return m[0].Mul(v.X).Add(m[1].Mul(v.Y)).Add(m[2].Mul(v.Z))
}

// Add returns the component-wise sum of two matrices.
func (m Mat3) Add(n Mat3) Mat3 {
	return Mat3{m[0].Add(n[0]), m[1].Add(n[1]), m[2].Add(n[2])}
}

// Mul returns the matrix scaled by a scalar.
func (m Mat3) Mul(s float32) Mat3 {
	return Mat3{m[0].Mul(s), m[1].Mul(s), m[2].Mul(s)}
}
