// Package vmath holds the small amount of vector math the scheduler needs.
package vmath

import "math"

// similarEpsilon is the per-axis tolerance used by Similar.
const similarEpsilon = 0.001

// Vec3 is a float64 3D vector. Y is up; the horizontal plane is X/Z.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3 from components.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit-length copy, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	mag := v.Len()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Horizontal drops the vertical component.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Similar reports whether every axis of v is within a small tolerance of o.
func (v Vec3) Similar(o Vec3) bool {
	return math.Abs(v.X-o.X) <= similarEpsilon &&
		math.Abs(v.Y-o.Y) <= similarEpsilon &&
		math.Abs(v.Z-o.Z) <= similarEpsilon
}

// Axis returns component i (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithAxis returns a copy with component i replaced.
func (v Vec3) WithAxis(i int, value float64) Vec3 {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// Lerp interpolates linearly between two scalars.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// ClampBetween clamps v to the closed interval spanned by a and b, in either order.
func ClampBetween(v, a, b float64) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
