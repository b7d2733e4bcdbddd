package vmath

import "math"

const slerpEpsilon = 1e-6

// Slerp spherically interpolates between two directions. The vectors are
// treated as pure quaternions (w = 0), so the shorter arc is taken and
// near-parallel inputs fall back to a linear blend.
func Slerp(a, b Vec3, t float64) Vec3 {
	cosom := a.Dot(b)
	sign := 1.0
	if cosom < 0 {
		cosom = -cosom
		sign = -1.0
	}

	var scale0, scale1 float64
	if 1.0-cosom > slerpEpsilon {
		omega := math.Acos(math.Min(cosom, 1))
		invSin := 1.0 / math.Sin(omega)
		scale0 = math.Sin(omega-t*omega) * invSin
		scale1 = math.Sin(t*omega) * invSin
	} else {
		scale0 = 1.0 - t
		scale1 = t
	}
	scale1 *= sign

	return Vec3{
		X: scale0*a.X + scale1*b.X,
		Y: scale0*a.Y + scale1*b.Y,
		Z: scale0*a.Z + scale1*b.Z,
	}
}

// WindowFraction returns how far now is into the window [start, end]. A
// zero-length window yields 0.
func WindowFraction(now, start, end float64) float64 {
	delta := end - start
	if delta == 0 {
		return 0
	}
	return (now - start) / delta
}
