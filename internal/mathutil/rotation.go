package mathutil

import "math"

// Rotate2 rotates a point in the section plane about the origin.
// Positive angle pitches the leading edge up (trailing edge down), matching
// the AVL sign convention for incidence. Angle in radians.
func Rotate2(p Vec2, a float64) Vec2 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec2{c*p[0] + s*p[1], -s*p[0] + c*p[1]}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
