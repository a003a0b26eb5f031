package mathutil

import "math"

// Vec2 is a point in a section's local plane: [0] chordwise, [1] thickness.
type Vec2 [2]float64

// Vec3 is a 3-component world-frame vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// ScaleEach scales each component independently (per-axis SCALE directive).
func (v Vec3) ScaleEach(s Vec3) Vec3 {
	return Vec3{v[0] * s[0], v[1] * s[1], v[2] * s[2]}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Min returns the component-wise minimum of a and b.
func Min(a, b Vec3) Vec3 {
	return Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vec3) Vec3 {
	return Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
