// Package cad is the boundary to the boundary-representation kernel: wires,
// lofted shapes, mirroring, and compounds. Any coordinate-convention quirk of
// a serialization target stays behind this package; the world frame is
// right-handed everywhere.
package cad

import (
	"fmt"

	"avl2step/internal/mathutil"
)

// Wire is an ordered polyline in 3D. Closed wires connect the last point back
// to the first without duplicating it.
type Wire struct {
	Points []mathutil.Vec3
	Closed bool
}

// BuildWire validates points and returns a Wire.
func BuildWire(points []mathutil.Vec3, closed bool) (Wire, error) {
	min := 2
	if closed {
		min = 3
	}
	if len(points) < min {
		return Wire{}, fmt.Errorf("cad: wire needs at least %d points, got %d", min, len(points))
	}
	return Wire{Points: points, Closed: closed}, nil
}

// Centroid returns the mean of the wire's points.
func (w Wire) Centroid() mathutil.Vec3 {
	var c mathutil.Vec3
	for _, p := range w.Points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(w.Points)))
}

// Bounds returns the axis-aligned bounding box of the wire.
func (w Wire) Bounds() (min, max mathutil.Vec3) {
	min, max = w.Points[0], w.Points[0]
	for _, p := range w.Points[1:] {
		min = mathutil.Min(min, p)
		max = mathutil.Max(max, p)
	}
	return min, max
}
