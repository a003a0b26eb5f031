package cad

import (
	"math"

	"avl2step/internal/mathutil"
)

// CadModel is a compound of distinct lofted shapes. Shapes are never fused;
// each stays a separate surface in the exported model.
type CadModel struct {
	Name   string
	Shapes []Shape
}

// Compound collects shapes into one model.
func Compound(name string, shapes []Shape) *CadModel {
	return &CadModel{Name: name, Shapes: shapes}
}

// Bounds returns the axis-aligned bounding box over all shapes. The zero box
// is returned for an empty model.
func (m *CadModel) Bounds() (min, max mathutil.Vec3) {
	first := true
	for _, s := range m.Shapes {
		for _, w := range s.Wires {
			wmin, wmax := w.Bounds()
			if first {
				min, max = wmin, wmax
				first = false
				continue
			}
			min = mathutil.Min(min, wmin)
			max = mathutil.Max(max, wmax)
		}
	}
	return min, max
}

// CrossSection slices a shape with the plane axis=v and returns the
// intersection polygon, linearly interpolated between the two bracketing
// section wires. Returns nil when v lies outside the shape's span.
func CrossSection(s Shape, v float64) []mathutil.Vec3 {
	axis := s.Axis
	for i := 1; i < len(s.Wires); i++ {
		a, b := s.Wires[i-1], s.Wires[i]
		va := a.Centroid()[axis]
		vb := b.Centroid()[axis]
		if v < va-loftTol || v > vb+loftTol {
			continue
		}
		t := 0.0
		if vb-va > loftTol {
			t = (v - va) / (vb - va)
		}
		t = math.Max(0, math.Min(1, t))
		out := make([]mathutil.Vec3, len(a.Points))
		for j := range a.Points {
			out[j] = a.Points[j].Add(b.Points[j].Sub(a.Points[j]).Scale(t))
		}
		return out
	}
	return nil
}
