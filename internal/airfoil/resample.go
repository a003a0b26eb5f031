package airfoil

import (
	"gonum.org/v1/gonum/interp"

	"avl2step/internal/mathutil"
)

// Resample interpolates pts onto the point count of ref so every profile in a
// loft stack shares a vertex count. Both outlines are parametrized by
// normalized index, which keeps the leading/trailing edge alignment of
// profiles that follow the standard ordering.
func Resample(ref, pts Profile) Profile {
	if len(pts) == len(ref) || len(pts) < 2 || len(ref) < 2 {
		return pts
	}

	t := make([]float64, len(pts))
	xs := make([]float64, len(pts))
	zs := make([]float64, len(pts))
	for i, p := range pts {
		t[i] = float64(i) / float64(len(pts)-1)
		xs[i] = p[0]
		zs[i] = p[1]
	}

	var fx, fz interp.PiecewiseLinear
	// Fit only fails on mismatched or unsorted abscissae; t is linspace.
	if err := fx.Fit(t, xs); err != nil {
		return pts
	}
	if err := fz.Fit(t, zs); err != nil {
		return pts
	}

	out := make(Profile, len(ref))
	for i := range ref {
		u := float64(i) / float64(len(ref)-1)
		out[i] = mathutil.Vec2{fx.Predict(u), fz.Predict(u)}
	}
	return out
}
