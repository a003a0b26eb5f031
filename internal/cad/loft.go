package cad

import (
	"fmt"
	"math"
	"sort"

	"avl2step/internal/mathutil"
)

// LoftError reports a profile stack the kernel cannot loft.
type LoftError struct {
	Surface string
	Msg     string
}

func (e *LoftError) Error() string {
	return fmt.Sprintf("cad: loft %q: %s", e.Surface, e.Msg)
}

// Shape is one lofted surface: an ordered stack of section wires along a loft
// axis. Axis is the world coordinate index (0=X, 1=Y, 2=Z) the stack runs
// along.
type Shape struct {
	Name  string
	Axis  int
	Wires []Wire
}

// loftTol is the spread below which a coordinate counts as constant within a
// wire.
const loftTol = 1e-9

// Loft orders wires along their loft axis and returns the lofted Shape. The
// loft axis is determined, not assumed: it is the coordinate that is constant
// within every wire but varies across the stack. Fails with *LoftError when
// no such axis exists, when vertex counts differ between wires, or when fewer
// than 2 wires are given.
func Loft(name string, wires []Wire) (Shape, error) {
	if len(wires) < 2 {
		return Shape{}, &LoftError{Surface: name, Msg: fmt.Sprintf("%d wires, need at least 2", len(wires))}
	}
	n := len(wires[0].Points)
	for i, w := range wires {
		if len(w.Points) != n {
			return Shape{}, &LoftError{Surface: name, Msg: fmt.Sprintf("wire %d has %d vertices, expected %d", i, len(w.Points), n)}
		}
		if w.Closed != wires[0].Closed {
			return Shape{}, &LoftError{Surface: name, Msg: "mixed open and closed wires"}
		}
	}

	axis, err := loftAxis(name, wires)
	if err != nil {
		return Shape{}, err
	}

	ordered := make([]Wire, len(wires))
	copy(ordered, wires)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Centroid()[axis] < ordered[j].Centroid()[axis]
	})

	// Adjacent sections must be separated along the axis or the segment
	// between them is degenerate.
	for i := 1; i < len(ordered); i++ {
		d := ordered[i].Centroid()[axis] - ordered[i-1].Centroid()[axis]
		if d < loftTol {
			return Shape{}, &LoftError{Surface: name, Msg: fmt.Sprintf("sections %d and %d coincide along %c", i-1, i, "XYZ"[axis])}
		}
	}

	return Shape{Name: name, Axis: axis, Wires: ordered}, nil
}

// loftAxis inspects the stack: for each axis compute the largest within-wire
// spread and the across-stack centroid spread. The loft axis is planar in
// every wire and varies across the stack. A dihedral flat plate qualifies on
// both Y and Z, so ties go to the axis with the larger across-stack spread.
func loftAxis(name string, wires []Wire) (int, error) {
	candidate := -1
	best := 0.0
	for axis := 0; axis < 3; axis++ {
		within := 0.0
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, w := range wires {
			min, max := w.Bounds()
			if s := max[axis] - min[axis]; s > within {
				within = s
			}
			c := w.Centroid()[axis]
			lo = math.Min(lo, c)
			hi = math.Max(hi, c)
		}
		if within > loftTol || hi-lo < loftTol {
			continue
		}
		if hi-lo > best {
			candidate = axis
			best = hi - lo
		}
	}
	if candidate < 0 {
		return 0, &LoftError{Surface: name, Msg: "no planar axis varies across the section stack"}
	}
	return candidate, nil
}

// MirrorY returns a sibling shape reflected across the plane y = y0. Point
// order and correspondence are preserved: mirrored point i maps to original
// point i with y' = 2·y0 − y and X, Z unchanged.
func MirrorY(s Shape, y0 float64) Shape {
	wires := make([]Wire, len(s.Wires))
	for i, w := range s.Wires {
		pts := make([]mathutil.Vec3, len(w.Points))
		for j, p := range w.Points {
			pts[j] = mathutil.Vec3{p[0], 2*y0 - p[1], p[2]}
		}
		wires[i] = Wire{Points: pts, Closed: w.Closed}
	}
	return Shape{Name: s.Name + " (mirror)", Axis: s.Axis, Wires: wires}
}
