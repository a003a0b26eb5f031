// Package geom resolves each AVL section's airfoil outline into world-frame
// 3D coordinates. All placement happens in one right-handed frame: X
// chordwise aft, Y spanwise right, Z up. CAD-kernel basis conventions never
// appear here.
package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"avl2step/internal/airfoil"
	"avl2step/internal/avl"
	"avl2step/internal/mathutil"
)

// Axis identifies a world coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// InvalidTransformError reports degenerate geometric parameters for a
// surface.
type InvalidTransformError struct {
	Surface string
	Msg     string
}

func (e *InvalidTransformError) Error() string {
	return fmt.Sprintf("geom: surface %q: %s", e.Surface, e.Msg)
}

// PlacedProfile is one section's outline fully placed in world coordinates,
// plus the span coordinate and scaled chord used downstream for ordering and
// measurement. Derived per run, never persisted.
type PlacedProfile struct {
	Points []mathutil.Vec3
	Span   float64
	Chord  float64
}

// spanTol is the spread below which a coordinate counts as constant across
// sections.
const spanTol = 1e-9

// SpanAxis determines the loft axis of a surface by inspecting which of Y or
// Z varies across its section leading-edge offsets. X varies too on swept
// surfaces and is chordwise by AVL convention, so only Y and Z compete.
// Returns *InvalidTransformError when fewer than 2 distinct spanwise
// stations exist.
func SpanAxis(s *avl.Surface) (Axis, error) {
	if len(s.Sections) < 2 {
		return 0, &InvalidTransformError{Surface: s.Name, Msg: fmt.Sprintf("%d sections, need at least 2 to loft", len(s.Sections))}
	}

	ys := make([]float64, len(s.Sections))
	zs := make([]float64, len(s.Sections))
	for i, sec := range s.Sections {
		ys[i] = sec.Yle
		zs[i] = sec.Zle
	}
	varY := stat.Variance(ys, nil)
	varZ := stat.Variance(zs, nil)

	if varY < spanTol && varZ < spanTol {
		return 0, &InvalidTransformError{Surface: s.Name, Msg: "no distinct spanwise stations (Y and Z constant across sections)"}
	}
	if varZ > varY {
		return AxisZ, nil
	}
	return AxisY, nil
}

// Place resolves one section's profile into world coordinates. Composition
// order is fixed and non-commutative:
//
//  1. unit-chord profile, leading edge at the origin
//  2. scale by the section chord
//  3. rotate by surface ANGLE + section incidence about the leading edge
//  4. translate by the leading-edge offset
//  5. apply the surface SCALE to the placed point set
//  6. apply the surface TRANSLATE last
//
// The profile plane follows the span axis: thickness maps to Z when lofting
// along Y (horizontal surface) and to Y when lofting along Z (vertical
// surface).
func Place(p airfoil.Profile, sec avl.Section, surf *avl.Surface, span Axis) (PlacedProfile, error) {
	if sec.Chord <= 0 {
		return PlacedProfile{}, &InvalidTransformError{Surface: surf.Name, Msg: fmt.Sprintf("chord %g must be positive", sec.Chord)}
	}
	if span != AxisY && span != AxisZ {
		return PlacedProfile{}, &InvalidTransformError{Surface: surf.Name, Msg: fmt.Sprintf("unsupported span axis %s", span)}
	}

	twist := mathutil.Deg2Rad(surf.Angle + sec.Ainc)
	le := mathutil.Vec3{sec.Xle, sec.Yle, sec.Zle}
	scale := mathutil.Vec3{surf.Scale[0], surf.Scale[1], surf.Scale[2]}
	translate := mathutil.Vec3{surf.Translate[0], surf.Translate[1], surf.Translate[2]}

	pts := make([]mathutil.Vec3, len(p))
	for i, q := range p {
		// Chord scale, then twist about the leading edge (the origin).
		local := mathutil.Rotate2(mathutil.Vec2{q[0] * sec.Chord, q[1] * sec.Chord}, twist)

		var w mathutil.Vec3
		if span == AxisY {
			w = mathutil.Vec3{local[0], 0, local[1]}
		} else {
			w = mathutil.Vec3{local[0], local[1], 0}
		}
		pts[i] = w.Add(le).ScaleEach(scale).Add(translate)
	}

	spanCoord := pts[0][span]
	return PlacedProfile{
		Points: pts,
		Span:   spanCoord,
		Chord:  sec.Chord * surf.Scale[0],
	}, nil
}

// PlaceSurface resolves every section of a surface, verifying that the span
// coordinates are distinct enough to loft.
func PlaceSurface(profiles []airfoil.Profile, surf *avl.Surface, span Axis) ([]PlacedProfile, error) {
	if len(profiles) != len(surf.Sections) {
		return nil, &InvalidTransformError{Surface: surf.Name, Msg: fmt.Sprintf("%d profiles for %d sections", len(profiles), len(surf.Sections))}
	}

	placed := make([]PlacedProfile, len(surf.Sections))
	for i, sec := range surf.Sections {
		pp, err := Place(profiles[i], sec, surf, span)
		if err != nil {
			return nil, err
		}
		placed[i] = pp
	}

	spread := 0.0
	for _, pp := range placed {
		if d := math.Abs(pp.Span - placed[0].Span); d > spread {
			spread = d
		}
	}
	if spread < spanTol {
		return nil, &InvalidTransformError{Surface: surf.Name, Msg: "placed sections collapse to a single spanwise station"}
	}
	return placed, nil
}
