package airfoil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"avl2step/internal/mathutil"
)

// Profile is a normalized airfoil outline: unit chord, leading edge at the
// origin, ordered upper surface LE→TE then lower surface TE→LE. The loop is
// closed implicitly (last point connects back to the first).
type Profile []mathutil.Vec2

// DefaultPoints is the chordwise station count used when none is configured.
// Cosine spacing concentrates points at the leading and trailing edges, so
// this is dense enough to keep lofts from faceting visibly.
const DefaultPoints = 80

// UnknownAirfoilError reports an airfoil reference that is neither a NACA
// 4-digit code nor a readable data file.
type UnknownAirfoilError struct {
	Name string
}

func (e *UnknownAirfoilError) Error() string {
	return fmt.Sprintf("airfoil: unknown airfoil %q", e.Name)
}

var naca4Re = regexp.MustCompile(`^(?i:NACA\s*)?([0-9]{4})$`)

// NACA4Code extracts the 4-digit code from specs like "2412" or "NACA 2412".
// Returns "" if the spec is not a NACA 4-digit pattern.
func NACA4Code(spec string) string {
	m := naca4Re.FindStringSubmatch(spec)
	if m == nil {
		return ""
	}
	return m[1]
}

// Generate builds a NACA 4-digit profile with n chordwise stations per side
// using the standard analytic thickness and camber equations. The trailing
// edge is closed (thickness coefficient -0.1036).
func Generate(spec string, n int) (Profile, error) {
	code := NACA4Code(spec)
	if code == "" {
		return nil, &UnknownAirfoilError{Name: spec}
	}
	if n < 2 {
		n = DefaultPoints
	}

	m, _ := strconv.Atoi(code[0:1])
	p, _ := strconv.Atoi(code[1:2])
	tt, _ := strconv.Atoi(code[2:4])

	camber := float64(m) / 100
	pos := float64(p) / 10
	thick := float64(tt) / 100

	upper := make([]mathutil.Vec2, n)
	lower := make([]mathutil.Vec2, n)
	for i := 0; i < n; i++ {
		// Cosine-spaced chordwise sampling, LE to TE.
		theta := math.Pi * float64(i) / float64(n-1)
		x := 0.5 * (1 - math.Cos(theta))

		yt := 5 * thick * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x +
			0.2843*x*x*x - 0.1036*x*x*x*x)

		var yc, dyc float64
		if camber > 0 && pos > 0 {
			if x < pos {
				yc = camber / (pos * pos) * (2*pos*x - x*x)
				dyc = 2 * camber / (pos * pos) * (pos - x)
			} else {
				yc = camber / ((1 - pos) * (1 - pos)) * ((1 - 2*pos) + 2*pos*x - x*x)
				dyc = 2 * camber / ((1 - pos) * (1 - pos)) * (pos - x)
			}
		}
		a := math.Atan(dyc)
		upper[i] = mathutil.Vec2{x - yt*math.Sin(a), yc + yt*math.Cos(a)}
		lower[i] = mathutil.Vec2{x + yt*math.Sin(a), yc - yt*math.Cos(a)}
	}

	// Upper LE→TE, then lower TE→LE skipping the shared endpoints.
	out := make(Profile, 0, 2*n-2)
	out = append(out, upper...)
	for i := n - 2; i >= 1; i-- {
		out = append(out, lower[i])
	}
	return out, nil
}

// FlatPlate returns a degenerate zero-thickness outline used when a section
// names no airfoil and no reference profile exists for its surface.
func FlatPlate(n int) Profile {
	if n < 2 {
		n = DefaultPoints
	}
	out := make(Profile, 0, 2*n-2)
	for i := 0; i < n; i++ {
		theta := math.Pi * float64(i) / float64(n-1)
		out = append(out, mathutil.Vec2{0.5 * (1 - math.Cos(theta)), 0})
	}
	for i := n - 2; i >= 1; i-- {
		out = append(out, mathutil.Vec2{out[i][0], 0})
	}
	return out
}
