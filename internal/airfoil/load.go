package airfoil

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"avl2step/internal/mathutil"
)

// Load reads airfoil coordinates from a whitespace-delimited data file
// (Selig-style: name line, then x z pairs tracing upper TE→LE then lower
// LE→TE). Lines that do not parse as two numbers are skipped, matching the
// tolerant behavior AVL itself shows for .dat headers. The result is
// normalized to unit chord with the leading edge at x=0 and reordered to the
// Profile convention (upper LE→TE, lower TE→LE).
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnknownAirfoilError{Name: path}
	}
	defer f.Close()

	var pts []mathutil.Vec2
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		z, errZ := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errZ != nil {
			continue
		}
		pts = append(pts, mathutil.Vec2{x, z})
	}
	if err := sc.Err(); err != nil {
		return nil, &UnknownAirfoilError{Name: path}
	}
	if len(pts) < 3 {
		return nil, &UnknownAirfoilError{Name: path}
	}

	return normalize(pts), nil
}

// normalize rescales to unit chord, moves the leading edge to x=0, and
// reorders the loop to upper LE→TE, lower TE→LE.
func normalize(pts []mathutil.Vec2) Profile {
	xMin, xMax := pts[0][0], pts[0][0]
	iLE := 0
	for i, p := range pts {
		if p[0] < xMin {
			xMin = p[0]
			iLE = i
		}
		if p[0] > xMax {
			xMax = p[0]
		}
	}
	chord := xMax - xMin
	if chord <= 0 {
		chord = 1
	}
	scaled := make([]mathutil.Vec2, len(pts))
	for i, p := range pts {
		scaled[i] = mathutil.Vec2{(p[0] - xMin) / chord, p[1] / chord}
	}

	// Input walks upper TE→LE then lower LE→TE; the LE is the minimum-x
	// point. Reverse each side to get upper LE→TE, lower TE→LE.
	upper := scaled[:iLE+1]
	lower := scaled[iLE:]

	out := make(Profile, 0, len(scaled))
	for i := len(upper) - 1; i >= 0; i-- {
		out = append(out, upper[i])
	}
	for i := len(lower) - 1; i >= 1; i-- {
		out = append(out, lower[i])
	}
	return dedupeAdjacent(out)
}

func dedupeAdjacent(p Profile) Profile {
	if len(p) < 2 {
		return p
	}
	out := p[:1]
	for _, pt := range p[1:] {
		last := out[len(out)-1]
		if pt == last {
			continue
		}
		out = append(out, pt)
	}
	return out
}
