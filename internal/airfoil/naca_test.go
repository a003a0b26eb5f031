package airfoil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("symmetric 0012 outline", func(t *testing.T) {
		t.Parallel()
		p, err := Generate("0012", 60)
		require.NoError(t, err)
		require.NotEmpty(t, p)

		// Unit chord, LE at origin.
		assert.InDelta(t, 0, p[0][0], 1e-12)
		assert.InDelta(t, 0, p[0][1], 1e-12)

		xMax := 0.0
		for _, pt := range p {
			if pt[0] > xMax {
				xMax = pt[0]
			}
		}
		assert.InDelta(t, 1.0, xMax, 1e-9)

		// Symmetric foil: max thickness near 12% of chord.
		tMax := 0.0
		for _, pt := range p {
			if pt[1] > tMax {
				tMax = pt[1]
			}
		}
		assert.InDelta(t, 0.06, tMax, 0.005, "half-thickness of a 12%% foil")
	})

	t.Run("closed trailing edge", func(t *testing.T) {
		t.Parallel()
		p, err := Generate("0012", 60)
		require.NoError(t, err)

		// The -0.1036 thickness coefficient closes the TE exactly: every
		// point at x=1 has zero thickness, so the loop has no TE gap.
		for _, pt := range p {
			if pt[0] > 1-1e-9 {
				assert.InDelta(t, 0, pt[1], 1e-9)
			}
		}
	})

	t.Run("cosine spacing clusters at edges", func(t *testing.T) {
		t.Parallel()
		p, err := Generate("0012", 80)
		require.NoError(t, err)

		// Count upper-surface points in the first and middle 10% of chord:
		// cosine spacing puts clearly more stations near the leading edge.
		nearLE, mid := 0, 0
		for _, pt := range p[:80] {
			if pt[0] < 0.1 {
				nearLE++
			}
			if pt[0] >= 0.45 && pt[0] < 0.55 {
				mid++
			}
		}
		assert.Greater(t, nearLE, mid)
	})

	t.Run("cambered 2412 lifts the camber line", func(t *testing.T) {
		t.Parallel()
		p, err := Generate("NACA 2412", 60)
		require.NoError(t, err)

		// Mean of upper+lower thickness at mid-chord is positive for a
		// positively cambered foil.
		sum := 0.0
		for _, pt := range p {
			sum += pt[1]
		}
		assert.Positive(t, sum)
	})

	t.Run("unknown code", func(t *testing.T) {
		t.Parallel()
		_, err := Generate("S1223", 60)
		var unknown *UnknownAirfoilError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "S1223", unknown.Name)
	})
}

func TestNACA4Code(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2412":      "2412",
		"NACA 2412": "2412",
		"NACA2412":  "2412",
		"naca 0012": "0012",
		"ag40d.dat": "",
		"241":       "",
		"24121":     "",
	}
	for spec, want := range cases {
		assert.Equal(t, want, NACA4Code(spec), "spec %q", spec)
	}
}

func TestFlatPlate(t *testing.T) {
	t.Parallel()

	p := FlatPlate(40)
	require.NotEmpty(t, p)
	for _, pt := range p {
		assert.Zero(t, pt[1])
		assert.GreaterOrEqual(t, pt[0], 0.0)
		assert.LessOrEqual(t, pt[0], 1.0)
	}
}
