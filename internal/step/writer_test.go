package step

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avl2step/internal/cad"
	"avl2step/internal/mathutil"
)

func testModel(t *testing.T, shapes int) *cad.CadModel {
	t.Helper()
	var out []cad.Shape
	for i := 0; i < shapes; i++ {
		w1, err := cad.BuildWire([]mathutil.Vec3{
			{0, 0, 0}, {2, 0, 0}, {2, 0, 0.1}, {0, 0, 0.1},
		}, true)
		require.NoError(t, err)
		w2, err := cad.BuildWire([]mathutil.Vec3{
			{0, 3, 0}, {1, 3, 0}, {1, 3, 0.1}, {0, 3, 0.1},
		}, true)
		require.NoError(t, err)
		s, err := cad.Loft("panel", []cad.Wire{w1, w2})
		require.NoError(t, err)
		out = append(out, s)
	}
	return cad.Compound("test model", out)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("part 21 framing", func(t *testing.T) {
		t.Parallel()
		text := string(Encode(testModel(t, 1), "wing.step"))
		assert.True(t, strings.HasPrefix(text, "ISO-10303-21;\n"))
		assert.True(t, strings.HasSuffix(text, "END-ISO-10303-21;\n"))
		assert.Contains(t, text, "FILE_SCHEMA(('AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }'));")
		assert.Contains(t, text, "FILE_NAME('wing.step'")
		assert.Contains(t, text, "DATA;\n")
		assert.Contains(t, text, "ENDSEC;\n")
	})

	t.Run("one surface entity per shape", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{1, 2, 5} {
			text := string(Encode(testModel(t, n), "m.step"))
			assert.Equal(t, n, strings.Count(text, "B_SPLINE_SURFACE_WITH_KNOTS"), "%d shapes", n)
		}
	})

	t.Run("closed profiles repeat the seam point", func(t *testing.T) {
		t.Parallel()
		text := string(Encode(testModel(t, 1), "m.step"))
		// 2 wires x (4 points + repeated seam) = 10 cartesian points, plus
		// the placement origin.
		assert.Equal(t, 11, strings.Count(text, "CARTESIAN_POINT"))
	})

	t.Run("reals carry a decimal point", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "0.", fmtReal(0))
		assert.Equal(t, "2.", fmtReal(2))
		assert.Equal(t, "-3.45", fmtReal(-3.45))
		assert.Equal(t, "1.E-08", fmtReal(1e-8))
		assert.Equal(t, "1.5E-08", fmtReal(1.5e-8))
	})

	t.Run("quotes apostrophes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'it''s'", str("it's"))
	})
}

func TestWrite(t *testing.T) {
	t.Parallel()

	t.Run("writes the file atomically", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "out.step")
		require.NoError(t, Write(testModel(t, 2), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "ISO-10303-21;")

		// No leftover temporaries.
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("unwritable destination", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing-subdir", "out.step")
		err := Write(testModel(t, 1), path)
		var exp *ExportError
		require.ErrorAs(t, err, &exp)
		assert.Equal(t, path, exp.Path)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "no partial file left behind")
	})
}
