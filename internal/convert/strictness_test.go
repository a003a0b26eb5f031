package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avl2step/internal/cad"
)

// badPlane has a first surface whose middle sections coincide spanwise, which
// the loft rejects, followed by a healthy surface.
const badPlane = `Strictness
SURFACE
Broken
SECTION
0.0 0.0 0.0 2.0 0.0
SECTION
0.0 2.0 0.0 1.5 0.0
SECTION
0.0 2.0 0.0 1.2 0.0
SECTION
0.0 4.0 0.0 1.0 0.0

SURFACE
Wing
SECTION
0.0 0.0 0.0 2.0 0.0
SECTION
0.0 4.0 0.0 1.0 0.0
`

func TestLoftFailureStrictness(t *testing.T) {
	t.Parallel()

	t.Run("non-strict skips the surface and continues", func(t *testing.T) {
		t.Parallel()
		opts := quietOpts(writeAVL(t, t.TempDir(), badPlane))
		opts.ExcludeLastSurface = false

		res, err := Convert(opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"Broken"}, res.Skipped)
		assert.Equal(t, 1, res.Surfaces)
		require.Len(t, res.Model.Shapes, 1)
		assert.Equal(t, "Wing", res.Model.Shapes[0].Name)
	})

	t.Run("strict aborts the run", func(t *testing.T) {
		t.Parallel()
		opts := quietOpts(writeAVL(t, t.TempDir(), badPlane))
		opts.ExcludeLastSurface = false
		opts.Strict = true

		_, err := Convert(opts)
		var lerr *cad.LoftError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, "Broken", lerr.Surface)
	})
}
