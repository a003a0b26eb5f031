package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate2(t *testing.T) {
	t.Parallel()

	// Positive incidence pitches the trailing edge down.
	p := Rotate2(Vec2{1, 0}, Deg2Rad(90))
	assert.InDelta(t, 0, p[0], 1e-12)
	assert.InDelta(t, -1, p[1], 1e-12)

	// The origin is the fixed point.
	o := Rotate2(Vec2{0, 0}, Deg2Rad(37))
	assert.Equal(t, Vec2{0, 0}, o)
}

func TestDeg2Rad(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-15)
}

func TestVec3(t *testing.T) {
	t.Parallel()

	a := Vec3{1, 2, 3}
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, Vec3{2, 6, 12}, a.ScaleEach(Vec3{2, 3, 4}))
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(Vec3{4, 5, 6}))
	assert.InDelta(t, math.Sqrt(14), a.Len(), 1e-12)

	assert.Equal(t, Vec3{1, 2, 3}, Min(a, Vec3{4, 5, 6}))
	assert.Equal(t, Vec3{4, 5, 6}, Max(a, Vec3{4, 5, 6}))
}
