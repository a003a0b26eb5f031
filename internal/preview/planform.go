// Package preview renders an orthographic top view (X–Y planform) of the
// assembled model for a quick visual check without a CAD viewer.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"avl2step/internal/cad"
	"avl2step/internal/mathutil"
)

// supersample factor for line rendering before the final downscale.
const supersample = 2

var wireColor = color.NRGBA{R: 230, G: 230, B: 240, A: 255}

// Planform draws every wire of the model projected onto the X–Y plane,
// scaled to fit a size×size canvas with a margin. X runs down the image
// (chord aft), Y runs right (span).
func Planform(m *cad.CadModel, size int) *image.NRGBA {
	if size < 16 {
		size = 256
	}
	big := size * supersample
	img := image.NewNRGBA(image.Rect(0, 0, big, big))

	min, max := m.Bounds()
	spanX := max[0] - min[0]
	spanY := max[1] - min[1]
	span := math.Max(spanX, spanY)
	if span <= 0 {
		span = 1
	}
	margin := float64(big) * 0.05
	sc := (float64(big) - 2*margin) / span
	// Center the smaller extent.
	offX := margin + (float64(big)-2*margin-spanY*sc)/2
	offY := margin + (float64(big)-2*margin-spanX*sc)/2

	project := func(p mathutil.Vec3) (float64, float64) {
		return offX + (p[1]-min[1])*sc, offY + (p[0]-min[0])*sc
	}

	for _, s := range m.Shapes {
		for _, w := range s.Wires {
			for i := range w.Points {
				j := i + 1
				if j == len(w.Points) {
					if !w.Closed {
						break
					}
					j = 0
				}
				x0, y0 := project(w.Points[i])
				x1, y1 := project(w.Points[j])
				drawLine(img, x0, y0, x1, y1)
			}
		}
	}

	// Downscale to the final canvas.
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// WriteWebP encodes the preview image to path.
func WriteWebP(img *image.NRGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return nil
}

// drawLine plots a 1px segment with integer DDA stepping.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(x0 + dx*t)
		y := int(y0 + dy*t)
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, wireColor)
		}
	}
}
