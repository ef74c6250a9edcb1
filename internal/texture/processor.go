package texture

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// TileTexture repeats src across a width x height image. Offsets shift the
// sampling grid, so neighboring tiles line up without seams.
func TileTexture(src image.Image, width, height, offsetX, offsetY int) *image.NRGBA {
	if src == nil || width <= 0 || height <= 0 {
		return nil
	}

	bounds := src.Bounds()
	sw := bounds.Dx()
	sh := bounds.Dy()

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if sw == 0 || sh == 0 {
		return dst
	}

	mod := func(a, b int) int {
		r := a % b
		if r < 0 {
			r += b
		}
		return r
	}

	for y := 0; y < height; y++ {
		sy := bounds.Min.Y + mod(offsetY+y, sh)
		for x := 0; x < width; x++ {
			sx := bounds.Min.X + mod(offsetX+x, sw)
			dst.Set(x, y, src.At(sx, sy))
		}
	}

	return dst
}

// TiledPreview repeats img n x n times, for eyeballing seams.
func TiledPreview(img image.Image, n int) *image.NRGBA {
	b := img.Bounds()
	return TileTexture(img, b.Dx()*n, b.Dy()*n, 0, 0)
}

// Ramp maps gray values onto a color gradient blended in CIE Lab space.
type Ramp struct {
	Start colorful.Color
	End   colorful.Color
}

// ParseRamp builds a Ramp from two hex colors such as "#1a0f00".
func ParseRamp(start, end string) (Ramp, error) {
	s, err := colorful.Hex(start)
	if err != nil {
		return Ramp{}, fmt.Errorf("invalid ramp start color %q: %w", start, err)
	}
	e, err := colorful.Hex(end)
	if err != nil {
		return Ramp{}, fmt.Errorf("invalid ramp end color %q: %w", end, err)
	}
	return Ramp{Start: s, End: e}, nil
}

// At returns the ramp color at t in [0,1].
func (r Ramp) At(t float64) color.NRGBA {
	c := r.Start.BlendLab(r.End, pattern.Clamp01(t)).Clamped()
	cr, cg, cb := c.RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: 255}
}

// EncodeTinted is Encode with the gray value replaced by the ramp color.
func EncodeTinted(value, alpha pattern.Buffer, r Ramp) (*image.NRGBA, error) {
	if value.W != alpha.W || value.H != alpha.H {
		return nil, fmt.Errorf("value is %dx%d but alpha is %dx%d", value.W, value.H, alpha.W, alpha.H)
	}
	img := image.NewNRGBA(image.Rect(0, 0, value.W, value.H))
	for i, v := range value.Pix {
		c := r.At(v)
		c.A = toByte(alpha.Pix[i])
		img.SetNRGBA(i%value.W, i/value.W, c)
	}
	return img, nil
}
