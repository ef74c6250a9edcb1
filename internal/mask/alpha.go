package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// AlphaSource selects how alpha is derived from the value buffer.
type AlphaSource int

const (
	AlphaValue AlphaSource = iota
	AlphaEdge
	AlphaThreshold
	// AlphaRadial is only meaningful for flipbooks; GenerateAlpha treats it
	// as AlphaValue and the caller combines the radial mask afterwards.
	AlphaRadial
)

var ErrUnknownAlphaSource = errors.New("unknown alpha source")

var alphaNames = map[AlphaSource]string{
	AlphaValue:     "value",
	AlphaEdge:      "edge",
	AlphaThreshold: "threshold",
	AlphaRadial:    "radial",
}

func (s AlphaSource) String() string {
	if n, ok := alphaNames[s]; ok {
		return n
	}
	return fmt.Sprintf("AlphaSource(%d)", int(s))
}

// ParseAlphaSource maps a flag value to an AlphaSource.
func ParseAlphaSource(s string) (AlphaSource, error) {
	for src, n := range alphaNames {
		if n == s {
			return src, nil
		}
	}
	return AlphaValue, fmt.Errorf("%w: %q", ErrUnknownAlphaSource, s)
}

// AlphaParams configures GenerateAlpha.
type AlphaParams struct {
	Source    AlphaSource
	Threshold float64
	Softness  float64
	Multiply  float64
	// Blur is an optional Gaussian sigma in pixels applied before Multiply.
	Blur float32
}

// DefaultAlphaParams returns value alpha with the command-line defaults.
func DefaultAlphaParams() AlphaParams {
	return AlphaParams{Source: AlphaValue, Threshold: 0.1, Softness: 0.1, Multiply: 1}
}

const softnessEpsilon = 1e-8

// sobelScale keeps the Sobel magnitude of a [0,1] field (at most 4*sqrt(2))
// inside the 16-bit range.
const sobelScale = 1.0 / 6

// GenerateAlpha derives an alpha buffer of the same shape as buf.
// Unknown sources behave like AlphaValue.
func GenerateAlpha(buf pattern.Buffer, p AlphaParams) pattern.Buffer {
	var alpha pattern.Buffer
	switch p.Source {
	case AlphaEdge:
		alpha = EdgeMagnitude(buf)
		pattern.Normalize(alpha.Pix)
	case AlphaThreshold:
		alpha = pattern.NewBuffer(buf.W, buf.H)
		for i, v := range buf.Pix {
			alpha.Pix[i] = pattern.Clamp01((v - p.Threshold) / (p.Softness + softnessEpsilon))
		}
	default:
		alpha = buf.Clone()
	}

	if p.Blur > 0 {
		alpha = GaussianBlur(alpha, p.Blur)
	}
	for i, v := range alpha.Pix {
		alpha.Pix[i] = pattern.Clamp01(v * p.Multiply)
	}
	return alpha
}

// EdgeMagnitude returns the Sobel gradient magnitude of buf, unnormalized
// apart from a constant factor.
func EdgeMagnitude(buf pattern.Buffer) pattern.Buffer {
	src := toGray16(buf, sobelScale)
	g := gift.New(gift.Sobel())
	dst := image.NewGray16(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return fromGray16(dst)
}

// GaussianBlur softens a buffer with gift's Gaussian filter.
func GaussianBlur(buf pattern.Buffer, sigma float32) pattern.Buffer {
	src := toGray16(buf, 1)
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewGray16(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return fromGray16(dst)
}

func toGray16(buf pattern.Buffer, scale float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, buf.W, buf.H))
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			v := pattern.Clamp01(buf.At(x, y) * scale)
			img.SetGray16(x, y, color.Gray16{Y: uint16(v*65535 + 0.5)})
		}
	}
	return img
}

func fromGray16(img *image.Gray16) pattern.Buffer {
	b := img.Bounds()
	out := pattern.NewBuffer(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, float64(img.Gray16At(b.Min.X+x, b.Min.Y+y).Y)/65535)
		}
	}
	return out
}
