// Package texture converts pattern buffers to images and writes them as PNG.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// WriteResult describes a written texture file.
type WriteResult struct {
	Path   string
	Width  int
	Height int
	Bytes  int
}

// toByte maps [0,1] to 0..255 by truncation.
func toByte(v float64) uint8 {
	return uint8(pattern.Clamp01(v) * 255)
}

// Encode builds an 8-bit RGBA image with R=G=B=value and A=alpha. When
// premultiply is set the gray channels are scaled by alpha.
func Encode(value, alpha pattern.Buffer, premultiply bool) (*image.NRGBA, error) {
	if value.W != alpha.W || value.H != alpha.H {
		return nil, fmt.Errorf("value is %dx%d but alpha is %dx%d", value.W, value.H, alpha.W, alpha.H)
	}
	img := image.NewNRGBA(image.Rect(0, 0, value.W, value.H))
	for i, v := range value.Pix {
		a := alpha.Pix[i]
		if premultiply {
			v = pattern.Clamp01(v) * pattern.Clamp01(a)
		}
		g := toByte(v)
		o := i * 4
		img.Pix[o+0] = g
		img.Pix[o+1] = g
		img.Pix[o+2] = g
		img.Pix[o+3] = toByte(a)
	}
	return img, nil
}

// ToBuffer reads the luminance of img back into a [0,1] buffer.
func ToBuffer(img image.Image) pattern.Buffer {
	b := img.Bounds()
	out := pattern.NewBuffer(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			out.Set(x, y, float64(g.Y)/65535)
		}
	}
	return out
}

// EncodePNG serializes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode texture: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img to path, creating the parent directory.
func WritePNG(path string, img image.Image) (WriteResult, error) {
	res := WriteResult{Path: path, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("failed to create output dir %s: %w", dir, err)
		}
	}

	data, err := EncodePNG(img)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return res, fmt.Errorf("failed to create texture %s: %w", path, err)
	}
	res.Bytes = len(data)
	return res, nil
}
