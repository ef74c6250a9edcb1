package mask

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// RotateWrapped rotates buf counter-clockwise by degrees around its center.
// Pixels rotated in from outside the frame are taken from the tiled
// neighbors, so a seamless input stays free of empty corners.
func RotateWrapped(buf pattern.Buffer, degrees float64) pattern.Buffer {
	if math.Mod(degrees, 360) == 0 || buf.W == 0 || buf.H == 0 {
		return buf.Clone()
	}

	mosaic := image.NewGray16(image.Rect(0, 0, buf.W*3, buf.H*3))
	for y := 0; y < buf.H*3; y++ {
		for x := 0; x < buf.W*3; x++ {
			v := pattern.Clamp01(buf.At(x%buf.W, y%buf.H))
			mosaic.SetGray16(x, y, color.Gray16{Y: uint16(v*65535 + 0.5)})
		}
	}

	g := gift.New(
		gift.Rotate(float32(degrees), color.Black, gift.LinearInterpolation),
		gift.CropToSize(buf.W, buf.H, gift.CenterAnchor),
	)
	dst := image.NewGray16(g.Bounds(mosaic.Bounds()))
	g.Draw(dst, mosaic)
	return fromGray16(dst)
}
