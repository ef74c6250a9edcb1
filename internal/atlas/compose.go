package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// Compose copies frames into their cells of the layout canvas. Cells without
// a frame stay zero.
func Compose(l Layout, frames []pattern.Buffer) (pattern.Buffer, error) {
	if len(frames) > l.Len() {
		return pattern.Buffer{}, fmt.Errorf("%d frames for %d cells", len(frames), l.Len())
	}
	canvas := l.Canvas()
	out := pattern.NewBuffer(canvas.Dx(), canvas.Dy())
	for i, f := range frames {
		r := l.Rect(i)
		if f.W != r.Dx() || f.H != r.Dy() {
			return pattern.Buffer{}, fmt.Errorf("frame %d is %dx%d, cell is %dx%d", i, f.W, f.H, r.Dx(), r.Dy())
		}
		for y := 0; y < f.H; y++ {
			row := (r.Min.Y+y)*out.W + r.Min.X
			copy(out.Pix[row:row+f.W], f.Pix[y*f.W:(y+1)*f.W])
		}
	}
	return out, nil
}

// ComposeImages draws imgs into the layout cells. Images whose size differs
// from the cell are resampled with Catmull-Rom.
func ComposeImages(l Layout, imgs []image.Image) (*image.NRGBA, error) {
	if len(imgs) > l.Len() {
		return nil, fmt.Errorf("%d images for %d cells", len(imgs), l.Len())
	}
	return composeAt(l.Canvas(), l.Rects[:len(imgs)], imgs), nil
}

// ComposePacked draws imgs at the rects of a shelf packing.
func ComposePacked(p Packing, imgs []image.Image) (*image.NRGBA, error) {
	if len(imgs) != len(p.Rects) {
		return nil, fmt.Errorf("%d images for %d packed rects", len(imgs), len(p.Rects))
	}
	return composeAt(p.Canvas(), p.Rects, imgs), nil
}

func composeAt(canvas image.Rectangle, rects []image.Rectangle, imgs []image.Image) *image.NRGBA {
	dst := image.NewNRGBA(canvas)
	for i, img := range imgs {
		r := rects[i]
		sb := img.Bounds()
		if sb.Dx() == r.Dx() && sb.Dy() == r.Dy() {
			draw.Draw(dst, r, img, sb.Min, draw.Src)
			continue
		}
		draw.CatmullRom.Scale(dst, r, img, sb, draw.Src, nil)
	}
	return dst
}
