package mask

import (
	"errors"
	"fmt"
	"math"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// RadialMaskParams shapes a circular falloff. Radius is relative to half the
// frame size, so 1 touches the frame edges.
type RadialMaskParams struct {
	Radius   float64
	Softness float64
	Power    float64
}

func DefaultRadialMaskParams() RadialMaskParams {
	return RadialMaskParams{Radius: 0.9, Softness: 0.3, Power: 1}
}

// CombineMode merges a radial mask with the value buffer.
type CombineMode int

const (
	CombineMultiply CombineMode = iota
	CombineReplace
	CombineMax
)

var ErrUnknownCombine = errors.New("unknown combine mode")

var combineNames = map[CombineMode]string{
	CombineMultiply: "multiply",
	CombineReplace:  "replace",
	CombineMax:      "max",
}

func (c CombineMode) String() string {
	if n, ok := combineNames[c]; ok {
		return n
	}
	return fmt.Sprintf("CombineMode(%d)", int(c))
}

func ParseCombineMode(s string) (CombineMode, error) {
	for c, n := range combineNames {
		if n == s {
			return c, nil
		}
	}
	return CombineMultiply, fmt.Errorf("%w: %q", ErrUnknownCombine, s)
}

// RadialMask renders the mask for a size x size frame: 1 inside the solid
// core, falling to 0 at Radius.
func RadialMask(size int, p RadialMaskParams) pattern.Buffer {
	b := pattern.NewBuffer(size, size)
	half := float64(size) / 2
	r := p.Radius * half
	for y := range size {
		for x := range size {
			var m float64
			if r > 0 {
				d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / r
				m = pattern.Clamp01((1 - d) / (p.Softness + softnessEpsilon))
			}
			if p.Power != 1 {
				m = math.Pow(m, p.Power)
			}
			b.Pix[y*size+x] = m
		}
	}
	return b
}

// CombineRadial merges mask into value. Unknown modes multiply.
func CombineRadial(value, mask pattern.Buffer, mode CombineMode) pattern.Buffer {
	out := pattern.NewBuffer(value.W, value.H)
	for i, v := range value.Pix {
		m := mask.Pix[i]
		switch mode {
		case CombineReplace:
			out.Pix[i] = m
		case CombineMax:
			out.Pix[i] = math.Max(v, m)
		default:
			out.Pix[i] = v * m
		}
	}
	return out
}

// RadialAlpha combines the mask with value and applies multiply and clamp,
// the radial counterpart of GenerateAlpha.
func RadialAlpha(value, mask pattern.Buffer, mode CombineMode, multiply float64) pattern.Buffer {
	out := CombineRadial(value, mask, mode)
	for i, v := range out.Pix {
		out.Pix[i] = pattern.Clamp01(v * multiply)
	}
	return out
}
