// Package mask post-processes normalized pattern buffers: tonal modifiers,
// alpha extraction, the flipbook radial mask and wrap-around rotation.
package mask

import (
	"math"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

// Modifiers are global tonal adjustments. The zero value is not the
// identity; use DefaultModifiers.
type Modifiers struct {
	Invert     bool
	Contrast   float64
	Brightness float64
	Gamma      float64
	RemapMin   float64
	RemapMax   float64
}

// DefaultModifiers returns the identity modifier set.
func DefaultModifiers() Modifiers {
	return Modifiers{Contrast: 1, Gamma: 1, RemapMin: 0, RemapMax: 1}
}

// ApplyModifiers runs invert, contrast, brightness, gamma and remap in that
// fixed order and clamps the result to [0,1]. The input is not modified.
func ApplyModifiers(buf pattern.Buffer, m Modifiers) pattern.Buffer {
	out := buf.Clone()
	for i, v := range out.Pix {
		if m.Invert {
			v = 1 - v
		}
		if m.Contrast != 1 {
			v = (v-0.5)*m.Contrast + 0.5
		}
		v += m.Brightness
		if m.Gamma != 1 {
			v = math.Pow(pattern.Clamp01(v), m.Gamma)
		}
		v = m.RemapMin + v*(m.RemapMax-m.RemapMin)
		out.Pix[i] = pattern.Clamp01(v)
	}
	return out
}
