package mask

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

func ramp(w, h int) pattern.Buffer {
	b := pattern.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, float64(x)/float64(w-1))
		}
	}
	return b
}

func constant(w, h int, v float64) pattern.Buffer {
	b := pattern.NewBuffer(w, h)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

func TestApplyModifiersIdentity(t *testing.T) {
	in := ramp(16, 4)
	out := ApplyModifiers(in, DefaultModifiers())
	for i := range in.Pix {
		if math.Abs(in.Pix[i]-out.Pix[i]) > 1e-12 {
			t.Fatalf("pixel %d changed: %f -> %f", i, in.Pix[i], out.Pix[i])
		}
	}
}

func TestApplyModifiersOrder(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		mods Modifiers
		want float64
	}{
		{"invert before brightness", 0.2, Modifiers{Invert: true, Contrast: 1, Brightness: 0.1, Gamma: 1, RemapMax: 1}, 0.9},
		{"contrast around mid gray", 0.75, Modifiers{Contrast: 2, Gamma: 1, RemapMax: 1}, 1.0},
		{"contrast before brightness", 0.6, Modifiers{Contrast: 2, Brightness: -0.5, Gamma: 1, RemapMax: 1}, 0.2},
		{"gamma clamps first", 0.9, Modifiers{Contrast: 1, Brightness: 0.5, Gamma: 2, RemapMax: 1}, 1.0},
		{"gamma", 0.5, Modifiers{Contrast: 1, Gamma: 2, RemapMax: 1}, 0.25},
		{"remap after gamma", 0.5, Modifiers{Contrast: 1, Gamma: 2, RemapMin: 0.2, RemapMax: 0.6}, 0.3},
		{"final clamp", 0.1, Modifiers{Contrast: 1, Brightness: -0.5, Gamma: 1, RemapMax: 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ApplyModifiers(pattern.BufferFrom([][]float64{{tt.in}}), tt.mods)
			assert.InDelta(t, tt.want, out.Pix[0], 1e-9)
		})
	}
}

func TestApplyModifiersLeavesInputUntouched(t *testing.T) {
	in := ramp(8, 2)
	before := in.Clone()
	ApplyModifiers(in, Modifiers{Invert: true, Contrast: 3, Gamma: 0.5, RemapMax: 1})
	assert.Equal(t, before.Pix, in.Pix)
}

func TestGenerateAlphaBounds(t *testing.T) {
	g := pattern.NewGenerator(3)
	value := g.FBM2D(32, pattern.DefaultNoiseParams(), false)

	for _, src := range []AlphaSource{AlphaValue, AlphaEdge, AlphaThreshold, AlphaRadial, AlphaSource(99)} {
		for _, mul := range []float64{0, 0.5, 1, 3} {
			p := DefaultAlphaParams()
			p.Source = src
			p.Multiply = mul
			alpha := GenerateAlpha(value, p)
			require.Equal(t, value.W, alpha.W)
			require.Equal(t, value.H, alpha.H)
			for i, a := range alpha.Pix {
				if math.IsNaN(a) || a < 0 || a > 1 {
					t.Fatalf("source %s multiply %.1f: alpha[%d] = %f", src, mul, i, a)
				}
			}
		}
	}
}

func TestGenerateAlphaValueCopies(t *testing.T) {
	value := ramp(8, 8)
	alpha := GenerateAlpha(value, DefaultAlphaParams())
	assert.Equal(t, value.Pix, alpha.Pix)

	alpha.Pix[0] = 0.5
	assert.Equal(t, 0.0, value.Pix[0], "alpha must not alias the value buffer")
}

func TestGenerateAlphaThreshold(t *testing.T) {
	value := pattern.BufferFrom([][]float64{{0.05, 0.1, 0.15, 0.3}})
	alpha := GenerateAlpha(value, AlphaParams{Source: AlphaThreshold, Threshold: 0.1, Softness: 0.1, Multiply: 1})
	assert.Equal(t, 0.0, alpha.Pix[0])
	assert.Equal(t, 0.0, alpha.Pix[1])
	assert.InDelta(t, 0.5, alpha.Pix[2], 1e-6)
	assert.Equal(t, 1.0, alpha.Pix[3])

	hard := GenerateAlpha(value, AlphaParams{Source: AlphaThreshold, Threshold: 0.1, Softness: 0, Multiply: 1})
	assert.Equal(t, 1.0, hard.Pix[2])
}

func TestGenerateAlphaEdge(t *testing.T) {
	step := pattern.NewBuffer(32, 16)
	for y := 0; y < 16; y++ {
		for x := 16; x < 32; x++ {
			step.Set(x, y, 1)
		}
	}
	alpha := GenerateAlpha(step, AlphaParams{Source: AlphaEdge, Multiply: 1})

	assert.Zero(t, alpha.At(3, 8))
	assert.Zero(t, alpha.At(28, 8))
	assert.Greater(t, alpha.At(15, 8), 0.9)
	assert.Greater(t, alpha.At(16, 8), 0.9)

	flat := GenerateAlpha(constant(8, 8, 0.4), AlphaParams{Source: AlphaEdge, Multiply: 1})
	for _, a := range flat.Pix {
		assert.Zero(t, a)
	}
}

func TestGenerateAlphaBlur(t *testing.T) {
	step := pattern.NewBuffer(32, 4)
	for y := 0; y < 4; y++ {
		for x := 16; x < 32; x++ {
			step.Set(x, y, 1)
		}
	}
	sharp := GenerateAlpha(step, AlphaParams{Multiply: 1})
	soft := GenerateAlpha(step, AlphaParams{Multiply: 1, Blur: 2})

	assert.Equal(t, 0.0, sharp.At(15, 1))
	assert.Greater(t, soft.At(15, 1), 0.1)
	assert.Less(t, soft.At(16, 1), 0.9)
}

func TestParseAlphaSource(t *testing.T) {
	for _, name := range []string{"value", "edge", "threshold", "radial"} {
		src, err := ParseAlphaSource(name)
		require.NoError(t, err)
		assert.Equal(t, name, src.String())
	}
	_, err := ParseAlphaSource("luma")
	require.ErrorIs(t, err, ErrUnknownAlphaSource)
}

func TestRadialMask(t *testing.T) {
	m := RadialMask(64, DefaultRadialMaskParams())
	assert.Equal(t, 1.0, m.At(31, 31))
	assert.Equal(t, 1.0, m.At(32, 32))
	assert.Equal(t, 0.0, m.At(0, 0))
	assert.Equal(t, 0.0, m.At(63, 0))

	for x := 33; x < 64; x++ {
		if m.At(x, 32) > m.At(x-1, 32) {
			t.Errorf("mask increases outward at x=%d", x)
		}
	}

	zero := RadialMask(8, RadialMaskParams{Radius: 0, Softness: 0.3, Power: 1})
	for _, v := range zero.Pix {
		assert.Zero(t, v)
	}
}

func TestCombineRadial(t *testing.T) {
	value := pattern.BufferFrom([][]float64{{0.2, 0.8}})
	mask := pattern.BufferFrom([][]float64{{0.5, 0.5}})

	assert.InDeltaSlice(t, []float64{0.1, 0.4}, CombineRadial(value, mask, CombineMultiply).Pix, 1e-12)
	assert.Equal(t, []float64{0.5, 0.5}, CombineRadial(value, mask, CombineReplace).Pix)
	assert.Equal(t, []float64{0.5, 0.8}, CombineRadial(value, mask, CombineMax).Pix)
	assert.InDeltaSlice(t, []float64{0.1, 0.4}, CombineRadial(value, mask, CombineMode(7)).Pix, 1e-12)

	alpha := RadialAlpha(value, mask, CombineMax, 2)
	assert.Equal(t, []float64{1, 1}, alpha.Pix)

	c, err := ParseCombineMode("max")
	require.NoError(t, err)
	assert.Equal(t, CombineMax, c)
	_, err = ParseCombineMode("screen")
	require.ErrorIs(t, err, ErrUnknownCombine)
}

func TestRotateWrapped(t *testing.T) {
	in := ramp(32, 32)
	assert.Equal(t, in.Pix, RotateWrapped(in, 0).Pix)
	assert.Equal(t, in.Pix, RotateWrapped(in, 720).Pix)

	rotated := RotateWrapped(in, 30)
	require.Equal(t, 32, rotated.W)
	require.Equal(t, 32, rotated.H)
	assert.NotEqual(t, in.Pix, rotated.Pix)

	// wrapped edges leave no background in the corners
	flat := RotateWrapped(constant(24, 24, 0.6), 37)
	for i, v := range flat.Pix {
		if math.Abs(v-0.6) > 1e-3 {
			t.Fatalf("pixel %d = %f, want 0.6", i, v)
		}
	}
}
