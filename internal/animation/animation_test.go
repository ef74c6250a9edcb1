package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModes(t *testing.T) {
	tests := []struct {
		in      string
		want    Modes
		wantErr bool
	}{
		{"evolve", Evolve, false},
		{"evolve+rotate", Evolve | Rotate, false},
		{"Scale + Evolve", Evolve | Scale, false},
		{"evolve+scale+rotate", Evolve | Scale | Rotate, false},
		{"", 0, false},
		{"evolve+spin", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModes(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "evolve+rotate", (Evolve | Rotate).String())
	assert.Equal(t, "static", Modes(0).String())
}

func TestCurves(t *testing.T) {
	tests := []struct {
		curve Curve
		at    float64
		want  float64
	}{
		{CurveLinear, 0.25, 0.25},
		{CurveEaseIn, 0.5, 0.25},
		{CurveEaseOut, 0.5, 0.75},
		{CurveEaseBoth, 0.5, 0.5},
		{CurveEaseBoth, 0.25, 0.15625},
		{Curve(9), 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.curve.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.curve.Apply(tt.at), 1e-6)
			assert.InDelta(t, 0, tt.curve.Apply(0), 1e-6)
			assert.InDelta(t, 1, tt.curve.Apply(1), 1e-6)
		})
	}

	c, err := ParseCurve("ease_both")
	require.NoError(t, err)
	assert.Equal(t, CurveEaseBoth, c)
	_, err = ParseCurve("bounce")
	require.ErrorIs(t, err, ErrUnknownCurve)
}

func TestFrameStatic(t *testing.T) {
	p := DefaultParams()
	p.Modes = 0
	st := p.Frame(5, 16)
	assert.Equal(t, FrameState{T: 5.0 / 15, Scale: 1}, st)
}

func TestFrameEvolveScaleRotate(t *testing.T) {
	p := DefaultParams()
	p.Modes = Evolve | Scale | Rotate
	p.Speed = 2
	p.EvolveSpeed = 0.5
	p.ScaleStart = 1
	p.ScaleEnd = 3
	p.ScaleCurve = CurveEaseIn
	p.RotateAmount = 90
	p.RotateDirection = -1

	first := p.Frame(0, 5)
	assert.Equal(t, 0.0, first.T)
	assert.Equal(t, 0.0, first.ZOffset)
	assert.InDelta(t, 1, first.Scale, 1e-6)
	assert.Equal(t, 0.0, first.Rotation)

	mid := p.Frame(2, 5)
	assert.Equal(t, 0.5, mid.T)
	assert.Equal(t, 2.0, mid.ZOffset)
	assert.InDelta(t, 1.5, mid.Scale, 1e-6)
	assert.Equal(t, -90.0, mid.Rotation)

	last := p.Frame(4, 5)
	assert.Equal(t, 1.0, last.T)
	assert.InDelta(t, 3, last.Scale, 1e-6)
	assert.Equal(t, -180.0, last.Rotation)
}

func TestFrameScaleKeepsFloat64Range(t *testing.T) {
	p := DefaultParams()
	p.Modes = Scale
	p.ScaleStart = 1000
	p.ScaleEnd = 1000.2

	assert.Equal(t, 1000.0, p.Frame(0, 16).Scale)
	assert.InDelta(t, 1000.2, p.Frame(15, 16).Scale, 1e-9)

	p.ScaleStart, p.ScaleEnd = 1, 2
	assert.InDelta(t, 1+1.0/15, p.Frame(1, 16).Scale, 1e-7)
}

func TestFrameSingleFrameSequence(t *testing.T) {
	p := DefaultParams()
	p.Modes = Rotate
	st := p.Frame(0, 1)
	assert.Equal(t, 0.0, st.T)
	assert.Equal(t, 0.0, st.Rotation)
}

func TestCausticsTimeAndVoronoiSeed(t *testing.T) {
	p := DefaultParams()
	p.Speed = 2

	assert.InDelta(t, 0.6, p.CausticsTime(3), 1e-12)
	assert.Equal(t, int64(3042), p.VoronoiSeed(42, 3))

	p.Modes = Rotate
	assert.Equal(t, 2.0, p.CausticsTime(3))
	assert.Equal(t, int64(42), p.VoronoiSeed(42, 3))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("ccw")
	require.NoError(t, err)
	assert.Equal(t, -1.0, d)

	d, err = ParseDirection("cw")
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	_, err = ParseDirection("left")
	require.ErrorIs(t, err, ErrUnknownDirection)
}
