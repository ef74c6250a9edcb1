// Package animation turns a flipbook animation description into per-frame
// pattern parameters.
package animation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Modes is a set of animation kinds, combined with "+" on the command line.
type Modes uint8

const (
	Evolve Modes = 1 << iota
	Scale
	Rotate
)

var (
	ErrUnknownMode      = errors.New("unknown animation mode")
	ErrUnknownCurve     = errors.New("unknown scale curve")
	ErrUnknownDirection = errors.New("unknown rotate direction")
)

var modeNames = []struct {
	mode Modes
	name string
}{
	{Evolve, "evolve"},
	{Scale, "scale"},
	{Rotate, "rotate"},
}

// ParseModes parses strings like "evolve+rotate". An empty string is the
// empty set, which renders every frame identically.
func ParseModes(s string) (Modes, error) {
	var m Modes
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		found := false
		for _, mn := range modeNames {
			if mn.name == part {
				m |= mn.mode
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q (want evolve, scale, rotate or a + combination)", ErrUnknownMode, part)
		}
	}
	return m, nil
}

// Has reports whether every mode in o is set.
func (m Modes) Has(o Modes) bool { return m&o == o }

func (m Modes) String() string {
	var parts []string
	for _, mn := range modeNames {
		if m.Has(mn.mode) {
			parts = append(parts, mn.name)
		}
	}
	if len(parts) == 0 {
		return "static"
	}
	return strings.Join(parts, "+")
}

// Curve eases the scale animation.
type Curve int

const (
	CurveLinear Curve = iota
	CurveEaseIn
	CurveEaseOut
	CurveEaseBoth
)

var curveNames = map[Curve]string{
	CurveLinear:   "linear",
	CurveEaseIn:   "ease_in",
	CurveEaseOut:  "ease_out",
	CurveEaseBoth: "ease_both",
}

func (c Curve) String() string {
	if n, ok := curveNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Curve(%d)", int(c))
}

func ParseCurve(s string) (Curve, error) {
	for c, n := range curveNames {
		if n == s {
			return c, nil
		}
	}
	return CurveLinear, fmt.Errorf("%w: %q", ErrUnknownCurve, s)
}

// smoothstep has the ease.TweenFunc signature: t elapsed, b begin, c change, d duration.
func smoothstep(t, b, c, d float32) float32 {
	t /= d
	return c*t*t*(3-2*t) + b
}

// TweenFunc returns the easing function for c. Unknown curves are linear.
func (c Curve) TweenFunc() ease.TweenFunc {
	switch c {
	case CurveEaseIn:
		return ease.InQuad
	case CurveEaseOut:
		return ease.OutQuad
	case CurveEaseBoth:
		return smoothstep
	default:
		return ease.Linear
	}
}

// Apply eases t in [0,1] with a unit gween tween. The result carries float32
// precision, about 1e-7.
func (c Curve) Apply(t float64) float64 {
	tw := gween.New(0, 1, 1, c.TweenFunc())
	v, _ := tw.Set(float32(t))
	return float64(v)
}

// ParseDirection maps "cw" to 1 and "ccw" to -1.
func ParseDirection(s string) (float64, error) {
	switch s {
	case "cw":
		return 1, nil
	case "ccw":
		return -1, nil
	}
	return 1, fmt.Errorf("%w: %q (want cw or ccw)", ErrUnknownDirection, s)
}

// Params describes a flipbook animation.
type Params struct {
	Modes           Modes
	Speed           float64
	EvolveSpeed     float64
	ScaleStart      float64
	ScaleEnd        float64
	ScaleCurve      Curve
	RotateAmount    float64 // degrees over the whole sequence
	RotateDirection float64 // 1 clockwise, -1 counter-clockwise
}

// DefaultParams matches the flipbook command defaults.
func DefaultParams() Params {
	return Params{
		Modes:           Evolve,
		Speed:           1,
		EvolveSpeed:     1,
		ScaleStart:      1,
		ScaleEnd:        2,
		ScaleCurve:      CurveLinear,
		RotateAmount:    360,
		RotateDirection: 1,
	}
}

// FrameState is the animation state of one frame.
type FrameState struct {
	T        float64 // normalized time in [0,1]
	ZOffset  float64
	Scale    float64
	Rotation float64 // degrees
}

// Frame computes the state of frame f in an n-frame sequence.
// Modes that are not set leave their field at the identity.
func (p Params) Frame(f, n int) FrameState {
	st := FrameState{
		T:     float64(f) / float64(max(1, n-1)),
		Scale: 1,
	}
	if p.Modes.Has(Evolve) {
		st.ZOffset = float64(f) * p.EvolveSpeed * p.Speed
	}
	if p.Modes.Has(Scale) {
		// Only the curve value passes through gween's float32 easing; the
		// interpolation itself stays float64.
		st.Scale = p.ScaleStart + (p.ScaleEnd-p.ScaleStart)*p.ScaleCurve.Apply(st.T)
	}
	if p.Modes.Has(Rotate) {
		st.Rotation = p.RotateAmount * st.T * p.RotateDirection * p.Speed
	}
	return st
}

// CausticsTime is the caustics time parameter of frame f. Without evolve
// every frame uses Speed as its time.
func (p Params) CausticsTime(f int) float64 {
	if p.Modes.Has(Evolve) {
		return float64(f) * 0.1 * p.Speed
	}
	return p.Speed
}

// voronoiSeedStride separates the seeds of consecutive evolving frames.
const voronoiSeedStride = 1000

// VoronoiSeed is the seed of frame f. Evolving Voronoi reseeds every frame,
// so consecutive frames are not continuous.
func (p Params) VoronoiSeed(base int64, f int) int64 {
	if p.Modes.Has(Evolve) {
		return base + int64(f)*voronoiSeedStride
	}
	return base
}
