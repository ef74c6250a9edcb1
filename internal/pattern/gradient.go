package pattern

import "math"

// RadialGradient is brightest at the center and falls off to zero at
// Radius*size. The result is geometric and already in [0,1]; it is clamped,
// not min-max normalized.
func (g *Generator) RadialGradient(size int, p RadialParams) Buffer {
	b := NewBuffer(size, size)
	s := float64(size)
	cx, cy := p.CenterX*s, p.CenterY*s
	maxDist := p.Radius * s
	for y := range size {
		for x := range size {
			var t float64
			if maxDist > 0 {
				t = math.Min(1, math.Hypot(float64(x)-cx, float64(y)-cy)/maxDist)
			}
			if p.Softness != 1 {
				t = math.Pow(t, 1/p.Softness)
			}
			b.Pix[y*size+x] = Clamp01(p.Falloff.descending(t, p.Power))
		}
	}
	return b
}

// descending maps distance t to intensity, 1 at t=0.
func (f Falloff) descending(t, power float64) float64 {
	switch f {
	case FalloffSmooth:
		return 1 - Smoothstep(t)
	case FalloffExp:
		return math.Exp(-t * power * 3)
	case FalloffInvExp:
		return 1 - math.Exp(-(1-t)*power*3)
	default:
		return 1 - t
	}
}

// ascending shapes a ramp parameter, 0 at t=0.
func (f Falloff) ascending(t float64) float64 {
	switch f {
	case FalloffSmooth:
		return Smoothstep(t)
	case FalloffExp:
		return 1 - math.Exp(-t*3)
	case FalloffInvExp:
		return math.Exp(-(1 - t) * 3)
	default:
		return t
	}
}

// DirectionalGradient projects pixels onto an axis rotated by p.Angle degrees.
func (g *Generator) DirectionalGradient(size int, p DirectionalParams) Buffer {
	b := NewBuffer(size, size)
	s := float64(size)
	sin, cos := math.Sincos(p.Angle * math.Pi / 180)
	repeat := float64(max(1, p.Repeat))
	for y := range size {
		ny := float64(y)/s - 0.5
		for x := range size {
			nx := float64(x)/s - 0.5
			proj := nx*cos + ny*sin + 0.5
			proj = floorMod(proj*repeat, 1)
			t := Clamp01(p.Start + proj*(p.End-p.Start))
			b.Pix[y*size+x] = p.Falloff.ascending(t)
		}
	}
	return b
}

// Ramp1D renders a width x 1 strip. The falloff is applied before the
// [Start,End] remap, and the last texel of each repeat reads 1, not 0.
func (g *Generator) Ramp1D(width int, p DirectionalParams) Buffer {
	b := NewBuffer(width, 1)
	repeat := float64(max(1, p.Repeat))
	for x := range width {
		var t float64
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		t = wrapRepeat(t * repeat)
		v := p.Falloff.ascending(t)
		b.Pix[x] = p.Start + v*(p.End-p.Start)
	}
	return b
}

// wrapRepeat is v mod 1, except positive whole numbers map to 1.
func wrapRepeat(v float64) float64 {
	f := v - math.Floor(v)
	if f == 0 && v > 0 {
		return 1
	}
	return f
}
