package pattern

import "math"

const (
	causticsLayerOffset = 17.3
	causticsLayerGrowth = 0.3
	// distortionShift separates the y distortion field from the x field.
	distortionShift = 100
)

// Caustics layers three phase-shifted sine waves over noise-distorted
// coordinates. With tileable set the distortion comes from torus noise but
// the sine terms are not periodic in the tile, so seams are not guaranteed.
func (g *Generator) Caustics(size int, p CausticsParams, tileable bool) Buffer {
	layers := max(1, p.Layers)
	intensity := p.Intensity
	if intensity <= 0 {
		intensity = 1
	}
	s := float64(size)
	b := NewBuffer(size, size)
	for y := range size {
		ny := float64(y) / s
		for x := range size {
			nx := float64(x) / s
			var total float64
			for l := range layers {
				offset := float64(l) * causticsLayerOffset
				ls := p.Scale * (1 + causticsLayerGrowth*float64(l))

				var dx, dy float64
				if tileable {
					dx = g.torus(nx, ny, ls*2, offset)
					dy = g.torus(nx, ny, ls*2, offset+distortionShift)
				} else {
					dx = g.kernel.Noise3(nx*ls*2, ny*ls*2, p.Time+offset)
					dy = g.kernel.Noise3(nx*ls*2+distortionShift, ny*ls*2+distortionShift, p.Time+offset)
				}
				sx := nx + dx*p.Distortion
				sy := ny + dy*p.Distortion

				c1 := math.Sin((sx*ls + p.Time) * 2 * math.Pi)
				c2 := math.Sin((sy*ls + p.Time*0.7) * 2 * math.Pi)
				c3 := math.Sin(((sx+sy)*ls*0.7 + p.Time*1.3) * 2 * math.Pi)
				c := (c1*c2 + c2*c3 + c3*c1) / 3
				total += (c + 1) / 2 / float64(layers)
			}
			b.Pix[y*size+x] = total
		}
	}
	exp := 1 / intensity
	for i, v := range b.Pix {
		b.Pix[i] = math.Pow(v, exp)
	}
	Normalize(b.Pix)
	return b
}
