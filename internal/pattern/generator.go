// Package pattern synthesizes procedural 2D and 3D scalar fields: fractal
// noise, Voronoi distance fields, gradients and caustics. Every generator
// function is a pure function of (size, parameters, seed) and returns a buffer
// normalized to [0,1].
package pattern

import (
	"math"

	"github.com/MeKo-Tech/vfxtex/internal/noise"
)

// Generator owns one seeded noise kernel. The kernel is immutable after
// NewGenerator, so a Generator can be shared by goroutines.
type Generator struct {
	seed    int64
	backend noise.Backend
	kernel  noise.Kernel
}

// Option customizes a Generator.
type Option func(*Generator)

// WithBackend selects the noise kernel implementation.
func WithBackend(b noise.Backend) Option {
	return func(g *Generator) { g.backend = b }
}

// NewGenerator builds a generator whose noise table and Voronoi scatter are
// derived from seed.
func NewGenerator(seed int64, opts ...Option) *Generator {
	g := &Generator{seed: seed, backend: noise.BackendLattice}
	for _, opt := range opts {
		opt(g)
	}
	g.kernel = noise.New(g.backend, seed)
	return g
}

// Seed returns the seed the generator was built from.
func (g *Generator) Seed() int64 { return g.seed }

// Backend returns the noise kernel implementation in use.
func (g *Generator) Backend() noise.Backend { return g.backend }

// Generate dispatches on spec.Kind. Out-of-range kinds render simplex.
func (g *Generator) Generate(spec Spec, size int) Buffer {
	switch spec.Kind {
	case KindFBM:
		return g.FBM2D(size, spec.Noise, spec.Tileable)
	case KindVoronoi:
		return g.Voronoi2D(size, spec.Voronoi, spec.Tileable)
	case KindRadialGradient:
		return g.RadialGradient(size, spec.Radial)
	case KindDirectionalGradient:
		return g.DirectionalGradient(size, spec.Directional)
	case KindCaustics:
		return g.Caustics(size, spec.Caustics, spec.Tileable)
	default:
		return g.Simplex2D(size, spec.Noise, spec.Tileable)
	}
}

// Cost estimates the number of kernel evaluations Generate would perform.
func Cost(spec Spec, size int) int64 {
	px := int64(size) * int64(size)
	switch spec.Kind {
	case KindSimplex, KindFBM:
		n := px * int64(octaves(spec.Noise))
		if spec.Tileable {
			// torus samples cost four 3D evaluations with the lattice kernel
			n *= 4
		}
		return n
	case KindVoronoi:
		return px * int64(max(1, spec.Voronoi.Cells))
	case KindCaustics:
		return px * int64(max(1, spec.Caustics.Layers)) * 2
	default:
		return px
	}
}

// VolumeCost estimates the evaluations of a depth-slice volume.
func VolumeCost(spec Spec, size, depth int) int64 {
	return int64(size) * int64(size) * int64(depth) * int64(octaves(spec.Noise))
}

func octaves(p NoiseParams) int {
	if p.Octaves < 1 {
		return 1
	}
	return p.Octaves
}

func (v FractalVariant) apply(n float64) float64 {
	switch v {
	case VariantRidged:
		n = 1 - math.Abs(n)
		return n * n
	case VariantTurbulence:
		return math.Abs(n)
	default:
		return n
	}
}

// torus samples the kernel on a 4D torus so that nx and ny wrap at 1.
// offset shifts the torus center, giving independent seamless fields.
func (g *Generator) torus(nx, ny, freq, offset float64) float64 {
	ax := nx * 2 * math.Pi
	ay := ny * 2 * math.Pi
	r := freq / (2 * math.Pi)
	return g.kernel.Noise4(
		math.Cos(ax)*r+offset,
		math.Sin(ax)*r+offset,
		math.Cos(ay)*r+offset,
		math.Sin(ay)*r+offset,
	)
}

// fractal2D sums octaves at pixel (x, y) of a size x size plane.
func (g *Generator) fractal2D(x, y float64, size int, p NoiseParams, tileable bool) float64 {
	s := float64(size)
	amp, freq := 1.0, p.Frequency
	var sum, norm float64
	for range octaves(p) {
		var n float64
		if tileable {
			n = g.torus(x/s, y/s, freq, 0)
		} else {
			n = g.kernel.Noise2(x*freq/s, y*freq/s)
		}
		sum += amp * p.Variant.apply(n)
		norm += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func (g *Generator) fractal3D(x, y, z float64, size, depth int, p NoiseParams) float64 {
	s, d := float64(size), float64(depth)
	amp, freq := 1.0, p.Frequency
	var sum, norm float64
	for range octaves(p) {
		n := g.kernel.Noise3(x*freq/s, y*freq/s, z*freq/d)
		sum += amp * p.Variant.apply(n)
		norm += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func (g *Generator) plane(size int, p NoiseParams, tileable bool) Buffer {
	b := NewBuffer(size, size)
	for y := range size {
		for x := range size {
			b.Pix[y*size+x] = g.fractal2D(float64(x), float64(y), size, p, tileable)
		}
	}
	Normalize(b.Pix)
	return b
}

// Simplex2D is fractal noise without octave transforms.
func (g *Generator) Simplex2D(size int, p NoiseParams, tileable bool) Buffer {
	p.Variant = VariantNone
	return g.plane(size, p, tileable)
}

// FBM2D is fractal noise honoring p.Variant.
func (g *Generator) FBM2D(size int, p NoiseParams, tileable bool) Buffer {
	return g.plane(size, p, tileable)
}

// Simplex3D fills a size x size x depth volume. The tileable flag is accepted
// for symmetry with the 2D form but 3D output is never seamless.
func (g *Generator) Simplex3D(size, depth int, p NoiseParams, tileable bool) Volume {
	p.Variant = VariantNone
	return g.volume(size, depth, p)
}

// FBM3D is Simplex3D honoring p.Variant.
func (g *Generator) FBM3D(size, depth int, p NoiseParams, tileable bool) Volume {
	return g.volume(size, depth, p)
}

func (g *Generator) volume(size, depth int, p NoiseParams) Volume {
	v := NewVolume(size, size, depth)
	for z := range depth {
		g.fillSlice(v.Slice(z), z, depth, p)
	}
	Normalize(v.Pix)
	return v
}

// fillSlice writes raw, unnormalized samples of slice z into dst.
func (g *Generator) fillSlice(dst Buffer, z, depth int, p NoiseParams) {
	size := dst.W
	for y := range dst.H {
		for x := range size {
			dst.Pix[y*size+x] = g.fractal3D(float64(x), float64(y), float64(z), size, depth, p)
		}
	}
}

// RawSlice evaluates one unnormalized volume slice. Callers that render
// slices on their own workers must Normalize the assembled volume.
func (g *Generator) RawSlice(size, z, depth int, p NoiseParams) Buffer {
	b := NewBuffer(size, size)
	g.fillSlice(b, z, depth, p)
	return b
}

// Evolution places a 2D slice in 3D noise space for animation.
type Evolution struct {
	ZOffset  float64
	Scale    float64
	Rotation float64 // degrees, around the buffer center
}

// Evolved2D samples 3D noise at depth st.ZOffset. Rotation is applied to the
// sample coordinates, so no resampling of the output is needed. st.Scale
// multiplies the frequency; a zero scale samples a single point and yields a
// flat buffer. When fractal is false p.Variant is ignored.
func (g *Generator) Evolved2D(size int, p NoiseParams, fractal bool, st Evolution) Buffer {
	if !fractal {
		p.Variant = VariantNone
	}
	s := float64(size)
	half := s / 2
	sin, cos := math.Sincos(st.Rotation * math.Pi / 180)
	b := NewBuffer(size, size)
	for y := range size {
		for x := range size {
			cx, cy := float64(x)-half, float64(y)-half
			if st.Rotation != 0 {
				cx, cy = cx*cos-cy*sin, cx*sin+cy*cos
			}
			cx += half
			cy += half

			amp, freq := 1.0, p.Frequency*st.Scale
			var sum, norm float64
			for range octaves(p) {
				n := g.kernel.Noise3(cx*freq/s, cy*freq/s, st.ZOffset)
				sum += amp * p.Variant.apply(n)
				norm += amp
				amp *= p.Persistence
				freq *= p.Lacunarity
			}
			b.Pix[y*size+x] = sum / norm
		}
	}
	Normalize(b.Pix)
	return b
}
