// Package noise provides seeded gradient-noise kernels used by the pattern
// generator. Every kernel is deterministic for a given seed and read-only after
// construction.
package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kernel evaluates band-limited noise in two, three and four dimensions.
// Values are nominally in [-1,1] and are not normalized.
type Kernel interface {
	Noise2(x, y float64) float64
	Noise3(x, y, z float64) float64
	Noise4(x, y, z, w float64) float64
}

// Backend selects a Kernel implementation.
type Backend int

const (
	// BackendLattice is the built-in permutation-table gradient noise.
	BackendLattice Backend = iota
	// BackendOpenSimplex uses github.com/ojrac/opensimplex-go.
	BackendOpenSimplex
	// BackendPerlin uses github.com/aquilax/go-perlin (single octave).
	BackendPerlin
)

// ErrUnknownBackend is returned by ParseBackend for unrecognized names.
var ErrUnknownBackend = errors.New("unknown noise backend")

var backendNames = map[Backend]string{
	BackendLattice:     "lattice",
	BackendOpenSimplex: "opensimplex",
	BackendPerlin:      "perlin",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps a flag value to a Backend.
func ParseBackend(s string) (Backend, error) {
	for b, name := range backendNames {
		if name == s {
			return b, nil
		}
	}
	return BackendLattice, fmt.Errorf("%w: %q (want lattice, opensimplex or perlin)", ErrUnknownBackend, s)
}

// New builds a kernel for the backend. Unknown backends get the lattice kernel.
func New(b Backend, seed int64) Kernel {
	switch b {
	case BackendOpenSimplex:
		return NewOpenSimplex(seed)
	case BackendPerlin:
		return NewPerlin(seed)
	default:
		return NewLattice(seed)
	}
}

// OpenSimplex adapts opensimplex.Noise to Kernel.
type OpenSimplex struct {
	n opensimplex.Noise
}

// NewOpenSimplex returns an OpenSimplex kernel seeded with seed.
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{n: opensimplex.New(seed)}
}

func (o *OpenSimplex) Noise2(x, y float64) float64       { return o.n.Eval2(x, y) }
func (o *OpenSimplex) Noise3(x, y, z float64) float64    { return o.n.Eval3(x, y, z) }
func (o *OpenSimplex) Noise4(x, y, z, w float64) float64 { return o.n.Eval4(x, y, z, w) }

// Perlin adapts a single-octave go-perlin generator to Kernel.
// go-perlin has no 4D noise, so Noise4 uses the same four-slice
// approximation as Lattice.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin returns a Perlin kernel seeded with seed.
func NewPerlin(seed int64) *Perlin {
	// alpha and beta only matter between octaves; n=1 keeps a single octave
	// so the pattern generator owns the fractal sum.
	return &Perlin{p: perlin.NewPerlin(2.0, 2.0, 1, seed)}
}

func (p *Perlin) Noise2(x, y float64) float64    { return p.p.Noise2D(x, y) }
func (p *Perlin) Noise3(x, y, z float64) float64 { return p.p.Noise3D(x, y, z) }
func (p *Perlin) Noise4(x, y, z, w float64) float64 {
	return approx4(p, x, y, z, w)
}
