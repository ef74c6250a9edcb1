package noise

import (
	"math"
	"math/rand"
)

var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Lattice is seeded gradient noise on an integer lattice with a quintic fade.
// The permutation table is built once in NewLattice and only read afterwards,
// so a Lattice is safe for concurrent evaluation.
type Lattice struct {
	perm [512]int
	seed int64
}

// NewLattice shuffles a 256 entry permutation with a source seeded by seed.
func NewLattice(seed int64) *Lattice {
	l := &Lattice{seed: seed}
	r := rand.New(rand.NewSource(seed))
	p := make([]int, 256)
	for i := 0; i < 256; i++ {
		p[i] = i
	}
	for i := 255; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 512; i++ {
		l.perm[i] = p[i&255]
	}
	return l
}

// Seed returns the seed the permutation table was built from.
func (l *Lattice) Seed() int64 { return l.seed }

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func dot2(h int, x, y float64) float64 {
	g := grad2[h%8]
	return g[0]*x + g[1]*y
}

func dot3(h int, x, y, z float64) float64 {
	g := grad3[h%12]
	return g[0]*x + g[1]*y + g[2]*z
}

// Noise2 returns 2D gradient noise, nominally in [-1,1].
func (l *Lattice) Noise2(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	p := &l.perm
	aa := p[p[xi]+yi]
	ab := p[p[xi]+yi+1]
	ba := p[p[xi+1]+yi]
	bb := p[p[xi+1]+yi+1]

	x1 := lerp(dot2(aa, xf, yf), dot2(ba, xf-1, yf), u)
	x2 := lerp(dot2(ab, xf, yf-1), dot2(bb, xf-1, yf-1), u)
	return lerp(x1, x2, v)
}

// Noise3 returns 3D gradient noise, nominally in [-1,1].
func (l *Lattice) Noise3(x, y, z float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	fz := math.Floor(z)
	xi := int(fx) & 255
	yi := int(fy) & 255
	zi := int(fz) & 255
	xf := x - fx
	yf := y - fy
	zf := z - fz

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	p := &l.perm
	aaa := p[p[p[xi]+yi]+zi]
	aba := p[p[p[xi]+yi+1]+zi]
	aab := p[p[p[xi]+yi]+zi+1]
	abb := p[p[p[xi]+yi+1]+zi+1]
	baa := p[p[p[xi+1]+yi]+zi]
	bba := p[p[p[xi+1]+yi+1]+zi]
	bab := p[p[p[xi+1]+yi]+zi+1]
	bbb := p[p[p[xi+1]+yi+1]+zi+1]

	x1 := lerp(
		lerp(dot3(aaa, xf, yf, zf), dot3(baa, xf-1, yf, zf), u),
		lerp(dot3(aba, xf, yf-1, zf), dot3(bba, xf-1, yf-1, zf), u),
		v,
	)
	x2 := lerp(
		lerp(dot3(aab, xf, yf, zf-1), dot3(bab, xf-1, yf, zf-1), u),
		lerp(dot3(abb, xf, yf-1, zf-1), dot3(bbb, xf-1, yf-1, zf-1), u),
		v,
	)
	return lerp(x1, x2, w)
}

// Noise4 approximates 4D noise by averaging four 3D evaluations over rotated
// axes. It is continuous in all four inputs, which is all the torus mapping
// for tileable 2D sampling needs, but it is not a true 4D lattice and its
// spectrum is not band-limited the way Noise3 is.
func (l *Lattice) Noise4(x, y, z, w float64) float64 {
	return approx4(l, x, y, z, w)
}

func approx4(k interface{ Noise3(x, y, z float64) float64 }, x, y, z, w float64) float64 {
	return (k.Noise3(x, y, z) + k.Noise3(y, z, w) + k.Noise3(z, w, x) + k.Noise3(w, x, y)) / 4
}
