package pattern

import "math"

// normalizeEpsilon guards min-max rescaling against a zero range.
const normalizeEpsilon = 1e-8

// Buffer is a row-major 2D field of samples.
// Generator output is always normalized to [0,1].
type Buffer struct {
	W   int
	H   int
	Pix []float64
}

// NewBuffer allocates a zeroed w x h buffer.
func NewBuffer(w, h int) Buffer {
	return Buffer{W: w, H: h, Pix: make([]float64, w*h)}
}

// BufferFrom copies rows into a new buffer. All rows must have equal length.
func BufferFrom(rows [][]float64) Buffer {
	if len(rows) == 0 {
		return Buffer{}
	}
	b := NewBuffer(len(rows[0]), len(rows))
	for y, row := range rows {
		copy(b.Pix[y*b.W:(y+1)*b.W], row)
	}
	return b
}

func (b Buffer) idx(x, y int) int { return y*b.W + x }

// At returns the sample at (x, y).
func (b Buffer) At(x, y int) float64 { return b.Pix[b.idx(x, y)] }

// Set stores v at (x, y).
func (b Buffer) Set(x, y int, v float64) { b.Pix[b.idx(x, y)] = v }

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	out := Buffer{W: b.W, H: b.H, Pix: make([]float64, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// MinMax returns the smallest and largest sample. An empty buffer yields (0, 0).
func (b Buffer) MinMax() (float64, float64) {
	return minMax(b.Pix)
}

// Volume is a stack of D slices, each W x H, stored slice-major.
type Volume struct {
	W   int
	H   int
	D   int
	Pix []float64
}

// NewVolume allocates a zeroed volume.
func NewVolume(w, h, d int) Volume {
	return Volume{W: w, H: h, D: d, Pix: make([]float64, w*h*d)}
}

// Slice returns slice z as a Buffer sharing the volume's storage.
func (v Volume) Slice(z int) Buffer {
	n := v.W * v.H
	return Buffer{W: v.W, H: v.H, Pix: v.Pix[z*n : (z+1)*n : (z+1)*n]}
}

// Slices returns every slice in order.
func (v Volume) Slices() []Buffer {
	out := make([]Buffer, v.D)
	for z := range out {
		out[z] = v.Slice(z)
	}
	return out
}

func minMax(pix []float64) (float64, float64) {
	if len(pix) == 0 {
		return 0, 0
	}
	lo, hi := pix[0], pix[0]
	for _, v := range pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Normalize rescales pix in place to [0,1] using (v-min)/(max-min+eps).
// A constant input maps to all zeros.
func Normalize(pix []float64) {
	lo, hi := minMax(pix)
	den := hi - lo + normalizeEpsilon
	for i, v := range pix {
		pix[i] = (v - lo) / den
	}
}

// Clamp01 limits x to [0,1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Smoothstep is the cubic Hermite 3t^2-2t^3.
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// floorMod is x mod 1 with the sign of the divisor, like Python's %.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
