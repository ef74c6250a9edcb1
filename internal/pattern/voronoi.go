package pattern

import (
	"math"
	"math/rand"
)

type point struct{ x, y float64 }

// Voronoi2D renders a cellular distance field. Seed points come from a
// source seeded with the generator seed, created per call, so repeated calls
// on one Generator are identical.
func (g *Generator) Voronoi2D(size int, p VoronoiParams, tileable bool) Buffer {
	rng := rand.New(rand.NewSource(g.seed))
	pts, cellSize := scatter(size, p.Cells, p.Jitter, rng)
	if tileable {
		s := float64(size)
		for i := range pts {
			pts[i].x = floorMod(pts[i].x, s)
			pts[i].y = floorMod(pts[i].y, s)
		}
	}
	return voronoiField(size, pts, cellSize, p, tileable)
}

// scatter places one jittered point per cell of a ceil(sqrt(cells)) grid.
// rng is consumed in row-major order, x before y.
func scatter(size, cells int, jitter float64, rng *rand.Rand) ([]point, float64) {
	if cells < 1 {
		cells = 1
	}
	cellSize := float64(size) / math.Sqrt(float64(cells))
	grid := int(math.Ceil(math.Sqrt(float64(cells))))
	pts := make([]point, 0, grid*grid)
	for cy := range grid {
		for cx := range grid {
			px := float64(cx)*cellSize + cellSize/2 + (rng.Float64()-0.5)*cellSize*jitter
			py := float64(cy)*cellSize + cellSize/2 + (rng.Float64()-0.5)*cellSize*jitter
			pts = append(pts, point{px, py})
		}
	}
	return pts, cellSize
}

func voronoiField(size int, pts []point, cellSize float64, p VoronoiParams, tileable bool) Buffer {
	period := float64(size)
	b := NewBuffer(size, size)
	for y := range size {
		for x := range size {
			px, py := float64(x), float64(y)
			f1, f2 := math.Inf(1), math.Inf(1)
			for _, q := range pts {
				dx := math.Abs(px - q.x)
				dy := math.Abs(py - q.y)
				if tileable {
					dx = math.Min(dx, period-dx)
					dy = math.Min(dy, period-dy)
				}
				d := p.Metric.distance(dx, dy)
				if d < f1 {
					f1, f2 = d, f1
				} else if d < f2 {
					f2 = d
				}
			}
			if math.IsInf(f2, 1) {
				f2 = f1
			}
			b.Pix[y*size+x] = p.Mode.combine(f1, f2, cellSize)
		}
	}
	Normalize(b.Pix)
	return b
}

// distance takes per-axis absolute offsets. Unknown metrics are euclidean.
func (m Metric) distance(dx, dy float64) float64 {
	switch m {
	case MetricManhattan:
		return dx + dy
	case MetricChebyshev:
		return math.Max(dx, dy)
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

// combine maps the two nearest distances to a sample. Unknown modes are f1.
func (m VoronoiMode) combine(f1, f2, cellSize float64) float64 {
	switch m {
	case ModeF2:
		return f2
	case ModeF2MinusF1:
		return f2 - f1
	case ModeEdge:
		return 1 - math.Min(1, (f2-f1)/(cellSize*0.3))
	default:
		return f1
	}
}
