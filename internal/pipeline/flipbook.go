package pipeline

import (
	"context"
	"fmt"

	"github.com/MeKo-Tech/vfxtex/internal/animation"
	"github.com/MeKo-Tech/vfxtex/internal/atlas"
	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
	"github.com/MeKo-Tech/vfxtex/internal/worker"
)

// Frame is one rendered flipbook cell.
type Frame struct {
	Index int
	Value pattern.Buffer
	Alpha pattern.Buffer
}

// FlipbookJob describes an animated flipbook laid out on a Cols x Rows grid.
type FlipbookJob struct {
	Spec      pattern.Spec
	Size      int // per frame
	Cols      int
	Rows      int
	Animation animation.Params
	Modifiers mask.Modifiers
	Alpha     mask.AlphaParams
	// RadialMask and Combine are read when Alpha.Source is mask.AlphaRadial.
	RadialMask mask.RadialMaskParams
	Combine    mask.CombineMode
	Name       string
}

// Frames is the number of cells in the grid.
func (j FlipbookJob) Frames() int { return j.Cols * j.Rows }

// Flipbook renders every frame on the worker pool, composes the grid and
// writes it premultiplied by alpha.
func (g *Generator) Flipbook(ctx context.Context, job FlipbookJob) (Result, error) {
	if err := checkSize(job.Size); err != nil {
		return Result{}, err
	}
	if job.Cols <= 0 || job.Rows <= 0 {
		return Result{}, fmt.Errorf("%w: %dx%d", atlas.ErrInvalidGrid, job.Cols, job.Rows)
	}

	spec := job.Spec
	seed := spec.ResolveSeed()
	spec.Seed = &seed
	job.Spec = spec
	n := job.Frames()

	g.checkCost("flipbook", pattern.Cost(spec, job.Size)*int64(n))
	g.log().Info("Generating flipbook",
		"pattern", spec.Kind.String(),
		"frames", n,
		"grid", fmt.Sprintf("%dx%d", job.Cols, job.Rows),
		"animation", job.Animation.Modes.String(),
		"seed", seed,
		"workers", g.workers,
	)

	frames, err := g.RenderFrames(ctx, job)
	if err != nil {
		return Result{}, err
	}

	layout := atlas.NewLayout(job.Cols, job.Rows, job.Size, job.Size)
	values := make([]pattern.Buffer, n)
	alphas := make([]pattern.Buffer, n)
	for i, f := range frames {
		values[i] = f.Value
		alphas[i] = f.Alpha
	}
	value, err := atlas.Compose(layout, values)
	if err != nil {
		return Result{}, err
	}
	alpha, err := atlas.Compose(layout, alphas)
	if err != nil {
		return Result{}, err
	}

	img, err := texture.Encode(value, alpha, true)
	if err != nil {
		return Result{}, err
	}
	name := texture.FileName(job.Name, texture.FlipbookName(patternLabel(spec.Kind), job.Size, job.Cols, job.Rows))
	return g.write("flipbook", name, img, job.Cols, job.Rows, seed, job)
}

// RenderFrames renders all frames of job in index order. A nil seed is
// resolved once and shared by every frame.
func (g *Generator) RenderFrames(ctx context.Context, job FlipbookJob) ([]Frame, error) {
	seed := job.Spec.ResolveSeed()
	n := job.Frames()

	var radial pattern.Buffer
	if job.Alpha.Source == mask.AlphaRadial {
		radial = mask.RadialMask(job.Size, job.RadialMask)
	}

	progress := worker.NewProgress(n, "frames", int64(job.Size)*int64(job.Size), g.progress)
	pool := worker.New(worker.Config[Frame]{
		Workers: g.workers,
		Renderer: worker.RenderFunc[Frame](func(_ context.Context, t worker.Task) (Frame, error) {
			return g.renderFrame(job, seed, t.Index, t.Total, radial), nil
		}),
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, worker.Tasks(n))
	progress.Done()
	g.log().Debug("Rendered flipbook frames", progress.LogAttrs()...)

	if err := worker.FirstError(results); err != nil {
		return nil, fmt.Errorf("failed to render flipbook frames: %w", err)
	}
	frames := make([]Frame, len(results))
	for i, r := range results {
		frames[i] = r.Output
	}
	return frames, nil
}

// renderFrame evaluates frame f of n with its own pattern generator.
func (g *Generator) renderFrame(job FlipbookJob, seed int64, f, n int, radial pattern.Buffer) Frame {
	spec := job.Spec
	anim := job.Animation
	st := anim.Frame(f, n)

	var value pattern.Buffer
	switch spec.Kind {
	case pattern.KindSimplex, pattern.KindFBM:
		evo := pattern.Evolution{ZOffset: st.ZOffset, Scale: st.Scale, Rotation: st.Rotation}
		value = g.patterns(seed).Evolved2D(job.Size, spec.Noise, spec.Kind == pattern.KindFBM, evo)
	case pattern.KindVoronoi:
		value = g.patterns(anim.VoronoiSeed(seed, f)).Voronoi2D(job.Size, spec.Voronoi, spec.Tileable)
		value = mask.RotateWrapped(value, st.Rotation)
	case pattern.KindCaustics:
		c := spec.Caustics
		c.Scale *= st.Scale
		c.Time = anim.CausticsTime(f)
		value = g.patterns(seed).Caustics(job.Size, c, spec.Tileable)
	default:
		value = g.patterns(seed).Generate(spec, job.Size)
		value = mask.RotateWrapped(value, st.Rotation)
	}

	value = mask.ApplyModifiers(value, job.Modifiers)
	var alpha pattern.Buffer
	if job.Alpha.Source == mask.AlphaRadial {
		alpha = mask.RadialAlpha(value, radial, job.Combine, job.Alpha.Multiply)
	} else {
		alpha = mask.GenerateAlpha(value, job.Alpha)
	}
	return Frame{Index: f, Value: value, Alpha: alpha}
}
