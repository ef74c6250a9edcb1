package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/MeKo-Tech/vfxtex/internal/atlas"
	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
	"github.com/MeKo-Tech/vfxtex/internal/worker"
)

// VolumeJob describes a 3D noise volume written as a grid of Z slices.
// Spec.Kind must be pattern.KindSimplex or pattern.KindFBM.
type VolumeJob struct {
	Spec      pattern.Spec
	Size      int
	Slices    int
	Modifiers mask.Modifiers
	Alpha     mask.AlphaParams
	Name      string
}

// ErrNotVolumetric is returned for pattern kinds without a 3D form.
var ErrNotVolumetric = errors.New("pattern has no 3D form")

// Volume evaluates the slices on the worker pool, normalizes the whole
// volume at once and writes the slice grid.
func (g *Generator) Volume(ctx context.Context, job VolumeJob) (Result, error) {
	if err := checkSize(job.Size); err != nil {
		return Result{}, err
	}
	if job.Slices <= 0 {
		return Result{}, fmt.Errorf("%w: %d slices", pattern.ErrNonPositiveSize, job.Slices)
	}
	if job.Spec.Kind != pattern.KindSimplex && job.Spec.Kind != pattern.KindFBM {
		return Result{}, fmt.Errorf("%w: %s", ErrNotVolumetric, job.Spec.Kind)
	}

	spec := job.Spec
	seed := spec.ResolveSeed()
	spec.Seed = &seed
	job.Spec = spec

	g.checkCost("volume", pattern.VolumeCost(spec, job.Size, job.Slices))
	g.log().Info("Generating volume",
		"pattern", spec.Kind.String(),
		"size", job.Size,
		"slices", job.Slices,
		"seed", seed,
	)

	vol, err := g.RenderVolume(ctx, job)
	if err != nil {
		return Result{}, err
	}

	layout := atlas.LayoutFor(job.Slices, job.Size, job.Size)
	values := make([]pattern.Buffer, job.Slices)
	alphas := make([]pattern.Buffer, job.Slices)
	for z, s := range vol.Slices() {
		values[z], alphas[z] = shape(s, job.Modifiers, job.Alpha)
	}
	value, err := atlas.Compose(layout, values)
	if err != nil {
		return Result{}, err
	}
	alpha, err := atlas.Compose(layout, alphas)
	if err != nil {
		return Result{}, err
	}

	img, err := texture.Encode(value, alpha, false)
	if err != nil {
		return Result{}, err
	}
	name := texture.FileName(job.Name, texture.VolumeName(spec.Kind.String(), job.Size, job.Slices))
	return g.write("volume", name, img, layout.Cols, layout.Rows, seed, job)
}

// RenderVolume evaluates every slice with one shared, read-only noise kernel
// and normalizes the volume globally.
func (g *Generator) RenderVolume(ctx context.Context, job VolumeJob) (pattern.Volume, error) {
	p := job.Spec.Noise
	if job.Spec.Kind == pattern.KindSimplex {
		p.Variant = pattern.VariantNone
	}
	pg := g.patterns(job.Spec.ResolveSeed())

	progress := worker.NewProgress(job.Slices, "slices", int64(job.Size)*int64(job.Size), g.progress)
	pool := worker.New(worker.Config[pattern.Buffer]{
		Workers: g.workers,
		Renderer: worker.RenderFunc[pattern.Buffer](func(_ context.Context, t worker.Task) (pattern.Buffer, error) {
			return pg.RawSlice(job.Size, t.Index, t.Total, p), nil
		}),
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, worker.Tasks(job.Slices))
	progress.Done()
	g.log().Debug("Rendered volume slices", progress.LogAttrs()...)

	if err := worker.FirstError(results); err != nil {
		return pattern.Volume{}, fmt.Errorf("failed to render volume slices: %w", err)
	}

	vol := pattern.NewVolume(job.Size, job.Size, job.Slices)
	for z, r := range results {
		copy(vol.Slice(z).Pix, r.Output.Pix)
	}
	pattern.Normalize(vol.Pix)
	return vol, nil
}
