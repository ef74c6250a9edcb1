package pipeline

import (
	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
)

// ImageJob describes a single-image texture: a tileable noise map or a sprite.
type ImageJob struct {
	Spec      pattern.Spec
	Size      int
	Modifiers mask.Modifiers
	Alpha     mask.AlphaParams
	// Preview writes an extra Preview x Preview tiled copy when > 1.
	Preview int
	Name    string
}

// Noise writes a tileable noise map. Spec.Tileable is forced on.
func (g *Generator) Noise(job ImageJob) (Result, error) {
	job.Spec.Tileable = true
	fallback := texture.NoiseName(patternLabel(job.Spec.Kind), job.Size)
	return g.image("noise", job, fallback)
}

// Sprite writes a single sprite, tileable only when job.Spec.Tileable is set.
func (g *Generator) Sprite(job ImageJob) (Result, error) {
	fallback := texture.SpriteName(patternLabel(job.Spec.Kind), job.Size)
	return g.image("sprite", job, fallback)
}

func (g *Generator) image(kind string, job ImageJob, fallback string) (Result, error) {
	if err := checkSize(job.Size); err != nil {
		return Result{}, err
	}
	spec := job.Spec
	seed := spec.ResolveSeed()
	spec.Seed = &seed

	g.checkCost(kind, pattern.Cost(spec, job.Size))
	g.log().Info("Generating "+kind, "pattern", spec.Kind.String(), "size", job.Size, "seed", seed, "tileable", spec.Tileable)

	value := g.patterns(seed).Generate(spec, job.Size)
	value, alpha := shape(value, job.Modifiers, job.Alpha)

	img, err := texture.Encode(value, alpha, false)
	if err != nil {
		return Result{}, err
	}
	name := texture.FileName(job.Name, fallback)
	res, err := g.write(kind, name, img, 1, 1, seed, spec)
	if err != nil {
		return res, err
	}

	if job.Preview > 1 {
		preview := texture.TiledPreview(img, job.Preview)
		if _, err := texture.WritePNG(g.outputPath(previewName(name)), preview); err != nil {
			return res, err
		}
		g.log().Info("Saved tiled preview", "path", g.outputPath(previewName(name)), "repeat", job.Preview)
	}
	return res, nil
}
