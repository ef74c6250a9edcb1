// Package pipeline wires pattern evaluation, shaping, alpha, atlas
// composition and output into one step per texture type.
package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/noise"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/texpack"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
)

// CostWarnThreshold is the estimated evaluation cost (noise samples) above
// which a warning is logged. Generation still runs.
const CostWarnThreshold int64 = 1 << 28

// Options configures a Generator.
type Options struct {
	Logger    *slog.Logger
	Pack      *texpack.Writer // optional; every written texture is also stored here
	OutputDir string
	Backend   noise.Backend
	Workers   int
	Progress  bool
}

// Generator writes textures to OutputDir.
type Generator struct {
	logger    *slog.Logger
	pack      *texpack.Writer
	outputDir string
	backend   noise.Backend
	workers   int
	progress  bool
}

// Result describes a written texture.
type Result struct {
	Path   string
	Width  int
	Height int
	Cols   int
	Rows   int
	Seed   int64
	Bytes  int
}

// NewGenerator prepares a generator.
func NewGenerator(opts Options) *Generator {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	return &Generator{
		logger:    opts.Logger,
		pack:      opts.Pack,
		outputDir: dir,
		backend:   opts.Backend,
		workers:   workers,
		progress:  opts.Progress,
	}
}

func (g *Generator) patterns(seed int64) *pattern.Generator {
	return pattern.NewGenerator(seed, pattern.WithBackend(g.backend))
}

func (g *Generator) checkCost(what string, cost int64) {
	if cost > CostWarnThreshold {
		g.log().Warn("Generation will be slow", "texture", what, "cost", cost, "threshold", CostWarnThreshold)
	}
}

// shape applies modifiers and derives alpha from the shaped value.
func shape(value pattern.Buffer, m mask.Modifiers, a mask.AlphaParams) (pattern.Buffer, pattern.Buffer) {
	value = mask.ApplyModifiers(value, m)
	return value, mask.GenerateAlpha(value, a)
}

// patternLabel is the short pattern name used in file names.
func patternLabel(k pattern.Kind) string {
	switch k {
	case pattern.KindRadialGradient:
		return "radial"
	case pattern.KindDirectionalGradient:
		return "directional"
	}
	return k.String()
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", pattern.ErrNonPositiveSize, size)
	}
	return nil
}

// write saves img under name and stores it in the pack when one is set.
func (g *Generator) write(kind, name string, img image.Image, cols, rows int, seed int64, params any) (Result, error) {
	wr, err := texture.WritePNG(g.outputPath(name), img)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Path:   wr.Path,
		Width:  wr.Width,
		Height: wr.Height,
		Cols:   cols,
		Rows:   rows,
		Seed:   seed,
		Bytes:  wr.Bytes,
	}
	g.log().Info("Saved texture", "path", res.Path, "width", res.Width, "height", res.Height, "seed", seed)

	if g.pack == nil {
		return res, nil
	}
	data, err := texture.EncodePNG(img)
	if err != nil {
		return res, err
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		return res, fmt.Errorf("failed to encode params of %s: %w", name, err)
	}
	err = g.pack.Write(texpack.Entry{
		Name:   name,
		Kind:   kind,
		Width:  res.Width,
		Height: res.Height,
		Cols:   cols,
		Rows:   rows,
		Seed:   seed,
		Params: string(encoded),
		Data:   data,
	})
	if err != nil {
		return res, fmt.Errorf("failed to store %s in texture pack: %w", name, err)
	}
	g.log().Debug("Stored texture in pack", "name", name)
	return res, nil
}

func (g *Generator) outputPath(name string) string {
	return filepath.Join(g.outputDir, name)
}

// previewName inserts "_preview" before the extension.
func previewName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_preview" + ext
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}
