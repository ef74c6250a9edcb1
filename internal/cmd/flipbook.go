package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/animation"
	"github.com/MeKo-Tech/vfxtex/internal/atlas"
	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/pipeline"
)

var (
	flipbookAlphas   = []string{"value", "edge", "threshold", "radial"}
	flipbookCurves   = []string{"linear", "ease_in", "ease_out", "ease_both"}
	flipbookCombines = []string{"multiply", "replace", "max"}
)

var flipbookCmd = &cobra.Command{
	Use:   "flipbook",
	Short: "Generate an animated flipbook texture",
	Long: `Generate an animated flipbook: every frame is rendered with evolving
parameters and placed row-major on a COLSxROWS grid. The output is
premultiplied by alpha.`,
	RunE: runFlipbook,
}

func init() {
	rootCmd.AddCommand(flipbookCmd)

	flipbookCmd.Flags().String("pattern", "fbm", "Pattern type (simplex, fbm, voronoi, caustics)")
	flipbookCmd.Flags().Int("resolution", 512, "Per-frame resolution ("+intsUsage(imageResolutions)+")")
	flipbookCmd.Flags().String("grid", "4x4", "Grid size (e.g. 8x8)")
	flipbookCmd.Flags().Bool("tileable", false, "Make tileable (voronoi, caustics)")

	flipbookCmd.Flags().String("animation", "evolve", "Animation: evolve, scale, rotate, or combinations like evolve+rotate")
	flipbookCmd.Flags().Float64("speed", 1.0, "Animation speed multiplier")
	flipbookCmd.Flags().Float64("evolve-speed", 1.0, "Evolve Z offset per frame")
	flipbookCmd.Flags().Float64("scale-start", 1.0, "Starting scale")
	flipbookCmd.Flags().Float64("scale-end", 2.0, "Ending scale")
	flipbookCmd.Flags().String("scale-curve", "linear", "Scale curve ("+strings.Join(flipbookCurves, ", ")+")")
	flipbookCmd.Flags().Float64("rotate-amount", 360, "Total rotation in degrees")
	flipbookCmd.Flags().String("rotate-direction", "cw", "Rotation direction (cw, ccw)")

	addNoiseFlags(flipbookCmd, 3.0, 6)
	addVoronoiFlags(flipbookCmd, 12, 0.9)
	addCausticsFlags(flipbookCmd, false)
	addModifierFlags(flipbookCmd, true)
	addAlphaFlags(flipbookCmd, flipbookAlphas, 0.1)

	def := mask.DefaultRadialMaskParams()
	flipbookCmd.Flags().Float64("radial-radius", def.Radius, "Radial alpha radius (fraction of half the frame)")
	flipbookCmd.Flags().Float64("radial-softness", def.Softness, "Radial alpha edge softness")
	flipbookCmd.Flags().Float64("radial-power", def.Power, "Radial alpha falloff power")
	flipbookCmd.Flags().String("radial-combine", "multiply", "How the radial mask meets the value ("+strings.Join(flipbookCombines, ", ")+")")

	addWorkerFlags(flipbookCmd)

	bindFlags(flipbookCmd, "flipbook")
}

func animationFromConfig() (animation.Params, error) {
	modes, err := animation.ParseModes(viper.GetString("flipbook.animation"))
	if err != nil {
		return animation.Params{}, err
	}
	curveName := viper.GetString("flipbook.scale_curve")
	if err := checkChoice("scale-curve", curveName, flipbookCurves); err != nil {
		return animation.Params{}, err
	}
	curve, err := animation.ParseCurve(curveName)
	if err != nil {
		return animation.Params{}, err
	}
	dir, err := animation.ParseDirection(viper.GetString("flipbook.rotate_direction"))
	if err != nil {
		return animation.Params{}, err
	}
	return animation.Params{
		Modes:           modes,
		Speed:           viper.GetFloat64("flipbook.speed"),
		EvolveSpeed:     viper.GetFloat64("flipbook.evolve_speed"),
		ScaleStart:      viper.GetFloat64("flipbook.scale_start"),
		ScaleEnd:        viper.GetFloat64("flipbook.scale_end"),
		ScaleCurve:      curve,
		RotateAmount:    viper.GetFloat64("flipbook.rotate_amount"),
		RotateDirection: dir,
	}, nil
}

func flipbookJobFromConfig() (pipeline.FlipbookJob, error) {
	name := viper.GetString("flipbook.pattern")
	if err := checkChoice("pattern", name, noisePatterns); err != nil {
		return pipeline.FlipbookJob{}, err
	}
	size := viper.GetInt("flipbook.resolution")
	if err := checkIntChoice("resolution", size, imageResolutions); err != nil {
		return pipeline.FlipbookJob{}, err
	}
	cols, rows, err := atlas.ParseGrid(viper.GetString("flipbook.grid"))
	if err != nil {
		return pipeline.FlipbookJob{}, err
	}
	combineName := viper.GetString("flipbook.radial_combine")
	if err := checkChoice("radial-combine", combineName, flipbookCombines); err != nil {
		return pipeline.FlipbookJob{}, err
	}
	combine, err := mask.ParseCombineMode(combineName)
	if err != nil {
		return pipeline.FlipbookJob{}, err
	}
	anim, err := animationFromConfig()
	if err != nil {
		return pipeline.FlipbookJob{}, err
	}
	alpha, err := alphaFromConfig("flipbook", flipbookAlphas)
	if err != nil {
		return pipeline.FlipbookJob{}, err
	}

	kind, err := pattern.ParseKind(name)
	if err != nil {
		return pipeline.FlipbookJob{}, err
	}
	spec := pattern.DefaultSpec(kind)
	spec.Seed = seedFromConfig()
	spec.Tileable = viper.GetBool("flipbook.tileable")
	spec.Noise = noiseFromConfig("flipbook")
	if spec.Voronoi, err = voronoiFromConfig("flipbook"); err != nil {
		return pipeline.FlipbookJob{}, err
	}
	spec.Caustics = causticsFromConfig("flipbook")

	return pipeline.FlipbookJob{
		Spec:      spec,
		Size:      size,
		Cols:      cols,
		Rows:      rows,
		Animation: anim,
		Modifiers: modifiersFromConfig("flipbook"),
		Alpha:     alpha,
		RadialMask: mask.RadialMaskParams{
			Radius:   viper.GetFloat64("flipbook.radial_radius"),
			Softness: viper.GetFloat64("flipbook.radial_softness"),
			Power:    viper.GetFloat64("flipbook.radial_power"),
		},
		Combine: combine,
		Name:    viper.GetString("name"),
	}, nil
}

func runFlipbook(cmd *cobra.Command, args []string) error {
	job, err := flipbookJobFromConfig()
	if err != nil {
		return err
	}

	gen, closePack, err := newGenerator("flipbook", true)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := gen.Flipbook(ctx, job)
	if cerr := closePack(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to generate flipbook: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved: %s\n", res.Path)
	fmt.Fprintf(out, "  Total size: %dx%d\n", res.Width, res.Height)
	fmt.Fprintf(out, "  Frame size: %dx%d\n", job.Size, job.Size)
	fmt.Fprintf(out, "  Grid: %dx%d (%d frames)\n", res.Cols, res.Rows, res.Cols*res.Rows)
	return nil
}
