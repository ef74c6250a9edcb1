package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/pipeline"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
)

var (
	rampResolutions = []int{64, 128, 256, 512, 1024}
	rampAlphas      = []string{"value", "threshold"}
)

var rampCmd = &cobra.Command{
	Use:   "ramp",
	Short: "Generate a gradient ramp texture",
	Long:  "Generate a radial, directional, horizontal or vertical gradient, or a 1D lookup strip with --ramp-1d.",
	RunE:  runRamp,
}

func init() {
	rootCmd.AddCommand(rampCmd)

	rampCmd.Flags().String("type", "radial", "Gradient type (radial, directional, horizontal, vertical)")
	rampCmd.Flags().Int("resolution", 256, "Output resolution ("+intsUsage(rampResolutions)+")")
	addFalloffFlag(rampCmd)
	addRadialFlags(rampCmd)
	rampCmd.Flags().Float64("angle", 0, "Gradient angle in degrees (0 = horizontal)")
	rampCmd.Flags().Float64("start", 0, "Start value")
	rampCmd.Flags().Float64("end", 1, "End value")
	rampCmd.Flags().Int("repeat", 1, "Repeat count")
	rampCmd.Flags().Bool("ramp-1d", false, "Write an Nx1 lookup strip")
	rampCmd.Flags().String("tint-start", "", "Hex color mapped to value 0 (requires --tint-end)")
	rampCmd.Flags().String("tint-end", "", "Hex color mapped to value 1 (requires --tint-start)")
	addModifierFlags(rampCmd, false)
	addAlphaFlags(rampCmd, rampAlphas, 0.0)

	bindFlags(rampCmd, "ramp")
}

func rampJobFromConfig() (pipeline.RampJob, error) {
	typeName := viper.GetString("ramp.type")
	if err := checkChoice("type", typeName, pipeline.RampTypeNames()); err != nil {
		return pipeline.RampJob{}, err
	}
	rampType, err := pipeline.ParseRampType(typeName)
	if err != nil {
		return pipeline.RampJob{}, err
	}
	size := viper.GetInt("ramp.resolution")
	if err := checkIntChoice("resolution", size, rampResolutions); err != nil {
		return pipeline.RampJob{}, err
	}
	falloff, err := pattern.ParseFalloff(viper.GetString("ramp.falloff"))
	if err != nil {
		return pipeline.RampJob{}, err
	}
	alpha, err := alphaFromConfig("ramp", rampAlphas)
	if err != nil {
		return pipeline.RampJob{}, err
	}

	job := pipeline.RampJob{
		Type:   rampType,
		Size:   size,
		Radial: radialFromConfig("ramp", falloff),
		Directional: pattern.DirectionalParams{
			Angle:   viper.GetFloat64("ramp.angle"),
			Falloff: falloff,
			Start:   viper.GetFloat64("ramp.start"),
			End:     viper.GetFloat64("ramp.end"),
			Repeat:  viper.GetInt("ramp.repeat"),
		},
		OneD:      viper.GetBool("ramp.ramp_1d"),
		Modifiers: modifiersFromConfig("ramp"),
		Alpha:     alpha,
		Name:      viper.GetString("name"),
	}

	start, end := viper.GetString("ramp.tint_start"), viper.GetString("ramp.tint_end")
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return pipeline.RampJob{}, fmt.Errorf("--tint-start and --tint-end must be given together")
	default:
		tint, err := texture.ParseRamp(start, end)
		if err != nil {
			return pipeline.RampJob{}, err
		}
		job.Tint = &tint
	}
	return job, nil
}

func runRamp(cmd *cobra.Command, args []string) error {
	job, err := rampJobFromConfig()
	if err != nil {
		return err
	}

	gen, closePack, err := newGenerator("ramp", false)
	if err != nil {
		return err
	}

	res, err := gen.Ramp(job)
	if cerr := closePack(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to generate ramp: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "  Size: %dx%d\n", res.Width, res.Height)
	return nil
}
