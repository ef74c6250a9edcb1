package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/pipeline"
)

var (
	volumePatterns    = []string{"simplex", "fbm"}
	volumeResolutions = []int{64, 128, 256, 512}
	volumeSlices      = []int{8, 16, 32, 64}
)

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Generate a volume texture as a grid of slices",
	Long:  "Generate 3D noise and lay its Z slices out on a 2D grid for volume texture import.",
	RunE:  runVolume,
}

func init() {
	rootCmd.AddCommand(volumeCmd)

	volumeCmd.Flags().String("pattern", "simplex", "Pattern type (simplex, fbm)")
	volumeCmd.Flags().Int("resolution", 256, "Slice resolution ("+intsUsage(volumeResolutions)+")")
	volumeCmd.Flags().Int("slices", 16, "Number of Z slices ("+intsUsage(volumeSlices)+")")
	addNoiseFlags(volumeCmd, 4.0, 4)
	addModifierFlags(volumeCmd, true)
	addAlphaFlags(volumeCmd, imageAlphas, 0.1)
	addWorkerFlags(volumeCmd)

	bindFlags(volumeCmd, "volume")
}

func volumeJobFromConfig() (pipeline.VolumeJob, error) {
	name := viper.GetString("volume.pattern")
	if err := checkChoice("pattern", name, volumePatterns); err != nil {
		return pipeline.VolumeJob{}, err
	}
	size := viper.GetInt("volume.resolution")
	if err := checkIntChoice("resolution", size, volumeResolutions); err != nil {
		return pipeline.VolumeJob{}, err
	}
	slices := viper.GetInt("volume.slices")
	if err := checkIntChoice("slices", slices, volumeSlices); err != nil {
		return pipeline.VolumeJob{}, err
	}
	kind, err := pattern.ParseKind(name)
	if err != nil {
		return pipeline.VolumeJob{}, err
	}
	alpha, err := alphaFromConfig("volume", imageAlphas)
	if err != nil {
		return pipeline.VolumeJob{}, err
	}

	spec := pattern.DefaultSpec(kind)
	spec.Seed = seedFromConfig()
	spec.Noise = noiseFromConfig("volume")

	return pipeline.VolumeJob{
		Spec:      spec,
		Size:      size,
		Slices:    slices,
		Modifiers: modifiersFromConfig("volume"),
		Alpha:     alpha,
		Name:      viper.GetString("name"),
	}, nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	job, err := volumeJobFromConfig()
	if err != nil {
		return err
	}

	gen, closePack, err := newGenerator("volume", true)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := gen.Volume(ctx, job)
	if cerr := closePack(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to generate volume: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved: %s\n", res.Path)
	fmt.Fprintf(out, "  Total size: %dx%d\n", res.Width, res.Height)
	fmt.Fprintf(out, "  Slice size: %dx%d\n", job.Size, job.Size)
	fmt.Fprintf(out, "  Grid: %dx%d (%d slices)\n", res.Cols, res.Rows, job.Slices)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "UE5 Import:")
	fmt.Fprintln(out, "  Set Texture Group: VolumeTexture")
	fmt.Fprintf(out, "  Tile X: %d, Tile Y: %d\n", res.Cols, res.Rows)
	return nil
}
