package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/pipeline"
)

var (
	noisePatterns    = []string{"simplex", "fbm", "voronoi", "caustics"}
	imageResolutions = []int{256, 512, 1024, 2048}
	imageAlphas      = []string{"value", "edge", "threshold"}
)

var noiseCmd = &cobra.Command{
	Use:   "noise",
	Short: "Generate a tileable noise texture",
	Long:  "Generate a seamless noise map (simplex, fbm, voronoi or caustics) for scrolling and distortion effects.",
	RunE:  runNoise,
}

func init() {
	rootCmd.AddCommand(noiseCmd)

	noiseCmd.Flags().String("pattern", "simplex", "Pattern type (simplex, fbm, voronoi, caustics)")
	noiseCmd.Flags().Int("resolution", 512, "Output resolution ("+intsUsage(imageResolutions)+")")
	noiseCmd.Flags().Int("preview", 0, "Also write an NxN tiled preview when N > 1")
	addNoiseFlags(noiseCmd, 4.0, 4)
	addVoronoiFlags(noiseCmd, 16, 1.0)
	addCausticsFlags(noiseCmd, true)
	addModifierFlags(noiseCmd, true)
	addAlphaFlags(noiseCmd, imageAlphas, 0.1)

	bindFlags(noiseCmd, "noise")
}

// imageJobFromConfig reads the flags shared by noise and sprite.
func imageJobFromConfig(prefix string, patterns []string) (pipeline.ImageJob, error) {
	name := viper.GetString(key(prefix, "pattern"))
	if err := checkChoice("pattern", name, patterns); err != nil {
		return pipeline.ImageJob{}, err
	}
	size := viper.GetInt(key(prefix, "resolution"))
	if err := checkIntChoice("resolution", size, imageResolutions); err != nil {
		return pipeline.ImageJob{}, err
	}
	kind, err := pattern.ParseKind(name)
	if err != nil {
		return pipeline.ImageJob{}, err
	}

	spec := pattern.DefaultSpec(kind)
	spec.Seed = seedFromConfig()
	spec.Noise = noiseFromConfig(prefix)
	if spec.Voronoi, err = voronoiFromConfig(prefix); err != nil {
		return pipeline.ImageJob{}, err
	}
	spec.Caustics = causticsFromConfig(prefix)

	alpha, err := alphaFromConfig(prefix, imageAlphas)
	if err != nil {
		return pipeline.ImageJob{}, err
	}

	return pipeline.ImageJob{
		Spec:      spec,
		Size:      size,
		Modifiers: modifiersFromConfig(prefix),
		Alpha:     alpha,
		Name:      viper.GetString("name"),
	}, nil
}

func runNoise(cmd *cobra.Command, args []string) error {
	job, err := imageJobFromConfig("noise", noisePatterns)
	if err != nil {
		return err
	}
	job.Preview = viper.GetInt("noise.preview")

	gen, closePack, err := newGenerator("noise", false)
	if err != nil {
		return err
	}

	res, err := gen.Noise(job)
	if cerr := closePack(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to generate noise: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.Path)
	return nil
}
