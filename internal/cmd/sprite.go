package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/pattern"
)

var spritePatterns = []string{"simplex", "fbm", "voronoi", "radial", "directional", "caustics"}

var spriteCmd = &cobra.Command{
	Use:   "sprite",
	Short: "Generate a single sprite texture",
	Long:  "Generate a sprite from any pattern family. Noise patterns are tileable only with --tileable.",
	RunE:  runSprite,
}

func init() {
	rootCmd.AddCommand(spriteCmd)

	spriteCmd.Flags().String("pattern", "simplex", "Pattern type (simplex, fbm, voronoi, radial, directional, caustics)")
	spriteCmd.Flags().Int("resolution", 512, "Output resolution ("+intsUsage(imageResolutions)+")")
	spriteCmd.Flags().Bool("tileable", false, "Make tileable")
	addNoiseFlags(spriteCmd, 4.0, 4)
	addVoronoiFlags(spriteCmd, 16, 1.0)
	addFalloffFlag(spriteCmd)
	addRadialFlags(spriteCmd)
	spriteCmd.Flags().Float64("angle", 0, "Directional gradient angle in degrees")
	addCausticsFlags(spriteCmd, true)
	addModifierFlags(spriteCmd, true)
	addAlphaFlags(spriteCmd, imageAlphas, 0.1)

	bindFlags(spriteCmd, "sprite")
}

func runSprite(cmd *cobra.Command, args []string) error {
	job, err := imageJobFromConfig("sprite", spritePatterns)
	if err != nil {
		return err
	}
	falloff, err := pattern.ParseFalloff(viper.GetString("sprite.falloff"))
	if err != nil {
		return err
	}
	job.Spec.Tileable = viper.GetBool("sprite.tileable")
	job.Spec.Radial = radialFromConfig("sprite", falloff)
	job.Spec.Directional = pattern.DefaultDirectionalParams()
	job.Spec.Directional.Angle = viper.GetFloat64("sprite.angle")
	job.Spec.Directional.Falloff = falloff

	gen, closePack, err := newGenerator("sprite", false)
	if err != nil {
		return err
	}

	res, err := gen.Sprite(job)
	if cerr := closePack(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to generate sprite: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.Path)
	return nil
}
