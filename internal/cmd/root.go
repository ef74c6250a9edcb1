package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is stamped into texture packs.
const version = "1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vfxtex",
	Short: "A procedural VFX texture generator",
	Long: `vfxtex generates deterministic procedural textures for real-time effects.

It renders tileable noise maps, sprites, gradient ramps, animated flipbooks
and volume slice grids from seed-driven noise, Voronoi, gradient and caustics
patterns, and writes them as RGBA PNGs ready for engine import.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("output", ".", "Output directory")
	rootCmd.PersistentFlags().String("name", "", "Custom file name (.png is appended when missing)")
	rootCmd.PersistentFlags().Int64("seed", -1, "Random seed (negative picks one at random)")
	rootCmd.PersistentFlags().String("noise-backend", "lattice", "Noise kernel (lattice, opensimplex, perlin)")
	rootCmd.PersistentFlags().String("pack", "", "Also store the texture in this SQLite texture pack")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	for _, name := range []string{"output", "name", "seed", "noise-backend", "pack", "verbose"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	// --alpha_source and --alpha-source are the same flag.
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VFXTEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
