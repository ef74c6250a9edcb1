package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/noise"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/pipeline"
	"github.com/MeKo-Tech/vfxtex/internal/texpack"
)

// bindFlags binds every local flag of cmd to the viper key
// "<prefix>.<flag>", with dashes in the flag name turned into underscores.
func bindFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := prefix + "." + strings.ReplaceAll(f.Name, "-", "_")
		if err := viper.BindPFlag(key, f); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", f.Name, err))
		}
	})
}

// key returns the viper key of a flag bound by bindFlags.
func key(prefix, flag string) string {
	return prefix + "." + strings.ReplaceAll(flag, "-", "_")
}

// checkChoice validates an enumerated string flag.
func checkChoice(flag, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid --%s %q: must be one of %s", flag, value, strings.Join(allowed, ", "))
}

// checkIntChoice validates an enumerated integer flag.
func checkIntChoice(flag string, value int, allowed []int) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = strconv.Itoa(a)
	}
	return fmt.Errorf("invalid --%s %d: must be one of %s", flag, value, strings.Join(names, ", "))
}

func intsUsage(allowed []int) string {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = strconv.Itoa(a)
	}
	return strings.Join(names, ", ")
}

// seedFromConfig returns nil for a negative --seed.
func seedFromConfig() *int64 {
	s := viper.GetInt64("seed")
	if s < 0 {
		return nil
	}
	return &s
}

func addNoiseFlags(cmd *cobra.Command, frequency float64, octaves int) {
	cmd.Flags().Float64("frequency", frequency, "Noise frequency")
	cmd.Flags().Int("octaves", octaves, "Noise octaves")
	cmd.Flags().Float64("persistence", 0.5, "Octave persistence")
	cmd.Flags().Float64("lacunarity", 2.0, "Octave lacunarity")
	cmd.Flags().Bool("ridged", false, "Ridged noise (fbm)")
	cmd.Flags().Bool("turbulence", false, "Turbulent noise (fbm)")
}

func noiseFromConfig(prefix string) pattern.NoiseParams {
	p := pattern.NoiseParams{
		Frequency:   viper.GetFloat64(key(prefix, "frequency")),
		Octaves:     viper.GetInt(key(prefix, "octaves")),
		Persistence: viper.GetFloat64(key(prefix, "persistence")),
		Lacunarity:  viper.GetFloat64(key(prefix, "lacunarity")),
	}
	switch {
	case viper.GetBool(key(prefix, "ridged")):
		p.Variant = pattern.VariantRidged
	case viper.GetBool(key(prefix, "turbulence")):
		p.Variant = pattern.VariantTurbulence
	}
	return p
}

func addVoronoiFlags(cmd *cobra.Command, cells int, jitter float64) {
	cmd.Flags().Int("cells", cells, "Voronoi cell count")
	cmd.Flags().String("metric", "euclidean", "Distance metric ("+strings.Join(pattern.MetricNames(), ", ")+")")
	cmd.Flags().String("mode", "f1", "Voronoi mode ("+strings.Join(pattern.ModeNames(), ", ")+")")
	cmd.Flags().Float64("jitter", jitter, "Cell jitter")
}

func voronoiFromConfig(prefix string) (pattern.VoronoiParams, error) {
	metric, err := pattern.ParseMetric(viper.GetString(key(prefix, "metric")))
	if err != nil {
		return pattern.VoronoiParams{}, err
	}
	mode, err := pattern.ParseVoronoiMode(viper.GetString(key(prefix, "mode")))
	if err != nil {
		return pattern.VoronoiParams{}, err
	}
	return pattern.VoronoiParams{
		Cells:  viper.GetInt(key(prefix, "cells")),
		Metric: metric,
		Mode:   mode,
		Jitter: viper.GetFloat64(key(prefix, "jitter")),
	}, nil
}

func addCausticsFlags(cmd *cobra.Command, withTime bool) {
	cmd.Flags().Float64("scale", 4.0, "Caustics scale")
	if withTime {
		cmd.Flags().Float64("time", 0, "Caustics time")
	}
	cmd.Flags().Float64("intensity", 1.0, "Caustics intensity")
	cmd.Flags().Int("layers", 3, "Caustics layers")
	cmd.Flags().Float64("distortion", 0.5, "Caustics distortion")
}

func causticsFromConfig(prefix string) pattern.CausticsParams {
	return pattern.CausticsParams{
		Scale:      viper.GetFloat64(key(prefix, "scale")),
		Time:       viper.GetFloat64(key(prefix, "time")),
		Intensity:  viper.GetFloat64(key(prefix, "intensity")),
		Layers:     viper.GetInt(key(prefix, "layers")),
		Distortion: viper.GetFloat64(key(prefix, "distortion")),
	}
}

func addFalloffFlag(cmd *cobra.Command) {
	cmd.Flags().String("falloff", "smooth", "Gradient falloff ("+strings.Join(pattern.FalloffNames(), ", ")+")")
}

func addRadialFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("radius", 0.5, "Radial gradient radius")
	cmd.Flags().Float64("center-x", 0.5, "Center X")
	cmd.Flags().Float64("center-y", 0.5, "Center Y")
	cmd.Flags().Float64("softness", 1.0, "Edge softness")
	cmd.Flags().Float64("power", 2.0, "Falloff power")
}

func radialFromConfig(prefix string, falloff pattern.Falloff) pattern.RadialParams {
	return pattern.RadialParams{
		Falloff:  falloff,
		Radius:   viper.GetFloat64(key(prefix, "radius")),
		CenterX:  viper.GetFloat64(key(prefix, "center-x")),
		CenterY:  viper.GetFloat64(key(prefix, "center-y")),
		Softness: viper.GetFloat64(key(prefix, "softness")),
		Power:    viper.GetFloat64(key(prefix, "power")),
	}
}

func addModifierFlags(cmd *cobra.Command, brightness bool) {
	cmd.Flags().Bool("invert", false, "Invert output")
	cmd.Flags().Float64("contrast", 1.0, "Contrast")
	if brightness {
		cmd.Flags().Float64("brightness", 0.0, "Brightness")
	}
	cmd.Flags().Float64("gamma", 1.0, "Gamma")
	cmd.Flags().Float64("remap-min", 0.0, "Remap output minimum")
	cmd.Flags().Float64("remap-max", 1.0, "Remap output maximum")
}

func modifiersFromConfig(prefix string) mask.Modifiers {
	return mask.Modifiers{
		Invert:     viper.GetBool(key(prefix, "invert")),
		Contrast:   viper.GetFloat64(key(prefix, "contrast")),
		Brightness: viper.GetFloat64(key(prefix, "brightness")),
		Gamma:      viper.GetFloat64(key(prefix, "gamma")),
		RemapMin:   viper.GetFloat64(key(prefix, "remap-min")),
		RemapMax:   viper.GetFloat64(key(prefix, "remap-max")),
	}
}

func addAlphaFlags(cmd *cobra.Command, sources []string, threshold float64) {
	cmd.Flags().String("alpha-source", "value", "Alpha source ("+strings.Join(sources, ", ")+")")
	cmd.Flags().Float64("alpha-threshold", threshold, "Alpha threshold")
	cmd.Flags().Float64("alpha-softness", 0.1, "Alpha softness")
	cmd.Flags().Float64("alpha-multiply", 1.0, "Alpha multiplier")
	cmd.Flags().Float32("alpha-blur", 0, "Gaussian blur sigma applied to alpha, in pixels")
}

func alphaFromConfig(prefix string, sources []string) (mask.AlphaParams, error) {
	name := viper.GetString(key(prefix, "alpha-source"))
	if err := checkChoice("alpha-source", name, sources); err != nil {
		return mask.AlphaParams{}, err
	}
	source, err := mask.ParseAlphaSource(name)
	if err != nil {
		return mask.AlphaParams{}, err
	}
	return mask.AlphaParams{
		Source:    source,
		Threshold: viper.GetFloat64(key(prefix, "alpha-threshold")),
		Softness:  viper.GetFloat64(key(prefix, "alpha-softness")),
		Multiply:  viper.GetFloat64(key(prefix, "alpha-multiply")),
		Blur:      float32(viper.GetFloat64(key(prefix, "alpha-blur"))),
	}, nil
}

func addWorkerFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	cmd.Flags().Bool("progress", true, "Show a progress bar")
}

// newGenerator builds a pipeline generator from the global flags, and from
// the worker flags when parallel is set. The returned close function flushes
// the texture pack, if any.
func newGenerator(prefix string, parallel bool) (*pipeline.Generator, func() error, error) {
	if logger == nil {
		initLogging()
	}

	backend, err := noise.ParseBackend(viper.GetString("noise-backend"))
	if err != nil {
		return nil, nil, err
	}

	workers := 1
	progress := false
	if parallel {
		workers = viper.GetInt(key(prefix, "workers"))
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		progress = viper.GetBool(key(prefix, "progress"))
	}

	opts := pipeline.Options{
		Logger:    logger,
		OutputDir: viper.GetString("output"),
		Backend:   backend,
		Workers:   workers,
		Progress:  progress,
	}

	closer := func() error { return nil }
	if path := viper.GetString("pack"); path != "" {
		w, err := texpack.New(path, texpack.Metadata{
			Name:        "vfxtex textures",
			Description: "Procedural VFX textures",
			Generator:   "vfxtex",
			Version:     version,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open texture pack: %w", err)
		}
		opts.Pack = w
		closer = w.Close
		logger.Info("Writing to texture pack", "path", path)
	}

	return pipeline.NewGenerator(opts), closer, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
