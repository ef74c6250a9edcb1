package pattern

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Kind names a pattern family.
type Kind int

const (
	KindSimplex Kind = iota
	KindFBM
	KindVoronoi
	KindRadialGradient
	KindDirectionalGradient
	KindCaustics
)

// Metric is the Voronoi distance function.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricChebyshev
)

// VoronoiMode selects which distance feature a Voronoi pattern outputs.
type VoronoiMode int

const (
	ModeF1 VoronoiMode = iota
	ModeF2
	ModeF2MinusF1
	ModeEdge
)

// Falloff shapes a gradient parameter t in [0,1].
type Falloff int

const (
	FalloffLinear Falloff = iota
	FalloffSmooth
	FalloffExp
	FalloffInvExp
)

// FractalVariant post-processes each octave sample of a fractal sum.
type FractalVariant int

const (
	VariantNone FractalVariant = iota
	VariantRidged
	VariantTurbulence
)

var (
	ErrUnknownKind     = errors.New("unknown pattern")
	ErrUnknownMetric   = errors.New("unknown distance metric")
	ErrUnknownMode     = errors.New("unknown voronoi mode")
	ErrUnknownFalloff  = errors.New("unknown falloff")
	ErrUnknownVariant  = errors.New("unknown fractal variant")
	ErrNonPositiveSize = errors.New("size must be positive")
)

var kindNames = map[Kind]string{
	KindSimplex:             "simplex",
	KindFBM:                 "fbm",
	KindVoronoi:             "voronoi",
	KindRadialGradient:      "radial_gradient",
	KindDirectionalGradient: "directional_gradient",
	KindCaustics:            "caustics",
}

// kindAliases are the short names the sprite command accepts.
var kindAliases = map[string]Kind{
	"radial":      KindRadialGradient,
	"directional": KindDirectionalGradient,
}

var metricNames = map[Metric]string{
	MetricEuclidean: "euclidean",
	MetricManhattan: "manhattan",
	MetricChebyshev: "chebyshev",
}

var modeNames = map[VoronoiMode]string{
	ModeF1:        "f1",
	ModeF2:        "f2",
	ModeF2MinusF1: "f2-f1",
	ModeEdge:      "edge",
}

var falloffNames = map[Falloff]string{
	FalloffLinear: "linear",
	FalloffSmooth: "smooth",
	FalloffExp:    "exp",
	FalloffInvExp: "inv_exp",
}

var variantNames = map[FractalVariant]string{
	VariantNone:       "none",
	VariantRidged:     "ridged",
	VariantTurbulence: "turbulence",
}

func enumString[T ~int](names map[T]string, v T, typ string) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("%s(%d)", typ, int(v))
}

func parseEnum[T ~int](names map[T]string, s string, sentinel error) (T, error) {
	for v, name := range names {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want %s)", sentinel, s, strings.Join(Names(names), ", "))
}

// Names lists the string forms of an enum in declaration order.
func Names[T ~int](names map[T]string) []string {
	keys := make([]int, 0, len(names))
	for v := range names {
		keys = append(keys, int(v))
	}
	sort.Ints(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = names[T(k)]
	}
	return out
}

func (k Kind) String() string           { return enumString(kindNames, k, "Kind") }
func (m Metric) String() string         { return enumString(metricNames, m, "Metric") }
func (m VoronoiMode) String() string    { return enumString(modeNames, m, "VoronoiMode") }
func (f Falloff) String() string        { return enumString(falloffNames, f, "Falloff") }
func (v FractalVariant) String() string { return enumString(variantNames, v, "FractalVariant") }

// ParseKind accepts the canonical names plus "radial" and "directional".
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	return parseEnum(kindNames, s, ErrUnknownKind)
}

func ParseMetric(s string) (Metric, error)           { return parseEnum(metricNames, s, ErrUnknownMetric) }
func ParseVoronoiMode(s string) (VoronoiMode, error) { return parseEnum(modeNames, s, ErrUnknownMode) }
func ParseFalloff(s string) (Falloff, error)         { return parseEnum(falloffNames, s, ErrUnknownFalloff) }
func ParseVariant(s string) (FractalVariant, error)  { return parseEnum(variantNames, s, ErrUnknownVariant) }

// MetricNames, ModeNames, FalloffNames and VariantNames list valid flag values.
func MetricNames() []string  { return Names(metricNames) }
func ModeNames() []string    { return Names(modeNames) }
func FalloffNames() []string { return Names(falloffNames) }
func VariantNames() []string { return Names(variantNames) }

// NoiseParams configures simplex and fbm patterns.
type NoiseParams struct {
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Variant     FractalVariant
}

// DefaultNoiseParams matches the noise command defaults.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{Frequency: 4, Octaves: 4, Persistence: 0.5, Lacunarity: 2}
}

// VoronoiParams configures cellular patterns.
type VoronoiParams struct {
	Cells  int
	Metric Metric
	Mode   VoronoiMode
	Jitter float64
}

func DefaultVoronoiParams() VoronoiParams {
	return VoronoiParams{Cells: 16, Metric: MetricEuclidean, Mode: ModeF1, Jitter: 1}
}

// RadialParams configures a radial gradient. Radius is a fraction of size,
// centers are normalized coordinates.
type RadialParams struct {
	Falloff  Falloff
	Radius   float64
	CenterX  float64
	CenterY  float64
	Softness float64
	Power    float64
}

func DefaultRadialParams() RadialParams {
	return RadialParams{Falloff: FalloffSmooth, Radius: 0.5, CenterX: 0.5, CenterY: 0.5, Softness: 1, Power: 1}
}

// DirectionalParams configures a directional gradient. Angle is in degrees.
type DirectionalParams struct {
	Angle   float64
	Falloff Falloff
	Start   float64
	End     float64
	Repeat  int
}

func DefaultDirectionalParams() DirectionalParams {
	return DirectionalParams{Falloff: FalloffLinear, Start: 0, End: 1, Repeat: 1}
}

// CausticsParams configures the interference caustics pattern.
type CausticsParams struct {
	Scale      float64
	Time       float64
	Intensity  float64
	Layers     int
	Distortion float64
}

func DefaultCausticsParams() CausticsParams {
	return CausticsParams{Scale: 4, Intensity: 1, Layers: 3, Distortion: 0.5}
}

// Spec fully describes one pattern. Only the params block matching Kind is read.
type Spec struct {
	Kind        Kind
	Noise       NoiseParams
	Voronoi     VoronoiParams
	Radial      RadialParams
	Directional DirectionalParams
	Caustics    CausticsParams
	Tileable    bool
	// Seed is nil when the caller wants a random seed.
	Seed *int64
}

// DefaultSpec returns a spec of the given kind with every params block at its default.
func DefaultSpec(k Kind) Spec {
	return Spec{
		Kind:        k,
		Noise:       DefaultNoiseParams(),
		Voronoi:     DefaultVoronoiParams(),
		Radial:      DefaultRadialParams(),
		Directional: DefaultDirectionalParams(),
		Caustics:    DefaultCausticsParams(),
	}
}

// ResolveSeed returns the explicit seed, or a fresh random one.
func (s Spec) ResolveSeed() int64 {
	if s.Seed != nil {
		return *s.Seed
	}
	return RandomSeed()
}

// RandomSeed returns a seed in [0, 2^31).
func RandomSeed() int64 {
	return rand.New(rand.NewSource(time.Now().UnixNano())).Int63n(1 << 31)
}

// Int64 returns a pointer to v, for Spec.Seed literals.
func Int64(v int64) *int64 { return &v }
