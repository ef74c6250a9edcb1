package pipeline

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/MeKo-Tech/vfxtex/internal/mask"
	"github.com/MeKo-Tech/vfxtex/internal/pattern"
	"github.com/MeKo-Tech/vfxtex/internal/texture"
)

// RampType selects the gradient shape of a ramp texture.
type RampType int

const (
	RampRadial RampType = iota
	RampDirectional
	RampHorizontal
	RampVertical
)

var ErrUnknownRampType = errors.New("unknown ramp type")

var rampNames = map[RampType]string{
	RampRadial:      "radial",
	RampDirectional: "directional",
	RampHorizontal:  "horizontal",
	RampVertical:    "vertical",
}

func (t RampType) String() string {
	if n, ok := rampNames[t]; ok {
		return n
	}
	return fmt.Sprintf("RampType(%d)", int(t))
}

// ParseRampType accepts the names printed by String.
func ParseRampType(s string) (RampType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, n := range rampNames {
		if n == s {
			return t, nil
		}
	}
	return RampRadial, fmt.Errorf("%w: %q", ErrUnknownRampType, s)
}

// RampTypeNames lists the ramp types in declaration order.
func RampTypeNames() []string {
	return []string{"radial", "directional", "horizontal", "vertical"}
}

// RampJob describes a gradient ramp. Radial is read for RampRadial, and
// Directional for the other types; horizontal and vertical override the
// angle with 0 and 90 degrees.
type RampJob struct {
	Type        RampType
	Size        int
	Radial      pattern.RadialParams
	Directional pattern.DirectionalParams
	// OneD writes a Size x 1 strip built from Directional, with alpha equal
	// to the value.
	OneD      bool
	Modifiers mask.Modifiers
	Alpha     mask.AlphaParams
	Tint      *texture.Ramp
	Name      string
}

// Ramp writes a gradient ramp texture. Ramps are pure geometry and need no seed.
func (g *Generator) Ramp(job RampJob) (Result, error) {
	if err := checkSize(job.Size); err != nil {
		return Result{}, err
	}
	g.log().Info("Generating ramp", "type", job.Type.String(), "size", job.Size, "1d", job.OneD)

	value, alpha := g.rampBuffers(job)

	var (
		img image.Image
		err error
	)
	if job.Tint != nil {
		img, err = texture.EncodeTinted(value, alpha, *job.Tint)
	} else {
		img, err = texture.Encode(value, alpha, false)
	}
	if err != nil {
		return Result{}, err
	}

	name := texture.FileName(job.Name, texture.RampName(job.Type.String(), job.Size, job.OneD))
	return g.write("ramp", name, img, 1, 1, 0, job)
}

func (g *Generator) rampBuffers(job RampJob) (pattern.Buffer, pattern.Buffer) {
	pg := g.patterns(0)
	if job.OneD {
		value := mask.ApplyModifiers(pg.Ramp1D(job.Size, job.Directional), job.Modifiers)
		return value, value.Clone()
	}

	var value pattern.Buffer
	dir := job.Directional
	switch job.Type {
	case RampDirectional:
		value = pg.DirectionalGradient(job.Size, dir)
	case RampHorizontal:
		dir.Angle = 0
		value = pg.DirectionalGradient(job.Size, dir)
	case RampVertical:
		dir.Angle = 90
		value = pg.DirectionalGradient(job.Size, dir)
	default:
		value = pg.RadialGradient(job.Size, job.Radial)
	}
	return shape(value, job.Modifiers, job.Alpha)
}
