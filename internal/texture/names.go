package texture

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileName returns custom with ".png" appended when missing, or fallback
// when custom is empty.
func FileName(custom, fallback string) string {
	if custom == "" {
		return fallback
	}
	if !strings.HasSuffix(strings.ToLower(custom), ".png") {
		custom += ".png"
	}
	return custom
}

// OutputPath joins the output directory with FileName(custom, fallback).
func OutputPath(dir, custom, fallback string) string {
	return filepath.Join(dir, FileName(custom, fallback))
}

func NoiseName(pattern string, res int) string {
	return fmt.Sprintf("noise_%s_%d_tileable.png", pattern, res)
}

func SpriteName(pattern string, res int) string {
	return fmt.Sprintf("sprite_%s_%d.png", pattern, res)
}

func RampName(kind string, res int, oneD bool) string {
	dim := "2d"
	if oneD {
		dim = "1d"
	}
	return fmt.Sprintf("ramp_%s_%d_%s.png", kind, res, dim)
}

func FlipbookName(pattern string, res, cols, rows int) string {
	return fmt.Sprintf("flipbook_%s_%d_%dx%d.png", pattern, res, cols, rows)
}

func VolumeName(pattern string, res, slices int) string {
	return fmt.Sprintf("volume_%s_%d_%dslices.png", pattern, res, slices)
}
