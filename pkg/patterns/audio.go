// Package patterns :: Ready-made audio effects assembled with the filtergraph compose helpers.
// Every pattern appends chains to a caller-owned graph and returns the label(s) holding its result
package patterns

import (
	"filtergraph-box/pkg/filtergraph"
	"filtergraph-box/pkg/filtergraph/expr"
	"filtergraph-box/pkg/logger"
	"fmt"
	"strconv"
)

var log = logger.Build()

// NormalizationMode How loudness normalization is performed
type NormalizationMode uint8

const (
	// Default mode, slow but precise
	// Documentation : https://ffmpeg.org/ffmpeg-filters.html#loudnorm
	Loudnorm NormalizationMode = iota
	// Faster than loudnorm, less precise
	// Documentation : https://ffmpeg.org/ffmpeg-filters.html#dynaudnorm
	Dynaudnorm
	// Made for speech normalization
	// Documentation : https://ffmpeg.org/ffmpeg-filters.html#speechnorm
	Speechnorm
)

// NormalizationFilter Filter normalizing loudness with mode
func NormalizationFilter(mode NormalizationMode) filtergraph.Filter {
	switch mode {
	case Dynaudnorm:
		return filtergraph.NewFilter("dynaudnorm")
	case Speechnorm:
		return filtergraph.NewFilter("speechnorm")
	default:
		// Expected format : loudnorm=I=-16:TP=-1.5:LRA=11
		return filtergraph.NewFilter("loudnorm").Param("I", -16).Param("TP", -1.5).Param("LRA", 11)
	}
}

// Normalize Normalize input loudness
func Normalize(g *filtergraph.Graph, input string, mode NormalizationMode) (string, error) {
	return g.ComposeChain(input, NormalizationFilter(mode))
}

// Sampling Sampling rates
type Sampling string

const (
	K44 Sampling = "44100"
	K48 Sampling = "48000"
)

// ResampleFilter Expected format : aformat=sample_fmts=fltp:sample_rates=44100:channel_layouts=stereo
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#aformat-1
func ResampleFilter(rate Sampling) filtergraph.Filter {
	return filtergraph.NewFilter("aformat").
		Param("sample_fmts", "fltp").
		Param("sample_rates", string(rate)).
		Param("channel_layouts", "stereo")
}

// Resample Convert input to planar float stereo at rate
func Resample(g *filtergraph.Graph, input string, rate Sampling) (string, error) {
	return g.ComposeChain(input, ResampleFilter(rate))
}

// Volume Scale input volume by level (1 keeps it as is)
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#volume
func Volume(g *filtergraph.Graph, input string, level float64) (string, error) {
	if !isFinite(level) || level < 0 {
		return "", fmt.Errorf("volume must be a finite number >= 0, got %s", strconv.FormatFloat(level, 'f', -1, 64))
	}
	return g.ComposeChain(input, filtergraph.NewFilter("volume").Param("volume", level))
}

// VolumeExpr Scale input volume by an expression of time, evaluated on every frame.
// The expression is quoted as its function calls contain commas
func VolumeExpr(g *filtergraph.Graph, input string, e expr.Expr) (string, error) {
	f := filtergraph.NewFilter("volume").
		Param("volume", fmt.Sprintf("'%s'", e)).
		Param("eval", "frame")
	return g.ComposeChain(input, f)
}

// DuckWindow Volume expression equal to level between start and end (seconds), 1 elsewhere
func DuckWindow(start, end, level float64) expr.Expr {
	t := expr.Var(expr.T)
	return expr.If(expr.Between(t, expr.Constant(start), expr.Constant(end)), expr.Constant(level), expr.Constant(1))
}

// FadeIn Volume expression ramping linearly from 0 to 1 over duration seconds
func FadeIn(duration float64) expr.Expr {
	t := expr.Var(expr.T)
	return expr.Min(t.Div(expr.Constant(duration)), expr.Constant(1))
}

// ConcatAudio Put two or more audio inputs one after another
// /!\ The audio must use the same codec /!\
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#concat
func ConcatAudio(g *filtergraph.Graph, inputs []string) (string, error) {
	return g.ComposeMerge(inputs, filtergraph.Concat(len(inputs), 0, 1))
}
