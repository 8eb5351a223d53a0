package patterns

import (
	"filtergraph-box/pkg/filtergraph"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DuckingOptions Sidechain compression parameters
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#sidechaincompress
type DuckingOptions struct {
	// Level above which the side channel starts ducking the main one, 0.00097563 to 1
	Threshold float64
	// Compression ratio, 1 to 20
	Ratio float64
	// Milliseconds before the ducking fully applies, 0.01 to 2000
	Attack float64
	// Milliseconds before the main channel recovers, 0.01 to 9000
	Release float64
	// Relative volume of [ducked main, side] in the final mix
	Weights [2]float64
}

// DefaultDuckingOptions threshold=0.125, ratio=2, attack=20, release=250, main channel in the background
func DefaultDuckingOptions() DuckingOptions {
	return DuckingOptions{
		Threshold: 0.125,
		Ratio:     2,
		Attack:    20,
		Release:   250,
		Weights:   [2]float64{0.2, 1},
	}
}

// Validate Check every parameter is within the range accepted by sidechaincompress
func (do DuckingOptions) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"threshold", do.Threshold, 0.00097563, 1},
		{"ratio", do.Ratio, 1, 20},
		{"attack", do.Attack, 0.01, 2000},
		{"release", do.Release, 0.01, 9000},
	}
	for _, c := range checks {
		if !isFinite(c.value) || c.value < c.min || c.value > c.max {
			return fmt.Errorf("%s must be within %s-%s, got %s", c.name, formatNumber(c.min), formatNumber(c.max), formatNumber(c.value))
		}
	}
	for _, w := range do.Weights {
		if !isFinite(w) || w < 0 {
			return fmt.Errorf("mix weights must be >= 0, got %s", formatNumber(w))
		}
	}
	return nil
}

// Duck Lower main whenever side is loud, then mix both.
// Expected format :
// nolint:lll  "[side]asplit=2[sc][so];[main][sc]sidechaincompress=threshold=0.125:ratio=2:attack=20:release=250[ducked];[ducked][so]amix=inputs=2:weights=0.2 1[out]"
func Duck(g *filtergraph.Graph, main, side string, opts DuckingOptions) (string, error) {
	// Everything that can fail is checked first, so that no chain is appended on error
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("invalid ducking options : %w", err)
	}
	// Duplicate the side channel using asplit
	// One will be used to modulate the main channel volume, and the other mixed with the modulated
	// main channel
	sideCopies, err := g.ComposeBranch(side, 2, true)
	if err != nil {
		return "", err
	}

	// Use the first duplicate of the side channel to modulate main channel volume
	compress := filtergraph.NewFilter("sidechaincompress").
		Param("threshold", opts.Threshold).
		Param("ratio", opts.Ratio).
		Param("attack", opts.Attack).
		Param("release", opts.Release)
	ducked, err := g.ComposeMerge([]string{main, sideCopies[0]}, compress)
	if err != nil {
		return "", err
	}

	// Finally, mix the modulated main channel with the original side channel
	return g.ComposeMerge([]string{ducked, sideCopies[1]}, AmixFilter(opts.Weights[:]...))
}

// AmixFilter Mix len(weights) inputs, with relative volumes weights
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#amix
func AmixFilter(weights ...float64) filtergraph.Filter {
	w := make([]string, len(weights))
	for i, weight := range weights {
		w[i] = formatNumber(weight)
	}
	return filtergraph.NewFilter("amix").
		Param("inputs", len(weights)).
		Param("weights", strings.Join(w, " "))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
