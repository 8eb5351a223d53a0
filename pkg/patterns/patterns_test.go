package patterns

import (
	mock_labels "filtergraph-box/internal/mock/mock-labels"
	"filtergraph-box/pkg/filtergraph"
	"filtergraph-box/pkg/filtergraph/expr"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Prefix source counting from 0, so that generated labels are predictable
func sequentialPrefixes(t *testing.T) filtergraph.PrefixSource {
	ctrl := gomock.NewController(t)
	src := mock_labels.NewMockPrefixSource(ctrl)
	next := uint64(0)
	src.EXPECT().NextPrefix().DoAndReturn(func() uint64 {
		next++
		return next - 1
	}).AnyTimes()
	return src
}

func TestNormalize(t *testing.T) {
	cases := map[NormalizationMode]string{
		Loudnorm:   "[0:a]loudnorm=I=-16:TP=-1.5:LRA=11[_auto_0_0]",
		Dynaudnorm: "[0:a]dynaudnorm[_auto_0_0]",
		Speechnorm: "[0:a]speechnorm[_auto_0_0]",
	}
	for mode, expected := range cases {
		g := filtergraph.NewGraph(filtergraph.WithPrefixSource(sequentialPrefixes(t)))
		out, err := Normalize(g, "0:a", mode)
		require.NoError(t, err)
		assert.Equal(t, "_auto_0_0", out)
		assert.Equal(t, expected, g.String())
	}
}

func TestResample(t *testing.T) {
	g := filtergraph.NewGraph(filtergraph.WithPrefixSource(sequentialPrefixes(t)))
	_, err := Resample(g, "0", K44)
	require.NoError(t, err)
	assert.Equal(t, "[0]aformat=sample_fmts=fltp:sample_rates=44100:channel_layouts=stereo[_auto_0_0]", g.String())
}

func TestVolume(t *testing.T) {
	g := filtergraph.NewGraph(filtergraph.WithPrefixSource(sequentialPrefixes(t)))
	_, err := Volume(g, "0:a", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "[0:a]volume=volume=0.5[_auto_0_0]", g.String())

	for _, level := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = Volume(g, "0:a", level)
		assert.Error(t, err, level)
	}
	assert.Equal(t, 1, g.Len())
	assert.NotContains(t, g.String(), "NaN")
	assert.NotContains(t, g.String(), "Inf")
}

func TestVolumeExpr_DuckWindow(t *testing.T) {
	g := filtergraph.NewGraph(filtergraph.WithPrefixSource(sequentialPrefixes(t)))
	_, err := VolumeExpr(g, "0:a", DuckWindow(3, 5.5, 0.2))
	require.NoError(t, err)
	assert.Equal(t, "[0:a]volume=volume='if(between(t,3,5.5),0.2,1)':eval=frame[_auto_0_0]", g.String())
}

func TestFadeIn(t *testing.T) {
	assert.Equal(t, "min(t/2,1)", FadeIn(2).String())
	assert.Equal(t, "min(t/0.5,1)", FadeIn(0.5).String())
	assert.IsType(t, expr.Expr{}, FadeIn(1))
}

func TestConcatAudio(t *testing.T) {
	g := filtergraph.NewGraph(filtergraph.WithPrefixSource(sequentialPrefixes(t)))
	_, err := ConcatAudio(g, []string{"0", "1"})
	require.NoError(t, err)
	assert.Equal(t, "[0][1]concat=n=2:v=0:a=1[_auto_0_0]", g.String())

	_, err = ConcatAudio(g, []string{"0"})
	assert.ErrorIs(t, err, filtergraph.ErrMergeInputs)
}

func TestDuck(t *testing.T) {
	g := filtergraph.NewGraph(filtergraph.WithPrefixSource(sequentialPrefixes(t)))
	out, err := Duck(g, "0:a", "1:a", DefaultDuckingOptions())
	require.NoError(t, err)
	assert.Equal(t, "_auto_2_0", out)
	assert.Equal(t,
		"[1:a]asplit=outputs=2[_auto_0_0][_auto_0_1];"+
			"[0:a][_auto_0_0]sidechaincompress=threshold=0.125:ratio=2:attack=20:release=250[_auto_1_0];"+
			"[_auto_1_0][_auto_0_1]amix=inputs=2:weights=0.2 1[_auto_2_0]",
		g.String())
	assert.NoError(t, g.Validate())
}

func TestDuck_MainAndSideUsedOnce(t *testing.T) {
	g := filtergraph.NewGraph()
	out, err := Duck(g, "0", "1", DefaultDuckingOptions())
	require.NoError(t, err)
	rendered := g.String()
	// This is a 3 steps pipeline
	assert.Equal(t, 3, len(strings.Split(rendered, ";")))
	// The final mixed label should only appear once
	assert.Equal(t, 1, strings.Count(rendered, "["+out+"]"))
	assert.Equal(t, 1, strings.Count(rendered, "[0]"))
	assert.Equal(t, 1, strings.Count(rendered, "[1]"))
}

func TestDuck_InvalidOptionsAppendNothing(t *testing.T) {
	for _, mutate := range []func(*DuckingOptions){
		func(o *DuckingOptions) { o.Threshold = 0 },
		func(o *DuckingOptions) { o.Threshold = 1.5 },
		func(o *DuckingOptions) { o.Ratio = 0.5 },
		func(o *DuckingOptions) { o.Ratio = 21 },
		func(o *DuckingOptions) { o.Attack = 0 },
		func(o *DuckingOptions) { o.Attack = 2001 },
		func(o *DuckingOptions) { o.Release = 9001 },
		func(o *DuckingOptions) { o.Weights[1] = -1 },
		func(o *DuckingOptions) { o.Threshold = math.NaN() },
		func(o *DuckingOptions) { o.Ratio = math.NaN() },
		func(o *DuckingOptions) { o.Attack = math.Inf(1) },
		func(o *DuckingOptions) { o.Release = math.NaN() },
		func(o *DuckingOptions) { o.Weights[0] = math.NaN() },
		func(o *DuckingOptions) { o.Weights[1] = math.Inf(1) },
	} {
		opts := DefaultDuckingOptions()
		mutate(&opts)
		g := filtergraph.NewGraph()
		_, err := Duck(g, "0:a", "1:a", opts)
		assert.Error(t, err)
		assert.Equal(t, 0, g.Len())
	}
}

func TestDuckingOptions_Message(t *testing.T) {
	opts := DefaultDuckingOptions()
	opts.Ratio = 42
	assert.EqualError(t, opts.Validate(), "ratio must be within 1-20, got 42")
}

func TestAmixFilter(t *testing.T) {
	assert.Equal(t, "amix=inputs=3:weights=1 0.5 0.25", AmixFilter(1, 0.5, 0.25).String())
}

func TestMixdown_SingleTrack(t *testing.T) {
	opts := DefaultMixdownOptions()
	opts.Prefixes = sequentialPrefixes(t)
	g, out, err := Mixdown(opts)
	require.NoError(t, err)
	assert.Equal(t, "_auto_1_0", out)
	assert.Equal(t,
		"[1:a]speechnorm[_auto_0_0];[_auto_0_0]aformat=sample_fmts=fltp:sample_rates=44100:channel_layouts=stereo[_auto_1_0]",
		g.String())
}

func TestMixdown_MultipleTracks(t *testing.T) {
	opts := DefaultMixdownOptions()
	opts.AudioTracks = 3
	g, out, err := Mixdown(opts)
	require.NoError(t, err)
	rendered := g.String()
	assert.True(t, strings.HasPrefix(rendered, "[1:a][2:a][3:a]concat=n=3:v=0:a=1["))
	// Concat must be executed before normalization
	assert.Greater(t, strings.Index(rendered, "speechnorm"), strings.Index(rendered, "concat"))
	assert.True(t, strings.HasSuffix(rendered, "["+out+"]"))
}

func TestMixdown_SideTrack(t *testing.T) {
	opts := DefaultMixdownOptions()
	opts.AudioTracks = 2
	opts.SideTrack = true
	g, out, err := Mixdown(opts)
	require.NoError(t, err)
	rendered := g.String()
	assert.Contains(t, rendered, "[3:a]dynaudnorm[")
	assert.Contains(t, rendered, "volume=volume=0.22")
	assert.Contains(t, rendered, "sidechaincompress")
	assert.True(t, strings.HasSuffix(rendered, "amix=inputs=2:weights=0.2 1["+out+"]"))
	assert.Equal(t, 8, g.Len())
}

func TestMixdown_NoTrack(t *testing.T) {
	_, _, err := Mixdown(MixdownOptions{})
	assert.Error(t, err)
}

func TestMixdown_InvalidDucking(t *testing.T) {
	opts := DefaultMixdownOptions()
	opts.SideTrack = true
	opts.Ducking.Ratio = 0
	_, _, err := Mixdown(opts)
	assert.Error(t, err)
}
