package filtergraph

import (
	"filtergraph-box/pkg/filtergraph/expr"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_NoParams(t *testing.T) {
	assert.Equal(t, "anull", NewFilter("anull").String())
}

func TestFilter_ParamsInInsertionOrder(t *testing.T) {
	f := NewFilter("fade").Param("t", "in").Param("st", 0).Param("d", 1.5)
	assert.Equal(t, "fade=t=in:st=0:d=1.5", f.String())
	assert.Equal(t, []Param{{"t", "in"}, {"st", "0"}, {"d", "1.5"}}, f.Params())
	assert.Equal(t, "fade", f.Name())
}

func TestFilter_ParamValues(t *testing.T) {
	f := NewFilter("x").
		Param("f32", float32(0.22)).
		Param("f64", 2.0).
		Param("b", true).
		Param("e", expr.Var(expr.T).Mul(expr.Constant(2)))
	assert.Equal(t, "x=f32=0.22:f64=2:b=true:e=t*2", f.String())
}

func TestFilter_NonFiniteParamValues(t *testing.T) {
	f := NewFilter("x").
		Param("nan", math.NaN()).
		Param("inf", math.Inf(1)).
		Param("ninf", math.Inf(-1)).
		Param("nzero", math.Copysign(0, -1)).
		Param("f32", float32(math.Inf(1)))
	assert.Equal(t, "x=nan=0:inf=0:ninf=0:nzero=0:f32=0", f.String())
	// Same rendering as expression constants
	assert.Equal(t, expr.Constant(math.NaN()).String(), f.Params()[0].Value)
}

func TestFilter_ParamReturnsCopy(t *testing.T) {
	base := NewFilter("volume").Param("volume", 0.5)
	louder := base.Param("precision", "float")
	quieter := base.Param("eval", "frame")
	assert.Equal(t, "volume=volume=0.5", base.String())
	assert.Equal(t, "volume=volume=0.5:precision=float", louder.String())
	assert.Equal(t, "volume=volume=0.5:eval=frame", quieter.String())
}

func TestFactories(t *testing.T) {
	assert.Equal(t, "concat=n=2:v=1:a=1", Concat(2, 1, 1).String())
	assert.Equal(t, "concat=n=3:v=1:a=0", Concat(3, 1, 0).String())
	assert.Equal(t, "scale=w=1280:h=720", Scale(1280, 720).String())
	assert.Equal(t, "scale=w=-1:h=720", Scale(-1, 720).String())
	assert.Equal(t, "scale=w=1920:h=1080:force_original_aspect_ratio=decrease", ScaleFit(1920, 1080).String())
	assert.Equal(t, "pad=w=1920:h=1080:x=(ow-iw)/2:y=(oh-ih)/2:color=black", Pad(1920, 1080, "black").String())
	assert.Equal(t, "pad=w=640:h=480:x=(ow-iw)/2:y=(oh-ih)/2:color=0x336699", Pad(640, 480, "0x336699").String())
	assert.Equal(t, "format=pix_fmts=yuv420p", Format("yuv420p").String())
	assert.Equal(t, "split=outputs=3", Split(3, false).String())
	assert.Equal(t, "asplit=outputs=2", Split(2, true).String())
}

func TestChain_Empty(t *testing.T) {
	assert.Equal(t, "", NewChain().String())
}

func TestChain_Full(t *testing.T) {
	chain := NewChain().
		Input("0:v").
		Filter(Scale(1920, 1080)).
		Filter(Pad(1920, 1080, "black")).
		Filter(Format("yuv420p")).
		Output("outv")
	assert.Equal(t,
		"[0:v]scale=w=1920:h=1080,pad=w=1920:h=1080:x=(ow-iw)/2:y=(oh-ih)/2:color=black,format=pix_fmts=yuv420p[outv]",
		chain.String())
}

func TestChain_MultipleInputsAndOutputs(t *testing.T) {
	merged := NewChain().Input("0:v").Input("0:a").Input("1:v").Input("1:a").Filter(Concat(2, 1, 1)).Output("v").Output("a")
	assert.Equal(t, "[0:v][0:a][1:v][1:a]concat=n=2:v=1:a=1[v][a]", merged.String())
	assert.Equal(t, []string{"[0:v]", "[0:a]", "[1:v]", "[1:a]"}, merged.Inputs())
	assert.Equal(t, []string{"[v]", "[a]"}, merged.Outputs())
	assert.Len(t, merged.Filters(), 1)
}

func TestChain_LabelsBracketedOnce(t *testing.T) {
	chain := NewChain().Input("in").Filter(NewFilter("null")).Output("out")
	assert.Equal(t, chain.String(), chain.String())
	assert.Equal(t, "[in]null[out]", chain.String())
}

func TestChain_BuildersDontShareState(t *testing.T) {
	base := NewChain().Input("0:v").Filter(NewFilter("null"))
	a := base.Output("a")
	b := base.Output("b")
	assert.Equal(t, "[0:v]null[a]", a.String())
	assert.Equal(t, "[0:v]null[b]", b.String())
	assert.Equal(t, "[0:v]null", base.String())
}

func TestChain_AccessorsReturnCopies(t *testing.T) {
	chain := NewChain().Input("x")
	inputs := chain.Inputs()
	inputs[0] = "[y]"
	assert.Equal(t, []string{"[x]"}, chain.Inputs())
}

func TestIsStreamReference(t *testing.T) {
	for _, ref := range []string{"0:v", "1:a", "12:v:0", "[0:v]", "3:s"} {
		assert.True(t, IsStreamReference(ref), ref)
	}
	for _, label := range []string{"v0", "a:0", ":v", "0:", "0", "x1:v", "[out]", ""} {
		assert.False(t, IsStreamReference(label), label)
	}
}
