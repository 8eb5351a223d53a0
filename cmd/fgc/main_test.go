package main

import (
	"bytes"
	test_utils "filtergraph-box/test-utils"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run fgc with args, returning what was written on stdout and stderr
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	originalNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = originalNoColor })

	stdout, stderr := bytes.Buffer{}, bytes.Buffer{}
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"fgc"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestFgc_Render(t *testing.T) {
	out, _, err := run(t, "", "render", test_utils.GetResAbsolutePath(t, test_utils.Voice))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[1:a]speechnorm[_auto_"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, ";"))
}

func TestFgc_Render_Stdin(t *testing.T) {
	out, _, err := run(t, "chains: [{inputs: ['0:v'], filters: [{name: hflip}], outputs: [o]}]", "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "[0:v]hflip[o]\n", out)
}

func TestFgc_Render_Inconsistent(t *testing.T) {
	path := test_utils.GetResAbsolutePath(t, test_utils.Cycle)
	out, stderr, err := run(t, "", "render", path)
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "cycle_detected")

	out, _, err = run(t, "", "render", "--no-validate", path)
	require.NoError(t, err)
	assert.Equal(t, "[a]null[b];[b]null[a]\n", out)
}

func TestFgc_Render_Errors(t *testing.T) {
	_, _, err := run(t, "", "render")
	assert.EqualError(t, err, "missing required argument: FILE")

	_, _, err = run(t, "", "render", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, _, err = run(t, "", "render", test_utils.GetResAbsolutePath(t, test_utils.Broken))
	assert.ErrorContains(t, err, "steps[0].op")

	_, _, err = run(t, "", "render", "--format", "toml", test_utils.GetResAbsolutePath(t, test_utils.Voice))
	assert.ErrorContains(t, err, "unknown format")
}

func TestFgc_Render_JsonFormat(t *testing.T) {
	// Valid YAML, but not JSON
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte("chains: []"), 0644))
	_, _, err := run(t, "", "render", path)
	assert.ErrorContains(t, err, "not valid JSON")

	_, _, err = run(t, "", "render", "--format", "yaml", path)
	assert.NoError(t, err)
}

func TestFgc_Validate(t *testing.T) {
	out, _, err := run(t, "", "validate", test_utils.GetResAbsolutePath(t, test_utils.SideBySide))
	require.NoError(t, err)
	assert.Equal(t, "✅ Graph is valid, 4 chains\n", out)
}

func TestFgc_Validate_Findings(t *testing.T) {
	out, _, err := run(t, "", "validate", test_utils.GetResAbsolutePath(t, test_utils.Unconnected))
	assert.EqualError(t, err, "graph has 1 finding")
	assert.Contains(t, out, "unconnected_pad ❌ Unconnected pad [missing]")

	doc := `
chains:
  - {inputs: [x], filters: [{name: hflip}], outputs: [o]}
  - {inputs: ["0:v"], filters: [{name: vflip}], outputs: [o]}`
	_, _, err = run(t, doc, "validate", "-")
	assert.EqualError(t, err, "graph has 2 findings")
}

func TestFgc_ResolveFormat(t *testing.T) {
	for _, c := range []struct {
		flag, path, expected string
	}{
		{"", "a.yaml", formatYaml},
		{"", "a.yml", formatYaml},
		{"", "a.JSON", formatJson},
		{"", "-", formatYaml},
		{"JSON", "a.yaml", formatJson},
		{"yaml", "a.json", formatYaml},
	} {
		format, err := resolveFormat(c.flag, c.path)
		require.NoError(t, err)
		assert.Equal(t, c.expected, format, c)
	}
}
