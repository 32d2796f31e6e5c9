package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := runCmd(t, "presets", "--scripts", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "presets:\n")
	assert.Contains(t, out, "  galaxy\n")
	assert.Contains(t, out, "  script:ring.tengo\n")
	assert.Contains(t, out, "  barnes-hut\n")
	assert.Contains(t, out, "  direction\n")
}

func TestCheckCommandDefaultScene(t *testing.T) {
	out, err := runCmd(t, "check", "--steps", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Explosion (naive): naive, 256 bodies, 2 steps")
	assert.Contains(t, out, "Explosion (Barnes-Hut): barnes-hut, 256 bodies, 2 steps")
	assert.Contains(t, out, "layout: HorizontalSplit with 2 view(s)")
}

func TestCheckCommandTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
time_step = 0.5

[[simulations]]
name = "tiny"
executor = "naive"
bodies = 3

[[views]]
name = "a"
simulation = "tiny"

[[views]]
name = "b"
simulation = "tiny"

[[views]]
name = "c"
simulation = "tiny"
`), 0o644))

	out, err := runCmd(t, "check", path, "-n", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "tiny: naive, 3 bodies, 4 steps, t=2.000")
	assert.Contains(t, out, "layout: QuadrantSplit with 3 view(s)")
}

func TestCheckCommandRejectsBadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("views:\n  - {name: v, simulation: nope}\n"), 0o644))
	_, err := runCmd(t, "check", path)
	assert.Error(t, err)

	_, err = runCmd(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
