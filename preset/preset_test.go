package preset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuiltinsAreDeterministic(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			a, err := Generate(name, 64, 7, nil)
			require.NoError(t, err)
			b, err := Generate(name, 64, 7, nil)
			require.NoError(t, err)
			c, err := Generate(name, 64, 8, nil)
			require.NoError(t, err)

			require.Len(t, a, 64)
			assert.Equal(t, a, b)
			assert.NotEqual(t, a, c)
		})
	}
}

func TestExplosionOnUnitSphere(t *testing.T) {
	bodies, err := Explosion(128, 1)
	require.NoError(t, err)
	for i, b := range bodies {
		assert.InDelta(t, 1.0, r3.Norm(b.Position), 1e-9, "body %d", i)
		assert.InDelta(t, 0.1, r3.Norm(b.Velocity), 1e-9, "body %d", i)
		assert.Equal(t, 1.0, b.Mass)
	}
}

func TestGalaxyIsThin(t *testing.T) {
	bodies, err := Galaxy(256, 3)
	require.NoError(t, err)
	for _, b := range bodies {
		assert.Less(t, r3.Norm(r3.Vec{X: b.Position.X, Z: b.Position.Z}), 1.1)
		assert.Less(t, b.Position.Y*b.Position.Y, 0.04)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"explosion", "galaxy"}, Names())
}

func TestLookupErrors(t *testing.T) {
	_, err := Lookup("spiral", nil)
	require.ErrorIs(t, err, ErrUnknownPreset)

	_, err = Lookup("script:ring.tengo", nil)
	require.ErrorIs(t, err, ErrUnknownPreset)

	_, err = Generate("galaxy", -1, 0, nil)
	require.Error(t, err)
}

const lineScript = `
bodies := []
for i := 0; i < n; i++ {
	bodies = append(bodies, {mass: 2, x: i, y: seed, z: 0.5, vx: 1.5})
}
`

func fakeScripts(files map[string]string) *Scripts {
	s := NewScripts("presets")
	s.read = func(path string) ([]byte, error) {
		src, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(src), nil
	}
	return s
}

func TestScriptPreset(t *testing.T) {
	s := fakeScripts(map[string]string{"presets/line.tengo": lineScript})

	bodies, err := Generate("script:line.tengo", 3, 4, s)
	require.NoError(t, err)
	require.Len(t, bodies, 3)
	for i, b := range bodies {
		assert.Equal(t, 2.0, b.Mass)
		assert.Equal(t, r3.Vec{X: float64(i), Y: 4, Z: 0.5}, b.Position)
		assert.Equal(t, r3.Vec{X: 1.5}, b.Velocity)
	}

	// Cached compilation is reused with fresh globals.
	bodies, err = s.Run("line.tengo", 1, 9)
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Equal(t, 9.0, bodies[0].Position.Y)
}

func TestScriptDefaultMass(t *testing.T) {
	s := fakeScripts(map[string]string{"presets/one.tengo": `bodies := [{x: 1}]`})
	bodies, err := s.Run("one.tengo", 0, 0)
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Equal(t, 1.0, bodies[0].Mass)
}

func TestScriptErrors(t *testing.T) {
	s := fakeScripts(map[string]string{
		"presets/empty.tengo":  `x := 1`,
		"presets/broken.tengo": `bodies := [`,
		"presets/bad.tengo":    `bodies := [1, 2]`,
	})

	_, err := s.Run("empty.tengo", 1, 0)
	require.ErrorIs(t, err, ErrScriptResult)

	_, err = s.Run("bad.tengo", 1, 0)
	require.ErrorIs(t, err, ErrScriptResult)

	_, err = s.Run("broken.tengo", 1, 0)
	require.Error(t, err)

	_, err = s.Run("missing.tengo", 1, 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestScriptInvalidate(t *testing.T) {
	files := map[string]string{"presets/v.tengo": `bodies := [{x: 1}]`}
	s := fakeScripts(files)

	bodies, err := s.Run("v.tengo", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, bodies[0].Position.X)

	files["presets/v.tengo"] = `bodies := [{x: 2}]`
	bodies, err = s.Run("v.tengo", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, bodies[0].Position.X, "cached until invalidated")

	s.Invalidate("v.tengo")
	bodies, err = s.Run("v.tengo", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, bodies[0].Position.X)
}

func TestEmbeddedScripts(t *testing.T) {
	names := ScriptNames("")
	assert.Contains(t, names, "script:ring.tengo")
	assert.Contains(t, names, "script:collision.tengo")

	scripts := NewScripts(t.TempDir())
	bodies, err := Generate("script:ring.tengo", 32, 3, scripts)
	require.NoError(t, err)
	require.Len(t, bodies, 32)
	for _, b := range bodies {
		assert.InDelta(t, 1, math.Hypot(b.Position.X, b.Position.Z), 0.05)
	}

	again, err := Generate("script:ring.tengo", 32, 3, scripts)
	require.NoError(t, err)
	assert.Equal(t, bodies, again)
}

func TestScriptNamesIncludesDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.tengo"), []byte("bodies := []"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	names := ScriptNames(dir)
	assert.Contains(t, names, "script:custom.tengo")
	assert.NotContains(t, names, "script:notes.txt")
}
