package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTargetProjectsToCentre(t *testing.T) {
	c := New(0.2, 0.2, 5)
	x, y, depth, ok := c.Project(r3.Vec{})
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
	assert.InDelta(t, 5, depth, 1e-12)
}

func TestProjectOrientation(t *testing.T) {
	c := New(0, 0, 5)
	// Looking down -Z: world +X is screen right, +Y is screen up.
	x, _, _, ok := c.Project(r3.Vec{X: 1})
	require.True(t, ok)
	assert.Greater(t, x, 0.0)

	_, y, _, ok := c.Project(r3.Vec{Y: 1})
	require.True(t, ok)
	assert.Greater(t, y, 0.0)

	_, _, _, ok = c.Project(r3.Vec{Z: 10})
	assert.False(t, ok, "behind the camera")
}

func TestAspectScalesX(t *testing.T) {
	c := New(0, 0, 5)
	x1, _, _, _ := c.Project(r3.Vec{X: 1})
	c.SetAspect(2)
	x2, _, _, _ := c.Project(r3.Vec{X: 1})
	assert.InDelta(t, x1/2, x2, 1e-12)

	c.SetAspect(0)
	c.SetAspect(math.NaN())
	assert.Equal(t, 2.0, c.Aspect())
}

func TestPitchIsClamped(t *testing.T) {
	c := New(0, 0, 5)
	c.Pan(0, -10)
	assert.InDelta(t, maxPitch, c.Pitch, 1e-12)
	c.Pan(0.5, 20)
	assert.InDelta(t, -maxPitch, c.Pitch, 1e-12)
	assert.InDelta(t, 0.5, c.Yaw, 1e-12)
}

func TestZoom(t *testing.T) {
	c := New(0, 0, 5)
	c.Zoom(1, 0.1)
	assert.InDelta(t, 5*math.Exp(-0.1), c.Distance, 1e-12)

	c.Zoom(1000, 0.1)
	assert.Equal(t, c.MinDistance, c.Distance)
}

func TestBasisIsOrthonormal(t *testing.T) {
	c := New(0.4, 1.3, 3)
	right, up := c.Basis()
	front := c.Front()
	assert.InDelta(t, 1, r3.Norm(right), 1e-12)
	assert.InDelta(t, 1, r3.Norm(up), 1e-12)
	assert.InDelta(t, 0, r3.Dot(right, up), 1e-12)
	assert.InDelta(t, 0, r3.Dot(front, up), 1e-12)
	assert.InDelta(t, 3, r3.Norm(c.Eye()), 1e-12)
}
