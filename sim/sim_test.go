package sim

import (
	"image/color"
	"io"
	"math"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/milk9111/nbody/camera"
	"github.com/milk9111/nbody/nbody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func twoBodies() []nbody.Body {
	return []nbody.Body{
		{Mass: 1, Position: r3.Vec{X: -0.5}},
		{Mass: 1, Position: r3.Vec{X: 0.5}},
	}
}

func newData(t *testing.T, name string, kind nbody.Kind) *Data {
	t.Helper()
	d, err := NewData(name, kind, twoBodies(), nbody.DefaultOptions())
	require.NoError(t, err)
	return d
}

func TestDataUpdate(t *testing.T) {
	d := newData(t, "pair", nbody.Naive)
	assert.NotEqual(t, uuid.Nil, d.ID)
	require.NoError(t, d.Update(0.1))
	require.NoError(t, d.Update(0.1))
	assert.Equal(t, 2, d.Steps())
	assert.InDelta(t, 0.2, d.Elapsed(), 1e-12)
	assert.Greater(t, d.Bodies()[0].Position.X, -0.5)

	require.ErrorIs(t, d.Update(math.NaN()), nbody.ErrBadTimeStep)
	assert.Equal(t, 2, d.Steps())
}

func TestNewDataUnknownKind(t *testing.T) {
	_, err := NewData("x", nbody.Kind(42), nil, nbody.DefaultOptions())
	require.ErrorIs(t, err, nbody.ErrUnknownKind)
}

func TestTreeBoundsOnlyForBarnesHut(t *testing.T) {
	_, ok := newData(t, "n", nbody.Naive).TreeBounds()
	assert.False(t, ok)

	box, ok := newData(t, "bh", nbody.BarnesHut).TreeBounds()
	require.True(t, ok)
	assert.Equal(t, -0.5, box.Min.X)
	assert.Equal(t, 0.5, box.Max.X)
}

func TestViewsAttachAndClose(t *testing.T) {
	cam := camera.New(0, 0, 5)
	d := newData(t, "pair", nbody.Naive)

	a := NewView("a", d, cam)
	b := NewView("b", d, cam)
	assert.Equal(t, 2, d.ViewCount())
	assert.Equal(t, []*View{a, b}, d.Views())

	a.Close()
	a.Close()
	assert.True(t, a.Closed())
	assert.Equal(t, []*View{b}, d.Views())
	runtime.KeepAlive(b)
}

func TestCollectedViewsAreForgotten(t *testing.T) {
	cam := camera.New(0, 0, 5)
	d := newData(t, "pair", nbody.Naive)
	func() {
		NewView("temp", d, cam)
	}()
	runtime.GC()
	d.RefreshViews()
	assert.Equal(t, 0, d.ViewCount())
}

func TestViewUpdateProjects(t *testing.T) {
	cam := camera.New(0, 0, 5)
	d := newData(t, "pair", nbody.BarnesHut)
	v := NewView("v", d, cam)

	v.Update(0.016)
	require.Len(t, v.points, 2)
	assert.Less(t, v.points[0].x, 0.0)
	assert.Greater(t, v.points[1].x, 0.0)
	assert.True(t, v.boxOK)

	v.ShowNodeBoxes = false
	v.Update(0.016)
	assert.False(t, v.boxOK)

	v.Close()
	v.Update(0.016)
	assert.Empty(t, v.points)
	assert.Equal(t, nbody.BarnesHut, v.Kind())
}

func TestViewSkipsOffscreenBodies(t *testing.T) {
	cam := camera.New(0, 0, 5)
	d, err := NewData("far", nbody.Naive, []nbody.Body{
		{Mass: 1},
		{Mass: 1, Position: r3.Vec{X: 100}},
		{Mass: 1, Position: r3.Vec{Z: 50}},
	}, nbody.DefaultOptions())
	require.NoError(t, err)
	v := NewView("v", d, cam)
	v.Update(0)
	assert.Len(t, v.points, 1)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(quietLogger())
	cam := camera.New(0, 0, 5)
	a := newData(t, "a", nbody.Naive)
	b := newData(t, "b", nbody.BarnesHut)
	require.NoError(t, r.Add(a))
	require.NoError(t, r.Add(b))
	require.ErrorIs(t, r.Add(newData(t, "a", nbody.Naive)), ErrDuplicateName)
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)
	got, ok = r.ByName("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	r.Update(0.1)
	assert.Equal(t, 1, a.Steps())
	assert.Equal(t, 1, b.Steps())

	v := NewView("va", a, cam)
	require.ErrorIs(t, r.Remove(a.ID, false), ErrDataInUse)
	v.Close()
	require.NoError(t, r.Remove(a.ID, false))
	assert.Equal(t, []*Data{b}, r.All())

	require.ErrorIs(t, r.Remove(a.ID, false), ErrNotFound)

	vb := NewView("vb", b, cam)
	require.NoError(t, r.Remove(b.ID, true))
	assert.True(t, vb.Closed())
	assert.Zero(t, r.Len())
}

func TestColorizers(t *testing.T) {
	for _, name := range ColorizerNames() {
		c, err := NewColorizer(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	_, err := NewColorizer("rainbow")
	require.Error(t, err)

	u := Uniform{Body: color.RGBA{1, 2, 3, 4}}
	assert.Equal(t, color.RGBA{1, 2, 3, 4}, u.Color(nbody.Body{}))

	s := SpeedDependent{
		SpeedLow: 0, SpeedHigh: 1,
		Low:  color.RGBA{0, 0, 255, 255},
		High: color.RGBA{255, 0, 0, 255},
	}
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, s.Color(nbody.Body{}))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, s.Color(nbody.Body{Velocity: r3.Vec{X: 3}}))

	d := DirectionDependent{}
	east := d.Color(nbody.Body{Velocity: r3.Vec{X: 1}})
	assert.Equal(t, uint8(255), east.R, "hue 0 is red")
	shifted := DirectionDependent{Offset: 120}.Color(nbody.Body{Velocity: r3.Vec{X: 1}})
	assert.Equal(t, uint8(255), shifted.G, "hue 120 is green")
}
