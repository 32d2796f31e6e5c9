package nbody

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func pair() []Body {
	return []Body{
		{Mass: 1, Position: r3.Vec{X: -1}},
		{Mass: 1, Position: r3.Vec{X: 1}},
	}
}

func cluster() []Body {
	var bodies []Body
	for i := range 27 {
		x := float64(i%3) - 1
		y := float64((i/3)%3) - 1
		z := float64(i/9) - 1
		bodies = append(bodies, Body{
			Mass:     1 + float64(i%4),
			Position: r3.Vec{X: x + 0.1*z, Y: y - 0.05*x, Z: z + 0.02*y},
			Velocity: r3.Vec{X: 0.01 * y, Y: -0.01 * x},
		})
	}
	return bodies
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"naive", Naive, false},
		{"Barnes-Hut", BarnesHut, false},
		{"barneshut", BarnesHut, false},
		{"", Naive, false},
		{"direct", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnknownKind, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, must(ParseKind(got.String())))
	}
}

func must(k Kind, err error) Kind {
	if err != nil {
		panic(err)
	}
	return k
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind(9), DefaultOptions())
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestExecutorsAttractPair(t *testing.T) {
	for _, kind := range []Kind{Naive, BarnesHut} {
		t.Run(kind.String(), func(t *testing.T) {
			exec, err := New(kind, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, kind, exec.Kind())

			bodies := pair()
			require.NoError(t, exec.Step(bodies, 0.01))

			assert.Greater(t, bodies[0].Acceleration.X, 0.0)
			assert.Less(t, bodies[1].Acceleration.X, 0.0)
			assert.InDelta(t, -bodies[0].Acceleration.X, bodies[1].Acceleration.X, 1e-12)
			assert.Greater(t, bodies[0].Position.X, -1.0)
			assert.Less(t, bodies[1].Position.X, 1.0)
		})
	}
}

func TestNaiveConservesMomentum(t *testing.T) {
	exec, err := New(Naive, DefaultOptions())
	require.NoError(t, err)

	bodies := cluster()
	before := Momentum(bodies)
	for range 20 {
		require.NoError(t, exec.Step(bodies, 0.005))
	}
	after := Momentum(bodies)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
	assert.InDelta(t, before.Z, after.Z, 1e-9)
}

func TestBarnesHutExactAtZeroTheta(t *testing.T) {
	opts := DefaultOptions()
	opts.Theta = 0

	naive, err := New(Naive, opts)
	require.NoError(t, err)
	bh, err := New(BarnesHut, opts)
	require.NoError(t, err)

	a, b := cluster(), cluster()
	require.NoError(t, naive.Step(a, 0.01))
	require.NoError(t, bh.Step(b, 0.01))

	for i := range a {
		assert.InDelta(t, a[i].Acceleration.X, b[i].Acceleration.X, 1e-9, "body %d", i)
		assert.InDelta(t, a[i].Acceleration.Y, b[i].Acceleration.Y, 1e-9, "body %d", i)
		assert.InDelta(t, a[i].Acceleration.Z, b[i].Acceleration.Z, 1e-9, "body %d", i)
	}
}

func TestStepRejectsBadTimeStep(t *testing.T) {
	for _, kind := range []Kind{Naive, BarnesHut} {
		exec, err := New(kind, DefaultOptions())
		require.NoError(t, err)
		require.ErrorIs(t, exec.Step(pair(), math.NaN()), ErrBadTimeStep)
		require.ErrorIs(t, exec.Step(pair(), math.Inf(1)), ErrBadTimeStep)
	}
}

func TestStepEmpty(t *testing.T) {
	for _, kind := range []Kind{Naive, BarnesHut} {
		exec, err := New(kind, DefaultOptions())
		require.NoError(t, err)
		assert.NoError(t, exec.Step(nil, 0.1))
	}
}

func TestHelpers(t *testing.T) {
	bodies := []Body{
		{Mass: 1, Position: r3.Vec{X: 0}, Velocity: r3.Vec{X: 3, Y: 4}},
		{Mass: 3, Position: r3.Vec{X: 4, Y: -2, Z: 1}},
	}
	com := CenterOfMass(bodies)
	assert.InDelta(t, 3.0, com.X, 1e-12)
	assert.InDelta(t, -1.5, com.Y, 1e-12)

	box := Bounds(bodies)
	assert.Equal(t, r3.Vec{X: 0, Y: -2, Z: 0}, box.Min)
	assert.Equal(t, r3.Vec{X: 4, Y: 0, Z: 1}, box.Max)

	lo, hi := SpeedRange(bodies)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 5.0, hi)

	assert.Equal(t, r3.Vec{}, CenterOfMass(nil))
}
