package nbody

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrUnknownKind = errors.New("nbody: unknown executor kind")
	ErrBadTimeStep = errors.New("nbody: time step must be finite")
)

// Kind identifies an executor implementation. It travels with simulations and
// views so callers never need to inspect executor types.
type Kind int

const (
	Naive Kind = iota
	BarnesHut
)

func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case BarnesHut:
		return "barnes-hut"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive", "":
		return Naive, nil
	case "barnes-hut", "barneshut", "barnes_hut":
		return BarnesHut, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Options tune the force evaluation.
type Options struct {
	// G is the gravitational constant. Zero means 1.
	G float64
	// Softening avoids the singularity of close encounters.
	Softening float64
	// Theta is the Barnes-Hut opening angle. Ignored by the naive executor.
	Theta float64
}

func DefaultOptions() Options {
	return Options{G: 1, Softening: 0.05, Theta: 0.5}
}

func (o Options) withDefaults() Options {
	if o.G == 0 {
		o.G = 1
	}
	if o.Theta < 0 {
		o.Theta = 0
	}
	return o
}

// Executor advances bodies by one time step in place.
type Executor interface {
	Kind() Kind
	Step(bodies []Body, dt float64) error
}

// New returns the executor for kind.
func New(kind Kind, opts Options) (Executor, error) {
	opts = opts.withDefaults()
	switch kind {
	case Naive:
		return &NaiveExecutor{opts: opts}, nil
	case BarnesHut:
		return &BarnesHutExecutor{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// softenedForce returns the force on m1 by m2 where v points from m1 to m2.
func softenedForce(g, eps2, m1, m2 float64, v r3.Vec) r3.Vec {
	d2 := r3.Norm2(v) + eps2
	if d2 == 0 {
		return r3.Vec{}
	}
	return r3.Scale(g*m1*m2/(d2*math.Sqrt(d2)), v)
}

// integrate applies semi-implicit Euler using the accumulated accelerations.
func integrate(bodies []Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, b.Acceleration))
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
	}
}

func checkStep(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrBadTimeStep, dt)
	}
	return nil
}

// NaiveExecutor sums every pairwise interaction.
type NaiveExecutor struct {
	opts Options
}

func (*NaiveExecutor) Kind() Kind { return Naive }

func (e *NaiveExecutor) Step(bodies []Body, dt float64) error {
	if err := checkStep(dt); err != nil {
		return err
	}
	eps2 := e.opts.Softening * e.opts.Softening
	for i := range bodies {
		bodies[i].Acceleration = r3.Vec{}
	}
	for i := range bodies {
		bi := &bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			bj := &bodies[j]
			f := softenedForce(e.opts.G, eps2, bi.Mass, bj.Mass, r3.Sub(bj.Position, bi.Position))
			if bi.Mass != 0 {
				bi.Acceleration = r3.Add(bi.Acceleration, r3.Scale(1/bi.Mass, f))
			}
			if bj.Mass != 0 {
				bj.Acceleration = r3.Sub(bj.Acceleration, r3.Scale(1/bj.Mass, f))
			}
		}
	}
	integrate(bodies, dt)
	return nil
}
