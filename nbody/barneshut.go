package nbody

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r3"
)

type particle struct {
	pos  r3.Vec
	mass float64
}

func (p *particle) Coord3() r3.Vec { return p.pos }
func (p *particle) Mass() float64  { return p.mass }

// BarnesHutExecutor approximates distant clusters by their centre of mass
// using an octree rebuilt every step.
type BarnesHutExecutor struct {
	opts Options

	particles []barneshut.Particle3
	backing   []particle
}

func (*BarnesHutExecutor) Kind() Kind { return BarnesHut }

func (e *BarnesHutExecutor) Step(bodies []Body, dt float64) error {
	if err := checkStep(dt); err != nil {
		return err
	}
	if len(bodies) == 0 {
		return nil
	}

	if cap(e.backing) < len(bodies) {
		e.backing = make([]particle, len(bodies))
		e.particles = make([]barneshut.Particle3, len(bodies))
	}
	e.backing = e.backing[:len(bodies)]
	e.particles = e.particles[:len(bodies)]
	for i, b := range bodies {
		e.backing[i] = particle{pos: b.Position, mass: b.Mass}
		e.particles[i] = &e.backing[i]
	}

	vol, err := barneshut.NewVolume(e.particles)
	if err != nil {
		return fmt.Errorf("nbody: build octree: %w", err)
	}

	g := e.opts.G
	eps2 := e.opts.Softening * e.opts.Softening
	force := func(_, _ barneshut.Particle3, m1, m2 float64, v r3.Vec) r3.Vec {
		return softenedForce(g, eps2, m1, m2, v)
	}

	for i := range bodies {
		b := &bodies[i]
		if b.Mass == 0 {
			b.Acceleration = r3.Vec{}
			continue
		}
		f := vol.ForceOn(e.particles[i], e.opts.Theta, force)
		b.Acceleration = r3.Scale(1/b.Mass, f)
	}
	integrate(bodies, dt)
	return nil
}
