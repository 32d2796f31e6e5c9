// Package sim holds simulation state and the views that render it.
//
// A Data owns bodies and an executor and is stepped once per frame by the
// Registry. Views are grid panes over one Data; several views may show the
// same Data from different colorizers. Data keeps weak references to its
// views so it can tell whether it is still shown without keeping removed
// views alive.
package sim

import (
	"fmt"
	"slices"
	"weak"

	"github.com/google/uuid"
	"github.com/milk9111/nbody/nbody"
	"gonum.org/v1/gonum/spatial/r3"
)

type Data struct {
	ID   uuid.UUID
	Name string

	kind     nbody.Kind
	bodies   []nbody.Body
	executor nbody.Executor
	steps    int
	elapsed  float64

	views []weak.Pointer[View]
}

// NewData takes ownership of bodies.
func NewData(name string, kind nbody.Kind, bodies []nbody.Body, opts nbody.Options) (*Data, error) {
	exec, err := nbody.New(kind, opts)
	if err != nil {
		return nil, fmt.Errorf("sim: new data %q: %w", name, err)
	}
	return &Data{
		ID:       uuid.New(),
		Name:     name,
		kind:     kind,
		bodies:   bodies,
		executor: exec,
	}, nil
}

func (d *Data) Kind() nbody.Kind {
	return d.kind
}

// Bodies returns the live body slice. Callers must not modify it.
func (d *Data) Bodies() []nbody.Body {
	return d.bodies
}

func (d *Data) Steps() int {
	return d.steps
}

// Elapsed returns the simulated time.
func (d *Data) Elapsed() float64 {
	return d.elapsed
}

// Update advances the simulation by dt.
func (d *Data) Update(dt float64) error {
	if err := d.executor.Step(d.bodies, dt); err != nil {
		return fmt.Errorf("sim: step %q: %w", d.Name, err)
	}
	d.steps++
	d.elapsed += dt
	return nil
}

// TreeBounds returns the region partitioned by the Barnes-Hut tree. ok is
// false for executors that do not build one.
func (d *Data) TreeBounds() (box r3.Box, ok bool) {
	if d.kind != nbody.BarnesHut || len(d.bodies) == 0 {
		return r3.Box{}, false
	}
	return nbody.Bounds(d.bodies), true
}

func (d *Data) attach(v *View) {
	d.views = append(d.views, weak.Make(v))
}

func (d *Data) detach(v *View) {
	d.views = slices.DeleteFunc(d.views, func(p weak.Pointer[View]) bool {
		live := p.Value()
		return live == nil || live == v
	})
}

// RefreshViews forgets views that have been garbage collected.
func (d *Data) RefreshViews() {
	d.views = slices.DeleteFunc(d.views, func(p weak.Pointer[View]) bool {
		return p.Value() == nil
	})
}

// Views returns the live views over d.
func (d *Data) Views() []*View {
	out := make([]*View, 0, len(d.views))
	for _, p := range d.views {
		if v := p.Value(); v != nil && !v.closed {
			out = append(out, v)
		}
	}
	return out
}

// ViewCount returns the number of live views over d.
func (d *Data) ViewCount() int {
	return len(d.Views())
}
