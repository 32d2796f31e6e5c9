package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("sim: simulation not found")
	ErrDataInUse     = errors.New("sim: simulation is shown by a view")
	ErrDuplicateName = errors.New("sim: simulation name already exists")
)

// Registry is the ordered set of simulations available to views.
type Registry struct {
	data   []*Data
	logger *log.Logger
}

func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{logger: logger}
}

func (r *Registry) Add(d *Data) error {
	if _, ok := r.ByName(d.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
	}
	r.data = append(r.data, d)
	r.logger.Debug("simulation added", "name", d.Name, "kind", d.Kind(), "bodies", len(d.Bodies()))
	return nil
}

// All returns the simulations in insertion order.
func (r *Registry) All() []*Data {
	out := make([]*Data, len(r.data))
	copy(out, r.data)
	return out
}

func (r *Registry) Len() int {
	return len(r.data)
}

func (r *Registry) Get(id uuid.UUID) (*Data, bool) {
	for _, d := range r.data {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

func (r *Registry) ByName(name string) (*Data, bool) {
	for _, d := range r.data {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Remove deletes a simulation. It fails with ErrDataInUse while a view still
// shows it unless force is set; forced removal closes those views first, so
// callers must take them out of the grid beforehand.
func (r *Registry) Remove(id uuid.UUID, force bool) error {
	for i, d := range r.data {
		if d.ID != id {
			continue
		}
		d.RefreshViews()
		if n := d.ViewCount(); n > 0 {
			if !force {
				return fmt.Errorf("%w: %q has %d view(s)", ErrDataInUse, d.Name, n)
			}
			for _, v := range d.Views() {
				v.Close()
			}
		}
		r.data = append(r.data[:i], r.data[i+1:]...)
		r.logger.Debug("simulation removed", "name", d.Name)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Update steps every simulation once. A failing simulation is logged and the
// others still advance.
func (r *Registry) Update(dt float64) {
	for _, d := range r.data {
		if err := d.Update(dt); err != nil {
			r.logger.Error("simulation step failed", "name", d.Name, "err", err)
		}
	}
}
