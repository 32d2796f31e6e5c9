package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/milk9111/nbody/camera"
	"github.com/milk9111/nbody/config"
	"github.com/milk9111/nbody/grid"
	"github.com/milk9111/nbody/nbody"
	"github.com/milk9111/nbody/preset"
	"github.com/milk9111/nbody/sim"
	"gopkg.in/yaml.v3"
)

// Scene owns everything the window shows: the simulations, the grid of views
// over them and the camera they share.
type Scene struct {
	cfg    *config.Config
	logger *log.Logger

	registry *sim.Registry
	grid     *grid.Grid
	camera   *camera.Camera
	scripts  *preset.Scripts
	specs    map[uuid.UUID]config.SimulationSpec
}

// NewScene builds the scene described by cfg. Entries that fail to load are
// skipped and reported in the returned error alongside the usable scene.
func NewScene(cfg *config.Config, logger *log.Logger, opts ...grid.Option) (*Scene, error) {
	s := &Scene{
		logger:   logger,
		registry: sim.NewRegistry(logger),
		grid:     grid.New(grid.Rect{}, append([]grid.Option{grid.WithLogger(logger)}, opts...)...),
		specs:    map[uuid.UUID]config.SimulationSpec{},
	}
	s.grid.OnLayoutChanged(s.layoutChanged)
	return s, s.Load(cfg)
}

func (s *Scene) layoutChanged(g *grid.Grid) {
	s.camera.SetAspect(g.ViewportAspectRatio())
	s.logger.Debug("layout changed", "split", g.SplitMethod(), "panes", g.OccupiedCount())
}

// Load replaces the scene with the simulations and views of cfg. The camera is
// reset to the configured position.
func (s *Scene) Load(cfg *config.Config) error {
	s.Clear()
	s.cfg = cfg
	s.scripts = preset.NewScripts(cfg.ScriptDir)

	cam := camera.New(cfg.Camera.Pitch, cfg.Camera.Yaw, cfg.Camera.Distance)
	cam.MinDistance = cfg.Camera.MinDistance
	if s.camera != nil {
		cam.SetAspect(s.camera.Aspect())
	}
	s.camera = cam

	var errs []error
	for _, spec := range cfg.Sims {
		if _, err := s.CreateSimulation(spec); err != nil {
			errs = append(errs, err)
		}
	}
	for _, vs := range cfg.Views {
		d, ok := s.registry.ByName(vs.Simulation)
		if !ok {
			errs = append(errs, fmt.Errorf("view %q: %w: %q", vs.Name, sim.ErrNotFound, vs.Simulation))
			continue
		}
		if err := s.AddView(vs.Name, d, vs.Colorizer); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear closes every view and drops every simulation.
func (s *Scene) Clear() {
	for s.grid.OccupiedCount() > 0 {
		idx := -1
		for i := range s.grid.Occupied() {
			idx = i
			break
		}
		if err := s.RemoveView(idx); err != nil {
			s.logger.Error("clear scene", "err", err)
			return
		}
	}
	for _, d := range s.registry.All() {
		if err := s.registry.Remove(d.ID, true); err != nil {
			s.logger.Error("clear scene", "err", err)
		}
		delete(s.specs, d.ID)
	}
}

// CreateSimulation generates the bodies of spec and registers the result.
func (s *Scene) CreateSimulation(spec config.SimulationSpec) (*sim.Data, error) {
	kind, err := spec.Kind()
	if err != nil {
		return nil, fmt.Errorf("simulation %q: %w", spec.Name, err)
	}
	bodies, err := preset.Generate(spec.Preset, spec.Bodies, spec.Seed, s.scripts)
	if err != nil {
		return nil, fmt.Errorf("simulation %q: %w", spec.Name, err)
	}
	d, err := sim.NewData(spec.Name, kind, bodies, spec.Options())
	if err != nil {
		return nil, err
	}
	if err := s.registry.Add(d); err != nil {
		return nil, err
	}
	s.specs[d.ID] = spec
	return d, nil
}

// AddSimulation creates a simulation from spec and, with show, a view of it
// named after the simulation. Nothing is registered unless the whole
// operation succeeds.
func (s *Scene) AddSimulation(spec config.SimulationSpec, show bool) (*sim.Data, error) {
	if show && s.grid.OccupiedCount() >= config.MaxViews {
		return nil, fmt.Errorf("simulation %q: %w", spec.Name, grid.ErrCapacityExceeded)
	}
	d, err := s.CreateSimulation(spec)
	if err != nil {
		return nil, err
	}
	if !show {
		return d, nil
	}
	if err := s.AddView(d.Name, d, ""); err != nil {
		if rerr := s.DeleteSimulation(d, false); rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		return nil, err
	}
	return d, nil
}

// AddView shows d in the next free pane. An empty colorizer name uses the
// configured default.
func (s *Scene) AddView(name string, d *sim.Data, colorizer string) error {
	if colorizer == "" {
		colorizer = s.cfg.View.Colorizer
	}
	v := sim.NewView(name, d, s.camera)
	v.PointSize = s.cfg.View.PointSize
	v.ShowNodeBoxes = s.cfg.View.ShowNodeBoxes
	if colorizer != "" {
		c, err := sim.NewColorizer(colorizer)
		if err != nil {
			v.Close()
			return fmt.Errorf("view %q: %w", name, err)
		}
		v.Colorizer = c
	}
	if err := s.grid.Add(v); err != nil {
		v.Close()
		return fmt.Errorf("view %q: %w", name, err)
	}
	return nil
}

// RemoveView takes the pane at idx out of the grid and closes it.
func (s *Scene) RemoveView(idx int) error {
	p, err := s.grid.RemoveAt(idx)
	if err != nil {
		return err
	}
	if v, ok := p.(*sim.View); ok {
		v.Close()
	}
	return nil
}

// DeleteSimulation removes d. With force, the views showing it are removed
// from the grid first; without it a simulation still on screen is kept and
// sim.ErrDataInUse returned.
func (s *Scene) DeleteSimulation(d *sim.Data, force bool) error {
	if force {
		for {
			idx := -1
			for i, p := range s.grid.Occupied() {
				if v, ok := p.(*sim.View); ok && v.Data() == d {
					idx = i
					break
				}
			}
			if idx < 0 {
				break
			}
			if err := s.RemoveView(idx); err != nil {
				return err
			}
		}
	}
	if err := s.registry.Remove(d.ID, force); err != nil {
		return err
	}
	delete(s.specs, d.ID)
	return nil
}

// CenterCamera points the camera at the center of mass of the simulation in
// the first occupied pane.
func (s *Scene) CenterCamera() bool {
	for _, p := range s.grid.Occupied() {
		if v, ok := p.(*sim.View); ok {
			s.camera.Target = nbody.CenterOfMass(v.Data().Bodies())
			return true
		}
	}
	return false
}

// Step advances every simulation by dt.
func (s *Scene) Step(dt float64) {
	s.registry.Update(dt)
}

// SetViewport moves the grid and keeps the camera aspect in sync with it.
func (s *Scene) SetViewport(r grid.Rect) {
	if r == s.grid.Viewport() {
		return
	}
	s.grid.SetViewport(r)
	s.camera.SetAspect(s.grid.ViewportAspectRatio())
}

// ScriptChanged drops the cached script at path. When a simulation in the
// scene was generated from it, the scene is rebuilt from its own snapshot so
// that simulations and views added since start-up, the pane order and the
// camera all survive. It reports whether the scene was rebuilt.
func (s *Scene) ScriptChanged(path string) (bool, error) {
	s.scripts.Invalidate(path)
	if !s.usesScript(path) {
		return false, nil
	}

	target := s.camera.Target
	err := s.Load(s.Snapshot())
	s.camera.Target = target
	return true, err
}

func (s *Scene) usesScript(path string) bool {
	base := filepath.Base(path)
	for _, spec := range s.specs {
		if name, ok := strings.CutPrefix(spec.Preset, preset.ScriptPrefix); ok && filepath.Base(name) == base {
			return true
		}
	}
	return false
}

// Snapshot describes the current scene as a configuration that Load
// reproduces, minus the simulation progress.
func (s *Scene) Snapshot() *config.Config {
	cfg := *s.cfg
	cfg.Camera.Pitch = s.camera.Pitch
	cfg.Camera.Yaw = s.camera.Yaw
	cfg.Camera.Distance = s.camera.Distance

	cfg.Sims = nil
	for _, d := range s.registry.All() {
		spec := s.specs[d.ID]
		spec.Name = d.Name
		spec.Executor = d.Kind().String()
		cfg.Sims = append(cfg.Sims, spec)
	}
	cfg.Views = nil
	for _, p := range s.grid.Occupied() {
		v, ok := p.(*sim.View)
		if !ok {
			continue
		}
		cfg.Views = append(cfg.Views, config.ViewSpec{
			Name:       v.Name(),
			Simulation: v.Data().Name,
			Colorizer:  v.Colorizer.Name(),
		})
	}
	return &cfg
}

func (s *Scene) SnapshotYAML() ([]byte, error) {
	return yaml.Marshal(s.Snapshot())
}
