package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/nbody/config"
	"github.com/milk9111/nbody/grid"
	"github.com/milk9111/nbody/grid/render"
	"github.com/milk9111/nbody/preset"
	"github.com/milk9111/nbody/sim"
	"golang.design/x/clipboard"
)

var _ render.Pane = (*sim.View)(nil)

// App is the ebiten game: a control panel on the left and the pane grid
// filling the rest of the window.
type App struct {
	logger     *log.Logger
	configPath string

	scene   *Scene
	panel   *controlPanel
	watcher *config.Watcher
	input   input

	running     bool
	pendingStep bool
	dirty       bool
	clipboardOK bool

	width, height int
}

// NewApp builds the window contents. With debug set, a broken grid invariant
// panics instead of being repaired.
func NewApp(cfg *config.Config, configPath string, logger *log.Logger, debug bool) (*App, error) {
	var opts []grid.Option
	if debug {
		opts = append(opts, grid.WithStrictInvariants())
	}
	scene, err := NewScene(cfg, logger, opts...)
	if err != nil {
		// A partially loaded scene is still usable.
		if scene == nil {
			return nil, err
		}
		logger.Warn("scene loaded with errors", "err", err)
	}

	a := &App{
		logger:     logger,
		configPath: configPath,
		scene:      scene,
		running:    cfg.Running,
	}
	scene.grid.OnLayoutChanged(func(*grid.Grid) { a.dirty = true })

	a.panel, err = newControlPanel(a, cfg.Window.PanelWidth)
	if err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		a.clipboardOK = true
	}

	a.watch(cfg)
	return a, nil
}

func (a *App) watch(cfg *config.Config) {
	var dirs []string
	if a.configPath != "" {
		dirs = append(dirs, filepath.Dir(a.configPath))
	}
	if info, err := os.Stat(cfg.ScriptDir); err == nil && info.IsDir() {
		dirs = append(dirs, cfg.ScriptDir)
	}
	if len(dirs) == 0 {
		return
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		a.logger.Warn("hot reload disabled", "err", err)
		return
	}
	a.watcher = w
	a.logger.Debug("watching for changes", "dirs", dirs)
}

func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

func (a *App) Update() error {
	a.drainWatcher()
	a.panel.UI.Update()

	if !a.panel.ModalOpen() {
		a.input.Update(a)
	}

	if a.running || a.pendingStep {
		a.scene.Step(a.timeStep())
		a.pendingStep = false
	}
	a.scene.grid.Update(a.timeStep())

	if a.dirty {
		a.panel.Rebuild()
		a.dirty = false
	}
	a.panel.Refresh()
	return nil
}

func (a *App) timeStep() float64 {
	if a.scene.cfg.TimeStep > 0 {
		return a.scene.cfg.TimeStep
	}
	return 1 / float64(ebiten.TPS())
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(panelColor)
	render.Draw(a.scene.grid, screen)
	a.drawDrag(screen)
	a.panel.UI.Draw(screen)
}

// drawDrag outlines the pane being dragged and the pane under the cursor.
func (a *App) drawDrag(screen *ebiten.Image) {
	if !a.input.drag.Dragging() {
		return
	}
	views := a.scene.grid.Viewports()
	fb := screen.Bounds()
	outline := func(idx int) {
		if idx < 0 || idx >= len(views) {
			return
		}
		r := views[idx].Image(fb)
		vector.StrokeRect(screen, float32(r.Min.X)+1, float32(r.Min.Y)+1, float32(r.Dx())-2, float32(r.Dy())-2, 2, dragColor, false)
	}
	outline(a.input.drag.Source())
	if idx, ok := a.scene.grid.SlotAt(a.input.gridCursor(a)); ok {
		outline(idx)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.scene.SetViewport(a.gridArea())
	}
	return outsideWidth, outsideHeight
}

// gridArea is the framebuffer region right of the control panel, in the
// grid's bottom-left origin coordinates.
func (a *App) gridArea() grid.Rect {
	fb := image.Rect(0, 0, a.width, a.height)
	panel := a.scene.cfg.Window.PanelWidth
	if panel > a.width {
		panel = a.width
	}
	return grid.FromImage(image.Rect(panel, 0, a.width, a.height), fb)
}

func (a *App) toggleRunning() {
	a.running = !a.running
	a.logger.Debug("simulation toggled", "running", a.running)
}

func (a *App) stepOnce() {
	a.pendingStep = true
}

func (a *App) centerCamera() {
	if !a.scene.CenterCamera() {
		a.logger.Debug("nothing to center on")
	}
}

func (a *App) copyScene() {
	data, err := a.scene.SnapshotYAML()
	if err != nil {
		a.logger.Error("snapshot scene", "err", err)
		return
	}
	if !a.clipboardOK {
		a.logger.Warn("clipboard unavailable, scene not copied")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	a.logger.Info("scene copied to clipboard", "bytes", len(data))
}

func (a *App) removeView(idx int) {
	if err := a.scene.RemoveView(idx); err != nil {
		a.logger.Warn("remove view", "slot", idx, "err", err)
	}
}

func (a *App) addView(name, simulation, colorizer string) error {
	d, ok := a.scene.registry.ByName(simulation)
	if !ok {
		return fmt.Errorf("%w: %q", sim.ErrNotFound, simulation)
	}
	if err := a.scene.AddView(name, d, colorizer); err != nil {
		a.logger.Warn("add view", "err", err)
		return err
	}
	return nil
}

func (a *App) createSimulation(spec config.SimulationSpec, show bool) error {
	if _, err := a.scene.AddSimulation(spec, show); err != nil {
		a.logger.Warn("create simulation", "err", err)
		return err
	}
	a.dirty = true
	return nil
}

func (a *App) deleteSimulation(d *sim.Data, force bool) error {
	err := a.scene.DeleteSimulation(d, force)
	if errors.Is(err, sim.ErrDataInUse) {
		a.logger.Warn("simulation still shown", "name", d.Name)
		return err
	}
	if err != nil {
		return err
	}
	a.dirty = true
	return nil
}

func (a *App) scriptPresets() []string {
	return preset.ScriptNames(a.scene.cfg.ScriptDir)
}

// drainWatcher applies pending file changes without blocking the frame.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			a.fileChanged(path)
		case err, ok := <-a.watcher.Errors:
			if ok {
				a.logger.Warn("watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (a *App) fileChanged(path string) {
	switch {
	case config.IsScriptFile(path):
		rebuilt, err := a.scene.ScriptChanged(path)
		if !rebuilt {
			return
		}
		a.logger.Info("preset script changed, regenerated", "path", path)
		if err != nil {
			a.logger.Warn("scene regenerated with errors", "err", err)
		}
		a.resync()
	case a.configPath != "" && sameFile(path, a.configPath):
		cfg, err := config.Load(a.configPath)
		if err != nil {
			a.logger.Warn("config reload failed, keeping current scene", "err", err)
			return
		}
		a.logger.Info("config changed, reloading", "path", path)
		a.reload(cfg)
	}
}

func (a *App) reload(cfg *config.Config) {
	if err := a.scene.Load(cfg); err != nil {
		a.logger.Warn("scene loaded with errors", "err", err)
	}
	a.resync()
}

// resync reapplies window state to a scene that was rebuilt underneath the app.
func (a *App) resync() {
	a.scene.SetViewport(a.gridArea())
	a.input.drag.Cancel()
	a.dirty = true
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
