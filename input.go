package main

import (
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/nbody/grid"
	"github.com/milk9111/nbody/sim"
)

// input turns mouse and keyboard state into camera moves and pane swaps.
// Left drag orbits the camera, the wheel zooms and right drag moves a pane
// onto another slot.
type input struct {
	drag grid.DragDrop

	orbiting     bool
	lastX, lastY int
}

// gridCursor returns the cursor in the grid's bottom-left origin coordinates.
func (in *input) gridCursor(a *App) (int, int) {
	x, y := ebiten.CursorPosition()
	return x, a.height - 1 - y
}

func (in *input) Update(a *App) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.toggleRunning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copyScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.stepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.centerCamera()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.drag.Cancel()
	}

	in.updateCamera(a)
	in.updateDrag(a)
	in.updateHighlight(a)
}

func (in *input) updateCamera(a *App) {
	cam := a.scene.camera
	cfg := a.scene.cfg.Camera
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.orbiting = false
	}
	// Clicks on the panel must not also move the camera.
	if ebuiinput.UIHovered {
		return
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Zoom(wy, cfg.ScrollSensitivity)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.orbiting = true
		in.lastX, in.lastY = x, y
	}
	if in.orbiting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx, dy := x-in.lastX, y-in.lastY
		if dx != 0 || dy != 0 {
			cam.Pan(cfg.PanSensitivity*float64(dx), cfg.PanSensitivity*float64(dy))
		}
		in.lastX, in.lastY = x, y
	}
}

func (in *input) updateDrag(a *App) {
	g := a.scene.grid
	gx, gy := in.gridCursor(a)
	slot, inside := g.SlotAt(gx, gy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && inside && !ebuiinput.UIHovered {
		in.drag.Begin(g, slot)
	}
	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) || !in.drag.Dragging() {
		return
	}
	if !inside {
		in.drag.Cancel()
		return
	}
	req, ok := in.drag.Drop(slot)
	if !ok {
		return
	}
	if err := g.ApplySwap(req); err != nil {
		a.logger.Warn("swap panes", "from", req.From, "to", req.To, "err", err)
	}
}

func (in *input) updateHighlight(a *App) {
	hover := -1
	if in.drag.Dragging() {
		if slot, ok := a.scene.grid.SlotAt(in.gridCursor(a)); ok {
			hover = slot
		}
	}
	for idx, p := range a.scene.grid.Occupied() {
		if v, ok := p.(*sim.View); ok {
			v.Highlight = in.drag.Dragging() && (idx == in.drag.Source() || idx == hover)
		}
	}
}
