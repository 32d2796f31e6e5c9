package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/nbody/grid"
	"github.com/milk9111/nbody/sim"
)

// controlPanel is the column left of the grid plus the dialogs it opens.
type controlPanel struct {
	app      *App
	theme    *widget.Theme
	fontFace *text.Face

	UI        *ebitenui.UI
	container *widget.Container

	runButton *widget.Button
	status    *widget.Text
	layout    *widget.Text
	paneRows  [4]*widget.Button
	addView   *widget.Button
	simList   *widget.Container
	newSim    *newSimulationDialog
	newView   *addViewDialog
	confirm   *confirmDialog
	dialogs   []*dialog
}

func newControlPanel(app *App, width int) (*controlPanel, error) {
	face, err := loadFontFace(14)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	p := &controlPanel{app: app, fontFace: &face}
	p.theme = newTheme(p.fontFace)
	p.UI = &ebitenui.UI{PrimaryTheme: p.theme}

	p.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(p.theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(verticalRow(6, &widget.Insets{Top: 12, Bottom: 12, Left: 10, Right: 10})),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	p.runButton = newButton(p.theme, p.fontFace, "Run", app.toggleRunning)
	p.status = newLabel(p.fontFace, "")
	p.layout = newLabel(p.fontFace, "")
	controls := widget.NewContainer(widget.ContainerOpts.Layout(horizontalRow(6)))
	controls.AddChild(p.runButton)
	controls.AddChild(newButton(p.theme, p.fontFace, "Step", app.stepOnce))
	controls.AddChild(newButton(p.theme, p.fontFace, "Center", app.centerCamera))
	controls.AddChild(newButton(p.theme, p.fontFace, "Copy", app.copyScene))

	p.container.AddChild(controls)
	p.container.AddChild(p.status)
	p.container.AddChild(p.layout)
	for i := range p.paneRows {
		p.paneRows[i] = newButton(p.theme, p.fontFace, "", func() { app.removeView(i) })
		p.container.AddChild(p.paneRows[i])
	}
	p.addView = newButton(p.theme, p.fontFace, "Add view", p.openAddView)
	p.container.AddChild(p.addView)

	p.container.AddChild(newLabel(p.fontFace, "Simulations"))
	p.simList = widget.NewContainer(
		widget.ContainerOpts.Layout(verticalRow(4, &widget.Insets{})),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
	)
	p.container.AddChild(p.simList)
	p.container.AddChild(newButton(p.theme, p.fontFace, "New simulation", p.openNewSimulation))

	p.newSim = newNewSimulationDialog(p.theme, p.fontFace, app.scriptPresets, app.createSimulation)
	p.newView = newAddViewDialog(p.theme, p.fontFace, app.addView)
	p.confirm = newConfirmDialog(p.theme, p.fontFace)
	p.dialogs = []*dialog{p.newSim.dialog, p.newView.dialog, p.confirm.dialog}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(p.container)
	for _, d := range p.dialogs {
		root.AddChild(d.Overlay)
	}
	p.UI.Container = root

	p.Rebuild()
	return p, nil
}

// ModalOpen reports whether a dialog currently has the input.
func (p *controlPanel) ModalOpen() bool {
	for _, d := range p.dialogs {
		if d.Visible() {
			return true
		}
	}
	return false
}

func (p *controlPanel) openAddView() {
	var names []string
	for _, d := range p.app.scene.registry.All() {
		names = append(names, d.Name)
	}
	p.newView.Open(fmt.Sprintf("View %d", p.app.scene.grid.OccupiedCount()+1), names, p.app.scene.cfg.View.Colorizer)
}

func (p *controlPanel) openNewSimulation() {
	name := fmt.Sprintf("Simulation %d", p.app.scene.registry.Len()+1)
	p.newSim.Open(name, p.app.scene.grid.OccupiedCount() < len(p.paneRows))
}

func (p *controlPanel) confirmDelete(d *sim.Data) {
	d.RefreshViews()
	if n := d.ViewCount(); n > 0 {
		p.confirm.Open(
			fmt.Sprintf("%q is shown in %d pane(s). Close them and delete it?", d.Name, n),
			func() error { return p.app.deleteSimulation(d, true) },
		)
		return
	}
	p.confirm.Open(fmt.Sprintf("Delete %q?", d.Name), func() error { return p.app.deleteSimulation(d, false) })
}

// Rebuild refreshes the pane rows and the simulation list from the scene.
func (p *controlPanel) Rebuild() {
	g := p.app.scene.grid
	slots := g.Slots()
	for i, btn := range p.paneRows {
		if i >= len(slots) {
			btn.GetWidget().Visibility = widget.Visibility_Hide
			continue
		}
		btn.GetWidget().Visibility = widget.Visibility_Show
		label := fmt.Sprintf("%d: empty", i+1)
		btn.GetWidget().Disabled = slots[i] == nil
		if slots[i] != nil {
			label = fmt.Sprintf("%d: %s  [remove]", i+1, slots[i].Name())
		}
		if t := btn.Text(); t != nil {
			t.Label = label
		}
	}
	p.addView.GetWidget().Disabled = g.OccupiedCount() >= len(p.paneRows)

	p.simList.RemoveChildren()
	for _, d := range p.app.scene.registry.All() {
		d.RefreshViews()
		label := fmt.Sprintf("%s (%s, %d)  [delete]", d.Name, d.Kind(), len(d.Bodies()))
		p.simList.AddChild(newButton(p.theme, p.fontFace, label, func() { p.confirmDelete(d) }))
	}
	p.container.RequestRelayout()
}

// Refresh updates the labels that change every frame.
func (p *controlPanel) Refresh() {
	if t := p.runButton.Text(); t != nil {
		t.Label = "Run"
		if p.app.running {
			t.Label = "Pause"
		}
	}

	steps, elapsed := 0, 0.0
	if all := p.app.scene.registry.All(); len(all) > 0 {
		steps, elapsed = all[0].Steps(), all[0].Elapsed()
	}
	p.status.Label = fmt.Sprintf("t=%.2f  steps=%d  %.0f fps", elapsed, steps, ebiten.ActualFPS())

	g := p.app.scene.grid
	p.layout.Label = fmt.Sprintf("Panes: %d/%d (%s)", g.OccupiedCount(), len(g.Slots()), splitLabel(g.SplitMethod()))
}

func splitLabel(m grid.SplitMethod) string {
	switch m {
	case grid.HorizontalSplit:
		return "side by side"
	case grid.QuadrantSplit:
		return "quadrants"
	default:
		return "single"
	}
}
