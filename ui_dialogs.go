package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/nbody/config"
	"github.com/milk9111/nbody/nbody"
	"github.com/milk9111/nbody/preset"
	"github.com/milk9111/nbody/sim"
)

// dialog is a modal box centered over a dimmed overlay.
type dialog struct {
	Overlay *widget.Container
	Body    *widget.Container
	title   *widget.Text
	message *widget.Text
}

func newDialog(theme *widget.Theme, fontFace *text.Face, title string, onOK func() bool) *dialog {
	d := &dialog{}
	d.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(overlayColor)),
	)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	box := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(340, 120),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dialogColor)),
		widget.ContainerOpts.Layout(verticalRow(8, &widget.Insets{Top: 16, Bottom: 16, Left: 20, Right: 20})),
	)

	d.title = newLabel(fontFace, title)
	d.message = widget.NewText(widget.TextOpts.Text("", fontFace, dragColor))
	d.Body = widget.NewContainer(widget.ContainerOpts.Layout(verticalRow(6, &widget.Insets{})))

	buttons := widget.NewContainer(widget.ContainerOpts.Layout(horizontalRow(8)))
	buttons.AddChild(newButton(theme, fontFace, "OK", func() {
		if onOK == nil || onOK() {
			d.Hide()
		}
	}))
	buttons.AddChild(newButton(theme, fontFace, "Cancel", d.Hide))

	box.AddChild(d.title)
	box.AddChild(d.Body)
	box.AddChild(d.message)
	box.AddChild(buttons)
	d.Overlay.AddChild(box)
	return d
}

func (d *dialog) Show() {
	d.message.Label = ""
	d.Overlay.GetWidget().Visibility = widget.Visibility_Show
}

func (d *dialog) Hide() {
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide
}

func (d *dialog) Visible() bool {
	return d.Overlay.GetWidget().Visibility == widget.Visibility_Show
}

// Fail keeps the dialog open and shows err under the form.
func (d *dialog) Fail(err error) bool {
	d.message.Label = err.Error()
	return false
}

// confirmDialog asks before an action that cannot be undone.
type confirmDialog struct {
	*dialog
	text   *widget.Text
	action func() error
}

func newConfirmDialog(theme *widget.Theme, fontFace *text.Face) *confirmDialog {
	c := &confirmDialog{}
	c.dialog = newDialog(theme, fontFace, "Confirm", func() bool {
		if c.action == nil {
			return true
		}
		if err := c.action(); err != nil {
			return c.Fail(err)
		}
		return true
	})
	c.text = newLabel(fontFace, "")
	c.Body.AddChild(c.text)
	return c
}

func (c *confirmDialog) Open(message string, action func() error) {
	c.text.Label = message
	c.action = action
	c.Show()
}

// newSimulationDialog collects a SimulationSpec and hands it to create.
type newSimulationDialog struct {
	*dialog
	name     *widget.TextInput
	bodies   *widget.TextInput
	seed     *widget.TextInput
	presets  *choice
	executor *choice
	show     *choice
	scripts  func() []string
}

func newNewSimulationDialog(theme *widget.Theme, fontFace *text.Face, scripts func() []string, create func(spec config.SimulationSpec, show bool) error) *newSimulationDialog {
	n := &newSimulationDialog{scripts: scripts}
	n.dialog = newDialog(theme, fontFace, "New simulation", func() bool {
		spec, err := n.spec()
		if err != nil {
			return n.Fail(err)
		}
		if err := create(spec, n.show.Selected() == "yes"); err != nil {
			return n.Fail(err)
		}
		return true
	})

	n.name = newTextInput(fontFace)
	n.bodies = newTextInput(fontFace)
	n.seed = newTextInput(fontFace)
	n.presets = newChoice(theme, fontFace, true)
	n.executor = newChoice(theme, fontFace, false)
	n.executor.SetOptions([]string{nbody.Naive.String(), nbody.BarnesHut.String()})
	n.show = newChoice(theme, fontFace, false)
	n.show.SetOptions([]string{"yes", "no"})

	n.Body.AddChild(newLabel(fontFace, "Name"))
	n.Body.AddChild(n.name)
	n.Body.AddChild(newLabel(fontFace, "Preset"))
	n.Body.AddChild(n.presets.Container)
	n.Body.AddChild(newLabel(fontFace, "Executor"))
	n.Body.AddChild(n.executor.Container)
	n.Body.AddChild(newLabel(fontFace, "Bodies"))
	n.Body.AddChild(n.bodies)
	n.Body.AddChild(newLabel(fontFace, "Seed"))
	n.Body.AddChild(n.seed)
	n.Body.AddChild(newLabel(fontFace, "Show in a new pane"))
	n.Body.AddChild(n.show.Container)
	return n
}

func (n *newSimulationDialog) Open(defaultName string, canShow bool) {
	options := append(preset.Names(), n.scripts()...)
	n.presets.SetOptions(options)
	n.name.SetText(defaultName)
	n.bodies.SetText("256")
	n.seed.SetText("1")
	if canShow {
		n.show.Select("yes")
	} else {
		n.show.Select("no")
	}
	n.Show()
	n.name.Focus(true)
}

func (n *newSimulationDialog) spec() (config.SimulationSpec, error) {
	name := strings.TrimSpace(n.name.GetText())
	if name == "" {
		return config.SimulationSpec{}, fmt.Errorf("name is required")
	}
	bodies, err := strconv.Atoi(strings.TrimSpace(n.bodies.GetText()))
	if err != nil || bodies < 0 {
		return config.SimulationSpec{}, fmt.Errorf("bodies must be a non-negative integer")
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(n.seed.GetText()), 10, 64)
	if err != nil {
		return config.SimulationSpec{}, fmt.Errorf("seed must be a non-negative integer")
	}
	return config.SimulationSpec{
		Name:     name,
		Executor: n.executor.Selected(),
		Preset:   n.presets.Selected(),
		Bodies:   bodies,
		Seed:     seed,
	}, nil
}

// addViewDialog places a new view over an existing simulation.
type addViewDialog struct {
	*dialog
	name       *widget.TextInput
	simulation *choice
	colorizer  *choice
}

func newAddViewDialog(theme *widget.Theme, fontFace *text.Face, add func(name, simulation, colorizer string) error) *addViewDialog {
	a := &addViewDialog{}
	a.dialog = newDialog(theme, fontFace, "Add view", func() bool {
		name := strings.TrimSpace(a.name.GetText())
		if name == "" {
			return a.Fail(fmt.Errorf("name is required"))
		}
		simulation := a.simulation.Selected()
		if simulation == "" {
			return a.Fail(fmt.Errorf("create a simulation first"))
		}
		if err := add(name, simulation, a.colorizer.Selected()); err != nil {
			return a.Fail(err)
		}
		return true
	})

	a.name = newTextInput(fontFace)
	a.simulation = newChoice(theme, fontFace, true)
	a.colorizer = newChoice(theme, fontFace, false)
	a.colorizer.SetOptions(sim.ColorizerNames())

	a.Body.AddChild(newLabel(fontFace, "Name"))
	a.Body.AddChild(a.name)
	a.Body.AddChild(newLabel(fontFace, "Simulation"))
	a.Body.AddChild(a.simulation.Container)
	a.Body.AddChild(newLabel(fontFace, "Colors"))
	a.Body.AddChild(a.colorizer.Container)
	return a
}

func (a *addViewDialog) Open(defaultName string, simulations []string, colorizer string) {
	a.simulation.SetOptions(simulations)
	a.colorizer.Select(colorizer)
	a.name.SetText(defaultName)
	a.Show()
	a.name.Focus(true)
}
