package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func newButton(theme *widget.Theme, fontFace *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, 28),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func newLabel(fontFace *text.Face, label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, fontFace, textColor),
	)
}

func newTextInput(fontFace *text.Face) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 26),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(textColor),
			Disabled: solidNineSlice(mutedTextColor),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     panelColor,
			Disabled: dialogColor,
			Caret:    panelColor,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
}

func verticalRow(spacing int, padding *widget.Insets) widget.Layouter {
	return widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		widget.RowLayoutOpts.Spacing(spacing),
		widget.RowLayoutOpts.Padding(padding),
	)
}

func horizontalRow(spacing int) widget.Layouter {
	return widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		widget.RowLayoutOpts.Spacing(spacing),
	)
}

// choice is a row of toggle buttons of which exactly one is active.
type choice struct {
	theme    *widget.Theme
	fontFace *text.Face

	Container *widget.Container
	group     *widget.RadioGroup
	buttons   []*widget.Button
	options   []string
}

func newChoice(theme *widget.Theme, fontFace *text.Face, vertical bool) *choice {
	layout := horizontalRow(4)
	if vertical {
		layout = verticalRow(4, &widget.Insets{})
	}
	return &choice{
		theme:    theme,
		fontFace: fontFace,
		Container: widget.NewContainer(
			widget.ContainerOpts.Layout(layout),
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
		),
	}
}

// SetOptions replaces the buttons and activates the first one.
func (c *choice) SetOptions(options []string) {
	c.Container.RemoveChildren()
	c.options = options
	c.buttons = c.buttons[:0]
	c.group = nil
	if len(options) == 0 {
		return
	}

	elements := make([]widget.RadioGroupElement, 0, len(options))
	for _, opt := range options {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(c.theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(opt, c.fontFace, c.theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(48, 26)),
		)
		c.buttons = append(c.buttons, btn)
		c.Container.AddChild(btn)
		elements = append(elements, btn)
	}
	c.group = widget.NewRadioGroup(widget.RadioGroupOpts.Elements(elements...))
	c.group.SetActive(c.buttons[0])
}

// Selected returns the active option, or "" when there are none.
func (c *choice) Selected() string {
	if c.group == nil {
		return ""
	}
	active := c.group.Active()
	for i, b := range c.buttons {
		if active == b {
			return c.options[i]
		}
	}
	return ""
}

func (c *choice) Select(option string) {
	for i, opt := range c.options {
		if opt == option {
			c.group.SetActive(c.buttons[i])
			return
		}
	}
}
