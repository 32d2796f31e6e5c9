package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	panelColor     = color.RGBA{0x1c, 0x1c, 0x24, 0xff}
	dialogColor    = color.RGBA{0x2a, 0x2a, 0x34, 0xff}
	overlayColor   = color.RGBA{0, 0, 0, 160}
	textColor      = color.RGBA{0xe8, 0xe8, 0xe8, 0xff}
	mutedTextColor = color.RGBA{0x90, 0x90, 0x98, 0xff}
	dragColor      = color.RGBA{0xff, 0xc0, 0x40, 0xff}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func loadFontFace(size float64) (text.Face, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: s, Size: size}, nil
}

func newTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:     solidNineSlice(color.RGBA{0x3a, 0x3a, 0x48, 0xff}),
				Hover:    solidNineSlice(color.RGBA{0x4a, 0x4a, 0x5c, 0xff}),
				Pressed:  solidNineSlice(color.RGBA{0x2c, 0x5c, 0x9c, 0xff}),
				Disabled: solidNineSlice(color.RGBA{0x26, 0x26, 0x2e, 0xff}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     textColor,
				Hover:    textColor,
				Pressed:  color.White,
				Disabled: mutedTextColor,
			},
		},
	}
}
