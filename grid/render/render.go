// Package render draws the panes of a grid.Grid with ebiten. It is kept apart
// from package grid so the layout code has no graphics dependency.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/nbody/grid"
)

// Pane is a grid pane that can draw itself.
type Pane interface {
	grid.Pane
	// Draw renders into dst, which is already clipped to the pane's viewport.
	Draw(dst *ebiten.Image)
}

// Draw renders every occupied, visible pane of g into its own sub-image of
// dst. Sub-images keep the parent's coordinate space, so nothing has to be
// reset after each pane. Panes without a Draw method are skipped.
func Draw(g *grid.Grid, dst *ebiten.Image) int {
	if g == nil || dst == nil {
		return 0
	}

	drawn := 0
	for p, clip := range g.Clips(dst.Bounds()) {
		rp, ok := p.(Pane)
		if !ok {
			continue
		}
		sub, ok := dst.SubImage(clip).(*ebiten.Image)
		if !ok {
			continue
		}
		rp.Draw(sub)
		drawn++
	}
	return drawn
}
