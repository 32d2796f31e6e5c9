package grid

import "fmt"

// SwapRequest is the payload of a pane drag-and-drop: the pane picked up at
// From is exchanged with whatever sits at To.
type SwapRequest struct {
	From, To int
}

// ApplySwap validates req against the current slots and swaps. Requests built
// against a layout that has since changed fail with ErrInvalidIndex instead of
// panicking.
func (g *Grid) ApplySwap(req SwapRequest) error {
	n := len(g.layout.slots())
	if req.From < 0 || req.From >= n || req.To < 0 || req.To >= n {
		return fmt.Errorf("grid: swap %d -> %d with %d slots: %w", req.From, req.To, n, ErrInvalidIndex)
	}
	g.Swap(req.From, req.To)
	return nil
}

// DragDrop tracks a pane being dragged between slots.
type DragDrop struct {
	source   int
	dragging bool
}

// Begin starts dragging from slot idx. Empty slots cannot be picked up.
func (d *DragDrop) Begin(g *Grid, idx int) bool {
	p, err := g.Pane(idx)
	if err != nil || p == nil {
		d.Cancel()
		return false
	}
	d.source = idx
	d.dragging = true
	return true
}

func (d *DragDrop) Dragging() bool {
	return d.dragging
}

// Source returns the slot being dragged, or -1.
func (d *DragDrop) Source() int {
	if !d.dragging {
		return -1
	}
	return d.source
}

// Drop finishes the drag over slot idx. It reports false when nothing was
// being dragged or the pane was dropped on its own slot.
func (d *DragDrop) Drop(idx int) (SwapRequest, bool) {
	if !d.dragging {
		return SwapRequest{}, false
	}
	src := d.source
	d.Cancel()
	if src == idx {
		return SwapRequest{}, false
	}
	return SwapRequest{From: src, To: idx}, true
}

func (d *DragDrop) Cancel() {
	d.dragging = false
	d.source = -1
}
