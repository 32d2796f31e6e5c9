// Package grid arranges up to four panes inside one viewport.
//
// A Grid is always in exactly one of three layouts (NoSplit, HorizontalSplit,
// QuadrantSplit). The layout only changes through Add, RemoveAt and Swap:
//
//	NoSplit{}      --Add-->  NoSplit{A}
//	NoSplit{A}     --Add-->  HorizontalSplit{A, B}
//	Horizontal{A,B}--Add-->  QuadrantSplit{A, B, C, _}
//	Quadrant{...}  --Add-->  first empty quadrant
//
// Removing collapses the layout whenever the occupancy drops below what the
// variant can hold in steady state (2 for HorizontalSplit, 3 for QuadrantSplit).
//
// A Grid is not safe for concurrent use; it is driven from the ebiten
// update/draw goroutine. Drawing panes into their viewports lives in
// grid/render.
package grid

import (
	"fmt"
	"image"
	"iter"

	"github.com/charmbracelet/log"
)

// Pane is an independently updated view placed in one slot. Drawing is
// left to the render package so the layout builds without a graphics stack.
type Pane interface {
	Name() string
	Update(dt float64)
}

// Grid owns the panes placed in it. Ownership moves in on Add and back out to
// the caller on RemoveAt.
type Grid struct {
	layout   layout
	viewport Rect

	listeners []func(*Grid)
	logger    *log.Logger
	strict    bool
}

type Option func(*Grid)

// WithLogger sets the logger used to report recovered invariant faults.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithStrictInvariants makes the grid panic on a broken layout invariant
// instead of recovering.
func WithStrictInvariants() Option {
	return func(g *Grid) {
		g.strict = true
	}
}

// New creates an empty grid (NoSplit, slot 0 empty) covering viewport.
func New(viewport Rect, opts ...Option) *Grid {
	g := &Grid{
		layout:   newNoSplit(nil),
		viewport: viewport,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OnLayoutChanged registers fn to run after every successful Add, RemoveAt
// and Swap.
func (g *Grid) OnLayoutChanged(fn func(*Grid)) {
	if fn == nil {
		return
	}
	g.listeners = append(g.listeners, fn)
}

func (g *Grid) notify() {
	for _, fn := range g.listeners {
		fn(g)
	}
}

func (g *Grid) Viewport() Rect {
	return g.viewport
}

// SetViewport updates the framebuffer region the grid draws into.
func (g *Grid) SetViewport(r Rect) {
	g.viewport = r
}

func (g *Grid) SplitMethod() SplitMethod {
	return g.layout.method()
}

func (g *Grid) OccupiedCount() int {
	return countOccupied(g.layout.slots())
}

// Slots returns a copy of the slots of the current layout in index order.
// Empty slots are nil. Its length is the only valid source of slot indices.
func (g *Grid) Slots() []Pane {
	s := g.layout.slots()
	out := make([]Pane, len(s))
	copy(out, s)
	return out
}

// Pane returns the pane at idx, which may be nil for an empty slot.
func (g *Grid) Pane(idx int) (Pane, error) {
	s := g.layout.slots()
	if idx < 0 || idx >= len(s) {
		return nil, fmt.Errorf("grid: pane %d of %d (%s): %w", idx, len(s), g.SplitMethod(), ErrInvalidIndex)
	}
	return s[idx], nil
}

// Occupied yields the non-empty slots in index order.
func (g *Grid) Occupied() iter.Seq2[int, Pane] {
	return func(yield func(int, Pane) bool) {
		for i, p := range g.layout.slots() {
			if p == nil {
				continue
			}
			if !yield(i, p) {
				return
			}
		}
	}
}

// ViewportAspectRatio is the aspect ratio of one pane's viewport. Each half of
// a HorizontalSplit is half as wide as the grid; quadrants keep the ratio.
func (g *Grid) ViewportAspectRatio() float64 {
	if g.viewport.Height == 0 {
		return 0
	}
	ratio := float64(g.viewport.Width) / float64(g.viewport.Height)
	if g.layout.method() == HorizontalSplit {
		return ratio / 2
	}
	return ratio
}

// Add places p in the first available slot, growing the layout if needed.
func (g *Grid) Add(p Pane) error {
	if p == nil {
		return ErrNilPane
	}

	switch l := g.layout.(type) {
	case *noSplit:
		if child := l.children[0]; child != nil {
			g.layout = newHorizontalSplit(child, p)
		} else {
			l.children[0] = p
		}
	case *horizontalSplit:
		g.layout = newQuadrantSplit(l.children[0], l.children[1], p, nil)
	case *quadrantSplit:
		if n := countOccupied(l.children[:]); n < 3 {
			g.fault("quadrant split below three panes", "occupied", n)
			g.layout = layoutFor(append(compact(l.children[:]), p))
			break
		}
		placed := false
		for i := range l.children {
			if l.children[i] == nil {
				l.children[i] = p
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("grid: add %q: %w", p.Name(), ErrCapacityExceeded)
		}
	}

	g.notify()
	return nil
}

// RemoveAt empties slot idx and returns the pane that was there. The layout
// shrinks when the remaining panes no longer fill the current variant.
func (g *Grid) RemoveAt(idx int) (Pane, error) {
	var removed Pane

	switch l := g.layout.(type) {
	case *noSplit:
		if idx != 0 {
			return nil, fmt.Errorf("grid: remove %d from %s: %w", idx, NoSplit, ErrInvalidIndex)
		}
		if l.children[0] == nil {
			return nil, fmt.Errorf("grid: remove %d: %w", idx, ErrAlreadyEmpty)
		}
		removed, l.children[0] = l.children[0], nil
	case *horizontalSplit:
		if idx != 0 && idx != 1 {
			return nil, fmt.Errorf("grid: remove %d from %s: %w", idx, HorizontalSplit, ErrInvalidIndex)
		}
		removed = l.children[idx]
		g.layout = newNoSplit(l.children[1-idx])
	case *quadrantSplit:
		if idx < 0 || idx >= len(l.children) {
			return nil, fmt.Errorf("grid: remove %d from %s: %w", idx, QuadrantSplit, ErrInvalidIndex)
		}
		if l.children[idx] == nil {
			return nil, fmt.Errorf("grid: remove %d: %w", idx, ErrAlreadyEmpty)
		}
		before := countOccupied(l.children[:])
		if before < 3 {
			g.fault("quadrant split below three panes", "occupied", before)
		}
		removed, l.children[idx] = l.children[idx], nil
		if before <= 3 {
			g.layout = layoutFor(compact(l.children[:]))
		}
	}

	g.notify()
	return removed, nil
}

// Swap exchanges the panes (or empty slots) at a and b without changing the
// layout. Both indices must be in range of Slots(); anything else is a caller
// bug and panics.
func (g *Grid) Swap(a, b int) {
	s := g.layout.slots()
	if a < 0 || a >= len(s) || b < 0 || b >= len(s) {
		panic(fmt.Sprintf("grid: swap %d, %d out of range for %s", a, b, g.SplitMethod()))
	}
	if a == b {
		return
	}
	s[a], s[b] = s[b], s[a]
	g.notify()
}

// Update advances every pane in slot order.
func (g *Grid) Update(dt float64) {
	for _, p := range g.Occupied() {
		p.Update(dt)
	}
}

// Viewports returns the viewport of every slot, in the same order as Slots.
func (g *Grid) Viewports() []Rect {
	return g.layout.partition(g.viewport)
}

// Each calls fn for every occupied slot with the viewport it is drawn in.
func (g *Grid) Each(fn func(idx int, p Pane, viewport Rect)) {
	rects := g.Viewports()
	for i, p := range g.Occupied() {
		fn(i, p, rects[i])
	}
}

// SlotAt returns the slot whose viewport contains the framebuffer pixel
// (x, y), origin bottom-left.
func (g *Grid) SlotAt(x, y int) (int, bool) {
	for i, r := range g.Viewports() {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// Clips yields every occupied pane with its viewport converted to the image
// coordinates of a framebuffer with bounds fb. Panes whose viewport is empty
// or lies entirely off the framebuffer are skipped.
func (g *Grid) Clips(fb image.Rectangle) iter.Seq2[Pane, image.Rectangle] {
	return func(yield func(Pane, image.Rectangle) bool) {
		screen := FromImage(fb, fb)
		rects := g.Viewports()
		for i, p := range g.Occupied() {
			r := rects[i]
			if r.Empty() || !r.Intersects(&screen) {
				continue
			}
			if !yield(p, r.Image(fb)) {
				return
			}
		}
	}
}

// fault reports a broken layout invariant. The caller repairs the layout
// when the grid is not strict.
func (g *Grid) fault(msg string, keyvals ...any) {
	if g.strict {
		panic(fmt.Sprintf("grid: %s %v", msg, keyvals))
	}
	g.logger.Error("grid: "+msg+", repacking", keyvals...)
}
