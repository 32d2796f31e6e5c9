package grid

import "fmt"

// SplitMethod names the active layout variant.
type SplitMethod int

const (
	// NoSplit places a single pane over the whole viewport.
	NoSplit SplitMethod = iota
	// HorizontalSplit places two panes side by side. 0 -> left, 1 -> right.
	HorizontalSplit
	// QuadrantSplit places panes in quarters.
	// 0 -> top-left, 1 -> top-right, 2 -> bottom-left, 3 -> bottom-right.
	QuadrantSplit
)

func (m SplitMethod) String() string {
	switch m {
	case NoSplit:
		return "NoSplit"
	case HorizontalSplit:
		return "HorizontalSplit"
	case QuadrantSplit:
		return "QuadrantSplit"
	default:
		return fmt.Sprintf("SplitMethod(%d)", int(m))
	}
}

// layout is the sum type over the three slot sets. Exactly one is alive in a
// Grid; the split method is only derivable from which one.
type layout interface {
	method() SplitMethod
	slots() []Pane
	partition(viewport Rect) []Rect
}

type noSplit struct {
	children [1]Pane
}

type horizontalSplit struct {
	children [2]Pane
}

type quadrantSplit struct {
	children [4]Pane
}

func newNoSplit(child Pane) *noSplit {
	return &noSplit{children: [1]Pane{child}}
}

// newHorizontalSplit panics unless both sides are filled.
func newHorizontalSplit(left, right Pane) *horizontalSplit {
	if left == nil || right == nil {
		panic("grid: horizontal split requires two panes")
	}
	return &horizontalSplit{children: [2]Pane{left, right}}
}

// newQuadrantSplit accepts at most three panes; a fourth is only ever placed
// through Grid.Add.
func newQuadrantSplit(topLeft, topRight, bottomLeft, bottomRight Pane) *quadrantSplit {
	q := &quadrantSplit{children: [4]Pane{topLeft, topRight, bottomLeft, bottomRight}}
	if n := countOccupied(q.children[:]); n > 3 {
		panic(fmt.Sprintf("grid: quadrant split constructed with %d panes", n))
	}
	return q
}

func (*noSplit) method() SplitMethod         { return NoSplit }
func (*horizontalSplit) method() SplitMethod { return HorizontalSplit }
func (*quadrantSplit) method() SplitMethod   { return QuadrantSplit }

func (l *noSplit) slots() []Pane         { return l.children[:] }
func (l *horizontalSplit) slots() []Pane { return l.children[:] }
func (l *quadrantSplit) slots() []Pane   { return l.children[:] }

func (*noSplit) partition(viewport Rect) []Rect {
	return []Rect{viewport}
}

func (*horizontalSplit) partition(viewport Rect) []Rect {
	left, right := viewport.halves()
	return []Rect{left, right}
}

func (*quadrantSplit) partition(viewport Rect) []Rect {
	q := viewport.quadrants()
	return q[:]
}

func countOccupied(panes []Pane) int {
	n := 0
	for _, p := range panes {
		if p != nil {
			n++
		}
	}
	return n
}

// compact returns the occupied panes in ascending slot order.
func compact(panes []Pane) []Pane {
	out := make([]Pane, 0, len(panes))
	for _, p := range panes {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// layoutFor builds the variant whose steady state holds exactly the given
// panes. It is used when shrinking and when recovering from a broken invariant.
func layoutFor(panes []Pane) layout {
	switch len(panes) {
	case 0:
		return newNoSplit(nil)
	case 1:
		return newNoSplit(panes[0])
	case 2:
		return newHorizontalSplit(panes[0], panes[1])
	case 3:
		return newQuadrantSplit(panes[0], panes[1], panes[2], nil)
	default:
		q := newQuadrantSplit(panes[0], panes[1], panes[2], nil)
		q.children[3] = panes[3]
		return q
	}
}
