package grid

import "image"

// Rect is a viewport rectangle in framebuffer pixels. The origin is the
// bottom-left corner of the framebuffer, Y grows upwards.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the framebuffer pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Image converts r to image space (origin top-left) inside the framebuffer
// bounds fb.
func (r Rect) Image(fb image.Rectangle) image.Rectangle {
	top := fb.Max.Y - (r.Y + r.Height)
	return image.Rect(fb.Min.X+r.X, top, fb.Min.X+r.X+r.Width, top+r.Height)
}

// FromImage is the inverse of Rect.Image.
func FromImage(ir, fb image.Rectangle) Rect {
	return Rect{
		X:      ir.Min.X - fb.Min.X,
		Y:      fb.Max.Y - ir.Max.Y,
		Width:  ir.Dx(),
		Height: ir.Dy(),
	}
}

func (r Rect) halves() (left, right Rect) {
	hw := r.Width / 2
	left = Rect{X: r.X, Y: r.Y, Width: hw, Height: r.Height}
	right = Rect{X: r.X + hw, Y: r.Y, Width: hw, Height: r.Height}
	return left, right
}

// quadrants returns the four quarters in slot order: top-left, top-right,
// bottom-left, bottom-right.
func (r Rect) quadrants() [4]Rect {
	hw, hh := r.Width/2, r.Height/2
	return [4]Rect{
		{X: r.X, Y: r.Y + hh, Width: hw, Height: hh},
		{X: r.X + hw, Y: r.Y + hh, Width: hw, Height: hh},
		{X: r.X, Y: r.Y, Width: hw, Height: hh},
		{X: r.X + hw, Y: r.Y, Width: hw, Height: hh},
	}
}
