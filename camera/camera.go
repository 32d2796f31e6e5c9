// Package camera implements the orbit camera shared by every pane.
package camera

import (
	"math"

	"github.com/milk9111/nbody/common"
	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the world up direction.
var Up = r3.Vec{Y: 1}

const maxPitch = math.Pi/2 - 1e-3

// Camera orbits Target at Distance. Pitch and Yaw are in radians.
type Camera struct {
	Pitch    float64
	Yaw      float64
	Distance float64
	Target   r3.Vec

	MinDistance float64
	// FovY is the vertical field of view in radians.
	FovY float64
	Near float64

	aspect float64
}

// New creates a camera with a 45 degree field of view and a square aspect.
func New(pitch, yaw, distance float64) *Camera {
	c := &Camera{
		Yaw:         yaw,
		Distance:    distance,
		MinDistance: 0.1,
		FovY:        math.Pi / 4,
		Near:        1e-3,
		aspect:      1,
	}
	c.AddPitch(pitch)
	return c
}

// Eye returns the camera position.
func (c *Camera) Eye() r3.Vec {
	dir := r3.Vec{
		X: math.Cos(c.Pitch) * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: math.Cos(c.Pitch) * math.Cos(c.Yaw),
	}
	return r3.Add(c.Target, r3.Scale(c.Distance, dir))
}

// Front returns the unit view direction.
func (c *Camera) Front() r3.Vec {
	return r3.Unit(r3.Sub(c.Target, c.Eye()))
}

// Basis returns the right and up axes of the view.
func (c *Camera) Basis() (right, up r3.Vec) {
	front := c.Front()
	right = r3.Unit(r3.Cross(front, Up))
	up = r3.Unit(r3.Cross(right, front))
	return right, up
}

func (c *Camera) AddPitch(d float64) {
	c.Pitch = common.Clamp(c.Pitch+d, -maxPitch, maxPitch)
}

// Pan rotates the camera by a mouse drag offset already scaled by the pan
// sensitivity.
func (c *Camera) Pan(dx, dy float64) {
	c.Yaw += dx
	c.AddPitch(-dy)
}

// Zoom scales the distance exponentially with the scroll amount.
func (c *Camera) Zoom(scroll, sensitivity float64) {
	c.Distance = math.Max(math.Exp(sensitivity*-scroll)*c.Distance, c.MinDistance)
}

// SetAspect sets the width/height ratio of the viewport being projected to.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	c.aspect = aspect
}

func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Projector is a snapshot of the camera basis, cheap to apply per body.
type Projector struct {
	eye, front, right, up r3.Vec
	sx, sy                float64
	near                  float64
}

// Projector captures the current view for projecting many points.
func (c *Camera) Projector() Projector {
	right, up := c.Basis()
	t := math.Tan(c.FovY / 2)
	return Projector{
		eye:   c.Eye(),
		front: c.Front(),
		right: right,
		up:    up,
		sx:    1 / (t * c.aspect),
		sy:    1 / t,
		near:  c.Near,
	}
}

// Project maps p to normalized device coordinates in [-1, 1] with Y up.
// depth is the distance along the view direction; ok is false behind the
// near plane.
func (p Projector) Project(v r3.Vec) (x, y, depth float64, ok bool) {
	d := r3.Sub(v, p.eye)
	depth = r3.Dot(d, p.front)
	if depth <= p.near {
		return 0, 0, depth, false
	}
	x = r3.Dot(d, p.right) * p.sx / depth
	y = r3.Dot(d, p.up) * p.sy / depth
	return x, y, depth, true
}

// Project is a convenience for a single point.
func (c *Camera) Project(v r3.Vec) (x, y, depth float64, ok bool) {
	return c.Projector().Project(v)
}
