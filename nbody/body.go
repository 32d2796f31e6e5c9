// Package nbody integrates point-mass gravity for the simulation panes.
package nbody

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Body is a point mass.
type Body struct {
	Mass         float64
	Position     r3.Vec
	Velocity     r3.Vec
	Acceleration r3.Vec
}

// Speed returns the magnitude of the body's velocity.
func (b Body) Speed() float64 {
	return r3.Norm(b.Velocity)
}

// CenterOfMass returns the mass-weighted mean position.
func CenterOfMass(bodies []Body) r3.Vec {
	var sum r3.Vec
	total := 0.0
	for _, b := range bodies {
		sum = r3.Add(sum, r3.Scale(b.Mass, b.Position))
		total += b.Mass
	}
	if total == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/total, sum)
}

// Momentum returns the total linear momentum.
func Momentum(bodies []Body) r3.Vec {
	var p r3.Vec
	for _, b := range bodies {
		p = r3.Add(p, r3.Scale(b.Mass, b.Velocity))
	}
	return p
}

// Bounds returns the axis aligned box containing every body.
func Bounds(bodies []Body) r3.Box {
	if len(bodies) == 0 {
		return r3.Box{}
	}
	box := r3.Box{Min: bodies[0].Position, Max: bodies[0].Position}
	for _, b := range bodies[1:] {
		p := b.Position
		box.Min = r3.Vec{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
	}
	return box
}

// SpeedRange returns the minimum and maximum body speed.
func SpeedRange(bodies []Body) (lo, hi float64) {
	if len(bodies) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), 0
	for _, b := range bodies {
		s := b.Speed()
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return lo, hi
}
