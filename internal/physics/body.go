package physics

import (
	"gravity-sim/internal/vecmath"
)

// Color is an RGBA color with components in [0, 1], matching the vertex
// color attribute the renderer consumes.
type Color [4]float32

// Body is a point-mass simulation entity. Position and velocity are in
// simulation units (meters for the physical scenarios) and are mutated every
// step; Radius is purely visual and only affects rendering/clipping, never
// the physics.
type Body struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Mass     float64
	Radius   float32
	Color    Color
}

// NewBody returns a body at rest with the given position, mass, radius, and
// color. Mass and radius must be positive; non-positive values are clamped
// to 1 so a malformed scenario renders something rather than dividing by zero.
func NewBody(position vecmath.Vec3, mass float64, radius float32, color Color) *Body {
	if mass <= 0 {
		mass = 1
	}
	if radius <= 0 {
		radius = 1
	}
	return &Body{
		Position: position,
		Mass:     mass,
		Radius:   radius,
		Color:    color,
	}
}

// AccelerationFrom returns the gravitational acceleration contribution on b
// due to other, without the G factor: mass_other / r^2 along the unit vector
// from b toward other. The squared separation is clamped to minSep^2 so
// near-coincident bodies produce a large but finite pull instead of NaN/Inf.
// Returns the zero vector (and clamped = true) for exactly coincident bodies,
// where no direction exists.
func (b *Body) AccelerationFrom(other *Body, minSep float64) (acc vecmath.Vec3, clamped bool) {
	r := other.Position.Sub(b.Position)
	dist := r.Magnitude()
	if dist == 0 {
		return vecmath.Vec3{}, true
	}
	d2 := dist * dist
	if dist < minSep {
		d2 = minSep * minSep
		clamped = true
	}
	return r.Scale(other.Mass / (dist * d2)), clamped
}
