package vecmath

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
)

// ErrDegenerate is returned by NormalizeErr when the vector's magnitude is
// too small to yield a meaningful direction.
var ErrDegenerate = errors.New("vecmath: cannot normalize zero-length vector")

// degenerateEps is the magnitude below which a vector has no usable
// direction: dividing by anything smaller blows components up toward
// overflow instead of producing a unit vector.
const degenerateEps = 1e-12

// Vec3 is a 3D vector with float64 components. Simulation positions span
// astronomic scales (the Earth-Moon system is ~4e8 m across), so the physics
// side stays in float64; conversion to float32 happens only at the GPU edge.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o component-wise.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o component-wise.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by the scalar k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

// Magnitude returns the Euclidean length of v.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the direction of v.
// A near-zero-length vector normalizes to the zero vector; use NormalizeErr
// when the caller needs to distinguish that case.
func (v Vec3) Normalize() Vec3 {
	m := v.Magnitude()
	if m < degenerateEps {
		return Vec3{}
	}
	return Vec3{v.X / m, v.Y / m, v.Z / m}
}

// NormalizeErr returns the unit vector in the direction of v, or
// ErrDegenerate when the magnitude is below degenerateEps.
func (v Vec3) NormalizeErr() (Vec3, error) {
	m := v.Magnitude()
	if m < degenerateEps {
		return Vec3{}, ErrDegenerate
	}
	return Vec3{v.X / m, v.Y / m, v.Z / m}, nil
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Magnitude()
}

// F32 returns the components converted to float32, for GPU upload.
func (v Vec3) F32() [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// AspectDistance is the circle-containment metric used by the fragment
// shader: distance from a to b in the XY plane, with the Y delta divided by
// the aspect ratio (surface width / height) before squaring. The shader
// receives Y coordinates already stretched by the aspect ratio from the
// vertex stage, so dividing the delta recovers isotropic units. Computed in
// float32 so any host-side hit test agrees with the GPU.
func AspectDistance(a, b [3]float32, aspectRatio float32) float32 {
	dx := a[0] - b[0]
	dy := (a[1] - b[1]) / aspectRatio
	return math32.Sqrt(dx*dx + dy*dy)
}
