package physics

import (
	"gravity-sim/internal/vecmath"
)

// DefaultMinSeparation is the singularity guard: separations below this are
// clamped in the force law so near-coincident bodies never blow up to
// NaN/Inf. Scenario files can override it to match their length scale.
const DefaultMinSeparation = 1e-6

// DebugLogger receives debug-level messages from the physics step, e.g. when
// the singularity guard clamps a near-coincident pair. Satisfied by
// *logger.Logger; nil disables the messages.
type DebugLogger interface {
	Debugf(format string, args ...any)
}

// World owns the ordered set of bodies and the camera/view parameters the
// renderer shares. Bodies are stepped in insertion order with a deterministic
// all-pairs force sum, so two runs with the same bodies, dt, and G produce
// identical trajectories.
//
// The view state (Scale, AspectRatio, CameraCoord) lives here because both
// the camera controls and the frame encoder read it, but mutating it never
// interacts with Step.
type World struct {
	Bodies []*Body

	// G is the gravitational constant in simulation units. The physical
	// scenarios use the SI value; toy scenarios pick whatever reads well
	// on screen.
	G float64

	// MinSeparation is the clamp distance for the singularity guard.
	MinSeparation float64

	// ScaleBase is the simulation length mapped to one clip-space unit at
	// zoom 1 (e.g. 3.8e8 for the Earth-Moon system).
	ScaleBase float64

	// Zoom is the user zoom factor; 1 shows ScaleBase units per clip unit.
	Zoom float64

	// AspectRatio is surface width / height, refreshed externally on resize.
	AspectRatio float32

	// CameraCoord is the camera position in simulation units; the shaders
	// subtract it from body positions before applying Scale.
	CameraCoord vecmath.Vec3

	log DebugLogger

	// scratch acceleration buffer, reused across steps.
	accs []vecmath.Vec3
}

// NewWorld returns an empty world with G = 0, zoom 1, aspect ratio 1, and the
// default singularity guard. Scenario setup fills in bodies and constants.
func NewWorld() *World {
	return &World{
		MinSeparation: DefaultMinSeparation,
		ScaleBase:     1,
		Zoom:          1,
		AspectRatio:   1,
	}
}

// SetDebugLogger sets the sink for debug messages (singularity clamps).
func (w *World) SetDebugLogger(log DebugLogger) {
	w.log = log
}

// AddBody appends a body to the world. Order is preserved: it determines both
// the force summation order and the index alignment with the encoder's
// per-body uniforms.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Step advances the simulation by dt seconds using semi-implicit Euler:
// all accelerations are computed from current positions, then velocity is
// updated before position for each body. Accumulation is a plain nested loop
// over the ordered body slice, keeping floating-point sums reproducible.
func (w *World) Step(dt float64) {
	n := len(w.Bodies)
	if n == 0 {
		return
	}
	if cap(w.accs) < n {
		w.accs = make([]vecmath.Vec3, n)
	}
	accs := w.accs[:n]
	for i := range accs {
		accs[i] = vecmath.Vec3{}
	}

	for i, bi := range w.Bodies {
		for j, bj := range w.Bodies {
			if i == j {
				continue
			}
			a, clamped := bi.AccelerationFrom(bj, w.MinSeparation)
			if clamped && w.log != nil {
				w.log.Debugf("singularity guard: bodies %d and %d closer than %g", i, j, w.MinSeparation)
			}
			accs[i] = accs[i].Add(a.Scale(w.G))
		}
	}

	for i, b := range w.Bodies {
		b.Velocity = b.Velocity.Add(accs[i].Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
}

// Scale returns the view scale uploaded to the GPU: the zoom factor divided
// by the scale base, so multiplying a simulation-space position by it yields
// clip space.
func (w *World) Scale() float32 {
	return float32(w.Zoom / w.ScaleBase)
}

// SetZoom sets the user zoom factor. Values <= 0 are ignored.
func (w *World) SetZoom(zoom float64) {
	if zoom > 0 {
		w.Zoom = zoom
	}
}

// SetAspectRatio records the surface aspect ratio (width / height).
// Called from the resize signal; never touched by Step.
func (w *World) SetAspectRatio(aspect float32) {
	if aspect > 0 {
		w.AspectRatio = aspect
	}
}

// MoveCamera sets the camera position in simulation units.
func (w *World) MoveCamera(coord vecmath.Vec3) {
	w.CameraCoord = coord
}
