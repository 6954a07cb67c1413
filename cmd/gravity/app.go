package main

import (
	"gravity-sim/internal/debug"
	"gravity-sim/internal/frame"
	"gravity-sim/internal/logger"
	"gravity-sim/internal/physics"
	"gravity-sim/internal/platform"
	"gravity-sim/internal/render"
	"gravity-sim/internal/vecmath"
)

const (
	// stepSeconds is the simulated time per frame at time warp 1.
	stepSeconds = 0.030
	// zoomInStep/zoomOutStep are applied once per accumulated zoom notch;
	// one wheel line accumulates wheelNotchesPerLine notches, so a single
	// click zooms by roughly zoomInStep^100.
	zoomInStep          = 1.01010101
	zoomOutStep         = 0.98
	wheelNotchesPerLine = 100.0
	// panDivisor converts cursor pixels to clip units while dragging.
	panDivisor = 100.0
)

// app is the frame loop driver: on each redraw it steps the world, encodes
// the frame, and hands it to the renderer, and it owns the input state for
// camera zoom/pan, time warp, and scenario reset.
type app struct {
	log      *logger.Logger
	renderer *render.Renderer
	stats    *debug.Stats

	pristine *physics.World
	world    *physics.World
	timeWarp float64

	wheelAccum float64
	lastX      float64
	lastY      float64
	dragging   bool
	dragX      float64
	dragY      float64
	dragCam    vecmath.Vec3
}

// callbacks wires the platform events into the app.
func (a *app) callbacks() platform.Callbacks {
	return platform.Callbacks{
		Resize:      a.onResize,
		Scroll:      a.onScroll,
		CursorMoved: a.onCursorMoved,
		DragButton:  a.onDragButton,
		Key:         a.onKey,
	}
}

// frameFn runs one frame in strict sequence: physics step, encode, draw.
// Rendering failures never touch world state; only a lost device ends the
// session.
func (a *app) frameFn() error {
	a.world.Step(stepSeconds * a.timeWarp)
	fd := frame.Encode(a.world)
	if err := a.renderer.Frame(&fd); err != nil {
		return err
	}
	a.stats.Frame(a.world, a.timeWarp)
	return nil
}

func (a *app) onResize(width, height uint32) {
	a.renderer.Resize(width, height)
	a.world.SetAspectRatio(float32(width) / float32(height))
}

// onScroll converts wheel lines into zoom notches, accumulating fractional
// movement and applying one multiplicative step per whole notch.
func (a *app) onScroll(lines float64) {
	a.wheelAccum += lines * wheelNotchesPerLine
	for {
		if a.wheelAccum >= 1 {
			a.wheelAccum--
			a.world.SetZoom(a.world.Zoom * zoomInStep)
		} else if a.wheelAccum <= -1 {
			a.wheelAccum++
			a.world.SetZoom(a.world.Zoom * zoomOutStep)
		} else {
			return
		}
	}
}

func (a *app) onCursorMoved(x, y float64) {
	if a.dragging {
		// Dragging pulls the scene with the cursor, so the camera moves the
		// opposite way; the divisor and scale turn pixels into sim units.
		scale := float64(a.world.Scale())
		dx := (x - a.dragX) / panDivisor / scale
		dy := (y - a.dragY) / panDivisor / scale
		// Screen Y grows downward, clip Y upward.
		a.world.MoveCamera(vecmath.Vec3{
			X: a.dragCam.X - dx,
			Y: a.dragCam.Y + dy,
			Z: a.dragCam.Z,
		})
	}
	a.lastX, a.lastY = x, y
}

func (a *app) onDragButton(pressed bool) {
	a.dragging = pressed
	if pressed {
		a.dragX, a.dragY = a.lastX, a.lastY
		a.dragCam = a.world.CameraCoord
	}
}

func (a *app) onKey(k platform.Key) {
	switch k {
	case platform.KeyUp:
		a.timeWarp *= 2
		a.log.Infof("time warp %g", a.timeWarp)
	case platform.KeyDown:
		a.timeWarp /= 2
		a.log.Infof("time warp %g", a.timeWarp)
	case platform.KeyReset:
		aspect := a.world.AspectRatio
		a.world = a.pristine.Clone()
		a.world.SetAspectRatio(aspect)
		a.log.Infof("scenario reset")
	}
}
