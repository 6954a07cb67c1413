// Package frame converts simulation state into GPU-ready buffers: per-body
// quad geometry for the generic pass, per-body circle uniforms for the
// clipping pass, and the shared view uniform.
package frame

import (
	"gravity-sim/internal/physics"
)

// Overscan oversizes each body's quad relative to its radius. The quad only
// has to cover the circle's bounding area; the fragment shader discards
// everything outside the circle, so a little margin costs nothing and keeps
// the circle edge off the quad boundary.
const Overscan = 1.1

// quadIndices is the two-triangle index pattern for one quad, offset by 4*i
// for body i.
var quadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// Encode builds the FrameData for the world's current state. It only reads
// the world; calling it twice without stepping in between yields identical
// data. Body order is preserved throughout, so the renderer can bind
// Circles[i] before drawing body i's index range.
func Encode(w *physics.World) FrameData {
	n := len(w.Bodies)
	fd := FrameData{
		Vertices: make([]Vertex, 0, n*4),
		Indices:  make([]uint16, 0, n*6),
		Circles:  make([]CircleUniform, 0, n),
		View: ViewUniform{
			AspectRatio: w.AspectRatio,
			Scale:       w.Scale(),
			CameraCoord: w.CameraCoord.F32(),
		},
	}

	for i, b := range w.Bodies {
		c := b.Position.F32()
		r := b.Radius * Overscan
		color := [4]float32(b.Color)

		// Counter-clockwise from top-left, matching quadIndices.
		fd.Vertices = append(fd.Vertices,
			Vertex{Position: [3]float32{c[0] - r, c[1] + r, c[2]}, Color: color},
			Vertex{Position: [3]float32{c[0] - r, c[1] - r, c[2]}, Color: color},
			Vertex{Position: [3]float32{c[0] + r, c[1] - r, c[2]}, Color: color},
			Vertex{Position: [3]float32{c[0] + r, c[1] + r, c[2]}, Color: color},
		)
		base := uint16(i * 4)
		for _, ix := range quadIndices {
			fd.Indices = append(fd.Indices, base+ix)
		}
		fd.Circles = append(fd.Circles, CircleUniform{Center: c, Radius: b.Radius})
	}
	return fd
}
