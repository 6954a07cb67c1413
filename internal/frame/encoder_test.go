package frame

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravity-sim/internal/physics"
	"gravity-sim/internal/vecmath"
)

// The uniform structs are uploaded byte-for-byte, so their Go layout has to
// match the WGSL declarations exactly.
func TestUniformLayouts(t *testing.T) {
	var vu ViewUniform
	assert.Equal(t, uintptr(32), unsafe.Sizeof(vu))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(vu.AspectRatio))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(vu.Scale))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(vu.CameraCoord))

	var cu CircleUniform
	assert.Equal(t, uintptr(16), unsafe.Sizeof(cu))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(cu.Center))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(cu.Radius))

	var v Vertex
	assert.Equal(t, uintptr(28), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(v.Color))
}

func testWorld() *physics.World {
	w := physics.NewWorld()
	w.ScaleBase = 10
	w.Zoom = 2
	w.AspectRatio = 1.5
	w.CameraCoord = vecmath.Vec3{X: 1, Y: -2, Z: 0}
	w.AddBody(physics.NewBody(vecmath.Vec3{X: 3, Y: 4, Z: 0}, 5, 2, physics.Color{1, 0, 0, 1}))
	w.AddBody(physics.NewBody(vecmath.Vec3{X: -7, Y: 0, Z: 1}, 5, 0.5, physics.Color{0, 0, 1, 1}))
	w.AddBody(physics.NewBody(vecmath.Vec3{X: 0, Y: 9, Z: 0}, 5, 1, physics.Color{0, 1, 0, 0.5}))
	return w
}

func TestEncodeCounts(t *testing.T) {
	w := testWorld()
	fd := Encode(w)
	n := len(w.Bodies)
	assert.Len(t, fd.Vertices, n*4)
	assert.Len(t, fd.Indices, n*6)
	assert.Len(t, fd.Circles, n)
}

func TestEncodeView(t *testing.T) {
	w := testWorld()
	fd := Encode(w)
	assert.Equal(t, w.AspectRatio, fd.View.AspectRatio)
	assert.Equal(t, w.Scale(), fd.View.Scale)
	assert.Equal(t, w.CameraCoord.F32(), fd.View.CameraCoord)
}

// Circle uniforms carry the body's position and radius exactly, with no
// overscan or view transform applied; the shader does that work.
func TestEncodeCirclesExact(t *testing.T) {
	w := testWorld()
	fd := Encode(w)
	for i, b := range w.Bodies {
		assert.Equal(t, b.Position.F32(), fd.Circles[i].Center)
		assert.Equal(t, b.Radius, fd.Circles[i].Radius)
	}
}

func TestEncodeQuadGeometry(t *testing.T) {
	w := testWorld()
	fd := Encode(w)
	for i, b := range w.Bodies {
		c := b.Position.F32()
		r := b.Radius * Overscan
		quad := fd.Vertices[i*4 : i*4+4]

		for _, v := range quad {
			assert.Equal(t, [4]float32(b.Color), v.Color)
			assert.Equal(t, c[2], v.Position[2])
			assert.InDelta(t, float64(r), float64(abs32(v.Position[0]-c[0])), 1e-6)
			assert.InDelta(t, float64(r), float64(abs32(v.Position[1]-c[1])), 1e-6)
		}
		// Corners wind counter-clockwise from top-left.
		assert.Less(t, quad[0].Position[0], quad[2].Position[0])
		assert.Greater(t, quad[0].Position[1], quad[1].Position[1])
	}
}

func TestEncodeIndexAlignment(t *testing.T) {
	w := testWorld()
	fd := Encode(w)
	for i := range w.Bodies {
		base := uint16(i * 4)
		seg := fd.Indices[i*6 : i*6+6]
		want := []uint16{base, base + 1, base + 2, base + 2, base + 3, base}
		assert.Equal(t, want, seg)
		// Every index stays inside body i's own quad.
		for _, ix := range seg {
			require.GreaterOrEqual(t, ix, base)
			require.Less(t, ix, base+4)
		}
	}
}

// Encode reads but never mutates the world, so repeated calls agree.
func TestEncodeIdempotent(t *testing.T) {
	w := testWorld()
	fd1 := Encode(w)
	fd2 := Encode(w)
	assert.Equal(t, fd1, fd2)
}

func TestEncodeEmptyWorld(t *testing.T) {
	fd := Encode(physics.NewWorld())
	assert.Empty(t, fd.Vertices)
	assert.Empty(t, fd.Indices)
	assert.Empty(t, fd.Circles)
	assert.Equal(t, float32(1), fd.View.Scale)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
