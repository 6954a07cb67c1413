package frame

// GPU-side data layouts. Field order, padding, and sizes must match the WGSL
// structs in internal/render/shaders exactly (uniform buffer std140 rules:
// vec3<f32> aligns to 16 bytes).

// ViewUniform is the shared camera/projection state at group(0) binding(0),
// consumed by the vertex stage of both pipelines and by the circle fragment
// stage. 32 bytes.
type ViewUniform struct {
	AspectRatio float32    // offset  0: surface width / height
	Scale       float32    // offset  4: zoom / scale base, maps sim units to clip
	_           [2]float32 // offset  8: pad so CameraCoord lands on 16
	CameraCoord [3]float32 // offset 16: camera position in simulation units
	_           float32    // offset 28: pad to 32
}

// CircleUniform is the per-body clipping circle at group(1) binding(0),
// bound per draw in the circle-clip pass. 16 bytes.
type CircleUniform struct {
	Center [3]float32 // offset  0: body position in simulation units
	Radius float32    // offset 12: visual radius in simulation units
}

// Vertex is one vertex of a body's quad: location 0 = position (vec3),
// location 1 = color (vec4). 28 bytes.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// FrameData is one frame's worth of GPU-consumable state. Ordering is the
// invariant the renderer relies on: body i owns vertices [4i, 4i+4), indices
// [6i, 6i+6), and Circles[i].
type FrameData struct {
	Vertices []Vertex
	Indices  []uint16
	View     ViewUniform
	Circles  []CircleUniform
}
