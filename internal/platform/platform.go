// Package platform provides the window/canvas and GPU surface the renderer
// draws into, behind a single Window type with two build-tagged
// implementations: glfw for native desktop builds and the browser canvas
// for js/wasm builds. The simulation and render packages never know which
// provider is active.
package platform

// Key identifies the control keys the frame loop cares about, independent of
// the active provider's key codes.
type Key int

const (
	// KeyNone is reported for keys the simulation does not use.
	KeyNone Key = iota
	// KeyUp doubles the time warp.
	KeyUp
	// KeyDown halves the time warp.
	KeyDown
	// KeyReset restarts the current scenario.
	KeyReset
)

// Callbacks are the event hooks a Window delivers. Zero-value fields are
// simply not called.
type Callbacks struct {
	// Resize reports the new framebuffer size in pixels.
	Resize func(width, height uint32)
	// Scroll reports vertical wheel movement in lines (positive = up).
	Scroll func(lines float64)
	// CursorMoved reports the cursor position in pixels.
	CursorMoved func(x, y float64)
	// DragButton reports the primary button state for camera panning.
	DragButton func(pressed bool)
	// Key reports a control key press.
	Key func(k Key)
}
