//go:build js

package platform

import (
	"fmt"
	"syscall/js"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the browser provider: the WebGPU surface is created on the
// page's canvas and frames are driven by requestAnimationFrame.
type Window struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	canvas   js.Value
	cb       Callbacks
	done     chan error
}

// New acquires the WebGPU surface on the document canvas. width/height and
// title are ignored; the page controls the canvas geometry.
func New(width, height int, title string) (*Window, error) {
	w := &Window{done: make(chan error, 1)}
	w.instance = wgpu.CreateInstance(nil)
	// An empty descriptor selects the page canvas on js.
	w.surface = w.instance.CreateSurface(&wgpu.SurfaceDescriptor{})
	var cctx any = w.surface.CanvasContext()
	w.canvas = cctx.(js.Value).Get("canvas")

	var err error
	w.adapter, err = w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("platform: request adapter: %w", err)
	}
	w.device, err = w.adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("platform: request device: %w", err)
	}

	w.listen()
	return w, nil
}

// listen wires DOM events to the installed callbacks.
func (w *Window) listen() {
	doc := js.Global().Get("document")

	w.canvas.Call("addEventListener", "wheel", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.Scroll != nil {
			// deltaY is in pixels and positive when scrolling down;
			// normalize to wheel lines, up positive, like glfw.
			w.cb.Scroll(-args[0].Get("deltaY").Float() / 100)
		}
		args[0].Call("preventDefault")
		return nil
	}), map[string]any{"passive": false})

	w.canvas.Call("addEventListener", "mousedown", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.DragButton != nil && args[0].Get("button").Int() == 0 {
			w.cb.DragButton(true)
		}
		return nil
	}))
	w.canvas.Call("addEventListener", "mouseup", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.DragButton != nil && args[0].Get("button").Int() == 0 {
			w.cb.DragButton(false)
		}
		return nil
	}))
	w.canvas.Call("addEventListener", "mouseleave", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.DragButton != nil {
			w.cb.DragButton(false)
		}
		return nil
	}))
	w.canvas.Call("addEventListener", "mousemove", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.CursorMoved != nil {
			w.cb.CursorMoved(args[0].Get("offsetX").Float(), args[0].Get("offsetY").Float())
		}
		return nil
	}))

	doc.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.Key == nil {
			return nil
		}
		switch args[0].Get("key").String() {
		case "ArrowUp":
			w.cb.Key(KeyUp)
		case "ArrowDown":
			w.cb.Key(KeyDown)
		case "r", "R":
			w.cb.Key(KeyReset)
		}
		return nil
	}))

	js.Global().Get("window").Call("addEventListener", "resize", js.FuncOf(func(this js.Value, args []js.Value) any {
		if w.cb.Resize != nil {
			width, height := w.Size()
			if width > 0 && height > 0 {
				w.cb.Resize(width, height)
			}
		}
		return nil
	}))
}

// SetCallbacks installs the event hooks. Call before Run.
func (w *Window) SetCallbacks(cb Callbacks) {
	w.cb = cb
}

// Surface returns the WebGPU surface for the canvas.
func (w *Window) Surface() *wgpu.Surface { return w.surface }

// Adapter returns the WebGPU adapter compatible with the surface.
func (w *Window) Adapter() *wgpu.Adapter { return w.adapter }

// Device returns the WebGPU device.
func (w *Window) Device() *wgpu.Device { return w.device }

// Size returns the canvas size in device pixels.
func (w *Window) Size() (width, height uint32) {
	return uint32(w.canvas.Get("width").Int()), uint32(w.canvas.Get("height").Int())
}

// Run drives the frame loop through requestAnimationFrame. Blocks until
// frame returns an error (the browser tab closing ends the program anyway).
func (w *Window) Run(frame func() error) error {
	var raf js.Func
	raf = js.FuncOf(func(this js.Value, args []js.Value) any {
		if err := frame(); err != nil {
			w.done <- err
			return nil
		}
		js.Global().Call("requestAnimationFrame", raf)
		return nil
	})
	js.Global().Call("requestAnimationFrame", raf)
	return <-w.done
}

// Terminate releases the GPU handles.
func (w *Window) Terminate() {
	if w.device != nil {
		w.device.Release()
		w.device = nil
	}
	if w.adapter != nil {
		w.adapter.Release()
		w.adapter = nil
	}
	if w.surface != nil {
		w.surface.Release()
		w.surface = nil
	}
	if w.instance != nil {
		w.instance.Release()
		w.instance = nil
	}
}
