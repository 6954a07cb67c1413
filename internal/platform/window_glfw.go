//go:build !js

package platform

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// Window is the native desktop provider: a glfw window with a WebGPU surface
// created from it.
type Window struct {
	win      *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	cb       Callbacks
}

// New opens a window of the given size and acquires the WebGPU
// surface/adapter/device for it. Must be called from the main goroutine.
func New(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}

	w := &Window{win: win}
	w.instance = wgpu.CreateInstance(nil)
	w.surface = w.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	w.adapter, err = w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: w.surface,
	})
	if err != nil {
		w.Terminate()
		return nil, fmt.Errorf("platform: request adapter: %w", err)
	}
	w.device, err = w.adapter.RequestDevice(nil)
	if err != nil {
		w.Terminate()
		return nil, fmt.Errorf("platform: request device: %w", err)
	}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.cb.Resize != nil && width > 0 && height > 0 {
			w.cb.Resize(uint32(width), uint32(height))
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.cb.Scroll != nil {
			w.cb.Scroll(yoff)
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.cb.CursorMoved != nil {
			w.cb.CursorMoved(x, y)
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if w.cb.DragButton != nil && button == glfw.MouseButtonLeft {
			w.cb.DragButton(action == glfw.Press)
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if w.cb.Key == nil || action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyUp:
			w.cb.Key(KeyUp)
		case glfw.KeyDown:
			w.cb.Key(KeyDown)
		case glfw.KeyR:
			w.cb.Key(KeyReset)
		}
	})
	return w, nil
}

// SetCallbacks installs the event hooks. Call before Run.
func (w *Window) SetCallbacks(cb Callbacks) {
	w.cb = cb
}

// Surface returns the WebGPU surface for this window.
func (w *Window) Surface() *wgpu.Surface { return w.surface }

// Adapter returns the WebGPU adapter compatible with the surface.
func (w *Window) Adapter() *wgpu.Adapter { return w.adapter }

// Device returns the WebGPU device.
func (w *Window) Device() *wgpu.Device { return w.device }

// Size returns the current framebuffer size in pixels.
func (w *Window) Size() (width, height uint32) {
	fw, fh := w.win.GetFramebufferSize()
	return uint32(fw), uint32(fh)
}

// Run drives the frame loop: each iteration polls events and calls frame.
// Returns when the window is closed or frame reports an error.
func (w *Window) Run(frame func() error) error {
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}

// Terminate releases the GPU handles and destroys the window. Must be the
// last platform call.
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
	w.win.Destroy()
	glfw.Terminate()
}
