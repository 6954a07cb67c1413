// Package render owns the two WebGPU pipelines (generic colored mesh and
// per-body circle clipping) and turns encoded frame data into draw calls.
// Pipelines, layouts, and buffers are created once and reused; only buffer
// contents change per frame.
package render

import (
	_ "embed"
	"errors"
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"gravity-sim/internal/frame"
)

//go:embed shaders/generic.wgsl
var genericWGSL string

//go:embed shaders/circle.wgsl
var circleWGSL string

// ErrDeviceLost indicates the GPU device could not produce a frame for many
// consecutive attempts even after surface reconfiguration. It is fatal for
// the session: the driver should tear down rather than retry silently.
var ErrDeviceLost = errors.New("render: gpu device or surface lost")

// maxFrameFailures is the number of consecutive frame failures tolerated
// (logged and skipped) before the session is declared lost. A transient
// surface loss recovers within a frame or two via reconfiguration; only a
// dead device keeps failing long enough to reach this cap.
const maxFrameFailures = 60

// clearColor is the background, matching the near-black the original scene
// reads best against.
var clearColor = wgpu.Color{R: 0.05, G: 0.05, B: 0.05, A: 1.0}

// Logger is the subset of the logger the renderer needs. A nil Logger
// disables logging.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// circleSlot is one per-entity uniform slot: a small uniform buffer and the
// bind group that exposes it at group(1). Slots are allocated once as the
// body count grows and reused every frame with rewritten contents.
type circleSlot struct {
	buffer *wgpu.Buffer
	group  *wgpu.BindGroup
}

// Renderer issues the per-frame draw sequence against the provided GPU
// device/queue/surface. It never touches simulation state; a failed frame is
// logged and skipped so stepping continues untouched.
type Renderer struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  wgpu.SurfaceConfiguration
	log     Logger

	genericShader *wgpu.ShaderModule
	circleShader  *wgpu.ShaderModule

	viewLayout   *wgpu.BindGroupLayout
	circleLayout *wgpu.BindGroupLayout

	genericPipeline *wgpu.RenderPipeline
	circlePipeline  *wgpu.RenderPipeline

	viewBuffer *wgpu.Buffer
	viewGroup  *wgpu.BindGroup

	slots []circleSlot

	vertexBuffer *wgpu.Buffer
	vertexCap    int // capacity in vertices
	indexBuffer  *wgpu.Buffer
	indexCap     int // capacity in indices

	// DrawQuads additionally runs the generic pass over the bounding quads,
	// showing the raw geometry under the clipped circles. Debug aid; the
	// circle pass alone is the normal presentation.
	DrawQuads bool

	failures int
}

// vertexLayout describes frame.Vertex to the vertex stage: location 0 =
// position vec3, location 1 = color vec4.
var vertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(frame.Vertex{})),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Sizeof([3]float32{})), ShaderLocation: 1},
	},
}

// alphaBlend is src-alpha-over blending for both pipelines, so the circle
// pass's transparent pixels leave the background intact.
var alphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// New creates the pipelines, bind group layouts, and the shared view uniform
// buffer against the provided device/queue/surface. width/height are the
// initial surface size in pixels.
func New(surface *wgpu.Surface, adapter *wgpu.Adapter, device *wgpu.Device, width, height uint32, log Logger) (*Renderer, error) {
	r := &Renderer{
		surface: surface,
		adapter: adapter,
		device:  device,
		queue:   device.GetQueue(),
		log:     log,
	}

	caps := surface.GetCapabilities(adapter)
	r.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &r.config)

	var err error
	r.genericShader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "generic shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: genericWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("render: generic shader: %w", err)
	}
	r.circleShader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "circle shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: circleWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("render: circle shader: %w", err)
	}

	r.viewLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "view bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("render: view layout: %w", err)
	}
	r.circleLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "circle bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("render: circle layout: %w", err)
	}

	r.viewBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "view uniform buffer",
		Size:  uint64(unsafe.Sizeof(frame.ViewUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: view buffer: %w", err)
	}
	r.viewGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "view bind group",
		Layout: r.viewLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  r.viewBuffer,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("render: view bind group: %w", err)
	}

	if err := r.createPipelines(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) createPipelines() error {
	genericLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "generic pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.viewLayout},
	})
	if err != nil {
		return fmt.Errorf("render: generic pipeline layout: %w", err)
	}
	defer genericLayout.Release()

	circleLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "circle pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.viewLayout, r.circleLayout},
	})
	if err != nil {
		return fmt.Errorf("render: circle pipeline layout: %w", err)
	}
	defer circleLayout.Release()

	primitive := wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
	multisample := wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF}
	target := wgpu.ColorTargetState{
		Format:    r.config.Format,
		Blend:     &alphaBlend,
		WriteMask: wgpu.ColorWriteMaskAll,
	}

	r.genericPipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "generic pipeline",
		Layout: genericLayout,
		Vertex: wgpu.VertexState{
			Module:     r.genericShader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     r.genericShader,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive:   primitive,
		Multisample: multisample,
	})
	if err != nil {
		return fmt.Errorf("render: generic pipeline: %w", err)
	}

	r.circlePipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "circle pipeline",
		Layout: circleLayout,
		Vertex: wgpu.VertexState{
			Module:     r.genericShader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     r.circleShader,
			EntryPoint: "circle_fs",
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive:   primitive,
		Multisample: multisample,
	})
	if err != nil {
		return fmt.Errorf("render: circle pipeline: %w", err)
	}
	return nil
}

// Resize reconfigures the surface for a new pixel size. Zero sizes (minimized
// window) are ignored. The caller is responsible for also updating the
// world's aspect ratio.
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.surface.Configure(r.adapter, r.device, &r.config)
}

// ensureSlots grows the per-entity uniform slot pool to at least n slots.
// Existing slots keep their buffers and bind groups; only contents are
// rewritten each frame.
func (r *Renderer) ensureSlots(n int) error {
	for len(r.slots) < n {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("circle uniform %d", len(r.slots)),
			Size:  uint64(unsafe.Sizeof(frame.CircleUniform{})),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("render: circle buffer: %w", err)
		}
		group, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  fmt.Sprintf("circle bind group %d", len(r.slots)),
			Layout: r.circleLayout,
			Entries: []wgpu.BindGroupEntry{{
				Binding: 0,
				Buffer:  buf,
				Size:    wgpu.WholeSize,
			}},
		})
		if err != nil {
			buf.Release()
			return fmt.Errorf("render: circle bind group: %w", err)
		}
		r.slots = append(r.slots, circleSlot{buffer: buf, group: group})
	}
	return nil
}

// ensureGeometry sizes the shared vertex/index buffers for the frame,
// reallocating only when the body count grows past current capacity.
func (r *Renderer) ensureGeometry(nVerts, nIdx int) error {
	if nVerts > r.vertexCap {
		if r.vertexBuffer != nil {
			r.vertexBuffer.Release()
		}
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "body vertex buffer",
			Size:  uint64(nVerts) * uint64(unsafe.Sizeof(frame.Vertex{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("render: vertex buffer: %w", err)
		}
		r.vertexBuffer = buf
		r.vertexCap = nVerts
	}
	if nIdx > r.indexCap {
		if r.indexBuffer != nil {
			r.indexBuffer.Release()
		}
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "body index buffer",
			Size:  uint64(nIdx) * 2,
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("render: index buffer: %w", err)
		}
		r.indexBuffer = buf
		r.indexCap = nIdx
	}
	return nil
}

// Frame uploads the encoded frame data and issues the draw sequence:
// clear, optional generic pass over all quads, then one circle-clip draw per
// body with that body's uniform slot bound at group 1.
//
// Transient failures (buffer writes, surface acquisition, submission) are
// logged and the frame is skipped; simulation state is never affected. A
// lost surface is reconfigured so the next acquisition can succeed; only
// maxFrameFailures consecutive failures escalate to ErrDeviceLost.
func (r *Renderer) Frame(fd *frame.FrameData) error {
	if err := r.drawFrame(fd); err != nil {
		if r.log != nil {
			r.log.Errorf("frame skipped: %v", err)
		}
		return r.noteFailure()
	}
	r.failures = 0
	return nil
}

// noteFailure records one skipped frame and escalates to ErrDeviceLost once
// maxFrameFailures consecutive frames have failed.
func (r *Renderer) noteFailure() error {
	r.failures++
	if r.failures >= maxFrameFailures {
		return ErrDeviceLost
	}
	return nil
}

func (r *Renderer) drawFrame(fd *frame.FrameData) error {
	n := len(fd.Circles)
	if err := r.ensureSlots(n); err != nil {
		return err
	}
	if err := r.ensureGeometry(len(fd.Vertices), len(fd.Indices)); err != nil {
		return err
	}

	if err := r.queue.WriteBuffer(r.viewBuffer, 0, wgpu.ToBytes([]frame.ViewUniform{fd.View})); err != nil {
		return fmt.Errorf("view uniform write: %w", err)
	}
	if n > 0 {
		if err := r.queue.WriteBuffer(r.vertexBuffer, 0, wgpu.ToBytes(fd.Vertices)); err != nil {
			return fmt.Errorf("vertex write: %w", err)
		}
		if err := r.queue.WriteBuffer(r.indexBuffer, 0, wgpu.ToBytes(fd.Indices)); err != nil {
			return fmt.Errorf("index write: %w", err)
		}
		for i, c := range fd.Circles {
			if err := r.queue.WriteBuffer(r.slots[i].buffer, 0, wgpu.ToBytes([]frame.CircleUniform{c})); err != nil {
				return fmt.Errorf("circle uniform %d write: %w", i, err)
			}
		}
	}

	tex, err := r.surface.GetCurrentTexture()
	if err != nil {
		// A lost or outdated surface usually comes back after
		// reconfiguration, so restore it here rather than waiting for a
		// resize event that may never arrive. A dead device keeps failing
		// regardless and runs into the consecutive-failure cap.
		r.surface.Configure(r.adapter, r.device, &r.config)
		return fmt.Errorf("surface texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("texture view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "body pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearColor,
		}},
	})
	if n > 0 {
		pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.SetBindGroup(0, r.viewGroup, nil)

		if r.DrawQuads {
			pass.SetPipeline(r.genericPipeline)
			pass.DrawIndexed(uint32(len(fd.Indices)), 1, 0, 0, 0)
		}

		pass.SetPipeline(r.circlePipeline)
		for i := range fd.Circles {
			pass.SetBindGroup(1, r.slots[i].group, nil)
			pass.DrawIndexed(6, 1, uint32(i*6), 0, 0)
		}
	}
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	r.queue.Submit(cmd)
	cmd.Release()

	r.surface.Present()
	return nil
}

// Release frees all GPU resources owned by the renderer, in reverse
// acquisition order. Safe to call once after the frame loop exits.
func (r *Renderer) Release() {
	for _, s := range r.slots {
		s.group.Release()
		s.buffer.Release()
	}
	r.slots = nil
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
	}
	if r.viewGroup != nil {
		r.viewGroup.Release()
	}
	if r.viewBuffer != nil {
		r.viewBuffer.Release()
	}
	if r.circlePipeline != nil {
		r.circlePipeline.Release()
	}
	if r.genericPipeline != nil {
		r.genericPipeline.Release()
	}
	if r.circleLayout != nil {
		r.circleLayout.Release()
	}
	if r.viewLayout != nil {
		r.viewLayout.Release()
	}
	if r.circleShader != nil {
		r.circleShader.Release()
	}
	if r.genericShader != nil {
		r.genericShader.Release()
	}
}
