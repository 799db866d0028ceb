package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/mesh"
	"github.com/Carmen-Shannon/loki-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32

	cameraBuffer *wgpu.Buffer
	modelBuffer  *wgpu.Buffer

	texture     *wgpu.Texture
	textureView *wgpu.TextureView
	sampler     *wgpu.Sampler

	vertexModule    *wgpu.ShaderModule
	fragmentModule  *wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup
	pipelineLayout  *wgpu.PipelineLayout
	pipeline        *wgpu.RenderPipeline
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(color [4]float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: color[0], G: color[1], B: color[2], A: color[3]}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			return err
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		return err
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) InitMesh(vertices, indices []byte, indexCount uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Cube Vertex Buffer",
		Size:  uint64(len(vertices)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vb, 0, vertices)
	b.vertexBuffer = vb

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Cube Index Buffer",
		Size:  uint64(len(indices)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(ib, 0, indices)
	b.indexBuffer = ib
	b.indexCount = indexCount

	return nil
}

func (b *wgpuRendererBackendImpl) InitUniforms(cameraSize, modelSize uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  cameraSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.cameraBuffer = cb

	mb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Model Uniform Buffer",
		Size:  modelSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.modelBuffer = mb

	return nil
}

func (b *wgpuRendererBackendImpl) InitTexture(stagingData common.TextureStagingData, samplerStagingData SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	extent := wgpu.Extent3D{
		Width:              stagingData.Width,
		Height:             stagingData.Height,
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Cube Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          extent,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	b.texture = tex

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&extent,
	)

	b.textureView, err = tex.CreateView(nil)
	if err != nil {
		return err
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Cube Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(samplerStagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerStagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerStagingData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   samplerStagingData.LodMinClamp,
		LodMaxClamp:   common.Coalesce(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerStagingData.MaxAnisotropy, 1),
	})
	return err
}

func (b *wgpuRendererBackendImpl) InitPipeline(vertexShader, fragmentShader shader.Shader) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cameraBuffer == nil || b.textureView == nil {
		return errors.New("uniforms and texture must be initialized before the pipeline")
	}

	vs, err := vertexShader.Compile(b.device)
	if err != nil {
		return err
	}
	b.vertexModule = vs
	fs, err := fragmentShader.Compile(b.device)
	if err != nil {
		return err
	}
	b.fragmentModule = fs

	layoutEntries := []wgpu.BindGroupLayoutEntry{
		{Binding: BindingCamera, Visibility: wgpu.ShaderStageVertex},
		{Binding: BindingModel, Visibility: wgpu.ShaderStageVertex},
		{Binding: BindingTexture, Visibility: wgpu.ShaderStageFragment},
		{Binding: BindingSampler, Visibility: wgpu.ShaderStageFragment},
	}
	layoutEntries[BindingCamera].Buffer.Type = wgpu.BufferBindingTypeUniform
	layoutEntries[BindingModel].Buffer.Type = wgpu.BufferBindingTypeUniform
	layoutEntries[BindingTexture].Texture.SampleType = wgpu.TextureSampleTypeFloat
	layoutEntries[BindingTexture].Texture.ViewDimension = wgpu.TextureViewDimension2D
	layoutEntries[BindingSampler].Sampler.Type = wgpu.SamplerBindingTypeFiltering

	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Cube Bind Group Layout",
		Entries: layoutEntries,
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	b.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Cube Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: BindingCamera, Buffer: b.cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: BindingModel, Buffer: b.modelBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: BindingTexture, TextureView: b.textureView},
			{Binding: BindingSampler, Sampler: b.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Cube Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return err
	}

	var v mesh.Vertex
	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Cube Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(v.Size()),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: mesh.PositionOffset, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: mesh.TexCoordOffset, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x3, Offset: mesh.NormalOffset, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

func (b *wgpuRendererBackendImpl) WriteCamera(offset uint64, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cameraBuffer == nil {
		return
	}
	b.queue.WriteBuffer(b.cameraBuffer, offset, data)
}

func (b *wgpuRendererBackendImpl) WriteModel(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.modelBuffer == nil {
		return
	}
	b.queue.WriteBuffer(b.modelBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) DrawFrame(drawMesh bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipeline == nil {
		return errors.New("pipeline not initialized")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// With MSAA the swapchain view is the resolve target, otherwise it is drawn to directly.
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	if drawMesh {
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, b.bindGroup, nil)
		pass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(b.indexCount, 1, 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	release(&b.pipeline)
	release(&b.pipelineLayout)
	release(&b.bindGroup)
	release(&b.bindGroupLayout)
	release(&b.fragmentModule)
	release(&b.vertexModule)
	release(&b.sampler)
	release(&b.textureView)
	release(&b.texture)
	release(&b.modelBuffer)
	release(&b.cameraBuffer)
	release(&b.indexBuffer)
	release(&b.vertexBuffer)
	b.releaseTargets()
	b.queue = nil
	release(&b.device)
	release(&b.adapter)
	release(&b.surface)
	release(&b.instance)
}

// releaseTargets frees the size-dependent render targets. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	release(&b.depthTextureView)
	release(&b.depthTexture)
	release(&b.msaaTextureView)
	release(&b.msaaTexture)
}

type releaser interface {
	Release()
}

// release frees the object behind p, if any, and clears the field.
func release[T any, P interface {
	*T
	releaser
}](p *P) {
	if *p != nil {
		(*p).Release()
		*p = nil
	}
}
