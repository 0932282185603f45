package glvm

import (
	"github.com/archlab/cmdvm/internal/dispatch"
	"github.com/archlab/cmdvm/vm"
)

// executeH dispatches one H-command: a late-binding composite opcode
// whose arguments are pointers to caller-owned state blocks rather
// than baked-in values. Each block is read fresh at replay time, so
// the same fragment can draw or set state differently from one frame
// to the next without re-recording anything.
func executeH(t *Table, c *Cache, in vm.Instruction) {
	a := in.Args

	switch in.Code {
	case vm.HDrawArrays:
		hDrawArrays(t, a)
	case vm.HDrawElements:
		hDrawElements(t, a)
	case vm.HDrawArraysIndirect:
		hDrawArraysIndirect(t, a)
	case vm.HDrawElementsIndirect:
		hDrawElementsIndirect(t, a)
	case vm.HSetDepthTest:
		hSetDepthTest(t, c, a)
	case vm.HSetDepthBias:
		hSetDepthBias(t, c, a)
	case vm.HSetCullFace:
		hSetCullFace(t, c, a)
	case vm.HSetPolygonMode:
		hSetPolygonMode(t, c, a)
	case vm.HSetBlendMode:
		hSetBlendMode(t, c, a)
	case vm.HSetStencilMode:
		hSetStencilMode(t, c, a)
	case vm.HSetConservativeRaster:
		hSetToggle(t, c, a, (*Cache).HShouldSetConservativeRaster, glConservativeRasterNV)
	case vm.HSetMultisample:
		hSetToggle(t, c, a, (*Cache).HShouldSetMultisample, glMultisample)
	case vm.HBindTextures:
		hBindTextures(t, a)
	case vm.HBindSamplers:
		hBindSamplers(t, a)
	case vm.HBindVertexAttributes:
		hBindVertexAttributes(t, c, a)
	default:
		defaultDiag().UnknownOpcode(int(in.Code))
	}
}

func setBeginMode(t *Table, mode *BeginMode) {
	if mode.Mode == PatchesMode {
		dispatch.Call(t.PatchParameteri, 0x8E72, mode.PatchVertices) // GL_PATCH_VERTICES
	}
}

func hDrawArrays(t *Table, a [vm.MaxArgs]uintptr) {
	stats := ptrOf[RuntimeStats](a[0])
	isActive := ptrOf[bool](a[1])
	if isActive == nil || !*isActive {
		return
	}
	mode := ptrOf[BeginMode](a[2])
	list := ptrOf[DrawCallInfoList](a[3])
	if mode == nil || list == nil {
		return
	}
	setBeginMode(t, mode)

	for _, call := range list.Calls {
		if stats != nil {
			stats.DrawCalls++
			stats.EffectiveDrawCalls += call.InstanceCount
		}
		if call.InstanceCount != 1 || call.FirstInstance != 0 {
			dispatch.Call(t.DrawArraysInstancedBaseInstance, mode.Mode,
				uintptr(call.FirstIndex), uintptr(call.FaceVertexCount),
				uintptr(call.InstanceCount), uintptr(call.FirstInstance))
		} else {
			dispatch.Call(t.DrawArrays, mode.Mode, uintptr(call.FirstIndex), uintptr(call.FaceVertexCount))
		}
	}
}

func hDrawElements(t *Table, a [vm.MaxArgs]uintptr) {
	stats := ptrOf[RuntimeStats](a[0])
	isActive := ptrOf[bool](a[1])
	if isActive == nil || !*isActive {
		return
	}
	mode := ptrOf[BeginMode](a[2])
	indexType := a[3]
	list := ptrOf[DrawCallInfoList](a[4])
	if mode == nil || list == nil {
		return
	}
	setBeginMode(t, mode)

	elemSize := indexElementSize(indexType)
	for _, call := range list.Calls {
		if stats != nil {
			stats.DrawCalls++
			stats.EffectiveDrawCalls += call.InstanceCount
		}
		offset := uintptr(call.FirstIndex) * elemSize
		switch {
		case call.InstanceCount != 1 || call.FirstInstance != 0:
			dispatch.Call(t.DrawElementsInstancedBaseVertexBaseInstance, mode.Mode,
				uintptr(call.FaceVertexCount), indexType, offset,
				uintptr(call.InstanceCount), uintptr(call.BaseVertex), uintptr(call.FirstInstance))
		case call.BaseVertex != 0:
			dispatch.Call(t.DrawElementsBaseVertex, mode.Mode, uintptr(call.FaceVertexCount),
				indexType, offset, uintptr(call.BaseVertex))
		default:
			dispatch.Call(t.DrawElementsInstanced, mode.Mode, uintptr(call.FaceVertexCount),
				indexType, offset, 1)
		}
	}
}

func hDrawArraysIndirect(t *Table, a [vm.MaxArgs]uintptr) {
	stats := ptrOf[RuntimeStats](a[0])
	isActive := ptrOf[bool](a[1])
	if isActive == nil || !*isActive {
		return
	}
	mode := ptrOf[BeginMode](a[2])
	args := ptrOf[IndirectDrawArgs](a[3])
	if mode == nil || args == nil || args.Handle == 0 || args.Count == 0 {
		return
	}
	setBeginMode(t, mode)

	dispatch.Call(t.BindBuffer, glDrawIndirectBuffer, args.Handle)
	if t.MultiDrawArraysIndirect.Valid() {
		dispatch.Call(t.MultiDrawArraysIndirect, mode.Mode, args.Offset, uintptr(args.Count), args.Stride)
	} else {
		for i := 0; i < args.Count; i++ {
			offset := args.Offset + uintptr(i)*args.Stride
			dispatch.Call(t.DrawArraysIndirect, mode.Mode, offset)
		}
	}
	dispatch.Call(t.BindBuffer, glDrawIndirectBuffer, 0)

	if stats != nil {
		stats.DrawCalls++
		stats.EffectiveDrawCalls += args.Count
	}
}

func hDrawElementsIndirect(t *Table, a [vm.MaxArgs]uintptr) {
	stats := ptrOf[RuntimeStats](a[0])
	isActive := ptrOf[bool](a[1])
	if isActive == nil || !*isActive {
		return
	}
	mode := ptrOf[BeginMode](a[2])
	indexType := a[3]
	args := ptrOf[IndirectDrawArgs](a[4])
	if mode == nil || args == nil || args.Handle == 0 || args.Count == 0 {
		return
	}
	setBeginMode(t, mode)

	dispatch.Call(t.BindBuffer, glDrawIndirectBuffer, args.Handle)
	if t.MultiDrawElementsIndirect.Valid() {
		dispatch.Call(t.MultiDrawElementsIndirect, mode.Mode, indexType, args.Offset, uintptr(args.Count), args.Stride)
	} else {
		for i := 0; i < args.Count; i++ {
			offset := args.Offset + uintptr(i)*args.Stride
			dispatch.Call(t.DrawElementsIndirect, mode.Mode, indexType, offset)
		}
	}
	dispatch.Call(t.BindBuffer, glDrawIndirectBuffer, 0)

	if stats != nil {
		stats.DrawCalls++
		stats.EffectiveDrawCalls += args.Count
	}
}

func hSetDepthTest(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	mode := ptrOf[DepthTestMode](a[0])
	if c != nil && !c.HShouldSetDepthTest(mode) {
		return
	}
	if mode == nil || mode.Comparison == 0 {
		dispatch.Call(t.Disable, glDepthTest)
		dispatch.Call(t.Disable, glDepthClamp)
		return
	}
	dispatch.Call(t.Enable, glDepthTest)
	dispatch.Call(t.DepthFunc, mode.Comparison)
	if mode.Clamp {
		dispatch.Call(t.Enable, glDepthClamp)
	} else {
		dispatch.Call(t.Disable, glDepthClamp)
	}
}

func hSetDepthBias(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	info := ptrOf[DepthBiasInfo](a[0])
	if c != nil && !c.HShouldSetDepthBias(info) {
		return
	}
	if info == nil || (info.Constant == 0 && info.SlopeScale == 0) {
		dispatch.Call(t.Disable, glPolygonOffsetFill)
		dispatch.Call(t.Disable, glPolygonOffsetLine)
		dispatch.Call(t.Disable, glPolygonOffsetPoint)
		return
	}
	dispatch.Call(t.Enable, glPolygonOffsetFill)
	dispatch.Call(t.Enable, glPolygonOffsetLine)
	dispatch.Call(t.Enable, glPolygonOffsetPoint)
	if t.PolygonOffsetClamp.Valid() {
		dispatch.Call(t.PolygonOffsetClamp, vm.Float32ToArg(info.SlopeScale), vm.Float32ToArg(info.Constant), vm.Float32ToArg(info.Clamp))
	} else {
		dispatch.Call(t.PolygonOffset, vm.Float32ToArg(info.SlopeScale), vm.Float32ToArg(info.Constant))
	}
}

func hSetCullFace(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	mode := ptrOf[CullFaceMode](a[0])
	if c != nil && !c.HShouldSetCullFace(mode) {
		return
	}
	if mode == nil || !mode.Enabled {
		dispatch.Call(t.Disable, glCullFaceFlag)
		return
	}
	dispatch.Call(t.Enable, glCullFaceFlag)
	dispatch.Call(t.CullFace, mode.Face)
}

func hSetPolygonMode(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	mode := ptrOf[uintptr](a[0])
	if c != nil && !c.HShouldSetPolygonMode(mode) {
		return
	}
	if mode == nil {
		return
	}
	dispatch.Call(t.PolygonMode, glFrontAndBack, *mode)
}

func hSetBlendMode(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	mode := ptrOf[BlendMode](a[0])
	if c != nil && !c.HShouldSetBlendMode(mode) {
		return
	}
	if mode == nil || !mode.Enabled {
		dispatch.Call(t.Disable, glBlend)
		return
	}
	dispatch.Call(t.Enable, glBlend)
	dispatch.Call(t.BlendFuncSeparate, mode.SrcRGB, mode.DstRGB, mode.SrcA, mode.DstA)
	dispatch.Call(t.BlendEquationSeparate, mode.OpRGB, mode.OpA)
}

func hSetStencilMode(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	mode := ptrOf[StencilMode](a[0])
	if c != nil && !c.HShouldSetStencilMode(mode) {
		return
	}
	if mode == nil || !mode.Enabled {
		dispatch.Call(t.Disable, glStencilTest)
		return
	}
	dispatch.Call(t.Enable, glStencilTest)
	setStencilFace(t, glFront, mode.Front)
	setStencilFace(t, glBack, mode.Back)
}

func setStencilFace(t *Table, face uintptr, m StencilFaceMode) {
	dispatch.Call(t.StencilFuncSeparate, face, m.Cmp, m.Ref, m.Mask)
	dispatch.Call(t.StencilOpSeparate, face, m.SFail, m.DFail, m.Pass)
}

func hSetToggle(t *Table, c *Cache, a [vm.MaxArgs]uintptr, should func(*Cache, any) bool, glFlag uintptr) {
	enabled := ptrOf[bool](a[0])
	if c != nil && !should(c, enabled) {
		return
	}
	if enabled == nil || !*enabled {
		dispatch.Call(t.Disable, glFlag)
		return
	}
	dispatch.Call(t.Enable, glFlag)
}

// hBindTextures batch-binds starting at unit first. Not redundancy
// cached: the original never tracked these per H-command, so every
// call is always emitted.
func hBindTextures(t *Table, a [vm.MaxArgs]uintptr) {
	first := a[0]
	count := int(a[1])
	targets := ptrOf[uintptr](a[2])
	textures := ptrOf[uintptr](a[3])
	if count <= 0 {
		return
	}
	if t.BindTextures.Valid() && textures != nil {
		dispatch.Call(t.BindTextures, first, uintptr(count), ptrToArg(textures))
		return
	}
	targetSlice := unsafeSliceUintptr(targets, count)
	textureSlice := unsafeSliceUintptr(textures, count)
	for i := 0; i < count; i++ {
		var target, handle uintptr
		if targetSlice != nil {
			target = targetSlice[i]
		}
		if textureSlice != nil {
			handle = textureSlice[i]
		}
		dispatch.Call(t.ActiveTexture, first+uintptr(i))
		dispatch.Call(t.BindTexture, target, handle)
	}
}

func hBindSamplers(t *Table, a [vm.MaxArgs]uintptr) {
	first := a[0]
	count := int(a[1])
	samplers := ptrOf[uintptr](a[2])
	if count <= 0 {
		return
	}
	if t.BindSamplers.Valid() && samplers != nil {
		dispatch.Call(t.BindSamplers, first, uintptr(count), ptrToArg(samplers))
		return
	}
	samplerSlice := unsafeSliceUintptr(samplers, count)
	for i := 0; i < count; i++ {
		var handle uintptr
		if samplerSlice != nil {
			handle = samplerSlice[i]
		}
		dispatch.Call(t.BindSampler, first+uintptr(i), handle)
	}
}

func hBindVertexAttributes(t *Table, c *Cache, a [vm.MaxArgs]uintptr) {
	ctx := ContextID(a[0])
	binding := ptrOf[VertexInputBinding](a[1])

	if c != nil && !c.HShouldBindVertexAttributes(binding) {
		return
	}
	if binding == nil {
		dispatch.Call(t.BindVertexArray, 0)
		return
	}

	if binding.VAOHandle != 0 && binding.VAOContext == ctx {
		dispatch.Call(t.BindVertexArray, binding.VAOHandle)
		for _, val := range binding.ValueBindings {
			dispatch.Call(t.VertexAttrib4f, val.Location,
				vm.Float32ToArg(val.X), vm.Float32ToArg(val.Y), vm.Float32ToArg(val.Z), vm.Float32ToArg(val.W))
		}
		return
	}

	if binding.VAOHandle != 0 {
		enqueueOrphanVAO(binding.VAOContext, binding.VAOHandle)
	}

	var handle uintptr
	dispatch.Call(t.GenVertexArrays, 1, ptrToArg(&handle))
	dispatch.Call(t.BindVertexArray, handle)

	if binding.IndexBuffer != 0 {
		dispatch.Call(t.BindBuffer, 0x8893, binding.IndexBuffer) // GL_ELEMENT_ARRAY_BUFFER
	}
	for _, vb := range binding.BufferBindings {
		dispatch.Call(t.BindBuffer, 0x8892, vb.Buffer) // GL_ARRAY_BUFFER

		size := vb.Components
		if vb.IsBGRA {
			size = glBGRA
		}
		if vb.IsInteger {
			dispatch.Call(t.VertexAttribIPointer, vb.Location, size, vb.Type, vb.Stride, vb.Offset)
		} else {
			dispatch.Call(t.VertexAttribPointer, vb.Location, size, vb.Type,
				boolArg(vb.Normalized), vb.Stride, vb.Offset)
		}

		dispatch.Call(t.EnableVertexAttribArray, vb.Location)
		if vb.Divisor != 0 {
			dispatch.Call(t.VertexAttribDivisor, vb.Location, vb.Divisor)
		}
	}
	for _, val := range binding.ValueBindings {
		dispatch.Call(t.VertexAttrib4f, val.Location,
			vm.Float32ToArg(val.X), vm.Float32ToArg(val.Y), vm.Float32ToArg(val.Z), vm.Float32ToArg(val.W))
	}

	binding.VAOHandle = handle
	binding.VAOContext = ctx
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}
