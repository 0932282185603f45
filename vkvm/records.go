package vkvm

// Each record struct below overlays one packed command exactly: Header
// first, then fixed fields in declaration order. Array-typed fields are
// stored as byte offsets relative to the record's own base address,
// reconstructed via arrayAt at replay time.

type bindPipelineRecord struct {
	Header
	BindPoint uint32
	Pipeline  uintptr
}

// AppendBindPipeline encodes a direct (non-redundancy-checked) pipeline
// bind.
func AppendBindPipeline(frag *CommandFragment, bindPoint uint32, pipeline uintptr) {
	appendRecord(frag, BindPipeline, bindPipelineRecord{BindPoint: bindPoint, Pipeline: pipeline})
}

type bindDescriptorSetsRecord struct {
	Header
	BindPoint uint32
	Layout    uintptr
	FirstSet  uint32
	Count     uint32
	SetsOff   uint32 // offset to []uintptr of vk.DescriptorSet
}

func AppendBindDescriptorSets(frag *CommandFragment, bindPoint uint32, layout uintptr, firstSet uint32, sets []uintptr) {
	rec := bindDescriptorSetsRecord{BindPoint: bindPoint, Layout: layout, FirstSet: firstSet, Count: uint32(len(sets))}
	appendVariable(frag, BindDescriptorSets, &rec, &rec.SetsOff, sets)
}

type bindIndexBufferRecord struct {
	Header
	Buffer    uintptr
	Offset    uintptr
	IndexType uint32
}

func AppendBindIndexBuffer(frag *CommandFragment, buffer uintptr, offset uintptr, indexType uint32) {
	appendRecord(frag, BindIndexBuffer, bindIndexBufferRecord{Buffer: buffer, Offset: offset, IndexType: indexType})
}

type bindVertexBuffersRecord struct {
	Header
	FirstBinding uint32
	Count        uint32
	BuffersOff   uint32 // offset to []uintptr
	OffsetsOff   uint32 // offset to []uintptr
}

func AppendBindVertexBuffers(frag *CommandFragment, firstBinding uint32, buffers []uintptr, offsets []uintptr) {
	rec := bindVertexBuffersRecord{FirstBinding: firstBinding, Count: uint32(len(buffers))}
	appendTwoVariable(frag, BindVertexBuffers, &rec, &rec.BuffersOff, buffers, &rec.OffsetsOff, offsets)
}

type drawRecord struct {
	Header
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
}

func AppendDraw(frag *CommandFragment, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	appendRecord(frag, Draw, drawRecord{VertexCount: vertexCount, InstanceCount: instanceCount, FirstVertex: firstVertex, FirstInstance: firstInstance})
}

type drawIndexedRecord struct {
	Header
	IndexCount, InstanceCount, FirstIndex uint32
	VertexOffset                         int32
	FirstInstance                        uint32
}

func AppendDrawIndexed(frag *CommandFragment, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	appendRecord(frag, DrawIndexed, drawIndexedRecord{IndexCount: indexCount, InstanceCount: instanceCount, FirstIndex: firstIndex, VertexOffset: vertexOffset, FirstInstance: firstInstance})
}

type drawIndirectRecord struct {
	Header
	Buffer         uintptr
	Offset         uintptr
	DrawCount      uint32
	Stride         uint32
}

func AppendDrawIndirect(frag *CommandFragment, buffer uintptr, offset uintptr, drawCount, stride uint32) {
	appendRecord(frag, DrawIndirect, drawIndirectRecord{Buffer: buffer, Offset: offset, DrawCount: drawCount, Stride: stride})
}

func AppendDrawIndexedIndirect(frag *CommandFragment, buffer uintptr, offset uintptr, drawCount, stride uint32) {
	appendRecord(frag, DrawIndexedIndirect, drawIndirectRecord{Buffer: buffer, Offset: offset, DrawCount: drawCount, Stride: stride})
}

type dispatchRecord struct {
	Header
	X, Y, Z uint32
}

func AppendDispatch(frag *CommandFragment, x, y, z uint32) {
	appendRecord(frag, Dispatch, dispatchRecord{X: x, Y: y, Z: z})
}

type copyBufferRecord struct {
	Header
	Src, Dst           uintptr
	SrcOffset, DstOffset, Size uintptr
}

func AppendCopyBuffer(frag *CommandFragment, src, dst uintptr, srcOffset, dstOffset, size uintptr) {
	appendRecord(frag, CopyBuffer, copyBufferRecord{Src: src, Dst: dst, SrcOffset: srcOffset, DstOffset: dstOffset, Size: size})
}

type copyImageRecord struct {
	Header
	Src, Dst           uintptr
	SrcLayout, DstLayout uint32
	Width, Height, Depth uint32
}

func AppendCopyImage(frag *CommandFragment, src uintptr, srcLayout uint32, dst uintptr, dstLayout uint32, width, height, depth uint32) {
	appendRecord(frag, CopyImage, copyImageRecord{Src: src, DstLayout: dstLayout, Dst: dst, SrcLayout: srcLayout, Width: width, Height: height, Depth: depth})
}

type copyBufferToImageRecord struct {
	Header
	Buffer    uintptr
	Image     uintptr
	ImageLayout uint32
	Width, Height uint32
}

func AppendCopyBufferToImage(frag *CommandFragment, buffer, image uintptr, imageLayout uint32, width, height uint32) {
	appendRecord(frag, CopyBufferToImage, copyBufferToImageRecord{Buffer: buffer, Image: image, ImageLayout: imageLayout, Width: width, Height: height})
}

type blitImageRecord struct {
	Header
	Src, Dst             uintptr
	SrcLayout, DstLayout uint32
	Filter               uint32
}

func AppendBlitImage(frag *CommandFragment, src uintptr, srcLayout uint32, dst uintptr, dstLayout uint32, filter uint32) {
	appendRecord(frag, BlitImage, blitImageRecord{Src: src, SrcLayout: srcLayout, Dst: dst, DstLayout: dstLayout, Filter: filter})
}

type resolveImageRecord struct {
	Header
	Src, Dst             uintptr
	SrcLayout, DstLayout uint32
}

func AppendResolveImage(frag *CommandFragment, src uintptr, srcLayout uint32, dst uintptr, dstLayout uint32) {
	appendRecord(frag, ResolveImage, resolveImageRecord{Src: src, SrcLayout: srcLayout, Dst: dst, DstLayout: dstLayout})
}

type clearColorImageRecord struct {
	Header
	Image  uintptr
	Layout uint32
	R, G, B, A float32
}

func AppendClearColorImage(frag *CommandFragment, image uintptr, layout uint32, r, g, b, a float32) {
	appendRecord(frag, ClearColorImage, clearColorImageRecord{Image: image, Layout: layout, R: r, G: g, B: b, A: a})
}

type clearDepthStencilImageRecord struct {
	Header
	Image   uintptr
	Layout  uint32
	Depth   float32
	Stencil uint32
}

func AppendClearDepthStencilImage(frag *CommandFragment, image uintptr, layout uint32, depth float32, stencil uint32) {
	appendRecord(frag, ClearDepthStencilImage, clearDepthStencilImageRecord{Image: image, Layout: layout, Depth: depth, Stencil: stencil})
}

type eventRecord struct {
	Header
	Event uintptr
	Stage uint32
}

func AppendSetEvent(frag *CommandFragment, event uintptr, stage uint32) {
	appendRecord(frag, SetEvent, eventRecord{Event: event, Stage: stage})
}

func AppendResetEvent(frag *CommandFragment, event uintptr, stage uint32) {
	appendRecord(frag, ResetEvent, eventRecord{Event: event, Stage: stage})
}

type waitEventsRecord struct {
	Header
	Event               uintptr
	SrcStage, DstStage  uint32
}

func AppendWaitEvents(frag *CommandFragment, event uintptr, srcStage, dstStage uint32) {
	appendRecord(frag, WaitEvents, waitEventsRecord{Event: event, SrcStage: srcStage, DstStage: dstStage})
}

type pipelineBarrierRecord struct {
	Header
	SrcStage, DstStage uint32
	Dependency         uint32
}

func AppendPipelineBarrier(frag *CommandFragment, srcStage, dstStage, dependency uint32) {
	appendRecord(frag, PipelineBarrier, pipelineBarrierRecord{SrcStage: srcStage, DstStage: dstStage, Dependency: dependency})
}

type queryRecord struct {
	Header
	Pool  uintptr
	Query uint32
	Flags uint32
}

func AppendBeginQuery(frag *CommandFragment, pool uintptr, query uint32, flags uint32) {
	appendRecord(frag, BeginQuery, queryRecord{Pool: pool, Query: query, Flags: flags})
}

func AppendEndQuery(frag *CommandFragment, pool uintptr, query uint32) {
	appendRecord(frag, EndQuery, queryRecord{Pool: pool, Query: query})
}

type resetQueryPoolRecord struct {
	Header
	Pool        uintptr
	FirstQuery  uint32
	QueryCount  uint32
}

func AppendResetQueryPool(frag *CommandFragment, pool uintptr, firstQuery, queryCount uint32) {
	appendRecord(frag, ResetQueryPool, resetQueryPoolRecord{Pool: pool, FirstQuery: firstQuery, QueryCount: queryCount})
}

type writeTimestampRecord struct {
	Header
	Stage uint32
	Pool  uintptr
	Query uint32
}

func AppendWriteTimestamp(frag *CommandFragment, stage uint32, pool uintptr, query uint32) {
	appendRecord(frag, WriteTimestamp, writeTimestampRecord{Stage: stage, Pool: pool, Query: query})
}

type pushConstantsRecord struct {
	Header
	Layout      uintptr
	StageFlags  uint32
	Offset      uint32
	Size        uint32
	DataOff     uint32 // offset to []byte
}

func AppendPushConstants(frag *CommandFragment, layout uintptr, stageFlags uint32, offset uint32, data []byte) {
	rec := pushConstantsRecord{Layout: layout, StageFlags: stageFlags, Offset: offset, Size: uint32(len(data))}
	appendVariableBytes(frag, PushConstants, &rec, &rec.DataOff, data)
}

type beginRenderPassRecord struct {
	Header
	RenderPass, Framebuffer           uintptr
	X, Y, Width, Height               int32
	R, G, B, A                        float32
	Contents                          uint32
}

func AppendBeginRenderPass(frag *CommandFragment, renderPass, framebuffer uintptr, x, y, width, height int32, r, g, b, a float32, contents uint32) {
	appendRecord(frag, BeginRenderPass, beginRenderPassRecord{
		RenderPass: renderPass, Framebuffer: framebuffer,
		X: x, Y: y, Width: width, Height: height,
		R: r, G: g, B: b, A: a, Contents: contents,
	})
}

type nextSubpassRecord struct {
	Header
	Contents uint32
}

func AppendNextSubpass(frag *CommandFragment, contents uint32) {
	appendRecord(frag, NextSubpass, nextSubpassRecord{Contents: contents})
}

type endRenderPassRecord struct {
	Header
}

func AppendEndRenderPass(frag *CommandFragment) {
	appendRecord(frag, EndRenderPass, endRenderPassRecord{})
}

type executeCommandsRecord struct {
	Header
	Count       uint32
	BuffersOff  uint32 // offset to []uintptr of vk.CommandBuffer
}

func AppendExecuteCommands(frag *CommandFragment, buffers []uintptr) {
	rec := executeCommandsRecord{Count: uint32(len(buffers))}
	appendVariable(frag, ExecuteCommands, &rec, &rec.BuffersOff, buffers)
}

type callFragmentRecord struct {
	Header
	Fragment uintptr
}

// AppendCallFragment records a recursive replay of another fragment
// chain. The pointer is stored directly (not as a record-relative
// offset): it addresses a *CommandFragment, not a packed array.
func AppendCallFragment(frag *CommandFragment, callee *CommandFragment) {
	appendRecord(frag, CallFragment, callFragmentRecord{Fragment: uintptr(recordFragmentPointer(callee))})
}

type customRecord struct {
	Header
	FuncIndex uint32
}

// AppendCustom records an invocation of a caller-registered function
// against the current command buffer (Registry.Register returns the
// index to pass here).
func AppendCustom(frag *CommandFragment, funcIndex uint32) {
	appendRecord(frag, Custom, customRecord{FuncIndex: funcIndex})
}

type indirectBindPipelineRecord struct {
	Header
	BindPoint  uint32
	PipelinePtr uintptr // *uintptr, dereferenced at replay
}

// AppendIndirectBindPipeline records a late-binding pipeline bind: the
// pipeline handle is read from *pipeline at replay time, and the
// encoder's last_pipeline redundancy check applies.
func AppendIndirectBindPipeline(frag *CommandFragment, bindPoint uint32, pipeline *uintptr) {
	appendRecord(frag, IndirectBindPipeline, indirectBindPipelineRecord{BindPoint: bindPoint, PipelinePtr: uintptr(ptrTo(pipeline))})
}

type indirectBindDescriptorSetsRecord struct {
	Header
	BindingPtr uintptr
}

func AppendIndirectBindDescriptorSets(frag *CommandFragment, binding *DescriptorSetsBinding) {
	appendRecord(frag, IndirectBindDescriptorSets, indirectBindDescriptorSetsRecord{BindingPtr: uintptr(ptrTo(binding))})
}

type indirectBindIndexBufferRecord struct {
	Header
	BindingPtr uintptr
}

func AppendIndirectBindIndexBuffer(frag *CommandFragment, binding *IndexBufferBinding) {
	appendRecord(frag, IndirectBindIndexBuffer, indirectBindIndexBufferRecord{BindingPtr: uintptr(ptrTo(binding))})
}

type indirectBindVertexBuffersRecord struct {
	Header
	BindingPtr uintptr
}

func AppendIndirectBindVertexBuffers(frag *CommandFragment, binding *VertexBuffersBinding) {
	appendRecord(frag, IndirectBindVertexBuffers, indirectBindVertexBuffersRecord{BindingPtr: uintptr(ptrTo(binding))})
}

type indirectDrawRecord struct {
	Header
	StatsPtr    uintptr
	IsActivePtr uintptr
	CallPtr     uintptr
}

func AppendIndirectDraw(frag *CommandFragment, stats *RuntimeStats, isActive *bool, call *DrawCall) {
	appendRecord(frag, IndirectDraw, indirectDrawRecord{
		StatsPtr:    uintptr(ptrTo(stats)),
		IsActivePtr: uintptr(ptrTo(isActive)),
		CallPtr:     uintptr(ptrTo(call)),
	})
}
