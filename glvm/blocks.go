package glvm

// The types below are caller-owned dynamic state blocks: the VM reads
// them by pointer at replay time, and the program itself never embeds
// their contents, so one recorded fragment replays correctly against
// whatever per-frame values the caller has written into these structs
// beforehand.

// RuntimeStats accumulates draw-call counters across H-draw calls.
type RuntimeStats struct {
	DrawCalls          int
	EffectiveDrawCalls int
}

// BeginMode selects the primitive topology (and patch vertex count,
// relevant only when Mode == PatchesMode) for an H-draw call.
type BeginMode struct {
	Mode          uintptr
	PatchVertices uintptr
}

// PatchesMode is the GL_PATCHES primitive topology constant.
const PatchesMode uintptr = 0x000E

// DrawCallInfo is one non-indirect draw within a DrawCallInfoList.
type DrawCallInfo struct {
	FaceVertexCount int
	InstanceCount   int
	FirstIndex      int
	FirstInstance   int
	BaseVertex      int
}

// DrawCallInfoList is the caller-owned array HDrawArrays/HDrawElements
// iterate.
type DrawCallInfoList struct {
	Calls []DrawCallInfo
}

// IndirectDrawArgs describes a GL_DRAW_INDIRECT_BUFFER-backed indirect
// draw batch for HDrawArraysIndirect/HDrawElementsIndirect.
type IndirectDrawArgs struct {
	Handle uintptr
	Offset uintptr
	Stride uintptr
	Count  int
}

// DepthTestMode is the caller-owned block for HSetDepthTest.
// Comparison == 0 disables both depth test and depth clamp.
type DepthTestMode struct {
	Comparison uintptr
	Clamp      bool
}

// DepthBiasInfo is the caller-owned block for HSetDepthBias.
type DepthBiasInfo struct {
	Constant   float32
	SlopeScale float32
	Clamp      float32
}

// CullFaceMode is the caller-owned block for HSetCullFace.
type CullFaceMode struct {
	Enabled bool
	Face    uintptr
}

// BlendMode is the caller-owned block for HSetBlendMode.
type BlendMode struct {
	Enabled bool
	SrcRGB  uintptr
	DstRGB  uintptr
	OpRGB   uintptr
	SrcA    uintptr
	DstA    uintptr
	OpA     uintptr
}

// StencilFaceMode holds one face's stencil func/op triple.
type StencilFaceMode struct {
	Cmp   uintptr
	Mask  uintptr
	Ref   uintptr
	SFail uintptr
	DFail uintptr
	Pass  uintptr
}

// StencilMode is the caller-owned block for HSetStencilMode, split
// per-face so front- and back-facing polygons can carry independent
// stencil state.
type StencilMode struct {
	Enabled bool
	Front   StencilFaceMode
	Back    StencilFaceMode
}

// VertexAttribBinding describes one generic vertex attribute sourced
// from a buffer, as used by VertexInputBinding.BufferBindings.
type VertexAttribBinding struct {
	Location   uintptr
	Buffer     uintptr
	Offset     uintptr
	Stride     uintptr
	Type       uintptr
	Components uintptr
	Normalized bool
	IsInteger  bool
	IsBGRA     bool
	Divisor    uintptr
}

// ValueBinding is a scalar "value binding": a constant 4-component
// vertex attribute pushed once per HBindVertexAttributes call instead
// of being sourced from a buffer.
type ValueBinding struct {
	Location uintptr
	X, Y, Z, W float32
}

// ContextID identifies a GL context for VAO caching/cleanup purposes.
type ContextID uintptr

// VertexInputBinding is the caller-owned block for
// HBindVertexAttributes. The VM mutates only VAOHandle/VAOContext, to
// cache a driver-side VAO per GL context.
type VertexInputBinding struct {
	IndexBuffer     uintptr
	BufferBindings  []VertexAttribBinding
	ValueBindings   []ValueBinding

	VAOHandle  uintptr
	VAOContext ContextID
}
