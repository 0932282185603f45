package vkvm

// RuntimeStats accumulates replay-time counters across a fragment
// chain, the Vulkan-side counterpart of glvm's RuntimeStats: every
// replay adds to it instead of resetting it, so callers typically zero
// it once per frame.
type RuntimeStats struct {
	DrawCalls          uint64
	EffectiveDrawCalls uint64
}

// DescriptorSetsBinding is the caller-owned state block dereferenced by
// IndirectBindDescriptorSets at replay time. Callers mutate Sets in
// place between replays; the interpreter never allocates or frees it.
type DescriptorSetsBinding struct {
	BindPoint uint32
	Layout    uintptr
	FirstSet  uint32
	Sets      []uintptr
}

// IndexBufferBinding is the caller-owned state block dereferenced by
// IndirectBindIndexBuffer.
type IndexBufferBinding struct {
	Buffer    uintptr
	Offset    uintptr
	IndexType uint32
}

// VertexBuffersBinding is the caller-owned state block dereferenced by
// IndirectBindVertexBuffers.
type VertexBuffersBinding struct {
	FirstBinding uint32
	Buffers      []uintptr
	Offsets      []uintptr
}

// DrawCallInfo is one non-indirect draw within a DrawCall's Infos list.
type DrawCallInfo struct {
	FaceVertexCount int
	InstanceCount   int
	FirstIndex      int
	FirstInstance   int
	BaseVertex      int
}

// DrawCall is the caller-owned state block dereferenced by
// IndirectDraw. IsIndexed selects vkCmdDrawIndexed/vkCmdDrawIndexedIndirect
// over vkCmdDraw/vkCmdDrawIndirect.
//
// When IsIndirect is true, Handle/Offset/Stride/Count describe a
// GL_DRAW_INDIRECT_BUFFER-style indirect draw batch; otherwise Infos
// holds Count non-indirect draws to iterate directly.
type DrawCall struct {
	IsIndirect bool
	IsIndexed  bool
	Count      int

	Handle uintptr
	Offset uintptr
	Stride uintptr

	Infos []DrawCallInfo
}

// Registry holds caller-registered functions addressable from a
// fragment via Custom records, the Vulkan-side equivalent of glvm's
// H-command extension points. Index 0 is reserved and never dispatched.
type Registry struct {
	funcs []func()
}

// Register appends fn and returns the index to pass to AppendCustom.
func (r *Registry) Register(fn func()) uint32 {
	r.funcs = append(r.funcs, fn)
	return uint32(len(r.funcs))
}

func (r *Registry) call(index uint32) {
	if index == 0 || int(index) > len(r.funcs) {
		return
	}
	if fn := r.funcs[index-1]; fn != nil {
		fn()
	}
}
