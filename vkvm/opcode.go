// Package vkvm implements the Vulkan secondary-command-buffer
// interpreter: a packed variable-length byte stream decoded into
// vkCmd* calls through a loader-resolved dispatch table, plus the
// indirect helpers that dereference caller-owned binding structs at
// replay time.
package vkvm

// Opcode identifies one packed record's operation.
type Opcode uint32

const (
	BindPipeline Opcode = iota + 1
	BindDescriptorSets
	BindIndexBuffer
	BindVertexBuffers
	Draw
	DrawIndexed
	DrawIndirect
	DrawIndexedIndirect
	Dispatch
	CopyBuffer
	CopyImage
	CopyBufferToImage
	BlitImage
	ResolveImage
	ClearColorImage
	ClearDepthStencilImage
	SetEvent
	ResetEvent
	WaitEvents
	PipelineBarrier
	BeginQuery
	EndQuery
	ResetQueryPool
	WriteTimestamp
	PushConstants
	BeginRenderPass
	NextSubpass
	EndRenderPass
	ExecuteCommands
	CallFragment
	Custom
	IndirectBindPipeline
	IndirectBindDescriptorSets
	IndirectBindIndexBuffer
	IndirectBindVertexBuffers
	IndirectDraw
)

// Header is the fixed prefix of every packed record: its total byte
// length (including this header) and its opcode.
type Header struct {
	Length uint32
	Opcode uint32
}
