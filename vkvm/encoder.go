// Package vkvm implements the Vulkan secondary-command-buffer
// interpreter: a packed variable-length byte stream decoded into
// vkCmd* calls through a loader-resolved dispatch table, plus the
// indirect helpers that dereference caller-owned binding structs at
// replay time.
package vkvm

import (
	"math"
	"unsafe"

	"github.com/archlab/cmdvm/internal/dispatch"
	vk "github.com/goki/vulkan"
)

// floatBits reinterprets a float32 as the raw bits dispatch.Call passes
// through unchanged, matching the same convention glvm uses for
// float-taking GL entry points.
func floatBits(f float32) uint32 { return math.Float32bits(f) }

// Stats reports how many records a replay visited and how many
// IndirectBindPipeline records it suppressed as redundant.
type Stats struct {
	Total   int
	Removed int
}

// Run walks frag's chain, decoding and dispatching every record against
// cb, the secondary command buffer every vkCmd* call records into.
// cache may be nil, in which case IndirectBindPipeline never
// deduplicates. registry may be nil if the chain contains no Custom
// records. Cycles in the fragment link graph are detected and abort
// traversal rather than looping forever.
func Run(table *Table, cache *Cache, registry *Registry, cb vk.CommandBuffer, frag *CommandFragment) Stats {
	var before int
	if cache != nil {
		before = cache.Removed()
	}
	s := &state{table: table, cache: cache, registry: registry, cb: uintptr(cb), visited: map[*CommandFragment]bool{}}
	s.runChain(frag)
	removed := 0
	if cache != nil {
		removed = cache.Removed() - before
	}
	return Stats{Total: s.total, Removed: removed}
}

type state struct {
	table    *Table
	cache    *Cache
	registry *Registry
	cb       uintptr
	visited  map[*CommandFragment]bool
	total    int
}

func (s *state) runChain(frag *CommandFragment) {
	var entered []*CommandFragment
	defer func() {
		for _, f := range entered {
			delete(s.visited, f)
		}
	}()
	for f := frag; f != nil; f = f.Next {
		if s.visited[f] {
			defaultDiag().Printf("vkvm: cycle detected in fragment chain, aborting traversal")
			return
		}
		s.visited[f] = true
		entered = append(entered, f)
		s.runFragment(f)
	}
}

func (s *state) runFragment(frag *CommandFragment) {
	buf := frag.Commands
	off := 0
	for off < len(buf) {
		hdr := recordAt[Header](buf, off)
		if hdr.Length == 0 {
			return
		}
		s.total++
		s.dispatchRecord(Opcode(hdr.Opcode), buf, off)
		off += int(hdr.Length)
	}
}

func (s *state) dispatchRecord(op Opcode, buf []byte, off int) {
	t := s.table
	base := unsafe.Pointer(&buf[off])

	cb := s.cb

	switch op {
	case BindPipeline:
		rec := recordAt[bindPipelineRecord](buf, off)
		dispatch.Call(t.CmdBindPipeline, cb, uintptr(rec.BindPoint), rec.Pipeline)

	case BindDescriptorSets:
		rec := recordAt[bindDescriptorSetsRecord](buf, off)
		sets := uintptrSlice(arrayAt(base, rec.SetsOff), rec.Count)
		bindDescriptorSets(t, cb, &DescriptorSetsBinding{BindPoint: rec.BindPoint, Layout: rec.Layout, FirstSet: rec.FirstSet, Sets: sets})

	case BindIndexBuffer:
		rec := recordAt[bindIndexBufferRecord](buf, off)
		bindIndexBuffer(t, cb, &IndexBufferBinding{Buffer: rec.Buffer, Offset: rec.Offset, IndexType: rec.IndexType})

	case BindVertexBuffers:
		rec := recordAt[bindVertexBuffersRecord](buf, off)
		buffers := uintptrSlice(arrayAt(base, rec.BuffersOff), rec.Count)
		offsets := uintptrSlice(arrayAt(base, rec.OffsetsOff), rec.Count)
		bindVertexBuffers(t, cb, &VertexBuffersBinding{FirstBinding: rec.FirstBinding, Buffers: buffers, Offsets: offsets})

	case Draw:
		rec := recordAt[drawRecord](buf, off)
		dispatch.Call(t.CmdDraw, cb, uintptr(rec.VertexCount), uintptr(rec.InstanceCount), uintptr(rec.FirstVertex), uintptr(rec.FirstInstance))

	case DrawIndexed:
		rec := recordAt[drawIndexedRecord](buf, off)
		dispatch.Call(t.CmdDrawIndexed, cb, uintptr(rec.IndexCount), uintptr(rec.InstanceCount), uintptr(rec.FirstIndex), uintptr(rec.VertexOffset), uintptr(rec.FirstInstance))

	case DrawIndirect:
		rec := recordAt[drawIndirectRecord](buf, off)
		dispatch.Call(t.CmdDrawIndirect, cb, rec.Buffer, rec.Offset, uintptr(rec.DrawCount), uintptr(rec.Stride))

	case DrawIndexedIndirect:
		rec := recordAt[drawIndirectRecord](buf, off)
		dispatch.Call(t.CmdDrawIndexedIndirect, cb, rec.Buffer, rec.Offset, uintptr(rec.DrawCount), uintptr(rec.Stride))

	case Dispatch:
		rec := recordAt[dispatchRecord](buf, off)
		dispatch.Call(t.CmdDispatch, cb, uintptr(rec.X), uintptr(rec.Y), uintptr(rec.Z))

	case CopyBuffer:
		rec := recordAt[copyBufferRecord](buf, off)
		dispatch.Call(t.CmdCopyBuffer, cb, rec.Src, rec.Dst, rec.SrcOffset, rec.DstOffset, rec.Size)

	case CopyImage:
		rec := recordAt[copyImageRecord](buf, off)
		dispatch.Call(t.CmdCopyImage, cb, rec.Src, uintptr(rec.SrcLayout), rec.Dst, uintptr(rec.DstLayout), uintptr(rec.Width), uintptr(rec.Height), uintptr(rec.Depth))

	case CopyBufferToImage:
		rec := recordAt[copyBufferToImageRecord](buf, off)
		dispatch.Call(t.CmdCopyBufferToImage, cb, rec.Buffer, rec.Image, uintptr(rec.ImageLayout), uintptr(rec.Width), uintptr(rec.Height))

	case BlitImage:
		rec := recordAt[blitImageRecord](buf, off)
		dispatch.Call(t.CmdBlitImage, cb, rec.Src, uintptr(rec.SrcLayout), rec.Dst, uintptr(rec.DstLayout), uintptr(rec.Filter))

	case ResolveImage:
		rec := recordAt[resolveImageRecord](buf, off)
		dispatch.Call(t.CmdResolveImage, cb, rec.Src, uintptr(rec.SrcLayout), rec.Dst, uintptr(rec.DstLayout))

	case ClearColorImage:
		rec := recordAt[clearColorImageRecord](buf, off)
		dispatch.Call(t.CmdClearColorImage, cb, rec.Image, uintptr(rec.Layout), uintptr(floatBits(rec.R)), uintptr(floatBits(rec.G)), uintptr(floatBits(rec.B)), uintptr(floatBits(rec.A)))

	case ClearDepthStencilImage:
		rec := recordAt[clearDepthStencilImageRecord](buf, off)
		dispatch.Call(t.CmdClearDepthStencilImage, cb, rec.Image, uintptr(rec.Layout), uintptr(floatBits(rec.Depth)), uintptr(rec.Stencil))

	case SetEvent:
		rec := recordAt[eventRecord](buf, off)
		dispatch.Call(t.CmdSetEvent, cb, rec.Event, uintptr(rec.Stage))

	case ResetEvent:
		rec := recordAt[eventRecord](buf, off)
		dispatch.Call(t.CmdResetEvent, cb, rec.Event, uintptr(rec.Stage))

	case WaitEvents:
		rec := recordAt[waitEventsRecord](buf, off)
		dispatch.Call(t.CmdWaitEvents, cb, rec.Event, uintptr(rec.SrcStage), uintptr(rec.DstStage))

	case PipelineBarrier:
		rec := recordAt[pipelineBarrierRecord](buf, off)
		dispatch.Call(t.CmdPipelineBarrier, cb, uintptr(rec.SrcStage), uintptr(rec.DstStage), uintptr(rec.Dependency))

	case BeginQuery:
		rec := recordAt[queryRecord](buf, off)
		dispatch.Call(t.CmdBeginQuery, cb, rec.Pool, uintptr(rec.Query), uintptr(rec.Flags))

	case EndQuery:
		rec := recordAt[queryRecord](buf, off)
		dispatch.Call(t.CmdEndQuery, cb, rec.Pool, uintptr(rec.Query))

	case ResetQueryPool:
		rec := recordAt[resetQueryPoolRecord](buf, off)
		dispatch.Call(t.CmdResetQueryPool, cb, rec.Pool, uintptr(rec.FirstQuery), uintptr(rec.QueryCount))

	case WriteTimestamp:
		rec := recordAt[writeTimestampRecord](buf, off)
		dispatch.Call(t.CmdWriteTimestamp, cb, uintptr(rec.Stage), rec.Pool, uintptr(rec.Query))

	case PushConstants:
		rec := recordAt[pushConstantsRecord](buf, off)
		data := arrayAt(base, rec.DataOff)
		dispatch.Call(t.CmdPushConstants, cb, rec.Layout, uintptr(rec.StageFlags), uintptr(rec.Offset), uintptr(rec.Size), uintptr(data))

	case BeginRenderPass:
		rec := recordAt[beginRenderPassRecord](buf, off)
		dispatch.Call(t.CmdBeginRenderPass, cb, rec.RenderPass, rec.Framebuffer,
			uintptr(rec.X), uintptr(rec.Y), uintptr(rec.Width), uintptr(rec.Height),
			uintptr(floatBits(rec.R)), uintptr(floatBits(rec.G)), uintptr(floatBits(rec.B)), uintptr(floatBits(rec.A)),
			uintptr(rec.Contents))

	case NextSubpass:
		rec := recordAt[nextSubpassRecord](buf, off)
		dispatch.Call(t.CmdNextSubpass, cb, uintptr(rec.Contents))

	case EndRenderPass:
		dispatch.Call(t.CmdEndRenderPass, cb)

	case ExecuteCommands:
		rec := recordAt[executeCommandsRecord](buf, off)
		buffers := arrayAt(base, rec.BuffersOff)
		dispatch.Call(t.CmdExecuteCommands, cb, uintptr(rec.Count), uintptr(buffers))

	case CallFragment:
		rec := recordAt[callFragmentRecord](buf, off)
		s.runChain(derefFragment(rec.Fragment))

	case Custom:
		rec := recordAt[customRecord](buf, off)
		if s.registry != nil {
			s.registry.call(rec.FuncIndex)
		}

	case IndirectBindPipeline:
		rec := recordAt[indirectBindPipelineRecord](buf, off)
		pipeline := derefPtr[uintptr](rec.PipelinePtr)
		if pipeline == nil {
			return
		}
		if s.cache == nil || s.cache.shouldBindPipeline(*pipeline) {
			dispatch.Call(t.CmdBindPipeline, cb, uintptr(rec.BindPoint), *pipeline)
		}

	case IndirectBindDescriptorSets:
		rec := recordAt[indirectBindDescriptorSetsRecord](buf, off)
		bindDescriptorSets(t, cb, derefPtr[DescriptorSetsBinding](rec.BindingPtr))

	case IndirectBindIndexBuffer:
		rec := recordAt[indirectBindIndexBufferRecord](buf, off)
		bindIndexBuffer(t, cb, derefPtr[IndexBufferBinding](rec.BindingPtr))

	case IndirectBindVertexBuffers:
		rec := recordAt[indirectBindVertexBuffersRecord](buf, off)
		bindVertexBuffers(t, cb, derefPtr[VertexBuffersBinding](rec.BindingPtr))

	case IndirectDraw:
		rec := recordAt[indirectDrawRecord](buf, off)
		drawIndirect(t, cb, derefPtr[RuntimeStats](rec.StatsPtr), derefPtr[bool](rec.IsActivePtr), derefPtr[DrawCall](rec.CallPtr))

	default:
		defaultDiag().UnknownOpcode(int(op))
	}
}
