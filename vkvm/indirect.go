package vkvm

import "github.com/archlab/cmdvm/internal/dispatch"

// bindDescriptorSets is a no-op when binding has no sets; otherwise it
// calls vkCmdBindDescriptorSets with zero dynamic offsets.
func bindDescriptorSets(t *Table, cb uintptr, binding *DescriptorSetsBinding) {
	if binding == nil || len(binding.Sets) == 0 {
		return
	}
	dispatch.Call(t.CmdBindDescriptorSets, cb,
		uintptr(binding.BindPoint), binding.Layout, uintptr(binding.FirstSet),
		uintptr(len(binding.Sets)), uintptr(ptrTo(&binding.Sets[0])),
		0, 0, // dynamicOffsetCount, pDynamicOffsets
	)
}

// bindIndexBuffer always emits vkCmdBindIndexBuffer.
func bindIndexBuffer(t *Table, cb uintptr, binding *IndexBufferBinding) {
	if binding == nil {
		return
	}
	dispatch.Call(t.CmdBindIndexBuffer, cb, binding.Buffer, binding.Offset, uintptr(binding.IndexType))
}

// bindVertexBuffers is a no-op when binding has no buffers. A missing
// or short Offsets is treated as all-zero offsets.
func bindVertexBuffers(t *Table, cb uintptr, binding *VertexBuffersBinding) {
	if binding == nil || len(binding.Buffers) == 0 {
		return
	}
	offsets := binding.Offsets
	if len(offsets) < len(binding.Buffers) {
		offsets = make([]uintptr, len(binding.Buffers))
	}
	dispatch.Call(t.CmdBindVertexBuffers, cb,
		uintptr(binding.FirstBinding), uintptr(len(binding.Buffers)),
		uintptr(ptrTo(&binding.Buffers[0])), uintptr(ptrTo(&offsets[0])),
	)
}

// drawIndirect implements the indirect helper "draw": skipped when
// !*isActive or call.Count == 0; an indirect call always counts as one
// draw_call plus call.Count toward effective_draw_calls, while a direct
// call's DrawCallInfo list only counts infos with non-zero instance and
// vertex counts toward effective_draw_calls.
func drawIndirect(t *Table, cb uintptr, stats *RuntimeStats, isActive *bool, call *DrawCall) {
	if call == nil || (isActive != nil && !*isActive) || call.Count == 0 {
		return
	}

	if call.IsIndirect {
		if stats != nil {
			stats.DrawCalls++
			stats.EffectiveDrawCalls += uint64(call.Count)
		}
		if call.IsIndexed {
			dispatch.Call(t.CmdDrawIndexedIndirect, cb, call.Handle, call.Offset, uintptr(call.Count), call.Stride)
		} else {
			dispatch.Call(t.CmdDrawIndirect, cb, call.Handle, call.Offset, uintptr(call.Count), call.Stride)
		}
		return
	}

	if stats != nil {
		stats.DrawCalls += uint64(len(call.Infos))
	}
	for _, info := range call.Infos {
		if info.InstanceCount == 0 || info.FaceVertexCount == 0 {
			continue
		}
		if stats != nil {
			stats.EffectiveDrawCalls += uint64(info.InstanceCount)
		}
		if call.IsIndexed {
			dispatch.Call(t.CmdDrawIndexed, cb,
				uintptr(info.FaceVertexCount), uintptr(info.InstanceCount),
				uintptr(info.FirstIndex), uintptr(info.BaseVertex), uintptr(info.FirstInstance),
			)
		} else {
			dispatch.Call(t.CmdDraw, cb,
				uintptr(info.FaceVertexCount), uintptr(info.InstanceCount),
				uintptr(info.FirstIndex), uintptr(info.FirstInstance),
			)
		}
	}
}
