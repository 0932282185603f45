package vkvm

import (
	"fmt"
	"strings"

	"github.com/archlab/cmdvm/internal/dispatch"
	vk "github.com/goki/vulkan"
)

// ProcLoader resolves one Vulkan command by name against device,
// mirroring vkGetDeviceProcAddr's (device, name) -> PFN_vkVoidFunction
// shape.
type ProcLoader func(device vk.Device, name string) uintptr

// Table is the Vulkan dispatch table: every vkCmd* entry point the
// interpreter calls against a secondary command buffer, resolved once
// at Init and never mutated afterward.
type Table struct {
	CmdBindPipeline            dispatch.Slot
	CmdBindDescriptorSets      dispatch.Slot
	CmdBindIndexBuffer         dispatch.Slot
	CmdBindVertexBuffers       dispatch.Slot
	CmdDraw                    dispatch.Slot
	CmdDrawIndexed             dispatch.Slot
	CmdDrawIndirect            dispatch.Slot
	CmdDrawIndexedIndirect     dispatch.Slot
	CmdDispatch                dispatch.Slot
	CmdCopyBuffer              dispatch.Slot
	CmdCopyImage               dispatch.Slot
	CmdCopyBufferToImage       dispatch.Slot
	CmdBlitImage               dispatch.Slot
	CmdResolveImage            dispatch.Slot
	CmdClearColorImage         dispatch.Slot
	CmdClearDepthStencilImage  dispatch.Slot
	CmdSetEvent                dispatch.Slot
	CmdResetEvent              dispatch.Slot
	CmdWaitEvents              dispatch.Slot
	CmdPipelineBarrier         dispatch.Slot
	CmdBeginQuery              dispatch.Slot
	CmdEndQuery                dispatch.Slot
	CmdResetQueryPool          dispatch.Slot
	CmdWriteTimestamp          dispatch.Slot
	CmdPushConstants           dispatch.Slot
	CmdBeginRenderPass         dispatch.Slot
	CmdNextSubpass             dispatch.Slot
	CmdEndRenderPass           dispatch.Slot
	CmdExecuteCommands         dispatch.Slot
}

func (t *Table) entries() []struct {
	slot     *dispatch.Slot
	name     string
	optional bool
} {
	return []struct {
		slot     *dispatch.Slot
		name     string
		optional bool
	}{
		{&t.CmdBindPipeline, "vkCmdBindPipeline", false},
		{&t.CmdBindDescriptorSets, "vkCmdBindDescriptorSets", false},
		{&t.CmdBindIndexBuffer, "vkCmdBindIndexBuffer", false},
		{&t.CmdBindVertexBuffers, "vkCmdBindVertexBuffers", false},
		{&t.CmdDraw, "vkCmdDraw", false},
		{&t.CmdDrawIndexed, "vkCmdDrawIndexed", false},
		{&t.CmdDrawIndirect, "vkCmdDrawIndirect", false},
		{&t.CmdDrawIndexedIndirect, "vkCmdDrawIndexedIndirect", false},
		{&t.CmdDispatch, "vkCmdDispatch", false},
		{&t.CmdCopyBuffer, "vkCmdCopyBuffer", false},
		{&t.CmdCopyImage, "vkCmdCopyImage", false},
		{&t.CmdCopyBufferToImage, "vkCmdCopyBufferToImage", false},
		{&t.CmdBlitImage, "vkCmdBlitImage", false},
		{&t.CmdResolveImage, "vkCmdResolveImage", false},
		{&t.CmdClearColorImage, "vkCmdClearColorImage", false},
		{&t.CmdClearDepthStencilImage, "vkCmdClearDepthStencilImage", false},
		{&t.CmdSetEvent, "vkCmdSetEvent", false},
		{&t.CmdResetEvent, "vkCmdResetEvent", false},
		{&t.CmdWaitEvents, "vkCmdWaitEvents", false},
		{&t.CmdPipelineBarrier, "vkCmdPipelineBarrier", false},
		{&t.CmdBeginQuery, "vkCmdBeginQuery", true},
		{&t.CmdEndQuery, "vkCmdEndQuery", true},
		{&t.CmdResetQueryPool, "vkCmdResetQueryPool", true},
		{&t.CmdWriteTimestamp, "vkCmdWriteTimestamp", true},
		{&t.CmdPushConstants, "vkCmdPushConstants", false},
		{&t.CmdBeginRenderPass, "vkCmdBeginRenderPass", false},
		{&t.CmdNextSubpass, "vkCmdNextSubpass", false},
		{&t.CmdEndRenderPass, "vkCmdEndRenderPass", false},
		{&t.CmdExecuteCommands, "vkCmdExecuteCommands", true},
	}
}

// Init resolves every vkCmd* entry point against device through loader.
// A missing mandatory entry is reported to sink but does not stop
// resolution of the rest; the affected opcode simply no-ops at replay.
// Init always returns a non-nil *Table, matching the GL loader's
// "handle returned even on partial failure" contract, and additionally
// returns a non-nil error naming every unresolved mandatory entry.
func Init(device vk.Device, loader ProcLoader) (*Table, error) {
	t := &Table{}
	var missing []string
	for _, e := range t.entries() {
		addr := loader(device, e.name)
		*e.slot = dispatch.Slot(addr)
		if addr == 0 && !e.optional {
			defaultDiag().UnresolvedEntry(e.name)
			missing = append(missing, e.name)
		}
	}
	if len(missing) > 0 {
		return t, fmt.Errorf("vkvm: unresolved driver entry points: %s", strings.Join(missing, ", "))
	}
	return t, nil
}
