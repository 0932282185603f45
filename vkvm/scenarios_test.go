package vkvm

import (
	"reflect"
	"testing"

	"github.com/archlab/cmdvm/internal/dispatch"
	vk "github.com/goki/vulkan"
)

const testCommandBuffer = vk.CommandBuffer(1)

func resetHook(t *testing.T) {
	t.Cleanup(func() { dispatch.Hook = nil })
}

// TestDirectBindPipelineNeverDeduplicates covers S6's first half: the
// direct BindPipeline opcode has no redundancy cache, so two identical
// binds followed by a draw emit all three driver calls.
func TestDirectBindPipelineNeverDeduplicates(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	frag := New()
	AppendBindPipeline(frag, 0, 3232)
	AppendBindPipeline(frag, 0, 3232)
	AppendDraw(frag, 3, 1, 0, 0)

	stats := Run(table, nil, nil, testCommandBuffer, frag)

	want := []string{
		"vkCmdBindPipeline[1 0 3232]",
		"vkCmdBindPipeline[1 0 3232]",
		"vkCmdDraw[1 3 1 0 0]",
	}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
}

// TestIndirectBindPipelineDedupesAgainstLastBound covers S6's second
// half: IndirectBindPipeline dereferences its pointer at replay time
// and only emits when the value differs from the last one bound
// through the same cache.
func TestIndirectBindPipelineDedupesAgainstLastBound(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()
	cache := NewCache()

	pipeline := new(uintptr)
	*pipeline = 111

	first := New()
	AppendIndirectBindPipeline(first, 0, pipeline)
	AppendIndirectBindPipeline(first, 0, pipeline)
	stats1 := Run(table, cache, nil, testCommandBuffer, first)

	*pipeline = 222

	second := New()
	AppendIndirectBindPipeline(second, 0, pipeline)
	stats2 := Run(table, cache, nil, testCommandBuffer, second)

	want := []string{
		"vkCmdBindPipeline[1 0 111]",
		"vkCmdBindPipeline[1 0 222]",
	}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats1.Total != 2 || stats1.Removed != 1 {
		t.Fatalf("stats1 = %+v, want {Total:2 Removed:1}", stats1)
	}
	if stats2.Total != 1 || stats2.Removed != 0 {
		t.Fatalf("stats2 = %+v, want {Total:1 Removed:0}", stats2)
	}
}
