package vkvm

import (
	"reflect"
	"testing"
)

func TestBindDescriptorSetsSkipsWhenEmpty(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	frag := New()
	AppendBindDescriptorSets(frag, 0, 0x7, 0, nil)
	AppendBindDescriptorSets(frag, 0, 0x7, 2, []uintptr{10, 11})

	stats := Run(table, nil, nil, testCommandBuffer, frag)

	if len(r.calls) != 1 || r.calls[0].name != "vkCmdBindDescriptorSets" {
		t.Fatalf("calls = %v, want exactly one vkCmdBindDescriptorSets", r.strings())
	}
	got := r.calls[0].args
	if got[0] != 1 || got[1] != 0 || got[2] != 0x7 || got[3] != 2 || got[4] != 2 {
		t.Fatalf("args = %v, want [cb=1 bindPoint=0 layout=7 firstSet=2 count=2 ...]", got)
	}
	if stats.Total != 2 {
		t.Fatalf("total = %d, want 2", stats.Total)
	}
}

func TestBindVertexBuffersPassesFirstBindingAndCount(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	frag := New()
	AppendBindVertexBuffers(frag, 1, []uintptr{5, 6}, []uintptr{0, 16})

	Run(table, nil, nil, testCommandBuffer, frag)

	if len(r.calls) != 1 || r.calls[0].name != "vkCmdBindVertexBuffers" {
		t.Fatalf("calls = %v", r.strings())
	}
	if got := r.calls[0].args[0]; got != 1 {
		t.Fatalf("cb = %d, want 1", got)
	}
	if got := r.calls[0].args[1]; got != 1 {
		t.Fatalf("firstBinding = %d, want 1", got)
	}
	if got := r.calls[0].args[2]; got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
}

func TestIndirectDrawSkipsWhenInactiveOrEmpty(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	stats := &RuntimeStats{}
	active := false
	call := &DrawCall{Count: 3, Infos: []DrawCallInfo{{FaceVertexCount: 3, InstanceCount: 1}}}

	frag := New()
	AppendIndirectDraw(frag, stats, &active, call)

	Run(table, nil, nil, testCommandBuffer, frag)
	if len(r.calls) != 0 {
		t.Fatalf("calls = %v, want none while inactive", r.strings())
	}

	active = true
	call.Count = 0
	frag2 := New()
	AppendIndirectDraw(frag2, stats, &active, call)
	Run(table, nil, nil, testCommandBuffer, frag2)
	if len(r.calls) != 0 {
		t.Fatalf("calls = %v, want none when count is zero", r.strings())
	}
}

func TestIndirectDrawNonIndirectSkipsZeroVertexInfos(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	stats := &RuntimeStats{}
	active := true
	call := &DrawCall{
		Count: 2,
		Infos: []DrawCallInfo{
			{FaceVertexCount: 3, InstanceCount: 1},
			{FaceVertexCount: 0, InstanceCount: 1}, // skipped: zero vertex count
		},
	}

	frag := New()
	AppendIndirectDraw(frag, stats, &active, call)
	Run(table, nil, nil, testCommandBuffer, frag)

	if len(r.calls) != 1 || r.calls[0].name != "vkCmdDraw" {
		t.Fatalf("calls = %v, want exactly one vkCmdDraw", r.strings())
	}
	if stats.DrawCalls != 2 {
		t.Fatalf("DrawCalls = %d, want 2", stats.DrawCalls)
	}
	if stats.EffectiveDrawCalls != 1 {
		t.Fatalf("EffectiveDrawCalls = %d, want 1", stats.EffectiveDrawCalls)
	}
}

func TestIndirectDrawIndirectBufferAlwaysCountsFull(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	stats := &RuntimeStats{}
	active := true
	call := &DrawCall{IsIndirect: true, Handle: 99, Offset: 0, Stride: 32, Count: 4}

	frag := New()
	AppendIndirectDraw(frag, stats, &active, call)
	Run(table, nil, nil, testCommandBuffer, frag)

	want := []string{"vkCmdDrawIndirect[1 99 0 4 32]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats.DrawCalls != 1 || stats.EffectiveDrawCalls != 4 {
		t.Fatalf("stats = %+v, want {DrawCalls:1 EffectiveDrawCalls:4}", stats)
	}
}

func TestCallFragmentRecursesAndDetectsCycles(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	callee := New()
	AppendDraw(callee, 1, 1, 0, 0)

	caller := New()
	AppendCallFragment(caller, callee)
	AppendDraw(caller, 2, 1, 0, 0)

	Run(table, nil, nil, testCommandBuffer, caller)

	want := []string{"vkCmdDraw[1 1 1 0 0]", "vkCmdDraw[1 2 1 0 0]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}

	cyclic := New()
	AppendCallFragment(cyclic, cyclic)
	Run(table, nil, nil, testCommandBuffer, cyclic) // must terminate, not hang
}

func TestCustomInvokesRegisteredFunction(t *testing.T) {
	resetHook(t)
	table := &Table{}

	var called bool
	reg := &Registry{}
	idx := reg.Register(func() { called = true })

	frag := New()
	AppendCustom(frag, idx)
	Run(table, nil, reg, testCommandBuffer, frag)

	if !called {
		t.Fatal("registered function was not invoked")
	}
}
