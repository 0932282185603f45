package glvm

import (
	"reflect"
	"testing"

	"github.com/archlab/cmdvm/internal/dispatch"
	"github.com/archlab/cmdvm/vm"
)

func resetHook(t *testing.T) {
	t.Cleanup(func() { dispatch.Hook = nil })
}

func TestRedundantProgramBind(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()
	cache := NewCache()

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.BindProgram, 7)
	frag.AppendN(b, vm.BindProgram, 7)
	frag.AppendN(b, vm.BindProgram, 9)

	stats := RunRedundant(table, cache, frag)

	want := []string{"glUseProgram[7]", "glUseProgram[9]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats.Total != 3 || stats.Removed != 1 {
		t.Fatalf("stats = %+v, want {Total:3 Removed:1}", stats)
	}
}

func TestRedundantEnableDisable(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()
	cache := NewCache()

	const capA = 0x0B44

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.Enable, capA)
	frag.AppendN(b, vm.Disable, capA)
	frag.AppendN(b, vm.Disable, capA)
	frag.AppendN(b, vm.Enable, capA)

	stats := RunRedundant(table, cache, frag)

	want := []string{"glEnable[2884]", "glDisable[2884]", "glEnable[2884]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats.Removed != 1 {
		t.Fatalf("removed = %d, want 1", stats.Removed)
	}
}

func TestRedundantTextureBindingKeyedByTargetAndUnit(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()
	cache := NewCache()

	const texture2D = 0x0DE1

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.ActiveTexture, 0)
	frag.AppendN(b, vm.BindTexture, texture2D, 42)
	frag.AppendN(b, vm.ActiveTexture, 1)
	frag.AppendN(b, vm.BindTexture, texture2D, 42)
	frag.AppendN(b, vm.ActiveTexture, 0)
	frag.AppendN(b, vm.BindTexture, texture2D, 42)

	stats := RunRedundant(table, cache, frag)

	want := []string{
		"glActiveTexture[0]",
		"glBindTexture[3553 42]",
		"glActiveTexture[1]",
		"glBindTexture[3553 42]",
		"glActiveTexture[0]",
	}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats.Removed != 1 {
		t.Fatalf("removed = %d, want 1", stats.Removed)
	}
}

func TestRedundantDrawBuffers(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()
	cache := NewCache()

	a0a1 := []uintptr{0x8CE0, 0x8CE1}
	a0a1a2 := []uintptr{0x8CE0, 0x8CE1, 0x8CE2}

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.DrawBuffers, uintptr(len(a0a1)), ptrToArg(&a0a1[0]))
	frag.AppendN(b, vm.DrawBuffers, uintptr(len(a0a1)), ptrToArg(&a0a1[0]))
	frag.AppendN(b, vm.DrawBuffers, uintptr(len(a0a1a2)), ptrToArg(&a0a1a2[0]))

	stats := RunRedundant(table, cache, frag)

	if len(r.calls) != 2 {
		t.Fatalf("calls = %v, want 2 emitted", r.strings())
	}
	if stats.Total != 3 || stats.Removed != 1 {
		t.Fatalf("stats = %+v, want {Total:3 Removed:1}", stats)
	}
}

func TestRedundantAcrossLinkedFragmentsSharesCache(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()
	cache := NewCache()

	f1 := vm.New()
	b1 := f1.NewBlock()
	f1.AppendN(b1, vm.BindProgram, 5)

	f2 := vm.New()
	b2 := f2.NewBlock()
	f2.AppendN(b2, vm.BindProgram, 5)

	vm.Link(f1, f2)

	stats := RunRedundant(table, cache, f1)

	want := []string{"glUseProgram[5]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if stats.Total != 2 || stats.Removed != 1 {
		t.Fatalf("stats = %+v, want {Total:2 Removed:1}", stats)
	}
}
