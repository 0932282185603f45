package glvm

import (
	"reflect"
	"testing"

	"github.com/archlab/cmdvm/vm"
)

func TestHDrawElementsNonInstancedUsesBaseVertexVariant(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	stats := &RuntimeStats{}
	active := true
	mode := &BeginMode{Mode: 0x0004} // GL_TRIANGLES
	list := &DrawCallInfoList{Calls: []DrawCallInfo{
		{FaceVertexCount: 6, InstanceCount: 1, FirstIndex: 0, BaseVertex: 10},
	}}

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.HDrawElements, ptrToArg(stats), ptrToArg(&active), ptrToArg(mode), glUnsignedShort, ptrToArg(list))

	RunDirect(table, frag)

	want := []string{"glDrawElementsBaseVertex[4 6 5123 0 10]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestHDrawElementsPlainDrawOmitsBaseVertexVariant(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	stats := &RuntimeStats{}
	active := true
	mode := &BeginMode{Mode: 0x0004}
	list := &DrawCallInfoList{Calls: []DrawCallInfo{
		{FaceVertexCount: 3, InstanceCount: 1, FirstIndex: 0, BaseVertex: 0},
	}}

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.HDrawElements, ptrToArg(stats), ptrToArg(&active), ptrToArg(mode), glUnsignedShort, ptrToArg(list))

	RunDirect(table, frag)

	want := []string{"glDrawElementsInstanced[4 3 5123 0 1]"}
	if got := r.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestHBindVertexAttributesSelectsIntegerAndBGRAPointers(t *testing.T) {
	resetHook(t)
	r := newRecorder()
	table := r.table()

	binding := &VertexInputBinding{
		BufferBindings: []VertexAttribBinding{
			{Location: 0, Buffer: 1, Components: 3, Type: 0x1406, Normalized: false}, // float position
			{Location: 1, Buffer: 2, Components: 4, Type: glUnsignedByte, IsBGRA: true, Normalized: true}, // packed BGRA color
			{Location: 2, Buffer: 3, Components: 1, Type: glUnsignedInt, IsInteger: true}, // integer attribute
		},
	}

	frag := vm.New()
	b := frag.NewBlock()
	frag.AppendN(b, vm.HBindVertexAttributes, uintptr(0), ptrToArg(binding))

	RunDirect(table, frag)

	calls := r.strings()
	var pointerCalls, integerCalls []string
	for _, c := range calls {
		switch {
		case len(c) >= len("glVertexAttribIPointer") && c[:len("glVertexAttribIPointer")] == "glVertexAttribIPointer":
			integerCalls = append(integerCalls, c)
		case len(c) >= len("glVertexAttribPointer") && c[:len("glVertexAttribPointer")] == "glVertexAttribPointer":
			pointerCalls = append(pointerCalls, c)
		}
	}

	if len(integerCalls) != 1 {
		t.Fatalf("integer attrib calls = %v, want exactly one glVertexAttribIPointer", calls)
	}
	if len(pointerCalls) != 2 {
		t.Fatalf("pointer attrib calls = %v, want exactly two glVertexAttribPointer", calls)
	}

	wantBGRA := "glVertexAttribPointer[1 32993 5121 1 0 0]" // size arg replaced by GL_BGRA (0x80E1 == 32993)
	found := false
	for _, c := range pointerCalls {
		if c == wantBGRA {
			found = true
		}
	}
	if !found {
		t.Fatalf("pointer calls = %v, want one matching %q", pointerCalls, wantBGRA)
	}
}
