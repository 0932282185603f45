package vm

import "testing"

func TestAppendNZeroesUnusedSlots(t *testing.T) {
	f := New()
	b := f.NewBlock()
	f.AppendN(b, BindBufferRange, 1, 2, 3)

	in := f.Block(b).At(0)
	if in.Code != BindBufferRange {
		t.Fatalf("code = %v, want %v", in.Code, BindBufferRange)
	}
	for i, want := range []uintptr{1, 2, 3, 0, 0, 0} {
		if in.Arg(i) != want {
			t.Fatalf("arg(%d) = %d, want %d", i, in.Arg(i), want)
		}
	}
}

func TestLinkHygiene(t *testing.T) {
	l, r := New(), New()
	Link(l, r)
	if !l.HasNext() || l.Next() != r {
		t.Fatal("expected l linked to r")
	}
	Unlink(l)
	if l.HasNext() {
		t.Fatal("expected l unlinked")
	}
}

func TestLinkIsIdempotent(t *testing.T) {
	l, a, b := New(), New(), New()
	Link(l, a)
	Link(l, b)
	if l.Next() != b {
		t.Fatal("second Link should overwrite the first")
	}
}

func TestCloseDoesNotFollowNext(t *testing.T) {
	l, r := New(), New()
	Link(l, r)
	rb := r.NewBlock()
	r.AppendN(rb, BindProgram, 7)

	l.Close()

	if r.Block(rb).Len() != 1 {
		t.Fatal("closing l must not affect r")
	}
}

func TestClearBlockAndClearAll(t *testing.T) {
	f := New()
	b0 := f.NewBlock()
	b1 := f.NewBlock()
	f.AppendN(b0, BindProgram, 1)
	f.AppendN(b1, BindProgram, 2)

	f.ClearBlock(b0)
	if f.Block(b0).Len() != 0 {
		t.Fatal("ClearBlock should empty only b0")
	}
	if f.Block(b1).Len() != 1 {
		t.Fatal("ClearBlock must not affect b1")
	}

	f.ClearAll()
	if f.Block(b1).Len() != 0 {
		t.Fatal("ClearAll should empty every block")
	}
	if f.BlockCount() != 2 {
		t.Fatal("ClearAll must not remove blocks")
	}
}

func TestArityTable(t *testing.T) {
	n, ok := Arity(BindBufferRange)
	if !ok || n != 5 {
		t.Fatalf("Arity(BindBufferRange) = (%d, %v), want (5, true)", n, ok)
	}
	if _, ok := Arity(Opcode(9999)); ok {
		t.Fatal("unknown opcode should report !known")
	}
}
