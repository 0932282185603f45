package vkvm

import "unsafe"

// CommandFragment is a header plus a packed byte region: a sequence of
// variable-length records, each starting with a Header, followed by
// opcode-specific fields. Next chains fragments into a replay list the
// same way vm.Fragment does for GLVM, but the payload here is packed
// bytes instead of typed Instructions.
type CommandFragment struct {
	Commands []byte
	Next     *CommandFragment
}

// New allocates an empty command fragment with no records and no
// successor.
func New() *CommandFragment {
	return &CommandFragment{}
}

// Link sets right as left's successor, overwriting any prior link.
func Link(left, right *CommandFragment) { left.Next = right }

// Unlink clears left's successor.
func Unlink(left *CommandFragment) { left.Next = nil }

// appendRecord marshals rec (a fixed-layout record struct whose first
// field is Header) onto frag's packed byte region, stamping Length and
// Opcode itself.
func appendRecord[T any](frag *CommandFragment, opcode Opcode, rec T) {
	size := int(unsafe.Sizeof(rec))
	hdr := (*Header)(unsafe.Pointer(&rec))
	hdr.Length = uint32(size)
	hdr.Opcode = uint32(opcode)

	start := len(frag.Commands)
	frag.Commands = append(frag.Commands, make([]byte, size)...)
	dst := (*T)(unsafe.Pointer(&frag.Commands[start]))
	*dst = rec
}

// recordAt overlays a record of type T directly onto the bytes
// starting at offset within base, the read-side counterpart of
// appendRecord.
func recordAt[T any](base []byte, offset int) *T {
	return (*T)(unsafe.Pointer(&base[offset]))
}

// arrayAt reconstructs the absolute address of an array field stored
// as a byte offset relative to the record base. A zero offset means
// the array is absent.
func arrayAt(recordBase unsafe.Pointer, offset uint32) unsafe.Pointer {
	if offset == 0 {
		return nil
	}
	return unsafe.Add(recordBase, offset)
}
