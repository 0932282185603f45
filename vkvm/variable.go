package vkvm

import "unsafe"

const uintptrSize = int(unsafe.Sizeof(uintptr(0)))

// appendVariable writes rec followed immediately by data (a []uintptr,
// e.g. descriptor sets or command buffers), patching *offsetField to
// data's record-relative byte offset (0 if data is empty).
func appendVariable[T any](frag *CommandFragment, opcode Opcode, rec *T, offsetField *uint32, data []uintptr) {
	recSize := int(unsafe.Sizeof(*rec))
	payload := len(data) * uintptrSize
	total := recSize + payload

	if len(data) > 0 {
		*offsetField = uint32(recSize)
	} else {
		*offsetField = 0
	}
	hdr := (*Header)(unsafe.Pointer(rec))
	hdr.Length = uint32(total)
	hdr.Opcode = uint32(opcode)

	start := len(frag.Commands)
	frag.Commands = append(frag.Commands, make([]byte, total)...)
	dst := (*T)(unsafe.Pointer(&frag.Commands[start]))
	*dst = *rec
	if len(data) > 0 {
		copy(unsafe.Slice((*uintptr)(unsafe.Pointer(&frag.Commands[start+recSize])), len(data)), data)
	}
}

// appendTwoVariable is appendVariable for the two-array case (vertex
// buffer handles and their offsets), laid out back to back after rec.
func appendTwoVariable[T any](frag *CommandFragment, opcode Opcode, rec *T, firstField *uint32, first []uintptr, secondField *uint32, second []uintptr) {
	recSize := int(unsafe.Sizeof(*rec))
	firstBytes := len(first) * uintptrSize
	secondBytes := len(second) * uintptrSize
	total := recSize + firstBytes + secondBytes

	if len(first) > 0 {
		*firstField = uint32(recSize)
	} else {
		*firstField = 0
	}
	if len(second) > 0 {
		*secondField = uint32(recSize + firstBytes)
	} else {
		*secondField = 0
	}
	hdr := (*Header)(unsafe.Pointer(rec))
	hdr.Length = uint32(total)
	hdr.Opcode = uint32(opcode)

	start := len(frag.Commands)
	frag.Commands = append(frag.Commands, make([]byte, total)...)
	dst := (*T)(unsafe.Pointer(&frag.Commands[start]))
	*dst = *rec
	if len(first) > 0 {
		copy(unsafe.Slice((*uintptr)(unsafe.Pointer(&frag.Commands[start+recSize])), len(first)), first)
	}
	if len(second) > 0 {
		copy(unsafe.Slice((*uintptr)(unsafe.Pointer(&frag.Commands[start+recSize+firstBytes])), len(second)), second)
	}
}

// appendVariableBytes is appendVariable for a raw []byte payload (push
// constant data).
func appendVariableBytes[T any](frag *CommandFragment, opcode Opcode, rec *T, offsetField *uint32, data []byte) {
	recSize := int(unsafe.Sizeof(*rec))
	total := recSize + len(data)

	if len(data) > 0 {
		*offsetField = uint32(recSize)
	} else {
		*offsetField = 0
	}
	hdr := (*Header)(unsafe.Pointer(rec))
	hdr.Length = uint32(total)
	hdr.Opcode = uint32(opcode)

	start := len(frag.Commands)
	frag.Commands = append(frag.Commands, make([]byte, total)...)
	dst := (*T)(unsafe.Pointer(&frag.Commands[start]))
	*dst = *rec
	if len(data) > 0 {
		copy(frag.Commands[start+recSize:], data)
	}
}
