package vkvm

import "unsafe"

// ptrTo returns the address of a caller-owned value as an
// unsafe.Pointer, for storage in a packed record field.
func ptrTo[T any](p *T) unsafe.Pointer { return unsafe.Pointer(p) }

// derefPtr reinterprets a packed record's pointer-sized field back into
// a *T. A zero address yields nil.
func derefPtr[T any](addr uintptr) *T {
	if addr == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(addr))
}

// recordFragmentPointer returns frag's address for storage in a
// CallFragment record.
func recordFragmentPointer(frag *CommandFragment) unsafe.Pointer { return unsafe.Pointer(frag) }

// derefFragment is recordFragmentPointer's read-side counterpart.
func derefFragment(addr uintptr) *CommandFragment {
	if addr == 0 {
		return nil
	}
	return (*CommandFragment)(unsafe.Pointer(addr))
}

func uintptrSlice(base unsafe.Pointer, n uint32) []uintptr {
	if base == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*uintptr)(base), int(n))
}

func byteSlice(base unsafe.Pointer, n uint32) []byte {
	if base == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(base), int(n))
}
