// Package dispatch provides the cgo-free "call a raw driver function
// pointer" primitive shared by the GLVM and VKVM dispatch tables. Both
// back-ends resolve entry points to plain uintptrs at init time, via a
// caller-supplied loader, and never touch cgo afterward; this package
// is the only place that actually crosses into C calling convention,
// using ebitengine/purego to call those resolved addresses portably
// across platforms.
package dispatch

import "github.com/ebitengine/purego"

// Slot is a single resolved driver entry point. A zero Slot means the
// loader could not resolve the symbol.
type Slot uintptr

// Valid reports whether the slot holds a resolved address.
func (s Slot) Valid() bool { return s != 0 }

// Hook, when non-nil, intercepts every Call instead of issuing a real
// syscall. Tests set this to record or fake driver calls without
// linking against a real GL or Vulkan driver.
var Hook func(s Slot, args []uintptr) uintptr

// Call invokes the function pointer held in s with the given
// pointer-sized arguments and returns its pointer-sized result. Calling
// an invalid (zero) slot is a no-op that returns 0, so an unresolved
// mandatory entry point simply does nothing at replay; callers with an
// optional entry point check Valid() first and fall back to an
// alternate call sequence when it is unresolved.
func Call(s Slot, args ...uintptr) uintptr {
	if Hook != nil {
		return Hook(s, args)
	}
	if !s.Valid() {
		return 0
	}
	r1, _, _ := purego.SyscallN(uintptr(s), args...)
	return r1
}
