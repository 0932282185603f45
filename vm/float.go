package vm

import "math"

// float32FromBits reinterprets the low 32 bits of a uintptr argument as
// an IEEE-754 float32, the encoding used to smuggle float-valued
// arguments (uniforms, vertex-attrib constants) through the otherwise
// integer/pointer instruction slots.
func float32FromBits(v uintptr) float32 {
	return math.Float32frombits(uint32(v))
}

// Float32ToArg packs f into a uintptr the way AppendN expects a
// float-valued argument to be packed.
func Float32ToArg(f float32) uintptr {
	return uintptr(math.Float32bits(f))
}
