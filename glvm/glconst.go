package glvm

// GL enum values the H-command helpers need to issue Enable/Disable
// and face/parameter-name calls directly, without requiring every
// caller-owned block to carry its own copy of the driver constants.
const (
	glDepthTest            uintptr = 0x0B71
	glDepthClamp           uintptr = 0x864F
	glCullFaceFlag         uintptr = 0x0B44
	glBlend                uintptr = 0x0BE2
	glStencilTest          uintptr = 0x0B90
	glMultisample          uintptr = 0x809D
	glConservativeRasterNV uintptr = 0x9346

	glPolygonOffsetFill  uintptr = 0x8037
	glPolygonOffsetLine  uintptr = 0x2A02
	glPolygonOffsetPoint uintptr = 0x2A01

	glFrontAndBack uintptr = 0x0408
	glFront        uintptr = 0x0404
	glBack         uintptr = 0x0405

	glDrawIndirectBuffer uintptr = 0x8F3F

	glUnsignedByte  uintptr = 0x1401
	glUnsignedShort uintptr = 0x1403
	glUnsignedInt   uintptr = 0x1405

	// glBGRA is passed as the "size" argument of glVertexAttribPointer,
	// in place of a component count, for the reversed-byte-order color
	// attribute layout.
	glBGRA uintptr = 0x80E1
)

// indexElementSize returns the byte width of a GL index type, for
// converting HDrawElements' element-count first index into the byte
// offset glDrawElements*/glDrawElementsIndirect expect.
func indexElementSize(indexType uintptr) uintptr {
	switch indexType {
	case glUnsignedByte:
		return 1
	case glUnsignedShort:
		return 2
	default:
		return 4
	}
}
