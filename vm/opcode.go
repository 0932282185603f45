// Package vm implements the fragment/block program model shared by the
// GLVM and VKVM command interpreters: a fixed-arity instruction encoding,
// an ordered block-of-instructions container, and a singly linked chain
// of fragments used to build a program once and replay it many times.
package vm

// Opcode identifies the operation an Instruction performs. Codes 1-57
// are one-to-one with GL entry points; codes 100 and above are H-command
// composites that dereference caller-owned state blocks at replay time.
type Opcode int

const (
	BindVertexArray Opcode = iota + 1
	BindProgram
	ActiveTexture
	BindSampler
	BindTexture
	BindBufferBase
	BindBufferRange
	BindFramebuffer
	Viewport
	Enable
	Disable
	DepthFunc
	CullFace
	BlendFuncSeparate
	BlendEquationSeparate
	BlendColor
	PolygonMode
	StencilFuncSeparate
	StencilOpSeparate
	PatchParameter
	DrawElements
	DrawArrays
	DrawElementsInstanced
	DrawArraysInstanced
	Clear
	BindImageTexture
	ClearColor
	ClearDepth
	GetError
	BindBuffer
	VertexAttribPointer
	VertexAttribDivisor
	EnableVertexAttribArray
	DisableVertexAttribArray
	Uniform1fv
	Uniform1iv
	Uniform2fv
	Uniform2iv
	Uniform3fv
	Uniform3iv
	Uniform4fv
	Uniform4iv
	UniformMatrix2fv
	UniformMatrix3fv
	UniformMatrix4fv
	TexParameteri
	TexParameterf
	VertexAttrib1f
	VertexAttrib2f
	VertexAttrib3f
	VertexAttrib4f
	MultiDrawArraysIndirect
	MultiDrawElementsIndirect
	DepthMask
	ColorMask
	StencilMask
	DrawBuffers
)

// H-command opcodes. Fifteen composite operations are needed to cover
// depth bias and batched texture/sampler binding alongside the core
// draw and state-group commands, so the range runs 100-114 (see
// DESIGN.md).
const (
	HDrawArrays Opcode = iota + 100
	HDrawElements
	HDrawArraysIndirect
	HDrawElementsIndirect
	HSetDepthTest
	HSetDepthBias
	HSetCullFace
	HSetPolygonMode
	HSetBlendMode
	HSetStencilMode
	HSetConservativeRaster
	HSetMultisample
	HBindTextures
	HBindSamplers
	HBindVertexAttributes
)

// arity holds the fixed argument count for every opcode the VM knows
// about, exposed through Arity. AppendN does not consult it (it only
// truncates to MaxArgs), and the interpreter never validates arity at
// replay.
var arity = map[Opcode]int{
	BindVertexArray:         1,
	BindProgram:             1,
	ActiveTexture:           1,
	BindSampler:             2,
	BindTexture:             2,
	BindBufferBase:          3,
	BindBufferRange:         5,
	BindFramebuffer:         2,
	Viewport:                4,
	Enable:                  1,
	Disable:                 1,
	DepthFunc:               1,
	CullFace:                1,
	BlendFuncSeparate:       4,
	BlendEquationSeparate:   2,
	BlendColor:              4,
	PolygonMode:             2,
	StencilFuncSeparate:     4,
	StencilOpSeparate:       4,
	PatchParameter:          2,
	DrawElements:            4,
	DrawArrays:              3,
	DrawElementsInstanced:   5,
	DrawArraysInstanced:     4,
	Clear:                   1,
	BindImageTexture:        6,
	ClearColor:              4,
	ClearDepth:              1,
	GetError:                0,
	BindBuffer:              2,
	VertexAttribPointer:     6,
	VertexAttribDivisor:     2,
	EnableVertexAttribArray: 1,
	DisableVertexAttribArray: 1,
	Uniform1fv:              3,
	Uniform1iv:              3,
	Uniform2fv:              3,
	Uniform2iv:              3,
	Uniform3fv:              3,
	Uniform3iv:              3,
	Uniform4fv:              3,
	Uniform4iv:              3,
	UniformMatrix2fv:        4,
	UniformMatrix3fv:        4,
	UniformMatrix4fv:        4,
	TexParameteri:           3,
	TexParameterf:           3,
	VertexAttrib1f:          2,
	VertexAttrib2f:          3,
	VertexAttrib3f:          4,
	VertexAttrib4f:          5,
	MultiDrawArraysIndirect: 4,
	MultiDrawElementsIndirect: 5,
	DepthMask:               1,
	ColorMask:               5,
	StencilMask:             1,
	DrawBuffers:             2,

	HDrawArrays:            4,
	HDrawElements:          5,
	HDrawArraysIndirect:    4,
	HDrawElementsIndirect:  5,
	HSetDepthTest:          1,
	HSetDepthBias:          1,
	HSetCullFace:           1,
	HSetPolygonMode:        1,
	HSetBlendMode:          1,
	HSetStencilMode:        1,
	HSetConservativeRaster: 1,
	HSetMultisample:        1,
	HBindTextures:          4,
	HBindSamplers:          3,
	HBindVertexAttributes:  2,
}

// Arity reports the fixed argument count for code, and whether code is
// a known opcode.
func Arity(code Opcode) (n int, known bool) {
	n, known = arity[code]
	return
}
