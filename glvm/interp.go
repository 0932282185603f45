// Package glvm implements the OpenGL command-fragment interpreters: a
// direct interpreter that emits every instruction unconditionally, a
// redundancy-eliminating interpreter backed by a state Cache, and the
// late-binding H-command helpers, all replaying the linked Fragment
// program model in package vm.
package glvm

import (
	"github.com/archlab/cmdvm/internal/dispatch"
	"github.com/archlab/cmdvm/vm"
)

// Stats reports how many instructions a replay visited and how many it
// suppressed as redundant.
type Stats struct {
	Total   int
	Removed int
}

// RunDirect walks frag's chain and dispatches every instruction
// straight to table, with no redundancy filtering. It is stateless and
// reentrant: replaying the same fragment twice produces identical
// driver calls (modulo H-command side effects on their own state
// blocks).
func RunDirect(table *Table, frag *vm.Fragment) Stats {
	var s Stats
	walk(frag, func(in vm.Instruction) {
		s.Total++
		execute(table, nil, in)
	})
	return s
}

// RunRedundant walks frag's chain through cache, emitting only
// non-redundant calls and counting suppressions.
func RunRedundant(table *Table, cache *Cache, frag *vm.Fragment) Stats {
	var s Stats
	before := cache.Removed()
	walk(frag, func(in vm.Instruction) {
		s.Total++
		execute(table, cache, in)
	})
	s.Removed = cache.Removed() - before
	return s
}

// walk visits every instruction in fragment order, then block order,
// then instruction order within a block.
func walk(frag *vm.Fragment, visit func(vm.Instruction)) {
	for f := frag; f != nil; f = f.Next() {
		for bi := 0; bi < f.BlockCount(); bi++ {
			b := f.Block(bi)
			for ii := 0; ii < b.Len(); ii++ {
				visit(b.At(ii))
			}
		}
	}
}

// execute dispatches one instruction. cache == nil means "no
// optimization": every cacheable opcode is emitted unconditionally,
// same as RunDirect.
func execute(t *Table, c *Cache, in vm.Instruction) {
	a := in.Args

	switch in.Code {
	case vm.BindVertexArray:
		if c == nil || c.ShouldSetVertexArray(a[0]) {
			dispatch.Call(t.BindVertexArray, a[0])
		}
	case vm.BindProgram:
		if c == nil || c.ShouldSetProgram(a[0]) {
			dispatch.Call(t.UseProgram, a[0])
		}
	case vm.ActiveTexture:
		if c == nil || c.ShouldSetActiveTexture(a[0]) {
			dispatch.Call(t.ActiveTexture, a[0])
		}
		if c != nil {
			c.activeTexture.Set(a[0])
		}
	case vm.BindSampler:
		if c == nil || c.ShouldSetSampler(a[0], a[1]) {
			dispatch.Call(t.BindSampler, a[0], a[1])
		}
	case vm.BindTexture:
		if c == nil || c.ShouldSetTexture(a[0], a[1]) {
			dispatch.Call(t.BindTexture, a[0], a[1])
		}
	case vm.BindBufferBase:
		// target, index, handle
		if c == nil || c.ShouldSetBuffer(a[1], a[2], 0, 0) {
			dispatch.Call(t.BindBufferBase, a[0], a[1], a[2])
		}
	case vm.BindBufferRange:
		// target, index, handle, offset, size
		if c == nil || c.ShouldSetBuffer(a[1], a[2], a[3], a[4]) {
			dispatch.Call(t.BindBufferRange, a[0], a[1], a[2], a[3], a[4])
		}
	case vm.BindFramebuffer:
		dispatch.Call(t.BindFramebuffer, a[0], a[1])
	case vm.Viewport:
		dispatch.Call(t.Viewport, a[0], a[1], a[2], a[3])
	case vm.Enable:
		if c == nil || c.ShouldEnable(a[0]) {
			dispatch.Call(t.Enable, a[0])
		}
	case vm.Disable:
		if c == nil || c.ShouldDisable(a[0]) {
			dispatch.Call(t.Disable, a[0])
		}
	case vm.DepthFunc:
		if c == nil || c.ShouldSetDepthFunc(a[0]) {
			dispatch.Call(t.DepthFunc, a[0])
		}
	case vm.CullFace:
		if c == nil || c.ShouldSetCullFace(a[0]) {
			dispatch.Call(t.CullFace, a[0])
		}
	case vm.BlendFuncSeparate:
		if c == nil || c.ShouldSetBlendFunc(a[0], a[1], a[2], a[3]) {
			dispatch.Call(t.BlendFuncSeparate, a[0], a[1], a[2], a[3])
		}
	case vm.BlendEquationSeparate:
		if c == nil || c.ShouldSetBlendEquation(a[0], a[1]) {
			dispatch.Call(t.BlendEquationSeparate, a[0], a[1])
		}
	case vm.BlendColor:
		if c == nil || c.ShouldSetBlendColor(a[0], a[1], a[2], a[3]) {
			dispatch.Call(t.BlendColor, a[0], a[1], a[2], a[3])
		}
	case vm.PolygonMode:
		if c == nil || c.ShouldSetPolygonMode(a[0], a[1]) {
			dispatch.Call(t.PolygonMode, a[0], a[1])
		}
	case vm.StencilFuncSeparate:
		if c == nil || c.ShouldSetStencilFunc(a[0], a[1], a[2], a[3]) {
			dispatch.Call(t.StencilFuncSeparate, a[0], a[1], a[2], a[3])
		}
	case vm.StencilOpSeparate:
		if c == nil || c.ShouldSetStencilOp(a[0], a[1], a[2], a[3]) {
			dispatch.Call(t.StencilOpSeparate, a[0], a[1], a[2], a[3])
		}
	case vm.PatchParameter:
		if c == nil || c.ShouldSetPatchParameter(a[0], a[1]) {
			dispatch.Call(t.PatchParameteri, a[0], a[1])
		}

	case vm.DepthMask:
		if c == nil || c.ShouldSetDepthMask(a[0]) {
			dispatch.Call(t.DepthMask, a[0])
		}
	case vm.StencilMask:
		if c == nil || c.ShouldSetStencilMask(a[0]) {
			dispatch.Call(t.StencilMask, a[0])
		}
	case vm.ColorMask:
		if c == nil || c.ShouldSetColorMask(a[0], a[1] != 0, a[2] != 0, a[3] != 0, a[4] != 0) {
			dispatch.Call(t.ColorMaski, a[0], a[1], a[2], a[3], a[4])
		}
	case vm.DrawBuffers:
		buffers := buffersFromArg(a[0], a[1])
		if c == nil || c.ShouldSetDrawBuffers(buffers) {
			dispatch.Call(t.DrawBuffers, a[0], a[1])
		}

	// Opcodes with no observable redundancy to eliminate: always emit.
	case vm.DrawArrays:
		dispatch.Call(t.DrawArrays, a[0], a[1], a[2])
	case vm.DrawElements:
		dispatch.Call(t.DrawElements, a[0], a[1], a[2], a[3])
	case vm.DrawArraysInstanced:
		dispatch.Call(t.DrawArraysInstanced, a[0], a[1], a[2], a[3])
	case vm.DrawElementsInstanced:
		dispatch.Call(t.DrawElementsInstanced, a[0], a[1], a[2], a[3], a[4])
	case vm.Clear:
		dispatch.Call(t.Clear, a[0])
	case vm.ClearColor:
		dispatch.Call(t.ClearColor, a[0], a[1], a[2], a[3])
	case vm.ClearDepth:
		dispatch.Call(t.ClearDepth, a[0])
	case vm.GetError:
		dispatch.Call(t.GetError)
	case vm.BindImageTexture:
		dispatch.Call(t.BindImageTexture, a[0], a[1], a[2], a[3], a[4], a[5])
	case vm.BindBuffer:
		dispatch.Call(t.BindBuffer, a[0], a[1])
	case vm.VertexAttribPointer:
		dispatch.Call(t.VertexAttribPointer, a[0], a[1], a[2], a[3], a[4], a[5])
	case vm.VertexAttribDivisor:
		dispatch.Call(t.VertexAttribDivisor, a[0], a[1])
	case vm.EnableVertexAttribArray:
		dispatch.Call(t.EnableVertexAttribArray, a[0])
	case vm.DisableVertexAttribArray:
		dispatch.Call(t.DisableVertexAttribArray, a[0])
	case vm.Uniform1fv:
		dispatch.Call(t.Uniform1fv, a[0], a[1], a[2])
	case vm.Uniform1iv:
		dispatch.Call(t.Uniform1iv, a[0], a[1], a[2])
	case vm.Uniform2fv:
		dispatch.Call(t.Uniform2fv, a[0], a[1], a[2])
	case vm.Uniform2iv:
		dispatch.Call(t.Uniform2iv, a[0], a[1], a[2])
	case vm.Uniform3fv:
		dispatch.Call(t.Uniform3fv, a[0], a[1], a[2])
	case vm.Uniform3iv:
		dispatch.Call(t.Uniform3iv, a[0], a[1], a[2])
	case vm.Uniform4fv:
		dispatch.Call(t.Uniform4fv, a[0], a[1], a[2])
	case vm.Uniform4iv:
		dispatch.Call(t.Uniform4iv, a[0], a[1], a[2])
	case vm.UniformMatrix2fv:
		dispatch.Call(t.UniformMatrix2fv, a[0], a[1], a[2], a[3])
	case vm.UniformMatrix3fv:
		dispatch.Call(t.UniformMatrix3fv, a[0], a[1], a[2], a[3])
	case vm.UniformMatrix4fv:
		dispatch.Call(t.UniformMatrix4fv, a[0], a[1], a[2], a[3])
	case vm.TexParameteri:
		dispatch.Call(t.TexParameteri, a[0], a[1], a[2])
	case vm.TexParameterf:
		dispatch.Call(t.TexParameterf, a[0], a[1], a[2])
	case vm.VertexAttrib1f:
		dispatch.Call(t.VertexAttrib1f, a[0], a[1])
	case vm.VertexAttrib2f:
		dispatch.Call(t.VertexAttrib2f, a[0], a[1], a[2])
	case vm.VertexAttrib3f:
		dispatch.Call(t.VertexAttrib3f, a[0], a[1], a[2], a[3])
	case vm.VertexAttrib4f:
		dispatch.Call(t.VertexAttrib4f, a[0], a[1], a[2], a[3], a[4])
	case vm.MultiDrawArraysIndirect:
		dispatch.Call(t.MultiDrawArraysIndirect, a[0], a[1], a[2], a[3])
	case vm.MultiDrawElementsIndirect:
		dispatch.Call(t.MultiDrawElementsIndirect, a[0], a[1], a[2], a[3], a[4])

	default:
		if in.Code >= vm.HDrawArrays {
			executeH(t, c, in)
			return
		}
		defaultDiag().UnknownOpcode(int(in.Code))
	}
}

// buffersFromArg views a (count, pointer-to-array) draw-buffer argument
// pair as a Go slice for cache comparison purposes, without copying
// past count elements.
func buffersFromArg(countArg, ptrArg uintptr) []uintptr {
	n := int(countArg)
	if n <= 0 || ptrArg == 0 {
		return nil
	}
	p := ptrOf[uintptr](ptrArg)
	return unsafeSliceUintptr(p, n)
}
