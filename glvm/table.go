package glvm

import "github.com/archlab/cmdvm/internal/dispatch"

// ProcLoader resolves one driver entry point by name, mirroring the
// glXGetProcAddress/wglGetProcAddress/eglGetProcAddress family a
// platform's GL loader provides.
type ProcLoader func(name string) uintptr

// Table is the GL dispatch table: every driver entry point the GLVM
// interpreters and H-commands may call, resolved once at Init and
// never mutated afterward. A zero-valued field means the loader could
// not resolve that symbol; callers that have a fallback check Valid()
// before using the optional ones.
type Table struct {
	BindVertexArray         dispatch.Slot
	UseProgram              dispatch.Slot
	ActiveTexture           dispatch.Slot
	BindSampler             dispatch.Slot
	BindTexture             dispatch.Slot
	BindBufferBase          dispatch.Slot
	BindBufferRange         dispatch.Slot
	BindFramebuffer         dispatch.Slot
	Viewport                dispatch.Slot
	Enable                  dispatch.Slot
	Disable                 dispatch.Slot
	DepthFunc               dispatch.Slot
	CullFace                dispatch.Slot
	BlendFuncSeparate       dispatch.Slot
	BlendEquationSeparate   dispatch.Slot
	BlendColor              dispatch.Slot
	PolygonMode             dispatch.Slot
	StencilFuncSeparate     dispatch.Slot
	StencilOpSeparate       dispatch.Slot
	PatchParameteri         dispatch.Slot
	DrawElements            dispatch.Slot
	DrawArrays              dispatch.Slot
	DrawElementsInstanced   dispatch.Slot
	DrawArraysInstanced     dispatch.Slot
	Clear                   dispatch.Slot
	BindImageTexture        dispatch.Slot
	ClearColor              dispatch.Slot
	ClearDepth              dispatch.Slot
	GetError                dispatch.Slot
	BindBuffer              dispatch.Slot
	VertexAttribPointer     dispatch.Slot
	VertexAttribIPointer    dispatch.Slot
	VertexAttribDivisor     dispatch.Slot
	EnableVertexAttribArray  dispatch.Slot
	DisableVertexAttribArray dispatch.Slot
	Uniform1fv              dispatch.Slot
	Uniform1iv              dispatch.Slot
	Uniform2fv              dispatch.Slot
	Uniform2iv              dispatch.Slot
	Uniform3fv              dispatch.Slot
	Uniform3iv              dispatch.Slot
	Uniform4fv              dispatch.Slot
	Uniform4iv              dispatch.Slot
	UniformMatrix2fv        dispatch.Slot
	UniformMatrix3fv        dispatch.Slot
	UniformMatrix4fv        dispatch.Slot
	TexParameteri           dispatch.Slot
	TexParameterf           dispatch.Slot
	VertexAttrib1f          dispatch.Slot
	VertexAttrib2f          dispatch.Slot
	VertexAttrib3f          dispatch.Slot
	VertexAttrib4f          dispatch.Slot
	MultiDrawArraysIndirect dispatch.Slot // optional, preferred by HDrawArraysIndirect
	MultiDrawElementsIndirect dispatch.Slot // optional, preferred by HDrawElementsIndirect
	DepthMask               dispatch.Slot
	ColorMaski              dispatch.Slot
	StencilMask             dispatch.Slot
	DrawBuffers             dispatch.Slot

	// Entry points used only by H-commands, including the per-driver
	// fallbacks for missing optional entries.
	DrawArraysInstancedBaseInstance            dispatch.Slot
	DrawElementsInstancedBaseVertexBaseInstance dispatch.Slot
	DrawElementsBaseVertex                     dispatch.Slot // non-instanced base_vertex != 0 draws
	DrawArraysIndirect                         dispatch.Slot // fallback when MultiDrawArraysIndirect is absent
	DrawElementsIndirect                       dispatch.Slot // fallback when MultiDrawElementsIndirect is absent
	PolygonOffset                              dispatch.Slot
	PolygonOffsetClamp                         dispatch.Slot // optional
	GenVertexArrays                            dispatch.Slot
	DeleteVertexArrays                         dispatch.Slot
	BindTextures                               dispatch.Slot // optional, batched; HBindTextures binds per unit when absent
	BindSamplers                                dispatch.Slot // optional, batched; HBindSamplers binds per unit when absent
}

// entries lists every (field pointer, GL symbol name, optional) triple
// Init resolves. Keeping this as data rather than a long hand-written
// Init body makes the "missing optional entry -> zero slot, no error"
// contract (§6.4) mechanical and easy to extend.
func (t *Table) entries() []struct {
	slot     *dispatch.Slot
	name     string
	optional bool
} {
	return []struct {
		slot     *dispatch.Slot
		name     string
		optional bool
	}{
		{&t.BindVertexArray, "glBindVertexArray", false},
		{&t.UseProgram, "glUseProgram", false},
		{&t.ActiveTexture, "glActiveTexture", false},
		{&t.BindSampler, "glBindSampler", false},
		{&t.BindTexture, "glBindTexture", false},
		{&t.BindBufferBase, "glBindBufferBase", false},
		{&t.BindBufferRange, "glBindBufferRange", false},
		{&t.BindFramebuffer, "glBindFramebuffer", false},
		{&t.Viewport, "glViewport", false},
		{&t.Enable, "glEnable", false},
		{&t.Disable, "glDisable", false},
		{&t.DepthFunc, "glDepthFunc", false},
		{&t.CullFace, "glCullFace", false},
		{&t.BlendFuncSeparate, "glBlendFuncSeparate", false},
		{&t.BlendEquationSeparate, "glBlendEquationSeparate", false},
		{&t.BlendColor, "glBlendColor", false},
		{&t.PolygonMode, "glPolygonMode", false},
		{&t.StencilFuncSeparate, "glStencilFuncSeparate", false},
		{&t.StencilOpSeparate, "glStencilOpSeparate", false},
		{&t.PatchParameteri, "glPatchParameteri", false},
		{&t.DrawElements, "glDrawElements", false},
		{&t.DrawArrays, "glDrawArrays", false},
		{&t.DrawElementsInstanced, "glDrawElementsInstanced", false},
		{&t.DrawArraysInstanced, "glDrawArraysInstanced", false},
		{&t.Clear, "glClear", false},
		{&t.BindImageTexture, "glBindImageTexture", false},
		{&t.ClearColor, "glClearColor", false},
		{&t.ClearDepth, "glClearDepth", false},
		{&t.GetError, "glGetError", false},
		{&t.BindBuffer, "glBindBuffer", false},
		{&t.VertexAttribPointer, "glVertexAttribPointer", false},
		{&t.VertexAttribIPointer, "glVertexAttribIPointer", false},
		{&t.VertexAttribDivisor, "glVertexAttribDivisor", false},
		{&t.EnableVertexAttribArray, "glEnableVertexAttribArray", false},
		{&t.DisableVertexAttribArray, "glDisableVertexAttribArray", false},
		{&t.Uniform1fv, "glUniform1fv", false},
		{&t.Uniform1iv, "glUniform1iv", false},
		{&t.Uniform2fv, "glUniform2fv", false},
		{&t.Uniform2iv, "glUniform2iv", false},
		{&t.Uniform3fv, "glUniform3fv", false},
		{&t.Uniform3iv, "glUniform3iv", false},
		{&t.Uniform4fv, "glUniform4fv", false},
		{&t.Uniform4iv, "glUniform4iv", false},
		{&t.UniformMatrix2fv, "glUniformMatrix2fv", false},
		{&t.UniformMatrix3fv, "glUniformMatrix3fv", false},
		{&t.UniformMatrix4fv, "glUniformMatrix4fv", false},
		{&t.TexParameteri, "glTexParameteri", false},
		{&t.TexParameterf, "glTexParameterf", false},
		{&t.VertexAttrib1f, "glVertexAttrib1f", false},
		{&t.VertexAttrib2f, "glVertexAttrib2f", false},
		{&t.VertexAttrib3f, "glVertexAttrib3f", false},
		{&t.VertexAttrib4f, "glVertexAttrib4f", false},
		{&t.MultiDrawArraysIndirect, "glMultiDrawArraysIndirect", true},
		{&t.MultiDrawElementsIndirect, "glMultiDrawElementsIndirect", true},
		{&t.DepthMask, "glDepthMask", false},
		{&t.ColorMaski, "glColorMaski", false},
		{&t.StencilMask, "glStencilMask", false},
		{&t.DrawBuffers, "glDrawBuffers", false},

		{&t.DrawArraysInstancedBaseInstance, "glDrawArraysInstancedBaseInstance", false},
		{&t.DrawElementsInstancedBaseVertexBaseInstance, "glDrawElementsInstancedBaseVertexBaseInstance", false},
		{&t.DrawElementsBaseVertex, "glDrawElementsBaseVertex", false},
		{&t.DrawArraysIndirect, "glDrawArraysIndirect", false},
		{&t.DrawElementsIndirect, "glDrawElementsIndirect", false},
		{&t.PolygonOffset, "glPolygonOffset", false},
		{&t.PolygonOffsetClamp, "glPolygonOffsetClampEXT", true},
		{&t.GenVertexArrays, "glGenVertexArrays", false},
		{&t.DeleteVertexArrays, "glDeleteVertexArrays", false},
		{&t.BindTextures, "glBindTextures", true},
		{&t.BindSamplers, "glBindSamplers", true},
	}
}

// Init resolves every entry point in the table through loader. Missing
// optional entries are left zeroed, triggering their documented
// fallback path; a missing mandatory entry is reported to sink but
// does not stop resolution of the rest, so the affected opcode simply
// no-ops at replay.
func Init(loader ProcLoader) *Table {
	t := &Table{}
	for _, e := range t.entries() {
		addr := loader(e.name)
		*e.slot = dispatch.Slot(addr)
		if addr == 0 && !e.optional {
			defaultDiag().UnresolvedEntry(e.name)
		}
	}
	return t
}
