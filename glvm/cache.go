package glvm

import (
	"reflect"

	"github.com/archlab/cmdvm/internal/option"
)

// textureKey identifies one (target, unit) texture binding slot. Keying
// by unit alone would collide across target families bound to the same
// unit (see DESIGN.md).
type textureKey struct {
	target uintptr
	unit   uintptr
}

type bufferBinding struct {
	handle, offset, size uintptr
}

type polygonModeKey struct{ face, mode uintptr }
type blendFuncKey struct{ srcRGB, dstRGB, srcA, dstA uintptr }
type blendEquationKey struct{ rgb, alpha uintptr }
type blendColorKey struct{ r, g, b, a uintptr }
type stencilFuncKey struct{ face, cmp, ref, mask uintptr }
type stencilOpKey struct{ face, sfail, dpfail, dppass uintptr }

// Cache is the GL redundancy cache: the last value this interpreter
// instance actually pushed to the driver for every cacheable state,
// plus the H-command pointer-identity slots. It is owned by exactly
// one interpreter instance and must not be shared across concurrent
// replays.
type Cache struct {
	vertexArray    option.Value[uintptr]
	program        option.Value[uintptr]
	activeTexture  option.Value[uintptr]
	depthFunc      option.Value[uintptr]
	cullFace       option.Value[uintptr]
	depthMask      option.Value[uintptr]
	stencilMask    option.Value[uintptr]
	polygonMode    option.Value[polygonModeKey]
	blendFunc      option.Value[blendFuncKey]
	blendEquation  option.Value[blendEquationKey]
	blendColor     option.Value[blendColorKey]
	stencilFunc    option.Value[stencilFuncKey]
	stencilOp      option.Value[stencilOpKey]

	textures map[textureKey]uintptr
	samplers map[uintptr]uintptr
	buffers  map[uintptr]bufferBinding
	modes    map[uintptr]bool
	patch    map[uintptr]uintptr
	colorMask map[uintptr]uint8
	drawBuffers []uintptr

	// H-command pointer-identity + content-equality slots. Each holds
	// the last caller-owned state block pointer used for that H-opcode;
	// comparison is pointer identity first, then a deep content
	// comparison for the case where the caller swapped in a different
	// block with identical contents.
	hDepthTest          any
	hDepthBias          any
	hCullFace           any
	hPolygonMode        any
	hBlendMode          any
	hStencilMode        any
	hConservativeRaster any
	hMultisample        any
	hVertexInput        any

	removed int
}

// NewCache returns a freshly reset cache.
func NewCache() *Cache {
	c := &Cache{}
	c.Reset()
	return c
}

// Reset restores every sentinel to "unset", exactly as a brand new
// Cache would start.
func (c *Cache) Reset() {
	c.vertexArray.Reset()
	c.program.Reset()
	c.activeTexture.Reset()
	c.depthFunc.Reset()
	c.cullFace.Reset()
	c.depthMask.Reset()
	c.stencilMask.Reset()
	c.polygonMode.Reset()
	c.blendFunc.Reset()
	c.blendEquation.Reset()
	c.blendColor.Reset()
	c.stencilFunc.Reset()
	c.stencilOp.Reset()

	c.textures = make(map[textureKey]uintptr)
	c.samplers = make(map[uintptr]uintptr)
	c.buffers = make(map[uintptr]bufferBinding)
	c.modes = make(map[uintptr]bool)
	c.patch = make(map[uintptr]uintptr)
	c.colorMask = make(map[uintptr]uint8)
	c.drawBuffers = nil

	c.hDepthTest = nil
	c.hDepthBias = nil
	c.hCullFace = nil
	c.hPolygonMode = nil
	c.hBlendMode = nil
	c.hStencilMode = nil
	c.hConservativeRaster = nil
	c.hMultisample = nil
	c.hVertexInput = nil

	c.removed = 0
}

// Removed reports the number of instructions suppressed since the last
// Reset.
func (c *Cache) Removed() int { return c.removed }

func (c *Cache) suppress() { c.removed++ }

// --- scalar / tuple / family predicates ---

func (c *Cache) ShouldSetVertexArray(vao uintptr) bool   { return c.scalar(&c.vertexArray, vao) }
func (c *Cache) ShouldSetProgram(p uintptr) bool         { return c.scalar(&c.program, p) }
func (c *Cache) ShouldSetActiveTexture(u uintptr) bool   { return c.scalar(&c.activeTexture, u) }
func (c *Cache) ShouldSetDepthFunc(f uintptr) bool       { return c.scalar(&c.depthFunc, f) }
func (c *Cache) ShouldSetCullFace(f uintptr) bool        { return c.scalar(&c.cullFace, f) }
func (c *Cache) ShouldSetDepthMask(m uintptr) bool       { return c.scalar(&c.depthMask, m) }
func (c *Cache) ShouldSetStencilMask(m uintptr) bool     { return c.scalar(&c.stencilMask, m) }

func (c *Cache) scalar(slot *option.Value[uintptr], v uintptr) bool {
	if slot.Set(v) {
		return true
	}
	c.suppress()
	return false
}

// ActiveTextureUnit returns the last value applied via ActiveTexture,
// used by ShouldSetTexture to key the per-unit texture map.
func (c *Cache) ActiveTextureUnit() uintptr {
	u, _ := c.activeTexture.Get()
	return u
}

func (c *Cache) ShouldSetSampler(index, handle uintptr) bool {
	if cur, ok := c.samplers[index]; ok && cur == handle {
		c.suppress()
		return false
	}
	c.samplers[index] = handle
	return true
}

func (c *Cache) ShouldSetTexture(target, handle uintptr) bool {
	key := textureKey{target: target, unit: c.ActiveTextureUnit()}
	if cur, ok := c.textures[key]; ok && cur == handle {
		c.suppress()
		return false
	}
	c.textures[key] = handle
	return true
}

// ShouldSetBuffer implements BindBufferBase/BindBufferRange: keyed by
// index only, base maps to (handle,0,0).
func (c *Cache) ShouldSetBuffer(index, handle, offset, size uintptr) bool {
	next := bufferBinding{handle: handle, offset: offset, size: size}
	if cur, ok := c.buffers[index]; ok && cur == next {
		c.suppress()
		return false
	}
	c.buffers[index] = next
	return true
}

func (c *Cache) ShouldEnable(flag uintptr) bool  { return c.mode(flag, true) }
func (c *Cache) ShouldDisable(flag uintptr) bool { return c.mode(flag, false) }

func (c *Cache) mode(flag uintptr, want bool) bool {
	if cur, ok := c.modes[flag]; ok && cur == want {
		c.suppress()
		return false
	}
	c.modes[flag] = want
	return true
}

func (c *Cache) ShouldSetPolygonMode(face, mode uintptr) bool {
	return c.tuple(&c.polygonMode, polygonModeKey{face, mode})
}

func (c *Cache) ShouldSetBlendFunc(srcRGB, dstRGB, srcA, dstA uintptr) bool {
	return c.tuple(&c.blendFunc, blendFuncKey{srcRGB, dstRGB, srcA, dstA})
}

func (c *Cache) ShouldSetBlendEquation(rgb, alpha uintptr) bool {
	return c.tuple(&c.blendEquation, blendEquationKey{rgb, alpha})
}

func (c *Cache) ShouldSetBlendColor(r, g, b, a uintptr) bool {
	return c.tuple(&c.blendColor, blendColorKey{r, g, b, a})
}

func (c *Cache) ShouldSetStencilFunc(face, cmp, ref, mask uintptr) bool {
	return c.tuple(&c.stencilFunc, stencilFuncKey{face, cmp, ref, mask})
}

func (c *Cache) ShouldSetStencilOp(face, sfail, dpfail, dppass uintptr) bool {
	return c.tuple(&c.stencilOp, stencilOpKey{face, sfail, dpfail, dppass})
}

func (c *Cache) tuple(slot any, value any) bool {
	switch s := slot.(type) {
	case *option.Value[polygonModeKey]:
		if s.Set(value.(polygonModeKey)) {
			return true
		}
	case *option.Value[blendFuncKey]:
		if s.Set(value.(blendFuncKey)) {
			return true
		}
	case *option.Value[blendEquationKey]:
		if s.Set(value.(blendEquationKey)) {
			return true
		}
	case *option.Value[blendColorKey]:
		if s.Set(value.(blendColorKey)) {
			return true
		}
	case *option.Value[stencilFuncKey]:
		if s.Set(value.(stencilFuncKey)) {
			return true
		}
	case *option.Value[stencilOpKey]:
		if s.Set(value.(stencilOpKey)) {
			return true
		}
	}
	c.suppress()
	return false
}

func (c *Cache) ShouldSetPatchParameter(name, value uintptr) bool {
	if cur, ok := c.patch[name]; ok && cur == value {
		c.suppress()
		return false
	}
	c.patch[name] = value
	return true
}

// ShouldSetColorMask packs the four bools into a 4-bit mask keyed by
// index.
func (c *Cache) ShouldSetColorMask(index uintptr, r, g, b, a bool) bool {
	mask := packColorMask(r, g, b, a)
	if cur, ok := c.colorMask[index]; ok && cur == mask {
		c.suppress()
		return false
	}
	c.colorMask[index] = mask
	return true
}

func packColorMask(r, g, b, a bool) uint8 {
	var m uint8
	if r {
		m |= 1 << 3
	}
	if g {
		m |= 1 << 2
	}
	if b {
		m |= 1 << 1
	}
	if a {
		m |= 1
	}
	return m
}

// ShouldSetDrawBuffers compares element-wise with the currently bound
// ordered list; emits iff lengths differ or any element differs, and
// on emit replaces the stored list.
func (c *Cache) ShouldSetDrawBuffers(buffers []uintptr) bool {
	if len(buffers) == len(c.drawBuffers) {
		equal := true
		for i := range buffers {
			if buffers[i] != c.drawBuffers[i] {
				equal = false
				break
			}
		}
		if equal {
			c.suppress()
			return false
		}
	}
	c.drawBuffers = append([]uintptr(nil), buffers...)
	return true
}

// --- H-command pointer-identity + content-equality slots ---

func (c *Cache) hShould(slot *any, block any) bool {
	if *slot != nil {
		if *slot == block {
			c.suppress()
			return false
		}
		if reflect.DeepEqual(*slot, block) {
			*slot = block
			c.suppress()
			return false
		}
	}
	*slot = block
	return true
}

func (c *Cache) HShouldSetDepthTest(block any) bool          { return c.hShould(&c.hDepthTest, block) }
func (c *Cache) HShouldSetDepthBias(block any) bool          { return c.hShould(&c.hDepthBias, block) }
func (c *Cache) HShouldSetCullFace(block any) bool           { return c.hShould(&c.hCullFace, block) }
func (c *Cache) HShouldSetPolygonMode(block any) bool        { return c.hShould(&c.hPolygonMode, block) }
func (c *Cache) HShouldSetBlendMode(block any) bool          { return c.hShould(&c.hBlendMode, block) }
func (c *Cache) HShouldSetStencilMode(block any) bool        { return c.hShould(&c.hStencilMode, block) }
func (c *Cache) HShouldSetConservativeRaster(block any) bool { return c.hShould(&c.hConservativeRaster, block) }
func (c *Cache) HShouldSetMultisample(block any) bool        { return c.hShould(&c.hMultisample, block) }
func (c *Cache) HShouldBindVertexAttributes(block any) bool  { return c.hShould(&c.hVertexInput, block) }
