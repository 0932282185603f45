package glvm

import (
	"sync"

	"github.com/archlab/cmdvm/internal/dispatch"
)

// vaoOrphans collects VAO handles that HBindVertexAttributes created
// under one GL context but can no longer bind, because the caller's
// binding block moved to a different context. A VAO can only be
// deleted on the context that created it, so a handle observed here
// must wait until that context's interpreter calls CleanupOrphanVAOs.
var vaoOrphans = struct {
	mu        sync.Mutex
	byContext map[ContextID][]uintptr
}{byContext: make(map[ContextID][]uintptr)}

func enqueueOrphanVAO(ctx ContextID, handle uintptr) {
	vaoOrphans.mu.Lock()
	defer vaoOrphans.mu.Unlock()
	vaoOrphans.byContext[ctx] = append(vaoOrphans.byContext[ctx], handle)
}

// CleanupOrphanVAOs deletes every VAO handle queued for ctx, through
// t.DeleteVertexArrays. Callers must invoke it on a thread current to
// ctx, typically once per frame before replay.
func CleanupOrphanVAOs(t *Table, ctx ContextID) {
	vaoOrphans.mu.Lock()
	pending := vaoOrphans.byContext[ctx]
	delete(vaoOrphans.byContext, ctx)
	vaoOrphans.mu.Unlock()

	for _, h := range pending {
		handle := h
		dispatch.Call(t.DeleteVertexArrays, 1, ptrToArg(&handle))
	}
}
