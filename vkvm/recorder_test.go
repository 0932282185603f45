package vkvm

import (
	"fmt"

	"github.com/archlab/cmdvm/internal/dispatch"
)

type call struct {
	name string
	args []uintptr
}

func (c call) String() string { return fmt.Sprintf("%s%v", c.name, c.args) }

// recorder builds a Table whose slots are distinct sentinel addresses
// and intercepts dispatch.Call to log each invocation against the
// entry point name, instead of touching a real Vulkan driver.
type recorder struct {
	calls []call
	names map[dispatch.Slot]string
}

func newRecorder() *recorder { return &recorder{names: make(map[dispatch.Slot]string)} }

func (r *recorder) table() *Table {
	t := &Table{}
	next := dispatch.Slot(1)
	for _, e := range t.entries() {
		*e.slot = next
		r.names[next] = e.name
		next++
	}
	dispatch.Hook = func(s dispatch.Slot, args []uintptr) uintptr {
		r.calls = append(r.calls, call{name: r.names[s], args: append([]uintptr(nil), args...)})
		return 0
	}
	return t
}

func (r *recorder) strings() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.String()
	}
	return out
}
