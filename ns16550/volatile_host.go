//go:build !tinygo

package ns16550

// Host shim: runtime/volatile only exists under TinyGo. On the host a block
// is only ever mapped over ordinary memory (tests), so non-inlined accessors
// are enough to keep each access a real load or store.

type reg8 struct{ Reg uint8 }

//go:noinline
func (r *reg8) Get() uint8 { return r.Reg }

//go:noinline
func (r *reg8) Set(v uint8) { r.Reg = v }
