//go:build tinygo

package ns16550

import "runtime/volatile"

// reg8 is a device register. volatile.Register8 keeps the compiler from
// eliding, merging or reordering the accesses.
type reg8 = volatile.Register8
