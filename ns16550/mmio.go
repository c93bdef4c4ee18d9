// ns16550/mmio.go

package ns16550

import "unsafe"

// RegisterFile is the byte-wide register window of a 16550-compatible UART.
// Every call is exactly one device access; implementations must not cache,
// merge or reorder them.
type RegisterFile interface {
	Load(r Reg) uint8
	Store(r Reg, v uint8)
}

// MMIO is the memory-mapped register block. Its layout matches the device,
// so a *MMIO is only ever obtained by overlaying it on the base address.
type MMIO struct {
	rthrDLL reg8
	ierDLM  reg8
	isrFCR  reg8
	lcr     reg8
	mcr     reg8
	lsr     roReg8
	msr     roReg8
	spr     roReg8
}

// MapMMIO overlays the register block on the physical address addr. The
// address is not validated.
func MapMMIO(addr uintptr) *MMIO {
	return (*MMIO)(unsafe.Pointer(addr))
}

// Addr returns the base address of the block.
func (m *MMIO) Addr() uintptr { return uintptr(unsafe.Pointer(m)) }

func (m *MMIO) Load(r Reg) uint8 {
	switch r {
	case 0:
		return m.rthrDLL.Get()
	case 1:
		return m.ierDLM.Get()
	case 2:
		return m.isrFCR.Get()
	case 3:
		return m.lcr.Get()
	case 4:
		return m.mcr.Get()
	case 5:
		return m.lsr.Get()
	case 6:
		return m.msr.Get()
	case 7:
		return m.spr.Get()
	}
	panic("ns16550: load from unknown register")
}

// Store writes v to r. Storing to LSR, MSR or SPR panics.
func (m *MMIO) Store(r Reg, v uint8) {
	switch r {
	case 0:
		m.rthrDLL.Set(v)
	case 1:
		m.ierDLM.Set(v)
	case 2:
		m.isrFCR.Set(v)
	case 3:
		m.lcr.Set(v)
	case 4:
		m.mcr.Set(v)
	case 5, 6, 7:
		panic("ns16550: store to read-only register " + r.String())
	default:
		panic("ns16550: store to unknown register")
	}
}

// roReg8 hides Set so the read-only registers cannot be written through the
// struct either.
type roReg8 struct{ r reg8 }

func (r *roReg8) Get() uint8 { return r.r.Get() }
