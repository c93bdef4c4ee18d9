// Package sim emulates a 16550-compatible UART at register level so the
// ns16550 driver can run, and be tested, on a host without hardware.
//
// Transmission is instantaneous: THRE and TEMT always read as set and bytes
// written to THR go straight to the output (or, with MCR loopback, back into
// the receive FIFO).
package sim

import (
	"io"
	"sync"

	"github.com/jangala-dev/tinygo-ns16550/ns16550"
)

// FIFODepth is the receive FIFO size with FCR bit 0 set. With FIFOs disabled
// the receiver holds a single byte.
const FIFODepth = 16

// Access describes one register access, in the order the device saw it.
type Access struct {
	Reg   ns16550.Reg
	Store bool
	Value uint8
	DLAB  bool // LCR.DLAB at the time of the access
}

// State is a snapshot of every logical register.
type State struct {
	IER, ISR, FCR, LCR, MCR, LSR, MSR, SPR uint8
	DLL, DLM                               uint8
	RxQueued                               int
}

// Divisor returns the programmed baud divisor.
func (s State) Divisor() uint16 { return uint16(s.DLM)<<8 | uint16(s.DLL) }

// UART is an emulated 16550. It implements ns16550.RegisterFile and is safe
// for concurrent use.
type UART struct {
	mu sync.Mutex

	ier, fcr, lcr, mcr, msr, spr uint8
	dll, dlm                     uint8
	overrun                      bool

	rx  fifo
	out io.Writer

	onAccess func(Access)
}

var _ ns16550.RegisterFile = (*UART)(nil)

// New returns a UART that writes transmitted bytes to out. out may be nil,
// in which case they are discarded.
func New(out io.Writer) *UART {
	return &UART{out: out}
}

// OnAccess registers fn to observe every register access. fn runs with the
// device locked and must not call back into it.
func (u *UART) OnAccess(fn func(Access)) {
	u.mu.Lock()
	u.onAccess = fn
	u.mu.Unlock()
}

func (u *UART) dlab() bool { return u.lcr&ns16550.LCRDLAB != 0 }

func (u *UART) depth() int {
	if u.fcr&ns16550.FCREnable != 0 {
		return FIFODepth
	}
	return 1
}

func (u *UART) Load(r ns16550.Reg) uint8 {
	u.mu.Lock()
	defer u.mu.Unlock()

	v := u.loadLocked(r)
	if u.onAccess != nil {
		u.onAccess(Access{Reg: r, Value: v, DLAB: u.dlab()})
	}
	return v
}

func (u *UART) loadLocked(r ns16550.Reg) uint8 {
	switch r {
	case ns16550.RHR:
		if u.dlab() {
			return u.dll
		}
		b, _ := u.rx.get()
		return b
	case ns16550.IER:
		if u.dlab() {
			return u.dlm
		}
		return u.ier
	case ns16550.ISR:
		return u.isrLocked()
	case ns16550.LCR:
		return u.lcr
	case ns16550.MCR:
		return u.mcr
	case ns16550.LSR:
		lsr := u.lsrLocked()
		u.overrun = false
		return lsr
	case ns16550.MSR:
		return u.msr
	case ns16550.SPR:
		return u.spr
	}
	return 0
}

func (u *UART) isrLocked() uint8 {
	isr := ns16550.ISRNoPending
	if u.ier&ns16550.IERReceiverData != 0 && u.rx.used() > 0 {
		isr = ns16550.ISRReceiveData
	}
	if u.fcr&ns16550.FCREnable != 0 {
		isr |= ns16550.ISRFIFOEnabled
	}
	return isr
}

func (u *UART) lsrLocked() uint8 {
	lsr := ns16550.LSRTHREmpty | ns16550.LSRTxEmpty
	if u.rx.used() > 0 {
		lsr |= ns16550.LSRDataReady
	}
	if u.overrun {
		lsr |= ns16550.LSROverrun
	}
	return lsr
}

func (u *UART) Store(r ns16550.Reg, v uint8) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.onAccess != nil {
		u.onAccess(Access{Reg: r, Store: true, Value: v, DLAB: u.dlab()})
	}

	switch r {
	case ns16550.THR:
		if u.dlab() {
			u.dll = v
			return
		}
		u.transmitLocked(v)
	case ns16550.IER:
		if u.dlab() {
			u.dlm = v
			return
		}
		u.ier = v & 0x0f
	case ns16550.FCR:
		if v&ns16550.FCRClearRX != 0 {
			u.rx.clear()
		}
		if (u.fcr^v)&ns16550.FCREnable != 0 {
			// Toggling the FIFO enable resets both FIFOs.
			u.rx.clear()
		}
		u.fcr = v &^ (ns16550.FCRClearRX | ns16550.FCRClearTX)
	case ns16550.LCR:
		u.lcr = v
	case ns16550.MCR:
		u.mcr = v & 0x1f
	case ns16550.SPR:
		u.spr = v
	}
	// LSR and MSR ignore writes.
}

func (u *UART) transmitLocked(v uint8) {
	if u.mcr&ns16550.MCRLoopback != 0 {
		u.receiveLocked(v)
		return
	}
	if u.out != nil {
		_, _ = u.out.Write([]byte{v})
	}
}

func (u *UART) receiveLocked(v uint8) bool {
	if u.rx.used() >= u.depth() {
		u.overrun = true
		return false
	}
	u.rx.put(v)
	return true
}

// Enqueue delivers host input to the receiver and returns how many bytes fit.
// Bytes that do not fit are not consumed, so callers can retry them later.
// Input is ignored while loopback is on, as on real parts.
func (u *UART) Enqueue(p []byte) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.mcr&ns16550.MCRLoopback != 0 {
		return len(p)
	}
	n := 0
	for n < len(p) && u.rx.used() < u.depth() {
		u.rx.put(p[n])
		n++
	}
	return n
}

// State returns a snapshot of the device without side effects.
func (u *UART) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()

	return State{
		IER:      u.ier,
		ISR:      u.isrLocked(),
		FCR:      u.fcr,
		LCR:      u.lcr,
		MCR:      u.mcr,
		LSR:      u.lsrLocked(),
		MSR:      u.msr,
		SPR:      u.spr,
		DLL:      u.dll,
		DLM:      u.dlm,
		RxQueued: u.rx.used(),
	}
}
