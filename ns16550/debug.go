//go:build ns16550debug

package ns16550

import "sync/atomic"

// Stats holds counters since the last reset.
type Stats struct {
	Puts       uint32 // bytes written to THR
	Polls      uint32 // Get calls
	EmptyPolls uint32 // Get calls that found no data
	Received   uint32 // bytes read from RHR
}

func (d *Driver) DebugReset() {
	d.stats = Stats{}
}

func (d *Driver) DebugStats() Stats {
	return Stats{
		Puts:       atomic.LoadUint32(&d.stats.Puts),
		Polls:      atomic.LoadUint32(&d.stats.Polls),
		EmptyPolls: atomic.LoadUint32(&d.stats.EmptyPolls),
		Received:   atomic.LoadUint32(&d.stats.Received),
	}
}

func (d *Driver) dbgPut() {
	atomic.AddUint32(&d.stats.Puts, 1)
}

func (d *Driver) dbgPoll(ready bool) {
	atomic.AddUint32(&d.stats.Polls, 1)
	if ready {
		atomic.AddUint32(&d.stats.Received, 1)
	} else {
		atomic.AddUint32(&d.stats.EmptyPolls, 1)
	}
}

// Regs is a snapshot of the registers that can be read without side effects.
// RHR and ISR are left out: reading them consumes data or clears interrupts.
type Regs struct {
	IER uint8 // reads DLM while DLAB is set
	LCR uint8
	MCR uint8
	LSR uint8 // reading clears the overrun flag on real parts
	MSR uint8
	SPR uint8
}

func (u *UART) DebugRegs() Regs {
	return Regs{
		IER: u.regs.Load(IER),
		LCR: u.regs.Load(LCR),
		MCR: u.regs.Load(MCR),
		LSR: u.regs.Load(LSR),
		MSR: u.regs.Load(MSR),
		SPR: u.regs.Load(SPR),
	}
}
