// cmd/probe/main.go
// Prints the driver counters and a register snapshot before and after a short
// loopback exchange. Build with -tags ns16550debug.

//go:build ns16550debug && (!tinygo || virt)

package main

import "github.com/jangala-dev/tinygo-ns16550/ns16550"

func printStats(d *ns16550.Driver, u *ns16550.UART, label string) {
	s := d.DebugStats()
	r := u.DebugRegs()
	println("==", label)
	println("Driver: puts=", s.Puts, " polls=", s.Polls, " empty=", s.EmptyPolls, " received=", s.Received)
	println("Regs:   IER=", r.IER, " LCR=", r.LCR, " MCR=", r.MCR, " LSR=", r.LSR, " MSR=", r.MSR, " SPR=", r.SPR)
}

func main() {
	regs := openDevice()
	u := ns16550.New(regs)
	d := ns16550.NewDriver(u)

	printStats(d, u, "after init")

	mcr := regs.Load(ns16550.MCR)
	regs.Store(ns16550.MCR, mcr|ns16550.MCRLoopback)

	const msg = "probe"
	var buf [len(msg)]byte
	n := 0
	for i := 0; i < len(msg); i++ {
		d.Put(msg[i])
		for polls := 0; polls < 1000; polls++ {
			if c, ok := d.Get(); ok {
				buf[n] = c
				n++
				break
			}
		}
	}
	printStats(d, u, "after loopback")

	regs.Store(ns16550.MCR, mcr)

	if string(buf[:n]) != msg {
		println("[FAIL] looped back", n, "of", len(msg), "bytes")
		return
	}
	println("[PASS] loopback", msg)
}
