// cmd/integrity/main.go
// Loopback integrity test for the ns16550 driver. The UART is put into its
// internal loopback mode (MCR bit 4) so no wiring is needed; QEMU's 16550
// honours the bit as well.

//go:build !tinygo || virt

package main

import (
	"context"
	"time"

	"github.com/jangala-dev/tinygo-ns16550/integrity"
	"github.com/jangala-dev/tinygo-ns16550/ns16550"
)

/*** Tunables ***/
const (
	defaultFrames = 64
	defaultSize   = 32
	timeout       = 10 * time.Second
)

func main() {
	cfg := config()
	regs := openDevice()

	println("ns16550 integrity test")
	println("frames =", cfg.Frames, "  bytes/frame =", cfg.Size)

	uart := ns16550.NewDriver(ns16550.New(regs))

	// Loop TX back into RX for the duration of the run.
	mcr := regs.Load(ns16550.MCR)
	regs.Store(ns16550.MCR, mcr|ns16550.MCRLoopback)
	drain(uart)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	res, err := integrity.Run(ctx, uart, cfg)
	cancel()

	regs.Store(ns16550.MCR, mcr)

	println("")
	println("Summary")
	println("  frames =", res.Frames)
	println("  bytes  =", res.Bytes)
	if err != nil {
		println("[FAIL]", err.Error())
		exit(1)
	}
	println("[PASS]")
	exit(0)
}

// drain discards anything received before the run started.
func drain(uart *ns16550.Driver) {
	for {
		if _, ok := uart.Get(); !ok {
			return
		}
	}
}
