// cmd/kernel/main.go
// Bare-metal echo console for the QEMU RISC-V virt board.
//
//	tinygo run -target=riscv-qemu ./cmd/kernel

//go:build tinygo && virt

package main

import (
	"context"

	"github.com/jangala-dev/tinygo-ns16550/console"
	"github.com/jangala-dev/tinygo-ns16550/ns16550"
)

// uartBase is the NS16550A on the virt board.
const uartBase = 0x1000_0000

func main() {
	uart := ns16550.NewDriver(ns16550.NewMMIO(uartBase))

	console.PrintBanner(uart)

	// Poll forever. Nothing cancels the context; a panic halts the board.
	_ = console.Run(context.Background(), uart, nil)
}
