//go:build ns16550debug && tinygo && virt

package main

import "github.com/jangala-dev/tinygo-ns16550/ns16550"

const uartBase = 0x1000_0000

func openDevice() ns16550.RegisterFile { return ns16550.MapMMIO(uartBase) }
