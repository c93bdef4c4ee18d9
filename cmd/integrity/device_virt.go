//go:build tinygo && virt

package main

import (
	"github.com/jangala-dev/tinygo-ns16550/integrity"
	"github.com/jangala-dev/tinygo-ns16550/ns16550"
)

const uartBase = 0x1000_0000

func config() integrity.Config {
	return integrity.Config{Frames: defaultFrames, Size: defaultSize}
}

func openDevice() ns16550.RegisterFile { return ns16550.MapMMIO(uartBase) }

// exit parks the hart; there is nothing to return to.
func exit(int) {
	for {
	}
}
