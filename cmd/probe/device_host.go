//go:build ns16550debug && !tinygo

package main

import (
	"os"

	"github.com/jangala-dev/tinygo-ns16550/ns16550"
	"github.com/jangala-dev/tinygo-ns16550/sim"
)

func openDevice() ns16550.RegisterFile { return sim.New(os.Stdout) }
