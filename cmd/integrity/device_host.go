//go:build !tinygo

package main

import (
	"flag"
	"os"

	"github.com/jangala-dev/tinygo-ns16550/integrity"
	"github.com/jangala-dev/tinygo-ns16550/ns16550"
	"github.com/jangala-dev/tinygo-ns16550/sim"
)

func config() integrity.Config {
	frames := flag.Int("frames", defaultFrames, "frames to send")
	size := flag.Int("size", defaultSize, "payload bytes per frame (1-255)")
	flag.Parse()
	return integrity.Config{Frames: *frames, Size: *size}
}

func openDevice() ns16550.RegisterFile { return sim.New(os.Stdout) }

func exit(code int) { os.Exit(code) }
