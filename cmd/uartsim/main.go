// cmd/uartsim/main.go
// Runs the echo console against an emulated 16550, so the driver can be tried
// without QEMU. Input comes from the terminal (switched to raw mode) or, with
// -pty, from a pseudo-terminal that another program such as screen attaches to.
// Ctrl-] quits.

//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/aymanbagabas/go-pty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jangala-dev/tinygo-ns16550/console"
	"github.com/jangala-dev/tinygo-ns16550/ns16550"
	"github.com/jangala-dev/tinygo-ns16550/sim"
)

const quitKey = 0x1d // Ctrl-]

var errQuit = errors.New("quit")

type options struct {
	pty      bool
	loopback bool
	banner   bool
	poll     time.Duration
}

func main() {
	var opts options
	flag.BoolVar(&opts.pty, "pty", false, "serve the UART on a pseudo-terminal instead of stdin/stdout")
	flag.BoolVar(&opts.loopback, "loopback", false, "enable the UART's internal loopback (MCR bit 4)")
	flag.BoolVar(&opts.banner, "banner", true, "print the start-up banner")
	flag.DurationVar(&opts.poll, "poll", time.Millisecond, "sleep between empty polls")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, opts)
	if err != nil && !errors.Is(err, errQuit) && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "uartsim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	var (
		in  io.Reader = os.Stdin
		out io.Writer = os.Stdout
	)

	if opts.pty {
		p, err := pty.New()
		if err != nil {
			return fmt.Errorf("open pty: %w", err)
		}
		defer p.Close()
		fmt.Fprintf(os.Stderr, "uartsim: serial port on %s (Ctrl-] quits)\r\n", p.Name())
		in, out = p, p
	} else if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		// The console does its own echo and line handling.
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, old)
	}

	dev := sim.New(out)
	uart := ns16550.NewDriver(ns16550.New(dev))
	if opts.loopback {
		dev.Store(ns16550.MCR, ns16550.MCRLoopback)
	}
	if opts.banner {
		console.PrintBanner(uart)
	}

	// The reader goroutine is not part of the group: a blocked Read cannot be
	// interrupted, and it dies with the process.
	input := make(chan []byte)
	go read(in, input)

	g, ctx := errgroup.WithContext(ctx)
	idle := func() { time.Sleep(opts.poll) }
	g.Go(func() error { return feed(ctx, dev, input, idle) })
	g.Go(func() error { return console.Run(ctx, uart, idle) })
	return g.Wait()
}

func read(r io.Reader, ch chan<- []byte) {
	defer close(ch)
	for {
		buf := make([]byte, 64)
		n, err := r.Read(buf)
		if n > 0 {
			ch <- buf[:n]
		}
		if err != nil {
			return
		}
	}
}

// feed moves input into the receive FIFO, waiting for room when it is full.
func feed(ctx context.Context, dev *sim.UART, input <-chan []byte, idle func()) error {
	for {
		var p []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-input:
			if !ok {
				return drained(ctx, dev, idle)
			}
			p = b
		}
		for len(p) > 0 {
			if p[0] == quitKey {
				return errQuit
			}
			n := dev.Enqueue(p[:1])
			if n == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				idle()
				continue
			}
			p = p[n:]
		}
	}
}

// drained waits for the console to consume what is left in the FIFO after
// input ends, then reports io.EOF.
func drained(ctx context.Context, dev *sim.UART, idle func()) error {
	for dev.State().RxQueued > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		idle()
	}
	return io.EOF
}
