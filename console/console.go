// Package console is the interactive loop that sits on top of a polled
// serial port: it echoes what is typed, handling backspace and line endings,
// and offers print helpers that terminate lines with CR LF.
package console

import (
	"context"
	"fmt"
	"io"
)

// Port is a polled serial port, such as *ns16550.Driver.
type Port interface {
	io.Writer
	Get() (byte, bool)
}

const (
	Backspace = 0x08
	Delete    = 0x7f
)

// Banner is printed once the port is up.
var Banner = []string{
	"This is my operating system!",
	"I'm so awesome. If you start typing something, I'll show you what you typed!",
}

var (
	rubout  = []byte("\b \b")
	newline = []byte("\r\n")
)

// Echo polls p once. If a byte was received it is echoed and Echo reports
// true. Backspace and DEL erase the previous cell; CR and LF both move to the
// start of a new line.
func Echo(p Port) bool {
	c, ok := p.Get()
	if !ok {
		return false
	}
	switch c {
	case Backspace, Delete:
		_, _ = p.Write(rubout)
	case '\r', '\n':
		_, _ = p.Write(newline)
	default:
		_, _ = p.Write([]byte{c})
	}
	return true
}

// Run echoes input until ctx is done. idle, if non-nil, is called after every
// empty poll; pass nil to spin.
func Run(ctx context.Context, p Port, idle func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !Echo(p) && idle != nil {
			idle()
		}
	}
}

// ReadByte polls p until a byte arrives or ctx is done.
func ReadByte(ctx context.Context, p Port, idle func()) (byte, error) {
	for {
		if c, ok := p.Get(); ok {
			return c, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		if idle != nil {
			idle()
		}
	}
}

// Print writes the default formatting of a to w.
func Print(w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, a...)
}

// Println writes a, space separated, followed by CR LF.
func Println(w io.Writer, a ...any) {
	s := fmt.Sprintln(a...)
	_, _ = io.WriteString(w, s[:len(s)-1])
	_, _ = w.Write(newline)
}

// Printf writes a formatted string to w.
func Printf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}

// PrintBanner writes Banner to w.
func PrintBanner(w io.Writer) {
	for _, line := range Banner {
		Println(w, line)
	}
}
