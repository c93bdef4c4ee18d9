// Package integrity checks a serial link end to end by sending CRC-8 framed
// test patterns through a port in loopback and verifying what comes back.
//
// The port must echo its own output: either the UART's internal loopback
// (MCR bit 4) or a TX-RX jumper.
package integrity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Port is a polled serial port, such as *ns16550.Driver.
type Port interface {
	io.ByteWriter
	Get() (byte, bool)
}

// DefaultMaxPolls bounds how long Run waits for each looped-back byte.
const DefaultMaxPolls = 100_000

var (
	ErrTimeout = errors.New("integrity: timed out waiting for looped-back byte")
	ErrConfig  = errors.New("integrity: invalid config")
)

// Config describes one run.
type Config struct {
	Frames   int // number of frames to send
	Size     int // payload bytes per frame, 1..MaxPayload
	MaxPolls int // empty polls tolerated per byte; 0 means DefaultMaxPolls
}

// Result counts verified frames and payload bytes.
type Result struct {
	Frames int
	Bytes  int
}

// Pattern is the deterministic payload byte at stream position i.
func Pattern(i int) byte { return byte((i*31 + 0x55) & 0xff) }

// Run sends cfg.Frames frames through p one byte at a time, waiting for each
// byte to come back before sending the next. This keeps at most one byte in
// flight so a shallow receive FIFO cannot overrun.
func Run(ctx context.Context, p Port, cfg Config) (Result, error) {
	var res Result
	if cfg.Frames < 0 || cfg.Size < 1 || cfg.Size > MaxPayload {
		return res, fmt.Errorf("%w: frames=%d size=%d", ErrConfig, cfg.Frames, cfg.Size)
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = DefaultMaxPolls
	}

	var dec Decoder
	want := make([]byte, cfg.Size)
	frame := make([]byte, 0, cfg.Size+overhead)

	for i := 0; i < cfg.Frames; i++ {
		for j := range want {
			want[j] = Pattern(i*cfg.Size + j)
		}
		frame = Encode(frame[:0], uint8(i), want)
		verified := res.Frames

		for _, c := range frame {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			_ = p.WriteByte(c)
			got, err := await(p, cfg.MaxPolls)
			if err != nil {
				return res, fmt.Errorf("frame %d: %w", i, err)
			}
			seq, payload, done, err := dec.Feed(got)
			if err != nil {
				return res, fmt.Errorf("frame %d: %w", i, err)
			}
			if !done {
				continue
			}
			if seq != uint8(i) {
				return res, fmt.Errorf("frame %d: %w: got %d", i, ErrSequence, seq)
			}
			if !bytes.Equal(payload, want) {
				return res, fmt.Errorf("frame %d: %w", i, ErrPayload)
			}
			res.Frames++
			res.Bytes += len(payload)
		}
		if res.Frames == verified {
			return res, fmt.Errorf("frame %d: %w: frame never completed", i, ErrPayload)
		}
	}
	return res, nil
}

func await(p Port, maxPolls int) (byte, error) {
	for n := 0; n < maxPolls; n++ {
		if c, ok := p.Get(); ok {
			return c, nil
		}
	}
	return 0, ErrTimeout
}
