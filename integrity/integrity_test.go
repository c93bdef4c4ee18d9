package integrity

import (
	"context"
	"errors"
	"testing"

	"github.com/jangala-dev/tinygo-ns16550/ns16550"
	"github.com/jangala-dev/tinygo-ns16550/sim"
)

func newLoopbackDriver() *ns16550.Driver {
	dev := sim.New(nil)
	d := ns16550.NewDriver(ns16550.New(dev))
	dev.Store(ns16550.MCR, ns16550.MCRLoopback)
	return d
}

func TestEncodeDecode(t *testing.T) {
	payload := []byte("hello, uart")
	frame := Encode(nil, 7, payload)
	if len(frame) != len(payload)+overhead || frame[0] != Start {
		t.Fatalf("frame = % x", frame)
	}

	var d Decoder
	// Leading noise is skipped.
	for _, c := range append([]byte{0x00, 0xff}, frame...) {
		seq, got, done, err := d.Feed(c)
		if err != nil {
			t.Fatalf("Feed: %v", err)
		}
		if done {
			if seq != 7 || string(got) != string(payload) {
				t.Fatalf("decoded seq=%d payload=%q", seq, got)
			}
			return
		}
	}
	t.Fatal("frame never completed")
}

func TestDecode_EmptyPayload(t *testing.T) {
	var d Decoder
	var done bool
	for _, c := range Encode(nil, 1, nil) {
		var err error
		_, _, done, err = d.Feed(c)
		if err != nil {
			t.Fatalf("Feed: %v", err)
		}
	}
	if !done {
		t.Fatal("empty frame never completed")
	}
}

func TestDecode_CRCMismatch(t *testing.T) {
	frame := Encode(nil, 3, []byte{1, 2, 3})
	frame[4] ^= 0x10

	var d Decoder
	var err error
	for _, c := range frame {
		if _, _, _, err = d.Feed(c); err != nil {
			break
		}
	}
	if !errors.Is(err, ErrCRC) {
		t.Fatalf("err = %v; want ErrCRC", err)
	}
}

func TestRun_SimLoopback(t *testing.T) {
	d := newLoopbackDriver()

	res, err := Run(context.Background(), d, Config{Frames: 40, Size: 64})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 40 || res.Bytes != 40*64 {
		t.Fatalf("result = %+v; want 40 frames, %d bytes", res, 40*64)
	}
}

func TestRun_NoLoopbackTimesOut(t *testing.T) {
	dev := sim.New(nil)
	d := ns16550.NewDriver(ns16550.New(dev))

	_, err := Run(context.Background(), d, Config{Frames: 1, Size: 4, MaxPolls: 10})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v; want ErrTimeout", err)
	}
}

// flipPort loops bytes back and corrupts the n-th one.
type flipPort struct {
	pending []byte
	n, at   int
}

func (p *flipPort) WriteByte(c byte) error {
	if p.n == p.at {
		c ^= 0x01
	}
	p.n++
	p.pending = append(p.pending, c)
	return nil
}

func (p *flipPort) Get() (byte, bool) {
	if len(p.pending) == 0 {
		return 0, false
	}
	c := p.pending[0]
	p.pending = p.pending[1:]
	return c, true
}

func TestRun_DetectsCorruption(t *testing.T) {
	// Byte 5 is inside the payload of the first frame.
	_, err := Run(context.Background(), &flipPort{at: 5}, Config{Frames: 2, Size: 8})
	if !errors.Is(err, ErrCRC) {
		t.Fatalf("err = %v; want ErrCRC", err)
	}
}

func TestRun_BadConfig(t *testing.T) {
	for _, cfg := range []Config{{Frames: 1, Size: 0}, {Frames: 1, Size: 256}, {Frames: -1, Size: 1}} {
		if _, err := Run(context.Background(), &flipPort{at: -1}, cfg); !errors.Is(err, ErrConfig) {
			t.Fatalf("Run(%+v) err = %v; want ErrConfig", cfg, err)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, newLoopbackDriver(), Config{Frames: 1, Size: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}
