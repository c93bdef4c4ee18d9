// ns16550/driver.go

// Package ns16550 provides a polled driver for 16550-compatible UARTs such as
// the one on the QEMU virt board. Write is fire-and-forget and Get never
// blocks; callers poll Get from their own loop.
//
// The package is layered: MMIO is the memory-mapped register block, UART turns
// it into named register operations (the Controller interface), and Driver
// sequences those operations. Tests substitute the Controller.
package ns16550

import "errors"

// ErrNoData is returned by ReadByte when the receiver holds no byte.
var ErrNoData = errors.New("ns16550: no data")

// Driver configures a UART for 8 data bits at Divisor and moves bytes in and
// out of it. Only one Driver may own a given device.
type Driver struct {
	hw    Controller
	stats Stats
}

// NewDriver runs the initialisation sequence on hw and returns a ready Driver.
// The order matters: offsets 0 and 1 address the divisor latch only while DLAB
// is set, so DLAB brackets exactly the two divisor writes.
func NewDriver(hw Controller) *Driver {
	// 1) 8 data bits.
	hw.SetWordLength(WordLength8)

	// 2) FIFOs on.
	hw.EnableFIFO()

	// 3) Receive-data interrupt bit. No handler is installed; inert.
	hw.EnableReceiverBufferInterrupts()

	// 4) Switch offsets 0 and 1 to the divisor latch.
	hw.EnableDivisorLatchAccess()

	// 5-6) Program the divisor.
	lo, hi := SplitDivisor(Divisor)
	hw.SetDivisorLeast(lo)
	hw.SetDivisorMost(hi)

	// 7) Back to THR/RHR and IER.
	hw.DisableDivisorLatchAccess()

	return &Driver{hw: hw}
}

// Put writes c to the transmit holding register.
//
// Put does not wait for LSR.THRE, so back-to-back writes can overrun a slow
// transmitter. QEMU drains THR synchronously; real parts may drop bytes.
func (d *Driver) Put(c byte) {
	d.hw.SetTHR(c)
	d.dbgPut()
}

// Write implements io.Writer. Every byte of p is passed to Put in order and
// the result is always len(p), nil.
func (d *Driver) Write(p []byte) (int, error) {
	for _, c := range p {
		d.Put(c)
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (d *Driver) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		d.Put(s[i])
	}
	return len(s), nil
}

// WriteByte implements io.ByteWriter.
func (d *Driver) WriteByte(c byte) error {
	d.Put(c)
	return nil
}

// Get returns the received byte if LSR reports data ready. When it does not,
// RHR is left untouched and ok is false.
func (d *Driver) Get() (c byte, ok bool) {
	if d.hw.DataReady() != LSRDataReady {
		d.dbgPoll(false)
		return 0, false
	}
	c = d.hw.RHR()
	d.dbgPoll(true)
	return c, true
}

// ReadByte implements io.ByteReader on top of Get. It never blocks and
// returns ErrNoData when nothing has been received.
func (d *Driver) ReadByte() (byte, error) {
	c, ok := d.Get()
	if !ok {
		return 0, ErrNoData
	}
	return c, nil
}

// TryRead returns immediately with up to len(p) bytes, stopping at the first
// empty poll. A return value of 0 means no data now.
func (d *Driver) TryRead(p []byte) int {
	n := 0
	for n < len(p) {
		c, ok := d.Get()
		if !ok {
			break
		}
		p[n] = c
		n++
	}
	return n
}
