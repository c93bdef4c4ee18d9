package integrity

import (
	"errors"

	"github.com/sigurn/crc8"
)

// Frame layout: Start | seq | len | payload[len] | crc8(seq, len, payload).
const (
	Start      = 0x7e
	MaxPayload = 255
	overhead   = 4
)

var (
	ErrCRC      = errors.New("integrity: crc mismatch")
	ErrSequence = errors.New("integrity: unexpected sequence number")
	ErrPayload  = errors.New("integrity: payload mismatch")
)

var table = crc8.MakeTable(crc8.Params{Poly: 0x07, Init: 0x00, RefIn: false, RefOut: false, XorOut: 0x00, Check: 0xF4, Name: "CRC-8"})

// Encode appends the frame for payload to dst. payload must not be longer
// than MaxPayload.
func Encode(dst []byte, seq uint8, payload []byte) []byte {
	start := len(dst)
	dst = append(dst, Start, seq, uint8(len(payload)))
	dst = append(dst, payload...)
	return append(dst, crc8.Checksum(dst[start+1:], table))
}

type decodeState uint8

const (
	hunt decodeState = iota
	header
	body
	trailer
)

// Decoder reassembles frames from a byte stream. Bytes outside a frame are
// skipped.
type Decoder struct {
	state decodeState
	buf   []byte // seq, len, payload
	want  int
}

// Feed consumes one byte. When it completes a frame Feed returns its sequence
// number and payload with done set; the payload is only valid until the next
// call. A frame whose checksum does not match yields ErrCRC and is dropped.
func (d *Decoder) Feed(c byte) (seq uint8, payload []byte, done bool, err error) {
	switch d.state {
	case hunt:
		if c == Start {
			d.buf = d.buf[:0]
			d.state = header
		}
	case header:
		d.buf = append(d.buf, c)
		if len(d.buf) == 2 {
			d.want = 2 + int(c)
			d.state = body
			if d.want == 2 {
				d.state = trailer
			}
		}
	case body:
		d.buf = append(d.buf, c)
		if len(d.buf) == d.want {
			d.state = trailer
		}
	case trailer:
		d.state = hunt
		if crc8.Checksum(d.buf, table) != c {
			return 0, nil, false, ErrCRC
		}
		return d.buf[0], d.buf[2:], true, nil
	}
	return 0, nil, false, nil
}
