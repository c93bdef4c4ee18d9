package sim

// fifo is the receive FIFO. head and tail run free; FIFODepth divides 256 so
// the uint8 wrap-around keeps the modulo indices consistent.
type fifo struct {
	buf  [FIFODepth]byte
	head uint8
	tail uint8
}

// used returns how many bytes are queued.
func (f *fifo) used() int {
	return int(f.head - f.tail)
}

// put stores a byte. The caller checks for space.
func (f *fifo) put(b byte) {
	f.buf[f.head%FIFODepth] = b
	f.head++
}

// get returns the oldest byte, or (0, false) if empty.
func (f *fifo) get() (byte, bool) {
	if f.used() == 0 {
		return 0, false
	}
	b := f.buf[f.tail%FIFODepth]
	f.tail++
	return b, true
}

func (f *fifo) clear() {
	f.head = 0
	f.tail = 0
}
