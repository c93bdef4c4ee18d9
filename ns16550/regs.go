// ns16550/regs.go

package ns16550

// Reg is a register offset from the UART base address. Offsets 0 to 2 are
// shared by more than one register; which one is addressed depends on DLAB
// and on whether the access is a load or a store.
type Reg uint8

const (
	RHR Reg = 0 // receive holding (load, DLAB=0)
	THR Reg = 0 // transmit holding (store, DLAB=0)
	DLL Reg = 0 // divisor latch low (DLAB=1)
	IER Reg = 1 // interrupt enable (DLAB=0)
	DLM Reg = 1 // divisor latch high (DLAB=1)
	ISR Reg = 2 // interrupt status (load)
	FCR Reg = 2 // FIFO control (store)
	LCR Reg = 3 // line control
	MCR Reg = 4 // modem control
	LSR Reg = 5 // line status, read-only
	MSR Reg = 6 // modem status, read-only
	SPR Reg = 7 // scratch pad

	// NumRegs is the size of the register block in bytes.
	NumRegs = 8
)

func (r Reg) String() string {
	switch r {
	case 0:
		return "RHR/THR/DLL"
	case 1:
		return "IER/DLM"
	case 2:
		return "ISR/FCR"
	case 3:
		return "LCR"
	case 4:
		return "MCR"
	case 5:
		return "LSR"
	case 6:
		return "MSR"
	case 7:
		return "SPR"
	}
	return "Reg(?)"
}

// Line control register.
const (
	LCRWordLengthMask uint8 = 0b0000_0011
	LCRDLAB           uint8 = 0b1000_0000

	WordLength5 uint8 = 0b00
	WordLength6 uint8 = 0b01
	WordLength7 uint8 = 0b10
	WordLength8 uint8 = 0b11
)

// FIFO control register.
const (
	FCREnable  uint8 = 1 << 0
	FCRClearRX uint8 = 1 << 1
	FCRClearTX uint8 = 1 << 2
)

// Interrupt enable register.
const (
	IERReceiverData uint8 = 1 << 0
	IERTransmitter  uint8 = 1 << 1
	IERLineStatus   uint8 = 1 << 2
	IERModemStatus  uint8 = 1 << 3
)

// Interrupt status register.
const (
	ISRNoPending   uint8 = 1 << 0
	ISRReceiveData uint8 = 0b0100
	ISRFIFOEnabled uint8 = 0b1100_0000
)

// Modem control register.
const (
	MCRDTR      uint8 = 1 << 0
	MCRRTS      uint8 = 1 << 1
	MCRLoopback uint8 = 1 << 4
)

// Line status register.
const (
	LSRDataReady    uint8 = 1 << 0
	LSROverrun      uint8 = 1 << 1
	LSRParityError  uint8 = 1 << 2
	LSRFramingError uint8 = 1 << 3
	LSRBreak        uint8 = 1 << 4
	LSRTHREmpty     uint8 = 1 << 5
	LSRTxEmpty      uint8 = 1 << 6
	LSRFIFOError    uint8 = 1 << 7
)

// Divisor is the baud divisor programmed at start-up for the QEMU virt
// board clock.
const Divisor uint16 = 592

// SplitDivisor returns the DLL and DLM bytes of a 16-bit divisor.
func SplitDivisor(d uint16) (lo, hi uint8) {
	return uint8(d & 0xff), uint8(d >> 8)
}
