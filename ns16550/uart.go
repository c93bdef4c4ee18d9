// ns16550/uart.go

package ns16550

// Controller is the set of register operations the Driver is built from.
// Each method is one semantic register access and carries no control logic,
// which makes it the seam for substituting a test double for the hardware.
type Controller interface {
	WordLength() uint8
	SetWordLength(v uint8)
	EnableFIFO()
	EnableReceiverBufferInterrupts()
	EnableDivisorLatchAccess()
	DisableDivisorLatchAccess()
	SetDivisorLeast(b uint8)
	SetDivisorMost(b uint8)
	SetTHR(b uint8)
	DataReady() uint8
	RHR() uint8
}

// UART implements Controller on a RegisterFile.
type UART struct {
	regs RegisterFile
}

var _ Controller = (*UART)(nil)

// New returns a UART operating on regs.
func New(regs RegisterFile) *UART {
	return &UART{regs: regs}
}

// NewMMIO returns a UART operating on the register block mapped at addr.
func NewMMIO(addr uintptr) *UART {
	return New(MapMMIO(addr))
}

// WordLength returns LCR bits 0-1.
func (u *UART) WordLength() uint8 {
	return u.regs.Load(LCR) & LCRWordLengthMask
}

// SetWordLength replaces LCR bits 0-1 with v, keeping bits 2-7.
func (u *UART) SetWordLength(v uint8) {
	lcr := u.regs.Load(LCR)
	u.regs.Store(LCR, lcr&^LCRWordLengthMask|v&LCRWordLengthMask)
}

func (u *UART) EnableFIFO() {
	u.regs.Store(FCR, FCREnable)
}

// EnableReceiverBufferInterrupts sets the receive-data bit in IER. Nothing in
// this package installs an interrupt handler; receive is polled with Get.
func (u *UART) EnableReceiverBufferInterrupts() {
	u.regs.Store(IER, IERReceiverData)
}

func (u *UART) EnableDivisorLatchAccess() {
	u.regs.Store(LCR, u.regs.Load(LCR)|LCRDLAB)
}

func (u *UART) DisableDivisorLatchAccess() {
	u.regs.Store(LCR, u.regs.Load(LCR)&^LCRDLAB)
}

// SetDivisorLeast writes DLL. DLAB must be set.
func (u *UART) SetDivisorLeast(b uint8) {
	u.regs.Store(DLL, b)
}

// SetDivisorMost writes DLM. DLAB must be set.
func (u *UART) SetDivisorMost(b uint8) {
	u.regs.Store(DLM, b)
}

// SetTHR writes the transmit holding register. DLAB must be clear.
func (u *UART) SetTHR(b uint8) {
	u.regs.Store(THR, b)
}

// DataReady returns LSR bit 0.
func (u *UART) DataReady() uint8 {
	return u.regs.Load(LSR) & LSRDataReady
}

// RHR reads the receive holding register. DLAB must be clear.
func (u *UART) RHR() uint8 {
	return u.regs.Load(RHR)
}
