// Package ns16550test provides a recording ns16550.Controller for tests that
// need to check the exact register operations a caller performs without any
// hardware or memory behind them.
package ns16550test

import "github.com/jangala-dev/tinygo-ns16550/ns16550"

// Op identifies a Controller method.
type Op uint8

const (
	WordLength Op = iota
	SetWordLength
	EnableFIFO
	EnableReceiverBufferInterrupts
	EnableDivisorLatchAccess
	DisableDivisorLatchAccess
	SetDivisorLeast
	SetDivisorMost
	SetTHR
	DataReady
	RHR
)

var opNames = [...]string{
	WordLength:                     "WordLength",
	SetWordLength:                  "SetWordLength",
	EnableFIFO:                     "EnableFIFO",
	EnableReceiverBufferInterrupts: "EnableReceiverBufferInterrupts",
	EnableDivisorLatchAccess:       "EnableDivisorLatchAccess",
	DisableDivisorLatchAccess:      "DisableDivisorLatchAccess",
	SetDivisorLeast:                "SetDivisorLeast",
	SetDivisorMost:                 "SetDivisorMost",
	SetTHR:                         "SetTHR",
	DataReady:                      "DataReady",
	RHR:                            "RHR",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "Op(?)"
}

// Call is one recorded Controller call. Arg holds the argument of setters
// and the returned value of getters.
type Call struct {
	Op  Op
	Arg uint8
}

// Recorder implements ns16550.Controller by appending every call to Calls.
// Getters answer from the scripted queues and return 0 once a queue is
// exhausted.
type Recorder struct {
	Calls []Call

	// Scripted results, consumed front to back.
	WordLengths []uint8
	DataReadies []uint8
	RHRs        []uint8
}

var _ ns16550.Controller = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Reset forgets recorded calls. Scripted results are kept.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Count returns how many times op was called.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the recorded operations in call order.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Args returns the arguments (or results) recorded for op, in call order.
func (r *Recorder) Args(op Op) []uint8 {
	var args []uint8
	for _, c := range r.Calls {
		if c.Op == op {
			args = append(args, c.Arg)
		}
	}
	return args
}

func (r *Recorder) record(op Op, arg uint8) { r.Calls = append(r.Calls, Call{op, arg}) }

func next(q *[]uint8) uint8 {
	if len(*q) == 0 {
		return 0
	}
	v := (*q)[0]
	*q = (*q)[1:]
	return v
}

func (r *Recorder) WordLength() uint8 {
	v := next(&r.WordLengths)
	r.record(WordLength, v)
	return v
}

func (r *Recorder) SetWordLength(v uint8)           { r.record(SetWordLength, v) }
func (r *Recorder) EnableFIFO()                     { r.record(EnableFIFO, 0) }
func (r *Recorder) EnableReceiverBufferInterrupts() { r.record(EnableReceiverBufferInterrupts, 0) }
func (r *Recorder) EnableDivisorLatchAccess()       { r.record(EnableDivisorLatchAccess, 0) }
func (r *Recorder) DisableDivisorLatchAccess()      { r.record(DisableDivisorLatchAccess, 0) }
func (r *Recorder) SetDivisorLeast(b uint8)         { r.record(SetDivisorLeast, b) }
func (r *Recorder) SetDivisorMost(b uint8)          { r.record(SetDivisorMost, b) }
func (r *Recorder) SetTHR(b uint8)                  { r.record(SetTHR, b) }

func (r *Recorder) DataReady() uint8 {
	v := next(&r.DataReadies)
	r.record(DataReady, v)
	return v
}

func (r *Recorder) RHR() uint8 {
	v := next(&r.RHRs)
	r.record(RHR, v)
	return v
}
