package ns16550test

import (
	"slices"
	"testing"
)

func TestRecorder_ScriptedGetters(t *testing.T) {
	r := New()
	r.DataReadies = []uint8{1}
	r.RHRs = []uint8{'a'}

	if got := r.DataReady(); got != 1 {
		t.Fatalf("DataReady = %d; want 1", got)
	}
	if got := r.RHR(); got != 'a' {
		t.Fatalf("RHR = %q; want 'a'", got)
	}
	// Exhausted queues answer 0.
	if got := r.DataReady(); got != 0 {
		t.Fatalf("DataReady = %d; want 0", got)
	}

	want := []Call{{DataReady, 1}, {RHR, 'a'}, {DataReady, 0}}
	if !slices.Equal(r.Calls, want) {
		t.Fatalf("calls = %v; want %v", r.Calls, want)
	}
}

func TestRecorder_CountArgsReset(t *testing.T) {
	r := New()
	r.SetTHR('x')
	r.EnableFIFO()
	r.SetTHR('y')

	if n := r.Count(SetTHR); n != 2 {
		t.Fatalf("Count(SetTHR) = %d; want 2", n)
	}
	if got := r.Args(SetTHR); string(got) != "xy" {
		t.Fatalf("Args(SetTHR) = %q; want \"xy\"", got)
	}
	if got := r.Ops(); !slices.Equal(got, []Op{SetTHR, EnableFIFO, SetTHR}) {
		t.Fatalf("Ops = %v", got)
	}

	r.Reset()
	if len(r.Calls) != 0 || r.Count(SetTHR) != 0 {
		t.Fatalf("calls survived Reset: %v", r.Calls)
	}
}

func TestOpString(t *testing.T) {
	if s := EnableDivisorLatchAccess.String(); s != "EnableDivisorLatchAccess" {
		t.Fatalf("String = %q", s)
	}
	if s := Op(200).String(); s != "Op(?)" {
		t.Fatalf("String = %q", s)
	}
}
