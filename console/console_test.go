package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fultonm/PR6/engine"
)

func TestGetC(t *testing.T) {
	e := engine.New(engine.Config{})
	e.SetStartingAddress(0x3000)
	e.SetRegister(7, 0x3001)
	c := New(strings.NewReader("A"), &bytes.Buffer{}, nil)

	c.Handle(e, engine.TrapGETC)

	if got := e.GetRegister(0); got != 'A' {
		t.Errorf("R0 = %q, want 'A'", rune(got))
	}
	if got := e.GetPC(); got != 0x3001 {
		t.Errorf("PC = %04X, want 3001 (restored from R7)", uint16(got))
	}
}

func TestOut(t *testing.T) {
	e := engine.New(engine.Config{})
	e.SetRegister(0, 'Z')
	e.SetRegister(7, 0x4000)
	var buf bytes.Buffer
	c := New(strings.NewReader(""), &buf, nil)

	c.Handle(e, engine.TrapOUT)

	if got := buf.String(); got != "Z" {
		t.Errorf("output = %q, want %q", got, "Z")
	}
	if got := e.GetPC(); got != 0x4000 {
		t.Errorf("PC = %04X, want 4000", uint16(got))
	}
}

func TestPuts(t *testing.T) {
	e := engine.New(engine.Config{})
	e.SetRegister(0, 0x4000)
	e.SetRegister(7, 0x3005)
	e.SetMemory(0x4000, 'h')
	e.SetMemory(0x4001, 'i')
	e.SetMemory(0x4002, 0)
	var buf bytes.Buffer
	c := New(strings.NewReader(""), &buf, nil)

	c.Handle(e, engine.TrapPUTS)

	if got := buf.String(); got != "hi" {
		t.Errorf("output = %q, want %q", got, "hi")
	}
	if got := e.GetPC(); got != 0x3005 {
		t.Errorf("PC = %04X, want 3005", uint16(got))
	}
}

func TestHalt(t *testing.T) {
	e := engine.New(engine.Config{})
	e.SetRegister(7, 0x3010)
	c := New(strings.NewReader(""), &bytes.Buffer{}, nil)

	c.Handle(e, engine.TrapHALT)

	if !e.IsHalted() {
		t.Errorf("IsHalted() = false after TrapHALT")
	}
	if got := e.GetPC(); got != 0x3010 {
		t.Errorf("PC = %04X, want 3010", uint16(got))
	}
}

func TestUnmappedVectorRestoresPC(t *testing.T) {
	e := engine.New(engine.Config{})
	e.SetRegister(7, 0x3020)
	c := New(strings.NewReader(""), &bytes.Buffer{}, nil)

	c.Handle(e, 0x30)

	if e.IsHalted() {
		t.Errorf("IsHalted() = true after unmapped vector, want false")
	}
	if got := e.GetPC(); got != 0x3020 {
		t.Errorf("PC = %04X, want 3020", uint16(got))
	}
}
