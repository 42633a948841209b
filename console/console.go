// Package console implements engine.TrapHandler against a real pair of
// I/O streams, so a loaded program's GETC/OUT/PUTS/HALT traps reach an
// actual terminal (or, in a test, a bytes.Buffer) instead of the
// logging default.
package console

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/fultonm/PR6/engine"
)

// Console is a small struct holding the I/O streams for one session; it
// carries no package-level mutable state (grounded on the teacher's
// device call-out shape — a collaborator is a value, not a singleton).
type Console struct {
	in  *bufio.Reader
	out io.Writer
	log *slog.Logger
}

// New returns a Console reading from in and writing to out. A nil
// logger falls back to slog.Default().
func New(in io.Reader, out io.Writer, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{in: bufio.NewReader(in), out: out, log: log}
}

// Handle implements engine.TrapHandler. It satisfies the four
// architected vectors directly; any other vector is logged and the
// engine's PC is restored from R7 without otherwise touching state
// (spec.md §9's resolution for unmapped traps).
func (c *Console) Handle(e *engine.Engine, vector engine.Word) {
	switch vector {
	case engine.TrapGETC:
		b, err := c.in.ReadByte()
		if err != nil {
			b = 0
		}
		e.TrapGetC(b)
	case engine.TrapOUT:
		b := e.TrapOut()
		_, _ = c.out.Write([]byte{b})
	case engine.TrapPUTS:
		for {
			b := e.TrapPutsNext()
			if b == 0 {
				break
			}
			_, _ = c.out.Write([]byte{b})
		}
	case engine.TrapHALT:
		e.TrapHalt()
		e.SetPC(e.GetRegister(7))
	default:
		c.log.Warn("unmapped trap vector", "vector", vector)
		e.SetPC(e.GetRegister(7))
	}
}
