package engine

import "log/slog"

// Trap vectors with an architected service routine (spec §4.6). Vectors
// outside this set are reserved; spec.md §9 leaves their handling as an
// open question, resolved here (see DESIGN.md) by passing them to
// TrapHandler.Handle like any other vector rather than a silent no-op.
const (
	TrapGETC Word = 0x20
	TrapOUT  Word = 0x21
	TrapPUTS Word = 0x22
	TrapHALT Word = 0x25
)

// TrapHandler is the injected collaborator that the EXECUTE microphase of
// a TRAP instruction calls out to (spec §4.6, §9 re-architecture
// guidance: "the trap call-out is cleanest as an injected handler
// interface taking a vector and the engine reference"). Handle runs with
// R7 already holding the return PC and MAR holding the zero-extended
// vector; it is expected to call back into the engine's four cooperation
// points (TrapGetC, TrapOut, TrapPutsNext, TrapHalt) as appropriate.
type TrapHandler interface {
	Handle(e *Engine, vector Word)
}

// TrapGetC is the GETC (0x20) cooperation point: the driver has already
// obtained one input byte; the engine stores it in R0 and restores PC
// from R7.
func (e *Engine) TrapGetC(b byte) {
	e.SetRegister(0, Word(b))
	e.regs.pc = e.regs.r[7]
}

// TrapOut is the OUT (0x21) cooperation point: returns the low byte of R0
// for the driver to write to output, and restores PC from R7.
func (e *Engine) TrapOut() byte {
	b := byte(e.regs.r[0])
	e.regs.pc = e.regs.r[7]
	return b
}

// TrapPutsNext is the PUTS (0x22) cooperation point: yields the low byte
// of the word at memory[R0], increments R0, and restores PC from R7. The
// driver calls this repeatedly until it returns 0.
func (e *Engine) TrapPutsNext() byte {
	v := e.mem.read(e.regs.r[0])
	e.SetRegister(0, e.regs.r[0]+1)
	e.regs.pc = e.regs.r[7]
	return byte(v)
}

// TrapHalt is the HALT (0x25) cooperation point: sets the halted flag.
func (e *Engine) TrapHalt() {
	e.halted = true
}

// loggingTrapHandler is the default TrapHandler installed when a caller
// does not supply one. It still honors the architected vectors — HALT
// genuinely halts, GETC/PUTS/OUT complete without blocking on real I/O —
// so an engine created without a console attached (unit tests, a
// headless run) behaves per spec rather than hanging. Unmapped vectors
// are logged and forwarded to the engine's own PC-restore, per spec.md
// §9's resolution (see DESIGN.md) rather than silently ignored.
type loggingTrapHandler struct {
	log *slog.Logger
}

// NewLoggingTrapHandler returns a TrapHandler that logs every vector at
// Debug level (unmapped ones also at Warn) and otherwise performs the minimal architected behavior for each
// vector — a safe default for contexts with no real console attached. A
// nil logger falls back to slog.Default().
func NewLoggingTrapHandler(log *slog.Logger) TrapHandler {
	if log == nil {
		log = slog.Default()
	}
	return &loggingTrapHandler{log: log}
}

func (h *loggingTrapHandler) Handle(e *Engine, vector Word) {
	h.log.Debug("trap", "vector", vector)
	switch vector {
	case TrapGETC:
		e.TrapGetC(0)
	case TrapOUT:
		e.TrapOut()
	case TrapPUTS:
		for e.TrapPutsNext() != 0 {
		}
	case TrapHALT:
		e.TrapHalt()
		e.regs.pc = e.regs.r[7]
	default:
		h.log.Warn("unmapped trap vector", "vector", vector)
		e.regs.pc = e.regs.r[7]
	}
}
