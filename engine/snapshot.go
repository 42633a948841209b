package engine

// Snapshot is a value copy of every piece of visible engine state (spec
// §3, "Machine snapshot"). It carries no aliasing back to the engine: its
// Memory slice is an independent copy, and mutating a Snapshot never
// affects the Engine that produced it.
type Snapshot struct {
	Registers [NumRegisters]Word
	PC, IR, MAR, MDR Word
	CCN, CCZ, CCP bool

	ALUA, ALUB, ALUResult Word

	Memory       []Word
	MemoryBase   Word
	StartingAddr Word

	FileLoaded bool
	Halted     bool
}

// Snapshot produces a value copy of the engine's entire visible state,
// suitable for handing to a debugger UI. It is owned by the caller.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Registers:    e.regs.r,
		PC:           e.regs.pc,
		IR:           e.regs.ir,
		MAR:          e.regs.mar,
		MDR:          e.regs.mdr,
		CCN:          e.regs.cc.n,
		CCZ:          e.regs.cc.z,
		CCP:          e.regs.cc.p,
		ALUA:         e.alu.a,
		ALUB:         e.alu.b,
		ALUResult:    e.alu.result,
		Memory:       e.mem.clone(),
		MemoryBase:   e.mem.base,
		StartingAddr: e.startAddr,
		FileLoaded:   e.fileLoaded,
		Halted:       e.halted,
	}
}
