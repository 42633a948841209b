package engine

// NumRegisters is the size of the general register file, R0 through R7.
const NumRegisters = 8

// Condition-code flags. Exactly one is set after any register write.
type ccFlags struct {
	n, z, p bool
}

func ccFromValue(v Word) ccFlags {
	switch s := v.Signed(); {
	case s < 0:
		return ccFlags{n: true}
	case s > 0:
		return ccFlags{p: true}
	default:
		return ccFlags{z: true}
	}
}

// registerFile holds the eight general registers plus the four special
// control registers (PC, IR, MAR, MDR) and the condition-code flags.
type registerFile struct {
	r  [NumRegisters]Word
	cc ccFlags

	pc, ir, mar, mdr Word
}

func (rf *registerFile) reset(startPC Word) {
	*rf = registerFile{pc: startPC}
	rf.cc = ccFlags{z: true}
}

// GetRegister returns the current value of general register i.
func (e *Engine) GetRegister(i int) Word {
	e.checkRegIndex(i)
	return e.regs.r[i]
}

// SetRegister writes v into general register i and updates N/Z/P from v,
// interpreted as a signed 16-bit value.
func (e *Engine) SetRegister(i int, v Word) {
	e.checkRegIndex(i)
	e.regs.r[i] = v
	e.regs.cc = ccFromValue(v)
}

// setRegisterNoFlags writes a register without touching the condition
// codes, used by control-transfer instructions (JSR/JSRR/JMP/TRAP) that
// save the return PC in R7.
func (e *Engine) setRegisterNoFlags(i int, v Word) {
	e.checkRegIndex(i)
	e.regs.r[i] = v
}

func (e *Engine) checkRegIndex(i int) {
	if i < 0 || i >= NumRegisters {
		panic("engine: register index out of range")
	}
}

// GetPC returns the program counter.
func (e *Engine) GetPC() Word { return e.regs.pc }

// SetPC sets the program counter.
func (e *Engine) SetPC(v Word) { e.regs.pc = v }

// IncrementPC advances the program counter by one word.
func (e *Engine) IncrementPC() { e.regs.pc++ }

// IncrementPCBy advances the program counter by offset words, wrapping
// modulo 2^16.
func (e *Engine) IncrementPCBy(offset Word) { e.regs.pc += offset }

// GetIR returns the instruction register.
func (e *Engine) GetIR() Word { return e.regs.ir }

// SetIR sets the instruction register.
func (e *Engine) SetIR(v Word) { e.regs.ir = v }

// GetMAR returns the memory address register.
func (e *Engine) GetMAR() Word { return e.regs.mar }

// SetMAR sets the memory address register.
func (e *Engine) SetMAR(v Word) { e.regs.mar = v }

// GetMDR returns the memory data register.
func (e *Engine) GetMDR() Word { return e.regs.mdr }

// SetMDR sets the memory data register.
func (e *Engine) SetMDR(v Word) { e.regs.mdr = v }

// GetCCN reports whether the negative condition flag is set.
func (e *Engine) GetCCN() bool { return e.regs.cc.n }

// GetCCZ reports whether the zero condition flag is set.
func (e *Engine) GetCCZ() bool { return e.regs.cc.z }

// GetCCP reports whether the positive condition flag is set.
func (e *Engine) GetCCP() bool { return e.regs.cc.p }
