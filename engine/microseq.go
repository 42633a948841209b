package engine

// Step executes exactly one instruction: one full FETCH -> DECODE ->
// EVAL_ADDR -> FETCH_OP -> EXECUTE -> STORE walk. It is a no-op while the
// engine is halted (spec §7 item 3).
func (e *Engine) Step() {
	if e.halted {
		return
	}
	e.Fetch()
	e.Decode()
	e.EvalAddr()
	e.FetchOperands()
	e.Execute()
	e.Store()
}

// Fetch is the FETCH microphase, common to every opcode: MAR <- PC;
// PC <- PC + 1; MDR <- memory[MAR]; IR <- MDR.
func (e *Engine) Fetch() {
	e.regs.mar = e.regs.pc
	e.regs.pc++
	e.regs.mdr = e.mem.read(e.regs.mar)
	e.regs.ir = e.regs.mdr
}

// Decode is the DECODE microphase: it extracts every field of the current
// IR via the pure decoder and records it for the remaining microphases of
// this cycle.
func (e *Engine) Decode() {
	e.cur = decode(e.regs.ir)
}

// EvalAddr is the EVAL_ADDR microphase. Phases not used by the current
// opcode (spec §4.5's table) are no-ops.
func (e *Engine) EvalAddr() {
	d := e.cur
	switch d.opcode {
	case OpBR:
		cc := e.regs.cc
		e.branchTaken = (d.nzp.n && cc.n) || (d.nzp.z && cc.z) || (d.nzp.p && cc.p)
		if e.branchTaken {
			e.regs.mar = e.regs.pc + d.off9
		}
	case OpLD, OpLDI, OpST, OpSTI:
		e.regs.mar = e.regs.pc + d.off9
	case OpLDR, OpSTR:
		e.regs.mar = e.regs.r[d.sr1] + d.off6
	case OpJSR:
		if d.jsrPC {
			e.regs.mar = e.regs.pc + d.off11
		} else {
			e.regs.mar = e.regs.r[d.sr1]
		}
	case OpJMP:
		e.regs.mar = e.regs.r[d.sr1]
	case OpLEA:
		e.regs.mar = e.regs.pc + d.off9
	}
}

// FetchOperands is the FETCH_OP microphase.
func (e *Engine) FetchOperands() {
	d := e.cur
	switch d.opcode {
	case OpADD, OpAND:
		e.alu.loadA(e.regs.r[d.sr1])
		if d.immOn {
			e.alu.loadB(d.imm5)
		} else {
			e.alu.loadB(e.regs.r[d.sr2])
		}
	case OpNOT:
		e.alu.loadA(e.regs.r[d.sr1])
	case OpLD, OpLDR:
		e.regs.mdr = e.mem.read(e.regs.mar)
	case OpLDI:
		e.regs.mdr = e.mem.read(e.regs.mar)
		e.regs.mar = e.regs.mdr
		e.regs.mdr = e.mem.read(e.regs.mar)
	case OpST, OpSTR:
		e.regs.mdr = e.regs.r[d.dr]
	case OpSTI:
		e.regs.mdr = e.mem.read(e.regs.mar)
		e.regs.mar = e.regs.mdr
		e.regs.mdr = e.regs.r[d.dr]
	case OpTRAP:
		e.regs.mar = d.trapv8
	case OpSTK:
		e.execStack(d)
	}
}

// Execute is the EXECUTE microphase.
func (e *Engine) Execute() {
	d := e.cur
	switch d.opcode {
	case OpADD:
		e.alu.add()
	case OpAND:
		e.alu.and()
	case OpNOT:
		e.alu.not()
	case OpBR:
		if e.branchTaken {
			e.regs.pc = e.regs.mar
		}
	case OpTRAP:
		e.setRegisterNoFlags(7, e.regs.pc)
		e.trap.Handle(e, e.regs.mar)
	}
}

// Store is the STORE microphase.
func (e *Engine) Store() {
	d := e.cur
	switch d.opcode {
	case OpADD, OpAND, OpNOT:
		e.SetRegister(d.dr, e.alu.fetchResult())
	case OpLD, OpLDR, OpLDI:
		e.SetRegister(d.dr, e.regs.mdr)
	case OpST, OpSTR, OpSTI:
		e.mem.write(e.regs.mar, e.regs.mdr)
	case OpJSR:
		e.setRegisterNoFlags(7, e.regs.pc)
		e.regs.pc = e.regs.mar
	case OpJMP:
		e.setRegisterNoFlags(7, e.regs.pc)
		e.regs.pc = e.regs.mar
	case OpLEA:
		// LEA updates N/Z/P here; later editions of the LC-3 ISA leave the
		// flags unchanged on LEA.
		e.SetRegister(d.dr, e.regs.mar)
	}
}
