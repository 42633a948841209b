package engine

// execStack implements the non-standard 1101 opcode (spec §4.7): bit 5
// selects push (1) or pop (0) using the register named in bits 11..9. R5
// is the only out-of-band success/failure signal; no condition flags are
// touched and no other register is touched on failure.
func (e *Engine) execStack(d decoded) {
	if d.immOn {
		e.push(d.dr)
	} else {
		e.pop(d.dr)
	}
}

func (e *Engine) push(sr int) {
	if e.regs.r[6] < e.stackTop {
		e.setRegisterNoFlags(5, 0)
		return
	}
	e.regs.mdr = e.regs.r[sr]
	e.regs.r[6]--
	e.regs.mar = e.regs.r[6]
	e.mem.write(e.regs.mar, e.regs.mdr)
	e.setRegisterNoFlags(5, 1)
}

func (e *Engine) pop(dr int) {
	if e.regs.r[6] >= e.stackBase {
		e.setRegisterNoFlags(5, 0)
		return
	}
	e.regs.mar = e.regs.r[6]
	e.regs.mdr = e.mem.read(e.regs.mar)
	e.regs.r[6]++
	e.setRegisterNoFlags(dr, e.regs.mdr)
	e.setRegisterNoFlags(5, 1)
}
