package engine

// SetMemory writes w to addr, for use by the loader and by the
// debugger's memory-edit commands (spec §4.8).
func (e *Engine) SetMemory(addr, w Word) {
	e.MemoryWrite(addr, w)
}

// RunUntil repeatedly steps the engine while it is not halted and
// isBreakpoint(PC) is false, checked at each instruction boundary before
// the next Step (spec §4.8, §5: a debugger can force termination at the
// next boundary by arranging for isBreakpoint to report true at the
// current PC). It returns the number of instructions executed.
//
// If a trace interval was configured via SetTrace, the installed
// callback receives a Snapshot every traceEvery instructions, letting a
// driver paint progress during a long free-run without polling from
// another goroutine (spec §5: the engine itself never spawns one).
func (e *Engine) RunUntil(isBreakpoint func(pc Word) bool) int {
	count := 0
	for !e.halted && !isBreakpoint(e.regs.pc) {
		e.Step()
		count++
		if e.traceEvery > 0 && e.onTrace != nil && count%e.traceEvery == 0 {
			e.onTrace(e.Snapshot())
		}
	}
	return count
}
