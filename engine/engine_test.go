package engine

import "testing"

func newTestEngine() *Engine {
	return New(Config{})
}

// S1 — ADD immediate.
func TestAddImmediate(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.SetRegister(0, 3)
	e.MemoryWrite(0x3000, 0x1025) // ADD R0 <- R0 + 5

	e.Step()

	if got := e.GetRegister(0); got != 8 {
		t.Errorf("R0 = %d, want 8", got)
	}
	if !e.GetCCP() || e.GetCCN() || e.GetCCZ() {
		t.Errorf("CC = N:%v Z:%v P:%v, want P set only", e.GetCCN(), e.GetCCZ(), e.GetCCP())
	}
	if got := e.GetPC(); got != 0x3001 {
		t.Errorf("PC = %04X, want 3001", uint16(got))
	}
}

// S2 — AND with negative immediate.
func TestAndNegativeImmediate(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.SetRegister(0, 0xABCD)
	e.MemoryWrite(0x3000, 0x503F) // AND R0 <- R0 & -1

	e.Step()

	if got := e.GetRegister(0); got != 0xABCD {
		t.Errorf("R0 = %04X, want ABCD", uint16(got))
	}
	if !e.GetCCN() || e.GetCCZ() || e.GetCCP() {
		t.Errorf("CC = N:%v Z:%v P:%v, want N set only", e.GetCCN(), e.GetCCZ(), e.GetCCP())
	}
	if got := e.GetPC(); got != 0x3001 {
		t.Errorf("PC = %04X, want 3001", uint16(got))
	}
}

// S3 — LD then BRz.
func TestLoadThenBranchZero(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	// PC-relative offsets are relative to the already-incremented PC
	// (spec §5): LD at 0x3000 needs offset9=1 to reach 0x3002, and the
	// BRz at 0x3001 needs offset9=2 to reach 0x3004.
	e.MemoryWrite(0x3000, 0x2201) // LD R1 <- mem[PC+1]
	e.MemoryWrite(0x3001, 0x0402) // BRz +2
	e.MemoryWrite(0x3002, 0x0000) // value 0
	e.MemoryWrite(0x3003, 0xDEAD)
	e.MemoryWrite(0x3004, 0xBEEF) // branch target

	e.Step()
	if !e.GetCCZ() {
		t.Fatalf("after LD of 0, CCZ = false, want true")
	}
	e.Step()
	if !e.GetCCZ() {
		t.Errorf("BR must not alter condition codes, CCZ = false")
	}
	if got := e.GetPC(); got != 0x3004 {
		t.Errorf("PC = %04X, want 3004", uint16(got))
	}
}

// S4 — TRAP x25 halts.
func TestTrapHaltStopsStepping(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.MemoryWrite(0x3000, 0xF025) // TRAP x25

	e.Step()
	if !e.IsHalted() {
		t.Fatalf("IsHalted() = false, want true after TRAP x25")
	}
	pc := e.GetPC()
	e.Step()
	if e.GetPC() != pc {
		t.Errorf("Step after halt moved PC from %04X to %04X", uint16(pc), uint16(e.GetPC()))
	}
}

// S5 — LDI chain.
func TestLDIChain(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	// offset9 = 1: PC-relative addressing uses the already-incremented PC
	// (spec §5), so 0xA001 targets 0x3001+1 = 0x3002, not 0x3001.
	e.MemoryWrite(0x3000, 0xA001) // LDI R0 <- mem[mem[PC+1]]
	e.MemoryWrite(0x3002, 0x3010)
	e.MemoryWrite(0x3010, 0x4242)

	e.Step()

	if got := e.GetRegister(0); got != 0x4242 {
		t.Errorf("R0 = %04X, want 4242", uint16(got))
	}
	if !e.GetCCP() {
		t.Errorf("CCP = false, want true")
	}
	if got := e.GetPC(); got != 0x3001 {
		t.Errorf("PC = %04X, want 3001", uint16(got))
	}
}

// S6 — stack push/pop round trip.
func TestStackRoundTrip(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.SetRegister(1, 0x1234)
	e.MemoryWrite(0x3000, 0xD220) // STACK PUSH R1 (bits 11..9=001, bit5=1)
	e.MemoryWrite(0x3001, 0xD400) // STACK POP R2  (bits 11..9=010, bit5=0)

	startR6 := e.GetRegister(6)

	e.Step()
	if got := e.GetRegister(5); got != 1 {
		t.Fatalf("after PUSH, R5 = %d, want 1", got)
	}
	e.Step()
	if got := e.GetRegister(2); got != 0x1234 {
		t.Errorf("R2 = %04X, want 1234", uint16(got))
	}
	if got := e.GetRegister(5); got != 1 {
		t.Errorf("after POP, R5 = %d, want 1", got)
	}
	if got := e.GetRegister(6); got != startR6 {
		t.Errorf("R6 = %04X, want %04X (back to start)", uint16(got), uint16(startR6))
	}
}

func TestStackPushOverflow(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.SetRegister(6, e.stackTop-1) // already below the limit
	e.MemoryWrite(0x3000, 0xD220)

	e.Step()

	if got := e.GetRegister(5); got != 0 {
		t.Errorf("R5 = %d, want 0 on overflow", got)
	}
}

func TestStackPopUnderflow(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.SetRegister(6, e.stackBase) // nothing pushed yet
	e.MemoryWrite(0x3000, 0xD400) // STACK POP R2

	e.Step()

	if got := e.GetRegister(5); got != 0 {
		t.Errorf("R5 = %d, want 0 on underflow", got)
	}
}

// Invariant 1 & 2: flag exclusivity and correctness across a sweep of
// signed values written via ADD immediate.
func TestFlagExclusivityAndCorrectness(t *testing.T) {
	cases := []struct {
		imm  int16
		n, z, p bool
	}{
		{0, false, true, false},
		{1, false, false, true},
		{-1, true, false, false},
		{15, false, false, true},
		{-16, true, false, false},
	}
	for _, c := range cases {
		e := newTestEngine()
		e.SetStartingAddress(0x3000)
		e.SetRegister(0, 0)
		raw := uint16(0x1020) | (uint16(c.imm) & 0x1F) // ADD R0, R0, #imm5
		e.MemoryWrite(0x3000, Word(raw))

		e.Step()

		if e.GetCCN() != c.n || e.GetCCZ() != c.z || e.GetCCP() != c.p {
			t.Errorf("imm=%d: CC = N:%v Z:%v P:%v, want N:%v Z:%v P:%v",
				c.imm, e.GetCCN(), e.GetCCZ(), e.GetCCP(), c.n, c.z, c.p)
		}
		set := 0
		for _, b := range []bool{e.GetCCN(), e.GetCCZ(), e.GetCCP()} {
			if b {
				set++
			}
		}
		if set != 1 {
			t.Errorf("imm=%d: %d flags set, want exactly 1", c.imm, set)
		}
	}
}

// Invariant 4: R7 preservation, checked here for JSR.
func TestR7Preservation(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.MemoryWrite(0x3000, 0x4800) // JSR +0 (offset11 = 0)

	pc := e.GetPC()
	e.Step()
	if got := e.GetRegister(7); got != pc+1 {
		t.Errorf("after JSR at %04X, R7 = %04X, want %04X", uint16(pc), uint16(got), uint16(pc+1))
	}
}

// Invariant 5: sign-extension round-trips for every named field width.
func TestSignExtension(t *testing.T) {
	for _, width := range []uint{5, 6, 9, 11} {
		span := uint16(1) << width
		for raw := uint16(0); raw < span; raw++ {
			got := SignExtend(raw, width)
			want := int16(raw)
			if raw&(1<<(width-1)) != 0 {
				want = int16(raw) - int16(span)
			}
			if got.Signed() != want {
				t.Errorf("SignExtend(%d, width=%d) = %d, want %d", raw, width, got.Signed(), want)
			}
		}
	}
}

// Invariant 7: memory identity.
func TestMemoryIdentity(t *testing.T) {
	e := newTestEngine()
	for addr := e.MemoryBase(); int(addr-e.MemoryBase()) < 64; addr++ {
		w := Word(addr) ^ 0x5A5A
		e.MemoryWrite(addr, w)
		if got := e.MemoryRead(addr); got != w {
			t.Errorf("MemoryRead(%04X) = %04X, want %04X", uint16(addr), uint16(got), uint16(w))
		}
	}
}

func TestOutOfRangeMemoryPanics(t *testing.T) {
	e := newTestEngine()
	defer func() {
		if recover() == nil {
			t.Errorf("MemoryRead below base did not panic")
		}
	}()
	e.MemoryRead(e.MemoryBase() - 1)
}

func TestLEAUpdatesConditionCodes(t *testing.T) {
	e := newTestEngine()
	e.SetStartingAddress(0x3000)
	e.MemoryWrite(0x3000, 0xE001) // LEA R0, PC+1

	e.Step()

	if !e.GetCCP() {
		t.Errorf("LEA of a positive address did not set CCP (spec.md §9 follows the source: LEA updates CC)")
	}
}
