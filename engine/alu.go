package engine

// alu is the two-input 16-bit arithmetic/logic unit: a stateful (A, B,
// result) triple. Callers must load A (and B, for binary ops) before an
// operation; the ALU itself has no failure modes (spec §4.2).
type alu struct {
	a, b, result Word
}

func (u *alu) loadA(v Word) { u.a = v }
func (u *alu) loadB(v Word) { u.b = v }

func (u *alu) add() { u.result = u.a + u.b }
func (u *alu) and() { u.result = u.a & u.b }
func (u *alu) not() { u.result = ^u.a }

func (u *alu) fetchResult() Word { return u.result }

func (u *alu) reset() { *u = alu{} }
