// Package disasm renders LC-3 instruction words as mnemonic text, the
// way the teacher's opcode-table disassembler renders IBM 370
// instructions: one formatting branch per opcode class, building the
// operand text with a strings.Builder rather than ad hoc
// concatenation. It has no effect on engine state; the debugger's
// examine command is its only caller.
package disasm

import (
	"fmt"
	"strings"

	"github.com/fultonm/PR6/engine"
)

// Disassemble renders one instruction word as a mnemonic and operand
// string, e.g. "ADD R0, R1, #5" or "BRz #-3".
func Disassemble(w engine.Word) string {
	raw := uint16(w)
	opcode := engine.Opcode((raw >> 12) & 0xF)

	dr := (raw >> 9) & 0x7
	sr1 := (raw >> 6) & 0x7
	sr2 := raw & 0x7
	imm5 := engine.SignExtend(raw&0x1F, 5).Signed()
	off6 := engine.SignExtend(raw&0x3F, 6).Signed()
	off9 := engine.SignExtend(raw&0x1FF, 9).Signed()
	off11 := engine.SignExtend(raw&0x7FF, 11).Signed()
	trapv8 := raw & 0xFF

	var b strings.Builder

	switch opcode {
	case engine.OpBR:
		n, z, p := (raw>>11)&1 != 0, (raw>>10)&1 != 0, (raw>>9)&1 != 0
		b.WriteString("BR")
		if n {
			b.WriteByte('n')
		}
		if z {
			b.WriteByte('z')
		}
		if p {
			b.WriteByte('p')
		}
		fmt.Fprintf(&b, " #%d", off9)
	case engine.OpADD, engine.OpAND:
		fmt.Fprintf(&b, "%s R%d, R%d, ", opName(opcode), dr, sr1)
		if (raw>>5)&1 != 0 {
			fmt.Fprintf(&b, "#%d", imm5)
		} else {
			fmt.Fprintf(&b, "R%d", sr2)
		}
	case engine.OpNOT:
		fmt.Fprintf(&b, "NOT R%d, R%d", dr, sr1)
	case engine.OpLD, engine.OpLDI, engine.OpLEA:
		fmt.Fprintf(&b, "%s R%d, #%d", opName(opcode), dr, off9)
	case engine.OpST, engine.OpSTI:
		fmt.Fprintf(&b, "%s R%d, #%d", opName(opcode), dr, off9)
	case engine.OpLDR, engine.OpSTR:
		fmt.Fprintf(&b, "%s R%d, R%d, #%d", opName(opcode), dr, sr1, off6)
	case engine.OpJSR:
		if (raw>>11)&1 != 0 {
			fmt.Fprintf(&b, "JSR #%d", off11)
		} else {
			fmt.Fprintf(&b, "JSRR R%d", sr1)
		}
	case engine.OpJMP:
		if sr1 == 7 {
			b.WriteString("RET")
		} else {
			fmt.Fprintf(&b, "JMP R%d", sr1)
		}
	case engine.OpSTK:
		if (raw>>5)&1 != 0 {
			fmt.Fprintf(&b, "PUSH R%d", dr)
		} else {
			fmt.Fprintf(&b, "POP R%d", dr)
		}
	case engine.OpTRAP:
		fmt.Fprintf(&b, "TRAP x%02X", trapv8)
	default:
		fmt.Fprintf(&b, ".FILL x%04X", raw)
	}

	return b.String()
}

func opName(op engine.Opcode) string {
	switch op {
	case engine.OpADD:
		return "ADD"
	case engine.OpAND:
		return "AND"
	case engine.OpLD:
		return "LD"
	case engine.OpLDI:
		return "LDI"
	case engine.OpLDR:
		return "LDR"
	case engine.OpST:
		return "ST"
	case engine.OpSTI:
		return "STI"
	case engine.OpSTR:
		return "STR"
	case engine.OpLEA:
		return "LEA"
	default:
		return op.String()
	}
}
