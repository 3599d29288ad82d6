package cpu

import "github.com/hejops/intel8080/bits"

// Step fetches the opcode at PC, dispatches it to its handler, and
// advances PC by the handler's returned byte count (0 when the handler
// set PC itself, as for jumps, calls, and returns). It returns the
// opcode that was executed, so the host can key OUT/IN handling off
// 0xD3/0xDB.
//
// While halted (see HLT), Step suppresses fetch/execute entirely; only
// Interrupt can clear the halted state.
func (c *CPU) Step() byte {
	if c.halted {
		return 0x76
	}

	opcode := c.Mem.Read(c.pc)
	advance := c.execute(opcode)
	if advance > 0 {
		c.pc = bits.NormalizeWord(int(c.pc) + advance)
	}
	return opcode
}

// Interrupt injects an opcode as though it had just been fetched at PC,
// without advancing PC for the opcode's own length, correct for RST,
// whose whole point is to push the PC the CPU would otherwise have
// executed next. If IE is false, the call is a no-op. Non-RST opcodes
// are not a documented use of this entry point.
func (c *CPU) Interrupt(opcode byte) {
	if !c.IE {
		return
	}
	c.IE = false
	c.halted = false
	c.execute(opcode)
}

// condition evaluates one of the eight branch/call/return conditions,
// in the order the 8080 opcode map uses them: NZ,Z,NC,C,PO,PE,P,M.
func (c *CPU) condition(idx int) bool {
	switch idx {
	case 0:
		return !c.Flags.Z
	case 1:
		return c.Flags.Z
	case 2:
		return !c.Flags.CY
	case 3:
		return c.Flags.CY
	case 4:
		return !c.Flags.P
	case 5:
		return c.Flags.P
	case 6:
		return !c.Flags.S
	default:
		return c.Flags.S
	}
}

// execute dispatches a single opcode, mutating CPU state, and returns
// the number of bytes by which PC should advance (0 for instructions
// that set PC themselves). Operands are read from PC+1/PC+2 before any
// advance is applied, per the handler contract.
func (c *CPU) execute(opcode byte) int {
	d8 := func() byte { return c.Mem.Read(c.pc + 1) }
	d16 := func() uint16 { return bits.Compose(c.Mem.Read(c.pc+2), c.Mem.Read(c.pc+1)) }

	switch opcode {

	case 0x00:
		return 1 // NOP

	// register-pair block: LXI/STAX/INX/INR/DCR/MVI/DAD/LDAX/DCX per row
	case 0x01:
		c.lxi(rpBC, d16())
		return 3
	case 0x02:
		c.stax(rpBC)
		return 1
	case 0x03:
		c.incPair(rpBC)
		return 1
	case 0x04:
		c.inr(B)
		return 1
	case 0x05:
		c.dcr(B)
		return 1
	case 0x06:
		c.mvi(B, d8())
		return 2
	case 0x07:
		c.rlc()
		return 1
	case 0x09:
		c.dad(rpBC)
		return 1
	case 0x0A:
		c.ldax(rpBC)
		return 1
	case 0x0B:
		c.decPair(rpBC)
		return 1
	case 0x0C:
		c.inr(C)
		return 1
	case 0x0D:
		c.dcr(C)
		return 1
	case 0x0E:
		c.mvi(C, d8())
		return 2
	case 0x0F:
		c.rrc()
		return 1

	case 0x11:
		c.lxi(rpDE, d16())
		return 3
	case 0x12:
		c.stax(rpDE)
		return 1
	case 0x13:
		c.incPair(rpDE)
		return 1
	case 0x14:
		c.inr(D)
		return 1
	case 0x15:
		c.dcr(D)
		return 1
	case 0x16:
		c.mvi(D, d8())
		return 2
	case 0x17:
		c.ral()
		return 1
	case 0x19:
		c.dad(rpDE)
		return 1
	case 0x1A:
		c.ldax(rpDE)
		return 1
	case 0x1B:
		c.decPair(rpDE)
		return 1
	case 0x1C:
		c.inr(E)
		return 1
	case 0x1D:
		c.dcr(E)
		return 1
	case 0x1E:
		c.mvi(E, d8())
		return 2
	case 0x1F:
		c.rar()
		return 1

	case 0x21:
		c.lxi(rpHL, d16())
		return 3
	case 0x22:
		c.shld(d16())
		return 3
	case 0x23:
		c.incPair(rpHL)
		return 1
	case 0x24:
		c.inr(H)
		return 1
	case 0x25:
		c.dcr(H)
		return 1
	case 0x26:
		c.mvi(H, d8())
		return 2
	case 0x27:
		c.daa()
		return 1
	case 0x29:
		c.dad(rpHL)
		return 1
	case 0x2A:
		c.lhld(d16())
		return 3
	case 0x2B:
		c.decPair(rpHL)
		return 1
	case 0x2C:
		c.inr(L)
		return 1
	case 0x2D:
		c.dcr(L)
		return 1
	case 0x2E:
		c.mvi(L, d8())
		return 2
	case 0x2F:
		c.cma()
		return 1

	case 0x31:
		c.lxi(rpSP, d16())
		return 3
	case 0x32:
		c.sta(d16())
		return 3
	case 0x33:
		c.incPair(rpSP)
		return 1
	case 0x34:
		c.inr(M)
		return 1
	case 0x35:
		c.dcr(M)
		return 1
	case 0x36:
		c.mvi(M, d8())
		return 2
	case 0x37:
		c.stc()
		return 1
	case 0x39:
		c.dad(rpSP)
		return 1
	case 0x3A:
		c.lda(d16())
		return 3
	case 0x3B:
		c.decPair(rpSP)
		return 1
	case 0x3C:
		c.inr(A)
		return 1
	case 0x3D:
		c.dcr(A)
		return 1
	case 0x3E:
		c.mvi(A, d8())
		return 2
	case 0x3F:
		c.cmc()
		return 1

	case 0x76:
		c.halted = true
		return 1

	case 0xC3:
		c.jmp(d16())
		return 0
	case 0xC9:
		c.ret()
		return 0
	case 0xCD:
		c.call(d16(), c.pc+3)
		return 0

	case 0xC6:
		c.addToA(d8(), false)
		return 2
	case 0xCE:
		c.addToA(d8(), true)
		return 2
	case 0xD6:
		c.subFromA(d8(), false, false)
		return 2
	case 0xDE:
		c.subFromA(d8(), true, false)
		return 2
	case 0xE6:
		c.ana(d8())
		return 2
	case 0xEE:
		c.xra(d8())
		return 2
	case 0xF6:
		c.ora(d8())
		return 2
	case 0xFE:
		c.subFromA(d8(), false, true)
		return 2

	case 0xD3: // OUT d8: core only advances past the port byte; the
		return 2 // driver reads it back via PortByte (PC-1) and calls TakeWrite.
	case 0xDB: // IN d8: core only advances; driver calls ApplyRead to set A.
		return 2

	case 0xE3:
		c.xthl()
		return 1
	case 0xE9:
		c.pchl()
		return 0
	case 0xEB:
		c.xchg()
		return 1
	case 0xF9:
		c.sphl()
		return 1
	case 0xF3:
		c.IE = false
		return 1
	case 0xFB:
		c.IE = true
		return 1

	case 0xF5:
		c.pushPSW()
		return 1
	case 0xF1:
		c.popPSW()
		return 1

	default:
		return c.executeGrid(opcode)
	}
}

// executeGrid handles the regular opcode groups (MOV, ALU, PUSH/POP,
// Rcc/Jcc/Ccc, RST) whose operand is derived from the opcode's position
// rather than from an explicit case, plus the undocumented-opcode
// default of NOP.
func (c *CPU) executeGrid(opcode byte) int {
	d16 := func() uint16 { return bits.Compose(c.Mem.Read(c.pc+2), c.Mem.Read(c.pc+1)) }

	switch {
	case opcode >= 0x40 && opcode <= 0x7F: // MOV dst,src (0x76 handled above)
		dst := groupRegs[(opcode-0x40)/8]
		src := groupRegs[(opcode-0x40)%8]
		c.mov(dst, src)
		return 1

	case opcode >= 0x80 && opcode <= 0xBF: // ALU r/M
		operand := c.Get(groupRegs[opcode%8])
		switch (opcode - 0x80) / 8 {
		case 0:
			c.addToA(operand, false) // ADD
		case 1:
			c.addToA(operand, true) // ADC
		case 2:
			c.subFromA(operand, false, false) // SUB
		case 3:
			c.subFromA(operand, true, false) // SBB
		case 4:
			c.ana(operand) // ANA
		case 5:
			c.xra(operand) // XRA
		case 6:
			c.ora(operand) // ORA
		case 7:
			c.subFromA(operand, false, true) // CMP
		}
		return 1

	case opcode >= 0xC0 && opcode <= 0xFF && opcode&0x07 == 0x00 && opcode <= 0xF8:
		// Rcc: return if condition holds, else +1
		if c.condition(int((opcode - 0xC0) / 8)) {
			c.ret()
			return 0
		}
		return 1

	case opcode >= 0xC2 && opcode <= 0xFA && opcode&0x07 == 0x02:
		// Jcc: set PC if condition holds, else +3
		if c.condition(int((opcode - 0xC0) / 8)) {
			c.jmp(d16())
			return 0
		}
		return 3

	case opcode >= 0xC4 && opcode <= 0xFC && opcode&0x07 == 0x04:
		// Ccc: call if condition holds, else +3
		if c.condition(int((opcode - 0xC0) / 8)) {
			c.call(d16(), c.pc+3)
			return 0
		}
		return 3

	case opcode >= 0xC7 && opcode&0x07 == 0x07:
		// RST n, n = (opcode-0xC7)/8
		c.rst(byte((opcode - 0xC7) / 8))
		return 0

	case opcode == 0xC1 || opcode == 0xD1 || opcode == 0xE1:
		c.popPair(pairFromOpcode(opcode))
		return 1
	case opcode == 0xC5 || opcode == 0xD5 || opcode == 0xE5:
		c.pushPair(pairFromOpcode(opcode))
		return 1

	default:
		return 1 // NOP, and every undocumented alias (0x08,0x10,...,0xCB,0xD9,0xDD,0xED,0xFD)
	}
}

// pairFromOpcode maps a PUSH/POP opcode (0xC_/0xD_/0xE_ row) to its
// register pair; PSW (the 0xF_ row) is handled separately by
// pushPSW/popPSW since it is not an ordinary register pair.
func pairFromOpcode(opcode byte) pairSel {
	switch opcode & 0xF0 {
	case 0xC0:
		return rpBC
	case 0xD0:
		return rpDE
	default:
		return rpHL
	}
}
