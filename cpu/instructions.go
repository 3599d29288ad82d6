package cpu

import "github.com/hejops/intel8080/bits"

// pairSel names one of the four 16-bit register pairs usable by
// LXI/INX/DCX/DAD. SP is included because INX SP / DCX SP / DAD SP /
// LXI SP,d16 are ordinary members of this instruction family, even
// though SP itself is a WordRegister, not a pair of two Registers.
type pairSel int

const (
	rpBC pairSel = iota
	rpDE
	rpHL
	rpSP
)

func (c *CPU) pairValue(p pairSel) uint16 {
	switch p {
	case rpBC:
		return c.GetPair(B, C)
	case rpDE:
		return c.GetPair(D, E)
	case rpHL:
		return c.GetPair(H, L)
	default:
		return c.GetWord(SP)
	}
}

func (c *CPU) setPairValue(p pairSel, v uint16) {
	switch p {
	case rpBC:
		c.SetPair(B, C, v)
	case rpDE:
		c.SetPair(D, E, v)
	case rpHL:
		c.SetPair(H, L, v)
	default:
		c.SetWord(SP, int(v))
	}
}

// lxi loads a 16-bit immediate into the selected pair.
func (c *CPU) lxi(p pairSel, v uint16) { c.setPairValue(p, v) }

// incPair/decPair implement INX/DCX: ±1 on the pair, no flags touched.
func (c *CPU) incPair(p pairSel) { c.setPairValue(p, bits.NormalizeWord(int(c.pairValue(p))+1)) }
func (c *CPU) decPair(p pairSel) { c.setPairValue(p, bits.NormalizeWord(int(c.pairValue(p))-1)) }

// dad adds the selected pair into HL, setting CY iff the sum overflows
// 16 bits. No other flags are touched.
func (c *CPU) dad(p pairSel) {
	sum := int(c.GetPair(H, L)) + int(c.pairValue(p))
	c.Flags.CY = sum > 0xffff
	c.SetPair(H, L, bits.NormalizeWord(sum))
}

// mov copies src into dst; either may be M, which aliases memory[HL].
func (c *CPU) mov(dst, src Register) { c.Set(dst, int(c.Get(src))) }

// mvi loads an immediate byte into r (or memory[HL] for MVI M).
func (c *CPU) mvi(r Register, d8 byte) { c.Set(r, int(d8)) }

// lda/sta move A to/from an absolute 16-bit address.
func (c *CPU) lda(addr uint16) { c.Set(A, int(c.Mem.Read(addr))) }
func (c *CPU) sta(addr uint16) { c.Mem.Write(addr, c.Get(A)) }

// lhld/shld move HL to/from an absolute address pair (L at addr, H at
// addr+1).
func (c *CPU) lhld(addr uint16) {
	c.Set(L, int(c.Mem.Read(addr)))
	c.Set(H, int(c.Mem.Read(addr+1)))
}
func (c *CPU) shld(addr uint16) {
	c.Mem.Write(addr, c.Get(L))
	c.Mem.Write(addr+1, c.Get(H))
}

// ldax/stax move A to/from the address held in BC or DE.
func (c *CPU) ldax(p pairSel) { c.Set(A, int(c.Mem.Read(c.pairValue(p)))) }
func (c *CPU) stax(p pairSel) { c.Mem.Write(c.pairValue(p), c.Get(A)) }

func (c *CPU) xchg() {
	de := c.GetPair(D, E)
	hl := c.GetPair(H, L)
	c.SetPair(D, E, hl)
	c.SetPair(H, L, de)
}

// xthl swaps HL with the two bytes at the top of the stack; SP itself
// is unchanged.
func (c *CPU) xthl() {
	lo := c.Mem.Read(c.sp)
	hi := c.Mem.Read(c.sp + 1)
	h, l := bits.Split(c.GetPair(H, L))
	c.Mem.Write(c.sp, l)
	c.Mem.Write(c.sp+1, h)
	c.SetPair(H, L, bits.Compose(hi, lo))
}

func (c *CPU) sphl() { c.SetWord(SP, int(c.GetPair(H, L))) }
func (c *CPU) pchl() { c.SetWord(PC, int(c.GetPair(H, L))) }

// addToA implements ADD/ADC: A += operand (+ CY if withCarry), updating
// Z,S,P,CY,AC. This is the "add" path: CY is derived from the wider sum
// exceeding 0xff.
func (c *CPU) addToA(operand byte, withCarry bool) {
	sum := int(c.Get(A)) + int(operand)
	if withCarry && c.Flags.CY {
		sum++
	}
	c.Flags.AC = (int(c.Get(A))&0x0f)+(int(operand)&0x0f) > 0x0f
	c.setFlagsFromResult(sum, true)
	c.Set(A, sum)
}

// subFromA implements SUB/SBB/CMP: A -= operand (- CY if withCarry),
// using the borrow-correct subtract path. If discard is true (CMP), A
// is left unmodified but flags are still set from the comparison.
func (c *CPU) subFromA(operand byte, withCarry, discard bool) {
	result := c.subtract(c.Get(A), operand, withCarry && c.Flags.CY)
	c.Flags.AC = (int(c.Get(A)) & 0x0f) < (int(operand) & 0x0f)
	if !discard {
		c.Set(A, int(result))
	}
}

// inr/dcr implement INR/DCR: ±1 on a register or memory[HL], updating
// Z,S,P,AC but never CY (the 8080 spec is explicit that these leave
// carry alone, unlike ADD/SUB).
func (c *CPU) inr(r Register) {
	v := c.Get(r)
	c.Flags.AC = v&0x0f == 0x0f
	result := bits.NormalizeByte(int(v) + 1)
	c.setFlagsNoCarry(int(result))
	c.Set(r, int(result))
}

func (c *CPU) dcr(r Register) {
	v := c.Get(r)
	c.Flags.AC = v&0x0f != 0x00
	result := bits.NormalizeByte(int(v) - 1)
	c.setFlagsNoCarry(int(result))
	c.Set(r, int(result))
}

// daa implements decimal-adjust-accumulator exactly as documented:
// fix the low nibble first (possibly setting AC), then the high nibble
// (possibly setting, but never clearing, CY), then refresh Z/S/P from
// the final accumulator.
func (c *CPU) daa() {
	a := int(c.Get(A))

	if a&0x0f > 9 || c.Flags.AC {
		c.Flags.AC = (a&0x0f)+0x06 > 0x0f // carry out of the low nibble
		a += 0x06
	} else {
		c.Flags.AC = false
	}

	if (a>>4)&0x0f > 9 || c.Flags.CY {
		a += 0x60
		if a > 0xff {
			c.Flags.CY = true // set-only: never cleared by the high-nibble fix
		}
	}

	result := bits.NormalizeByte(a)
	c.Set(A, int(result))
	c.setFlagsNoCarry(int(result))
}

func (c *CPU) ana(operand byte) {
	result := c.Get(A) & operand
	c.Flags.AC = (c.Get(A)|operand)&0x08 != 0 // documented quirk: AC = OR of bit 3
	c.Set(A, int(result))
	c.setFlagsLogical(int(result))
}

func (c *CPU) xra(operand byte) {
	result := c.Get(A) ^ operand
	c.Flags.AC = false
	c.Set(A, int(result))
	c.setFlagsLogical(int(result))
}

func (c *CPU) ora(operand byte) {
	result := c.Get(A) | operand
	c.Flags.AC = false
	c.Set(A, int(result))
	c.setFlagsLogical(int(result))
}

func (c *CPU) cma() { c.Set(A, int(^c.Get(A))) } // no flags
func (c *CPU) stc() { c.Flags.CY = true }
func (c *CPU) cmc() { c.Flags.CY = !c.Flags.CY }

// rlc/rrc/ral/rar all rotate A by one bit and set CY as documented.
func (c *CPU) rlc() {
	a := c.Get(A)
	bit7 := a&0x80 != 0
	c.Flags.CY = bit7
	result := a << 1
	if bit7 {
		result |= 0x01
	}
	c.Set(A, int(result))
}

func (c *CPU) rrc() {
	a := c.Get(A)
	bit0 := a&0x01 != 0
	c.Flags.CY = bit0
	result := a >> 1
	if bit0 {
		result |= 0x80
	}
	c.Set(A, int(result))
}

func (c *CPU) ral() {
	a := c.Get(A)
	oldCY := c.Flags.CY
	c.Flags.CY = a&0x80 != 0
	result := a << 1
	if oldCY {
		result |= 0x01
	}
	c.Set(A, int(result))
}

func (c *CPU) rar() {
	a := c.Get(A)
	oldCY := c.Flags.CY
	c.Flags.CY = a&0x01 != 0
	result := a >> 1
	if oldCY {
		result |= 0x80
	}
	c.Set(A, int(result))
}

// Branch/call/return helpers. The caller (dispatch) evaluates any
// condition and picks the PC advance; these helpers only set PC and SP.

func (c *CPU) jmp(addr uint16) { c.SetWord(PC, int(addr)) }

func (c *CPU) call(addr uint16, retAddr uint16) {
	c.push(retAddr)
	c.SetWord(PC, int(addr))
}

func (c *CPU) ret() { c.SetWord(PC, int(c.pop())) }

func (c *CPU) rst(n byte) {
	c.push(c.pc)
	c.SetWord(PC, int(n)*8)
}

func (c *CPU) pushPair(p pairSel) {
	hi, lo := c.pairBytes(p)
	c.push(bits.Compose(hi, lo))
}

func (c *CPU) popPair(p pairSel) {
	v := c.pop()
	hi, lo := bits.Split(v)
	c.setPairBytes(p, hi, lo)
}

func (c *CPU) pairBytes(p pairSel) (hi, lo byte) {
	switch p {
	case rpBC:
		return c.Get(B), c.Get(C)
	case rpDE:
		return c.Get(D), c.Get(E)
	default:
		return c.Get(H), c.Get(L)
	}
}

func (c *CPU) setPairBytes(p pairSel, hi, lo byte) {
	switch p {
	case rpBC:
		c.Set(B, int(hi))
		c.Set(C, int(lo))
	case rpDE:
		c.Set(D, int(hi))
		c.Set(E, int(lo))
	default:
		c.Set(H, int(hi))
		c.Set(L, int(lo))
	}
}

func (c *CPU) pushPSW() { c.push(bits.Compose(c.Get(A), c.psw())) }
func (c *CPU) popPSW() {
	v := c.pop()
	hi, lo := bits.Split(v)
	c.Set(A, int(hi))
	c.setPSW(lo)
}
