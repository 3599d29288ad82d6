package cpu

import "github.com/hejops/intel8080/bits"

// setFlagsFromResult updates Z, S, P, and (if withCarry) CY from a
// pre-normalised wider integer, where result > 0xff means an add carried
// out. This is the "add" path: never use it for subtraction, where CY
// means borrow, not carry-out of a sum (see subtract below - the two
// conventions are deliberately not folded into one).
func (c *CPU) setFlagsFromResult(result int, withCarry bool) {
	low := byte(result & 0xff)
	c.Flags.Z = low == 0
	c.Flags.S = low&0x80 != 0
	c.Flags.P = bits.Parity(low)
	if withCarry {
		c.Flags.CY = result > 0xff
	}
}

// setFlagsLogical is setFlagsFromResult with CY always cleared, as every
// logical instruction (ANA/ANI/ORA/ORI/XRA/XRI) documents.
func (c *CPU) setFlagsLogical(result int) {
	c.setFlagsFromResult(result, false)
	c.Flags.CY = false
}

// setFlagsNoCarry updates Z, S, P but leaves CY untouched, as INR/DCR
// require.
func (c *CPU) setFlagsNoCarry(result int) {
	low := byte(result & 0xff)
	c.Flags.Z = low == 0
	c.Flags.S = low&0x80 != 0
	c.Flags.P = bits.Parity(low)
}

// subtract performs minuend - subtrahend - borrowIn using the 8080's
// documented borrow semantics: CY is computed as whether the subtrahend
// (plus any incoming borrow) exceeds the minuend, evaluated *before* the
// two's-complement re-addition that produces the numeric result. This is
// the "sub" path; it is intentionally not derived from `result > 0xff`,
// which would be wrong for borrow.
//
// Returns the normalised 8-bit result; Z/S/P/CY are set as a side effect.
// AC is left to the caller (approximated elsewhere, exact only for DAA).
func (c *CPU) subtract(minuend, subtrahend byte, borrowIn bool) byte {
	sub := int(subtrahend)
	if borrowIn {
		sub++
	}
	borrow := sub > int(minuend)
	twosComp := bits.NormalizeByte(-sub)
	result := int(minuend) + int(twosComp)

	c.Flags.CY = borrow
	low := byte(result & 0xff)
	c.Flags.Z = low == 0
	c.Flags.S = low&0x80 != 0
	c.Flags.P = bits.Parity(low)

	return low
}
