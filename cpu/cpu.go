// Package cpu implements the Intel 8080 microprocessor: registers,
// condition flags, the 256-entry instruction table, and the step /
// interrupt-entry interface a host uses to drive a simulated machine.
package cpu

import (
	"fmt"

	"github.com/hejops/intel8080/bits"
	"github.com/hejops/intel8080/memory"
)

// A Register names one of the seven 8-bit registers, plus the pseudo
// register M, which aliases the byte at memory[HL]. Using a closed
// enumeration instead of string keys means register selection is a
// compile-time concern; there is no runtime name lookup anywhere in the
// handler table.
type Register int

const (
	A Register = iota
	B
	C
	D
	E
	H
	L
	M // memory[HL], not a real register; read/write route through Mem
)

// A WordRegister names one of the two 16-bit registers.
type WordRegister int

const (
	SP WordRegister = iota
	PC
)

// Flags are the five condition flags visible to PSW. The
// interrupt-enable latch is CPU state, not a PSW bit, and lives in CPU.IE.
//
// PSW byte layout (bit7..bit0): S Z 0 AC 0 P 1 CY.
type Flags struct {
	Z  bool // Zero
	S  bool // Sign
	P  bool // Parity (true on *even* parity)
	CY bool // Carry / borrow
	AC bool // Auxiliary carry; faithful only for DAA, approximated elsewhere
}

// CPU owns all 8080 state: the seven 8-bit registers, the two 16-bit
// registers, the condition flags, the interrupt-enable latch, and a
// pointer to the machine's memory. There is exactly one owner of a CPU's
// state at a time; no hidden globals.
type CPU struct {
	Mem *memory.Memory

	regs [7]byte // indexed by Register, excluding M
	sp   uint16
	pc   uint16

	Flags Flags
	IE    bool // interrupt enable

	halted bool // set by HLT, cleared by Interrupt
}

// New returns a CPU attached to mem, with zeroed registers, IE disabled,
// and all flags clear. mem is used as given.
func New(mem *memory.Memory) *CPU {
	return &CPU{Mem: mem}
}

// Load copies program into memory starting at address. No checksum, no
// reset; the caller is responsible for setting PC afterwards if needed.
func (c *CPU) Load(program []byte, address uint16) {
	c.Mem.Load(program, address)
}

// Get returns the value of an 8-bit register. M is resolved through HL
// at the moment of access, never cached.
func (c *CPU) Get(r Register) byte {
	if r == M {
		return c.Mem.Read(c.GetPair(H, L))
	}
	return c.regs[r]
}

// Set stores v into an 8-bit register, normalising to 8 bits first.
func (c *CPU) Set(r Register, v int) {
	b := bits.NormalizeByte(v)
	if r == M {
		c.Mem.Write(c.GetPair(H, L), b)
		return
	}
	c.regs[r] = b
}

// GetPair returns the 16-bit value of the register pair (hi,lo), e.g.
// GetPair(B, C) for BC.
func (c *CPU) GetPair(hi, lo Register) uint16 {
	return bits.Compose(c.Get(hi), c.Get(lo))
}

// SetPair stores a 16-bit value into the register pair (hi,lo).
func (c *CPU) SetPair(hi, lo Register, v uint16) {
	h, l := bits.Split(v)
	c.Set(hi, int(h))
	c.Set(lo, int(l))
}

// GetWord returns the value of a 16-bit register (SP or PC).
func (c *CPU) GetWord(r WordRegister) uint16 {
	if r == SP {
		return c.sp
	}
	return c.pc
}

// SetWord stores v into a 16-bit register, wrapping modulo 2^16.
func (c *CPU) SetWord(r WordRegister, v int) {
	w := bits.NormalizeWord(v)
	if r == SP {
		c.sp = w
	} else {
		c.pc = w
	}
}

// push writes a 16-bit value onto the stack, decrementing SP before each
// byte (high byte first), as PUSH/CALL/RST all require.
func (c *CPU) push(v uint16) {
	hi, lo := bits.Split(v)
	c.sp = bits.NormalizeWord(int(c.sp) - 1)
	c.Mem.Write(c.sp, hi)
	c.sp = bits.NormalizeWord(int(c.sp) - 1)
	c.Mem.Write(c.sp, lo)
}

// pop reads a 16-bit value from the stack, incrementing SP after each
// byte (low byte first), as POP/RET both require.
func (c *CPU) pop() uint16 {
	lo := c.Mem.Read(c.sp)
	c.sp = bits.NormalizeWord(int(c.sp) + 1)
	hi := c.Mem.Read(c.sp)
	c.sp = bits.NormalizeWord(int(c.sp) + 1)
	return bits.Compose(hi, lo)
}

// psw packs the condition flags and CY into the fixed PUSH PSW / POP PSW
// byte layout: bit7=S, bit6=Z, bit5=0, bit4=AC, bit3=0, bit2=P, bit1=1,
// bit0=CY.
func (c *CPU) psw() byte {
	var b byte
	if c.Flags.S {
		b |= 1 << 7
	}
	if c.Flags.Z {
		b |= 1 << 6
	}
	if c.Flags.AC {
		b |= 1 << 4
	}
	if c.Flags.P {
		b |= 1 << 2
	}
	b |= 1 << 1 // bit1 is always 1
	if c.Flags.CY {
		b |= 1 << 0
	}
	return b
}

// setPSW unpacks a PSW byte into the condition flags.
func (c *CPU) setPSW(b byte) {
	c.Flags.S = b&(1<<7) != 0
	c.Flags.Z = b&(1<<6) != 0
	c.Flags.AC = b&(1<<4) != 0
	c.Flags.P = b&(1<<2) != 0
	c.Flags.CY = b&(1<<0) != 0
}

// Summary returns a human-readable dump of registers and flags, in the
// register-per-line style used by debuggers for this machine.
func (c *CPU) Summary() string {
	return fmt.Sprintf(
		"a  : 0x%02x\nb  : 0x%02x\nc  : 0x%02x\nd  : 0x%02x\ne  : 0x%02x\nh  : 0x%02x\nl  : 0x%02x\nsp : 0x%04x\npc : 0x%04x\n\nz  : %v\ns  : %v\np  : %v\ncy : %v\nac : %v\nie : %v\n",
		c.Get(A), c.Get(B), c.Get(C), c.Get(D), c.Get(E), c.Get(H), c.Get(L),
		c.GetWord(SP), c.GetWord(PC),
		c.Flags.Z, c.Flags.S, c.Flags.P, c.Flags.CY, c.Flags.AC, c.IE,
	)
}
