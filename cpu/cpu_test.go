package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hejops/intel8080/memory"
)

func newCPU(program []byte, addr uint16) *CPU {
	c := New(&memory.Memory{})
	c.Load(program, addr)
	c.SetWord(PC, int(addr))
	return c
}

func TestLoadProgram(t *testing.T) {
	program := []byte{0x3E, 0x05, 0x06, 0x03, 0x80} // MVI A,5 / MVI B,3 / ADD B
	c := newCPU(program, 0x0100)

	assert.Equal(t, byte(0x3E), c.Mem.Read(0x0100))
	assert.Equal(t, byte(0x05), c.Mem.Read(0x0101))
	assert.Equal(t, byte(0x06), c.Mem.Read(0x0102))
	assert.Equal(t, byte(0x80), c.Mem.Read(0x0104))

	assert.Equal(t, "MVI A,d8", OpcodeTable[c.Mem.Read(0x0100)].Name)
	assert.Equal(t, "MVI B,d8", OpcodeTable[c.Mem.Read(0x0102)].Name)
	assert.Equal(t, "ADD B", OpcodeTable[c.Mem.Read(0x0104)].Name)
}

// TestMviAdd walks MVI A,5 / MVI B,3 / ADD B step by step, checking the
// register and flag state and PC after every instruction.
func TestMviAdd(t *testing.T) {
	c := newCPU([]byte{0x3E, 0x05, 0x06, 0x03, 0x80}, 0x0000)

	for _, step := range []struct {
		wantA, wantB byte
		wantPC       uint16
		wantZ, wantS, wantP, wantCY bool
	}{
		{wantA: 0x05, wantB: 0x00, wantPC: 0x0002},
		{wantA: 0x05, wantB: 0x03, wantPC: 0x0004},
		{wantA: 0x08, wantB: 0x03, wantPC: 0x0005},
	} {
		c.Step()
		assert.Equal(t, step.wantA, c.Get(A))
		assert.Equal(t, step.wantB, c.Get(B))
		assert.Equal(t, step.wantPC, c.GetWord(PC))
		assert.Equal(t, step.wantZ, c.Flags.Z)
		assert.Equal(t, step.wantS, c.Flags.S)
		assert.Equal(t, step.wantP, c.Flags.P)
		assert.Equal(t, step.wantCY, c.Flags.CY)
	}
}

// TestAdiOverflow exercises ADI wrapping past 0xff and setting CY.
func TestAdiOverflow(t *testing.T) {
	c := newCPU([]byte{0x3E, 0xFF, 0xC6, 0x01}, 0x0000)

	c.Step() // MVI A,0xFF
	assert.Equal(t, byte(0xFF), c.Get(A))

	c.Step() // ADI 1
	assert.Equal(t, byte(0x00), c.Get(A))
	assert.True(t, c.Flags.Z)
	assert.True(t, c.Flags.CY)
	assert.True(t, c.Flags.AC)
	assert.Equal(t, uint16(0x0004), c.GetWord(PC))
}

// TestDcrToZero exercises DCR crossing to zero without touching CY.
func TestDcrToZero(t *testing.T) {
	c := newCPU([]byte{0x3E, 0x01, 0x3D}, 0x0000)
	c.Flags.CY = true // DCR must not clear a pre-existing carry

	c.Step() // MVI A,1
	c.Step() // DCR A

	assert.Equal(t, byte(0x00), c.Get(A))
	assert.True(t, c.Flags.Z)
	assert.False(t, c.Flags.S)
	assert.True(t, c.Flags.CY, "DCR must leave CY untouched")
}

// TestDcrUnderflow exercises DCR wrapping 0x00 -> 0xFF, clearing Z and
// setting S.
func TestDcrUnderflow(t *testing.T) {
	c := newCPU([]byte{0x3E, 0x00, 0x3D}, 0x0000)
	c.Step()
	c.Step()

	assert.Equal(t, byte(0xFF), c.Get(A))
	assert.False(t, c.Flags.Z)
	assert.True(t, c.Flags.S)
}

func TestLxi(t *testing.T) {
	c := newCPU([]byte{0x01, 0x34, 0x12}, 0x0000) // LXI B,0x1234
	c.Step()
	assert.Equal(t, byte(0x12), c.Get(B))
	assert.Equal(t, byte(0x34), c.Get(C))
	assert.Equal(t, uint16(0x1234), c.GetPair(B, C))
	assert.Equal(t, uint16(0x0003), c.GetWord(PC))
}

func TestJmp(t *testing.T) {
	c := newCPU([]byte{0xC3, 0x00, 0x01}, 0x0000) // JMP 0x0100
	c.Step()
	assert.Equal(t, uint16(0x0100), c.GetWord(PC))
}

// TestCallRet exercises a CALL into a subroutine that immediately RETs,
// verifying the return address pushed is PC after the 3-byte CALL, and
// that SP is restored afterward.
func TestCallRet(t *testing.T) {
	program := make([]byte, 0x0110)
	program[0] = 0xCD // CALL 0x0100
	program[1] = 0x00
	program[2] = 0x01
	program[0x0100] = 0xC9 // RET

	c := newCPU(program, 0x0000)
	c.SetWord(SP, 0xFFFE)

	c.Step() // CALL
	assert.Equal(t, uint16(0x0100), c.GetWord(PC))
	assert.Equal(t, uint16(0xFFFC), c.GetWord(SP))
	assert.Equal(t, uint16(0x0003), c.Mem.ReadWord(0xFFFC))

	c.Step() // RET
	assert.Equal(t, uint16(0x0003), c.GetWord(PC))
	assert.Equal(t, uint16(0xFFFE), c.GetWord(SP))
}

// TestPushPopPair round-trips a register pair through the stack.
func TestPushPopPair(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.SetWord(SP, 0xFFFE)
	c.SetPair(B, C, 0xBEEF)

	c.pushPair(rpBC)
	c.SetPair(B, C, 0x0000)
	c.popPair(rpBC)

	assert.Equal(t, uint16(0xBEEF), c.GetPair(B, C))
	assert.Equal(t, uint16(0xFFFE), c.GetWord(SP))
}

// TestPushPopPSW round-trips A and the five condition flags through
// PUSH PSW / POP PSW.
func TestPushPopPSW(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.SetWord(SP, 0xFFFE)
	c.Set(A, 0x42)
	c.Flags = Flags{Z: true, S: false, P: true, CY: true, AC: false}

	c.pushPSW()
	saved := c.Flags
	c.Flags = Flags{}
	c.Set(A, 0)
	c.popPSW()

	assert.Equal(t, byte(0x42), c.Get(A))
	assert.Equal(t, saved, c.Flags)
}

// TestDaaPackedBcd exercises the textbook DAA case: 9+8=0x11 in raw
// binary, which DAA corrects to the packed-BCD 0x17 (no decimal carry).
func TestDaaPackedBcd(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.Set(A, 0x09)
	c.addToA(0x08, false) // A = 0x11, AC set from nibble carry
	assert.Equal(t, byte(0x11), c.Get(A))
	assert.True(t, c.Flags.AC)

	c.daa()
	assert.Equal(t, byte(0x17), c.Get(A))
}

// TestDaaHighNibbleCarrySticky verifies DAA's high-nibble fix only ever
// sets CY, never clears a carry that was already set coming in.
func TestDaaHighNibbleCarrySticky(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.Set(A, 0x05)
	c.Flags.CY = true // pretend a previous add already carried
	c.daa()
	assert.True(t, c.Flags.CY)
}

func TestRotates(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.Set(A, 0x80)
	c.rlc()
	assert.Equal(t, byte(0x01), c.Get(A))
	assert.True(t, c.Flags.CY)

	c.Set(A, 0x01)
	c.rrc()
	assert.Equal(t, byte(0x80), c.Get(A))
	assert.True(t, c.Flags.CY)

	c.Set(A, 0x80)
	c.Flags.CY = false
	c.ral()
	assert.Equal(t, byte(0x00), c.Get(A))
	assert.True(t, c.Flags.CY)

	c.Set(A, 0x00)
	c.Flags.CY = true
	c.ral()
	assert.Equal(t, byte(0x01), c.Get(A))
	assert.False(t, c.Flags.CY)
}

// TestSubtractBorrow exercises the borrow-correct subtract path
// directly: 0x00 - 0x01 must borrow and wrap to 0xFF.
func TestSubtractBorrow(t *testing.T) {
	c := newCPU(nil, 0x0000)
	result := c.subtract(0x00, 0x01, false)
	assert.Equal(t, byte(0xFF), result)
	assert.True(t, c.Flags.CY)
	assert.False(t, c.Flags.Z)
}

func TestSubtractNoBorrow(t *testing.T) {
	c := newCPU(nil, 0x0000)
	result := c.subtract(0x05, 0x03, false)
	assert.Equal(t, byte(0x02), result)
	assert.False(t, c.Flags.CY)
}

// TestCmpLeavesAccumulator verifies CMP computes flags without writing A.
func TestCmpLeavesAccumulator(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.Set(A, 0x05)
	c.subFromA(0x05, false, true)
	assert.Equal(t, byte(0x05), c.Get(A))
	assert.True(t, c.Flags.Z)
}

func TestHlt(t *testing.T) {
	c := newCPU([]byte{0x76, 0x3E, 0x01}, 0x0000)
	opcode := c.Step()
	assert.Equal(t, byte(0x76), opcode)
	assert.Equal(t, uint16(0x0001), c.GetWord(PC))

	c.Step() // halted: no-op, PC unchanged, MVI never runs
	assert.Equal(t, uint16(0x0001), c.GetWord(PC))
	assert.Equal(t, byte(0x00), c.Get(A))
}

// TestInterruptRunsRstWithoutOwnAdvance checks that Interrupt executes
// an RST as if fetched, pushing the interrupted PC, and resumes a
// halted CPU.
func TestInterruptRunsRstWithoutOwnAdvance(t *testing.T) {
	c := newCPU([]byte{0x76}, 0x0000)
	c.SetWord(SP, 0xFFFE)
	c.IE = true

	c.Step() // HLT
	assert.True(t, c.halted)

	c.Interrupt(0xCF) // RST 1 -> vector 0x0008
	assert.False(t, c.halted)
	assert.False(t, c.IE)
	assert.Equal(t, uint16(0x0008), c.GetWord(PC))
	assert.Equal(t, uint16(0x0001), c.Mem.ReadWord(0xFFFC))
}

func TestInterruptIgnoredWhenDisabled(t *testing.T) {
	c := newCPU([]byte{0x00}, 0x0000)
	c.IE = false
	c.Interrupt(0xCF)
	assert.Equal(t, uint16(0x0000), c.GetWord(PC))
}

func TestMovThroughMemory(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.SetPair(H, L, 0x2000)
	c.Mem.Write(0x2000, 0x77)
	c.mov(A, M)
	assert.Equal(t, byte(0x77), c.Get(A))

	c.Set(A, 0x99)
	c.mov(M, A)
	assert.Equal(t, byte(0x99), c.Mem.Read(0x2000))
}

func TestXchgAndXthl(t *testing.T) {
	c := newCPU(nil, 0x0000)
	c.SetWord(SP, 0xFFFE)
	c.SetPair(D, E, 0x1111)
	c.SetPair(H, L, 0x2222)
	c.xchg()
	assert.Equal(t, uint16(0x2222), c.GetPair(D, E))
	assert.Equal(t, uint16(0x1111), c.GetPair(H, L))

	c.Mem.WriteWord(0xFFFE, 0x3333)
	c.xthl()
	assert.Equal(t, uint16(0x3333), c.GetPair(H, L))
	assert.Equal(t, uint16(0x1111), c.Mem.ReadWord(0xFFFE))
	assert.Equal(t, uint16(0xFFFE), c.GetWord(SP))
}
