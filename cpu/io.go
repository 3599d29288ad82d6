package cpu

import "github.com/hejops/intel8080/bits"

// TakeWrite returns the current value of A, to be sent by the host to
// whichever device the OUT instruction's port byte identifies. Called
// after Step returns 0xD3.
func (c *CPU) TakeWrite() byte { return c.Get(A) }

// ApplyRead sets A to a value read from an external device. Called by
// the host after Step returns 0xDB, once it has resolved the port byte
// to a device value.
func (c *CPU) ApplyRead(v byte) { c.Set(A, int(v)) }

// PortByte returns the port-number operand of the OUT/IN instruction
// that was just executed, read from memory at PC-1. Valid only
// immediately after a Step call that returned 0xD3 or 0xDB.
func (c *CPU) PortByte() byte {
	return c.Mem.Read(bits.NormalizeWord(int(c.pc) - 1))
}

// MemorySlice is a borrow-only view of memory[lo:hi], inclusive, for
// exporting video RAM to a host renderer.
func (c *CPU) MemorySlice(lo, hi uint16) []byte {
	return c.Mem.Slice(lo, hi)
}

// SetMemory patches a single memory byte. Used by drivers and the
// cpudiag harness to install fixups into a loaded ROM image.
func (c *CPU) SetMemory(addr uint16, v byte) {
	c.Mem.Write(addr, v)
}
