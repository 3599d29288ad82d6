// Package memory provides the 8080's 64 KiB byte-addressable memory.
//
// Memory is the central object a CPU is connected to by pointer. No
// devices are mirrored onto it here; video RAM and I/O ports are plain
// address ranges the host reads through Slice.
package memory

// Memory is a contiguous 65536-byte array addressed 0x0000-0xffff. All
// addressing wraps modulo 0x10000; since addr is already a uint16, Go's
// array indexing provides that wrap for free.
type Memory struct {
	cells [65536]byte
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) byte {
	return m.cells[addr]
}

// Write stores data at addr.
func (m *Memory) Write(addr uint16, data byte) {
	m.cells[addr] = data
}

// ReadWord reads a little-endian 16-bit value starting at addr.
func (m *Memory) ReadWord(addr uint16) uint16 {
	lo := m.cells[addr]
	hi := m.cells[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord stores a 16-bit value at addr, little-endian.
func (m *Memory) WriteWord(addr uint16, v uint16) {
	m.cells[addr] = byte(v)
	m.cells[addr+1] = byte(v >> 8)
}

// Load copies program into memory starting at addr, with no bounds check
// beyond the wrap that uint16 addressing already provides.
func (m *Memory) Load(program []byte, addr uint16) {
	for i, b := range program {
		m.cells[addr+uint16(i)] = b
	}
}

// Slice returns a borrow-only view of memory[lo:hi], inclusive of both
// ends. Used by the host to export video RAM without copying.
func (m *Memory) Slice(lo, hi uint16) []byte {
	return m.cells[lo : int(hi)+1]
}
