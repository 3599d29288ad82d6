// Package machine is the seam between the 8080 core and a host: video
// RAM export, port I/O dispatch, and vblank interrupt injection. It
// does not render, play audio, map keys, or pace frames; those remain
// a host's job, and Machine only gives the host what it needs to do them.
package machine

import "github.com/hejops/intel8080/cpu"

// Config describes one arcade board's wiring to the core: where its
// video RAM lives and which RST vectors its vertical-blank interrupts
// use. A board with no mid-screen interrupt leaves MidVblankOp unused
// and HasMidVblank false.
type Config struct {
	VRAMStart, VRAMEnd uint16
	VblankOp           byte
	MidVblankOp        byte
	HasMidVblank       bool
}

// Device is a host's implementation of the two 8080 I/O instructions.
// WriteDevice is called with the port and the accumulator's value on
// OUT; ReadDevice is called with the port on IN and its return value is
// written back into the accumulator.
type Device interface {
	WriteDevice(port byte, value byte)
	ReadDevice(port byte) byte
}

// Machine couples a CPU to a Config and a Device, and is the unit a
// host steps instruction by instruction.
type Machine struct {
	CPU    *cpu.CPU
	Config Config
	Device Device
}

// New returns a Machine wrapping an already-constructed CPU.
func New(c *cpu.CPU, cfg Config, dev Device) *Machine {
	return &Machine{CPU: c, Config: cfg, Device: dev}
}

// Step executes a single instruction, routing OUT/IN to Device. It
// returns the opcode that was executed, same as CPU.Step.
func (m *Machine) Step() byte {
	opcode := m.CPU.Step()
	switch opcode {
	case 0xD3: // OUT
		m.Device.WriteDevice(m.CPU.PortByte(), m.CPU.TakeWrite())
	case 0xDB: // IN
		m.CPU.ApplyRead(m.Device.ReadDevice(m.CPU.PortByte()))
	}
	return opcode
}

// Vblank injects the board's vertical-blank interrupt. A host calls
// this once per frame, at whatever cadence it is pacing itself to.
func (m *Machine) Vblank() {
	m.CPU.Interrupt(m.Config.VblankOp)
}

// MidVblank injects the board's mid-screen interrupt, if it has one.
func (m *Machine) MidVblank() {
	if m.Config.HasMidVblank {
		m.CPU.Interrupt(m.Config.MidVblankOp)
	}
}

// VideoRAM returns a borrow-only view of the configured video RAM
// range, for a host renderer to read without copying.
func (m *Machine) VideoRAM() []byte {
	return m.CPU.MemorySlice(m.Config.VRAMStart, m.Config.VRAMEnd)
}
