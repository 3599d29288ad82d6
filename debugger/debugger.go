// Package debugger provides an interactive bubbletea TUI for stepping
// an 8080 CPU instruction by instruction, showing the memory page
// around PC, register/flag state, and the decoded current opcode.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/hejops/intel8080/cpu"
)

type model struct {
	cpu     *cpu.CPU
	program []byte

	offset uint16 // only for drawing pageTable
	prevPC uint16
	err    error
}

// Init loads the program at offset and positions PC there. It returns no
// initial command.
func (m model) Init() tea.Cmd {
	m.cpu.Load(m.program, m.offset)
	m.cpu.SetWord(cpu.PC, int(m.offset))
	return nil
}

// Update handles key messages: "q" quits, " " or "j" single-steps.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.GetWord(cpu.PC)
			m.cpu.Step()
		}
	}
	return m, nil
}

// renderPage renders one 16-byte memory row as a line, highlighting PC.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	pc := m.cpu.GetWord(cpu.PC)
	for i := range uint16(16) {
		addr := start + i
		b := m.cpu.MemorySlice(addr, addr)[0]
		if addr == pc {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	f := m.cpu.Flags
	var flags string
	for _, set := range []bool{f.S, f.Z, f.AC, f.P, f.CY} {
		if set {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x
 B: %02x  C: %02x
 D: %02x  E: %02x
 H: %02x  L: %02x
 S Z AC P CY
`,
		m.cpu.GetWord(cpu.PC), m.prevPC,
		m.cpu.GetWord(cpu.SP),
		m.cpu.Get(cpu.A),
		m.cpu.Get(cpu.B), m.cpu.Get(cpu.C),
		m.cpu.Get(cpu.D), m.cpu.Get(cpu.E),
		m.cpu.Get(cpu.H), m.cpu.Get(cpu.L),
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}
	pc := m.cpu.GetWord(cpu.PC)
	pcPage := pc - pc%16

	offsets := []uint16{0, 16, 32, 48, 64}
	for i := range uint16(5) {
		offsets = append(offsets, pcPage+16*i)
	}
	for _, start := range offsets {
		rows = append(rows, m.renderPage(start))
	}
	return strings.Join(rows, "\n")
}

// View renders the full screen: the memory page table beside the
// register/flag panel, then a dump of the opcode about to execute.
func (m model) View() string {
	pc := m.cpu.GetWord(cpu.PC)
	opcode := m.cpu.MemorySlice(pc, pc)[0]
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(cpu.OpcodeTable[opcode]),
	)
}

// Run loads program into c's memory at offset and starts the
// interactive TUI.
func Run(c *cpu.CPU, program []byte, offset uint16) error {
	m, err := tea.NewProgram(model{
		cpu:     c,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		return err
	}
	final := m.(model)
	return final.err
}
