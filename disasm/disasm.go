// Package disasm renders a raw 8080 byte stream into one mnemonic line
// per instruction, independently of the cpu package's dispatch: it
// walks the opcode table's Size column rather than stepping a live CPU.
package disasm

import (
	"fmt"
	"strings"

	"github.com/hejops/intel8080/cpu"
)

// Line is one disassembled instruction: its address, the bytes it
// occupies, and the rendered mnemonic.
type Line struct {
	Address uint16
	Bytes   []byte
	Text    string
}

// Disassemble walks blob from the start, producing one Line per
// instruction. Each Line's Address is origin plus the instruction's
// offset within blob.
func Disassemble(blob []byte, origin uint16) []Line {
	var lines []Line
	index := 0
	for index < len(blob) {
		opcode := blob[index]
		info := cpu.OpcodeTable[opcode]

		size := int(info.Size)
		if size < 1 {
			size = 1
		}
		end := index + size
		if end > len(blob) {
			end = len(blob)
		}
		raw := blob[index:end]

		lines = append(lines, Line{
			Address: origin + uint16(index),
			Bytes:   append([]byte(nil), raw...),
			Text:    render(info.Name, raw[1:]),
		})

		index = end
	}
	return lines
}

// render substitutes an instruction's immediate operand bytes into its
// mnemonic template, reversing them to source (big-endian display)
// order since the 8080 stores 16-bit immediates little-endian.
func render(name string, operand []byte) string {
	if len(operand) == 0 {
		return name
	}
	reversed := make([]byte, len(operand))
	for i, b := range operand {
		reversed[len(operand)-1-i] = b
	}

	hex := make([]string, len(reversed))
	for i, b := range reversed {
		hex[i] = fmt.Sprintf("%02x", b)
	}
	operandText := strings.Join(hex, " ")
	for _, placeholder := range []string{"a16", "d16", "d8"} {
		if strings.HasSuffix(name, placeholder) {
			return strings.TrimSuffix(name, placeholder) + operandText
		}
	}
	return name + " " + operandText
}

// String renders a Line the way a listing file does: address, padded
// mnemonic, then the raw bytes that produced it.
func (l Line) String() string {
	mnemonic := padTo(l.Text, 16)
	hex := make([]string, len(l.Bytes))
	for i, b := range l.Bytes {
		hex[i] = fmt.Sprintf("%02x", b)
	}
	return fmt.Sprintf("%04x  %s%s", l.Address, mnemonic, strings.Join(hex, " "))
}

func padTo(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Listing joins Disassemble's output into a newline-terminated text
// blob, one instruction per line, in the format a .disassembled file
// uses.
func Listing(blob []byte, origin uint16) string {
	var b strings.Builder
	for _, line := range Disassemble(blob, origin) {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}
