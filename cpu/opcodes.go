package cpu

// An OpcodeInfo carries the mnemonic and instruction size (in bytes) for
// one of the 256 possible opcode values. The table is total: every
// index 0x00-0xff has an entry, and undocumented slots carry the NOP
// alias they decode to on real 8080 hardware.
//
// Size is consulted only by the disassembler (package disasm); Step()
// never looks sizes up here; each handler computes and returns its own
// PC advance, per the "no secondary special-sizes table at runtime"
// design rule.
type OpcodeInfo struct {
	Name string
	Size byte
}

// groupRegs is the register order the 8080 uses inside the MOV and
// ALU opcode rows: B,C,D,E,H,L,M,A (this is also RST's column order is
// unrelated; RST uses a simple n*8 stride instead).
var groupRegs = [8]Register{B, C, D, E, H, L, M, A}

// OpcodeTable is generated the same way the public reference tables
// are laid out: 16 columns x 16 rows. Built programmatically from the
// regular MOV/ALU grids plus the irregular rows, rather than spelled out
// as 256 literal struct entries.
var OpcodeTable [256]OpcodeInfo

func init() {
	for i := range OpcodeTable {
		OpcodeTable[i] = OpcodeInfo{Name: "NOP", Size: 1} // undocumented default
	}

	regNames := [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

	// 0x00-0x3f: per-register-pair block instructions
	pairNames := [4]string{"B", "D", "H", "SP"}
	for p := range 4 {
		base := byte(p * 0x10)
		OpcodeTable[base+0x01] = OpcodeInfo{"LXI " + pairNames[p] + ",d16", 3}
		OpcodeTable[base+0x03] = OpcodeInfo{"INX " + pairNames[p], 1}
		OpcodeTable[base+0x09] = OpcodeInfo{"DAD " + pairNames[p], 1}
		OpcodeTable[base+0x0B] = OpcodeInfo{"DCX " + pairNames[p], 1}
	}
	OpcodeTable[0x02] = OpcodeInfo{"STAX B", 1}
	OpcodeTable[0x12] = OpcodeInfo{"STAX D", 1}
	OpcodeTable[0x0A] = OpcodeInfo{"LDAX B", 1}
	OpcodeTable[0x1A] = OpcodeInfo{"LDAX D", 1}
	OpcodeTable[0x22] = OpcodeInfo{"SHLD a16", 3}
	OpcodeTable[0x2A] = OpcodeInfo{"LHLD a16", 3}
	OpcodeTable[0x32] = OpcodeInfo{"STA a16", 3}
	OpcodeTable[0x3A] = OpcodeInfo{"LDA a16", 3}
	OpcodeTable[0x07] = OpcodeInfo{"RLC", 1}
	OpcodeTable[0x0F] = OpcodeInfo{"RRC", 1}
	OpcodeTable[0x17] = OpcodeInfo{"RAL", 1}
	OpcodeTable[0x1F] = OpcodeInfo{"RAR", 1}
	OpcodeTable[0x27] = OpcodeInfo{"DAA", 1}
	OpcodeTable[0x2F] = OpcodeInfo{"CMA", 1}
	OpcodeTable[0x37] = OpcodeInfo{"STC", 1}
	OpcodeTable[0x3F] = OpcodeInfo{"CMC", 1}

	// INR/DCR/MVI per register, in regNames order, at 0x04/0x05/0x06
	// + 8*i (INR is 0x04,0x0c,0x14,0x1c,... i.e. +0x08 per register index)
	for i, name := range regNames {
		base := byte(i * 8)
		OpcodeTable[base+0x04] = OpcodeInfo{"INR " + name, 1}
		OpcodeTable[base+0x05] = OpcodeInfo{"DCR " + name, 1}
		OpcodeTable[base+0x06] = OpcodeInfo{"MVI " + name + ",d8", 2}
	}

	// 0x40-0x7f: MOV dst,src (0x76 is HLT, not MOV M,M)
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			op := byte(0x40 + dst*8 + src)
			if op == 0x76 {
				OpcodeTable[op] = OpcodeInfo{"HLT", 1}
				continue
			}
			OpcodeTable[op] = OpcodeInfo{"MOV " + regNames[dst] + "," + regNames[src], 1}
		}
	}

	// 0x80-0xbf: ALU group over src register
	aluNames := [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
	for row, mnem := range aluNames {
		base := byte(0x80 + row*8)
		for src := range 8 {
			OpcodeTable[base+byte(src)] = OpcodeInfo{mnem + " " + regNames[src], 1}
		}
	}

	// branch / stack / control, row by row
	for i, rp := range [4]string{"B", "D", "H", "PSW"} {
		OpcodeTable[0xC1+byte(i*0x10)] = OpcodeInfo{"POP " + rp, 1}
		OpcodeTable[0xC5+byte(i*0x10)] = OpcodeInfo{"PUSH " + rp, 1}
	}

	condNames := [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	for i, cc := range condNames {
		base := byte(0xC0 + i*8)
		OpcodeTable[base+0x00] = OpcodeInfo{"R" + cc, 1}
		OpcodeTable[base+0x02] = OpcodeInfo{"J" + cc + " a16", 3}
		OpcodeTable[base+0x04] = OpcodeInfo{"C" + cc + " a16", 3}
	}

	for n := range 8 {
		OpcodeTable[0xC7+byte(n*8)] = OpcodeInfo{"RST " + itoa(n), 1}
	}

	OpcodeTable[0xC3] = OpcodeInfo{"JMP a16", 3}
	OpcodeTable[0xC9] = OpcodeInfo{"RET", 1}
	OpcodeTable[0xCD] = OpcodeInfo{"CALL a16", 3}

	OpcodeTable[0xC6] = OpcodeInfo{"ADI d8", 2}
	OpcodeTable[0xCE] = OpcodeInfo{"ACI d8", 2}
	OpcodeTable[0xD6] = OpcodeInfo{"SUI d8", 2}
	OpcodeTable[0xDE] = OpcodeInfo{"SBI d8", 2}
	OpcodeTable[0xE6] = OpcodeInfo{"ANI d8", 2}
	OpcodeTable[0xEE] = OpcodeInfo{"XRI d8", 2}
	OpcodeTable[0xF6] = OpcodeInfo{"ORI d8", 2}
	OpcodeTable[0xFE] = OpcodeInfo{"CPI d8", 2}

	OpcodeTable[0xD3] = OpcodeInfo{"OUT d8", 2}
	OpcodeTable[0xDB] = OpcodeInfo{"IN d8", 2}

	OpcodeTable[0xE3] = OpcodeInfo{"XTHL", 1}
	OpcodeTable[0xE9] = OpcodeInfo{"PCHL", 1}
	OpcodeTable[0xEB] = OpcodeInfo{"XCHG", 1}
	OpcodeTable[0xF9] = OpcodeInfo{"SPHL", 1}
	OpcodeTable[0xF3] = OpcodeInfo{"DI", 1}
	OpcodeTable[0xFB] = OpcodeInfo{"EI", 1}
}

// itoa is a tiny unsigned-int-to-decimal-string helper, avoiding a
// strconv import for a handful of single/double digit RST targets.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [2]byte{}
	i := 2
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}
