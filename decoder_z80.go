package dismantle

import "fmt"

var aluZ80 = []string{"ADD  A, ", "ADC  A, ", "SUB  ", "SBC  A, ", "AND  ", "XOR  ", "OR   ", "CP   "}
var bliZ80 = [4][4]string{
	{"LDI", "CPI", "INI", "OUTI"},
	{"LDD", "CPD", "IND", "OUTD"},
	{"LDIR", "CPIR", "INIR", "OTIR"},
	{"LDDR", "CPDR", "INDR", "OTDR"},
}
var ccZ80 = []string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
var imZ80 = []string{"0", "0/1", "1", "2", "0", "0/1", "1", "2"}
var rZ80 = []string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var rotZ80 = []string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
var rpZ80 = []string{"BC", "DE", "HL", "SP"}
var rp2Z80 = []string{"BC", "DE", "HL", "AF"}

// DefaultLabelsZ80 is the RST00..RST38 plus NMI table from rom_z80.py's
// default_labels (note the two-digit RST spelling, unlike 8080's RST0..RST7).
var DefaultLabelsZ80 = map[int]string{
	0x00: "RST00", 0x08: "RST08", 0x10: "RST10", 0x18: "RST18",
	0x20: "RST20", 0x28: "RST28", 0x30: "RST30", 0x38: "RST38",
	0x66: "NMI",
}

// DefaultEntriesZ80 adds the NMI vector (0x66) to the eight RST addresses.
var DefaultEntriesZ80 = []int{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0x66}

// DefaultPortsZ80 is empty: no well-known Z80 port names.
var DefaultPortsZ80 = map[int]string{}

// CPUZ80 decodes Zilog Z80 machine code, including the CB and ED prefix
// tables. Grounded line-for-line on rom_z80.py's disasm_single.
type CPUZ80 struct {
	S *Store
}

// NewCPUZ80 wraps store in a Z80 decoder.
func NewCPUZ80(store *Store) *CPUZ80 {
	return &CPUZ80{S: store}
}

// DisasmSingle decodes the instruction at address.
func (c *CPUZ80) DisasmSingle(address int, createLabel bool) []int {
	s := c.S
	idx, done := s.beginInstruction(address)
	if done {
		return nil
	}

	opcode := int(s.ROM[idx])
	var next []int

	x := (opcode >> 6) & 0x03
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0:
				s.Disassembly[idx] = "NOP"
				next = []int{address + 1}
			case y == 1:
				s.Disassembly[idx] = "EX   AF, AF'"
				next = []int{address + 1}
			case y == 2:
				// Displacement computed relative to the opcode address, not
				// the byte following the operand. Mirrors the source
				// verbatim per the preserved Z80 relative-addressing quirk;
				// a strictly conforming Z80 disassembler would add 2.
				dest := address + SignedByte(int(s.ROM[idx+1]))
				s.DataType[idx+1] = Operand
				s.Disassembly[idx] = fmt.Sprintf("DJNZ %s", s.LookupAddress(dest, createLabel, "J_"))
				next = []int{address + 2, dest}
				s.AddXref(address, dest)
			case y == 3:
				dest := address + SignedByte(int(s.ROM[idx+1]))
				s.DataType[idx+1] = Operand
				s.Disassembly[idx] = fmt.Sprintf("JR   %s", s.LookupAddress(dest, createLabel, "J_"))
				next = []int{dest}
				s.AddXref(address, dest)
			default:
				dest := address + SignedByte(int(s.ROM[idx+1]))
				s.DataType[idx+1] = Operand
				s.Disassembly[idx] = fmt.Sprintf("JR   %s, %s", ccZ80[y-4], s.LookupAddress(dest, createLabel, "J_"))
				next = []int{address + 2, dest}
				s.AddXref(address, dest)
			}
		case 1:
			if q == 0 {
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LD   %s, %s", rpZ80[p], Hex16Intel(word))
				next = []int{address + 3}
			} else {
				s.Disassembly[idx] = fmt.Sprintf("ADD  HL, %s", rpZ80[p])
				next = []int{address + 1}
			}
		case 2:
			accessAddr := address
			switch {
			case q == 0 && p <= 1:
				s.Disassembly[idx] = fmt.Sprintf("LD   (%s), A", rpZ80[p])
				next = []int{address + 1}
			case q == 0 && p == 2:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LD   (%s), HL", s.LookupAddress(word, createLabel, "D_"))
				s.SetData16(word, &accessAddr)
				next = []int{address + 3}
			case q == 0:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LD   (%s), A", s.LookupAddress(word, createLabel, "D_"))
				s.SetData8(word, &accessAddr)
				next = []int{address + 3}
			case p <= 1:
				s.Disassembly[idx] = fmt.Sprintf("LD   A, (%s)", rpZ80[p])
				next = []int{address + 1}
			case p == 2:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LD   HL, (%s)", s.LookupAddress(word, createLabel, "D_"))
				s.SetData16(word, &accessAddr)
				next = []int{address + 3}
			default:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LD   A, (%s)", s.LookupAddress(word, createLabel, "D_"))
				s.SetData8(word, &accessAddr)
				next = []int{address + 3}
			}
		case 3:
			if q == 0 {
				s.Disassembly[idx] = fmt.Sprintf("INC  %s", rpZ80[p])
			} else {
				s.Disassembly[idx] = fmt.Sprintf("DEC  %s", rpZ80[p])
			}
			next = []int{address + 1}
		case 4:
			s.Disassembly[idx] = fmt.Sprintf("INC  %s", rZ80[y])
			next = []int{address + 1}
		case 5:
			s.Disassembly[idx] = fmt.Sprintf("DEC  %s", rZ80[y])
			next = []int{address + 1}
		case 6:
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("LD   %s, %s", rZ80[y], Hex8Intel(int(s.ROM[idx+1])))
			next = []int{address + 2}
		case 7:
			switch y {
			case 0:
				s.Disassembly[idx] = "RLCA"
			case 1:
				s.Disassembly[idx] = "RRCA"
			case 2:
				s.Disassembly[idx] = "RLA"
			case 3:
				s.Disassembly[idx] = "RRA"
			case 4:
				s.Disassembly[idx] = "DAA"
			case 5:
				s.Disassembly[idx] = "CPL"
			case 6:
				s.Disassembly[idx] = "SCF"
			default:
				s.Disassembly[idx] = "CCF"
			}
			next = []int{address + 1}
		}

	case 1:
		if z == 6 && y == 6 {
			s.Disassembly[idx] = "HALT"
		} else {
			s.Disassembly[idx] = fmt.Sprintf("LD   %s, %s", rZ80[y], rZ80[z])
		}
		next = []int{address + 1}

	case 2:
		s.Disassembly[idx] = fmt.Sprintf("%s%s", aluZ80[y], rZ80[z])
		next = []int{address + 1}

	case 3:
		switch z {
		case 0:
			s.Disassembly[idx] = fmt.Sprintf("RET  %s", ccZ80[y])
			next = []int{address + 1}
		case 1:
			if q == 0 {
				s.Disassembly[idx] = fmt.Sprintf("POP  %s", rp2Z80[p])
				next = []int{address + 1}
			} else {
				switch p {
				case 0:
					s.Disassembly[idx] = "RET"
					next = nil
				case 1:
					s.Disassembly[idx] = "EXX"
					next = []int{address + 1}
				case 2:
					s.Disassembly[idx] = "JP   HL"
					next = nil
				default:
					s.Disassembly[idx] = "LD   SP, HL"
					next = []int{address + 1}
				}
			}
		case 2:
			word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			s.Disassembly[idx] = fmt.Sprintf("JP   %s, %s", ccZ80[y], s.LookupAddress(word, createLabel, "J_"))
			next = []int{address + 3, word}
			s.AddXref(address, word)
		case 3:
			next = c.decodeX3Z3(idx, address, opcode, y, createLabel)
		case 4:
			word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			s.Disassembly[idx] = fmt.Sprintf("CALL %s, %s", ccZ80[y], s.LookupAddress(word, createLabel, "C_"))
			next = []int{address + 3, word}
			s.AddXref(address, word)
		case 5:
			if q == 0 {
				s.Disassembly[idx] = fmt.Sprintf("PUSH %s", rp2Z80[p])
				next = []int{address + 1}
			} else {
				next = c.decodeX3Z5(idx, address, opcode, p, y, createLabel)
			}
		case 6:
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("%s%s", aluZ80[y], Hex8Intel(int(s.ROM[idx+1])))
			next = []int{address + 2}
		case 7:
			target := y * 8
			s.Disassembly[idx] = fmt.Sprintf("RST  %d", target)
			next = []int{target}
			s.AddXref(address, target)
		}
	}

	return next
}

// decodeX3Z3 handles the x=3,z=3 family: JP/CB-prefix/OUT/IN/EX/DI/EI.
func (c *CPUZ80) decodeX3Z3(idx, address, opcode, y int, createLabel bool) []int {
	s := c.S
	switch y {
	case 0:
		word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
		s.DataType[idx+1] = Operand
		s.DataType[idx+2] = Operand
		s.Disassembly[idx] = fmt.Sprintf("JP   %s", s.LookupAddress(word, createLabel, "J_"))
		s.AddXref(address, word)
		return []int{word}
	case 1:
		return c.decodeCB(idx, address, y)
	case 2:
		s.DataType[idx+1] = Operand
		s.Disassembly[idx] = fmt.Sprintf("OUT  (%s), A", s.LookupPort(int(s.ROM[idx+1]), createLabel, "P_"))
		return []int{address + 2}
	case 3:
		s.DataType[idx+1] = Operand
		s.Disassembly[idx] = fmt.Sprintf("IN   A, (%s)", s.LookupPort(int(s.ROM[idx+1]), createLabel, "P_"))
		return []int{address + 2}
	case 4:
		s.Disassembly[idx] = "EX   (SP), HL"
		return []int{address + 1}
	case 5:
		s.Disassembly[idx] = "EX   DE, HL"
		return []int{address + 1}
	case 6:
		s.Disassembly[idx] = "DI"
		return []int{address + 1}
	default:
		s.Disassembly[idx] = "EI"
		return []int{address + 1}
	}
}

// decodeCB handles the CB-prefixed rotate/shift/BIT/RES/SET table. BIT,
// RES and SET index the bit number from the outer y field, not the
// CB-byte's own y2 — preserved verbatim per SPEC_FULL.md §4.4 deviation 2.
func (c *CPUZ80) decodeCB(idx, address, y int) []int {
	s := c.S
	opcode2 := int(s.ROM[idx+1])
	x2 := (opcode2 >> 6) & 0x03
	y2 := (opcode2 >> 3) & 0x07
	z2 := opcode2 & 0x07
	s.DataType[idx+1] = Operand

	switch x2 {
	case 0:
		s.Disassembly[idx] = fmt.Sprintf("%-4s %s", rotZ80[y2], rZ80[z2])
	case 1:
		s.Disassembly[idx] = fmt.Sprintf("BIT  %d, %s", y, rZ80[z2])
	case 2:
		s.Disassembly[idx] = fmt.Sprintf("RES  %d, %s", y, rZ80[z2])
	default:
		s.Disassembly[idx] = fmt.Sprintf("SET  %d, %s", y, rZ80[z2])
	}
	return []int{address + 2}
}

// decodeX3Z5 handles the x=3,z=5,q=1 family: CALL/DD-prefix/ED-prefix/FD-prefix.
func (c *CPUZ80) decodeX3Z5(idx, address, opcode, p, outerY int, createLabel bool) []int {
	s := c.S
	switch p {
	case 0:
		word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
		s.DataType[idx+1] = Operand
		s.DataType[idx+2] = Operand
		s.Disassembly[idx] = fmt.Sprintf("CALL %s", s.LookupAddress(word, createLabel, "C_"))
		s.AddXref(address, word)
		return []int{address + 3, word}
	case 1:
		return c.decodeUnimplementedPrefix(idx, address, "DD")
	case 2:
		return c.decodeED(idx, address, outerY, createLabel)
	default:
		return c.decodeUnimplementedPrefix(idx, address, "FD")
	}
}

// decodeUnimplementedPrefix degrades DD/FD (IX/IY-prefixed instructions)
// to an ERROR tag instead of the source's fatal NotImplementedError, per
// SPEC_FULL.md §4.4 deviation 3 / spec.md §9(c).
func (c *CPUZ80) decodeUnimplementedPrefix(idx, address int, name string) []int {
	s := c.S
	s.Comments[idx] += fmt.Sprintf("ERROR: %s prefixed instructions not implemented yet ", name)
	s.DataType[idx] = Error
	if idx+1 < len(s.DataType) {
		s.DataType[idx+1] = Operand
	}
	return []int{address + 2}
}

// decodeED handles the ED-prefixed extended opcode table. outerY is the y
// field of the ED prefix byte itself (not the second, opcode2, byte).
func (c *CPUZ80) decodeED(idx, address, outerY int, createLabel bool) []int {
	s := c.S
	opcode2 := int(s.ROM[idx+1])
	x2 := (opcode2 >> 6) & 0x03
	y2 := (opcode2 >> 3) & 0x07
	z2 := opcode2 & 0x07
	p2 := y2 >> 1
	q2 := y2 & 0x01
	s.DataType[idx+1] = Operand

	edInvalid := func() []int {
		msg := fmt.Sprintf("ERROR: invalid opcode ED%s ", Hex8Intel(opcode2))
		s.Comments[idx] += msg
		s.Comments[idx+1] = s.Comments[idx]
		s.DataType[idx] = Error
		s.DataType[idx+1] = Error
		return nil
	}

	switch {
	case x2 == 0 || x2 == 3:
		return edInvalid()

	case x2 == 1:
		switch z2 {
		case 0:
			if y2 == 6 {
				s.Disassembly[idx] = "IN   (C)"
			} else {
				s.Disassembly[idx] = fmt.Sprintf("IN   %s, (C)", rZ80[y2])
			}
			return []int{address + 2}
		case 1:
			if y2 == 6 {
				s.Disassembly[idx] = "OUT  (C), 0"
			} else {
				s.Disassembly[idx] = fmt.Sprintf("OUT  (C), %s", rZ80[y2])
			}
			return []int{address + 2}
		case 2:
			if q2 == 0 {
				s.Disassembly[idx] = fmt.Sprintf("SBC  HL, %s", rpZ80[p2])
			} else {
				s.Disassembly[idx] = fmt.Sprintf("ADC  HL, %s", rpZ80[p2])
			}
			return []int{address + 2}
		case 3:
			word := int(s.ROM[idx+2]) | int(s.ROM[idx+3])<<8
			s.DataType[idx+2] = Operand
			s.DataType[idx+3] = Operand
			s.SetData16(word, &address)
			if q2 == 0 {
				s.Disassembly[idx] = fmt.Sprintf("LD   (%s), %s", s.LookupAddress(word, createLabel, "D_"), rpZ80[p2])
			} else {
				s.Disassembly[idx] = fmt.Sprintf("LD   %s, (%s)", rpZ80[p2], s.LookupAddress(word, createLabel, "D_"))
			}
			return []int{address + 4}
		case 4:
			s.Disassembly[idx] = "NEG"
			return []int{address + 2}
		case 5:
			// Selection by outer y (the ED prefix byte's own y field), not
			// y2 (the second byte's) — preserved verbatim per
			// SPEC_FULL.md §4.4 deviation 5.
			if outerY == 1 {
				s.Disassembly[idx] = "RETI"
			} else {
				s.Disassembly[idx] = "RETN"
			}
			return nil
		case 6:
			s.Disassembly[idx] = fmt.Sprintf("IM   %s", imZ80[y2])
			// The source leaves next_addrs at [] here; IM does not halt
			// execution, so this module sets the successor explicitly —
			// SPEC_FULL.md §4.4 deviation 6.
			return []int{address + 2}
		default:
			switch y2 {
			case 0:
				s.Disassembly[idx] = "LD   I, A"
			case 1:
				s.Disassembly[idx] = "LD   R, A"
			case 2:
				s.Disassembly[idx] = "LD   A, I"
			case 3:
				s.Disassembly[idx] = "LD   A, R"
			case 4:
				s.Disassembly[idx] = "RRD"
			case 5:
				s.Disassembly[idx] = "RLD"
			default:
				s.Disassembly[idx] = "NOP"
			}
			return []int{address + 2}
		}

	default: // x2 == 2
		if z2 <= 3 && y2 >= 4 {
			// Transcribed as nested-slice indexing, the evident intent of
			// the source's invalid `_bli[y2-4, z2]` tuple index —
			// SPEC_FULL.md §4.4 deviation 7. The source also omits a
			// successor here (next_addrs stays []); these instructions
			// don't halt execution, so the successor is set the same way
			// IM n's is, for the same reason.
			s.Disassembly[idx] = bliZ80[y2-4][z2]
			return []int{address + 2}
		}
		return edInvalid()
	}
}
