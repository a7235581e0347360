package dismantle

import "fmt"

var alu8080 = []string{"ADD", "ADC", "SUB", "SBC", "ANA", "XRA", "ORA", "CMP"}
var alui8080 = []string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}
var cc8080 = []string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
var r8080 = []string{"B", "C", "D", "E", "H", "L", "M", "A"}
var rp8080 = []string{"B", "D", "H", "SP"}
var rp28080 = []string{"B", "D", "H", "PSW"}

// DefaultLabels8080 is the RST0..RST7 label table shared by the 8080 and
// 8085 CPU tags, transcribed from rom_8080.py's default_labels.
var DefaultLabels8080 = map[int]string{
	0x00: "RST0", 0x08: "RST1", 0x10: "RST2", 0x18: "RST3",
	0x20: "RST4", 0x28: "RST5", 0x30: "RST6", 0x38: "RST7",
}

// DefaultEntries8080 lists the eight RST vector addresses, rom_8080.py's
// default_entries.
var DefaultEntries8080 = []int{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}

// DefaultPorts8080 is empty: the 8080/8085 have no well-known port names.
var DefaultPorts8080 = map[int]string{}

// CPU8080 decodes Intel 8080 machine code. Per spec.md §1, the 8085 is
// treated as a strict 8080 superset, so this same decoder backs both CPU
// registry tags.
type CPU8080 struct {
	S *Store
}

// NewCPU8080 wraps store in an 8080/8085 decoder.
func NewCPU8080(store *Store) *CPU8080 {
	return &CPU8080{S: store}
}

// DisasmSingle decodes the instruction at address, grounded line-for-line
// on rom_8080.py's disasm_single.
func (c *CPU8080) DisasmSingle(address int, createLabel bool) []int {
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
			if y == 0 {
				s.Disassembly[idx] = "NOP"
				next = []int{address + 1}
			} else {
				s.markError(idx, opcode)
				next = nil
			}
		case 1:
			if q == 0 {
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LXI  %s, %s", rp8080[p], Hex16Intel(word))
				next = []int{address + 3}
			} else {
				s.Disassembly[idx] = fmt.Sprintf("DAD  %s", rp8080[p])
				next = []int{address + 1}
			}
		case 2:
			accessAddr := address
			switch {
			case q == 0 && p <= 1:
				s.Disassembly[idx] = fmt.Sprintf("STAX %s", rp8080[p])
				next = []int{address + 1}
			case q == 0 && p == 2:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("SHLD %s", s.LookupAddress(word, createLabel, "D_"))
				s.SetData16(word, &accessAddr)
				next = []int{address + 3}
			case q == 0:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("STA  %s", s.LookupAddress(word, createLabel, "D_"))
				s.SetData8(word, &accessAddr)
				next = []int{address + 3}
			case p <= 1:
				s.Disassembly[idx] = fmt.Sprintf("LDAX %s", rp8080[p])
				next = []int{address + 1}
			case p == 2:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LHLD %s", s.LookupAddress(word, createLabel, "D_"))
				s.SetData16(word, &accessAddr)
				next = []int{address + 3}
			default:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("LDA  %s", s.LookupAddress(word, createLabel, "D_"))
				s.SetData8(word, &accessAddr)
				next = []int{address + 3}
			}
		case 3:
			if q == 0 {
				s.Disassembly[idx] = fmt.Sprintf("INX  %s", rp8080[p])
			} else {
				s.Disassembly[idx] = fmt.Sprintf("DCX  %s", rp8080[p])
			}
			next = []int{address + 1}
		case 4:
			s.Disassembly[idx] = fmt.Sprintf("INR  %s", r8080[y])
			next = []int{address + 1}
		case 5:
			s.Disassembly[idx] = fmt.Sprintf("DCR  %s", r8080[y])
			next = []int{address + 1}
		case 6:
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("MVI  %s, %s", r8080[y], Hex8Intel(int(s.ROM[idx+1])))
			next = []int{address + 2}
		case 7:
			switch y {
			case 0:
				s.Disassembly[idx] = "RLC"
			case 1:
				s.Disassembly[idx] = "RRC"
			case 2:
				s.Disassembly[idx] = "RAL"
			case 3:
				s.Disassembly[idx] = "RAR"
			case 4:
				s.Disassembly[idx] = "DAA"
			case 5:
				s.Disassembly[idx] = "CMA"
			case 6:
				s.Disassembly[idx] = "STC"
			default:
				s.Disassembly[idx] = "CMC"
			}
			next = []int{address + 1}
		}

	case 1:
		if z == 6 && y == 6 {
			s.Disassembly[idx] = "HLT"
		} else {
			s.Disassembly[idx] = fmt.Sprintf("MOV  %s, %s", r8080[y], r8080[z])
		}
		next = []int{address + 1}

	case 2:
		s.Disassembly[idx] = fmt.Sprintf("%-4s %s", alu8080[y], r8080[z])
		next = []int{address + 1}

	case 3:
		switch z {
		case 0:
			s.Disassembly[idx] = fmt.Sprintf("R%s", cc8080[y])
			next = []int{address + 1}
		case 1:
			if q == 0 {
				s.Disassembly[idx] = fmt.Sprintf("POP  %s", rp28080[p])
				next = []int{address + 1}
			} else {
				switch p {
				case 0:
					s.Disassembly[idx] = "RET"
					next = nil
				case 1:
					s.markError(idx, opcode)
					next = nil
				case 2:
					s.Disassembly[idx] = "PCHL"
					next = nil
				default:
					s.Disassembly[idx] = "SPHL"
					next = []int{address + 1}
				}
			}
		case 2:
			word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			s.Disassembly[idx] = fmt.Sprintf("J%-2s  %s", cc8080[y], s.LookupAddress(word, createLabel, "J_"))
			next = []int{address + 3, word}
			s.AddXref(address, word)
		case 3:
			switch y {
			case 0:
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("JMP  %s", s.LookupAddress(word, createLabel, "J_"))
				next = []int{word}
				s.AddXref(address, word)
			case 1:
				s.markError(idx, opcode)
				next = nil
			case 2:
				s.DataType[idx+1] = Operand
				s.Disassembly[idx] = fmt.Sprintf("OUT  %s", s.LookupPort(int(s.ROM[idx+1]), createLabel, "P_"))
				next = []int{address + 2}
			case 3:
				s.DataType[idx+1] = Operand
				s.Disassembly[idx] = fmt.Sprintf("IN   %s", s.LookupPort(int(s.ROM[idx+1]), createLabel, "P_"))
				next = []int{address + 2}
			case 4:
				s.Disassembly[idx] = "XTHL"
				next = []int{address + 1}
			case 5:
				s.Disassembly[idx] = "XCHG"
				next = []int{address + 1}
			case 6:
				s.Disassembly[idx] = "DI"
				next = []int{address + 1}
			default:
				s.Disassembly[idx] = "EI"
				next = []int{address + 1}
			}
		case 4:
			word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			s.Disassembly[idx] = fmt.Sprintf("C%-2s  %s", cc8080[y], s.LookupAddress(word, createLabel, "C_"))
			next = []int{address + 3, word}
			s.AddXref(address, word)
		case 5:
			if q == 0 {
				s.Disassembly[idx] = fmt.Sprintf("PUSH %s", rp28080[p])
				next = []int{address + 1}
			} else if p == 0 {
				word := int(s.ROM[idx+1]) | int(s.ROM[idx+2])<<8
				s.DataType[idx+1] = Operand
				s.DataType[idx+2] = Operand
				s.Disassembly[idx] = fmt.Sprintf("CALL %s", s.LookupAddress(word, createLabel, "C_"))
				next = []int{address + 3, word}
				s.AddXref(address, word)
			} else {
				s.markError(idx, opcode)
				next = nil
			}
		case 6:
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", alui8080[y], Hex8Intel(int(s.ROM[idx+1])))
			next = []int{address + 2}
		case 7:
			target := y * 8
			s.Disassembly[idx] = fmt.Sprintf("RST  %d", y)
			next = []int{target}
			s.AddXref(address, target)
		}
	}

	return next
}
