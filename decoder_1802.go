package dismantle

import "fmt"

var op3x1802 = []string{
	"BR", "BQ", "BZ", "BDF", "B1", "B2", "B3", "B4",
	"SKP", "BNQ", "BNZ", "BNF", "BN1", "BN2", "BN3", "BN4",
}
var op7x1802 = []string{
	"RET", "DIS", "LDXA", "STXD", "ADC", "SDB", "SHRC", "SMB",
	"SAV", "MARK", "SEQ", "REQ", "ADDI", "SDBI", "SHLC", "SMBI",
}
var opCx1802 = []string{
	"LBR", "LBQ", "LBZ", "LBDF", "NOP", "LSNQ", "LSNZ", "LSNF",
	"LSKP", "LBNQ", "LBNZ", "LBNF", "LSIE", "LSQ", "LSZ", "LSDF",
}
var opFx1802 = []string{
	"LDX", "OR", "AND", "XOR", "ADD", "SD", "SHR", "SM",
	"LDI", "ORI", "ANI", "XRI", "ADI", "SDI", "SHL", "SMI",
}

// DefaultLabels1802 names the reset vector, rom_1802.py's default_labels.
var DefaultLabels1802 = map[int]string{0x0000: "RESET"}

// DefaultEntries1802 seeds traversal at the reset vector only.
var DefaultEntries1802 = []int{0x0000}

// DefaultPorts1802 is empty: no well-known 1802 port names.
var DefaultPorts1802 = map[int]string{}

// CPU1802 decodes RCA CDP1802 COSMAC machine code. Grounded line-for-line
// on rom_1802.py's disasm_single.
type CPU1802 struct {
	S *Store
}

// NewCPU1802 wraps store in a 1802 decoder.
func NewCPU1802(store *Store) *CPU1802 {
	return &CPU1802{S: store}
}

// DisasmSingle decodes the instruction at address.
func (c *CPU1802) DisasmSingle(address int, createLabel bool) []int {
	s := c.S
	idx, done := s.beginInstruction(address)
	if done {
		return nil
	}

	opcode := int(s.ROM[idx])
	var next []int

	I := (opcode >> 4) & 0x0F
	N := opcode & 0x0F

	switch I {
	case 0x0:
		if N == 0x0 {
			s.Disassembly[idx] = "IDL"
		} else {
			s.Disassembly[idx] = fmt.Sprintf("LDN  R%X", N)
		}
		next = []int{address + 1}

	case 0x1:
		s.Disassembly[idx] = fmt.Sprintf("INC  R%X", N)
		next = []int{address + 1}

	case 0x2:
		s.Disassembly[idx] = fmt.Sprintf("DEC  R%X", N)
		next = []int{address + 1}

	case 0x3:
		// Short branch: the target page is taken from the address of the
		// operand byte (address+1), not the opcode byte itself.
		page := (address + 1) & 0xFF00
		offset := int(s.ROM[idx+1])
		target := page | offset

		switch {
		case N == 0x0:
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", op3x1802[N], s.LookupAddress(target, createLabel, "J_"))
			s.AddXref(address, target)
			next = []int{target}
		case N == 0x8:
			s.Disassembly[idx] = op3x1802[N]
			next = []int{address + 2}
		default:
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", op3x1802[N], s.LookupAddress(target, createLabel, "J_"))
			s.AddXref(address, target)
			next = []int{address + 2, target}
		}

	case 0x4:
		s.Disassembly[idx] = fmt.Sprintf("LDA  R%X", N)
		next = []int{address + 1}

	case 0x5:
		s.Disassembly[idx] = fmt.Sprintf("STR  R%X", N)
		next = []int{address + 1}

	case 0x6:
		switch {
		case N == 0x0:
			s.Disassembly[idx] = "IRX"
			next = []int{address + 1}
		case N <= 0x7:
			s.Disassembly[idx] = fmt.Sprintf("OUT  %s", s.LookupPort(N, createLabel, "P_"))
			next = []int{address + 1}
		case N == 0x8:
			s.Comments[idx] += "ERROR: Reserved Opcode "
			s.DataType[idx] = Error
			next = nil
		default:
			s.Disassembly[idx] = fmt.Sprintf("INP  %s", s.LookupPort(N&0x7, createLabel, "P_"))
			next = []int{address + 1}
		}

	case 0x7:
		if N <= 0xB || N == 0xE {
			s.Disassembly[idx] = op7x1802[N]
			next = []int{address + 1}
		} else {
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", op7x1802[N], Hex8Intel(int(s.ROM[idx+1])))
			next = []int{address + 2}
		}

	case 0x8:
		s.Disassembly[idx] = fmt.Sprintf("GLO  R%X", N)
		next = []int{address + 1}

	case 0x9:
		s.Disassembly[idx] = fmt.Sprintf("GHI  R%X", N)
		next = []int{address + 1}

	case 0xA:
		s.Disassembly[idx] = fmt.Sprintf("PLO  R%X", N)
		next = []int{address + 1}

	case 0xB:
		s.Disassembly[idx] = fmt.Sprintf("PHI  R%X", N)
		next = []int{address + 1}

	case 0xC:
		switch {
		case N == 0x0:
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			target := int(s.ROM[idx+1])<<8 | int(s.ROM[idx+2])
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", opCx1802[N], s.LookupAddress(target, createLabel, "J_"))
			s.AddXref(address, target)
			next = []int{target}
		case N <= 0x3:
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			target := int(s.ROM[idx+1])<<8 | int(s.ROM[idx+2])
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", opCx1802[N], s.LookupAddress(target, createLabel, "J_"))
			s.AddXref(address, target)
			next = []int{address + 3, target}
		case N == 0x4:
			s.Disassembly[idx] = opCx1802[N]
			next = []int{address + 1}
		case N <= 0x7:
			s.Disassembly[idx] = opCx1802[N]
			next = []int{address + 3, address + 1}
		case N == 0x8:
			s.Disassembly[idx] = opCx1802[N]
			next = []int{address + 3}
		case N <= 0xB:
			s.DataType[idx+1] = Operand
			s.DataType[idx+2] = Operand
			target := int(s.ROM[idx+1])<<8 | int(s.ROM[idx+2])
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", opCx1802[N], s.LookupAddress(target, createLabel, "J_"))
			s.AddXref(address, target)
			next = []int{address + 3, target}
		default:
			s.Disassembly[idx] = opCx1802[N]
			next = []int{address + 3, address + 1}
		}

	case 0xD:
		// Target register contents unknown statically.
		s.Disassembly[idx] = fmt.Sprintf("SEP  R%X", N)
		next = nil

	case 0xE:
		s.Disassembly[idx] = fmt.Sprintf("SEX  R%X", N)
		next = []int{address + 1}

	case 0xF:
		if N <= 0x7 || N == 0xE {
			s.Disassembly[idx] = opFx1802[N]
			next = []int{address + 1}
		} else {
			s.DataType[idx+1] = Operand
			s.Disassembly[idx] = fmt.Sprintf("%-4s %s", opFx1802[N], Hex8Intel(int(s.ROM[idx+1])))
			next = []int{address + 2}
		}
	}

	return next
}
