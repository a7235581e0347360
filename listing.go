package dismantle

import (
	"fmt"
	"sort"
	"strings"
)

// Listing renders the Store's classification into Intel-format assembly
// text, grounded on rom_base.py's _listing_a16_d8_intel. With source=false
// it produces the two-column address/data-byte listing; with source=true
// it produces bare assembler source (no address or byte-dump columns).
func (s *Store) Listing(source bool) string {
	var b strings.Builder

	indentation := ""
	if !source {
		indentation = strings.Repeat(" ", 24)
	}

	fmt.Fprintf(&b, "%s; External References:\n\n", indentation)
	for _, address := range sortedIntKeys(s.LabelMap) {
		if address < s.BaseAddress || address > s.MaxAddress {
			fmt.Fprintf(&b, "%s%-16s  EQU  %s\n", indentation, s.LabelMap[address], Hex16Intel(address))
		}
	}

	fmt.Fprintf(&b, "\n%s; IO Port Map:\n\n", indentation)
	for _, port := range sortedIntKeys(s.PortMap) {
		fmt.Fprintf(&b, "%s%-16s  EQU  %s\n", indentation, s.PortMap[port], Hex8Intel(port))
	}

	fmt.Fprintf(&b, "\n%s; ROM Disassembly:\n\n", indentation)
	fmt.Fprintf(&b, "\n%s                  ORG  %s\n\n", indentation, Hex16Intel(s.BaseAddress))

	address := s.BaseAddress
	idx := 0
	previdx := 0

	for address <= s.MaxAddress {
		n := 1
		dataStr := fmt.Sprintf("%02X", s.ROM[idx])
		comment := s.Comments[idx]

		label := ""
		if name, ok := s.LabelMap[address]; ok {
			label = name + ":"
		}

		var codeStr string
		switch {
		case s.DataType[idx] == Instruction || s.DataType[idx] == Error:
			// ERROR spans more than one byte for the degraded DD/FD prefix
			// case (decoder_z80.go's decodeUnimplementedPrefix), so its
			// trailing Operand byte must fold into the same line the way an
			// ordinary instruction's operands do.
			codeStr = s.Disassembly[idx]
			if codeStr == "" {
				// The ERROR paths (markError, the 1802 reserved opcode, invalid
				// ED forms, the DD/FD span) leave Disassembly unset; fall back
				// to a raw byte dump.
				codeStr = fmt.Sprintf("DB   %s", Hex8Intel(int(s.ROM[idx])))
			}
			for idx+n < len(s.DataType) && s.DataType[idx+n] == Operand {
				dataStr += fmt.Sprintf(" %02X", s.ROM[idx+n])
				if len(s.Comments[idx+n]) > 0 {
					comment += " " + s.Comments[idx+n]
				}
				n++
			}

		case s.DataType[idx] == Data8:
			codeStr = fmt.Sprintf("DB   %s", Hex8Intel(int(s.ROM[idx])))

		case s.DataType[idx] == Data16L && idx+1 < len(s.DataType) && s.DataType[idx+1] == Data16H:
			word := int(s.ROM[idx]) | int(s.ROM[idx+1])<<8
			codeStr = fmt.Sprintf("DW   %s", Hex16Intel(word))
			comment += " " + s.Comments[idx+1]
			n++

		case s.DataType[idx] == Vector16L && idx+1 < len(s.DataType) && s.DataType[idx+1] == Vector16H:
			word := int(s.ROM[idx]) | int(s.ROM[idx+1])<<8
			codeStr = fmt.Sprintf("DW   %s", s.LookupAddress(word, false, ""))
			comment += " " + s.Comments[idx+1]
			n++

		case s.DataType[idx] == Unknown:
			comment = "(UNREACHABLE) " + comment
			codeStr = fmt.Sprintf("DB   %s", Hex8Intel(int(s.ROM[idx])))

		default:
			codeStr = fmt.Sprintf("DB   %s", Hex8Intel(int(s.ROM[idx])))
		}

		var line string
		if source {
			line = fmt.Sprintf("%-17s %-24s; %s\n", label, codeStr, comment)
		} else {
			line = fmt.Sprintf("%04X  %-16s  %-17s %-24s; %s\n", address, dataStr, label, codeStr, comment)
		}

		// Insert extra line breaks to improve readability, matching the
		// source's ordered if/elif chain exactly (only the first matching
		// rule fires).
		switch {
		case len(s.Xref[address]) > 0:
			line = "\n" + line
		case containsInt(s.VectorDests, address):
			line = "\n" + line
		case s.DataType[idx] == Unknown && s.DataType[previdx] != Unknown:
			line = "\n" + line
		case s.DataType[idx] != Unknown && s.DataType[previdx] == Unknown:
			line = "\n" + line
		case isDataType(s.DataType[idx]) && !isDataType(s.DataType[previdx]):
			line = "\n" + line
		case !isDataType(s.DataType[idx]) && isDataType(s.DataType[previdx]):
			line = "\n" + line
		}

		b.WriteString(line)

		address += n
		previdx = idx
		idx += n
	}

	fmt.Fprintf(&b, "\n%s                  END\n\n", indentation)

	if !source {
		fmt.Fprintf(&b, "%s; Cross-Reference List:\n", indentation)
		fmt.Fprintf(&b, "%s; (Does not include calls via computed addresses or vectors)\n\n", indentation)

		destList := make(map[string]int, len(s.Xref))
		for dest := range s.Xref {
			destList[s.LookupAddress(dest, false, "")] = dest
		}

		destStrs := make([]string, 0, len(destList))
		for k := range destList {
			destStrs = append(destStrs, k)
		}
		sort.Strings(destStrs)

		for _, destStr := range destStrs {
			dest := destList[destStr]
			sourceStrs := make([]string, 0, len(s.Xref[dest]))
			for _, src := range s.Xref[dest] {
				sourceStrs = append(sourceStrs, s.LookupAddress(src, false, ""))
			}
			sort.Strings(sourceStrs)

			fmt.Fprintf(&b, "%s; %-17s", indentation, destStr+":")
			for _, srcStr := range sourceStrs {
				fmt.Fprintf(&b, " %s", srcStr)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func sortedIntKeys(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
