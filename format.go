package dismantle

import "fmt"

// Hex8Intel renders an 8-bit value in Intel assembler style: two hex
// digits, a trailing "h", and a leading zero inserted whenever the
// first digit would otherwise be a letter (so the assembler doesn't
// mistake it for an identifier).
func Hex8Intel(v int) string {
	s := fmt.Sprintf("%02Xh", v&0xFF)
	return leadZero(s)
}

// Hex16Intel is Hex8Intel's 16-bit counterpart.
func Hex16Intel(v int) string {
	s := fmt.Sprintf("%04Xh", v&0xFFFF)
	return leadZero(s)
}

func leadZero(s string) string {
	switch s[0] {
	case 'A', 'B', 'C', 'D', 'E', 'F':
		return "0" + s
	default:
		return s
	}
}

// SignedByte interprets v as a signed 8-bit two's-complement value.
func SignedByte(v int) int {
	v &= 0xFF
	if v > 0x7F {
		v = ((v ^ 0xFF) + 1) * -1
	}
	return v
}
