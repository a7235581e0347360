package dismantle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPUZ80NOP(t *testing.T) {
	s := newTestStore([]byte{0x00})
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "NOP", s.Disassembly[0])
	assert.Equal(t, []int{1}, next)
}

func TestCPUZ80UnconditionalJPRecordsXref(t *testing.T) {
	s := newTestStore([]byte{0xC3, 0x00, 0x10})
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, true)

	assert.Equal(t, []int{0x1000}, next)
	assert.Equal(t, []int{0}, s.Xref[0x1000])
}

// TestCPUZ80CBBitUsesOuterY reproduces the preserved CB BIT/RES/SET quirk
// (SPEC_FULL.md §4.4 deviation 2): the bit index always comes from the CB
// prefix byte's own (constant) y field, not from the second byte's y2 that
// would normally select it.
func TestCPUZ80CBBitUsesOuterY(t *testing.T) {
	s := newTestStore([]byte{0xCB, 0x58}) // second byte selects BIT 3,B; outer y is fixed at 1
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, "BIT  1, B", s.Disassembly[0])
	assert.Equal(t, []int{2}, next)
}

// TestCPUZ80DDPrefixDegradesToError covers the DD/FD degraded-error path
// (SPEC_FULL.md §4.4 deviation 3 / spec.md §9(c)): no panic, a two-byte
// ERROR span, and a fallthrough successor instead of a halted traversal.
func TestCPUZ80DDPrefixDegradesToError(t *testing.T) {
	s := newTestStore([]byte{0xDD, 0x21, 0x00, 0x10})
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, Error, s.DataType[0])
	assert.Equal(t, Operand, s.DataType[1])
	assert.Equal(t, []int{2}, next)
	assert.Contains(t, s.Comments[0], "DD prefixed instructions not implemented")
}

func TestCPUZ80EDIMnHasFallthroughSuccessor(t *testing.T) {
	s := newTestStore([]byte{0xED, 0x46}) // IM 0
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, "IM   0", s.Disassembly[0])
	assert.Equal(t, []int{2}, next)
}

// TestCPUZ80EDBlockInstructionHasFallthroughSuccessor covers the decision
// 10 extension: block instructions (LDI et al) don't halt execution, so
// disassembly must continue past them even though the source never
// computes a successor for this opcode family.
func TestCPUZ80EDBlockInstructionHasFallthroughSuccessor(t *testing.T) {
	s := newTestStore([]byte{0xED, 0xA0}) // LDI
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, "LDI", s.Disassembly[0])
	assert.Equal(t, []int{2}, next)
}

// TestCPUZ80EDRETNAlwaysSelected documents the preserved RETN/RETI quirk
// (SPEC_FULL.md §4.4 deviation 5): the selector is the ED prefix byte's own
// y field, which is constant (5) for every ED-prefixed opcode, so RETI is
// never actually reachable.
func TestCPUZ80EDRETNAlwaysSelected(t *testing.T) {
	s := newTestStore([]byte{0xED, 0x55})
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, "RETN", s.Disassembly[0])
	assert.Nil(t, next)
}

func TestCPUZ80InvalidEDOpcodeIsError(t *testing.T) {
	s := newTestStore([]byte{0xED, 0x00}) // x2==0 is always invalid
	c := NewCPUZ80(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, Error, s.DataType[0])
	assert.Nil(t, next)
}
