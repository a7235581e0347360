package dismantle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU1802IDL(t *testing.T) {
	s := newTestStore([]byte{0x00})
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "IDL", s.Disassembly[0])
	assert.Equal(t, []int{1}, next)
}

func TestCPU1802LDN(t *testing.T) {
	s := newTestStore([]byte{0x03})
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "LDN  R3", s.Disassembly[0])
	assert.Equal(t, []int{1}, next)
}

// TestCPU1802ShortBranchPageRelative checks §4.4's page-relative target
// computation: the page comes from the address of the operand byte
// (address+1), not the opcode byte.
func TestCPU1802ShortBranchPageRelative(t *testing.T) {
	rom := make([]byte, 0x102)
	rom[0x0FF] = 0x30 // BR at 0x00FF
	rom[0x100] = 0x10 // operand byte at 0x0100, page (0x0100&0xFF00)=0x0100
	s := newTestStore(rom)
	c := NewCPU1802(s)
	next := c.DisasmSingle(0x0FF, true)

	assert.Equal(t, []int{0x0110}, next)
	assert.Equal(t, []int{0x0FF}, s.Xref[0x0110])
}

func TestCPU1802UnconditionalSkip(t *testing.T) {
	s := newTestStore([]byte{0x38, 0x00}) // SKP
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "SKP", s.Disassembly[0])
	assert.Equal(t, []int{2}, next)
}

func TestCPU1802ConditionalShortBranch(t *testing.T) {
	rom := []byte{0x32, 0x05} // BZ, page 0&0xFF00=0, target 0x0005
	s := newTestStore(rom)
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, true)
	assert.Equal(t, []int{2, 5}, next)
	assert.Equal(t, []int{0}, s.Xref[5])
}

func TestCPU1802LongBranchUnconditionalRecordsXref(t *testing.T) {
	rom := []byte{0xC0, 0x01, 0x00} // LBR 0x0100
	s := newTestStore(append(rom, make([]byte, 0x100)...))
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, true)

	assert.Equal(t, []int{0x0100}, next)
	assert.Equal(t, []int{0}, s.Xref[0x0100])
}

func TestCPU1802LongSkipUnconditional(t *testing.T) {
	s := newTestStore([]byte{0xC8, 0x00, 0x00})
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "LSKP", s.Disassembly[0])
	assert.Equal(t, []int{3}, next)
}

func TestCPU1802SEPHasNoStaticSuccessor(t *testing.T) {
	s := newTestStore([]byte{0xD5}) // SEP R5
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "SEP  R5", s.Disassembly[0])
	assert.Nil(t, next)
}

func TestCPU1802ReservedIOOpcodeIsError(t *testing.T) {
	s := newTestStore([]byte{0x68})
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, Error, s.DataType[0])
	assert.Nil(t, next)
}

func TestCPU1802OutPort(t *testing.T) {
	s := newTestStore([]byte{0x61})
	c := NewCPU1802(s)
	next := c.DisasmSingle(0, true)
	assert.Equal(t, "OUT  P_01", s.Disassembly[0])
	assert.Equal(t, []int{1}, next)
}
