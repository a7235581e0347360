package dismantle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU8080NOP(t *testing.T) {
	s := newTestStore([]byte{0x00})
	c := NewCPU8080(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "NOP", s.Disassembly[0])
	assert.Equal(t, []int{1}, next)
}

func TestCPU8080JMPRecordsXref(t *testing.T) {
	s := newTestStore([]byte{0xC3, 0x34, 0x12})
	c := NewCPU8080(s)
	next := c.DisasmSingle(0, true)

	assert.Equal(t, []int{0x1234}, next)
	assert.Equal(t, "JMP  J_1234", s.Disassembly[0])
	assert.Equal(t, []int{0}, s.Xref[0x1234])
}

func TestCPU8080CALLRecordsXrefAndFallthrough(t *testing.T) {
	s := newTestStore([]byte{0xCD, 0x00, 0x10})
	c := NewCPU8080(s)
	next := c.DisasmSingle(0, true)

	assert.Equal(t, []int{3, 0x1000}, next)
	assert.Equal(t, []int{0}, s.Xref[0x1000])
}

func TestCPU8080InvalidOpcodeIsError(t *testing.T) {
	s := newTestStore([]byte{0xDD}) // unassigned 8080 opcode
	c := NewCPU8080(s)
	next := c.DisasmSingle(0, false)

	assert.Equal(t, Error, s.DataType[0])
	assert.Nil(t, next)
	assert.Contains(t, s.Comments[0], "ERROR: invalid opcode")
}

func TestCPU8080HLTStopsButStillReportsFallthrough(t *testing.T) {
	s := newTestStore([]byte{0x76})
	c := NewCPU8080(s)
	next := c.DisasmSingle(0, false)
	assert.Equal(t, "HLT", s.Disassembly[0])
	assert.Equal(t, []int{1}, next)
}

func TestCPU8080AlreadyDecodedReturnsNil(t *testing.T) {
	s := newTestStore([]byte{0x00})
	c := NewCPU8080(s)
	c.DisasmSingle(0, false)
	next := c.DisasmSingle(0, false)
	assert.Nil(t, next)
}
