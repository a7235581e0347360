package dismantle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDisassembleFollowsFallthroughAndBranch checks that for a conditional
// jump both the fall-through path and the branch target get decoded. The
// final type map does not show which of the two was visited first.
func TestDisassembleFollowsFallthroughAndBranch(t *testing.T) {
	rom := []byte{
		0xC2, 0x06, 0x00, // 0000 JNZ 0006
		0x76,             // 0003 HLT (fallthrough target)
		0x00,             // 0004 NOP (reached: HLT reports a fall-through)
		0xC9,             // 0005 RET (ends the fall-through path)
		0x76,             // 0006 HLT (branch target)
	}
	s := newTestStore(rom)
	decoder := NewCPU8080(s)
	d := NewDisassembler(s, decoder)

	err := d.Disassemble([]int{0}, false, false, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, Instruction, s.DataType[0])
	assert.Equal(t, Instruction, s.DataType[3])
	assert.Equal(t, Instruction, s.DataType[6])
}

func TestDisassembleSingleStepDoesNotFollowSuccessors(t *testing.T) {
	rom := []byte{0xC3, 0x04, 0x00, 0x00, 0x76}
	s := newTestStore(rom)
	decoder := NewCPU8080(s)
	d := NewDisassembler(s, decoder)

	err := d.Disassemble([]int{0}, false, true, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, Instruction, s.DataType[0])
	assert.Equal(t, Unknown, s.DataType[4])
}

func TestDisassembleRespectsBreakpoints(t *testing.T) {
	rom := []byte{0x00, 0x00, 0x76}
	s := newTestStore(rom)
	decoder := NewCPU8080(s)
	d := NewDisassembler(s, decoder)

	err := d.Disassemble([]int{0}, false, false, nil, []int{1}, nil)
	require.NoError(t, err)

	assert.Equal(t, Instruction, s.DataType[0])
	assert.Equal(t, Unknown, s.DataType[1])
}

func TestDisassembleVectorsSeedEntries(t *testing.T) {
	rom := []byte{0x02, 0x00, 0x76} // vector at 0, points to HLT at 2
	s := newTestStore(rom)
	decoder := NewCPU8080(s)
	d := NewDisassembler(s, decoder)

	err := d.Disassemble(nil, true, false, nil, nil, []int{0})
	require.NoError(t, err)

	assert.Equal(t, Vector16L, s.DataType[0])
	assert.Equal(t, Vector16H, s.DataType[1])
	assert.Equal(t, Instruction, s.DataType[2])
}

func TestDisassembleOutOfRangeReturnsError(t *testing.T) {
	rom := []byte{0x00}
	s := newTestStore(rom)
	decoder := NewCPU8080(s)
	d := NewDisassembler(s, decoder)

	// A validRange wider than the store's own bounds lets an
	// out-of-store address pass the range/breakpoint filter and reach
	// the raw bounds check, which must report an error rather than
	// indexing off the end of the ROM.
	err := d.Disassemble([]int{0x10}, false, false, &ValidRange{Min: 0, Max: 0x20}, nil, nil)
	assert.Error(t, err)
}
