package dismantle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex8Intel(t *testing.T) {
	assert.Equal(t, "00h", Hex8Intel(0x00))
	assert.Equal(t, "0FFh", Hex8Intel(0xFF))
	assert.Equal(t, "7Fh", Hex8Intel(0x7F))
	assert.Equal(t, "0A5h", Hex8Intel(0xA5))
	assert.Equal(t, "00h", Hex8Intel(0x100)) // masked to 8 bits
}

func TestHex16Intel(t *testing.T) {
	assert.Equal(t, "0000h", Hex16Intel(0x0000))
	assert.Equal(t, "1234h", Hex16Intel(0x1234))
	assert.Equal(t, "0FFFFh", Hex16Intel(0xFFFF))
	assert.Equal(t, "0ABCDh", Hex16Intel(0xABCD))
}

func TestSignedByte(t *testing.T) {
	assert.Equal(t, 0, SignedByte(0x00))
	assert.Equal(t, 127, SignedByte(0x7F))
	assert.Equal(t, -128, SignedByte(0x80))
	assert.Equal(t, -1, SignedByte(0xFF))
	assert.Equal(t, -2, SignedByte(0xFE))
}
