package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValue(t *testing.T) {
	addr, name, err := parseKeyValue("0x1234=START")
	require.NoError(t, err)
	assert.Equal(t, 0x1234, addr)
	assert.Equal(t, "START", name)
}

func TestParseKeyValueRejectsMissingName(t *testing.T) {
	_, _, err := parseKeyValue("0x1234=")
	assert.Error(t, err)
}

func TestParseKeyValueRejectsBadAddress(t *testing.T) {
	_, _, err := parseKeyValue("notanumber=START")
	assert.Error(t, err)
}

func TestParseKeyValueRejectsMissingSeparator(t *testing.T) {
	_, _, err := parseKeyValue("1234")
	assert.Error(t, err)
}
