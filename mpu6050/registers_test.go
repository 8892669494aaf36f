package mpu6050

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitField_Mask(t *testing.T) {
	tests := []struct {
		field    bitField
		expected byte
	}{
		{bit(7), 0b10000000},
		{bit(0), 0b00000001},
		{bitField{start: 4, length: 2}, 0b00011000},
		{bitField{start: 2, length: 3}, 0b00000111},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d:%d", test.field.start, test.field.length), func(t *testing.T) {
			assert.Equal(t, test.expected, test.field.mask())
		})
	}
}

func TestBitField_PutPreservesNeighbours(t *testing.T) {
	// AFS_SEL write must not touch self-test or HPF bits
	reg := byte(0b11100101)
	got := fieldAccelFS.put(reg, 0b10)
	assert.Equal(t, byte(0b11110101), got)
	assert.Equal(t, byte(0b10), fieldAccelFS.get(got))
}

func TestBitField_PutTruncatesWideValues(t *testing.T) {
	got := fieldGyroFS.put(0x00, 0xFF)
	assert.Equal(t, byte(0b00011000), got)
}

func TestBitField_GetShiftsToZero(t *testing.T) {
	assert.Equal(t, byte(0b101), fieldClockSel.get(0b00000101))
	assert.Equal(t, byte(1), fieldSleep.get(0b01000000))
	assert.Equal(t, byte(0), fieldSleep.get(0b10111111))
}
