package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadAndRead(t *testing.T) {
	var m Memory
	m.Load([]byte{0x3e, 0x05, 0x06, 0x03, 0x80}, 0x0000)
	assert.Equal(t, byte(0x3e), m.Read(0x0000))
	assert.Equal(t, byte(0x80), m.Read(0x0004))
}

func TestWordRoundTrip(t *testing.T) {
	var m Memory
	m.WriteWord(0x2000, 0x1234)
	assert.Equal(t, byte(0x34), m.Read(0x2000)) // low byte first
	assert.Equal(t, byte(0x12), m.Read(0x2001))
	assert.Equal(t, uint16(0x1234), m.ReadWord(0x2000))
}

func TestSlice(t *testing.T) {
	var m Memory
	m.Load([]byte{1, 2, 3, 4}, 0x10)
	assert.Equal(t, []byte{2, 3, 4}, m.Slice(0x11, 0x13))
}

func TestWrapAround(t *testing.T) {
	var m Memory
	m.Write(0xffff, 0x42)
	assert.Equal(t, byte(0x42), m.Read(0xffff))

	m.WriteWord(0xffff, 0xbeef) // high byte wraps to 0x0000
	assert.Equal(t, byte(0xef), m.Read(0xffff))
	assert.Equal(t, byte(0xbe), m.Read(0x0000))
}
