package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"froot1/internal/bus"
)

func TestLoadTextWritesBytesAtAddress(t *testing.T) {
	b := bus.New()
	err := LoadText(b, strings.NewReader("0200: A9 42 8D 12 D0 00\n"), false)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xa9), b.Peek(0x0200))
	assert.Equal(t, byte(0x42), b.Peek(0x0201))
	assert.Equal(t, byte(0x00), b.Peek(0x0205))
}

func TestLoadTextMarksROM(t *testing.T) {
	b := bus.New()
	err := LoadText(b, strings.NewReader("FF00: EA\n"), true)
	assert.NoError(t, err)
	b.Write(0xff00, 0x00)
	assert.Equal(t, byte(0xea), b.Peek(0xff00))
}

func TestLoadTextRejectsBlankLine(t *testing.T) {
	b := bus.New()
	err := LoadText(b, strings.NewReader("0200: A9 42\n\n0300: EA\n"), false)
	assert.Error(t, err)
}

func TestLoadTextRejectsMissingColon(t *testing.T) {
	b := bus.New()
	err := LoadText(b, strings.NewReader("0200 A9 42\n"), false)
	assert.Error(t, err)
}

func TestDumpTextRoundTrips(t *testing.T) {
	b := bus.New()
	program := []byte{0xa9, 0x42, 0x8d, 0x12, 0xd0, 0x00}
	b.Load(0x0200, program, false)

	var buf bytes.Buffer
	err := DumpText(&buf, b, 0x0200, len(program))
	assert.NoError(t, err)

	b2 := bus.New()
	err = LoadText(b2, &buf, false)
	assert.NoError(t, err)
	for i, want := range program {
		assert.Equal(t, want, b2.Peek(0x0200+uint16(i)))
	}
}

func TestDumpTextWrapsAtSixteenBytesPerRow(t *testing.T) {
	b := bus.New()
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	b.Load(0x0000, data, false)

	var buf bytes.Buffer
	err := DumpText(&buf, b, 0x0000, 20)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "0000:")
	assert.Contains(t, lines[1], "0010:")
}
