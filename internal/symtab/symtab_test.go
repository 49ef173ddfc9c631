package symtab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAndLookup(t *testing.T) {
	s := New()
	s.Insert("RESET", 0xff00)
	v, ok := s.Lookup("RESET")
	assert.True(t, ok)
	assert.Equal(t, uint16(0xff00), v)

	_, ok = s.Lookup("NOPE")
	assert.False(t, ok)
}

func TestFirstWriteWins(t *testing.T) {
	s := New()
	s.Insert("MONRDKEY", 0xffeb)
	s.Insert("MONRDKEY", 0x0000)
	v, _ := s.Lookup("MONRDKEY")
	assert.Equal(t, uint16(0xffeb), v)
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	s := New()
	s.Insert("C", 3)
	s.Insert("A", 1)
	s.Insert("B", 2)
	assert.Equal(t, []string{"C", "A", "B"}, s.Names())
}

func TestLoadParsesSymLines(t *testing.T) {
	s := New()
	input := `sym type=label name="ECHO" val=0xffef, scope=global,
not a sym line
sym name="RDKEY" val=0xFFEB,
`
	err := s.Load(strings.NewReader(input))
	assert.NoError(t, err)

	v, ok := s.Lookup("ECHO")
	assert.True(t, ok)
	assert.Equal(t, uint16(0xffef), v)

	v, ok = s.Lookup("RDKEY")
	assert.True(t, ok)
	assert.Equal(t, uint16(0xffeb), v)

	assert.Equal(t, 2, s.Len())
}
