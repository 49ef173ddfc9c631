package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateControlKeys(t *testing.T) {
	_, action := Translate(0x03)
	assert.Equal(t, ActionExit, action)

	_, action = Translate(0x04)
	assert.Equal(t, ActionDebug, action)

	_, action = Translate(0x12)
	assert.Equal(t, ActionReset, action)

	_, action = Translate(0x0c)
	assert.Equal(t, ActionLoadFile, action)
}

func TestTranslateLineFeedBecomesCarriageReturn(t *testing.T) {
	b, action := Translate(0x0a)
	assert.Equal(t, byte(0x0d), b)
	assert.Equal(t, ActionNone, action)
}

func TestTranslateBackspaceAndDelete(t *testing.T) {
	b, _ := Translate(0x08)
	assert.Equal(t, byte(0x08), b)
	b, _ = Translate(0x7f)
	assert.Equal(t, byte(0x08), b)
}

func TestTranslateLowercaseIsUppercased(t *testing.T) {
	b, action := Translate('a')
	assert.Equal(t, byte('A'), b)
	assert.Equal(t, ActionNone, action)

	b, _ = Translate('z')
	assert.Equal(t, byte('Z'), b)
}

func TestTranslatePassesOtherBytesThrough(t *testing.T) {
	b, action := Translate('5')
	assert.Equal(t, byte('5'), b)
	assert.Equal(t, ActionNone, action)
}
