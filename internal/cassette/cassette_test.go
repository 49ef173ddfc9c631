package cassette

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sequencePrompt returns each of its responses in order, one per Prompt
// call, then repeats the last response if Prompt is called more times than
// it has responses for.
type sequencePrompt struct {
	responses []response
	calls     int
}

type response struct {
	line string
	ok   bool
}

func (s *sequencePrompt) Prompt(string) (string, bool) {
	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++
	r := s.responses[i]
	return r.line, r.ok
}

func TestBeginWriteOpensFile(t *testing.T) {
	path := t.TempDir() + "/out.tape"
	tp := New(&sequencePrompt{responses: []response{{path, true}}})

	assert.True(t, tp.BeginWrite())
	tp.End()
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestBeginWriteCancelledReturnsFalse(t *testing.T) {
	tp := New(&sequencePrompt{responses: []response{{"", false}}})
	assert.False(t, tp.BeginWrite())
}

func TestBeginWriteEmptyLineAborts(t *testing.T) {
	tp := New(&sequencePrompt{responses: []response{{"", true}}})
	assert.False(t, tp.BeginWrite())
}

func TestBeginWriteAlreadyOpenIsNoOp(t *testing.T) {
	path := t.TempDir() + "/out.tape"
	prompt := &sequencePrompt{responses: []response{{path, true}}}
	tp := New(prompt)

	assert.True(t, tp.BeginWrite())
	assert.True(t, tp.BeginWrite())
	assert.Equal(t, 1, prompt.calls) // second call must not re-prompt
}

func TestBeginWriteRetriesAfterOpenFailure(t *testing.T) {
	// A path under a nonexistent directory always fails os.Create; the
	// second response is a path that succeeds.
	badPath := t.TempDir() + "/missing-dir/out.tape"
	goodPath := t.TempDir() + "/out.tape"
	prompt := &sequencePrompt{responses: []response{{badPath, true}, {goodPath, true}}}
	tp := New(prompt)

	assert.True(t, tp.BeginWrite())
	assert.Equal(t, 2, prompt.calls)
	tp.End()
	_, err := os.Stat(goodPath)
	assert.NoError(t, err)
}

func TestBeginWriteRetriesUntilCancelled(t *testing.T) {
	badPath := t.TempDir() + "/missing-dir/out.tape"
	prompt := &sequencePrompt{responses: []response{{badPath, true}, {"", false}}}
	tp := New(prompt)

	assert.False(t, tp.BeginWrite())
	assert.Equal(t, 2, prompt.calls)
}

func TestBeginReadOpensExistingFile(t *testing.T) {
	path := t.TempDir() + "/in.tape"
	assert.NoError(t, os.WriteFile(path, []byte{0x11, 0x22}, 0o600))
	tp := New(&sequencePrompt{responses: []response{{path, true}}})

	assert.True(t, tp.BeginRead())
	b, ok := tp.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x11), b)
}

func TestBeginReadRetriesAfterOpenFailure(t *testing.T) {
	missingPath := t.TempDir() + "/does-not-exist.tape"
	goodPath := t.TempDir() + "/in.tape"
	assert.NoError(t, os.WriteFile(goodPath, []byte{0x55}, 0o600))
	prompt := &sequencePrompt{responses: []response{{missingPath, true}, {goodPath, true}}}
	tp := New(prompt)

	assert.True(t, tp.BeginRead())
	assert.Equal(t, 2, prompt.calls)
	b, ok := tp.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x55), b)
}

func TestReadByteEOFReturnsFalse(t *testing.T) {
	path := t.TempDir() + "/empty.tape"
	f, err := os.Create(path)
	assert.NoError(t, err)
	f.Close()
	tp := New(&sequencePrompt{responses: []response{{path, true}}})

	assert.True(t, tp.BeginRead())
	_, ok := tp.ReadByte()
	assert.False(t, ok)
}

func TestReadByteNoFileOpenReturnsFalse(t *testing.T) {
	tp := New(&sequencePrompt{})
	_, ok := tp.ReadByte()
	assert.False(t, ok)
}

func TestWriteByteNoFileOpenIsNoOp(t *testing.T) {
	tp := New(&sequencePrompt{})
	tp.WriteByte(0x42) // must not panic
}

func TestEndThenBeginReadReopens(t *testing.T) {
	path := t.TempDir() + "/in.tape"
	assert.NoError(t, os.WriteFile(path, []byte{0x7a}, 0o600))
	prompt := &sequencePrompt{responses: []response{{path, true}, {path, true}}}
	tp := New(prompt)

	assert.True(t, tp.BeginRead())
	tp.End()
	assert.True(t, tp.BeginRead())
	assert.Equal(t, 2, prompt.calls)
}
