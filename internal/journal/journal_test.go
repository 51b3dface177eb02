package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestNewEvent(t *testing.T) {
	e, err := NewEvent(KindPushed, 1, 42, "hello")
	require.NoError(t, err)

	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, KindPushed, e.Kind)
	assert.Equal(t, uint32(1), e.ContextID)
	assert.Equal(t, uint32(42), e.MessageID)
	assert.Equal(t, "hello", e.Text)
	assert.NotZero(t, e.Timestamp)

	// ULIDs are unique per event.
	e2, err := NewEvent(KindPushed, 1, 43, "hello")
	require.NoError(t, err)
	assert.NotEqual(t, e.EventID, e2.EventID)
}

func TestOpen_WritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var header map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &header))
	assert.EqualValues(t, SchemaVersion, header["staxbar_schema_version"])
}

func TestOpen_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "journal.jsonl")
	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJournal_AppendLoadRoundTrip(t *testing.T) {
	j := testJournal(t)

	pushed, err := NewEvent(KindPushed, 1, 1, "first")
	require.NoError(t, err)
	popped, err := NewEvent(KindPopped, 0, 0, "")
	require.NoError(t, err)

	require.NoError(t, j.Append(pushed))
	require.NoError(t, j.Append(popped))

	events, err := j.Load()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, pushed.EventID, events[0].EventID)
	assert.Equal(t, KindPushed, events[0].Kind)
	assert.Equal(t, "first", events[0].Text)
	assert.Equal(t, popped.EventID, events[1].EventID)
	assert.Equal(t, KindPopped, events[1].Kind)
}

func TestJournal_AppendAfterLoad(t *testing.T) {
	j := testJournal(t)

	e1, _ := NewEvent(KindPushed, 1, 1, "one")
	require.NoError(t, j.Append(e1))

	_, err := j.Load()
	require.NoError(t, err)

	// Load seeks back to the end, so appends keep working.
	e2, _ := NewEvent(KindPushed, 1, 2, "two")
	require.NoError(t, j.Append(e2))

	events, err := j.Load()
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestJournal_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := Open(path)
	require.NoError(t, err)

	e, _ := NewEvent(KindPushed, 1, 1, "good")
	require.NoError(t, j.Append(e))
	require.NoError(t, j.Close())

	// Corrupt the file with a bogus line then reopen.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	events, err := j2.Load()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "good", events[0].Text)
}

func TestJournal_Clear(t *testing.T) {
	j := testJournal(t)

	e, _ := NewEvent(KindPushed, 1, 1, "gone")
	require.NoError(t, j.Append(e))
	require.NoError(t, j.Clear())

	events, err := j.Load()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestJournal_ClosedErrors(t *testing.T) {
	j := testJournal(t)
	require.NoError(t, j.Close())

	e, _ := NewEvent(KindPushed, 1, 1, "late")
	assert.ErrorIs(t, j.Append(e), ErrJournalClosed)

	_, err := j.Load()
	assert.ErrorIs(t, err, ErrJournalClosed)

	// Closing twice is fine.
	assert.NoError(t, j.Close())
}
