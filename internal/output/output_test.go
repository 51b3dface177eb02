package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/staxbar/internal/journal"
)

func testEvents() []journal.Event {
	return []journal.Event{
		{
			EventID:   "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			Kind:      journal.KindPushed,
			ContextID: 1,
			MessageID: 1,
			Text:      "copying files",
			Timestamp: time.Now().Unix(),
		},
		{
			EventID:   "01ARZ3NDEKTSV4RRFFQ69G5FAW",
			Kind:      journal.KindPopped,
			ContextID: 0,
			Text:      "",
			Timestamp: time.Now().Unix(),
		},
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  FormatType
		wantErr bool
	}{
		{FormatPlain, false},
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatType(""), false},
		{FormatType("xml"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := NewFormatter(tt.format, DefaultFormatterOptions())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, f)
			}
		})
	}
}

func TestPlainFormatter(t *testing.T) {
	f := NewPlainFormatter(DefaultFormatterOptions())

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, testEvents()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[1]")
	assert.Contains(t, lines[0], `pushed ctx=1 id=1 "copying files"`)
	assert.Contains(t, lines[1], "popped (stack empty)")
}

func TestPlainFormatter_NoIndexNoTime(t *testing.T) {
	f := NewPlainFormatter(FormatterOptions{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, testEvents()[:1]))

	out := buf.String()
	assert.NotContains(t, out, "[1]")
	assert.NotContains(t, out, "(")
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(DefaultFormatterOptions())

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, testEvents()))

	var decoded []journal.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, journal.KindPushed, decoded[0].Kind)
	assert.Equal(t, "copying files", decoded[0].Text)
}

func TestYAMLFormatter(t *testing.T) {
	f := NewYAMLFormatter(DefaultFormatterOptions())

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, testEvents()))

	var decoded []journal.Event
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, uint32(1), decoded[0].ContextID)
}

func TestFormatters_EmptyInput(t *testing.T) {
	for _, format := range []FormatType{FormatPlain, FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			f, err := NewFormatter(format, DefaultFormatterOptions())
			require.NoError(t, err)

			var buf bytes.Buffer
			assert.NoError(t, f.Format(&buf, nil))
		})
	}
}
