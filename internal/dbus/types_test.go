package dbus

import (
	"testing"

	godbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestDecodeSignal_TextPushed(t *testing.T) {
	sig := &godbus.Signal{
		Name: Interface + ".TextPushed",
		Body: []any{uint32(3), "build started"},
	}

	event, ok := decodeSignal(sig)
	assert.True(t, ok)
	assert.Equal(t, SignalTextPushed, event.Kind)
	assert.Equal(t, uint32(3), event.ContextID)
	assert.Equal(t, "build started", event.Text)
}

func TestDecodeSignal_TextPopped(t *testing.T) {
	sig := &godbus.Signal{
		Name: Interface + ".TextPopped",
		Body: []any{uint32(0), ""},
	}

	event, ok := decodeSignal(sig)
	assert.True(t, ok)
	assert.Equal(t, SignalTextPopped, event.Kind)
	assert.Equal(t, uint32(0), event.ContextID)
	assert.Equal(t, "", event.Text)
}

func TestDecodeSignal_Rejects(t *testing.T) {
	tests := []struct {
		name string
		sig  *godbus.Signal
	}{
		{name: "nil signal", sig: nil},
		{name: "wrong arity", sig: &godbus.Signal{Name: Interface + ".TextPushed", Body: []any{uint32(1)}}},
		{name: "unknown member", sig: &godbus.Signal{Name: Interface + ".SomethingElse", Body: []any{uint32(1), "x"}}},
		{name: "wrong body types", sig: &godbus.Signal{Name: Interface + ".TextPushed", Body: []any{"1", "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := decodeSignal(tt.sig)
			assert.False(t, ok)
		})
	}
}

func TestDecodeStackMessage(t *testing.T) {
	msg, ok := decodeStackMessage([]any{uint32(7), uint32(2), "deploying"})
	assert.True(t, ok)
	assert.Equal(t, StackMessage{MessageID: 7, ContextID: 2, Text: "deploying"}, msg)

	_, ok = decodeStackMessage([]any{"7", uint32(2), "deploying"})
	assert.False(t, ok)
}

func TestDefaultServerInfo(t *testing.T) {
	info := DefaultServerInfo()
	assert.Equal(t, "staxbard", info.Name)
	assert.NotEmpty(t, info.Vendor)
}
