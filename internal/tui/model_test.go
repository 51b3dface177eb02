package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/staxbar/internal/dbus"
)

func TestStackItem_TopIsMarked(t *testing.T) {
	top := stackItem{message: dbus.StackMessage{MessageID: 2, ContextID: 1, Text: "building"}, index: 0}
	below := stackItem{message: dbus.StackMessage{MessageID: 1, ContextID: 1, Text: "idle"}, index: 1}

	assert.Equal(t, "▶ building", top.Title())
	assert.Equal(t, "  idle", below.Title())
}

func TestStackItem_EmptyText(t *testing.T) {
	item := stackItem{message: dbus.StackMessage{MessageID: 3, ContextID: 2, Text: ""}, index: 1}
	assert.Equal(t, "  (empty message)", item.Title())
}

func TestStackItem_Description(t *testing.T) {
	item := stackItem{message: dbus.StackMessage{MessageID: 7, ContextID: 4, Text: "x"}}
	assert.Equal(t, "  context 4, message 7", item.Description())
}

func TestStackItem_FilterValue(t *testing.T) {
	item := stackItem{message: dbus.StackMessage{Text: "deploying service"}}
	assert.Equal(t, "deploying service", item.FilterValue())
}
