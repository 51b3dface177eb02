package dbus

import (
	"context"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Client talks to a running staxbard over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus. It fails if the daemon is not
// reachable when the first method call is made, not at connect time.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, Path),
	}, nil
}

// ServerInformation returns the daemon's name, vendor and version.
func (c *Client) ServerInformation() (ServerInfo, error) {
	var info ServerInfo
	call := c.obj.Call(Interface+".GetServerInformation", 0)
	if call.Err != nil {
		return info, fmt.Errorf("GetServerInformation: %w", call.Err)
	}
	if err := call.Store(&info.Name, &info.Vendor, &info.Version); err != nil {
		return info, err
	}
	return info, nil
}

// ContextID resolves a producer description to a context id.
func (c *Client) ContextID(description string) (uint32, error) {
	var id uint32
	call := c.obj.Call(Interface+".GetContextID", 0, description)
	if call.Err != nil {
		return 0, fmt.Errorf("GetContextID: %w", call.Err)
	}
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Push pushes a message and returns its message id.
func (c *Client) Push(contextID uint32, text string) (uint32, error) {
	var id uint32
	call := c.obj.Call(Interface+".Push", 0, contextID, text)
	if call.Err != nil {
		return 0, fmt.Errorf("Push: %w", call.Err)
	}
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Pop removes the most recent message with the given context id.
func (c *Client) Pop(contextID uint32) error {
	if call := c.obj.Call(Interface+".Pop", 0, contextID); call.Err != nil {
		return fmt.Errorf("Pop: %w", call.Err)
	}
	return nil
}

// Remove removes the message matching both ids.
func (c *Client) Remove(contextID, messageID uint32) error {
	if call := c.obj.Call(Interface+".Remove", 0, contextID, messageID); call.Err != nil {
		return fmt.Errorf("Remove: %w", call.Err)
	}
	return nil
}

// RemoveAll removes every message with the given context id.
func (c *Client) RemoveAll(contextID uint32) error {
	if call := c.obj.Call(Interface+".RemoveAll", 0, contextID); call.Err != nil {
		return fmt.Errorf("RemoveAll: %w", call.Err)
	}
	return nil
}

// Messages returns the stack contents, top of stack first.
func (c *Client) Messages() ([]StackMessage, error) {
	var raw [][]any
	call := c.obj.Call(Interface+".Messages", 0)
	if call.Err != nil {
		return nil, fmt.Errorf("Messages: %w", call.Err)
	}
	if err := call.Store(&raw); err != nil {
		return nil, err
	}

	messages := make([]StackMessage, 0, len(raw))
	for _, entry := range raw {
		if len(entry) != 3 {
			continue
		}
		msg, ok := decodeStackMessage(entry)
		if !ok {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// decodeStackMessage converts one (uus) struct from the Messages reply.
func decodeStackMessage(entry []any) (StackMessage, bool) {
	messageID, ok := entry[0].(uint32)
	if !ok {
		return StackMessage{}, false
	}
	contextID, ok := entry[1].(uint32)
	if !ok {
		return StackMessage{}, false
	}
	text, ok := entry[2].(string)
	if !ok {
		return StackMessage{}, false
	}
	return StackMessage{MessageID: messageID, ContextID: contextID, Text: text}, true
}

// Subscribe streams TextPushed/TextPopped signals until ctx is cancelled.
// The returned channel is closed when the subscription ends.
func (c *Client) Subscribe(ctx context.Context) (<-chan TextEvent, error) {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(Path),
		dbus.WithMatchInterface(Interface),
	); err != nil {
		return nil, fmt.Errorf("failed to add match rule: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	c.conn.Signal(signals)

	events := make(chan TextEvent, 16)
	go func() {
		defer close(events)
		defer c.conn.RemoveSignal(signals)

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				event, ok := decodeSignal(sig)
				if !ok {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

// decodeSignal converts a raw bus signal into a TextEvent.
func decodeSignal(sig *dbus.Signal) (TextEvent, bool) {
	if sig == nil || len(sig.Body) != 2 {
		return TextEvent{}, false
	}

	var kind SignalKind
	switch {
	case strings.HasSuffix(sig.Name, "."+string(SignalTextPushed)):
		kind = SignalTextPushed
	case strings.HasSuffix(sig.Name, "."+string(SignalTextPopped)):
		kind = SignalTextPopped
	default:
		return TextEvent{}, false
	}

	contextID, ok := sig.Body[0].(uint32)
	if !ok {
		return TextEvent{}, false
	}
	text, ok := sig.Body[1].(string)
	if !ok {
		return TextEvent{}, false
	}

	return TextEvent{Kind: kind, ContextID: contextID, Text: text}, true
}
