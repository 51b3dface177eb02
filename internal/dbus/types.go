package dbus

// SignalKind identifies a statusbar signal.
type SignalKind string

const (
	// SignalTextPushed is emitted whenever a message is pushed onto the stack.
	SignalTextPushed SignalKind = "TextPushed"
	// SignalTextPopped is emitted whenever the stack is popped; it carries the
	// new visible top, or (0, "") when the stack emptied.
	SignalTextPopped SignalKind = "TextPopped"
)

// TextEvent is a decoded TextPushed or TextPopped signal.
type TextEvent struct {
	Kind      SignalKind
	ContextID uint32
	Text      string
}

// StackMessage is one entry of the Messages() reply, top of stack first.
type StackMessage struct {
	MessageID uint32
	ContextID uint32
	Text      string
}

// ServerInfo describes the daemon, returned by GetServerInformation.
type ServerInfo struct {
	Name    string
	Vendor  string
	Version string
}

// DefaultServerInfo returns placeholder server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:    "staxbard",
		Vendor:  "staxbar",
		Version: "dev",
	}
}
