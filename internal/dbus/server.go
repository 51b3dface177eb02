package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// BusName is the session bus name claimed by the daemon.
	BusName = "io.github.jmylchreest.staxbar"
	// Path is the statusbar object path.
	Path = "/io/github/jmylchreest/staxbar"
	// Interface is the statusbar interface name.
	Interface = "io.github.jmylchreest.staxbar.Statusbar"
)

// ContextIDHandler resolves a context description to an id.
type ContextIDHandler func(description string) uint32

// PushHandler pushes a message and returns its message id.
type PushHandler func(contextID uint32, text string) uint32

// PopHandler pops the nearest-top message with the given context id.
type PopHandler func(contextID uint32)

// RemoveHandler removes the message matching both ids.
type RemoveHandler func(contextID, messageID uint32)

// RemoveAllHandler removes every message with the given context id.
type RemoveAllHandler func(contextID uint32)

// MessagesHandler returns the current stack contents, top first.
type MessagesHandler func() []StackMessage

// Server exports the statusbar interface on the session bus. Incoming
// method calls are delegated to handlers which the daemon runs on the GTK
// main loop.
type Server struct {
	conn   *dbus.Conn
	logger *slog.Logger

	// Handlers
	contextIDHandler ContextIDHandler
	pushHandler      PushHandler
	popHandler       PopHandler
	removeHandler    RemoveHandler
	removeAllHandler RemoveAllHandler
	messagesHandler  MessagesHandler

	mu         sync.Mutex
	serverInfo ServerInfo
	running    bool
}

// NewServer creates a new statusbar D-Bus server.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:     logger,
		serverInfo: DefaultServerInfo(),
	}
}

// SetServerInfo sets the information returned by GetServerInformation.
func (s *Server) SetServerInfo(info ServerInfo) {
	s.serverInfo = info
}

// SetContextIDHandler sets the handler for GetContextID calls.
func (s *Server) SetContextIDHandler(h ContextIDHandler) { s.contextIDHandler = h }

// SetPushHandler sets the handler for Push calls.
func (s *Server) SetPushHandler(h PushHandler) { s.pushHandler = h }

// SetPopHandler sets the handler for Pop calls.
func (s *Server) SetPopHandler(h PopHandler) { s.popHandler = h }

// SetRemoveHandler sets the handler for Remove calls.
func (s *Server) SetRemoveHandler(h RemoveHandler) { s.removeHandler = h }

// SetRemoveAllHandler sets the handler for RemoveAll calls.
func (s *Server) SetRemoveAllHandler(h RemoveAllHandler) { s.removeAllHandler = h }

// SetMessagesHandler sets the handler for Messages calls.
func (s *Server) SetMessagesHandler(h MessagesHandler) { s.messagesHandler = h }

// Start connects to the session bus and exports the statusbar service.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: statusbarMethods(),
				Signals: statusbarSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus statusbar server started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(BusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus statusbar server stopped")
	return nil
}

// GetServerInformation returns information about the daemon.
// D-Bus method: GetServerInformation() -> (sss)
func (s *Server) GetServerInformation() (string, string, string, *dbus.Error) {
	s.logger.Debug("GetServerInformation called")
	return s.serverInfo.Name, s.serverInfo.Vendor, s.serverInfo.Version, nil
}

// GetContextID returns the context id for a producer description, allocating
// one on first sight.
// D-Bus method: GetContextID(s) -> u
func (s *Server) GetContextID(description string) (uint32, *dbus.Error) {
	s.logger.Debug("GetContextID called", "description", description)

	if s.contextIDHandler == nil {
		return 0, dbus.MakeFailedError(fmt.Errorf("no context handler registered"))
	}
	return s.contextIDHandler(description), nil
}

// Push pushes a message onto the stack and returns its message id.
// D-Bus method: Push(us) -> u
func (s *Server) Push(contextID uint32, text string) (uint32, *dbus.Error) {
	s.logger.Debug("Push called", "context_id", contextID, "text", text)

	if s.pushHandler == nil {
		return 0, dbus.MakeFailedError(fmt.Errorf("no push handler registered"))
	}
	return s.pushHandler(contextID, text), nil
}

// Pop removes the most recent message with the given context id.
// D-Bus method: Pop(u) -> nothing
func (s *Server) Pop(contextID uint32) *dbus.Error {
	s.logger.Debug("Pop called", "context_id", contextID)

	if s.popHandler != nil {
		s.popHandler(contextID)
	}
	return nil
}

// Remove removes the message matching both contextID and messageID.
// A messageID of 0 is rejected.
// D-Bus method: Remove(uu) -> nothing
func (s *Server) Remove(contextID, messageID uint32) *dbus.Error {
	s.logger.Debug("Remove called", "context_id", contextID, "message_id", messageID)

	if messageID == 0 {
		return dbus.MakeFailedError(fmt.Errorf("message id must be non-zero"))
	}
	if s.removeHandler != nil {
		s.removeHandler(contextID, messageID)
	}
	return nil
}

// RemoveAll removes every message with the given context id.
// D-Bus method: RemoveAll(u) -> nothing
func (s *Server) RemoveAll(contextID uint32) *dbus.Error {
	s.logger.Debug("RemoveAll called", "context_id", contextID)

	if s.removeAllHandler != nil {
		s.removeAllHandler(contextID)
	}
	return nil
}

// Messages returns the stack contents, top of stack first.
// D-Bus method: Messages() -> a(uus)
func (s *Server) Messages() ([]StackMessage, *dbus.Error) {
	s.logger.Debug("Messages called")

	if s.messagesHandler == nil {
		return nil, nil
	}
	return s.messagesHandler(), nil
}

// Connection returns the underlying D-Bus connection.
func (s *Server) Connection() *dbus.Conn {
	return s.conn
}

// statusbarMethods returns the D-Bus method introspection data.
func statusbarMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "out"},
				{Name: "vendor", Type: "s", Direction: "out"},
				{Name: "version", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "GetContextID",
			Args: []introspect.Arg{
				{Name: "description", Type: "s", Direction: "in"},
				{Name: "context_id", Type: "u", Direction: "out"},
			},
		},
		{
			Name: "Push",
			Args: []introspect.Arg{
				{Name: "context_id", Type: "u", Direction: "in"},
				{Name: "text", Type: "s", Direction: "in"},
				{Name: "message_id", Type: "u", Direction: "out"},
			},
		},
		{
			Name: "Pop",
			Args: []introspect.Arg{
				{Name: "context_id", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "Remove",
			Args: []introspect.Arg{
				{Name: "context_id", Type: "u", Direction: "in"},
				{Name: "message_id", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "RemoveAll",
			Args: []introspect.Arg{
				{Name: "context_id", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "Messages",
			Args: []introspect.Arg{
				{Name: "messages", Type: "a(uus)", Direction: "out"},
			},
		},
	}
}

// statusbarSignals returns the D-Bus signal introspection data.
func statusbarSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: string(SignalTextPushed),
			Args: []introspect.Arg{
				{Name: "context_id", Type: "u"},
				{Name: "text", Type: "s"},
			},
		},
		{
			Name: string(SignalTextPopped),
			Args: []introspect.Arg{
				{Name: "context_id", Type: "u"},
				{Name: "text", Type: "s"},
			},
		},
	}
}
