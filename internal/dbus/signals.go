package dbus

import (
	"fmt"
)

// EmitTextPushed emits the TextPushed signal carrying the pushed message's
// context id and text.
func (s *Server) EmitTextPushed(contextID uint32, text string) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(Path, Interface+"."+string(SignalTextPushed), contextID, text); err != nil {
		return fmt.Errorf("failed to emit TextPushed signal: %w", err)
	}

	s.logger.Debug("emitted TextPushed signal", "context_id", contextID)
	return nil
}

// EmitTextPopped emits the TextPopped signal carrying the new visible top,
// or (0, "") when the stack emptied.
func (s *Server) EmitTextPopped(contextID uint32, text string) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(Path, Interface+"."+string(SignalTextPopped), contextID, text); err != nil {
		return fmt.Errorf("failed to emit TextPopped signal: %w", err)
	}

	s.logger.Debug("emitted TextPopped signal", "context_id", contextID)
	return nil
}
