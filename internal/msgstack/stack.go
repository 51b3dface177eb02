package msgstack

import (
	"container/list"
	"time"
)

// Message is a single entry on the stack. Messages are owned by the stack
// and copied out on query.
type Message struct {
	Text      string
	ContextID uint32
	MessageID uint32
	PushedAt  time.Time
}

// TextFunc observes text-pushed and text-popped transitions. For text-pushed
// it receives the pushed message's context id and text; for text-popped it
// receives the new top of the stack, or (0, "") when the stack emptied.
type TextFunc func(contextID uint32, text string)

// Stack is an ordered sequence of messages, most recent first. The visible
// message is always the head.
//
// A Stack is not safe for concurrent use. The daemon owns one per bar and
// mutates it only from the GTK main loop (see glib.IdleAdd in cmd/staxbard).
type Stack struct {
	registry *ContextRegistry
	messages *list.List // of Message, head = most recent

	seqMessageID uint32

	pushed []TextFunc
	popped []TextFunc
}

// NewStack creates an empty stack with its own context registry.
func NewStack() *Stack {
	return &Stack{
		registry:     NewContextRegistry(),
		messages:     list.New(),
		seqMessageID: 1,
	}
}

// ContextID returns the context id for description, allocating one if the
// description has not been seen before.
func (s *Stack) ContextID(description string) uint32 {
	return s.registry.ContextID(description)
}

// ConnectTextPushed registers f to run after every push. Listeners run in
// registration order.
func (s *Stack) ConnectTextPushed(f TextFunc) {
	s.pushed = append(s.pushed, f)
}

// ConnectTextPopped registers f to run after every pop, including the no-op
// pop of an empty stack.
func (s *Stack) ConnectTextPopped(f TextFunc) {
	s.popped = append(s.popped, f)
}

// Push adds a message to the top of the stack and returns its message id.
// Message ids are strictly increasing and never reused for the lifetime of
// the stack. The empty string is a valid message and displays as no message.
func (s *Stack) Push(contextID uint32, text string) uint32 {
	msg := Message{
		Text:      text,
		ContextID: contextID,
		MessageID: s.seqMessageID,
		PushedAt:  time.Now(),
	}
	s.seqMessageID++

	s.messages.PushFront(msg)
	s.emitPushed(contextID, text)

	return msg.MessageID
}

// Pop removes the message nearest the top of the stack with the given
// context id. Messages with other context ids keep their relative order.
// The text-popped notification always fires and carries the new top, or
// (0, "") if the stack is now empty; popping a context with no messages is
// a no-op apart from that notification.
func (s *Stack) Pop(contextID uint32) {
	for e := s.messages.Front(); e != nil; e = e.Next() {
		if e.Value.(Message).ContextID == contextID {
			s.messages.Remove(e)
			break
		}
	}

	if top := s.messages.Front(); top != nil {
		msg := top.Value.(Message)
		s.emitPopped(msg.ContextID, msg.Text)
	} else {
		s.emitPopped(0, "")
	}
}

// Remove removes the message matching both contextID and messageID, wherever
// it sits in the stack. Removing the top message behaves exactly like Pop;
// removing any other message is silent since the visible top is unaffected.
// A messageID of 0 is invalid and the call does nothing.
func (s *Stack) Remove(contextID, messageID uint32) {
	if messageID == 0 {
		return
	}

	top := s.messages.Front()
	if top == nil {
		return
	}

	// The topmost message needs the pop notification path.
	if msg := top.Value.(Message); msg.ContextID == contextID && msg.MessageID == messageID {
		s.Pop(contextID)
		return
	}

	for e := top.Next(); e != nil; e = e.Next() {
		msg := e.Value.(Message)
		if msg.ContextID == contextID && msg.MessageID == messageID {
			s.messages.Remove(e)
			return
		}
	}
}

// RemoveAll removes every message with the given context id in a single
// pass. Non-top matches are removed without notifications; if the top
// matches too, the call finishes with the equivalent of Pop, so at most one
// text-popped notification fires for the new visible top.
func (s *Stack) RemoveAll(contextID uint32) {
	top := s.messages.Front()
	if top == nil {
		return
	}

	// Everything below the top first, so a final Pop sees the stack the
	// display will see.
	var next *list.Element
	for e := top.Next(); e != nil; e = next {
		next = e.Next()
		if e.Value.(Message).ContextID == contextID {
			s.messages.Remove(e)
		}
	}

	if top.Value.(Message).ContextID == contextID {
		s.Pop(contextID)
	}
}

// Clear drops every message without notifications. It is called when the
// owning bar is destroyed.
func (s *Stack) Clear() {
	s.messages.Init()
}

// Top returns the currently visible message, if any.
func (s *Stack) Top() (Message, bool) {
	if e := s.messages.Front(); e != nil {
		return e.Value.(Message), true
	}
	return Message{}, false
}

// Messages returns a copy of the stack, most recent first.
func (s *Stack) Messages() []Message {
	out := make([]Message, 0, s.messages.Len())
	for e := s.messages.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Message))
	}
	return out
}

// Len returns the number of messages on the stack.
func (s *Stack) Len() int {
	return s.messages.Len()
}

func (s *Stack) emitPushed(contextID uint32, text string) {
	for _, f := range s.pushed {
		f(contextID, text)
	}
}

func (s *Stack) emitPopped(contextID uint32, text string) {
	for _, f := range s.popped {
		f(contextID, text)
	}
}
