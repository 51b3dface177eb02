package msgstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// poppedRecorder captures text-popped notifications for assertions.
type poppedRecorder struct {
	contextIDs []uint32
	texts      []string
}

func (r *poppedRecorder) record(contextID uint32, text string) {
	r.contextIDs = append(r.contextIDs, contextID)
	r.texts = append(r.texts, text)
}

func TestNewStack(t *testing.T) {
	s := NewStack()
	assert.Equal(t, 0, s.Len())

	_, ok := s.Top()
	assert.False(t, ok)
}

func TestStack_PushAssignsIncreasingIDs(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	var prev uint32
	for i := 0; i < 10; i++ {
		id := s.Push(ctx, "msg")
		assert.Greater(t, id, prev)
		prev = id
	}

	// Ids are never reused, even after removal.
	s.Pop(ctx)
	id := s.Push(ctx, "again")
	assert.Equal(t, prev+1, id)
}

func TestStack_PushEmitsTextPushed(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	var gotCtx uint32
	var gotText string
	s.ConnectTextPushed(func(contextID uint32, text string) {
		gotCtx = contextID
		gotText = text
	})

	s.Push(ctx, "hello")
	assert.Equal(t, ctx, gotCtx)
	assert.Equal(t, "hello", gotText)
}

func TestStack_PushPopRoundTrip(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx, "A")
	s.Pop(ctx)

	assert.Equal(t, 0, s.Len())
	require.Len(t, rec.texts, 1)
	assert.Equal(t, uint32(0), rec.contextIDs[0])
	assert.Equal(t, "", rec.texts[0])
}

func TestStack_PopRemovesNearestTopMatch(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	s.Push(ctx, "A")
	s.Push(ctx, "B")
	s.Pop(ctx)

	// "B" was the most recent message with this context, so "A" remains.
	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, "A", top.Text)
}

func TestStack_PopSkipsOtherContexts(t *testing.T) {
	s := NewStack()
	ctx1 := s.ContextID("one")
	ctx2 := s.ContextID("two")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx1, "A")
	s.Push(ctx2, "B")
	s.Pop(ctx1)

	// "A" is gone even though it was not on top; "B" stays visible.
	require.Equal(t, 1, s.Len())
	top, _ := s.Top()
	assert.Equal(t, "B", top.Text)

	// The notification reflects the unchanged visible top.
	require.Len(t, rec.texts, 1)
	assert.Equal(t, ctx2, rec.contextIDs[0])
	assert.Equal(t, "B", rec.texts[0])
}

func TestStack_PopEmptyIsNoOp(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	// Popping an empty stack never panics and still notifies.
	s.Pop(ctx)
	assert.Equal(t, 0, s.Len())
	require.Len(t, rec.texts, 1)
	assert.Equal(t, uint32(0), rec.contextIDs[0])
	assert.Equal(t, "", rec.texts[0])

	// Popping a context with no messages leaves others untouched.
	other := s.ContextID("other")
	s.Push(other, "kept")
	s.Pop(ctx)
	assert.Equal(t, 1, s.Len())
	require.Len(t, rec.texts, 2)
	assert.Equal(t, "kept", rec.texts[1])
}

func TestStack_RemoveTopBehavesLikePop(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx, "A")
	id := s.Push(ctx, "B")
	s.Remove(ctx, id)

	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, "A", top.Text)
	require.Len(t, rec.texts, 1)
	assert.Equal(t, "A", rec.texts[0])
}

func TestStack_RemoveNonTopIsSilent(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	id := s.Push(ctx, "A")
	s.Push(ctx, "B")
	s.Remove(ctx, id)

	// "A" was removed from under "B" without a notification.
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, rec.texts)

	top, _ := s.Top()
	assert.Equal(t, "B", top.Text)
}

func TestStack_RemoveRequiresBothIDs(t *testing.T) {
	s := NewStack()
	ctx1 := s.ContextID("one")
	ctx2 := s.ContextID("two")

	id := s.Push(ctx1, "A")

	// Wrong context id: nothing happens.
	s.Remove(ctx2, id)
	assert.Equal(t, 1, s.Len())

	// Wrong message id: nothing happens.
	s.Remove(ctx1, id+100)
	assert.Equal(t, 1, s.Len())
}

func TestStack_RemoveRejectsZeroMessageID(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx, "A")
	s.Remove(ctx, 0)

	assert.Equal(t, 1, s.Len())
	assert.Empty(t, rec.texts)
}

func TestStack_RemoveAll(t *testing.T) {
	s := NewStack()
	ctx1 := s.ContextID("one")
	ctx2 := s.ContextID("two")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx1, "A")
	s.Push(ctx2, "B")
	s.Push(ctx1, "C")
	s.RemoveAll(ctx1)

	// Only "B" survives. "C" was the top and matched, so exactly one
	// notification fires, carrying the new top; "A" went silently.
	require.Equal(t, 1, s.Len())
	top, _ := s.Top()
	assert.Equal(t, "B", top.Text)

	require.Len(t, rec.texts, 1)
	assert.Equal(t, ctx2, rec.contextIDs[0])
	assert.Equal(t, "B", rec.texts[0])
}

func TestStack_RemoveAllNonTopOnly(t *testing.T) {
	s := NewStack()
	ctx1 := s.ContextID("one")
	ctx2 := s.ContextID("two")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx1, "A")
	s.Push(ctx1, "B")
	s.Push(ctx2, "C")
	s.RemoveAll(ctx1)

	// The top did not match, so no notification at all.
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, rec.texts)
}

func TestStack_RemoveAllEmpty(t *testing.T) {
	s := NewStack()

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.RemoveAll(1)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, rec.texts)
}

func TestStack_EmptyStringIsValidMessage(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	var gotText string
	s.ConnectTextPushed(func(_ uint32, text string) { gotText = text })

	id := s.Push(ctx, "")
	assert.NotZero(t, id)
	assert.Equal(t, "", gotText)
	assert.Equal(t, 1, s.Len())
}

func TestStack_Messages(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	s.Push(ctx, "A")
	s.Push(ctx, "B")
	s.Push(ctx, "C")

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "C", msgs[0].Text)
	assert.Equal(t, "B", msgs[1].Text)
	assert.Equal(t, "A", msgs[2].Text)
}

func TestStack_Clear(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	rec := &poppedRecorder{}
	s.ConnectTextPopped(rec.record)

	s.Push(ctx, "A")
	s.Push(ctx, "B")
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, rec.texts)
}

func TestStack_MultipleListeners(t *testing.T) {
	s := NewStack()
	ctx := s.ContextID("test")

	var order []int
	s.ConnectTextPushed(func(uint32, string) { order = append(order, 1) })
	s.ConnectTextPushed(func(uint32, string) { order = append(order, 2) })

	s.Push(ctx, "A")
	assert.Equal(t, []int{1, 2}, order)
}
