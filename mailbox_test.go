package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_FIFOOrdering(t *testing.T) {
	t.Parallel()

	m := NewMailbox()
	for i := 1; i <= 5; i++ {
		m.Push([]byte{byte(i)})
	}

	for i := 1; i <= 5; i++ {
		msg, ok := m.Pop()
		require.True(t, ok)
		assert.Equal(t, []byte{byte(i)}, msg)
	}

	_, ok := m.Pop()
	assert.False(t, ok)
}

func TestMailbox_GrowsBeyondInitialCapacity(t *testing.T) {
	t.Parallel()

	m := NewMailbox()
	const n = 100
	for i := 0; i < n; i++ {
		m.Push([]byte{byte(i)})
	}
	assert.Equal(t, n, m.Len())
	for i := 0; i < n; i++ {
		msg, ok := m.Pop()
		require.True(t, ok)
		assert.Equal(t, byte(i), msg[0])
	}
}

func TestMailbox_WakeSignalsOnceUntilConsumed(t *testing.T) {
	t.Parallel()

	m := NewMailbox()
	m.Push([]byte("a"))

	select {
	case <-m.WakeChan():
	case <-time.After(time.Second):
		t.Fatal("expected wake signal after push")
	}

	m.ResetWake()
	m.Push([]byte("b"))
	select {
	case <-m.WakeChan():
	case <-time.After(time.Second):
		t.Fatal("expected wake signal after second push")
	}
}

func TestMailbox_WaitingReceiverWokenAfterPush(t *testing.T) {
	t.Parallel()

	m := NewMailbox()
	done := make(chan []byte, 1)
	go func() {
		<-m.WakeChan()
		msg, _ := m.Pop()
		done <- msg
	}()

	time.Sleep(10 * time.Millisecond)
	m.Push([]byte("late"))

	select {
	case msg := <-done:
		assert.Equal(t, "late", string(msg))
	case <-time.After(time.Second):
		t.Fatal("blocked receiver was never woken")
	}
}
