package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleep_ActorStaysReadyThroughout(t *testing.T) {
	s := newTestScheduler(t)

	done := make(chan struct{})
	start := make(chan struct{})
	pid, err := s.Spawn(PriorityNormal, func(y *yielder) ExitReason {
		close(start)
		Sleep(50)
		close(done)
		return Normal()
	})
	require.NoError(t, err)

	<-start
	// While sleeping, the PCB must never sit in Waiting - Sleep polls via
	// Yield, never Receive, so it stays Ready/Running the whole time.
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case <-done:
			return
		default:
		}
		pcb, ok := s.table.lookup(pid)
		require.True(t, ok)
		assert.NotEqual(t, StateWaiting, pcb.State())
		time.Sleep(time.Millisecond)
	}
	t.Fatal("sleep never completed")
}

func TestSleep_FromBareThreadBlocksInsteadOfPanicking(t *testing.T) {
	t.Parallel()

	start := time.Now()
	assert.NotPanics(t, func() {
		Sleep(20)
	})
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSendAfter_DeliversAfterDelay(t *testing.T) {
	s := newTestScheduler(t)

	received := make(chan Message, 1)
	pid, err := s.Spawn(PriorityNormal, func(y *yielder) ExitReason {
		msg, ok := Receive(2000)
		if ok {
			received <- msg
		}
		return Normal()
	})
	require.NoError(t, err)

	SendAfter(pid, 30, 77, []byte("delayed"))

	select {
	case msg := <-received:
		assert.Equal(t, uint64(77), msg.TypeTag)
		assert.Equal(t, []byte("delayed"), msg.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("delayed message never arrived")
	}
}

func TestSendAfter_DeliversEvenAfterSenderExits(t *testing.T) {
	s := newTestScheduler(t)

	received := make(chan Message, 1)
	pid, err := s.Spawn(PriorityNormal, func(y *yielder) ExitReason {
		msg, ok := Receive(2000)
		if ok {
			received <- msg
		}
		return Normal()
	})
	require.NoError(t, err)

	senderDone := make(chan struct{})
	_, err = s.Spawn(PriorityNormal, func(y *yielder) ExitReason {
		SendAfter(pid, 30, 9, []byte("from a dead sender"))
		close(senderDone)
		return Normal()
	})
	require.NoError(t, err)
	<-senderDone

	select {
	case msg := <-received:
		assert.Equal(t, []byte("from a dead sender"), msg.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("delayed message never arrived after sender exited")
	}
}
