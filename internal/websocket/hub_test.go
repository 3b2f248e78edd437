package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"refund-decision-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, c *Client) envelope {
	t.Helper()
	select {
	case data := <-c.Send:
		var env envelope
		require.NoError(t, json.Unmarshal(data, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
	return envelope{}
}

func TestHub_NotifyTargetsCase(t *testing.T) {
	hub := startHub(t)
	caseA, caseB := uuid.New(), uuid.New()

	watcherA := NewClient(hub, nil, caseA)
	watcherB := NewClient(hub, nil, caseB)
	hub.Register(watcherA)
	hub.Register(watcherB)
	require.Eventually(t, func() bool {
		return hub.ClientCount(caseA) == 1 && hub.ClientCount(caseB) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Notify(caseA, Toast{Title: "Success", Message: "Record updated successfully", Variant: "success"})

	env := receive(t, watcherA)
	assert.Equal(t, "toast", env.Type)
	assert.Equal(t, "Record updated successfully", env.Data.Message)

	select {
	case <-watcherB.Send:
		t.Fatal("toast leaked to another case")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	c := NewClient(hub, nil, uuid.New())
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}

	// A second unregister must not panic on the closed channel.
	hub.Unregister(c)
}

func TestHub_NotifyConcurrentWithUnregister(t *testing.T) {
	hub := startHub(t)
	caseID := uuid.New()

	for i := 0; i < 200; i++ {
		c := NewClient(hub, nil, caseID)
		hub.Register(c)
		require.Eventually(t, func() bool { return hub.ClientCount(caseID) == 1 }, time.Second, time.Millisecond)

		var wg sync.WaitGroup
		for n := 0; n < 16; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				hub.Notify(caseID, Toast{Title: "Success", Message: "Record updated successfully", Variant: "success"})
			}()
		}
		hub.Unregister(c)
		wg.Wait()

		require.Eventually(t, func() bool { return hub.ClientCount(caseID) == 0 }, time.Second, time.Millisecond)
	}
}

func TestHub_StoppedHubReleasesCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	caseID := uuid.New()
	connected := NewClient(hub, nil, caseID)
	hub.Register(connected)
	require.Eventually(t, func() bool { return hub.ClientCount(caseID) == 1 }, time.Second, time.Millisecond)

	cancel()
	<-stopped

	_, ok := <-connected.Send
	assert.False(t, ok, "connected client should be closed on stop")
	assert.Equal(t, 0, hub.ClientCount(caseID))

	returned := make(chan struct{})
	go func() {
		late := NewClient(hub, nil, caseID)
		hub.Register(late)
		_, ok := <-late.Send
		assert.False(t, ok)
		hub.Unregister(late)
		hub.Unregister(connected)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked after the hub stopped")
	}
}
