package websocket

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestClient(userID, role string, buffer int) *Client {
	return &Client{
		UserID:   userID,
		UserName: userID,
		UserRole: role,
		send:     make(chan []byte, buffer),
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestBroadcastToUserDelivers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	agent := newTestClient("agent-1", "agent", 8)
	hub.register <- agent
	waitFor(t, "agent-1 to register", func() bool { return hub.IsUserConnected("agent-1") })

	hub.BroadcastToUser("agent-1", map[string]string{"type": "bid_card_update_ack"})

	select {
	case msg := <-agent.send:
		if !strings.Contains(string(msg), "bid_card_update_ack") {
			t.Errorf("delivered message = %s, want bid_card_update_ack payload", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("targeted message never delivered")
	}
}

func TestBroadcastToUserDropsStalledClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stalled := newTestClient("agent-2", "agent", 1)
	hub.register <- stalled
	waitFor(t, "agent-2 to register", func() bool { return hub.IsUserConnected("agent-2") })

	// First message fills the buffer, second overflows and disconnects
	hub.BroadcastToUser("agent-2", "one")
	hub.BroadcastToUser("agent-2", "two")

	waitFor(t, "agent-2 to be dropped", func() bool { return !hub.IsUserConnected("agent-2") })
}

// Targeted sends that force a disconnect mutate the client map, so they
// must serialize with role broadcasts iterating it.
func TestTargetedAndRoleBroadcastsInterleave(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	admin := newTestClient("admin-1", "admin", 256)
	stalled := newTestClient("agent-3", "agent", 1)
	hub.register <- admin
	hub.register <- stalled
	waitFor(t, "both clients to register", func() bool {
		return hub.IsUserConnected("admin-1") && hub.IsUserConnected("agent-3")
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.BroadcastToUser("agent-3", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.BroadcastToRole("admin", i)
		}
	}()
	wg.Wait()

	waitFor(t, "stalled agent to be dropped", func() bool { return !hub.IsUserConnected("agent-3") })
	if !hub.IsUserConnected("admin-1") {
		t.Error("admin client should survive the interleaved broadcasts")
	}
	if hub.GetClientCount() != 1 {
		t.Errorf("GetClientCount() = %d, want 1", hub.GetClientCount())
	}
}

func TestUnregisterIgnoresReplacedConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	old := newTestClient("admin-2", "admin", 8)
	hub.register <- old
	waitFor(t, "first connection to register", func() bool { return hub.IsUserConnected("admin-2") })

	replacement := newTestClient("admin-2", "admin", 8)
	hub.register <- replacement

	// The old connection tearing down must not evict the replacement
	hub.unregister <- old
	hub.BroadcastToUser("admin-2", "still here")

	select {
	case <-replacement.send:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement connection lost after old connection unregistered")
	}
	if !hub.IsUserConnected("admin-2") {
		t.Error("replacement connection should remain registered")
	}
}
