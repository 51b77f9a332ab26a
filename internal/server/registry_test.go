package server

import (
	"testing"

	"github.com/pairchat/go-pairchat/internal/testutil"
	"github.com/pairchat/go-pairchat/internal/types"
	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T) *Client {
	return &Client{
		send: make(chan *ServerMessage, 256),
		stop: make(chan struct{}),
		log:  testutil.TestLogger(t),
	}
}

// receivedMessage returns the next queued message for the client, or nil if
// nothing was queued.
func receivedMessage(c *Client) *ServerMessage {
	select {
	case msg := <-c.send:
		return msg
	default:
		return nil
	}
}

func TestRegistryJoin(t *testing.T) {
	r := NewRegistry()
	c := newTestClient(t)

	assert.True(t, r.Join(c, "alice_bob"), "expected first join to change membership")
	assert.Equal(t, 1, r.NumMembers("alice_bob"), "expected 1 member after join")
	assert.Equal(t, 1, r.NumRooms(c), "expected client to be joined to 1 room")

	// joining again is a no-op
	assert.False(t, r.Join(c, "alice_bob"), "expected repeat join to be a no-op")
	assert.Equal(t, 1, r.NumMembers("alice_bob"), "expected membership unchanged after repeat join")
	assert.Equal(t, 1, r.NumRooms(c), "expected room count unchanged after repeat join")
}

func TestRegistryBroadcast(t *testing.T) {
	r := NewRegistry()

	c1 := newTestClient(t)
	c2 := newTestClient(t)
	c3 := newTestClient(t)

	// c1 and c2 join the same pair from opposite directions; c3 never joins
	r.Join(c1, "alice_bob")
	r.Join(c2, "alice_bob")

	msg := &ServerMessage{
		Message: &types.Message{
			RoomId:   "alice_bob",
			SenderId: "alice",
			Body:     "hi",
		},
	}
	r.Broadcast("alice_bob", msg)

	for _, c := range []*Client{c1, c2} {
		got := receivedMessage(c)
		assert.NotNil(t, got, "expected joined client to receive the broadcast")
		assert.Equal(t, msg.Message, got.Message, "expected broadcast to carry the persisted message")
	}

	assert.Nil(t, receivedMessage(c3), "expected client outside the room to receive nothing")
}

func TestRegistryBroadcast_FullBufferDoesNotBlockOthers(t *testing.T) {
	r := NewRegistry()

	slow := &Client{
		send: make(chan *ServerMessage), // unbuffered and never drained
		log:  testutil.TestLogger(t),
	}
	fast := newTestClient(t)

	r.Join(slow, "alice_bob")
	r.Join(fast, "alice_bob")

	r.Broadcast("alice_bob", &ServerMessage{Message: &types.Message{Body: "hi"}})

	assert.NotNil(t, receivedMessage(fast), "expected delivery to healthy client despite full peer buffer")
}

func TestRegistryLeaveAll(t *testing.T) {
	r := NewRegistry()
	c1 := newTestClient(t)
	c2 := newTestClient(t)

	r.Join(c1, "alice_bob")
	r.Join(c1, "alice_carol")
	r.Join(c2, "alice_bob")

	r.LeaveAll(c1)

	assert.Equal(t, 0, r.NumRooms(c1), "expected no memberships after LeaveAll")
	assert.Equal(t, 1, r.NumMembers("alice_bob"), "expected remaining member in shared room")
	assert.Equal(t, 0, r.NumMembers("alice_carol"), "expected empty room to be dropped")

	// broadcasts after disconnect must not reach the departed client
	r.Broadcast("alice_bob", &ServerMessage{Message: &types.Message{Body: "hi"}})
	r.Broadcast("alice_carol", &ServerMessage{Message: &types.Message{Body: "hi"}})
	assert.Nil(t, receivedMessage(c1), "expected no delivery to departed client")
	assert.NotNil(t, receivedMessage(c2), "expected delivery to remaining client")
}

func TestRegistryLeaveAll_NeverJoined(t *testing.T) {
	r := NewRegistry()
	c := newTestClient(t)

	assert.NotPanics(t, func() { r.LeaveAll(c) }, "expected LeaveAll to be safe for a client with no memberships")
	assert.Equal(t, 0, r.NumRooms(c))
}
