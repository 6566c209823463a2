package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubLifecycleCallbacks(t *testing.T) {
	hub := NewHub()
	var connects, disconnects []string
	hub.OnConnect(func(userID string) { connects = append(connects, userID) })
	hub.OnDisconnect(func(userID string) { disconnects = append(disconnects, userID) })

	first := NewClient("u1", nil)
	second := NewClient("u1", nil)
	hub.Register(first)
	hub.Register(second)
	assert.Equal(t, []string{"u1", "u1"}, connects)
	assert.Equal(t, []string{"u1"}, hub.ConnectedUsers())

	// The user stays connected until the last client goes away.
	hub.Unregister(first)
	assert.Empty(t, disconnects)
	hub.Unregister(second)
	assert.Equal(t, []string{"u1"}, disconnects)
	assert.Empty(t, hub.ConnectedUsers())
}

func TestSendToUserDefaultsContext(t *testing.T) {
	hub := NewHub()
	client := NewClient("u1", nil)
	hub.Register(client)

	require.True(t, hub.SendToUser("u1", "", map[string]string{"hello": "world"}))

	payload := <-client.send
	var envelope Envelope
	require.NoError(t, json.Unmarshal(payload, &envelope))
	assert.Equal(t, "chat/0", envelope.Destination)

	assert.False(t, hub.SendToUser("unknown", "", "x"))
}
