package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/domain/entity"
)

func register(t *testing.T, m *Manager, userID string) *Client {
	t.Helper()
	c := &Client{UserID: userID, Send: make(chan []byte, sendBuffer)}
	require.True(t, m.Register(c))
	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		_, ok := m.clients[userID][c]
		return ok
	}, time.Second, 5*time.Millisecond)
	return c
}

func TestManager_NotifyFileStatusReachesEveryConnectionOfOwner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	a1 := register(t, m, "alice")
	a2 := register(t, m, "alice")
	b := register(t, m, "bob")
	assert.Equal(t, 2, m.ConnectionCount("alice"))

	m.NotifyFileStatus("alice", &entity.FileRecord{ID: "f1", FileHash: "abc", Status: entity.FileStatusVerified, TransactionHash: "0x1"})

	for _, c := range []*Client{a1, a2} {
		select {
		case raw := <-c.Send:
			var msg struct {
				Type string         `json:"type"`
				Data FileStatusData `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, MessageTypeFileStatus, msg.Type)
			assert.Equal(t, "f1", msg.Data.FileID)
			assert.Equal(t, "verified", msg.Data.Status)
		case <-time.After(time.Second):
			t.Fatal("no message delivered")
		}
	}
	assert.Empty(t, b.Send)

	m.Unregister(a1)
	require.Eventually(t, func() bool { return m.ConnectionCount("alice") == 1 }, time.Second, 5*time.Millisecond)
	_, open := <-a1.Send
	assert.False(t, open)
}

func TestClient_AnswersPing(t *testing.T) {
	c := &Client{UserID: "alice", Send: make(chan []byte, 1)}

	c.handleIncoming([]byte(`{"type":"ping"}`))
	c.handleIncoming([]byte(`not json`))

	raw := <-c.Send
	var msg WSMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MessageTypePong, msg.Type)
	assert.Empty(t, c.Send)
}

func TestManager_StoppedManagerDoesNotBlockCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)
	c := register(t, m, "alice")

	cancel()
	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}

	_, open := <-c.Send
	assert.False(t, open)

	returned := make(chan struct{})
	go func() {
		m.Unregister(c)
		assert.False(t, m.Register(&Client{UserID: "bob", Send: make(chan []byte, 1)}))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked after shutdown")
	}
	assert.Equal(t, 0, m.ConnectionCount("alice"))
}
