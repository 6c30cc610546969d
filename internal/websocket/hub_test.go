package websocket

import (
	"testing"
	"time"

	"syncpad-be/internal/model"
	"syncpad-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func newTestHub() *Hub {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()
	return hub
}

func connectionCount(hub *Hub, userID uuid.UUID) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.clients[userID])
}

func TestHubSendDropsSlowClient(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	// Unbuffered channel with no reader models a stalled connection.
	slow := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- slow
	assert.Eventually(t, func() bool {
		return connectionCount(hub, userID) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Send(userID, model.Notification{Message: "hello"})

	assert.Eventually(t, func() bool {
		return connectionCount(hub, userID) == 0
	}, time.Second, 5*time.Millisecond)

	// The hub closed the channel exactly once.
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestHubSurvivesRedundantUnregister(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	slow := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- slow
	assert.Eventually(t, func() bool {
		return connectionCount(hub, userID) == 1
	}, time.Second, 5*time.Millisecond)

	// A stalled delivery drops the client, then its readPump exits and
	// unregisters it again. Neither path may close Send twice.
	hub.Send(userID, model.Notification{Message: "first"})
	hub.unregister <- slow

	// A later delivery to the same user is a no-op, and the Run goroutine
	// is still alive to serve fresh registrations.
	hub.Send(userID, model.Notification{Message: "second"})

	healthy := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	hub.register <- healthy
	assert.Eventually(t, func() bool {
		return connectionCount(hub, userID) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Send(userID, model.Notification{Message: "third"})
	select {
	case msg, open := <-healthy.Send:
		assert.True(t, open)
		assert.Contains(t, string(msg), "third")
	case <-time.After(time.Second):
		t.Fatal("delivery to healthy client never arrived")
	}
}

func TestHubBroadcastDropsOnlyStalledClients(t *testing.T) {
	hub := newTestHub()
	slowUser := uuid.New()
	fastUser := uuid.New()

	slow := &Client{Hub: hub, UserID: slowUser, Send: make(chan []byte)}
	fast := &Client{Hub: hub, UserID: fastUser, Send: make(chan []byte, 1)}
	hub.register <- slow
	hub.register <- fast
	assert.Eventually(t, func() bool {
		return connectionCount(hub, slowUser) == 1 && connectionCount(hub, fastUser) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Broadcast(model.Notification{Message: "to everyone"})

	assert.Eventually(t, func() bool {
		return connectionCount(hub, slowUser) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, connectionCount(hub, fastUser))

	msg, open := <-fast.Send
	assert.True(t, open)
	assert.Contains(t, string(msg), "to everyone")
}
