// File: sim/broadcaster_actor.go
package sim

import (
	"runtime/debug"
	"strings"
	"sync"

	"github.com/lguibr/bollywood"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// BroadcasterActor fans simulation updates out to subscribed clients.
type BroadcasterActor struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex // Protects the clients map
	log     *zap.SugaredLogger
	selfPID *bollywood.PID
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(log *zap.SugaredLogger) bollywood.Producer {
	return func() bollywood.Actor {
		return &BroadcasterActor{
			clients: make(map[*websocket.Conn]bool),
			log:     log,
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("panic recovered in BroadcasterActor.Receive", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:

	case AddClient:
		if msg.Conn != nil {
			a.mu.Lock()
			a.clients[msg.Conn] = true
			a.mu.Unlock()
		}

	case RemoveClient:
		if msg.Conn != nil {
			a.mu.Lock()
			delete(a.clients, msg.Conn)
			a.mu.Unlock()
		}

	case BroadcastMessage:
		a.broadcastPayload(msg.Payload)

	case bollywood.Stopping:
		a.closeAllConnections()

	case bollywood.Stopped:

	default:
		a.log.Warnw("BroadcasterActor received unknown message", "type", msg)
	}
}

// broadcastPayload sends one payload to every client, pruning connections
// that fail.
func (a *BroadcasterActor) broadcastPayload(payload interface{}) {
	a.mu.RLock()
	clientsToSend := make([]*websocket.Conn, 0, len(a.clients))
	for conn := range a.clients {
		clientsToSend = append(clientsToSend, conn)
	}
	a.mu.RUnlock()

	if len(clientsToSend) == 0 {
		return
	}

	var disconnected []*websocket.Conn
	for _, ws := range clientsToSend {
		if err := websocket.JSON.Send(ws, payload); err != nil {
			if !isClosedConnError(err) {
				a.log.Debugw("broadcast send failed", "error", err)
			}
			disconnected = append(disconnected, ws)
		}
	}

	if len(disconnected) > 0 {
		a.mu.Lock()
		for _, ws := range disconnected {
			delete(a.clients, ws)
			_ = ws.Close()
		}
		a.mu.Unlock()
	}
}

// closeAllConnections drops every client during shutdown.
func (a *BroadcasterActor) closeAllConnections() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for conn := range a.clients {
		_ = conn.Close()
	}
	a.clients = make(map[*websocket.Conn]bool)
}

// isClosedConnError matches the error strings x/net/websocket surfaces for
// connections the peer has already torn down.
func isClosedConnError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "EOF")
}
