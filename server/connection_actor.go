// File: server/connection_actor.go
package server

import (
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lguibr/bollywood"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/lguibr/maglab/sim"
)

var errReadLoopExited = errors.New("read loop exited")

// snapshotWait bounds how long a new connection waits for the initial
// state snapshot before giving up.
const snapshotWait = 500 * time.Millisecond

// snapshotTimeout fires when the SimActor does not answer the initial
// state query in time.
type snapshotTimeout struct{}

// clientCommandMsg carries one decoded client envelope from the read loop
// goroutine into the actor mailbox.
type clientCommandMsg struct {
	Cmd sim.ClientCommand
}

// ConnectionActor manages a single WebSocket connection lifecycle: it
// fetches the initial snapshot, registers the connection with the
// broadcaster, and forwards client commands to the SimActor until the
// connection dies.
type ConnectionActor struct {
	conn           *websocket.Conn
	engine         *bollywood.Engine
	simPID         *bollywood.PID
	broadcasterPID *bollywood.PID
	log            *zap.SugaredLogger
	sessionID      string

	selfPID        *bollywood.PID
	subscribed     bool
	reading        bool
	snapshotTimer  *time.Timer
	stopReadLoop   chan struct{}
	readLoopExited chan struct{}
	done           chan struct{}
	closeOnce      sync.Once
}

// ConnectionActorArgs holds arguments for creating the actor.
type ConnectionActorArgs struct {
	Conn           *websocket.Conn
	Engine         *bollywood.Engine
	SimPID         *bollywood.PID
	BroadcasterPID *bollywood.PID
	Log            *zap.SugaredLogger
	SessionID      string
	Done           chan struct{}
}

// NewConnectionActorProducer creates a producer for ConnectionActor.
func NewConnectionActorProducer(args ConnectionActorArgs) bollywood.Producer {
	return func() bollywood.Actor {
		return &ConnectionActor{
			conn:           args.Conn,
			engine:         args.Engine,
			simPID:         args.SimPID,
			broadcasterPID: args.BroadcasterPID,
			log:            args.Log,
			sessionID:      args.SessionID,
			stopReadLoop:   make(chan struct{}),
			readLoopExited: make(chan struct{}),
			done:           args.Done,
		}
	}
}

// Receive handles messages for the ConnectionActor.
func (a *ConnectionActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("panic recovered in ConnectionActor.Receive",
				"session", a.sessionID, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.engine.Send(a.simPID, sim.GetStateRequest{}, a.selfPID)
		a.snapshotTimer = time.AfterFunc(snapshotWait, func() {
			a.engine.Send(a.selfPID, snapshotTimeout{}, nil)
		})

	case sim.StateResponse:
		if a.subscribed {
			return
		}
		if a.snapshotTimer != nil {
			a.snapshotTimer.Stop()
		}
		if err := websocket.JSON.Send(a.conn, msg.State); err != nil {
			a.log.Warnw("failed to send initial state",
				"session", a.sessionID, "error", err)
			a.cleanup(err)
			return
		}
		a.subscribed = true
		a.engine.Send(a.broadcasterPID, sim.AddClient{Conn: a.conn}, a.selfPID)
		// Start reading only after the snapshot went out so the client never
		// sees an update before its baseline.
		a.reading = true
		go a.readLoop(a.engine, a.selfPID)

	case snapshotTimeout:
		if !a.subscribed {
			a.log.Warnw("timed out waiting for state snapshot", "session", a.sessionID)
			a.cleanup(errors.New("snapshot timeout"))
		}

	case clientCommandMsg:
		fwd, ok := translate(msg.Cmd)
		if !ok {
			a.log.Debugw("dropping unrecognized command",
				"session", a.sessionID, "type", msg.Cmd.Type)
			return
		}
		a.engine.Send(a.simPID, fwd, a.selfPID)

	case error:
		if !errors.Is(msg, errReadLoopExited) && !isClosedConnError(msg) {
			a.log.Warnw("connection error", "session", a.sessionID, "error", msg)
		}
		a.cleanup(msg)

	case bollywood.Stopping:
		if a.snapshotTimer != nil {
			a.snapshotTimer.Stop()
		}
		a.signalAndWaitForReadLoop()
		a.performCleanupActions()

	case bollywood.Stopped:
		a.closeOnce.Do(func() {
			if a.done != nil {
				close(a.done)
				a.done = nil
			}
		})

	default:
		a.log.Warnw("ConnectionActor received unknown message",
			"session", a.sessionID, "type", msg)
	}
}

// readLoop decodes client command envelopes off the connection and feeds
// them through the mailbox, so all state lives on the actor goroutine.
func (a *ConnectionActor) readLoop(engine *bollywood.Engine, selfPID *bollywood.PID) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("panic recovered in ConnectionActor.readLoop",
				"session", a.sessionID, "panic", r, "stack", string(debug.Stack()))
		}
		close(a.readLoopExited)
		engine.Send(selfPID, errReadLoopExited, nil)
	}()

	for {
		select {
		case <-a.stopReadLoop:
			return
		default:
		}

		var cmd sim.ClientCommand
		if err := websocket.JSON.Receive(a.conn, &cmd); err != nil {
			return
		}
		engine.Send(selfPID, clientCommandMsg{Cmd: cmd}, nil)
	}
}

// signalAndWaitForReadLoop tells the readLoop goroutine to exit and waits
// for confirmation. Closing the connection unblocks a pending Receive.
func (a *ConnectionActor) signalAndWaitForReadLoop() {
	select {
	case <-a.stopReadLoop:
		return
	default:
		close(a.stopReadLoop)
	}

	if a.conn != nil {
		_ = a.conn.Close()
	}

	if !a.reading {
		return
	}
	select {
	case <-a.readLoopExited:
	case <-time.After(2 * time.Second):
		a.log.Warnw("timeout waiting for read loop to exit", "session", a.sessionID)
	}
}

// cleanup tears the connection down and stops the actor.
func (a *ConnectionActor) cleanup(reason error) {
	a.log.Debugw("closing connection", "session", a.sessionID, "reason", reason)
	a.signalAndWaitForReadLoop()
	a.performCleanupActions()
	if a.selfPID != nil {
		a.engine.Stop(a.selfPID)
	}
}

// performCleanupActions unsubscribes from the broadcaster and releases the
// connection.
func (a *ConnectionActor) performCleanupActions() {
	if a.subscribed && a.conn != nil {
		a.engine.Send(a.broadcasterPID, sim.RemoveClient{Conn: a.conn}, a.selfPID)
	}
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
	a.subscribed = false
}
