// File: server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lguibr/bollywood"
	"golang.org/x/net/websocket"

	"github.com/lguibr/maglab/sim"
)

// HandleSubscribe spawns a ConnectionActor for the connection and blocks
// until the actor finishes; returning would close the websocket under it.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		sessionID := uuid.NewString()
		s.log.Infow("client subscribed",
			"session", sessionID, "remote", ws.Request().RemoteAddr)

		done := make(chan struct{})
		pid := s.engine.Spawn(bollywood.NewProps(NewConnectionActorProducer(ConnectionActorArgs{
			Conn:           ws,
			Engine:         s.engine,
			SimPID:         s.simPID,
			BroadcasterPID: s.broadcasterPID,
			Log:            s.log,
			SessionID:      sessionID,
			Done:           done,
		})))
		if pid == nil {
			s.log.Warnw("failed to spawn connection actor", "session", sessionID)
			_ = ws.Close()
			return
		}

		<-done
		s.log.Infow("client disconnected", "session", sessionID)
	}
}

// translate maps a client envelope onto the SimActor message it stands for.
func translate(cmd sim.ClientCommand) (interface{}, bool) {
	switch cmd.Type {
	case "drag":
		return sim.MagnetDragMessage{Proposed: sim.Displacement{Dx: cmd.Dx, Dy: cmd.Dy}}, true

	case "nudge":
		direction, ok := sim.ParseNudgeDirection(cmd.Direction)
		if !ok {
			return nil, false
		}
		return sim.MagnetNudgeMessage{Direction: direction}, true

	case "zone":
		kind, ok := sim.ParseZoneKind(cmd.Zone)
		if !ok {
			return nil, false
		}
		return sim.SetZoneEnabledMessage{Kind: kind, Enabled: cmd.Enabled}, true

	case "reset":
		return sim.ResetMagnetMessage{}, true
	}
	return nil, false
}

// stateQuery is a one-shot actor that relays a snapshot request to the
// SimActor and hands the reply to the waiting HTTP handler. The actor
// engine has no built-in request/reply, so a throwaway actor serves as the
// sender PID the reply lands on.
type stateQuery struct {
	simPID *bollywood.PID
	out    chan<- sim.SimState
}

func (a *stateQuery) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		ctx.Engine().Send(a.simPID, sim.GetStateRequest{}, ctx.Self())
	case sim.StateResponse:
		select {
		case a.out <- msg.State:
		default: // handler already gave up
		}
		ctx.Engine().Stop(ctx.Self())
	}
}

// askState queries the SimActor through a stateQuery actor, failing after
// the timeout so a wedged mailbox cannot hang the HTTP handler.
func (s *Server) askState(timeout time.Duration) (sim.SimState, error) {
	out := make(chan sim.SimState, 1)
	pid := s.engine.Spawn(bollywood.NewProps(func() bollywood.Actor {
		return &stateQuery{simPID: s.simPID, out: out}
	}))
	if pid == nil {
		return sim.SimState{}, errors.New("state query actor failed to spawn")
	}

	select {
	case state := <-out:
		return state, nil
	case <-time.After(timeout):
		s.engine.Stop(pid)
		return sim.SimState{}, errors.New("state query timed out")
	}
}

// HandleState serves the current simulation snapshot over HTTP GET.
func (s *Server) HandleState() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.askState(stateQueryTimeout)
		if err != nil {
			http.Error(w, "simulation unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			s.log.Warnw("failed to write state response", "error", err)
		}
	}
}

// isClosedConnError matches errors from connections the peer already closed.
func isClosedConnError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "closed") ||
		strings.Contains(errStr, "connection reset by peer")
}
