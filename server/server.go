// File: server/server.go
package server

import (
	"time"

	"github.com/lguibr/bollywood"
	"go.uber.org/zap"
)

// stateQueryTimeout bounds how long HTTP handlers wait for a SimActor reply.
const stateQueryTimeout = 50 * time.Millisecond

// Server routes websocket and HTTP traffic to the simulation actors.
type Server struct {
	engine         *bollywood.Engine
	simPID         *bollywood.PID
	broadcasterPID *bollywood.PID
	log            *zap.SugaredLogger
}

// NewServer wires a server to an already-spawned actor system.
func NewServer(engine *bollywood.Engine, simPID, broadcasterPID *bollywood.PID, log *zap.SugaredLogger) *Server {
	return &Server{
		engine:         engine,
		simPID:         simPID,
		broadcasterPID: broadcasterPID,
		log:            log,
	}
}
