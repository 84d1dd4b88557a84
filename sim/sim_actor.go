// File: sim/sim_actor.go
package sim

import (
	"runtime/debug"
	"time"

	"github.com/lguibr/bollywood"
	"go.uber.org/zap"

	"github.com/lguibr/maglab/utils"
)

// snapshotTick drives the periodic full-state broadcast that keeps late or
// lossy clients in sync.
type snapshotTick struct{}

// SimActor owns the authoritative simulation state: the magnet's position,
// the zone visibility flags, and the contact baseline. All mutation flows
// through its mailbox, so the geometry core is only ever called from one
// goroutine. Every accepted move runs the same pipeline: solve the proposed
// displacement, apply the allowed part, observe contact transitions,
// broadcast.
type SimActor struct {
	cfg     utils.Config
	log     *zap.SugaredLogger
	magnet  *Magnet
	zones   ZoneState
	bounds  Rect
	tracker *ContactTracker

	broadcasterPID *bollywood.PID
	selfPID        *bollywood.PID
	stopTicker     chan struct{}
}

// NewSimActorProducer creates a producer for the SimActor.
func NewSimActorProducer(cfg utils.Config, broadcasterPID *bollywood.PID, log *zap.SugaredLogger) bollywood.Producer {
	return func() bollywood.Actor {
		return &SimActor{
			cfg:            cfg,
			log:            log,
			magnet:         NewMagnet(cfg),
			zones:          NewZoneState(cfg),
			bounds:         NewRect(0, 0, cfg.WorldWidth, cfg.WorldHeight),
			tracker:        NewContactTracker(),
			broadcasterPID: broadcasterPID,
		}
	}
}

// Receive is the main message handler for the SimActor.
func (a *SimActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("panic recovered in SimActor.Receive", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		// Establish the contact baseline from the starting footprint so the
		// first real move can report transitions.
		a.tracker.Observe(a.magnet.Footprint(), a.zones.Active(), a.bounds)
		if a.cfg.BroadcastPeriod > 0 {
			a.stopTicker = make(chan struct{})
			go a.runSnapshotTicker(ctx.Engine(), a.stopTicker)
		}
		a.log.Infow("simulation started",
			"magnetX", a.magnet.X, "magnetY", a.magnet.Y,
			"worldWidth", a.cfg.WorldWidth, "worldHeight", a.cfg.WorldHeight)

	case MagnetDragMessage:
		a.applyMove(ctx, msg.Proposed)

	case MagnetNudgeMessage:
		a.applyMove(ctx, msg.Direction.Displacement(a.cfg.NudgeStep))

	case SetZoneEnabledMessage:
		if a.zones.Enabled(msg.Kind) == msg.Enabled {
			return
		}
		a.zones.SetEnabled(msg.Kind, msg.Enabled)
		a.log.Debugw("zone toggled", "zone", msg.Kind.String(), "enabled", msg.Enabled)
		a.broadcast(ctx, ZoneUpdate{
			MessageType: "zoneUpdate",
			Zone:        msg.Kind.String(),
			Enabled:     msg.Enabled,
		})

	case ResetMagnetMessage:
		a.magnet.ReturnHome()
		a.tracker.Reset()
		a.broadcast(ctx, MagnetUpdate{MessageType: "magnetUpdate", X: a.magnet.X, Y: a.magnet.Y})

	case GetStateRequest:
		if sender := ctx.Sender(); sender != nil {
			ctx.Engine().Send(sender, StateResponse{State: a.snapshot()}, a.selfPID)
		}

	case snapshotTick:
		a.broadcast(ctx, a.snapshot())

	case bollywood.Stopping:
		if a.stopTicker != nil {
			close(a.stopTicker)
			a.stopTicker = nil
		}
		a.log.Info("simulation stopping")

	case bollywood.Stopped:

	default:
		a.log.Warnw("SimActor received unknown message", "type", msg)
	}
}

// applyMove runs one proposed displacement through the solver/tracker
// pipeline and broadcasts the outcome.
func (a *SimActor) applyMove(ctx bollywood.Context, proposed Displacement) {
	zones := a.zones.Active()

	allowed := Solve(a.magnet.Footprint(), proposed, zones, a.bounds)
	a.magnet.ApplyDisplacement(allowed)

	report := a.tracker.Observe(a.magnet.Footprint(), zones, a.bounds)

	a.broadcast(ctx, MagnetUpdate{MessageType: "magnetUpdate", X: a.magnet.X, Y: a.magnet.Y})

	if report.Any() {
		event := ContactEvent{MessageType: "contactEvent", Boundary: report.Boundary}
		if report.ZoneHit {
			event.Zone = report.Zone.String()
		}
		a.broadcast(ctx, event)
	}
}

// runSnapshotTicker sends a snapshotTick through the mailbox on every period
// so the broadcast itself still happens on the actor goroutine.
func (a *SimActor) runSnapshotTicker(engine *bollywood.Engine, stop <-chan struct{}) {
	ticker := time.NewTicker(a.cfg.BroadcastPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			engine.Send(a.selfPID, snapshotTick{}, a.selfPID)
		case <-stop:
			return
		}
	}
}

// broadcast forwards a payload to the BroadcasterActor.
func (a *SimActor) broadcast(ctx bollywood.Context, payload interface{}) {
	if a.broadcasterPID != nil {
		ctx.Engine().Send(a.broadcasterPID, BroadcastMessage{Payload: payload}, a.selfPID)
	}
}

// snapshot assembles the full state message.
func (a *SimActor) snapshot() SimState {
	return SimState{
		MessageType: "simState",
		Bounds:      a.bounds,
		Magnet:      *a.magnet,
		Zones: []ZoneStatus{
			{Kind: ZonePickupCoil.String(), Bounds: a.zones.PickupCoil, Enabled: a.zones.PickupCoilOn},
			{Kind: ZoneElectromagnet.String(), Bounds: a.zones.Electromagnet, Enabled: a.zones.ElectromagnetOn},
		},
	}
}
