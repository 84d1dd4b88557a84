// File: sim/messages.go
package sim

import "golang.org/x/net/websocket"

// --- WebSocket Messages (Client -> Server) ---

// ClientCommand is the single envelope clients send. Type selects which of
// the remaining fields are meaningful.
type ClientCommand struct {
	Type      string  `json:"type"`      // "drag" | "nudge" | "zone" | "reset"
	Dx        float64 `json:"dx"`        // drag: proposed displacement
	Dy        float64 `json:"dy"`        //
	Direction string  `json:"direction"` // nudge: "ArrowLeft" etc.
	Zone      string  `json:"zone"`      // zone: "pickupCoil" | "electromagnet"
	Enabled   bool    `json:"enabled"`   // zone: new visibility
}

// --- WebSocket Messages (Server -> Client) ---

// ZoneStatus describes one exclusion zone in state snapshots.
type ZoneStatus struct {
	Kind    string `json:"kind"`
	Bounds  Rect   `json:"bounds"`
	Enabled bool   `json:"enabled"`
}

// SimState is the full snapshot sent to newly subscribed clients and
// served on the HTTP state endpoint.
type SimState struct {
	MessageType string       `json:"messageType"` // "simState"
	Bounds      Rect         `json:"bounds"`
	Magnet      Magnet       `json:"magnet"`
	Zones       []ZoneStatus `json:"zones"`
}

// MagnetUpdate carries the magnet's corrected position after a move.
type MagnetUpdate struct {
	MessageType string  `json:"messageType"` // "magnetUpdate"
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// ContactEvent signals a clear-to-touching transition. Zone is empty when
// only the boundary was contacted.
type ContactEvent struct {
	MessageType string `json:"messageType"` // "contactEvent"
	Boundary    bool   `json:"boundary"`
	Zone        string `json:"zone,omitempty"`
}

// ZoneUpdate signals that a zone was shown or hidden.
type ZoneUpdate struct {
	MessageType string `json:"messageType"` // "zoneUpdate"
	Zone        string `json:"zone"`
	Enabled     bool   `json:"enabled"`
}

// --- Actor Messages (Internal Communication) ---

// --- SimActor Messages ---

// MagnetDragMessage carries a pointer-drag displacement proposal.
type MagnetDragMessage struct {
	Proposed Displacement
}

// MagnetNudgeMessage carries a keyboard step proposal.
type MagnetNudgeMessage struct {
	Direction NudgeDirection
}

// SetZoneEnabledMessage toggles a zone's membership in the obstacle set.
type SetZoneEnabledMessage struct {
	Kind    ZoneKind
	Enabled bool
}

// ResetMagnetMessage returns the magnet home and clears the contact
// baseline, suppressing the next transition check.
type ResetMagnetMessage struct{}

// GetStateRequest asks the SimActor for a snapshot; the StateResponse
// reply goes to the message sender.
type GetStateRequest struct{}

// StateResponse is the reply to GetStateRequest.
type StateResponse struct {
	State SimState
}

// --- BroadcasterActor Messages ---

// AddClient tells the Broadcaster to start sending updates to a connection.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient tells the Broadcaster to stop sending updates to a connection.
type RemoveClient struct {
	Conn *websocket.Conn
}

// BroadcastMessage fans one payload out to every subscribed client.
type BroadcastMessage struct {
	Payload interface{}
}
