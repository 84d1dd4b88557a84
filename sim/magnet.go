// File: sim/magnet.go
package sim

import "github.com/lguibr/maglab/utils"

// Magnet is the draggable bar magnet. Position is the center of its
// footprint; the dimensions are fixed for the lifetime of the object.
type Magnet struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	homeX float64
	homeY float64
}

// NewMagnet places a magnet at its configured home position.
func NewMagnet(cfg utils.Config) *Magnet {
	return &Magnet{
		X:      cfg.MagnetHomeX,
		Y:      cfg.MagnetHomeY,
		Width:  cfg.MagnetWidth,
		Height: cfg.MagnetHeight,
		homeX:  cfg.MagnetHomeX,
		homeY:  cfg.MagnetHomeY,
	}
}

// Footprint returns the rectangle currently occupied by the magnet.
func (m *Magnet) Footprint() Rect {
	return RectFromCenter(m.X, m.Y, m.Width, m.Height)
}

// ApplyDisplacement moves the magnet by an already-clipped displacement.
func (m *Magnet) ApplyDisplacement(d Displacement) {
	m.X += d.Dx
	m.Y += d.Dy
}

// ReturnHome teleports the magnet back to its home position.
func (m *Magnet) ReturnHome() {
	m.X = m.homeX
	m.Y = m.homeY
}

// NudgeDirection is a keyboard step direction. It is a closed set: every
// switch over it handles all four constants.
type NudgeDirection int

const (
	NudgeLeft NudgeDirection = iota
	NudgeRight
	NudgeUp
	NudgeDown
)

// Displacement converts a nudge into a proposed displacement of the given
// step size. Y grows downward, matching the canvas coordinate system.
func (d NudgeDirection) Displacement(step float64) Displacement {
	switch d {
	case NudgeLeft:
		return Displacement{Dx: -step}
	case NudgeRight:
		return Displacement{Dx: step}
	case NudgeUp:
		return Displacement{Dy: -step}
	case NudgeDown:
		return Displacement{Dy: step}
	default:
		panic("sim: unknown nudge direction")
	}
}

// String returns the wire name for the direction.
func (d NudgeDirection) String() string {
	switch d {
	case NudgeLeft:
		return "left"
	case NudgeRight:
		return "right"
	case NudgeUp:
		return "up"
	case NudgeDown:
		return "down"
	default:
		panic("sim: unknown nudge direction")
	}
}

// ParseNudgeDirection maps the browser's arrow-key names (and the short
// wire names) to a NudgeDirection.
func ParseNudgeDirection(name string) (NudgeDirection, bool) {
	switch name {
	case "ArrowLeft", "left":
		return NudgeLeft, true
	case "ArrowRight", "right":
		return NudgeRight, true
	case "ArrowUp", "up":
		return NudgeUp, true
	case "ArrowDown", "down":
		return NudgeDown, true
	}
	return 0, false
}
