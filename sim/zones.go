// File: sim/zones.go
package sim

import "github.com/lguibr/maglab/utils"

// ZoneKind identifies which coil an exclusion zone belongs to. It is a
// closed set: every switch over it handles all constants.
type ZoneKind int

const (
	ZonePickupCoil ZoneKind = iota
	ZoneElectromagnet
)

// String returns the wire name for the zone kind.
func (k ZoneKind) String() string {
	switch k {
	case ZonePickupCoil:
		return "pickupCoil"
	case ZoneElectromagnet:
		return "electromagnet"
	default:
		panic("sim: unknown zone kind")
	}
}

// ParseZoneKind maps a wire name back to a ZoneKind.
func ParseZoneKind(name string) (ZoneKind, bool) {
	switch name {
	case "pickupCoil":
		return ZonePickupCoil, true
	case "electromagnet":
		return ZoneElectromagnet, true
	}
	return 0, false
}

// Zone is one active exclusion rectangle tagged with the coil it covers.
// The tag only selects which contact notification to raise; the geometry
// does not depend on it.
type Zone struct {
	Kind   ZoneKind
	Bounds Rect
}

// ZoneState holds the static geometry of both exclusion zones together with
// their enabled flags. The flags flip when the corresponding coil is shown
// or hidden in the UI; the rectangles themselves never change at runtime.
type ZoneState struct {
	PickupCoil      Rect
	Electromagnet   Rect
	PickupCoilOn    bool
	ElectromagnetOn bool
}

// NewZoneState builds the zone layout from config, with both coils shown.
func NewZoneState(cfg utils.Config) ZoneState {
	return ZoneState{
		PickupCoil:      rectFromSpec(cfg.PickupCoilZone),
		Electromagnet:   rectFromSpec(cfg.ElectromagnetZone),
		PickupCoilOn:    true,
		ElectromagnetOn: true,
	}
}

func rectFromSpec(spec utils.RectSpec) Rect {
	return NewRect(spec.X, spec.Y, spec.X+spec.Width, spec.Y+spec.Height)
}

// Active returns the current obstacle list. It is rebuilt on every call so
// the solver and tracker always see the live zone membership; nothing is
// cached. The pickup coil comes first, which fixes the tie-break order when
// a single move reaches both zones at once.
func (s ZoneState) Active() []Zone {
	zones := make([]Zone, 0, 2)
	if s.PickupCoilOn {
		zones = append(zones, Zone{Kind: ZonePickupCoil, Bounds: s.PickupCoil})
	}
	if s.ElectromagnetOn {
		zones = append(zones, Zone{Kind: ZoneElectromagnet, Bounds: s.Electromagnet})
	}
	return zones
}

// SetEnabled flips one zone's membership in the active set.
func (s *ZoneState) SetEnabled(kind ZoneKind, enabled bool) {
	switch kind {
	case ZonePickupCoil:
		s.PickupCoilOn = enabled
	case ZoneElectromagnet:
		s.ElectromagnetOn = enabled
	default:
		panic("sim: unknown zone kind")
	}
}

// Enabled reports whether one zone is currently part of the active set.
func (s ZoneState) Enabled(kind ZoneKind) bool {
	switch kind {
	case ZonePickupCoil:
		return s.PickupCoilOn
	case ZoneElectromagnet:
		return s.ElectromagnetOn
	default:
		panic("sim: unknown zone kind")
	}
}
