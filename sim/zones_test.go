// File: sim/zones_test.go
package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/maglab/utils"
)

func TestZoneKind_RoundTrip(t *testing.T) {
	for _, kind := range []ZoneKind{ZonePickupCoil, ZoneElectromagnet} {
		parsed, ok := ParseZoneKind(kind.String())
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}

	_, ok := ParseZoneKind("solenoid")
	assert.False(t, ok)

	assert.Panics(t, func() { _ = ZoneKind(99).String() })
}

func TestZoneState_ActiveRebuiltPerCall(t *testing.T) {
	state := NewZoneState(utils.DefaultConfig())

	zones := state.Active()
	assert.Len(t, zones, 2)
	assert.Equal(t, ZonePickupCoil, zones[0].Kind, "pickup coil first fixes the tie-break order")
	assert.Equal(t, ZoneElectromagnet, zones[1].Kind)

	state.SetEnabled(ZonePickupCoil, false)
	zones = state.Active()
	assert.Len(t, zones, 1)
	assert.Equal(t, ZoneElectromagnet, zones[0].Kind)

	state.SetEnabled(ZonePickupCoil, true)
	assert.Len(t, state.Active(), 2)

	state.SetEnabled(ZonePickupCoil, false)
	state.SetEnabled(ZoneElectromagnet, false)
	assert.Empty(t, state.Active())
}

func TestZoneState_GeometryFromConfig(t *testing.T) {
	cfg := utils.DefaultConfig()
	state := NewZoneState(cfg)

	spec := cfg.PickupCoilZone
	assert.Equal(t, NewRect(spec.X, spec.Y, spec.X+spec.Width, spec.Y+spec.Height), state.PickupCoil)
	assert.True(t, state.Enabled(ZonePickupCoil))
	assert.True(t, state.Enabled(ZoneElectromagnet))
}

// A hidden coil must stop constraining the magnet on the very next move.
func TestZoneToggle_AffectsSolver(t *testing.T) {
	state := ZoneState{
		PickupCoil:      notchZone.Bounds,
		Electromagnet:   NewRect(30, 140, 80, 170),
		PickupCoilOn:    true,
		ElectromagnetOn: true,
	}
	start := moverAt(100, 100)
	rise := Displacement{Dy: -85}

	blocked := Solve(start, rise, state.Active(), testBounds)
	assert.Equal(t, Displacement{Dy: -75}, blocked)

	state.SetEnabled(ZonePickupCoil, false)
	free := Solve(start, rise, state.Active(), testBounds)
	assert.Equal(t, rise, free)
}
