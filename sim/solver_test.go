// File: sim/solver_test.go
package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test geometry shared across solver tests: a 200x200 world with a 20-wide
// notch hanging from the top edge, and a 10x10 mover.
var (
	testBounds = NewRect(0, 0, 200, 200)
	notchZone  = Zone{Kind: ZonePickupCoil, Bounds: NewRect(90, 0, 110, 20)}
)

func moverAt(cx, cy float64) Rect {
	return RectFromCenter(cx, cy, 10, 10)
}

func TestSolve_ZeroDisplacement(t *testing.T) {
	got := Solve(moverAt(60, 100), Displacement{}, []Zone{notchZone}, testBounds)
	assert.Equal(t, Displacement{}, got)
}

func TestSolve_NoObstaclesPassThrough(t *testing.T) {
	testCases := []struct {
		name     string
		start    Rect
		proposed Displacement
		expected Displacement
	}{
		{"clear move unchanged", moverAt(60, 100), Displacement{Dx: 40, Dy: -20}, Displacement{Dx: 40, Dy: -20}},
		{"clamped at right wall", moverAt(190, 100), Displacement{Dx: 30, Dy: 0}, Displacement{Dx: 5, Dy: 0}},
		{"clamped at top wall", moverAt(60, 25), Displacement{Dx: 0, Dy: -30}, Displacement{Dx: 0, Dy: -20}},
		{"clamped on both axes", moverAt(190, 190), Displacement{Dx: 30, Dy: 30}, Displacement{Dx: 5, Dy: 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Solve(tc.start, tc.proposed, nil, testBounds)
			assert.Equal(t, tc.expected, got)
		})
	}
}

// Notch scenario: sliding right under the notch is
// unrestricted, then moving up is cut so the mover's top edge lands exactly
// on the notch's bottom edge.
func TestSolve_NotchScenario(t *testing.T) {
	zones := []Zone{notchZone}

	// Horizontal approach: the projected vertical edge never enters the
	// notch's Y extent, so the full displacement passes.
	first := Solve(moverAt(60, 100), Displacement{Dx: 40}, zones, testBounds)
	assert.Equal(t, Displacement{Dx: 40}, first)

	// Vertical rise: the gap from the mover's top edge (95) to the notch's
	// bottom edge (20) is 75, so dy=-85 is cut to -75.
	second := Solve(moverAt(100, 100), Displacement{Dy: -85}, zones, testBounds)
	assert.Equal(t, Displacement{Dy: -75}, second)

	after := moverAt(100, 100).Translated(second)
	assert.Equal(t, 20.0, after.MinY, "top edge must land exactly on the notch's bottom edge")
}

func TestSolve_TouchExactlyAllowed(t *testing.T) {
	// dy=-75 reaches the notch's bottom edge exactly; it must pass
	// unreduced.
	got := Solve(moverAt(100, 100), Displacement{Dy: -75}, []Zone{notchZone}, testBounds)
	assert.Equal(t, Displacement{Dy: -75}, got)
}

func TestSolve_IdempotentAtNotch(t *testing.T) {
	// Resting against the notch (gap 0), the same upward proposal returns
	// zero on Y every time.
	resting := moverAt(100, 25)
	for i := 0; i < 3; i++ {
		got := Solve(resting, Displacement{Dy: -30}, []Zone{notchZone}, testBounds)
		assert.Equal(t, Displacement{}, got, "iteration %d", i)
	}
}

func TestSolve_MoveAwayFromTouchingZoneUnrestricted(t *testing.T) {
	// Touching the notch from below, moving down is free.
	got := Solve(moverAt(100, 25), Displacement{Dy: 30}, []Zone{notchZone}, testBounds)
	assert.Equal(t, Displacement{Dy: 30}, got)

	// Touching a zone's right side, moving further right is free.
	side := Zone{Kind: ZoneElectromagnet, Bounds: NewRect(20, 95, 40, 105)}
	got = Solve(moverAt(45, 100), Displacement{Dx: 15}, []Zone{side}, testBounds)
	assert.Equal(t, Displacement{Dx: 15}, got)
}

func TestSolve_BoundaryClampFeedsZoneClip(t *testing.T) {
	// A huge upward component gets clamped to -10 by the world's top edge,
	// which drags the projected x-meeting point back into the notch's
	// extent: dx must be cut to the 5-unit gap, not pass in full. Clipping
	// against the unclamped proposal would let the mover dive through the
	// notch's interior.
	start := moverAt(80, 15) // [75,85]x[10,20], 5 left of the notch
	got := Solve(start, Displacement{Dx: 30, Dy: -200}, []Zone{notchZone}, testBounds)
	assert.Equal(t, Displacement{Dx: 5, Dy: -10}, got)

	after := start.Translated(got)
	assert.Equal(t, 90.0, after.MaxX, "right edge must land exactly on the notch's left edge")
	assert.Equal(t, 0.0, after.MinY, "top edge must land exactly on the world's top edge")
	assert.False(t, after.MinX < notchZone.Bounds.MaxX && after.MaxX > notchZone.Bounds.MinX &&
		after.MinY < notchZone.Bounds.MaxY && after.MaxY > notchZone.Bounds.MinY,
		"footprint must not overlap the notch interior")
}

func TestSolve_IdempotentAtWall(t *testing.T) {
	resting := moverAt(195, 100) // right edge on the boundary
	for i := 0; i < 3; i++ {
		got := Solve(resting, Displacement{Dx: 10}, nil, testBounds)
		assert.Equal(t, Displacement{}, got, "iteration %d", i)
	}
}

func TestSolve_MostRestrictiveZoneWins(t *testing.T) {
	// Two walls ahead of a rightward move: the nearer one (gap 3) must win
	// over the farther one (gap 5).
	near := Zone{Kind: ZonePickupCoil, Bounds: NewRect(68, 90, 80, 110)}
	far := Zone{Kind: ZoneElectromagnet, Bounds: NewRect(70, 90, 82, 110)}

	got := Solve(moverAt(60, 100), Displacement{Dx: 20}, []Zone{far, near}, testBounds)
	assert.Equal(t, Displacement{Dx: 3}, got)
}

func TestSolve_IndependentAxes(t *testing.T) {
	// A diagonal proposal whose projected leading edge just grazes the
	// zone's corner: the X axis is clipped (conservative inclusive
	// overlap), the Y axis passes in full.
	zone := Zone{Kind: ZonePickupCoil, Bounds: NewRect(70, 50, 80, 60)}
	start := NewRect(50, 50, 60, 60)

	got := Solve(start, Displacement{Dx: 20, Dy: 20}, []Zone{zone}, testBounds)
	assert.Equal(t, Displacement{Dx: 10, Dy: 20}, got)

	after := start.Translated(got)
	assert.True(t, after.Inside(testBounds))
	assert.False(t, strictOverlap(after, zone.Bounds))
}

func TestSolve_NonExpansionAndNoPenetration(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	zones := []Zone{
		notchZone,
		{Kind: ZoneElectromagnet, Bounds: NewRect(30, 140, 80, 170)},
	}

	clearStart := func() Rect {
		for {
			f := moverAt(5+rng.Float64()*190, 5+rng.Float64()*190)
			if !f.Inside(testBounds) {
				continue
			}
			blocked := false
			for _, z := range zones {
				if f.Touches(z.Bounds) {
					blocked = true
					break
				}
			}
			if !blocked {
				return f
			}
		}
	}

	for i := 0; i < 500; i++ {
		start := clearStart()
		proposed := Displacement{
			Dx: (rng.Float64() - 0.5) * 300,
			Dy: (rng.Float64() - 0.5) * 300,
		}

		allowed := Solve(start, proposed, zones, testBounds)

		// Non-expansion: each component keeps its sign and never grows.
		require.LessOrEqual(t, abs(allowed.Dx), abs(proposed.Dx), "case %d: |dx| grew", i)
		require.LessOrEqual(t, abs(allowed.Dy), abs(proposed.Dy), "case %d: |dy| grew", i)
		require.False(t, allowed.Dx*proposed.Dx < 0, "case %d: dx flipped sign", i)
		require.False(t, allowed.Dy*proposed.Dy < 0, "case %d: dy flipped sign", i)

		// No penetration: the result stays inside the world and outside
		// every zone's interior.
		after := start.Translated(allowed)
		require.True(t, insideSlack(after, testBounds), "case %d: left bounds (start=%+v proposed=%+v)", i, start, proposed)
		for _, z := range zones {
			require.False(t, strictOverlap(after, z.Bounds),
				"case %d: penetrated %s (start=%+v proposed=%+v allowed=%+v)", i, z.Kind, start, proposed, allowed)
		}
	}
}

func TestClosingFraction_ContractViolationPanics(t *testing.T) {
	assert.Panics(t, func() { closingFraction(10, 5) })
	assert.Panics(t, func() { closingFraction(-5, 10) })
	assert.NotPanics(t, func() { closingFraction(5, 10) })
}

// floatSlack absorbs the one-ulp error of landing a clipped edge on its
// target via start+gap arithmetic.
const floatSlack = 1e-9

// strictOverlap reports interior intersection deeper than floatSlack,
// excluding edge contact.
func strictOverlap(a, b Rect) bool {
	return a.MinX < b.MaxX-floatSlack && a.MaxX > b.MinX+floatSlack &&
		a.MinY < b.MaxY-floatSlack && a.MaxY > b.MinY+floatSlack
}

// insideSlack is Rect.Inside with floatSlack tolerance on each edge.
func insideSlack(r, bounds Rect) bool {
	return r.MinX >= bounds.MinX-floatSlack && r.MaxX <= bounds.MaxX+floatSlack &&
		r.MinY >= bounds.MinY-floatSlack && r.MaxY <= bounds.MaxY+floatSlack
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
