// File: sim/solver.go
package sim

import (
	"fmt"

	"github.com/lguibr/maglab/utils"
)

// Solve computes the largest portion of a proposed displacement that the
// magnet can travel without its footprint entering any active exclusion
// zone or leaving the world bounds.
//
// The proposal is clamped to the world bounds first, then each zone clips
// the clamped displacement independently per axis: the mover's leading
// edge is swept toward the zone's facing edge, and if the edges would meet
// within the move, the axis component is cut to exactly the starting gap.
// Across zones the most restrictive result wins. The clamp must come
// first: the zone test projects the leading edge by the other axis
// component, and that projection is only sound when the component it uses
// is the one actually travelled. The two axes are never combined into a
// diagonal sweep; in rare corner geometries this stops the magnet slightly
// earlier than a full swept test would, but it can never let it penetrate.
//
// Clamping and clipping only ever shrink a component toward zero, so the
// returned displacement keeps the sign of the proposal on both axes and
// the footprint stays inside bounds. The footprint is assumed to start
// inside bounds.
func Solve(footprint Rect, proposed Displacement, zones []Zone, bounds Rect) Displacement {
	if proposed.IsZero() {
		return proposed
	}

	clamped := clampToBounds(footprint, proposed, bounds)

	allowed := clamped
	for _, zone := range zones {
		clipped := clipAgainstZone(footprint, clamped, zone.Bounds)
		allowed.Dx = mostRestrictive(allowed.Dx, clipped.Dx)
		allowed.Dy = mostRestrictive(allowed.Dy, clipped.Dy)
	}

	return allowed
}

// clipAgainstZone clips the proposed displacement against a single zone.
// Axes are handled symmetrically: the horizontal component sweeps the
// mover's vertical leading edge toward the zone's facing vertical edge,
// and vice versa.
func clipAgainstZone(footprint Rect, proposed Displacement, zone Rect) Displacement {
	mover := LeadingEdges(footprint, proposed, PerspectiveInternal)
	facing := LeadingEdges(zone, proposed, PerspectiveExternal)

	allowed := proposed

	if proposed.Dx != 0 {
		gap := facing.Vertical.Pos - mover.Vertical.Pos
		if closable(proposed.Dx, gap) {
			t := closingFraction(gap, proposed.Dx)
			projected := mover.Vertical.shifted(t * proposed.Dy)
			if projected.Overlaps(facing.Vertical) {
				allowed.Dx = gap
			}
		}
	}

	if proposed.Dy != 0 {
		gap := facing.Horizontal.Pos - mover.Horizontal.Pos
		if closable(proposed.Dy, gap) {
			t := closingFraction(gap, proposed.Dy)
			projected := mover.Horizontal.shifted(t * proposed.Dx)
			if projected.Overlaps(facing.Horizontal) {
				allowed.Dy = gap
			}
		}
	}

	return allowed
}

// closable reports whether a displacement component could close the signed
// gap between the leading and facing edges: the component must point at the
// gap (or the edges must already touch) and be at least as long as it.
func closable(delta, gap float64) bool {
	if gap == 0 {
		return true
	}
	if !utils.SameSign(delta, gap) {
		return false
	}
	return utils.Abs(delta) >= utils.Abs(gap)
}

// closingFraction returns the fraction of the displacement consumed before
// the edges meet. closable has already established |gap| <= |delta| with
// matching signs, so the result must land in [0, 1]; anything else is a
// contract violation between the two checks.
func closingFraction(gap, delta float64) float64 {
	t := gap / delta
	if t < 0 || t > 1 {
		panic(fmt.Sprintf("sim: closing fraction %g outside [0,1] (gap=%g delta=%g)", t, gap, delta))
	}
	return t
}

// mostRestrictive picks the smaller-magnitude of two allowed components.
// Both derive from the same proposal, so they share a sign (or are zero).
func mostRestrictive(a, b float64) float64 {
	if utils.Abs(b) < utils.Abs(a) {
		return b
	}
	return a
}

// clampToBounds cuts each displacement component so the footprint's leading
// edge lands exactly on the world boundary instead of beyond it. With the
// footprint starting inside bounds each axis range brackets zero, so
// clamping can only shrink a component, never flip it.
func clampToBounds(footprint Rect, d Displacement, bounds Rect) Displacement {
	d.Dx = utils.Clamp(d.Dx, bounds.MinX-footprint.MinX, bounds.MaxX-footprint.MaxX)
	d.Dy = utils.Clamp(d.Dy, bounds.MinY-footprint.MinY, bounds.MaxY-footprint.MaxY)
	return d
}
