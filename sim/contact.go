// File: sim/contact.go
package sim

// ContactReport describes the transitions caused by a single move.
// Boundary is set when the footprint went from strictly clear of a world
// edge to touching or exceeding it. ZoneHit is set when the footprint newly
// touches an active zone; Zone then names which one.
type ContactReport struct {
	Boundary bool
	Zone     ZoneKind
	ZoneHit  bool
}

// Any reports whether the move produced at least one transition.
func (r ContactReport) Any() bool {
	return r.Boundary || r.ZoneHit
}

// ContactTracker detects clear-to-touching transitions between consecutive
// magnet footprints. It retains exactly one previous footprint; until the
// first observation (and again after Reset) the baseline is unknown and no
// transitions are reported, which avoids spurious events from an undefined
// starting state.
//
// The tracker never clamps anything. It is called after Solve has already
// produced a penetration-free footprint, so "contact" here always means
// exactly touching, never overlapping.
type ContactTracker struct {
	prev  Rect
	known bool
}

// NewContactTracker creates a tracker with an unknown baseline.
func NewContactTracker() *ContactTracker {
	return &ContactTracker{}
}

// Observe compares the new footprint against the retained one, reports any
// transitions, and adopts the new footprint as the next baseline.
func (t *ContactTracker) Observe(next Rect, zones []Zone, bounds Rect) ContactReport {
	var report ContactReport

	if t.known {
		report.Boundary = boundaryTransition(t.prev, next, bounds)

		for _, zone := range zones {
			if next.Touches(zone.Bounds) && !t.prev.Touches(zone.Bounds) {
				// Multiple zones can only be reached in one move by a large
				// jump; the signal is cosmetic, so the first zone in
				// iteration order is reported and the rest skipped.
				report.Zone = zone.Kind
				report.ZoneHit = true
				break
			}
		}
	}

	t.prev = next
	t.known = true
	return report
}

// Reset discards the retained footprint. The next Observe call establishes
// a fresh baseline without reporting transitions.
func (t *ContactTracker) Reset() {
	t.known = false
}

// boundaryTransition checks the four world edges independently: a
// transition happens on an edge where the new footprint touches or exceeds
// it while the previous footprint was strictly clear.
func boundaryTransition(prev, next, bounds Rect) bool {
	return (next.MinX <= bounds.MinX && prev.MinX > bounds.MinX) ||
		(next.MaxX >= bounds.MaxX && prev.MaxX < bounds.MaxX) ||
		(next.MinY <= bounds.MinY && prev.MinY > bounds.MinY) ||
		(next.MaxY >= bounds.MaxY && prev.MaxY < bounds.MaxY)
}
