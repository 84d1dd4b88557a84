// File: sim/geometry.go
package sim

// Rect is an immutable axis-aligned rectangle in world coordinates.
// It represents either the magnet's footprint, an exclusion zone, or the
// world bounds.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// NewRect builds a Rect from its min/max corners.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// RectFromCenter builds a Rect from a center point and full dimensions.
func RectFromCenter(cx, cy, width, height float64) Rect {
	return Rect{
		MinX: cx - width/2,
		MinY: cy - height/2,
		MaxX: cx + width/2,
		MaxY: cy + height/2,
	}
}

func (r Rect) Width() float64   { return r.MaxX - r.MinX }
func (r Rect) Height() float64  { return r.MaxY - r.MinY }
func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }
func (r Rect) CenterY() float64 { return (r.MinY + r.MaxY) / 2 }

// Translated returns a copy of r moved by d.
func (r Rect) Translated(d Displacement) Rect {
	return Rect{
		MinX: r.MinX + d.Dx,
		MinY: r.MinY + d.Dy,
		MaxX: r.MaxX + d.Dx,
		MaxY: r.MaxY + d.Dy,
	}
}

// Touches reports whether r and o intersect, counting shared edges as
// contact. The solver guarantees the magnet never overlaps a zone's
// interior, so for a post-move footprint a positive result means the two
// rectangles are exactly touching.
func (r Rect) Touches(o Rect) bool {
	return r.MinX <= o.MaxX && r.MaxX >= o.MinX &&
		r.MinY <= o.MaxY && r.MaxY >= o.MinY
}

// Inside reports whether r lies entirely within bounds. Touching the
// boundary edges still counts as inside.
func (r Rect) Inside(bounds Rect) bool {
	return r.MinX >= bounds.MinX && r.MaxX <= bounds.MaxX &&
		r.MinY >= bounds.MinY && r.MaxY <= bounds.MaxY
}

// Displacement is a proposed or allowed 2D change in position.
type Displacement struct {
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
}

// IsZero reports whether the displacement moves nothing on either axis.
func (d Displacement) IsZero() bool {
	return d.Dx == 0 && d.Dy == 0
}

// Edge is an axis-aligned line segment taken from a rectangle's border.
// Pos is the fixed coordinate on the axis perpendicular to the edge,
// Lo/Hi the extent along the edge itself. A vertical edge has Pos on X and
// Lo/Hi on Y; a horizontal edge the reverse.
type Edge struct {
	Pos float64
	Lo  float64
	Hi  float64
}

// Overlaps reports whether the extents of two parallel edges share any
// point. Endpoint contact counts as overlap.
func (e Edge) Overlaps(o Edge) bool {
	return e.Lo <= o.Hi && e.Hi >= o.Lo
}

// shifted returns the edge with its extent translated by delta.
func (e Edge) shifted(delta float64) Edge {
	return Edge{Pos: e.Pos, Lo: e.Lo + delta, Hi: e.Hi + delta}
}

// EdgePerspective selects which side of a rectangle faces a displacement.
type EdgePerspective int

const (
	// PerspectiveInternal picks the edges of the moving rectangle that lead
	// its direction of travel, seen from inside its own footprint.
	PerspectiveInternal EdgePerspective = iota
	// PerspectiveExternal picks the edges of a stationary rectangle that a
	// mover travelling along the displacement would reach first.
	PerspectiveExternal
)

// EdgePair holds the vertical and horizontal edges of a rectangle relevant
// to one proposed displacement. It is recomputed for every move because the
// relevant side depends on the sign of each axis component.
type EdgePair struct {
	Vertical   Edge
	Horizontal Edge
}

// LeadingEdges extracts the edge pair of r facing the given displacement.
// A zero component on an axis defaults to the positive-direction edge; the
// solver never consults that edge because no motion on the axis means no
// possible new contact there.
func LeadingEdges(r Rect, d Displacement, p EdgePerspective) EdgePair {
	var vx, hy float64

	switch p {
	case PerspectiveInternal:
		vx = r.MaxX
		if d.Dx < 0 {
			vx = r.MinX
		}
		hy = r.MaxY
		if d.Dy < 0 {
			hy = r.MinY
		}
	case PerspectiveExternal:
		vx = r.MinX
		if d.Dx < 0 {
			vx = r.MaxX
		}
		hy = r.MinY
		if d.Dy < 0 {
			hy = r.MaxY
		}
	default:
		panic("sim: unknown edge perspective")
	}

	return EdgePair{
		Vertical:   Edge{Pos: vx, Lo: r.MinY, Hi: r.MaxY},
		Horizontal: Edge{Pos: hy, Lo: r.MinX, Hi: r.MaxX},
	}
}
