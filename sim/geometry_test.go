// File: sim/geometry_test.go
package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(100, 50, 20, 10)
	assert.Equal(t, NewRect(90, 45, 110, 55), r)
	assert.Equal(t, 20.0, r.Width())
	assert.Equal(t, 10.0, r.Height())
	assert.Equal(t, 100.0, r.CenterX())
	assert.Equal(t, 50.0, r.CenterY())
}

func TestRect_Translated(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	moved := r.Translated(Displacement{Dx: 5, Dy: -3})
	assert.Equal(t, NewRect(5, -3, 15, 7), moved)
	assert.Equal(t, NewRect(0, 0, 10, 10), r, "Translated must not mutate the receiver")
}

func TestRect_Touches(t *testing.T) {
	base := NewRect(0, 0, 10, 10)

	testCases := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{"overlapping", NewRect(5, 5, 15, 15), true},
		{"contained", NewRect(2, 2, 8, 8), true},
		{"shared edge", NewRect(10, 0, 20, 10), true},
		{"shared corner", NewRect(10, 10, 20, 20), true},
		{"clear right", NewRect(11, 0, 20, 10), false},
		{"clear above", NewRect(0, -20, 10, -1), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, base.Touches(tc.other))
			assert.Equal(t, tc.expected, tc.other.Touches(base), "Touches must be symmetric")
		})
	}
}

func TestRect_Inside(t *testing.T) {
	bounds := NewRect(0, 0, 100, 100)

	assert.True(t, NewRect(10, 10, 20, 20).Inside(bounds))
	assert.True(t, NewRect(0, 0, 100, 100).Inside(bounds), "touching all edges still counts as inside")
	assert.False(t, NewRect(-1, 10, 20, 20).Inside(bounds))
	assert.False(t, NewRect(10, 10, 20, 101).Inside(bounds))
}

func TestEdge_Overlaps(t *testing.T) {
	e := Edge{Pos: 0, Lo: 10, Hi: 20}

	assert.True(t, e.Overlaps(Edge{Lo: 15, Hi: 25}))
	assert.True(t, e.Overlaps(Edge{Lo: 20, Hi: 30}), "endpoint contact counts as overlap")
	assert.True(t, e.Overlaps(Edge{Lo: 0, Hi: 10}), "endpoint contact counts as overlap")
	assert.False(t, e.Overlaps(Edge{Lo: 21, Hi: 30}))
	assert.False(t, e.Overlaps(Edge{Lo: 0, Hi: 9}))
}

func TestLeadingEdges_Internal(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	testCases := []struct {
		name       string
		d          Displacement
		expectedVX float64
		expectedHY float64
	}{
		{"moving right-down", Displacement{Dx: 5, Dy: 5}, 30, 40},
		{"moving left-up", Displacement{Dx: -5, Dy: -5}, 10, 20},
		{"moving right-up", Displacement{Dx: 5, Dy: -5}, 30, 20},
		{"moving left-down", Displacement{Dx: -5, Dy: 5}, 10, 40},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pair := LeadingEdges(r, tc.d, PerspectiveInternal)
			assert.Equal(t, tc.expectedVX, pair.Vertical.Pos)
			assert.Equal(t, tc.expectedHY, pair.Horizontal.Pos)
			assert.Equal(t, Edge{Pos: tc.expectedVX, Lo: 20, Hi: 40}, pair.Vertical)
			assert.Equal(t, Edge{Pos: tc.expectedHY, Lo: 10, Hi: 30}, pair.Horizontal)
		})
	}
}

func TestLeadingEdges_External(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	// A mover travelling right-down reaches the obstacle's left and top
	// sides first; travelling left-up its right and bottom sides.
	pair := LeadingEdges(r, Displacement{Dx: 5, Dy: 5}, PerspectiveExternal)
	assert.Equal(t, 10.0, pair.Vertical.Pos)
	assert.Equal(t, 20.0, pair.Horizontal.Pos)

	pair = LeadingEdges(r, Displacement{Dx: -5, Dy: -5}, PerspectiveExternal)
	assert.Equal(t, 30.0, pair.Vertical.Pos)
	assert.Equal(t, 40.0, pair.Horizontal.Pos)
}

func TestLeadingEdges_UnknownPerspective(t *testing.T) {
	assert.Panics(t, func() {
		LeadingEdges(NewRect(0, 0, 1, 1), Displacement{Dx: 1}, EdgePerspective(99))
	})
}
