// Package gesture turns a clicked face and a drag vector into a rotation
// axis and direction.
//
// A drag across a face with normal n can only turn the puzzle about one of
// the two axes lying in that face. The dominant drag direction d picks one
// of them as the direction of travel and the turn happens about the other.
// The direction follows from v = w x p: a point on the face moves along d
// when the angular velocity w points along n x d.
package gesture

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// DefaultThreshold is the drag length, in normalized device units, below
// which a gesture is treated as accidental.
const DefaultThreshold = 0.03

// Resolution is the outcome of a resolved gesture.
type Resolution struct {
	Face    grid.Axis // axis the clicked face is perpendicular to
	Dragged grid.Axis // dominant drag direction within the face
	Axis    grid.Axis // rotation axis
	Sign    int8      // +1 counter-clockwise about +Axis, -1 clockwise
}

// Entry is one row of the derived (face, dragged) table.
type Entry struct {
	Face      grid.Axis
	Dragged   grid.Axis
	Axis      grid.Axis
	Parity    int8 // Levi-Civita symbol eps(Axis, Face, Dragged)
	ExtraFlip bool // derived sign differs from -sign(d)*sign(n)
}

var table [3][3]Entry

func init() {
	for _, f := range grid.Axes {
		for _, d := range grid.Axes {
			if f == d {
				continue
			}
			r := third(f, d)
			p := levi(r, f, d)
			table[f][d] = Entry{
				Face:    f,
				Dragged: d,
				Axis:    r,
				Parity:  p,
				// base formula is -sd*sn; derived is sd*sn*p, so they
				// differ exactly when p is +1.
				ExtraFlip: p > 0,
			}
		}
	}
}

// Table returns the six valid entries in (face, dragged) order.
func Table() []Entry {
	out := make([]Entry, 0, 6)
	for _, f := range grid.Axes {
		for _, d := range grid.Axes {
			if f != d {
				out = append(out, table[f][d])
			}
		}
	}
	return out
}

// Lookup returns the table entry for a face axis and drag axis.
func Lookup(face, dragged grid.Axis) (Entry, bool) {
	if !face.Valid() || !dragged.Valid() || face == dragged {
		return Entry{}, false
	}
	return table[face][dragged], true
}

// third returns the axis that is neither a nor b.
func third(a, b grid.Axis) grid.Axis {
	return grid.Axis(3 - int(a) - int(b))
}

// levi is the Levi-Civita symbol over axis indexes.
func levi(i, j, k grid.Axis) int8 {
	switch {
	case i == j || j == k || i == k:
		return 0
	case (int(j)-int(i)+3)%3 == 1:
		return 1
	default:
		return -1
	}
}

// LongestAxis returns the axis of v's largest magnitude component. Ties
// go to the later axis.
func LongestAxis(v mgl64.Vec3) grid.Axis {
	x, y, z := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	switch {
	case x > y && x > z:
		return grid.X
	case y > z:
		return grid.Y
	default:
		return grid.Z
	}
}

// Resolve maps a face normal and a 3D drag vector to a rotation. drag must
// already be expressed in puzzle axes. It returns false when the drag
// within the face plane is no longer than threshold.
func Resolve(faceNormal, drag mgl64.Vec3, threshold float64) (Resolution, bool) {
	face := LongestAxis(faceNormal)
	if faceNormal[face] == 0 {
		return Resolution{}, false
	}

	limited := drag
	limited[face] = 0
	length := limited.Len()
	if length == 0 || length <= threshold || math.IsNaN(length) {
		return Resolution{}, false
	}

	dragged := LongestAxis(limited)
	e := table[face][dragged]
	sign := sgn(faceNormal[face]) * sgn(limited[dragged]) * e.Parity

	return Resolution{
		Face:    face,
		Dragged: dragged,
		Axis:    e.Axis,
		Sign:    sign,
	}, true
}

func sgn(v float64) int8 {
	if v < 0 {
		return -1
	}
	return 1
}
