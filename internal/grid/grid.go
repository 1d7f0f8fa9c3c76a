// Package grid holds the 27 cubies of a 3x3x3 puzzle and their integer
// grid coordinates.
//
// Cubies live in a fixed arena indexed by CubieID. A turn never moves a
// cubie out of the arena; it only proposes new placements through Commit.
package grid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Count is the number of cubies on a 3x3x3 puzzle, core included.
const Count = 27

// SnapTolerance is the largest drift from an integer that Commit will round
// away. Anything further off is an invariant violation.
const SnapTolerance = 1e-3

// Axis identifies one of the three puzzle axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists the three axes in index order.
var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= X && a <= Z
}

// Unit returns the positive unit vector along the axis.
func (a Axis) Unit() mgl64.Vec3 {
	var v mgl64.Vec3
	if a.Valid() {
		v[a] = 1
	}
	return v
}

// ParseAxis parses "x", "y" or "z" (either case).
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "y", "Y":
		return Y, nil
	case "z", "Z":
		return Z, nil
	}
	return 0, fmt.Errorf("grid: unknown axis %q", s)
}

// Position is a cubie's cell; each component is -1, 0 or 1.
type Position [3]int8

// Vec3 returns the position as a float vector.
func (p Position) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Component returns the coordinate along axis a.
func (p Position) Component(a Axis) int8 {
	return p[a]
}

// Valid reports whether every component is in {-1, 0, 1}.
func (p Position) Valid() bool {
	for _, c := range p {
		if c < -1 || c > 1 {
			return false
		}
	}
	return true
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p[0], p[1], p[2])
}

// CubieID is a stable arena index in [0, Count).
type CubieID int

// Cubie is one rigid sub-cube.
type Cubie struct {
	ID          CubieID
	Home        Position // cell in the solved puzzle
	Position    Position
	Orientation Orientation
}

// Entry pairs a cubie with its current cell.
type Entry struct {
	ID       CubieID
	Position Position
}

// Placement is an unsnapped proposal for a cubie, typically produced by
// flattening a rotated group back into grid space.
type Placement struct {
	Position    mgl64.Vec3
	Orientation mgl64.Mat3
}

const noCubie CubieID = -1

// Grid owns all cubie records. It is not safe for concurrent use.
type Grid struct {
	cubies [Count]Cubie
	cells  [3][3][3]CubieID
}

// New returns a grid in the solved layout. IDs run y fastest, then x,
// then z: id = (y+1) + 3*(x+1) + 9*(z+1).
func New() *Grid {
	g := &Grid{}
	for i := 0; i < Count; i++ {
		p := Position{int8((i/3)%3 - 1), int8(i%3 - 1), int8(i/9 - 1)}
		g.cubies[i] = Cubie{
			ID:          CubieID(i),
			Home:        p,
			Position:    p,
			Orientation: Identity,
		}
	}
	g.reindex()
	return g
}

func (g *Grid) reindex() {
	for x := range g.cells {
		for y := range g.cells[x] {
			for z := range g.cells[x][y] {
				g.cells[x][y][z] = noCubie
			}
		}
	}
	for _, c := range g.cubies {
		g.cells[c.Position[0]+1][c.Position[1]+1][c.Position[2]+1] = c.ID
	}
}

// CubieAt returns the cubie occupying p.
func (g *Grid) CubieAt(p Position) (CubieID, bool) {
	if !p.Valid() {
		return noCubie, false
	}
	id := g.cells[p[0]+1][p[1]+1][p[2]+1]
	return id, id != noCubie
}

// Cubie returns a copy of the cubie record for id.
func (g *Grid) Cubie(id CubieID) (Cubie, bool) {
	if id < 0 || int(id) >= Count {
		return Cubie{}, false
	}
	return g.cubies[id], true
}

// Positions returns every cubie's cell in ID order.
func (g *Grid) Positions() []Entry {
	out := make([]Entry, Count)
	for i, c := range g.cubies {
		out[i] = Entry{ID: c.ID, Position: c.Position}
	}
	return out
}

// Cubies returns a copy of all cubie records in ID order.
func (g *Grid) Cubies() []Cubie {
	out := make([]Cubie, Count)
	copy(out, g.cubies[:])
	return out
}

// Commit snaps the proposed placements onto the grid and replaces the
// affected cubies atomically. Cubies not named keep their cell. If any
// placement drifts too far from an integer cell, leaves the puzzle, is not
// a proper rotation, or two cubies would share a cell, Commit returns an
// *InvariantError and the grid is unchanged.
func (g *Grid) Commit(update map[CubieID]Placement) error {
	if len(update) == 0 {
		return nil
	}

	next := g.cubies
	for id, pl := range update {
		if id < 0 || int(id) >= Count {
			return &InvariantError{Cubie: id, Reason: "unknown cubie"}
		}
		pos, err := snapPosition(pl.Position)
		if err != nil {
			return &InvariantError{Cubie: id, Reason: err.Error()}
		}
		orient, err := SnapOrientation(pl.Orientation)
		if err != nil {
			return &InvariantError{Cubie: id, Reason: err.Error()}
		}
		next[id].Position = pos
		next[id].Orientation = orient
	}

	var seen [3][3][3]bool
	for _, c := range next {
		cell := &seen[c.Position[0]+1][c.Position[1]+1][c.Position[2]+1]
		if *cell {
			return &InvariantError{Cubie: c.ID, Reason: fmt.Sprintf("cell %v already occupied", c.Position)}
		}
		*cell = true
	}

	g.cubies = next
	g.reindex()
	return nil
}

func snapPosition(v mgl64.Vec3) (Position, error) {
	var p Position
	for i, c := range v {
		r := math.Round(c)
		if math.IsNaN(c) || math.Abs(c-r) > SnapTolerance {
			return p, fmt.Errorf("coordinate %s=%g is not an integer", Axis(i), c)
		}
		if r < -1 || r > 1 {
			return p, fmt.Errorf("coordinate %s=%g is outside the puzzle", Axis(i), c)
		}
		p[i] = int8(r)
	}
	return p, nil
}

// Check verifies the resting invariant: 27 cubies on 27 distinct cells
// inside {-1,0,1}^3, each with a proper rotation.
func (g *Grid) Check() error {
	var seen [3][3][3]bool
	for _, c := range g.cubies {
		if !c.Position.Valid() {
			return &InvariantError{Cubie: c.ID, Reason: fmt.Sprintf("cell %v outside the puzzle", c.Position)}
		}
		if !c.Orientation.Valid() {
			return &InvariantError{Cubie: c.ID, Reason: "orientation is not a rotation"}
		}
		cell := &seen[c.Position[0]+1][c.Position[1]+1][c.Position[2]+1]
		if *cell {
			return &InvariantError{Cubie: c.ID, Reason: fmt.Sprintf("cell %v already occupied", c.Position)}
		}
		*cell = true
		if id, _ := g.CubieAt(c.Position); id != c.ID {
			return &InvariantError{Cubie: c.ID, Reason: "cell index is stale"}
		}
	}
	return nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	return &clone
}

// Equal reports whether both grids hold every cubie at the same cell with
// the same orientation.
func (g *Grid) Equal(other *Grid) bool {
	return g.cubies == other.cubies
}

// SamePositions reports whether both grids hold every cubie at the same
// cell, ignoring orientation.
func (g *Grid) SamePositions(other *Grid) bool {
	for i := range g.cubies {
		if g.cubies[i].Position != other.cubies[i].Position {
			return false
		}
	}
	return true
}

// IsSolved returns true if every cubie is home with its original
// orientation.
func (g *Grid) IsSolved() bool {
	for _, c := range g.cubies {
		if c.Position != c.Home || c.Orientation != Identity {
			return false
		}
	}
	return true
}
