package rotation

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// Transform is a cubie's rigid transform as the renderer should apply it.
type Transform struct {
	Cubie    grid.CubieID
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

type member struct {
	id     grid.CubieID
	offset mgl64.Vec3 // relative to the pivot
	base   grid.Orientation
}

// Group is the transient borrow of one slice during a turn. It holds only
// IDs and the starting placement of each member; the grid keeps ownership
// of the cubie records throughout.
type Group struct {
	turn    Turn
	pivot   mgl64.Vec3
	axis    mgl64.Vec3
	members []member
}

func newGroup(turn Turn, cubies []grid.Cubie) *Group {
	pivot := turn.Axis.Unit().Mul(float64(turn.Layer))
	g := &Group{
		turn:    turn,
		pivot:   pivot,
		axis:    turn.Axis.Unit(),
		members: make([]member, len(cubies)),
	}
	for i, c := range cubies {
		g.members[i] = member{
			id:     c.ID,
			offset: c.Position.Vec3().Sub(pivot),
			base:   c.Orientation,
		}
	}
	return g
}

// Turn returns the turn this group serves.
func (g *Group) Turn() Turn { return g.turn }

// Pivot returns the rotation centre, the middle of the slice.
func (g *Group) Pivot() mgl64.Vec3 { return g.pivot }

// Members returns the borrowed cubie IDs.
func (g *Group) Members() []grid.CubieID {
	out := make([]grid.CubieID, len(g.members))
	for i, m := range g.members {
		out[i] = m.id
	}
	return out
}

// Rotation returns the pivot rotation at angle radians.
func (g *Group) Rotation(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, g.axis)
}

// Local returns each member's transform relative to the pivot.
func (g *Group) Local() []Transform {
	out := make([]Transform, len(g.members))
	for i, m := range g.members {
		out[i] = Transform{Cubie: m.id, Position: m.offset, Rotation: m.base.Quat()}
	}
	return out
}

// World returns each member's transform in grid space at angle radians.
func (g *Group) World(angle float64) []Transform {
	q := g.Rotation(angle)
	out := make([]Transform, len(g.members))
	for i, m := range g.members {
		out[i] = Transform{
			Cubie:    m.id,
			Position: g.pivot.Add(q.Rotate(m.offset)),
			Rotation: q.Mul(m.base.Quat()).Normalize(),
		}
	}
	return out
}

// Flatten bakes the pivot rotation at angle into per-cubie placements in
// grid space. The placements are unsnapped; Commit rounds them.
func (g *Group) Flatten(angle float64) map[grid.CubieID]grid.Placement {
	q := g.Rotation(angle)
	rot := grid.RotationMat3(q)
	out := make(map[grid.CubieID]grid.Placement, len(g.members))
	for _, m := range g.members {
		out[m.id] = grid.Placement{
			Position:    g.pivot.Add(q.Rotate(m.offset)),
			Orientation: rot.Mul3(m.base.Mat3()),
		}
	}
	return out
}
