// Package pick turns ray intersections with cubies into face normals the
// gesture resolver understands.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// Ray is a world-space picking ray. Direction need not be normalized.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// Hit is a raw intersection as a scene graph reports it: Normal is in the
// cubie's local frame, before its accumulated rotation.
type Hit struct {
	Cubie    grid.CubieID
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// Provider finds the nearest cubie along a ray.
type Provider interface {
	Intersect(ray Ray) (Hit, bool)
}

// Result is the picked cubie and the clicked face's outward normal in
// puzzle axes.
type Result struct {
	Cubie    grid.CubieID
	Position grid.Position
	Normal   mgl64.Vec3
}

// RoundNormal snaps v to the nearest axis-aligned unit vector. It returns
// the zero vector for a zero or NaN input.
func RoundNormal(v mgl64.Vec3) mgl64.Vec3 {
	best, bestAbs := -1, 0.0
	for i, c := range v {
		if a := math.Abs(c); a > bestAbs {
			best, bestAbs = i, a
		}
	}
	var out mgl64.Vec3
	if best < 0 {
		return out
	}
	out[best] = math.Copysign(1, v[best])
	return out
}

// FaceNormal rounds a raw local normal and rotates it by the cubie's
// orientation into puzzle axes. It reports false for a degenerate normal.
func FaceNormal(raw mgl64.Vec3, orientation grid.Orientation) (mgl64.Vec3, bool) {
	n := RoundNormal(raw)
	if n == (mgl64.Vec3{}) {
		return n, false
	}
	return orientation.Apply(n), true
}

// Cubies is the grid view Adapt needs.
type Cubies interface {
	Cubie(id grid.CubieID) (grid.Cubie, bool)
}

// Adapt converts a raw hit into a Result using the cubie's current
// orientation and cell.
func Adapt(hit Hit, g Cubies) (Result, bool) {
	c, ok := g.Cubie(hit.Cubie)
	if !ok {
		return Result{}, false
	}
	n, ok := FaceNormal(hit.Normal, c.Orientation)
	if !ok {
		return Result{}, false
	}
	return Result{Cubie: c.ID, Position: c.Position, Normal: n}, true
}

// Pick intersects ray with p and adapts the hit. It reports false when
// nothing was hit.
func Pick(p Provider, g Cubies, ray Ray) (Result, bool) {
	if p == nil {
		return Result{}, false
	}
	hit, ok := p.Intersect(ray)
	if !ok {
		return Result{}, false
	}
	return Adapt(hit, g)
}
