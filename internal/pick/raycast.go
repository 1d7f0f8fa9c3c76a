package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// CubieSize is the edge length of a cubie box; the gap to 1.0 keeps the
// seams visible.
const CubieSize = 0.95

// GridProvider ray casts against the resting cubie boxes of a grid.
type GridProvider struct {
	grid *grid.Grid
	size float64
}

// NewGridProvider returns a provider over g.
func NewGridProvider(g *grid.Grid) *GridProvider {
	return &GridProvider{grid: g, size: CubieSize}
}

// Intersect returns the nearest cubie hit in front of the ray origin.
func (p *GridProvider) Intersect(ray Ray) (Hit, bool) {
	if ray.Direction.Len() == 0 {
		return Hit{}, false
	}
	dir := ray.Direction.Normalize()
	half := p.size / 2

	var best Hit
	found := false
	for _, c := range p.grid.Cubies() {
		center := c.Position.Vec3()
		minB := center.Sub(mgl64.Vec3{half, half, half})
		maxB := center.Add(mgl64.Vec3{half, half, half})
		t, worldNormal, ok := intersectBox(ray.Origin, dir, minB, maxB)
		if !ok || (found && t >= best.Distance) {
			continue
		}
		found = true
		best = Hit{
			Cubie:    c.ID,
			Distance: t,
			Point:    ray.Origin.Add(dir.Mul(t)),
			// report the normal in the cubie's own frame
			Normal: c.Orientation.Transpose().Apply(worldNormal),
		}
	}
	return best, found
}

// intersectBox is a slab test. It returns the entry distance and the
// outward normal of the entry face.
func intersectBox(origin, dir, minB, maxB mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	var normal mgl64.Vec3
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < minB[i] || origin[i] > maxB[i] {
				return 0, normal, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (minB[i] - origin[i]) * inv
		t2 := (maxB[i] - origin[i]) * inv
		side := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			side = 1
		}
		if t1 > tMin {
			tMin = t1
			normal = mgl64.Vec3{}
			normal[i] = side
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, normal, false
		}
	}
	if tMax < 0 || tMin < 0 {
		// behind the origin, or the origin is inside the box
		return 0, normal, false
	}
	return tMin, normal, true
}
