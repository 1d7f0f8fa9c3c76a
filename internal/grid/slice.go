package grid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ValidLayer reports whether layer names one of the three slices along an
// axis.
func ValidLayer(layer int8) bool {
	return layer >= -1 && layer <= 1
}

// Select returns the cubies currently in the given layer along axis, in ID
// order. An empty result means there is nothing to rotate.
func (g *Grid) Select(axis Axis, layer int8) []CubieID {
	coords := make([]mgl64.Vec3, Count)
	for i, c := range g.cubies {
		coords[i] = c.Position.Vec3()
	}
	idx := SelectCoords(axis, layer, coords)
	out := make([]CubieID, len(idx))
	for i, j := range idx {
		out[i] = g.cubies[j].ID
	}
	return out
}

// SelectCoords returns the indexes of coords whose component along axis
// rounds to layer. Rounding, not truncation, keeps cubies that sit a small
// epsilon off their cell in the right layer.
func SelectCoords(axis Axis, layer int8, coords []mgl64.Vec3) []int {
	if !axis.Valid() || !ValidLayer(layer) {
		return nil
	}
	var out []int
	for i, v := range coords {
		if math.Round(v[axis]) == float64(layer) {
			out = append(out, i)
		}
	}
	return out
}
