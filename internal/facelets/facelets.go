// Package facelets projects the cubie grid onto the classic 6x9 sticker
// net by following every cubie's accumulated orientation.
package facelets

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
	None   Color = 6 // no cubie under the sticker
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Face represents a puzzle face.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

// Faces lists every face in index order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// views maps each face's viewing frame to puzzle axes: column 0 is screen
// right, column 1 screen up, column 2 the outward normal.
var views = [6]grid.Orientation{
	U: grid.QuarterTurn(grid.X, -1),
	D: grid.QuarterTurn(grid.X, 1),
	F: grid.Identity,
	B: grid.QuarterTurn(grid.Y, 1).Mul(grid.QuarterTurn(grid.Y, 1)),
	R: grid.QuarterTurn(grid.Y, 1),
	L: grid.QuarterTurn(grid.Y, -1),
}

// View returns the rotation from a face's screen frame to puzzle axes.
func View(f Face) grid.Orientation {
	return views[f]
}

// Normal returns the outward normal of f in puzzle axes.
func Normal(f Face) mgl64.Vec3 {
	return views[f].Apply(mgl64.Vec3{0, 0, 1})
}

// FaceOf returns the face whose outward normal is n.
func FaceOf(n mgl64.Vec3) (Face, bool) {
	for _, f := range Faces {
		if Normal(f).ApproxEqual(n) {
			return f, true
		}
	}
	return 0, false
}

// CellPosition returns the grid cell behind sticker (row, col) of face f.
// Rows run top to bottom, columns left to right as seen from outside.
func CellPosition(f Face, row, col int) grid.Position {
	v := views[f].Apply(mgl64.Vec3{float64(col - 1), float64(1 - row), 1})
	return grid.Position{int8(v[0]), int8(v[1]), int8(v[2])}
}

// solvedColor gives the color painted on the cubie face whose local
// outward normal is n.
func solvedColor(n mgl64.Vec3) Color {
	switch {
	case n[0] > 0.5:
		return Red
	case n[0] < -0.5:
		return Orange
	case n[1] > 0.5:
		return White
	case n[1] < -0.5:
		return Yellow
	case n[2] > 0.5:
		return Green
	case n[2] < -0.5:
		return Blue
	}
	return None
}

// Net is the unfolded sticker state. Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Net struct {
	// Facelets[face][position] = color
	Facelets [6][9]Color
}

// FromGrid reads the stickers off g.
func FromGrid(g *grid.Grid) *Net {
	n := &Net{}
	for _, f := range Faces {
		normal := Normal(f)
		for i := 0; i < 9; i++ {
			id, ok := g.CubieAt(CellPosition(f, i/3, i%3))
			if !ok {
				n.Facelets[f][i] = None
				continue
			}
			c, _ := g.Cubie(id)
			local := c.Orientation.Transpose().Apply(normal)
			n.Facelets[f][i] = solvedColor(local)
		}
	}
	return n
}

// IsSolved returns true if every face shows a single color.
func (n *Net) IsSolved() bool {
	for f := range n.Facelets {
		for i := 1; i < 9; i++ {
			if n.Facelets[f][i] != n.Facelets[f][0] {
				return false
			}
		}
	}
	return true
}

// Center returns the center color of f.
func (n *Net) Center(f Face) Color {
	return n.Facelets[f][4]
}

// String returns a text representation of the net.
func (n *Net) String() string {
	result := ""

	// U face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += n.Facelets[U][row*3+col].String() + " "
		}
		result += "\n"
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				result += n.Facelets[face][row*3+col].String() + " "
			}
		}
		result += "\n"
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += n.Facelets[D][row*3+col].String() + " "
		}
		result += "\n"
	}

	return result
}
