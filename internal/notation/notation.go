// Package notation maps standard cube move notation onto slice turns.
package notation

import (
	"errors"
	"strings"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
)

// ErrInvalidNotation is returned for a token that is not a move.
var ErrInvalidNotation = errors.New("notation: invalid move notation")

// Face is a turnable layer in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
	FaceM Face = "M" // Middle, follows L
	FaceE Face = "E" // Equator, follows D
	FaceS Face = "S" // Standing, follows F
)

// Turn is the direction and magnitude of a move.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// layer describes the slice a face letter names and the sign of its
// clockwise quarter turn.
type layer struct {
	axis  grid.Axis
	index int8
	cw    int8
}

var layers = map[Face]layer{
	FaceR: {grid.X, 1, -1},
	FaceL: {grid.X, -1, 1},
	FaceU: {grid.Y, 1, -1},
	FaceD: {grid.Y, -1, 1},
	FaceF: {grid.Z, 1, -1},
	FaceB: {grid.Z, -1, 1},
	FaceM: {grid.X, 0, 1},
	FaceE: {grid.Y, 0, 1},
	FaceS: {grid.Z, 0, -1},
}

// Move is a single notated move.
type Move struct {
	Face Face
	Turn Turn
}

// Notation returns the standard string for the move, e.g. R, R', R2.
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string.
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// Turns expands the move into quarter turns. A half turn becomes two.
func (m Move) Turns() []rotation.Turn {
	l, ok := layers[m.Face]
	if !ok {
		return nil
	}
	switch m.Turn {
	case CW:
		return []rotation.Turn{{Axis: l.axis, Layer: l.index, Sign: l.cw}}
	case CCW:
		return []rotation.Turn{{Axis: l.axis, Layer: l.index, Sign: -l.cw}}
	case Double:
		q := rotation.Turn{Axis: l.axis, Layer: l.index, Sign: l.cw}
		return []rotation.Turn{q, q}
	}
	return nil
}

// FromTurn names a quarter turn in notation.
func FromTurn(t rotation.Turn) (Move, bool) {
	for face, l := range layers {
		if l.axis != t.Axis || l.index != t.Layer {
			continue
		}
		// R and M share x but not a layer, so the first match is unique.
		turn := CW
		if t.Sign != l.cw {
			turn = CCW
		}
		return Move{Face: face, Turn: turn}, true
	}
	return Move{}, false
}

// ParseMove parses one token such as R, U', F2 or M.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	face := Face(strings.ToUpper(s[:1]))
	if _, ok := layers[face]; !ok {
		return Move{}, ErrInvalidNotation
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// Parse parses a space-separated sequence such as "R U R' U'".
func Parse(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return nil, &SyntaxError{Token: part, Err: err}
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Turns parses s and expands it into quarter turns.
func Turns(s string) ([]rotation.Turn, error) {
	moves, err := Parse(s)
	if err != nil {
		return nil, err
	}
	var out []rotation.Turn
	for _, m := range moves {
		out = append(out, m.Turns()...)
	}
	return out, nil
}

// Format joins moves into a space-separated string.
func Format(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// SyntaxError names the offending token.
type SyntaxError struct {
	Token string
	Err   error
}

func (e *SyntaxError) Error() string {
	return "notation: bad token " + `"` + e.Token + `"`
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Invert returns the sequence that undoes moves.
func Invert(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}
