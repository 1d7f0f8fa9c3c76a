package notation

import "strings"

// phrases holds the spoken form of each clockwise quarter turn and its
// inverse. Reference frame: White on top, Green in front, facing the cube.
var phrases = map[Face][2]string{
	FaceR: {"R up", "R down"},
	FaceL: {"L down", "L up"},
	FaceU: {"T rotate right", "T rotate left"},
	FaceD: {"B rotate right", "B rotate left"},
	FaceF: {"F rotate clockwise", "F rotate anti-clockwise"},
	FaceB: {"Back rotate clockwise", "Back rotate anti-clockwise"},
	FaceM: {"M down", "M up"},
	FaceE: {"E rotate right", "E rotate left"},
	FaceS: {"S rotate clockwise", "S rotate anti-clockwise"},
}

// Describe converts a move into plain words.
//
// Mapping:
//
//	R  -> "R up"            R' -> "R down"          R2 -> "R up x 2"
//	U  -> "T rotate right"  U' -> "T rotate left"   U2 -> "T rotate right x 2"
//	M  -> "M down"          M' -> "M up"            M2 -> "M down x 2"
func Describe(m Move) string {
	p, ok := phrases[m.Face]
	if !ok {
		return m.Notation()
	}
	switch m.Turn {
	case CW:
		return p[0]
	case CCW:
		return p[1]
	case Double:
		return p[0] + " x 2"
	}
	return m.Notation()
}

// DescribeSequence formats moves as a comma-separated description.
func DescribeSequence(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = Describe(m)
	}
	return strings.Join(parts, ", ")
}
