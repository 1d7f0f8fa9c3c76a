package cubeturn

import "github.com/SeamusWaldron/cubeturn/internal/notation"

// Predefined moves for convenience.
//
// Example:
//
//	engine.Apply(cubeturn.R, cubeturn.U, cubeturn.RPrime, cubeturn.UPrime)
var (
	// Right face moves
	R      = Move{Face: notation.FaceR, Turn: notation.CW}     // Right clockwise
	RPrime = Move{Face: notation.FaceR, Turn: notation.CCW}    // Right counter-clockwise
	R2     = Move{Face: notation.FaceR, Turn: notation.Double} // Right 180

	// Left face moves
	L      = Move{Face: notation.FaceL, Turn: notation.CW}
	LPrime = Move{Face: notation.FaceL, Turn: notation.CCW}
	L2     = Move{Face: notation.FaceL, Turn: notation.Double}

	// Up face moves
	U      = Move{Face: notation.FaceU, Turn: notation.CW}
	UPrime = Move{Face: notation.FaceU, Turn: notation.CCW}
	U2     = Move{Face: notation.FaceU, Turn: notation.Double}

	// Down face moves
	D      = Move{Face: notation.FaceD, Turn: notation.CW}
	DPrime = Move{Face: notation.FaceD, Turn: notation.CCW}
	D2     = Move{Face: notation.FaceD, Turn: notation.Double}

	// Front face moves
	F      = Move{Face: notation.FaceF, Turn: notation.CW}
	FPrime = Move{Face: notation.FaceF, Turn: notation.CCW}
	F2     = Move{Face: notation.FaceF, Turn: notation.Double}

	// Back face moves
	B      = Move{Face: notation.FaceB, Turn: notation.CW}
	BPrime = Move{Face: notation.FaceB, Turn: notation.CCW}
	B2     = Move{Face: notation.FaceB, Turn: notation.Double}

	// Slice moves
	M      = Move{Face: notation.FaceM, Turn: notation.CW}
	MPrime = Move{Face: notation.FaceM, Turn: notation.CCW}
	E      = Move{Face: notation.FaceE, Turn: notation.CW}
	EPrime = Move{Face: notation.FaceE, Turn: notation.CCW}
	S      = Move{Face: notation.FaceS, Turn: notation.CW}
	SPrime = Move{Face: notation.FaceS, Turn: notation.CCW}
)

// Sexy move: R U R' U', order 6
var SexyMove = []Move{R, U, RPrime, UPrime}

// T-perm algorithm, order 2
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
