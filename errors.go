package cubeturn

import (
	"errors"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
)

// Sentinel errors for the cubeturn package.
var (
	// Grid errors
	ErrInvariantViolation = grid.ErrInvariantViolation

	// Turn errors
	ErrInvalidTurn = rotation.ErrInvalidTurn

	// Parsing errors
	ErrInvalidNotation = notation.ErrInvalidNotation

	// Input errors
	ErrNoCamera = errors.New("cubeturn: no camera configured")
)
