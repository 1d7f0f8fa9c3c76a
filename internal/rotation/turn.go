// Package rotation drives one animated quarter turn at a time: it borrows a
// slice of cubies from the grid, advances the pivot angle on every tick,
// and commits the flattened result back.
package rotation

import (
	"errors"
	"fmt"
	"math"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// ErrInvalidTurn is returned for a turn with a bad axis, layer or sign.
var ErrInvalidTurn = errors.New("rotation: invalid turn")

// Turn is a request to rotate the slice at Layer along Axis by Sign*90
// degrees, counter-clockwise about +Axis for a positive sign.
type Turn struct {
	ID    string    `json:"id,omitempty"`
	Axis  grid.Axis `json:"axis"`
	Layer int8      `json:"layer"`
	Sign  int8      `json:"sign"`
}

// Validate checks the axis, layer and sign.
func (t Turn) Validate() error {
	if !t.Axis.Valid() {
		return fmt.Errorf("%w: axis %d", ErrInvalidTurn, t.Axis)
	}
	if !grid.ValidLayer(t.Layer) {
		return fmt.Errorf("%w: layer %d", ErrInvalidTurn, t.Layer)
	}
	if t.Sign != 1 && t.Sign != -1 {
		return fmt.Errorf("%w: sign %d", ErrInvalidTurn, t.Sign)
	}
	return nil
}

// Inverse returns the turn that undoes t. The ID is not carried over.
func (t Turn) Inverse() Turn {
	return Turn{Axis: t.Axis, Layer: t.Layer, Sign: -t.Sign}
}

// Target returns the final pivot angle in radians.
func (t Turn) Target() float64 {
	return float64(t.Sign) * math.Pi / 2
}

// String formats the turn as axis, layer and sign, e.g. "y[1]+".
func (t Turn) String() string {
	s := "+"
	if t.Sign < 0 {
		s = "-"
	}
	return fmt.Sprintf("%s[%d]%s", t.Axis, t.Layer, s)
}
