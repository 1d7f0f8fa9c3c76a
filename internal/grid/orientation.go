package grid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Orientation is a cubie's accumulated rotation as an exact integer
// matrix, indexed [row][col]. Only the 24 proper rotations of a cube are
// valid.
type Orientation [3][3]int8

// Identity is the orientation of an unturned cubie.
var Identity = Orientation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// QuarterTurn returns the exact rotation of sign*90 degrees about axis a,
// counter-clockwise when looking down the positive axis.
func QuarterTurn(a Axis, sign int8) Orientation {
	s := sign
	switch a {
	case X:
		return Orientation{{1, 0, 0}, {0, 0, -s}, {0, s, 0}}
	case Y:
		return Orientation{{0, 0, s}, {0, 1, 0}, {-s, 0, 0}}
	default:
		return Orientation{{0, -s, 0}, {s, 0, 0}, {0, 0, 1}}
	}
}

// Mat3 converts the orientation to a column-major float matrix.
func (o Orientation) Mat3() mgl64.Mat3 {
	var m mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, float64(o[r][c]))
		}
	}
	return m
}

// Quat converts the orientation to a unit quaternion for rendering.
func (o Orientation) Quat() mgl64.Quat {
	return mgl64.Mat4ToQuat(o.Mat3().Mat4()).Normalize()
}

// Mul returns the composition o*other; other is applied first.
func (o Orientation) Mul(other Orientation) Orientation {
	var out Orientation
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum int8
			for k := 0; k < 3; k++ {
				sum += o[r][k] * other[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

// Transpose returns the inverse rotation.
func (o Orientation) Transpose() Orientation {
	var out Orientation
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = o[c][r]
		}
	}
	return out
}

// Apply rotates v by o.
func (o Orientation) Apply(v mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	for r := 0; r < 3; r++ {
		out[r] = float64(o[r][0])*v[0] + float64(o[r][1])*v[1] + float64(o[r][2])*v[2]
	}
	return out
}

// Valid reports whether o is a signed permutation matrix with determinant +1.
func (o Orientation) Valid() bool {
	var cols [3]bool
	for r := 0; r < 3; r++ {
		nonzero := 0
		for c := 0; c < 3; c++ {
			switch o[r][c] {
			case 0:
			case 1, -1:
				if cols[c] {
					return false
				}
				cols[c] = true
				nonzero++
			default:
				return false
			}
		}
		if nonzero != 1 {
			return false
		}
	}
	return o.det() == 1
}

func (o Orientation) det() int {
	a := func(r, c int) int { return int(o[r][c]) }
	return a(0, 0)*(a(1, 1)*a(2, 2)-a(1, 2)*a(2, 1)) -
		a(0, 1)*(a(1, 0)*a(2, 2)-a(1, 2)*a(2, 0)) +
		a(0, 2)*(a(1, 0)*a(2, 1)-a(1, 1)*a(2, 0))
}

// SnapOrientation rounds a drifted rotation matrix to the nearest exact
// cube rotation.
func SnapOrientation(m mgl64.Mat3) (Orientation, error) {
	var o Orientation
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := m.At(r, c)
			rounded := math.Round(v)
			if math.IsNaN(v) || math.Abs(v-rounded) > SnapTolerance || rounded < -1 || rounded > 1 {
				return o, fmt.Errorf("orientation entry [%d][%d]=%g is not a quarter-turn value", r, c, v)
			}
			o[r][c] = int8(rounded)
		}
	}
	if !o.Valid() {
		return o, fmt.Errorf("orientation %v is not a proper rotation", o)
	}
	return o, nil
}

// RotationMat3 returns the float rotation matrix for q.
func RotationMat3(q mgl64.Quat) mgl64.Mat3 {
	return q.Mat4().Mat3()
}
