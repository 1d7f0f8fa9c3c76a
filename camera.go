package cubeturn

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/facelets"
	"github.com/SeamusWaldron/cubeturn/internal/pick"
)

// Camera maps pointer positions in normalized device coordinates to
// picking rays and screen-plane drags to world space.
type Camera interface {
	// Rotation is the camera's orientation in world space. Screen right
	// is Rotation * +X, screen up Rotation * +Y.
	Rotation() mgl64.Quat
	// Ray returns the picking ray through ndc, both components in [-1, 1].
	Ray(ndc mgl64.Vec2) pick.Ray
}

// NDC converts a pixel position to normalized device coordinates, with y
// pointing up.
func NDC(x, y float64, width, height int) mgl64.Vec2 {
	return mgl64.Vec2{
		2*x/float64(width) - 1,
		1 - 2*y/float64(height),
	}
}

// PerspectiveCamera is a pinhole camera looking from Position at Target.
type PerspectiveCamera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FovDeg   float64 // vertical field of view
	Aspect   float64 // width / height; 0 means 1
}

// DefaultCamera returns the camera at (4, 4, 8) looking at the puzzle
// center with a 75 degree field of view.
func DefaultCamera() *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: mgl64.Vec3{4, 4, 8},
		Up:       mgl64.Vec3{0, 1, 0},
		FovDeg:   75,
		Aspect:   1,
	}
}

// basis returns the camera's right, up and backward unit vectors.
func (c *PerspectiveCamera) basis() (right, up, back mgl64.Vec3) {
	back = c.Position.Sub(c.Target).Normalize()
	worldUp := c.Up
	if worldUp.Len() == 0 {
		worldUp = mgl64.Vec3{0, 1, 0}
	}
	right = worldUp.Cross(back)
	if right.Len() < 1e-9 {
		// looking straight along Up
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = back.Cross(right)
	return right, up, back
}

// Rotation implements Camera.
func (c *PerspectiveCamera) Rotation() mgl64.Quat {
	right, up, back := c.basis()
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(right, up, back).Mat4()).Normalize()
}

// Ray implements Camera.
func (c *PerspectiveCamera) Ray(ndc mgl64.Vec2) pick.Ray {
	right, up, back := c.basis()
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	tanHalfFov := math.Tan(mgl64.DegToRad(c.FovDeg) / 2)

	dir := back.Mul(-1).
		Add(right.Mul(ndc[0] * aspect * tanHalfFov)).
		Add(up.Mul(ndc[1] * tanHalfFov))

	return pick.Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// OrthoCamera is a parallel projection looking down -Z of Orientation.
// NDC +-1 maps to +-HalfExtent in the view plane.
type OrthoCamera struct {
	Orientation mgl64.Quat
	Distance    float64
	HalfExtent  float64
}

// FaceCamera returns an orthographic camera looking straight at face f,
// framed so the face fills NDC [-1, 1].
func FaceCamera(f facelets.Face) *OrthoCamera {
	return &OrthoCamera{
		Orientation: facelets.View(f).Quat(),
		Distance:    5,
		HalfExtent:  1.5,
	}
}

// Rotation implements Camera.
func (c *OrthoCamera) Rotation() mgl64.Quat {
	return c.Orientation
}

// Ray implements Camera.
func (c *OrthoCamera) Ray(ndc mgl64.Vec2) pick.Ray {
	local := mgl64.Vec3{ndc[0] * c.HalfExtent, ndc[1] * c.HalfExtent, c.Distance}
	return pick.Ray{
		Origin:    c.Orientation.Rotate(local),
		Direction: c.Orientation.Rotate(mgl64.Vec3{0, 0, -1}),
	}
}

// CellNDC returns the NDC of the center of sticker (row, col) on a face
// camera.
func (c *OrthoCamera) CellNDC(row, col int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(col-1) / c.HalfExtent,
		float64(1-row) / c.HalfExtent,
	}
}
