package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/achilleasa/ptlive/types"
)

// Stores the ray directions at the four corners of the camera frustrum so a
// tracer can generate per pixel rays by interpolating the corner rays.
type Frustrum [4]types.Vec4

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// A perspective camera that looks from its position towards LookAt.
type PerspectiveCamera struct {
	Node

	LookAt types.Vec3
	Up     types.Vec3
	Pitch  float32
	Yaw    float32

	// Vertical field of view in degrees.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	ViewMat  types.Mat4
	ProjMat  types.Mat4
	Frustrum Frustrum

	// Adjust the frustrum so that Y is inverted
	InvertY bool
}

// Create a new perspective camera.
func NewPerspectiveCamera(name string, fov float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		LookAt:  types.Vec3{0, 0, -1},
		Up:      types.Vec3{0, 1, 0},
		FOV:     fov,
		Aspect:  1,
		Near:    1,
		Far:     1000,
		ViewMat: types.Ident4(),
		ProjMat: types.Ident4(),
	}
	c.init(c, PerspectiveCameraNode, name)
	return c
}

// Setup camera projection matrix.
func (c *PerspectiveCamera) SetupProjection(aspect float32) {
	c.Aspect = aspect
	c.ProjMat = types.Perspective4(c.FOV*math32.Pi/180, aspect, c.Near, c.Far)
	c.Update()
}

// Apply pending pitch/yaw rotations and recalculate the view matrix and the
// frustrum corner rays.
func (c *PerspectiveCamera) Update() {
	c.UpdateMatrixWorld()
	eye := c.WorldPosition()

	dir := c.LookAt.Sub(eye).Normalize()
	if c.Pitch != 0 || c.Yaw != 0 {
		pitchQuat := types.QuatFromAxisAngle(dir.Cross(c.Up), c.Pitch)
		yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)
		dir = pitchQuat.Mul(yawQuat).Normalize().Rotate(dir)
		c.LookAt = eye.Add(dir)
		c.Pitch, c.Yaw = 0, 0
	}

	c.ViewMat = types.LookAtV(eye, c.LookAt, c.Up)
	c.updateFrustrum(eye)
}

func (c *PerspectiveCamera) InvViewProjMat() types.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat).Inv()
}

// Generate a ray vector for each corner of the camera frustrum by
// multiplying clip space vectors for each corner with the inv proj/view
// matrix, applying perspective and subtracting the camera eye position.
func (c *PerspectiveCamera) updateFrustrum(eye types.Vec3) {
	invProjViewMat := c.InvViewProjMat()

	var yUp float32 = 1.0
	if c.InvertY {
		yUp = -1.0
	}

	corners := [4]types.Vec4{
		types.XYZW(-1, yUp, -1, 1),
		types.XYZW(1, yUp, -1, 1),
		types.XYZW(-1, -yUp, -1, 1),
		types.XYZW(1, -yUp, -1, 1),
	}
	for i, corner := range corners {
		v := invProjViewMat.Mul4x1(corner)
		c.Frustrum[i] = v.Mul(1.0 / v[3]).Vec3().Sub(eye).Vec4(0)
	}
}

// An orthographic camera. The path tracer uses one to present the
// accumulated frame on a full screen quad.
type OrthographicCamera struct {
	Node

	Left, Right float32
	Top, Bottom float32
	Near, Far   float32

	ProjMat types.Mat4
}

// Create a new orthographic camera.
func NewOrthographicCamera(name string, left, right, top, bottom, near, far float32) *OrthographicCamera {
	c := &OrthographicCamera{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
		Near:   near,
		Far:    far,
	}
	c.init(c, OrthographicCameraNode, name)
	c.UpdateProjection()
	return c
}

// Recalculate the projection matrix.
func (c *OrthographicCamera) UpdateProjection() {
	c.ProjMat = types.Ortho4(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
}
