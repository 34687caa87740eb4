package pathtrace

import (
	"github.com/achilleasa/ptlive/types"
)

// PathTracingBox describes the geometry and material of a box primitive.
//
// When InvMatrix is set the corners are expressed in the box's local frame
// and InvMatrix maps world space rays into that frame. When it is nil the
// corners are already in world space.
type PathTracingBox struct {
	MinCorner types.Vec3   `json:"minCorner"`
	MaxCorner types.Vec3   `json:"maxCorner"`
	Color     types.Vec3   `json:"color"`
	Emission  types.Vec3   `json:"emission"`
	Type      MaterialType `json:"type"`
	InvMatrix *types.Mat4  `json:"invMatrix,omitempty"`
}

// Equal reports whether two boxes hold identical values.
func (b PathTracingBox) Equal(other PathTracingBox) bool {
	if b.MinCorner != other.MinCorner || b.MaxCorner != other.MaxCorner ||
		b.Color != other.Color || b.Emission != other.Emission || b.Type != other.Type {
		return false
	}
	if b.InvMatrix == nil || other.InvMatrix == nil {
		return b.InvMatrix == nil && other.InvMatrix == nil
	}
	return *b.InvMatrix == *other.InvMatrix
}

// Get the world space axis-aligned bounds of the box.
func (b PathTracingBox) BBox() [2]types.Vec3 {
	if b.InvMatrix == nil {
		return [2]types.Vec3{b.MinCorner, b.MaxCorner}
	}
	return transformBounds(b.InvMatrix.Inv(), b.MinCorner, b.MaxCorner)
}

// Get the world space center of the box bounds.
func (b PathTracingBox) Center() types.Vec3 {
	bbox := b.BBox()
	return bbox[0].Add(bbox[1]).Mul(0.5)
}

// PathTracingSphere describes the geometry and material of a sphere primitive
// using the same frame conventions as PathTracingBox.
type PathTracingSphere struct {
	Position  types.Vec3   `json:"position"`
	Radius    float32      `json:"radius"`
	Color     types.Vec3   `json:"color"`
	Emission  types.Vec3   `json:"emission"`
	Type      MaterialType `json:"type"`
	InvMatrix *types.Mat4  `json:"invMatrix,omitempty"`
}

// Get the world space axis-aligned bounds of the sphere.
func (s PathTracingSphere) BBox() [2]types.Vec3 {
	r := types.XYZ(s.Radius, s.Radius, s.Radius)
	min, max := s.Position.Sub(r), s.Position.Add(r)
	if s.InvMatrix == nil {
		return [2]types.Vec3{min, max}
	}
	return transformBounds(s.InvMatrix.Inv(), min, max)
}

// Get the world space center of the sphere bounds.
func (s PathTracingSphere) Center() types.Vec3 {
	bbox := s.BBox()
	return bbox[0].Add(bbox[1]).Mul(0.5)
}

// Transform the eight corners of a box and return their axis-aligned bounds.
func transformBounds(m types.Mat4, min, max types.Vec3) [2]types.Vec3 {
	out := [2]types.Vec3{}
	for i := 0; i < 8; i++ {
		corner := min
		if i&1 != 0 {
			corner[0] = max[0]
		}
		if i&2 != 0 {
			corner[1] = max[1]
		}
		if i&4 != 0 {
			corner[2] = max[2]
		}
		p := m.TransformPoint(corner)
		if i == 0 {
			out[0], out[1] = p, p
			continue
		}
		out[0] = types.MinVec3(out[0], p)
		out[1] = types.MaxVec3(out[1], p)
	}
	return out
}
