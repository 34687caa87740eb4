package scene

import "github.com/achilleasa/ptlive/types"

type GeometryType uint8

const (
	BoxGeometryType GeometryType = iota
	SphereGeometryType
)

func (t GeometryType) String() string {
	switch t {
	case BoxGeometryType:
		return "BoxGeometry"
	case SphereGeometryType:
		return "SphereGeometry"
	}
	return "Unknown"
}

// Geometry describes the shape of a mesh in its local frame.
type Geometry interface {
	GeometryType() GeometryType
}

// An axis-aligned box centered at the local origin.
type BoxGeometry struct {
	Width  float32
	Height float32
	Depth  float32
}

// Create new box geometry.
func NewBoxGeometry(width, height, depth float32) *BoxGeometry {
	return &BoxGeometry{Width: width, Height: height, Depth: depth}
}

func (g *BoxGeometry) GeometryType() GeometryType { return BoxGeometryType }

// Get the box dimensions as a vector.
func (g *BoxGeometry) Dimensions() types.Vec3 {
	return types.XYZ(g.Width, g.Height, g.Depth)
}

// A sphere centered at the local origin.
type SphereGeometry struct {
	Radius float32
}

// Create new sphere geometry.
func NewSphereGeometry(radius float32) *SphereGeometry {
	return &SphereGeometry{Radius: radius}
}

func (g *SphereGeometry) GeometryType() GeometryType { return SphereGeometryType }
