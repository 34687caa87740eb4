package pathtrace

import (
	"fmt"

	"github.com/achilleasa/ptlive/types"
)

// Convention selects how derived records express primitive geometry. All
// producers and consumers of a session must agree on one convention.
type Convention uint8

const (
	// Corners are symmetric around the local origin and each record carries
	// the inverse world matrix. Rotated and scaled primitives are represented
	// exactly.
	LocalSpace Convention = iota

	// Corners are offset by the world position of the object and no matrix
	// is attached. Rotation and scale are ignored.
	WorldPosition
)

func (c Convention) String() string {
	switch c {
	case LocalSpace:
		return "local"
	case WorldPosition:
		return "world-position"
	}
	return fmt.Sprintf("Convention(%d)", uint8(c))
}

func (c Convention) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Convention) UnmarshalText(text []byte) error {
	conv, err := ParseConvention(string(text))
	if err != nil {
		return err
	}
	*c = conv
	return nil
}

// ParseConvention maps "local" or "world-position" to a Convention.
func ParseConvention(name string) (Convention, error) {
	switch name {
	case "", "local":
		return LocalSpace, nil
	case "world-position", "world":
		return WorldPosition, nil
	}
	return LocalSpace, fmt.Errorf("pathtrace: unknown convention %q", name)
}

// Deriver builds path tracing records out of renderable sources.
type Deriver struct {
	Convention Convention
}

// Derive a box record. The source's world matrix is refreshed first.
// Corners satisfy min <= max per axis for non-negative dimensions.
func (d Deriver) Box(src BoxSource, material MaterialType) PathTracingBox {
	src.UpdateMatrixWorld()

	half := src.BoxDimensions().Mul(0.5)
	box := PathTracingBox{
		MinCorner: half.Mul(-1),
		MaxCorner: half,
		Color:     surfaceColor(src),
		Emission:  src.SurfaceEmission(),
		Type:      material,
	}

	switch d.Convention {
	case WorldPosition:
		pos := src.WorldPosition()
		box.MinCorner = pos.Sub(half)
		box.MaxCorner = pos.Add(half)
	default:
		box.InvMatrix = inverseWorld(src)
	}
	return box
}

// Derive a sphere record. The source's world matrix is refreshed first.
func (d Deriver) Sphere(src SphereSource, material MaterialType) PathTracingSphere {
	src.UpdateMatrixWorld()

	sphere := PathTracingSphere{
		Radius:   src.SphereRadius(),
		Color:    surfaceColor(src),
		Emission: src.SurfaceEmission(),
		Type:     material,
	}

	switch d.Convention {
	case WorldPosition:
		sphere.Position = src.WorldPosition()
	default:
		sphere.InvMatrix = inverseWorld(src)
	}
	return sphere
}

func surfaceColor(src Surface) types.Vec3 {
	if color, ok := src.SurfaceColor(); ok {
		return color
	}
	return types.Vec3{}
}

func inverseWorld(src Surface) *types.Mat4 {
	inv := src.MatrixWorld().Inv()
	return &inv
}
