package scene

import "github.com/achilleasa/ptlive/types"

type MaterialClass uint8

const (
	StandardMaterialClass MaterialClass = iota
	BasicMaterialClass
)

// Material describes the surface of a mesh.
type Material interface {
	MaterialClass() MaterialClass
}

// A physically based material.
type StandardMaterial struct {
	// Diffuse color. A nil color means the material does not define one.
	Color *types.Vec3

	// Emissive color.
	Emissive types.Vec3

	Roughness float32
	Metalness float32
}

// Create a standard material with the given diffuse color.
func NewStandardMaterial(color types.Vec3) *StandardMaterial {
	return &StandardMaterial{Color: &color, Roughness: 1}
}

func (m *StandardMaterial) MaterialClass() MaterialClass { return StandardMaterialClass }

// An unlit material.
type BasicMaterial struct {
	Color types.Vec3
}

func (m *BasicMaterial) MaterialClass() MaterialClass { return BasicMaterialClass }
