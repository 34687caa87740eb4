package pathtrace

import (
	"fmt"
	"strings"
)

// MaterialType is the integer material code understood by the tracer shaders.
type MaterialType int32

const (
	SpotLight   MaterialType = -2
	PointLight  MaterialType = -1
	Light       MaterialType = 0
	Diffuse     MaterialType = 1
	Refractive  MaterialType = 2
	Specular    MaterialType = 3
	Coat        MaterialType = 4
	CarCoat     MaterialType = 5
	Translucent MaterialType = 6
	SpecSub     MaterialType = 7
	Checker     MaterialType = 8
	Water       MaterialType = 9
	PBR         MaterialType = 10
	Wood        MaterialType = 11
	SeaFloor    MaterialType = 12
	Terrain     MaterialType = 13
	Cloth       MaterialType = 14
	LightWood   MaterialType = 15
	DarkWood    MaterialType = 16
	Painting    MaterialType = 17
	MetalCoat   MaterialType = 18
)

var materialTypeNames = map[MaterialType]string{
	SpotLight:   "SPOT_LIGHT",
	PointLight:  "POINT_LIGHT",
	Light:       "LIGHT",
	Diffuse:     "DIFF",
	Refractive:  "REFR",
	Specular:    "SPEC",
	Coat:        "COAT",
	CarCoat:     "CARCOAT",
	Translucent: "TRANSLUCENT",
	SpecSub:     "SPECSUB",
	Checker:     "CHECK",
	Water:       "WATER",
	PBR:         "PBR_MATERIAL",
	Wood:        "WOOD",
	SeaFloor:    "SEAFLOOR",
	Terrain:     "TERRAIN",
	Cloth:       "CLOTH",
	LightWood:   "LIGHTWOOD",
	DarkWood:    "DARKWOOD",
	Painting:    "PAINTING",
	MetalCoat:   "METALCOAT",
}

func (t MaterialType) String() string {
	if name, ok := materialTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MaterialType(%d)", int32(t))
}

// Valid returns true if t is one of the known material codes.
func (t MaterialType) Valid() bool {
	_, ok := materialTypeNames[t]
	return ok
}

// ParseMaterialType maps a material name (case-insensitive) such as "DIFF" or
// "spec" to its code.
func ParseMaterialType(name string) (MaterialType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range materialTypeNames {
		if n == upper {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaterialType, name)
}
