package pathtrace

import "errors"

var (
	ErrUnknownMaterialType = errors.New("pathtrace: unknown material type")
	ErrInvalidMaterialProp = errors.New("pathtrace: material property must be a material name or code")
)
