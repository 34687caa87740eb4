package pathtrace

import (
	"fmt"

	"github.com/achilleasa/ptlive/component"
	"github.com/achilleasa/ptlive/scene"
)

const (
	// PluginName is the name under which Plugin is injected into a host.
	PluginName = "pathTracing"

	// Marker prop: only meshes that declare it are published to the tracer.
	DynamicProp = "ptDynamic"

	// Optional material override, either a material name ("SPEC") or code.
	MaterialProp = "ptMaterial"
)

// Plugin returns a component plugin that registers every mesh declaring the
// ptDynamic prop with sess.
func Plugin(sess *Session) component.PluginFunc {
	return func(inst *component.Instance, ref any, props component.Props) *component.Hooks {
		mesh, ok := ref.(*scene.Mesh)
		if !ok || mesh == nil || !props.Has(DynamicProp) {
			return nil
		}

		material, err := MaterialFromProps(props)
		if err != nil {
			logger.Warningf("mesh %q: %v; using %s", mesh.Name(), err, Diffuse)
		}

		reg := sess.Register(MeshSource(mesh), material)
		inst.OnDestroy(reg.Unmount)

		return &component.Hooks{
			OnMount: reg.Mount,
			OnRefChange: func(ref any) {
				if m, ok := ref.(*scene.Mesh); ok && m != nil {
					reg.SetSource(MeshSource(m))
					return
				}
				logger.Debugf("ref changed to %T; unregistering", ref)
				reg.SetSource(nil)
			},
			OnPropsChange: func(props component.Props) {
				material, err := MaterialFromProps(props)
				if err != nil {
					logger.Warningf("mesh %q: %v; keeping previous material", mesh.Name(), err)
					return
				}
				reg.SetMaterial(material)
			},
			PluginProps: []string{DynamicProp, MaterialProp},
		}
	}
}

// MaterialFromProps reads the ptMaterial prop. A missing prop yields Diffuse.
func MaterialFromProps(props component.Props) (MaterialType, error) {
	raw, ok := props[MaterialProp]
	if !ok || raw == nil {
		return Diffuse, nil
	}

	var code MaterialType
	switch v := raw.(type) {
	case MaterialType:
		code = v
	case string:
		t, err := ParseMaterialType(v)
		if err != nil {
			return Diffuse, err
		}
		return t, nil
	case int:
		code = MaterialType(v)
	case int32:
		code = MaterialType(v)
	case int64:
		code = MaterialType(v)
	case float64:
		if v != float64(int32(v)) {
			return Diffuse, fmt.Errorf("%w: %v", ErrInvalidMaterialProp, v)
		}
		code = MaterialType(v)
	default:
		return Diffuse, fmt.Errorf("%w: %T", ErrInvalidMaterialProp, raw)
	}

	if !code.Valid() {
		return Diffuse, fmt.Errorf("%w: %d", ErrUnknownMaterialType, int32(code))
	}
	return code, nil
}
