package pathtrace

import (
	"strconv"

	"github.com/achilleasa/ptlive/scene"
	"github.com/achilleasa/ptlive/types"
)

// Surface is the part of a renderable shared by all primitive kinds.
type Surface interface {
	// Diffuse color of the surface; ok is false if it does not define one.
	SurfaceColor() (color types.Vec3, ok bool)
	SurfaceEmission() types.Vec3

	UpdateMatrixWorld()
	MatrixWorld() types.Mat4
	WorldPosition() types.Vec3
}

// BoxSource is a renderable with box geometry.
type BoxSource interface {
	Surface
	BoxDimensions() types.Vec3
}

// SphereSource is a renderable with sphere geometry.
type SphereSource interface {
	Surface
	SphereRadius() float32
}

// Source is implemented by anything that can be published to the tracer.
// At most one of the accessors reports ok for a given source state.
type Source interface {
	// Identifier used as the key in the session's record mappings.
	SourceID() string

	AsBoxSource() (BoxSource, bool)
	AsSphereSource() (SphereSource, bool)
}

// MeshSource adapts a scene mesh into a Source.
func MeshSource(mesh *scene.Mesh) Source {
	return meshSource{mesh: mesh}
}

type meshSource struct {
	mesh *scene.Mesh
}

func (s meshSource) SourceID() string {
	return ObjectKey(s.mesh)
}

// Get the record key used for a scene object.
func ObjectKey(obj scene.Object) string {
	return strconv.FormatUint(obj.ID(), 10)
}

func (s meshSource) AsBoxSource() (BoxSource, bool) {
	g, ok := s.mesh.BoxGeometry()
	if !ok {
		return nil, false
	}
	return meshBox{meshSurface{s.mesh}, g}, true
}

func (s meshSource) AsSphereSource() (SphereSource, bool) {
	g, ok := s.mesh.SphereGeometry()
	if !ok {
		return nil, false
	}
	return meshSphere{meshSurface{s.mesh}, g}, true
}

type meshSurface struct {
	*scene.Mesh
}

func (s meshSurface) SurfaceColor() (types.Vec3, bool) {
	switch mat := s.Material.(type) {
	case *scene.StandardMaterial:
		if mat != nil && mat.Color != nil {
			return *mat.Color, true
		}
	case *scene.BasicMaterial:
		if mat != nil {
			return mat.Color, true
		}
	}
	return types.Vec3{}, false
}

func (s meshSurface) SurfaceEmission() types.Vec3 {
	if mat, ok := s.Material.(*scene.StandardMaterial); ok && mat != nil {
		return mat.Emissive
	}
	return types.Vec3{}
}

type meshBox struct {
	meshSurface
	geometry *scene.BoxGeometry
}

func (b meshBox) BoxDimensions() types.Vec3 {
	return b.geometry.Dimensions()
}

type meshSphere struct {
	meshSurface
	geometry *scene.SphereGeometry
}

func (s meshSphere) SphereRadius() float32 {
	return s.geometry.Radius
}
