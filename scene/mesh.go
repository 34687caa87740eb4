package scene

// Mesh is a renderable node that combines a geometry with a material.
type Mesh struct {
	Node

	Geometry Geometry
	Material Material
}

// Create a new mesh.
func NewMesh(name string, geometry Geometry, material Material) *Mesh {
	m := &Mesh{
		Geometry: geometry,
		Material: material,
	}
	m.init(m, MeshNode, name)
	return m
}

// Get the box geometry of the mesh, if it has one.
func (m *Mesh) BoxGeometry() (*BoxGeometry, bool) {
	g, ok := m.Geometry.(*BoxGeometry)
	return g, ok && g != nil
}

// Get the sphere geometry of the mesh, if it has one.
func (m *Mesh) SphereGeometry() (*SphereGeometry, bool) {
	g, ok := m.Geometry.(*SphereGeometry)
	return g, ok && g != nil
}
