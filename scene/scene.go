package scene

import (
	"github.com/achilleasa/ptlive/types"
)

// Scene is the root of a scene graph.
type Scene struct {
	Node

	BgColor types.Vec3
}

func NewScene(name string) *Scene {
	s := &Scene{}
	s.init(s, SceneNode, name)
	return s
}

// Find a descendant object by its identifier.
func (s *Scene) ObjectByID(id uint64) (Object, error) {
	var found Object
	s.Traverse(func(o Object) bool {
		if o.ID() == id {
			found = o
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Find the first descendant object with the given name.
func (s *Scene) ObjectByName(name string) (Object, error) {
	var found Object
	s.Traverse(func(o Object) bool {
		if o.Name() == name {
			found = o
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Get all meshes in the scene in depth-first order.
func (s *Scene) Meshes() []*Mesh {
	meshes := make([]*Mesh, 0)
	s.Traverse(func(o Object) bool {
		if m, ok := o.(*Mesh); ok {
			meshes = append(meshes, m)
		}
		return true
	})
	return meshes
}
