package scene

import (
	"sync/atomic"

	"github.com/achilleasa/ptlive/types"
)

type NodeType uint8

const (
	GroupNode NodeType = iota
	MeshNode
	PerspectiveCameraNode
	OrthographicCameraNode
	SceneNode
)

func (t NodeType) String() string {
	switch t {
	case GroupNode:
		return "Group"
	case MeshNode:
		return "Mesh"
	case PerspectiveCameraNode:
		return "PerspectiveCamera"
	case OrthographicCameraNode:
		return "OrthographicCamera"
	case SceneNode:
		return "Scene"
	}
	return "Unknown"
}

// Node identifiers are unique for the lifetime of the process.
var lastNodeID uint64

// Object is implemented by every scene graph node.
type Object interface {
	ID() uint64
	Name() string
	Type() NodeType

	// Base returns the embedded node that stores the object's transform
	// and hierarchy.
	Base() *Node

	Parent() Object
	Children() []Object

	// Recalculate the world matrix of the object, its ancestors and its
	// descendants.
	UpdateMatrixWorld()
	MatrixWorld() types.Mat4
	WorldPosition() types.Vec3
}

// Node stores the transform and hierarchy shared by all scene objects.
type Node struct {
	id       uint64
	name     string
	nodeType NodeType

	Position types.Vec3
	Rotation types.Quat
	Scale    types.Vec3

	self     Object
	parent   Object
	children []Object

	matrix      types.Mat4
	matrixWorld types.Mat4
}

// Initialize the node. self is the object that embeds the node and is the
// value reported to children as their parent.
func (n *Node) init(self Object, nodeType NodeType, name string) {
	n.id = atomic.AddUint64(&lastNodeID, 1)
	n.name = name
	n.nodeType = nodeType
	n.Rotation = types.QuatIdent()
	n.Scale = types.XYZ(1, 1, 1)
	n.self = self
	n.matrix = types.Ident4()
	n.matrixWorld = types.Ident4()
}

// Create a new group node.
func NewGroup(name string) *Node {
	n := &Node{}
	n.init(n, GroupNode, name)
	return n
}

func (n *Node) ID() uint64       { return n.id }
func (n *Node) Name() string     { return n.name }
func (n *Node) Type() NodeType   { return n.nodeType }
func (n *Node) Base() *Node      { return n }
func (n *Node) Parent() Object   { return n.parent }
func (n *Node) SetName(s string) { n.name = s }

// Get a copy of the node's children.
func (n *Node) Children() []Object {
	out := make([]Object, len(n.children))
	copy(out, n.children)
	return out
}

// Add a child object, detaching it from its previous parent.
func (n *Node) Add(child Object) error {
	cb := child.Base()
	if cb == n {
		return ErrCycle
	}
	for p := n.parent; p != nil; p = p.Parent() {
		if p.Base() == cb {
			return ErrCycle
		}
	}

	if cb.parent != nil {
		cb.parent.Base().removeChild(cb)
	}
	cb.parent = n.self
	n.children = append(n.children, cb.self)
	return nil
}

// Remove a direct child.
func (n *Node) Remove(child Object) error {
	cb := child.Base()
	if cb.parent == nil || cb.parent.Base() != n {
		return ErrNotFound
	}
	n.removeChild(cb)
	cb.parent = nil
	return nil
}

func (n *Node) removeChild(cb *Node) {
	for i, c := range n.children {
		if c.Base() == cb {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Visit the node and all its descendants depth-first. Traversal stops early
// if fn returns false.
func (n *Node) Traverse(fn func(Object) bool) bool {
	if !fn(n.self) {
		return false
	}
	for _, c := range n.children {
		if !c.Base().Traverse(fn) {
			return false
		}
	}
	return true
}

// Set the node position.
func (n *Node) SetPosition(x, y, z float32) {
	n.Position = types.XYZ(x, y, z)
}

// Set the node rotation from an axis and an angle in radians.
func (n *Node) SetAxisRotation(axis types.Vec3, angle float32) {
	n.Rotation = types.QuatFromAxisAngle(axis, angle)
}

// Get the local transform computed by the last world matrix update.
func (n *Node) Matrix() types.Mat4 {
	return n.matrix
}

// Get the world matrix computed by the last world matrix update.
func (n *Node) MatrixWorld() types.Mat4 {
	return n.matrixWorld
}

// Get the world space position computed by the last world matrix update.
func (n *Node) WorldPosition() types.Vec3 {
	return n.matrixWorld.Translation()
}

func (n *Node) UpdateMatrixWorld() {
	if n.parent != nil {
		n.parent.Base().updateAncestors()
	}
	n.updateDescendants()
}

func (n *Node) updateAncestors() {
	if n.parent != nil {
		n.parent.Base().updateAncestors()
	}
	n.updateSelf()
}

func (n *Node) updateDescendants() {
	n.updateSelf()
	for _, c := range n.children {
		c.Base().updateDescendants()
	}
}

func (n *Node) updateSelf() {
	n.matrix = types.Compose4(n.Position, n.Rotation, n.Scale)
	if n.parent == nil {
		n.matrixWorld = n.matrix
		return
	}
	n.matrixWorld = n.parent.MatrixWorld().Mul4(n.matrix)
}
