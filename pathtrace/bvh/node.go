package bvh

import "github.com/achilleasa/ptlive/types"

// Bvh nodes are comprised of two Vec3 and two multipurpose int32 parameters
// whose value depends on the node type:
//
// - For non-leaf nodes they are both > 0 and point to the L/R child nodes
// - For leafs:
//   - left data is <= 0 and holds the negated index of the first primitive
//   - right data is > 0 and contains the count of leaf primitives
type Node struct {
	Min   types.Vec3 `json:"min"`
	LData int32      `json:"l"`

	Max   types.Vec3 `json:"max"`
	RData int32      `json:"r"`
}

// Set bounding box.
func (n *Node) SetBBox(bbox [2]types.Vec3) {
	n.Min = bbox[0]
	n.Max = bbox[1]
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Set primitive index and count.
func (n *Node) SetPrimitives(firstPrimIndex, count uint32) {
	n.LData = -int32(firstPrimIndex)
	n.RData = int32(count)
}

// Get primitive index and count.
func (n *Node) GetPrimitives() (firstPrimIndex, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// Returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.LData <= 0
}
