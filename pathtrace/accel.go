package pathtrace

import (
	"sort"

	"github.com/achilleasa/ptlive/pathtrace/bvh"
	"github.com/achilleasa/ptlive/types"
)

type PrimitiveKind string

const (
	BoxPrimitive    PrimitiveKind = "box"
	SpherePrimitive PrimitiveKind = "sphere"
)

// PrimitiveRef points to a record in a snapshot mapping.
type PrimitiveRef struct {
	Kind PrimitiveKind `json:"kind"`
	ID   string        `json:"id"`
}

// Accel is a BVH over the world space bounds of a snapshot's records. Leaf
// nodes index into Primitives.
type Accel struct {
	Nodes      []bvh.Node     `json:"nodes"`
	Primitives []PrimitiveRef `json:"primitives"`
}

type boundedRecord struct {
	ref    PrimitiveRef
	bbox   [2]types.Vec3
	center types.Vec3
}

func (r boundedRecord) BBox() [2]types.Vec3 { return r.bbox }
func (r boundedRecord) Center() types.Vec3  { return r.center }

// Build a BVH over all records in the snapshot. Records are visited in key
// order so identical snapshots produce identical trees.
func BuildAccel(snap Snapshot, minLeafItems int) Accel {
	workList := make([]bvh.BoundedVolume, 0, len(snap.Boxes)+len(snap.Spheres))
	for _, id := range sortedKeys(snap.Boxes) {
		box := snap.Boxes[id]
		workList = append(workList, boundedRecord{PrimitiveRef{BoxPrimitive, id}, box.BBox(), box.Center()})
	}
	for _, id := range sortedKeys(snap.Spheres) {
		sphere := snap.Spheres[id]
		workList = append(workList, boundedRecord{PrimitiveRef{SpherePrimitive, id}, sphere.BBox(), sphere.Center()})
	}

	accel := Accel{Primitives: make([]PrimitiveRef, 0, len(workList))}
	leafCb := func(leaf *bvh.Node, items []bvh.BoundedVolume) {
		leaf.SetPrimitives(uint32(len(accel.Primitives)), uint32(len(items)))
		for _, item := range items {
			accel.Primitives = append(accel.Primitives, item.(boundedRecord).ref)
		}
	}
	accel.Nodes = bvh.Build(workList, minLeafItems, leafCb, bvh.SurfaceAreaHeuristic)
	return accel
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
