package bvh

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/achilleasa/ptlive/types"
)

type testVolume struct {
	min, max types.Vec3
}

func (v testVolume) BBox() [2]types.Vec3 { return [2]types.Vec3{v.min, v.max} }
func (v testVolume) Center() types.Vec3  { return v.min.Add(v.max).Mul(0.5) }

func cornerVolumes() []BoundedVolume {
	return []BoundedVolume{
		testVolume{types.Vec3{-2, 0, -2}, types.Vec3{-1, 1, -1}},
		testVolume{types.Vec3{1, 0, -2}, types.Vec3{2, 1, -1}},
		testVolume{types.Vec3{-2, 0, 1}, types.Vec3{-1, 1, 2}},
		testVolume{types.Vec3{1, 0, 1}, types.Vec3{2, 1, 2}},
	}
}

func TestLeafCallback(t *testing.T) {
	type spec struct {
		minLeafItems     int
		expLeafItemCount int
		expLeafs         int
		expNodes         int
	}
	specs := []spec{
		{1, 1, 4, 7},
		{2, 2, 2, 3},
		{4, 4, 1, 1},
	}

	for index, s := range specs {
		leafs := 0
		cb := func(leaf *Node, itemList []BoundedVolume) {
			leafs++
			if len(itemList) != s.expLeafItemCount {
				t.Fatalf("[spec %d] expected leaf callback to be called with %d items; got %d", index, s.expLeafItemCount, len(itemList))
			}
		}

		treeNodes := Build(cornerVolumes(), s.minLeafItems, cb, SurfaceAreaHeuristic)
		if leafs != s.expLeafs {
			t.Fatalf("[spec %d] expected leaf callback to be called %d times; called %d", index, s.expLeafs, leafs)
		}
		if len(treeNodes) != s.expNodes {
			t.Fatalf("[spec %d] expected bvh tree to have %d nodes; got %d", index, s.expNodes, len(treeNodes))
		}
	}
}

func TestRootBoundsAndDeterminism(t *testing.T) {
	noop := func(*Node, []BoundedVolume) {}

	first := Build(cornerVolumes(), 1, noop, SurfaceAreaHeuristic)
	second := Build(cornerVolumes(), 1, noop, SurfaceAreaHeuristic)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical trees for identical input (-first +second):\n%s", diff)
	}

	root := first[0]
	if root.Min != (types.Vec3{-2, 0, -2}) || root.Max != (types.Vec3{2, 1, 2}) {
		t.Fatalf("unexpected root bounds: %v - %v", root.Min, root.Max)
	}
	if root.IsLeaf() {
		t.Fatal("expected root to be an inner node")
	}
}

func TestEmptyWorkList(t *testing.T) {
	nodes := Build(nil, 1, func(*Node, []BoundedVolume) {}, SurfaceAreaHeuristic)
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes; got %d", len(nodes))
	}
}
