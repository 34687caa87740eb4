package pathtrace

import (
	"testing"

	"github.com/achilleasa/ptlive/types"
)

func TestBoxMappingIsReplacedOnWrite(t *testing.T) {
	sess := NewSession(LocalSpace, nil)

	var published []map[string]PathTracingBox
	sess.BoxCell().Subscribe(func(m map[string]PathTracingBox) { published = append(published, m) })

	sess.SetBox("a", PathTracingBox{MaxCorner: types.XYZ(1, 1, 1)})
	sess.SetBox("b", PathTracingBox{MaxCorner: types.XYZ(2, 2, 2)})
	sess.DeleteBox("a")
	sess.DeleteBox("missing")

	if len(published) != 4 {
		t.Fatalf("expected initial value plus 3 notifications; got %d", len(published))
	}
	if len(published[1]) != 1 || len(published[2]) != 2 || len(published[3]) != 1 {
		t.Fatalf("expected earlier snapshots to be left untouched; got sizes %d, %d, %d", len(published[1]), len(published[2]), len(published[3]))
	}
	if _, ok := published[3]["a"]; ok {
		t.Fatal("expected deleted key to be absent from the latest snapshot")
	}
}

func TestBoxesReturnsPrivateCopy(t *testing.T) {
	sess := NewSession(LocalSpace, nil)
	sess.SetBox("a", PathTracingBox{})

	boxes := sess.Boxes()
	delete(boxes, "a")
	if _, ok := sess.Box("a"); !ok {
		t.Fatal("expected mutations of the copy not to leak into the session")
	}
}

func TestSnapshotCapturesParams(t *testing.T) {
	sess := NewSession(WorldPosition, nil)
	sess.PixelRatio().Set(0.5)
	sess.SamplesPerFrame().Set(4)
	sess.RendererSize().Set([2]uint32{640, 480})
	sess.CameraIsMoving().Set(true)
	sess.SceneInitiated().Set(true)
	sess.SetSphere("s", PathTracingSphere{Radius: 1})
	sess.Loop().Tick(0)

	snap := sess.Snapshot()
	if snap.Frame != 1 || snap.Convention != WorldPosition {
		t.Fatalf("unexpected snapshot header: frame %d, convention %s", snap.Frame, snap.Convention)
	}
	exp := Params{
		SceneInitiated:   true,
		CameraIsMoving:   true,
		PixelRatio:       0.5,
		SamplesPerFrame:  4,
		EpsilonIntersect: 0.01,
		RendererSize:     [2]uint32{640, 480},
	}
	if snap.Params != exp {
		t.Fatalf("expected params %+v; got %+v", exp, snap.Params)
	}
	if len(snap.Spheres) != 1 || len(snap.Boxes) != 0 {
		t.Fatalf("unexpected record counts: %d boxes, %d spheres", len(snap.Boxes), len(snap.Spheres))
	}
}
