package scene

import (
	"testing"

	"github.com/achilleasa/ptlive/types"
	"github.com/chewxy/math32"
)

func TestHierarchy(t *testing.T) {
	sc := NewScene("root")
	group := NewGroup("group")
	mesh := NewMesh("mesh", NewBoxGeometry(1, 1, 1), NewStandardMaterial(types.XYZ(1, 1, 1)))

	if err := sc.Add(group); err != nil {
		t.Fatal(err)
	}
	if err := group.Add(mesh); err != nil {
		t.Fatal(err)
	}

	if mesh.Parent() != Object(group) {
		t.Fatalf("expected mesh parent to be the group; got %v", mesh.Parent())
	}
	if obj, err := sc.ObjectByName("mesh"); err != nil || obj.ID() != mesh.ID() {
		t.Fatalf("expected to find mesh by name; got %v, %v", obj, err)
	}
	if obj, err := sc.ObjectByID(group.ID()); err != nil || obj.Name() != "group" {
		t.Fatalf("expected to find group by id; got %v, %v", obj, err)
	}
	if _, err := sc.ObjectByName("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound; got %v", err)
	}
	if meshes := sc.Meshes(); len(meshes) != 1 || meshes[0] != mesh {
		t.Fatalf("expected a single mesh; got %v", meshes)
	}

	// Reparenting detaches the child from its old parent.
	if err := sc.Add(mesh); err != nil {
		t.Fatal(err)
	}
	if len(group.Children()) != 0 || len(sc.Children()) != 2 {
		t.Fatalf("expected mesh to move to the scene; group has %d children, scene has %d", len(group.Children()), len(sc.Children()))
	}

	if err := group.Remove(mesh); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound when removing a non-child; got %v", err)
	}
	if err := sc.Remove(mesh); err != nil {
		t.Fatal(err)
	}
	if mesh.Parent() != nil {
		t.Fatal("expected removed mesh to have no parent")
	}
}

func TestCycleDetection(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	if err := a.Add(b); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(c); err != nil {
		t.Fatal(err)
	}

	if err := a.Add(a); err != ErrCycle {
		t.Fatalf("expected ErrCycle when adding a node to itself; got %v", err)
	}
	if err := c.Add(a); err != ErrCycle {
		t.Fatalf("expected ErrCycle when adding an ancestor; got %v", err)
	}
}

func TestWorldMatrix(t *testing.T) {
	parent := NewGroup("parent")
	parent.SetPosition(10, 0, 0)
	parent.SetAxisRotation(types.XYZ(0, 0, 1), math32.Pi/2)

	child := NewMesh("child", NewSphereGeometry(1), &BasicMaterial{})
	child.SetPosition(1, 0, 0)
	if err := parent.Add(child); err != nil {
		t.Fatal(err)
	}

	// Updating the child refreshes its ancestors first.
	child.UpdateMatrixWorld()

	exp := types.XYZ(10, 1, 0)
	if got := child.WorldPosition(); !got.ApproxEqual(exp, 1e-5) {
		t.Fatalf("expected world position %v; got %v", exp, got)
	}
	if got := parent.WorldPosition(); !got.ApproxEqual(types.XYZ(10, 0, 0), 1e-5) {
		t.Fatalf("expected parent world position to be refreshed; got %v", got)
	}

	parent.SetPosition(0, 0, 0)
	parent.UpdateMatrixWorld()
	if got := child.WorldPosition(); !got.ApproxEqual(types.XYZ(0, 1, 0), 1e-5) {
		t.Fatalf("expected descendants to be refreshed; got %v", got)
	}
}

func TestGeometryAccessors(t *testing.T) {
	box := NewMesh("box", NewBoxGeometry(1, 2, 3), nil)
	if g, ok := box.BoxGeometry(); !ok || g.Dimensions() != types.XYZ(1, 2, 3) {
		t.Fatalf("expected box dimensions (1, 2, 3); got %v (%t)", g, ok)
	}
	if _, ok := box.SphereGeometry(); ok {
		t.Fatal("expected box mesh to have no sphere geometry")
	}

	var nilBox *BoxGeometry
	empty := NewMesh("empty", nilBox, nil)
	if _, ok := empty.BoxGeometry(); ok {
		t.Fatal("expected nil geometry to be reported as missing")
	}
}

func TestPerspectiveCamera(t *testing.T) {
	cam := NewPerspectiveCamera("camera", 90)
	cam.SetPosition(0, 0, 5)
	cam.LookAt = types.XYZ(0, 0, 0)
	cam.SetupProjection(1)

	// The view matrix maps the look-at point onto the negative z axis.
	p := cam.ViewMat.TransformPoint(types.XYZ(0, 0, 0))
	if !p.ApproxEqual(types.XYZ(0, 0, -5), 1e-4) {
		t.Fatalf("expected look-at point at (0, 0, -5) in view space; got %v", p)
	}

	// Frustrum corner rays point away from the eye towards the scene.
	for i, ray := range cam.Frustrum {
		if ray[2] >= 0 {
			t.Fatalf("expected frustrum ray %d to point towards -z; got %v", i, ray)
		}
	}
}
