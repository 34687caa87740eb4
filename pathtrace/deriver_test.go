package pathtrace

import (
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/ptlive/scene"
	"github.com/achilleasa/ptlive/types"
)

func boxSource(t *testing.T, mesh *scene.Mesh) BoxSource {
	t.Helper()
	bs, ok := MeshSource(mesh).AsBoxSource()
	if !ok {
		t.Fatalf("expected mesh %q to be a box source", mesh.Name())
	}
	return bs
}

func TestDeriveBoxAtOrigin(t *testing.T) {
	mesh := scene.NewMesh("box", scene.NewBoxGeometry(2, 4, 6), scene.NewStandardMaterial(types.XYZ(1, 0.5, 0.25)))

	for _, conv := range []Convention{LocalSpace, WorldPosition} {
		box := Deriver{Convention: conv}.Box(boxSource(t, mesh), Diffuse)
		if exp := types.XYZ(-1, -2, -3); box.MinCorner != exp {
			t.Fatalf("[%s] expected min corner %v; got %v", conv, exp, box.MinCorner)
		}
		if exp := types.XYZ(1, 2, 3); box.MaxCorner != exp {
			t.Fatalf("[%s] expected max corner %v; got %v", conv, exp, box.MaxCorner)
		}
		if exp := types.XYZ(1, 0.5, 0.25); box.Color != exp {
			t.Fatalf("[%s] expected color %v; got %v", conv, exp, box.Color)
		}
		if box.Type != Diffuse {
			t.Fatalf("[%s] expected material type %s; got %s", conv, Diffuse, box.Type)
		}
	}
}

func TestDeriveTranslatedBox(t *testing.T) {
	mesh := scene.NewMesh("box", scene.NewBoxGeometry(2, 4, 6), scene.NewStandardMaterial(types.XYZ(1, 1, 1)))
	mesh.SetPosition(5, 0, 0)

	box := Deriver{Convention: WorldPosition}.Box(boxSource(t, mesh), Diffuse)
	if exp := types.XYZ(4, -2, -3); box.MinCorner != exp {
		t.Fatalf("expected min corner %v; got %v", exp, box.MinCorner)
	}
	if exp := types.XYZ(6, 2, 3); box.MaxCorner != exp {
		t.Fatalf("expected max corner %v; got %v", exp, box.MaxCorner)
	}
	if box.InvMatrix != nil {
		t.Fatal("expected no inverse matrix for world-position boxes")
	}

	local := Deriver{Convention: LocalSpace}.Box(boxSource(t, mesh), Diffuse)
	if local.MinCorner != types.XYZ(-1, -2, -3) || local.MaxCorner != types.XYZ(1, 2, 3) {
		t.Fatalf("expected local corners to ignore the translation; got %v - %v", local.MinCorner, local.MaxCorner)
	}
	if local.InvMatrix == nil {
		t.Fatal("expected an inverse world matrix for local boxes")
	}
	if got := local.InvMatrix.TransformPoint(types.XYZ(5, 0, 0)); !got.ApproxEqual(types.Vec3{}, 1e-6) {
		t.Fatalf("expected inverse matrix to map the world position to the local origin; got %v", got)
	}

	bbox := local.BBox()
	if !bbox[0].ApproxEqual(types.XYZ(4, -2, -3), 1e-5) || !bbox[1].ApproxEqual(types.XYZ(6, 2, 3), 1e-5) {
		t.Fatalf("expected world bounds to match the translated box; got %v - %v", bbox[0], bbox[1])
	}
}

func TestDeriveRotatedBoxBounds(t *testing.T) {
	mesh := scene.NewMesh("box", scene.NewBoxGeometry(2, 2, 2), nil)
	mesh.SetAxisRotation(types.XYZ(0, 1, 0), math.Pi/4)

	box := Deriver{}.Box(boxSource(t, mesh), Diffuse)
	bbox := box.BBox()
	r := float32(math.Sqrt2)
	if !bbox[0].ApproxEqual(types.XYZ(-r, -1, -r), 1e-5) || !bbox[1].ApproxEqual(types.XYZ(r, 1, r), 1e-5) {
		t.Fatalf("unexpected rotated bounds: %v - %v", bbox[0], bbox[1])
	}
}

func TestCornersOrderedForNonNegativeDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		dims := types.XYZ(rng.Float32()*100, rng.Float32()*100, rng.Float32()*100)
		if i%50 == 0 {
			dims[i%3] = 0
		}
		mesh := scene.NewMesh("box", scene.NewBoxGeometry(dims[0], dims[1], dims[2]), nil)
		mesh.SetPosition(rng.Float32()*200-100, rng.Float32()*200-100, rng.Float32()*200-100)

		for _, conv := range []Convention{LocalSpace, WorldPosition} {
			box := Deriver{Convention: conv}.Box(boxSource(t, mesh), Diffuse)
			for axis := 0; axis < 3; axis++ {
				if box.MinCorner[axis] > box.MaxCorner[axis] {
					t.Fatalf("[%d/%s] min corner %v exceeds max corner %v on axis %d", i, conv, box.MinCorner, box.MaxCorner, axis)
				}
			}
		}
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	mesh := scene.NewMesh("box", scene.NewBoxGeometry(1.1, 2.3, 3.7), scene.NewStandardMaterial(types.XYZ(0.1, 0.2, 0.3)))
	mesh.SetPosition(1.5, -2.25, 3.125)
	mesh.SetAxisRotation(types.XYZ(1, 1, 0), 0.7)
	mesh.Scale = types.XYZ(2, 0.5, 1)

	for _, conv := range []Convention{LocalSpace, WorldPosition} {
		d := Deriver{Convention: conv}
		first := d.Box(boxSource(t, mesh), Specular)
		second := d.Box(boxSource(t, mesh), Specular)
		if !first.Equal(second) {
			t.Fatalf("[%s] expected bit-identical boxes; got %+v and %+v", conv, first, second)
		}
	}
}

func TestMissingColorDefaultsToBlack(t *testing.T) {
	specs := []scene.Material{
		nil,
		&scene.StandardMaterial{Emissive: types.XYZ(3, 3, 3)},
	}
	for index, mat := range specs {
		mesh := scene.NewMesh("box", scene.NewBoxGeometry(1, 1, 1), mat)
		box := Deriver{}.Box(boxSource(t, mesh), Diffuse)
		if box.Color != (types.Vec3{}) {
			t.Fatalf("[spec %d] expected black color; got %v", index, box.Color)
		}
	}

	mesh := scene.NewMesh("lamp", scene.NewBoxGeometry(1, 1, 1), &scene.StandardMaterial{Emissive: types.XYZ(3, 3, 3)})
	if box := (Deriver{}).Box(boxSource(t, mesh), Light); box.Emission != types.XYZ(3, 3, 3) {
		t.Fatalf("expected emission to be copied from the material; got %v", box.Emission)
	}
}

func TestDeriveSphere(t *testing.T) {
	mesh := scene.NewMesh("ball", scene.NewSphereGeometry(2), scene.NewStandardMaterial(types.XYZ(0, 1, 0)))
	mesh.SetPosition(0, 3, 0)

	ss, ok := MeshSource(mesh).AsSphereSource()
	if !ok {
		t.Fatal("expected mesh to be a sphere source")
	}
	if _, ok := MeshSource(mesh).AsBoxSource(); ok {
		t.Fatal("expected sphere mesh not to be a box source")
	}

	world := Deriver{Convention: WorldPosition}.Sphere(ss, Refractive)
	if world.Position != types.XYZ(0, 3, 0) || world.Radius != 2 || world.InvMatrix != nil {
		t.Fatalf("unexpected world-position sphere: %+v", world)
	}

	local := Deriver{}.Sphere(ss, Refractive)
	bbox := local.BBox()
	if !bbox[0].ApproxEqual(types.XYZ(-2, 1, -2), 1e-5) || !bbox[1].ApproxEqual(types.XYZ(2, 5, 2), 1e-5) {
		t.Fatalf("unexpected sphere bounds: %v - %v", bbox[0], bbox[1])
	}
}

func TestParseMaterialType(t *testing.T) {
	specs := map[string]MaterialType{
		"DIFF":         Diffuse,
		"spec":         Specular,
		" metalcoat ":  MetalCoat,
		"SPOT_LIGHT":   SpotLight,
		"PBR_MATERIAL": PBR,
	}
	for name, exp := range specs {
		got, err := ParseMaterialType(name)
		if err != nil || got != exp {
			t.Fatalf("[%s] expected %s; got %s (err %v)", name, exp, got, err)
		}
	}

	if _, err := ParseMaterialType("glitter"); err == nil {
		t.Fatal("expected an error for an unknown material")
	}
	if got := MaterialType(99).String(); got != "MaterialType(99)" {
		t.Fatalf("unexpected name for unknown material: %s", got)
	}
}
