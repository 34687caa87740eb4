package pathtrace

import (
	"errors"
	"testing"

	"github.com/achilleasa/ptlive/component"
	"github.com/achilleasa/ptlive/scene"
)

func TestPluginRegistersMarkedMeshes(t *testing.T) {
	sess := NewSession(LocalSpace, nil)
	host := component.NewHost()
	host.Inject(PluginName, Plugin(sess))

	marked := newBoxMesh("marked")
	unmarked := newBoxMesh("unmarked")
	group := scene.NewGroup("group")

	markedInst := host.Mount(marked, component.Props{DynamicProp: true, MaterialProp: "SPEC"})
	host.Mount(unmarked, component.Props{})
	host.Mount(group, component.Props{DynamicProp: true})

	boxes := sess.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("expected exactly one published box; got %d", len(boxes))
	}
	box, ok := boxes[MeshSource(marked).SourceID()]
	if !ok {
		t.Fatal("expected the marked mesh to be published")
	}
	if box.Type != Specular {
		t.Fatalf("expected material override %s; got %s", Specular, box.Type)
	}
	if markedInst.Props().Has(DynamicProp) || markedInst.Props().Has(MaterialProp) {
		t.Fatal("expected plugin props to be consumed")
	}

	markedInst.SetProps(component.Props{DynamicProp: true, MaterialProp: 18})
	if box, _ := sess.Box(MeshSource(marked).SourceID()); box.Type != MetalCoat {
		t.Fatalf("expected material update to %s; got %s", MetalCoat, box.Type)
	}

	markedInst.Destroy()
	if len(sess.Boxes()) != 0 {
		t.Fatal("expected destroy to remove the published box")
	}
	if sess.Loop().Len() != 0 {
		t.Fatal("expected destroy to remove the frame subscription")
	}
}

func TestPluginRefChange(t *testing.T) {
	sess := NewSession(LocalSpace, nil)
	host := component.NewHost()
	host.Inject(PluginName, Plugin(sess))

	first := newBoxMesh("first")
	second := newBoxMesh("second")
	inst := host.Mount(first, component.Props{DynamicProp: nil})

	inst.SetRef(second)
	if _, ok := sess.Box(MeshSource(second).SourceID()); !ok {
		t.Fatal("expected the new reference to be published")
	}
	if _, ok := sess.Box(MeshSource(first).SourceID()); ok {
		t.Fatal("expected the old reference to be removed")
	}

	inst.SetRef("not a mesh")
	if len(sess.Boxes()) != 0 {
		t.Fatal("expected a non-mesh reference to unregister")
	}
}

func TestMaterialFromProps(t *testing.T) {
	type spec struct {
		props  component.Props
		exp    MaterialType
		expErr error
	}
	specs := []spec{
		{component.Props{}, Diffuse, nil},
		{component.Props{MaterialProp: "coat"}, Coat, nil},
		{component.Props{MaterialProp: Water}, Water, nil},
		{component.Props{MaterialProp: float64(-2)}, SpotLight, nil},
		{component.Props{MaterialProp: int64(11)}, Wood, nil},
		{component.Props{MaterialProp: 1.5}, Diffuse, ErrInvalidMaterialProp},
		{component.Props{MaterialProp: 42}, Diffuse, ErrUnknownMaterialType},
		{component.Props{MaterialProp: "sparkly"}, Diffuse, ErrUnknownMaterialType},
		{component.Props{MaterialProp: []int{1}}, Diffuse, ErrInvalidMaterialProp},
	}

	for index, s := range specs {
		got, err := MaterialFromProps(s.props)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
		if got != s.exp {
			t.Fatalf("[spec %d] expected %s; got %s", index, s.exp, got)
		}
	}
}
