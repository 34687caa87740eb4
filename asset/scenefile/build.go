package scenefile

import (
	"github.com/achilleasa/ptlive/component"
	"github.com/achilleasa/ptlive/frame"
	"github.com/achilleasa/ptlive/pathtrace"
	"github.com/achilleasa/ptlive/scene"
	"github.com/achilleasa/ptlive/types"
	"github.com/chewxy/math32"
)

const defaultFOV float32 = 45

// Mount pairs a built object with the props it should be mounted with.
type Mount struct {
	Object scene.Object
	Props  component.Props
}

// Built is the result of building a description.
type Built struct {
	Scene  *scene.Scene
	Camera *scene.PerspectiveCamera

	// Objects that declare props, in depth-first order.
	Mounts []Mount

	animations []animation
}

type animation struct {
	node       *scene.Node
	velocity   types.Vec3
	spinAxis   types.Vec3
	spinRadSec float32
}

// Build a scene graph out of the description. The description is validated
// first.
func (d *Description) Build() (*Built, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	sc := scene.NewScene(d.Name)
	if d.Background != nil {
		sc.BgColor = d.Background.vec()
	}

	built := &Built{
		Scene:  sc,
		Camera: d.Camera.build(),
	}
	for index := range d.Nodes {
		obj := built.buildNode(&d.Nodes[index])
		if err := sc.Add(obj); err != nil {
			return nil, err
		}
	}
	sc.UpdateMatrixWorld()
	return built, nil
}

// Advance all animated nodes by the elapsed time of delta.
func (b *Built) Animate(delta frame.Delta) {
	secs := float32(delta.Elapsed.Seconds())
	if secs <= 0 {
		return
	}
	for _, a := range b.animations {
		a.node.Position = a.node.Position.Add(a.velocity.Mul(secs))
		if a.spinRadSec != 0 {
			spin := types.QuatFromAxisAngle(a.spinAxis, a.spinRadSec*secs)
			a.node.Rotation = spin.Mul(a.node.Rotation).Normalize()
		}
	}
}

// Get the number of animated nodes.
func (b *Built) Animated() int {
	return len(b.animations)
}

// Subscribe the animations to loop. Attach before mounting so that
// registrations see the updated transforms within the same frame.
func (b *Built) Attach(loop *frame.Loop) (detach func()) {
	if len(b.animations) == 0 {
		return func() {}
	}
	return loop.Subscribe(b.Animate)
}

// Mount every object that declares props on host.
func (b *Built) MountAll(host *component.Host) []*component.Instance {
	instances := make([]*component.Instance, 0, len(b.Mounts))
	for _, m := range b.Mounts {
		instances = append(instances, host.Mount(m.Object, m.Props.Clone()))
	}
	return instances
}

func (b *Built) buildNode(n *Node) scene.Object {
	var obj scene.Object
	switch {
	case n.Box != nil:
		geom := scene.NewBoxGeometry(n.Box.Size[0], n.Box.Size[1], n.Box.Size[2])
		obj = scene.NewMesh(n.Name, geom, n.material())
	case n.Sphere != nil:
		obj = scene.NewMesh(n.Name, scene.NewSphereGeometry(n.Sphere.Radius), n.material())
	default:
		obj = scene.NewGroup(n.Name)
	}

	base := obj.Base()
	base.Position = n.Position.vec()
	if n.Rotation != nil && n.Rotation.Angle != 0 {
		base.SetAxisRotation(n.Rotation.Axis.vec(), degToRad(n.Rotation.Angle))
	}
	if n.Scale != nil {
		base.Scale = n.Scale.vec()
	}

	if n.Animation != nil {
		a := animation{node: base, velocity: n.Animation.Velocity.vec()}
		if spin := n.Animation.Spin; spin != nil && spin.Angle != 0 {
			a.spinAxis = spin.Axis.vec()
			a.spinRadSec = degToRad(spin.Angle)
		}
		b.animations = append(b.animations, a)
	}

	if props := n.props(); props != nil {
		b.Mounts = append(b.Mounts, Mount{Object: obj, Props: props})
	}

	for index := range n.Children {
		// A freshly built child cannot form a cycle.
		_ = base.Add(b.buildNode(&n.Children[index]))
	}
	return obj
}

func (n *Node) material() scene.Material {
	if n.Shading == "basic" {
		mat := &scene.BasicMaterial{}
		if n.Color != nil {
			mat.Color = n.Color.vec()
		}
		return mat
	}

	mat := &scene.StandardMaterial{Roughness: 1}
	if n.Color != nil {
		color := n.Color.vec()
		mat.Color = &color
	}
	if n.Emissive != nil {
		mat.Emissive = n.Emissive.vec()
	}
	return mat
}

func (n *Node) props() component.Props {
	if !n.Dynamic && len(n.Props) == 0 {
		return nil
	}
	props := make(component.Props, len(n.Props)+1)
	for k, v := range n.Props {
		props[k] = v
	}
	if n.Dynamic {
		props[pathtrace.DynamicProp] = true
	}
	return props
}

func (c Camera) build() *scene.PerspectiveCamera {
	fov := c.FOV
	if fov == 0 {
		fov = defaultFOV
	}
	cam := scene.NewPerspectiveCamera("camera", fov)
	cam.Position = c.Position.vec()
	if c.LookAt != c.Position {
		cam.LookAt = c.LookAt.vec()
	} else {
		cam.LookAt = cam.Position.Add(types.XYZ(0, 0, -1))
	}
	if c.Up != nil {
		cam.Up = c.Up.vec()
	}
	if c.Near > 0 {
		cam.Near = c.Near
	}
	if c.Far > 0 {
		cam.Far = c.Far
	}
	return cam
}

func (v Vec3) vec() types.Vec3 {
	return types.XYZ(v[0], v[1], v[2])
}

func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
