package scenefile

import (
	"errors"
	"fmt"
)

var errZeroAxis = errors.New("has a zero axis")

// Check the description for errors. Errors name the offending node using
// its path in the node tree.
func (d *Description) Validate() error {
	if d.Camera.FOV < 0 || d.Camera.FOV >= 180 {
		return fmt.Errorf("%w: fov must be in [0, 180); got %v", ErrInvalidCamera, d.Camera.FOV)
	}
	if d.Camera.Near < 0 || (d.Camera.Far != 0 && d.Camera.Far <= d.Camera.Near) {
		return fmt.Errorf("%w: invalid clip planes %v/%v", ErrInvalidCamera, d.Camera.Near, d.Camera.Far)
	}

	seen := make(map[string]string)
	for index := range d.Nodes {
		if err := d.Nodes[index].validate(fmt.Sprintf("nodes[%d]", index), seen); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) validate(path string, seen map[string]string) error {
	if n.Name != "" {
		path = fmt.Sprintf("%s (%s)", path, n.Name)
		if other, dup := seen[n.Name]; dup {
			return fmt.Errorf("%w: %s: name already used by %s", ErrInvalidNode, path, other)
		}
		seen[n.Name] = path
	}

	switch {
	case n.Box != nil && n.Sphere != nil:
		return fmt.Errorf("%w: %s: defines both a box and a sphere", ErrInvalidNode, path)
	case n.Box != nil && (n.Box.Size[0] < 0 || n.Box.Size[1] < 0 || n.Box.Size[2] < 0):
		return fmt.Errorf("%w: %s: box size must not be negative; got %v", ErrInvalidNode, path, n.Box.Size)
	case n.Sphere != nil && n.Sphere.Radius < 0:
		return fmt.Errorf("%w: %s: sphere radius must not be negative; got %v", ErrInvalidNode, path, n.Sphere.Radius)
	}

	switch n.Shading {
	case "", "standard", "basic":
	default:
		return fmt.Errorf("%w: %s: unknown shading %q", ErrInvalidNode, path, n.Shading)
	}
	if n.Shading == "basic" && n.Emissive != nil {
		return fmt.Errorf("%w: %s: basic shading does not support emission", ErrInvalidNode, path)
	}

	if err := checkRotation(n.Rotation); err != nil {
		return fmt.Errorf("%w: %s: rotation %v", ErrInvalidNode, path, err)
	}
	if n.Animation != nil {
		if err := checkRotation(n.Animation.Spin); err != nil {
			return fmt.Errorf("%w: %s: spin %v", ErrInvalidNode, path, err)
		}
	}

	if (n.Dynamic || len(n.Props) != 0) && n.Box == nil && n.Sphere == nil {
		return fmt.Errorf("%w: %s: props require a box or sphere geometry", ErrInvalidNode, path)
	}

	for index := range n.Children {
		if err := n.Children[index].validate(fmt.Sprintf("%s.children[%d]", path, index), seen); err != nil {
			return err
		}
	}
	return nil
}

func checkRotation(r *Rotation) error {
	if r == nil || r.Angle == 0 {
		return nil
	}
	if r.Axis == (Vec3{}) {
		return errZeroAxis
	}
	return nil
}
