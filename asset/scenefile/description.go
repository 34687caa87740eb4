// Package scenefile reads scene descriptions from YAML or TOML documents and
// builds scene graphs out of them.
package scenefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/achilleasa/ptlive/asset"
)

var (
	ErrInvalidNode   = errors.New("scenefile: invalid node")
	ErrInvalidCamera = errors.New("scenefile: invalid camera")
)

type Vec3 [3]float32

// Rotation is an axis and an angle in degrees.
type Rotation struct {
	Axis  Vec3    `yaml:"axis" toml:"axis"`
	Angle float32 `yaml:"angle" toml:"angle"`
}

type Camera struct {
	// Vertical field of view in degrees.
	FOV      float32 `yaml:"fov" toml:"fov"`
	Position Vec3    `yaml:"position" toml:"position"`
	LookAt   Vec3    `yaml:"look_at" toml:"look_at"`
	Up       *Vec3   `yaml:"up,omitempty" toml:"up,omitempty"`
	Near     float32 `yaml:"near,omitempty" toml:"near,omitempty"`
	Far      float32 `yaml:"far,omitempty" toml:"far,omitempty"`
}

type Box struct {
	Size Vec3 `yaml:"size" toml:"size"`
}

type Sphere struct {
	Radius float32 `yaml:"radius" toml:"radius"`
}

// Animation moves a node every frame. Velocity is in units per second and
// Spin.Angle in degrees per second.
type Animation struct {
	Velocity Vec3      `yaml:"velocity" toml:"velocity"`
	Spin     *Rotation `yaml:"spin,omitempty" toml:"spin,omitempty"`
}

// Node describes a scene graph node. A node with neither a box nor a sphere
// becomes a group.
type Node struct {
	Name   string  `yaml:"name" toml:"name"`
	Box    *Box    `yaml:"box,omitempty" toml:"box,omitempty"`
	Sphere *Sphere `yaml:"sphere,omitempty" toml:"sphere,omitempty"`

	// Surface settings; shading is "standard" (default) or "basic".
	Shading  string `yaml:"shading,omitempty" toml:"shading,omitempty"`
	Color    *Vec3  `yaml:"color,omitempty" toml:"color,omitempty"`
	Emissive *Vec3  `yaml:"emissive,omitempty" toml:"emissive,omitempty"`

	Position Vec3      `yaml:"position" toml:"position"`
	Rotation *Rotation `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Scale    *Vec3     `yaml:"scale,omitempty" toml:"scale,omitempty"`

	Animation *Animation `yaml:"animation,omitempty" toml:"animation,omitempty"`

	// Shorthand for setting the ptDynamic prop.
	Dynamic bool           `yaml:"dynamic,omitempty" toml:"dynamic,omitempty"`
	Props   map[string]any `yaml:"props,omitempty" toml:"props,omitempty"`

	Children []Node `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Description is the top level document.
type Description struct {
	Name       string `yaml:"name" toml:"name"`
	Background *Vec3  `yaml:"background,omitempty" toml:"background,omitempty"`
	Camera     Camera `yaml:"camera" toml:"camera"`
	Nodes      []Node `yaml:"nodes" toml:"nodes"`
}

// Parse a description and validate it.
func Parse(r io.Reader, format asset.Format) (*Description, error) {
	desc := &Description{}
	if err := asset.Decode(r, format, desc); err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

// Read a description from a resource. The format is selected by the
// resource extension.
func Read(res *asset.Resource) (*Description, error) {
	format, err := asset.FormatOf(res.Name())
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("scenefile: reading %s: %w", res.Path(), err)
	}
	desc, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%w (while reading %s)", err, res.Path())
	}
	return desc, nil
}

// Open and read a description from a local path or an http(s) URL.
func Load(ctx context.Context, path string) (*Description, error) {
	res, err := asset.NewResourceContext(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return Read(res)
}
