package renderer

import (
	"fmt"
	"time"

	"github.com/achilleasa/ptlive/pathtrace"
)

type Options struct {
	// Frame dims.
	FrameW uint32 `yaml:"width" toml:"width"`
	FrameH uint32 `yaml:"height" toml:"height"`

	// Ratio between device and css pixels of the output surface.
	PixelRatio float32 `yaml:"pixel_ratio" toml:"pixel_ratio"`

	// Number of samples traced per frame.
	SamplesPerFrame uint32 `yaml:"samples_per_frame" toml:"samples_per_frame"`

	// Weight of the previous frame when blending accumulated samples.
	BlendWeight float32 `yaml:"blend_weight" toml:"blend_weight"`

	// Ray offset used to avoid self intersections.
	EpsilonIntersect float32 `yaml:"epsilon_intersect" toml:"epsilon_intersect"`

	// Target frames per second for real time driving.
	FrameRate uint32 `yaml:"frame_rate" toml:"frame_rate"`

	// Record convention; "local" or "world-position".
	Convention string `yaml:"convention" toml:"convention"`

	// Build a BVH over the published records every frame.
	BuildAccel   bool `yaml:"build_accel" toml:"build_accel"`
	MinLeafItems int  `yaml:"min_leaf_items" toml:"min_leaf_items"`

	Debug bool `yaml:"debug" toml:"debug"`
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:           512,
		FrameH:           512,
		PixelRatio:       1,
		SamplesPerFrame:  1,
		BlendWeight:      0,
		EpsilonIntersect: 0.01,
		FrameRate:        60,
		Convention:       pathtrace.LocalSpace.String(),
		MinLeafItems:     1,
	}
}

// Check that the options are usable.
func (o Options) Validate() error {
	switch {
	case o.FrameW == 0 || o.FrameH == 0:
		return fmt.Errorf("%w: frame dimensions must be positive; got %dx%d", ErrInvalidOptions, o.FrameW, o.FrameH)
	case o.PixelRatio <= 0:
		return fmt.Errorf("%w: pixel ratio must be positive; got %v", ErrInvalidOptions, o.PixelRatio)
	case o.SamplesPerFrame == 0:
		return fmt.Errorf("%w: samples per frame must be positive", ErrInvalidOptions)
	case o.BlendWeight < 0 || o.BlendWeight > 1:
		return fmt.Errorf("%w: blend weight must be in [0, 1]; got %v", ErrInvalidOptions, o.BlendWeight)
	case o.EpsilonIntersect < 0:
		return fmt.Errorf("%w: epsilon intersect must not be negative; got %v", ErrInvalidOptions, o.EpsilonIntersect)
	case o.FrameRate == 0:
		return fmt.Errorf("%w: frame rate must be positive", ErrInvalidOptions)
	case o.BuildAccel && o.MinLeafItems < 1:
		return fmt.Errorf("%w: min leaf items must be at least 1", ErrInvalidOptions)
	}
	if _, err := pathtrace.ParseConvention(o.Convention); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// Get the record convention named by the options.
func (o Options) RecordConvention() pathtrace.Convention {
	conv, _ := pathtrace.ParseConvention(o.Convention)
	return conv
}

// Get the interval between two frames.
func (o Options) FrameInterval() time.Duration {
	if o.FrameRate == 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(o.FrameRate)
}

// Copy the render parameters into the session cells.
func (o Options) Apply(sess *pathtrace.Session) {
	sess.RendererSize().Set([2]uint32{o.FrameW, o.FrameH})
	sess.PixelRatio().Set(o.PixelRatio)
	sess.SamplesPerFrame().Set(o.SamplesPerFrame)
	sess.BlendWeight().Set(o.BlendWeight)
	sess.EpsilonIntersect().Set(o.EpsilonIntersect)
	sess.Debug().Set(o.Debug)
}
