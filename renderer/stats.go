package renderer

import "time"

type SinkStat struct {
	// The sink name.
	Name string

	// Time spent delivering the frame.
	Time time.Duration

	// Delivery error, if any.
	Err error
}

type FrameStats struct {
	// Frame number.
	Frame uint64

	// Number of published records.
	Boxes   int
	Spheres int

	// Number of BVH nodes; zero when acceleration is disabled.
	AccelNodes int

	// Individual sink stats.
	Sinks []SinkStat

	// Total time for dispatching the frame callbacks and delivering the frame.
	RenderTime time.Duration
}
