package pathtrace

import (
	"github.com/achilleasa/ptlive/frame"
	"github.com/achilleasa/ptlive/scene"
	"github.com/achilleasa/ptlive/store"
)

// Params is a point-in-time copy of the session's render parameters.
type Params struct {
	SceneInitiated   bool      `json:"sceneInitiated"`
	CameraIsMoving   bool      `json:"cameraIsMoving"`
	PixelRatio       float32   `json:"pixelRatio"`
	SamplesPerFrame  uint32    `json:"samplesPerFrame"`
	BlendWeight      float32   `json:"blendWeight"`
	EpsilonIntersect float32   `json:"epsilonIntersect"`
	RendererSize     [2]uint32 `json:"rendererSize"`
	Debug            bool      `json:"debug"`
}

// Snapshot is the state a downstream renderer consumes for one frame.
type Snapshot struct {
	Frame      uint64                       `json:"frame"`
	Convention Convention                   `json:"convention"`
	Params     Params                       `json:"params"`
	Boxes      map[string]PathTracingBox    `json:"boxes"`
	Spheres    map[string]PathTracingSphere `json:"spheres"`
}

// Session holds the state shared between the scene graph and the rendering
// layer for one tracer session. Every cell is observable on its own and no
// invariant spans more than one cell.
type Session struct {
	deriver Deriver
	loop    *frame.Loop

	pathTracingScene  *store.Writable[*scene.Scene]
	screenCopyScene   *store.Writable[*scene.Scene]
	screenOutputScene *store.Writable[*scene.Scene]
	sceneCamera       *store.Writable[*scene.PerspectiveCamera]
	outputCamera      *store.Writable[*scene.OrthographicCamera]

	sceneInitiated   *store.Writable[bool]
	cameraIsMoving   *store.Writable[bool]
	pixelRatio       *store.Writable[float32]
	samplesPerFrame  *store.Writable[uint32]
	blendWeight      *store.Writable[float32]
	epsilonIntersect *store.Writable[float32]
	rendererSize     *store.Writable[[2]uint32]
	debug            *store.Writable[bool]

	boxes   *store.Writable[map[string]PathTracingBox]
	spheres *store.Writable[map[string]PathTracingSphere]
}

// Create a session whose registrations use the given convention and are
// refreshed by loop.
func NewSession(convention Convention, loop *frame.Loop) *Session {
	if loop == nil {
		loop = frame.NewLoop()
	}
	return &Session{
		deriver: Deriver{Convention: convention},
		loop:    loop,

		pathTracingScene:  store.New[*scene.Scene](nil),
		screenCopyScene:   store.New[*scene.Scene](nil),
		screenOutputScene: store.New[*scene.Scene](nil),
		sceneCamera:       store.New[*scene.PerspectiveCamera](nil),
		outputCamera:      store.New[*scene.OrthographicCamera](nil),

		sceneInitiated:   store.New(false),
		cameraIsMoving:   store.New(false),
		pixelRatio:       store.New[float32](1),
		samplesPerFrame:  store.New[uint32](1),
		blendWeight:      store.New[float32](0),
		epsilonIntersect: store.New[float32](0.01),
		rendererSize:     store.New([2]uint32{}),
		debug:            store.New(false),

		boxes:   store.New(map[string]PathTracingBox{}),
		spheres: store.New(map[string]PathTracingSphere{}),
	}
}

func (s *Session) Convention() Convention { return s.deriver.Convention }
func (s *Session) Deriver() Deriver       { return s.deriver }
func (s *Session) Loop() *frame.Loop      { return s.loop }

func (s *Session) PathTracingScene() *store.Writable[*scene.Scene]  { return s.pathTracingScene }
func (s *Session) ScreenCopyScene() *store.Writable[*scene.Scene]   { return s.screenCopyScene }
func (s *Session) ScreenOutputScene() *store.Writable[*scene.Scene] { return s.screenOutputScene }
func (s *Session) SceneCamera() *store.Writable[*scene.PerspectiveCamera] {
	return s.sceneCamera
}
func (s *Session) OutputCamera() *store.Writable[*scene.OrthographicCamera] {
	return s.outputCamera
}

func (s *Session) SceneInitiated() *store.Writable[bool]      { return s.sceneInitiated }
func (s *Session) CameraIsMoving() *store.Writable[bool]      { return s.cameraIsMoving }
func (s *Session) PixelRatio() *store.Writable[float32]       { return s.pixelRatio }
func (s *Session) SamplesPerFrame() *store.Writable[uint32]   { return s.samplesPerFrame }
func (s *Session) BlendWeight() *store.Writable[float32]      { return s.blendWeight }
func (s *Session) EpsilonIntersect() *store.Writable[float32] { return s.epsilonIntersect }
func (s *Session) RendererSize() *store.Writable[[2]uint32]   { return s.rendererSize }
func (s *Session) Debug() *store.Writable[bool]               { return s.debug }

// Observe the box mapping. Published maps must be treated as read-only.
func (s *Session) BoxCell() store.Readable[map[string]PathTracingBox] { return s.boxes }

// Observe the sphere mapping. Published maps must be treated as read-only.
func (s *Session) SphereCell() store.Readable[map[string]PathTracingSphere] { return s.spheres }

// Get a copy of the box mapping.
func (s *Session) Boxes() map[string]PathTracingBox {
	return cloneMap(s.boxes.Get())
}

// Get a copy of the sphere mapping.
func (s *Session) Spheres() map[string]PathTracingSphere {
	return cloneMap(s.spheres.Get())
}

// Get the box stored for id.
func (s *Session) Box(id string) (PathTracingBox, bool) {
	box, ok := s.boxes.Get()[id]
	return box, ok
}

// Get the sphere stored for id.
func (s *Session) Sphere(id string) (PathTracingSphere, bool) {
	sphere, ok := s.spheres.Get()[id]
	return sphere, ok
}

// Publish a box. The mapping is copied and replaced, never mutated in place.
func (s *Session) SetBox(id string, box PathTracingBox) {
	s.boxes.Update(func(cur map[string]PathTracingBox) map[string]PathTracingBox {
		next := cloneMap(cur)
		next[id] = box
		return next
	})
}

// Remove a box. Removing an unknown id does not notify observers.
func (s *Session) DeleteBox(id string) {
	if _, ok := s.Box(id); !ok {
		return
	}
	s.boxes.Update(func(cur map[string]PathTracingBox) map[string]PathTracingBox {
		next := cloneMap(cur)
		delete(next, id)
		return next
	})
}

// Publish a sphere. The mapping is copied and replaced, never mutated in place.
func (s *Session) SetSphere(id string, sphere PathTracingSphere) {
	s.spheres.Update(func(cur map[string]PathTracingSphere) map[string]PathTracingSphere {
		next := cloneMap(cur)
		next[id] = sphere
		return next
	})
}

// Remove a sphere. Removing an unknown id does not notify observers.
func (s *Session) DeleteSphere(id string) {
	if _, ok := s.Sphere(id); !ok {
		return
	}
	s.spheres.Update(func(cur map[string]PathTracingSphere) map[string]PathTracingSphere {
		next := cloneMap(cur)
		delete(next, id)
		return next
	})
}

// Get a copy of the render parameters.
func (s *Session) Params() Params {
	return Params{
		SceneInitiated:   s.sceneInitiated.Get(),
		CameraIsMoving:   s.cameraIsMoving.Get(),
		PixelRatio:       s.pixelRatio.Get(),
		SamplesPerFrame:  s.samplesPerFrame.Get(),
		BlendWeight:      s.blendWeight.Get(),
		EpsilonIntersect: s.epsilonIntersect.Get(),
		RendererSize:     s.rendererSize.Get(),
		Debug:            s.debug.Get(),
	}
}

// Capture the current state. The returned maps are private copies.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Frame:      s.loop.Frame(),
		Convention: s.deriver.Convention,
		Params:     s.Params(),
		Boxes:      s.Boxes(),
		Spheres:    s.Spheres(),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
