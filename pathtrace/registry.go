package pathtrace

import (
	"github.com/achilleasa/ptlive/frame"
	"github.com/achilleasa/ptlive/log"
)

var logger = log.New("pathtrace")

type RegistrationState uint8

const (
	Unregistered RegistrationState = iota
	Registered
)

func (s RegistrationState) String() string {
	if s == Registered {
		return "registered"
	}
	return "unregistered"
}

type recordKind uint8

const (
	noRecord recordKind = iota
	boxRecord
	sphereRecord
)

// Registration binds the lifecycle of one source to the session's record
// mappings. Its methods must be called from the goroutine that drives the
// session's frame loop.
type Registration struct {
	sess     *Session
	src      Source
	material MaterialType

	mounted bool
	key     string
	kind    recordKind

	unsubscribeFrame func()
}

// Create an unregistered binding for src. Nothing is published until Mount.
func (s *Session) Register(src Source, material MaterialType) *Registration {
	return &Registration{
		sess:     s,
		src:      src,
		material: material,
	}
}

// Get the registration state.
func (r *Registration) State() RegistrationState {
	if r.kind == noRecord {
		return Unregistered
	}
	return Registered
}

// Get the key under which the record is published; empty while unregistered.
func (r *Registration) Key() string {
	if r.kind == noRecord {
		return ""
	}
	return r.key
}

// Derive and publish the record for the source and start refreshing it every
// frame. Sources that are neither boxes nor spheres are skipped silently.
func (r *Registration) Mount() {
	if r.mounted {
		return
	}
	r.mounted = true
	r.publish()
}

// Re-derive the published record. Called by the frame loop once per frame
// while registered.
func (r *Registration) Frame() {
	if !r.mounted || r.kind == noRecord {
		return
	}
	r.publish()
}

// Replace the bound source. While mounted the record is re-derived right
// away; if the object identifier changed the old key is removed first. A nil
// or non-qualifying source unregisters.
func (r *Registration) SetSource(src Source) {
	r.src = src
	if !r.mounted {
		return
	}
	r.publish()
}

// Change the material code. While registered the record is re-derived right
// away.
func (r *Registration) SetMaterial(material MaterialType) {
	r.material = material
	if r.mounted && r.kind != noRecord {
		r.publish()
	}
}

// Remove the published record and stop per-frame refreshes. Unmount is
// idempotent.
func (r *Registration) Unmount() {
	r.mounted = false
	r.retract()
}

func (r *Registration) publish() {
	var (
		kind   = noRecord
		key    string
		box    PathTracingBox
		sphere PathTracingSphere
	)
	if r.src != nil {
		key = r.src.SourceID()
		if bs, ok := r.src.AsBoxSource(); ok {
			kind = boxRecord
			box = r.sess.deriver.Box(bs, r.material)
		} else if ss, ok := r.src.AsSphereSource(); ok {
			kind = sphereRecord
			sphere = r.sess.deriver.Sphere(ss, r.material)
		}
	}

	if kind == noRecord {
		if r.kind != noRecord {
			logger.Debugf("source for %s no longer qualifies; unregistering", r.key)
		}
		r.retract()
		return
	}

	// Drop the previous record if it moved to a different key or mapping.
	if r.kind != noRecord && (r.key != key || r.kind != kind) {
		r.deleteRecord()
	}

	switch kind {
	case boxRecord:
		r.sess.SetBox(key, box)
	case sphereRecord:
		r.sess.SetSphere(key, sphere)
	}
	r.key = key
	r.kind = kind

	if r.unsubscribeFrame == nil {
		logger.Debugf("registered %s", key)
		r.unsubscribeFrame = r.sess.loop.Subscribe(func(frame.Delta) { r.Frame() })
	}
}

func (r *Registration) retract() {
	if r.unsubscribeFrame != nil {
		r.unsubscribeFrame()
		r.unsubscribeFrame = nil
	}
	if r.kind != noRecord {
		logger.Debugf("unregistered %s", r.key)
		r.deleteRecord()
	}
	r.kind = noRecord
	r.key = ""
}

func (r *Registration) deleteRecord() {
	switch r.kind {
	case boxRecord:
		r.sess.DeleteBox(r.key)
	case sphereRecord:
		r.sess.DeleteSphere(r.key)
	}
}
