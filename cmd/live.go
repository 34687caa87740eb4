package cmd

import (
	"context"

	"github.com/achilleasa/ptlive/asset/scenefile"
	"github.com/achilleasa/ptlive/component"
	"github.com/achilleasa/ptlive/pathtrace"
	"github.com/achilleasa/ptlive/renderer"
	"github.com/achilleasa/ptlive/scene"
)

// liveScene ties a loaded scene description to a session. All methods must
// run on the goroutine that drives the session's frame loop.
type liveScene struct {
	sess  *pathtrace.Session
	host  *component.Host
	opts  renderer.Options
	built *scenefile.Built

	detach func()
}

func newLiveScene(opts renderer.Options) *liveScene {
	sess := pathtrace.NewSession(opts.RecordConvention(), nil)
	host := component.NewHost()
	host.Inject(pathtrace.PluginName, pathtrace.Plugin(sess))

	// Full screen quads used to accumulate and present traced frames.
	sess.ScreenCopyScene().Set(scene.NewScene("screen-copy"))
	sess.ScreenOutputScene().Set(scene.NewScene("screen-output"))
	sess.OutputCamera().Set(scene.NewOrthographicCamera("output", -1, 1, 1, -1, 0, 1))
	return &liveScene{sess: sess, host: host, opts: opts}
}

// Load a scene description and mount it.
func loadLiveScene(ctx context.Context, path string, opts renderer.Options) (*liveScene, error) {
	desc, err := scenefile.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	live := newLiveScene(opts)
	if err = live.mount(desc); err != nil {
		return nil, err
	}
	return live, nil
}

// Replace the mounted scene with desc. The previous scene's records are
// removed before the new scene is published.
func (l *liveScene) mount(desc *scenefile.Description) error {
	built, err := desc.Build()
	if err != nil {
		return err
	}
	l.unmount()

	built.Camera.SetupProjection(float32(l.opts.FrameW) / float32(l.opts.FrameH))
	l.sess.SceneCamera().Set(built.Camera)
	l.sess.PathTracingScene().Set(built.Scene)

	l.built = built
	l.detach = built.Attach(l.sess.Loop())
	built.MountAll(l.host)
	l.sess.SceneInitiated().Set(true)

	logger.Infof("mounted scene %q: %d boxes, %d spheres, %d animated nodes",
		built.Scene.Name(), len(l.sess.Boxes()), len(l.sess.Spheres()), built.Animated())
	return nil
}

func (l *liveScene) unmount() {
	l.host.DestroyAll()
	if l.detach != nil {
		l.detach()
		l.detach = nil
	}
	l.built = nil
	l.sess.SceneInitiated().Set(false)
}

// Get the name of the mounted object that produced a record key.
func (l *liveScene) objectName(key string) string {
	if l.built == nil {
		return ""
	}
	for _, m := range l.built.Mounts {
		if pathtrace.ObjectKey(m.Object) == key {
			return m.Object.Name()
		}
	}
	return ""
}
