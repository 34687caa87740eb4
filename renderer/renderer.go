package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/achilleasa/ptlive/frame"
	"github.com/achilleasa/ptlive/log"
	"github.com/achilleasa/ptlive/pathtrace"
)

var logger = log.New("renderer")

type Renderer interface {
	// Render frame.
	Render() error

	// Shutdown renderer and any attached sink.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// Frame is the unit delivered to sinks once per rendered frame.
type Frame struct {
	Snapshot pathtrace.Snapshot `json:"snapshot"`

	// Set only when acceleration is enabled.
	Accel *pathtrace.Accel `json:"accel,omitempty"`
}

// A Sink receives every frame produced by a Driver. Sinks that also
// implement io.Closer are closed when the driver shuts down.
type Sink interface {
	Name() string
	Consume(Frame) error
}

type sinkFunc struct {
	name string
	fn   func(Frame) error
}

func (s sinkFunc) Name() string          { return s.name }
func (s sinkFunc) Consume(f Frame) error { return s.fn(f) }

// Wrap a function as a named sink.
func SinkFunc(name string, fn func(Frame) error) Sink {
	return sinkFunc{name: name, fn: fn}
}

// Driver advances a session's frame loop and hands the resulting state to
// a list of sinks.
type Driver struct {
	sync.Mutex

	sess  *pathtrace.Session
	opts  Options
	sinks []Sink

	lastRender time.Time
	stats      FrameStats
}

// Create a driver for sess. The options are validated and copied into the
// session parameter cells.
func NewDriver(sess *pathtrace.Session, opts Options, sinks ...Sink) (*Driver, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if conv := opts.RecordConvention(); conv != sess.Convention() {
		return nil, fmt.Errorf("%w: session uses %s records but options request %s", ErrInvalidOptions, sess.Convention(), conv)
	}
	opts.Apply(sess)

	return &Driver{
		sess:  sess,
		opts:  opts,
		sinks: sinks,
	}, nil
}

// Get the options the driver was created with.
func (d *Driver) Options() Options {
	return d.opts
}

// Attach an extra sink.
func (d *Driver) AddSink(sink Sink) {
	d.Lock()
	defer d.Unlock()
	d.sinks = append(d.sinks, sink)
}

// Render a single frame. The elapsed time passed to frame callbacks is the
// wall time since the previous call; zero for the first frame.
func (d *Driver) Render() error {
	now := time.Now()
	var elapsed time.Duration
	if !d.lastRender.IsZero() {
		elapsed = now.Sub(d.lastRender)
	}
	d.lastRender = now
	return d.RenderDelta(elapsed)
}

// Render a single frame using the supplied elapsed time.
func (d *Driver) RenderDelta(elapsed time.Duration) error {
	if err := d.checkScene(); err != nil {
		return err
	}
	start := time.Now()
	delta := d.sess.Loop().Tick(elapsed)
	return d.deliver(delta, start)
}

// Render frames at the configured frame rate until ctx is cancelled. Sink
// errors are logged and do not stop the loop.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.checkScene(); err != nil {
		return err
	}

	var start time.Time
	err := d.sess.Loop().Run(ctx, d.opts.FrameInterval(), func(delta frame.Delta) {
		if err := d.deliver(delta, start); err != nil {
			logger.Warningf("frame %d: %v", delta.Frame, err)
		}
		start = time.Now()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close every sink that implements io.Closer.
func (d *Driver) Close() {
	d.Lock()
	defer d.Unlock()
	for _, sink := range d.sinks {
		if closer, ok := sink.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warningf("closing sink %s: %v", sink.Name(), err)
			}
		}
	}
	d.sinks = nil
}

// Get the stats for the last rendered frame.
func (d *Driver) Stats() FrameStats {
	d.Lock()
	defer d.Unlock()
	stats := d.stats
	stats.Sinks = append([]SinkStat(nil), d.stats.Sinks...)
	return stats
}

func (d *Driver) checkScene() error {
	if d.sess.PathTracingScene().Get() == nil {
		return ErrSceneNotDefined
	}
	if d.sess.SceneCamera().Get() == nil {
		return ErrCameraNotDefined
	}
	return nil
}

func (d *Driver) deliver(delta frame.Delta, start time.Time) error {
	if start.IsZero() {
		start = time.Now()
	}

	out := Frame{Snapshot: d.sess.Snapshot()}
	if d.opts.BuildAccel {
		accel := pathtrace.BuildAccel(out.Snapshot, d.opts.MinLeafItems)
		out.Accel = &accel
	}

	d.Lock()
	sinks := append([]Sink(nil), d.sinks...)
	d.Unlock()

	stats := FrameStats{
		Frame:   delta.Frame,
		Boxes:   len(out.Snapshot.Boxes),
		Spheres: len(out.Snapshot.Spheres),
		Sinks:   make([]SinkStat, 0, len(sinks)),
	}
	if out.Accel != nil {
		stats.AccelNodes = len(out.Accel.Nodes)
	}

	var firstErr error
	for _, sink := range sinks {
		sinkStart := time.Now()
		err := sink.Consume(out)
		stats.Sinks = append(stats.Sinks, SinkStat{
			Name: sink.Name(),
			Time: time.Since(sinkStart),
			Err:  err,
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("renderer: sink %s: %w", sink.Name(), err)
		}
	}
	stats.RenderTime = time.Since(start)

	d.Lock()
	d.stats = stats
	d.Unlock()

	logger.Debugf("frame %d: %d boxes, %d spheres in %s", stats.Frame, stats.Boxes, stats.Spheres, stats.RenderTime)
	return firstErr
}
