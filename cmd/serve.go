package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/achilleasa/ptlive/asset/scenefile"
	"github.com/achilleasa/ptlive/frame"
	"github.com/achilleasa/ptlive/renderer"
	"github.com/achilleasa/ptlive/snapshot"
	"github.com/achilleasa/ptlive/stream"
	"github.com/urfave/cli"
)

const shutdownTimeout = 5 * time.Second

// Drive a scene in real time and stream every frame to websocket clients.
func Serve(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}
	scenePath := ctx.Args().First()
	if ctx.Bool("watch") && !isLocalPath(scenePath) {
		return errors.New("--watch requires a local scene file")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	live, err := loadLiveScene(runCtx, scenePath, cfg.Renderer)
	if err != nil {
		return err
	}
	defer live.unmount()

	hub := stream.NewHub(ctx.Int("queue"))
	d, err := renderer.NewDriver(live.sess, cfg.Renderer, hub)
	if err != nil {
		return err
	}
	defer d.Close()

	if ctx.Bool("record") {
		rec, err := snapshot.Open(cfg.SnapshotPath)
		if err != nil {
			return err
		}
		d.AddSink(rec)
		logger.Noticef("recording frames to %s", cfg.SnapshotPath)
	}

	if ctx.Bool("watch") {
		reloads := make(chan *scenefile.Description, 1)
		live.sess.Loop().Subscribe(func(frame.Delta) {
			select {
			case desc := <-reloads:
				if err := live.mount(desc); err != nil {
					logger.Errorf("reload failed: %v; keeping current scene", err)
				}
			default:
			}
		})
		go watchScene(runCtx, scenePath, reloads)
	}

	mux := http.NewServeMux()
	mux.Handle("/stream", hub)
	srv := &http.Server{Addr: cfg.Listen, Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		logger.Noticef("streaming frames on ws://%s/stream", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			stop()
		}
	}()

	runErr := d.Run(runCtx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warningf("http shutdown: %v", err)
	}

	select {
	case err := <-serveErr:
		return err
	default:
	}
	displayFrameStats(d.Stats())
	return runErr
}

// Forward every successfully parsed revision of the scene file to reloads,
// replacing any revision that has not been picked up yet.
func watchScene(ctx context.Context, path string, reloads chan *scenefile.Description) {
	err := scenefile.Watch(ctx, path, func(desc *scenefile.Description, err error) {
		if err != nil {
			logger.Warningf("ignoring change to %s: %v", path, err)
			return
		}
		for {
			select {
			case reloads <- desc:
				logger.Infof("scheduled reload of %s", path)
				return
			case <-reloads:
			}
		}
	})
	if err != nil {
		logger.Errorf("watch %s: %v", path, err)
	}
}

func isLocalPath(path string) bool {
	u, err := url.Parse(path)
	// Windows drive letters parse as a single letter scheme.
	return err == nil && (u.Scheme == "" || len(u.Scheme) == 1)
}
