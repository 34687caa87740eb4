package cmd

import (
	"context"
	"errors"

	"github.com/achilleasa/ptlive/renderer"
	"github.com/achilleasa/ptlive/snapshot"
	"github.com/urfave/cli"
)

// Drive a scene for a fixed number of frames and append every frame to a
// snapshot recording. Frames advance by the configured frame interval so
// recordings are reproducible.
func Record(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}
	frames := ctx.Int("frames")
	if frames <= 0 {
		return errors.New("frame count must be positive")
	}

	live, err := loadLiveScene(context.Background(), ctx.Args().First(), cfg.Renderer)
	if err != nil {
		return err
	}
	defer live.unmount()

	rec, err := snapshot.Open(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	first, err := rec.NextSeq()
	if err != nil {
		rec.Close()
		return err
	}

	// Closing the driver closes the recording.
	d, err := renderer.NewDriver(live.sess, cfg.Renderer, rec)
	if err != nil {
		rec.Close()
		return err
	}
	defer d.Close()

	interval := cfg.Renderer.FrameInterval()
	for i := 0; i < frames; i++ {
		if err = d.RenderDelta(interval); err != nil {
			return err
		}
	}

	logger.Noticef("recorded %d frames to %s starting at sequence %d", frames, cfg.SnapshotPath, first)
	displayFrameStats(d.Stats())
	return nil
}
