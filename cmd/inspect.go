package cmd

import (
	"context"
	"errors"

	"github.com/achilleasa/ptlive/renderer"
	"github.com/urfave/cli"
)

// Load a scene, advance it by a number of frames and print the records that
// would be handed to the tracer.
func Inspect(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	live, err := loadLiveScene(context.Background(), ctx.Args().First(), cfg.Renderer)
	if err != nil {
		return err
	}
	defer live.unmount()

	d, err := renderer.NewDriver(live.sess, cfg.Renderer)
	if err != nil {
		return err
	}
	defer d.Close()

	interval := cfg.Renderer.FrameInterval()
	for frame := ctx.Int("frames"); frame > 0; frame-- {
		if err = d.RenderDelta(interval); err != nil {
			return err
		}
	}

	logger.Noticef("scene records\n%s", displayRecords(live.sess.Snapshot(), live.objectName))
	displayFrameStats(d.Stats())
	return nil
}
