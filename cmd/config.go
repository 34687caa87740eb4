package cmd

import (
	"github.com/achilleasa/ptlive/config"
	"github.com/urfave/cli"
)

// Load the config file named by --config, or the defaults, and apply any
// command flags that were explicitly set.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	opts := &cfg.Renderer
	if ctx.IsSet("width") {
		opts.FrameW = uint32(ctx.Int("width"))
	}
	if ctx.IsSet("height") {
		opts.FrameH = uint32(ctx.Int("height"))
	}
	if ctx.IsSet("spf") {
		opts.SamplesPerFrame = uint32(ctx.Int("spf"))
	}
	if ctx.IsSet("fps") {
		opts.FrameRate = uint32(ctx.Int("fps"))
	}
	if ctx.IsSet("convention") {
		opts.Convention = ctx.String("convention")
	}
	if ctx.IsSet("accel") {
		opts.BuildAccel = ctx.Bool("accel")
	}
	if ctx.IsSet("listen") {
		cfg.Listen = ctx.String("listen")
	}
	if ctx.IsSet("out") {
		cfg.SnapshotPath = ctx.String("out")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	setupLogging(ctx, cfg)
	return cfg, nil
}

// Flags shared by every command that drives frames.
func RendererFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spf",
			Value: 1,
			Usage: "samples traced per frame",
		},
		cli.IntFlag{
			Name:  "fps",
			Value: 60,
			Usage: "frame rate",
		},
		cli.StringFlag{
			Name:  "convention",
			Value: "local",
			Usage: "record convention; local or world-position",
		},
		cli.BoolFlag{
			Name:  "accel",
			Usage: "build a BVH over the published records every frame",
		},
	}
}
