package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/ptlive/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ptlive"
	app.Usage = "keep a path tracer in sync with a live scene graph"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a yaml or toml file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "print the path tracing records derived from a scene",
			Description: `
Load a yaml or toml scene description, mount every node that declares the
ptDynamic prop and advance the scene by the requested number of frames.

The box and sphere records that would be handed to the tracer are then
printed together with their world space bounds.`,
			ArgsUsage: "scene_file",
			Flags: append(cmd.RendererFlags(),
				cli.IntFlag{
					Name:  "frames, n",
					Value: 1,
					Usage: "number of frames to advance",
				},
			),
			Action: cmd.Inspect,
		},
		{
			Name:      "record",
			Usage:     "record the frames of a scene into a snapshot database",
			ArgsUsage: "scene_file",
			Flags: append(cmd.RendererFlags(),
				cli.IntFlag{
					Name:  "frames, n",
					Value: 60,
					Usage: "number of frames to record",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frames.db",
					Usage: "snapshot database to append frames to",
				},
			),
			Action: cmd.Record,
		},
		{
			Name:      "replay",
			Usage:     "list the frames stored in a snapshot database",
			ArgsUsage: "snapshot_file",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "from",
					Usage: "first sequence number to list",
				},
				cli.IntFlag{
					Name:  "upto",
					Usage: "stop listing before this sequence number",
				},
				cli.IntFlag{
					Name:  "seq",
					Usage: "print the records of a single frame",
				},
			},
			Action: cmd.Replay,
		},
		{
			Name:  "serve",
			Usage: "drive a scene in real time and stream frames over websockets",
			Description: `
Frames are broadcast as JSON to every client connected to /stream. Clients
that fall behind are disconnected.

With --watch the scene file is reloaded whenever it changes on disk.`,
			ArgsUsage: "scene_file",
			Flags: append(cmd.RendererFlags(),
				cli.StringFlag{
					Name:  "listen, l",
					Value: "127.0.0.1:8080",
					Usage: "address to listen on",
				},
				cli.BoolFlag{
					Name:  "watch, w",
					Usage: "reload the scene file when it changes",
				},
				cli.BoolFlag{
					Name:  "record",
					Usage: "also append frames to the snapshot database",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frames.db",
					Usage: "snapshot database used with --record",
				},
				cli.IntFlag{
					Name:  "queue",
					Value: 8,
					Usage: "frames buffered per client before it is dropped",
				},
			),
			Action: cmd.Serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
