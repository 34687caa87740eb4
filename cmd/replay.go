package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/ptlive/renderer"
	"github.com/achilleasa/ptlive/snapshot"
	"github.com/urfave/cli"
)

// List the frames stored in a recording. With --seq the records of a single
// frame are printed instead.
func Replay(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	path := cfg.SnapshotPath
	if ctx.NArg() == 1 {
		path = ctx.Args().First()
	} else if ctx.NArg() > 1 {
		return errors.New("expected a single recording argument")
	}

	rec, err := snapshot.OpenReadOnly(path)
	if err != nil {
		return err
	}
	defer rec.Close()

	if seq := uint64(ctx.Int("seq")); seq != 0 {
		f, err := rec.Get(seq)
		if err != nil {
			return fmt.Errorf("sequence %d: %w", seq, err)
		}
		logger.Noticef("records for sequence %d\n%s", seq, displayRecords(f.Snapshot, nil))
		return nil
	}

	var buf bytes.Buffer
	table := newTable(&buf, "Seq", "Frame", "Convention", "Boxes", "Spheres", "BVH nodes", "Samples", "Size")
	rows := 0
	err = rec.Iterate(uint64(ctx.Int("from")), uint64(ctx.Int("upto")), func(seq uint64, f renderer.Frame) error {
		accelNodes := 0
		if f.Accel != nil {
			accelNodes = len(f.Accel.Nodes)
		}
		params := f.Snapshot.Params
		table.Append([]string{
			fmt.Sprint(seq),
			fmt.Sprint(f.Snapshot.Frame),
			f.Snapshot.Convention.String(),
			fmt.Sprint(len(f.Snapshot.Boxes)),
			fmt.Sprint(len(f.Snapshot.Spheres)),
			fmt.Sprint(accelNodes),
			fmt.Sprint(params.SamplesPerFrame),
			fmt.Sprintf("%dx%d", params.RendererSize[0], params.RendererSize[1]),
		})
		rows++
		return nil
	})
	if err != nil {
		return err
	}

	count, err := rec.Count()
	if err != nil {
		return err
	}
	table.SetFooter([]string{"", "", "", "", "", "", "TOTAL", fmt.Sprintf("%d/%d", rows, count)})
	table.Render()
	logger.Noticef("recording %s\n%s", path, buf.String())
	return nil
}
