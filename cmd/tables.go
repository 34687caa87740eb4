package cmd

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/achilleasa/ptlive/pathtrace"
	"github.com/achilleasa/ptlive/renderer"
	"github.com/achilleasa/ptlive/types"
	"github.com/olekukonko/tablewriter"
)

func newTable(buf *bytes.Buffer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	return table
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := newTable(&buf, "Sink", "Status", "Time")
	for _, stat := range stats.Sinks {
		status := "ok"
		if stat.Err != nil {
			status = stat.Err.Error()
		}
		table.Append([]string{stat.Name, status, stat.Time.String()})
	}
	table.SetFooter([]string{
		fmt.Sprintf("frame %d", stats.Frame),
		fmt.Sprintf("%d boxes, %d spheres, %d bvh nodes", stats.Boxes, stats.Spheres, stats.AccelNodes),
		stats.RenderTime.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}

// Render the records of a snapshot. nameOf maps record keys to object names
// and may be nil.
func displayRecords(snap pathtrace.Snapshot, nameOf func(string) string) string {
	if nameOf == nil {
		nameOf = func(string) string { return "" }
	}

	var buf bytes.Buffer
	table := newTable(&buf, "Key", "Name", "Kind", "Min/Center", "Max/Radius", "Color", "Emission", "Material", "World bounds")
	for _, key := range sortedKeys(snap.Boxes) {
		box := snap.Boxes[key]
		table.Append([]string{
			key, nameOf(key), "box",
			box.MinCorner.String(), box.MaxCorner.String(),
			box.Color.String(), box.Emission.String(), box.Type.String(),
			formatBounds(box.BBox()),
		})
	}
	for _, key := range sortedKeys(snap.Spheres) {
		sphere := snap.Spheres[key]
		table.Append([]string{
			key, nameOf(key), "sphere",
			sphere.Position.String(), fmt.Sprintf("%.3f", sphere.Radius),
			sphere.Color.String(), sphere.Emission.String(), sphere.Type.String(),
			formatBounds(sphere.BBox()),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", snap.Convention.String(), fmt.Sprintf("frame %d", snap.Frame)})
	table.Render()
	return buf.String()
}

func formatBounds(bbox [2]types.Vec3) string {
	return fmt.Sprintf("%s - %s", bbox[0], bbox[1])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
