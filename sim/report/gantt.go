package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/srtfsim/srtf-sim/sim"
)

// cellsPerTick is the horizontal scale of the chart.
const cellsPerTick = 2

// GanttChart renders a Gantt log as ASCII art:
//
//	 ------------
//	| P1 |  P2  |
//	 ------------
//	0    2      5
func GanttChart(events []sim.GanttEvent) string {
	segs := sim.SegmentsOf(events)
	if len(segs) == 0 {
		return "No segments to display\n"
	}

	widths := make([]int, len(segs))
	for i, seg := range segs {
		widths[i] = max(int(seg.Duration())*cellsPerTick, len(occupant(seg))+2)
	}

	var border strings.Builder
	border.WriteString(" ")
	for _, w := range widths {
		border.WriteString(strings.Repeat("-", w+1))
	}
	border.WriteString("\n")

	var labels strings.Builder
	labels.WriteString("|")
	for i, seg := range segs {
		labels.WriteString(center(occupant(seg), widths[i]))
		labels.WriteString("|")
	}
	labels.WriteString("\n")

	var axis strings.Builder
	col := 0
	for i, seg := range segs {
		if i == 0 {
			col = writeAt(&axis, 0, 0, seg.Start)
		}
		boundary := 0
		for _, w := range widths[:i+1] {
			boundary += w + 1
		}
		col = writeAt(&axis, col, boundary, seg.End)
	}
	axis.WriteString("\n")

	return border.String() + labels.String() + border.String() + axis.String()
}

// WriteGantt writes the chart with a heading.
func WriteGantt(w io.Writer, res *sim.Result) {
	_, _ = fmt.Fprintln(w, "Gantt Chart")
	_, _ = fmt.Fprint(w, GanttChart(res.Events))
}

// writeAt pads sb from column col to target (or one space past col if the
// previous label overran) and writes v. Returns the new column.
func writeAt(sb *strings.Builder, col, target int, v int64) int {
	if target < col {
		target = col + 1
	}
	s := fmt.Sprint(v)
	sb.WriteString(strings.Repeat(" ", target-col))
	sb.WriteString(s)
	return target + len(s)
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
