package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/srtfsim/srtf-sim/sim"
)

// WriteTable renders the per-process results with averages in the footer.
// When showRemaining is set an extra column shows the remaining time as supplied.
func WriteTable(w io.Writer, res *sim.Result, showRemaining bool) {
	_, _ = fmt.Fprintln(w, "SRTF Performance Results")

	header := []string{"ID", "Arrival", "Burst"}
	if showRemaining {
		header = append(header, "Remaining")
	}
	header = append(header, "Completion", "Turnaround", "Waiting", "Response")

	rows := make([][]string, 0, len(res.Processes))
	for _, p := range res.Processes {
		row := []string{p.ID, itoa(p.ArrivalTime), itoa(p.BurstTime)}
		if showRemaining {
			row = append(row, itoa(p.InitialRemaining))
		}
		response := "-"
		if p.Started {
			response = itoa(p.ResponseTime)
		}
		row = append(row, itoa(p.CompletionTime), itoa(p.TurnaroundTime), itoa(p.WaitingTime), response)
		rows = append(rows, row)
	}

	footer := make([]string, len(header))
	n := len(footer)
	footer[n-3] = fmt.Sprintf("Average\n%.2f", res.AvgTurnaroundTime)
	footer[n-2] = fmt.Sprintf("Average\n%.2f", res.AvgWaitingTime)
	footer[n-1] = fmt.Sprintf("Average\n%.2f", res.AvgResponseTime)

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(rows)
	table.SetFooter(footer)
	table.Render()

	_, _ = fmt.Fprintf(w, "Average Turnaround Time = %.2f\n", res.AvgTurnaroundTime)
	_, _ = fmt.Fprintf(w, "Average Waiting Time    = %.2f\n", res.AvgWaitingTime)
}

// WriteTimeline renders every Gantt segment as a table row.
func WriteTimeline(w io.Writer, res *sim.Result) {
	_, _ = fmt.Fprintln(w, "Execution Timeline")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Start", "End", "Occupant", "Duration"})
	for _, seg := range sim.SegmentsOf(res.Events) {
		table.Append([]string{itoa(seg.Start), itoa(seg.End), occupant(seg), itoa(seg.Duration())})
	}
	table.SetFooter([]string{"", "", "Utilization", fmt.Sprintf("%.1f%%", res.CPUUtilization*100)})
	table.Render()
}

func occupant(seg sim.Segment) string {
	if seg.Kind == sim.SegmentIdle {
		return "IDLE"
	}
	return seg.ProcessID
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
