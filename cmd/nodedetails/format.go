package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aparna-bhatt/nodedetails"
	"github.com/fatih/color"
)

type textFormatter struct {
	out io.Writer
}

func newTextFormatter(out io.Writer) *textFormatter {
	return &textFormatter{out: out}
}

func statusColor(status nodedetails.DisplayStatus) *color.Color {
	switch {
	case status.Status == nodedetails.NodeStatusFinishedSuccessfully:
		return color.New(color.FgGreen)
	case status.IsTerminal():
		return color.New(color.FgRed)
	case status.Phase != nil && status.Phase.Phase == nodedetails.PhaseErrorInCompute:
		return color.New(color.FgRed)
	case status.Kind == nodedetails.DisplayKindRunning:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgYellow)
	}
}

func (f *textFormatter) PrintDetail(d *nodedetails.Detail) {
	color.New(color.Bold).Fprintln(f.out, d.Title)
	fmt.Fprintf(f.out, "%-15s%s\n", "Status", statusColor(d.Status).Sprint(d.StatusLabel))
	fmt.Fprintf(f.out, "%-15s%s\n", "Created", d.Created)
	fmt.Fprintf(f.out, "%-15s%d\n", "Node ID", d.NodeID)
	if d.HasRuntime() {
		fmt.Fprintf(f.out, "%-15s%s\n", "Total Runtime:", d.Runtime)
	}

	var actions []string
	if d.CanAddNode {
		actions = append(actions, "add node")
	}
	if d.CanDeleteNode {
		actions = append(actions, "delete node")
	}
	if len(actions) > 0 {
		fmt.Fprintf(f.out, "%-15s%s\n", "Actions", strings.Join(actions, ", "))
	}

	fmt.Fprintln(f.out)
	color.New(color.FgMagenta).Fprintf(f.out, "%s:\n", d.CommandHeader)
	if d.Command == "" {
		fmt.Fprintln(f.out, "(not available)")
	} else {
		fmt.Fprintln(f.out, d.Command)
	}
}

func (f *textFormatter) PrintSummaries(summaries []*nodedetails.NodeSummary) {
	if len(summaries) == 0 {
		color.New(color.FgBlue).Fprintln(f.out, "No nodes in feed")
		return
	}
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLUGIN\tSTATUS\tSTARTED\tRUNTIME")
	for _, s := range summaries {
		started := ""
		if !s.StartTime.IsZero() {
			started = s.StartTime.Format(nodedetails.CreatedLayout)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.NodeID, s.Title, s.Status, started, s.Runtime)
	}
	w.Flush()
}

type jsonFormatter struct {
	out io.Writer
}

func newJSONFormatter(out io.Writer) *jsonFormatter {
	return &jsonFormatter{out: out}
}

func (f *jsonFormatter) encode(v any) {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(f.out, "Error formatting output: %v\n", err)
	}
}

func (f *jsonFormatter) PrintDetail(d *nodedetails.Detail) {
	f.encode(d)
}

func (f *jsonFormatter) PrintSummaries(summaries []*nodedetails.NodeSummary) {
	f.encode(summaries)
}

func printHistory(out io.Writer, entries []*nodedetails.RenderLogEntry, asJSON bool) {
	if asJSON {
		newJSONFormatter(out).encode(entries)
		return
	}
	if len(entries) == 0 {
		color.New(color.FgBlue).Fprintln(out, "No recorded details")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %s  %s", entry.RenderedAt.Format(time.RFC3339), entry.ID, entry.Status)
		if entry.Runtime != "" {
			fmt.Fprintf(out, " (%s)", entry.Runtime)
		}
		fmt.Fprintln(out)
	}
}
