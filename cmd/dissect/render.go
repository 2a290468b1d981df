package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/netlayers/dissect"
)

var (
	fieldNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	chainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

// renderChain styles a frame's protocol chain for the list/viewport header.
func renderChain(chain *dissect.Chain) string {
	return chainStyle.Render(chain.String())
}

// renderRecord renders a decoded Record as an indented field tree. Nested
// records recurse with increasing indent; sequences render one entry per
// line; the synthetic "__error__" field is highlighted since it marks a
// degraded layer.
func renderRecord(rec *dissect.Record, indent int) string {
	if rec == nil {
		return ""
	}
	var b strings.Builder
	pad := strings.Repeat("  ", indent)
	for _, f := range rec.Fields() {
		name := fieldNameStyle.Render(f.Name)
		if f.Name == "__error__" {
			name = errorStyle.Render(f.Name)
		}
		switch f.Value.Kind() {
		case dissect.KindRecord:
			child, _ := f.Value.Record()
			fmt.Fprintf(&b, "%s%s:\n%s", pad, name, renderRecord(child, indent+1))
		case dissect.KindSequence:
			seq, _ := f.Value.Sequence()
			fmt.Fprintf(&b, "%s%s: (%d)\n", pad, name, len(seq))
			for _, v := range seq {
				fmt.Fprintf(&b, "%s  - %s\n", pad, v.String())
			}
		default:
			fmt.Fprintf(&b, "%s%s: %s\n", pad, name, f.Value.String())
		}
	}
	return b.String()
}

// renderStatsHeader renders the decode-stats summary table: a column-and-rule
// layout counting decoded protocol occurrences within the window.
func renderStatsHeader(summaries []ProtoSummary, window time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (window: %s)\n", headerStyle.Render("Decode Stats"), formatDuration(window))
	if len(summaries) == 0 {
		b.WriteString("No frames decoded yet.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%-16s %6s %6s %6s\n", "Protocol", "OK", "Err", "Total")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%-16s %6d %6d %6d\n", truncate(s.Name, 16), s.OK, s.Errors, s.Total)
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatDuration(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		mins := (d % time.Hour) / time.Minute
		if mins > 0 {
			return fmt.Sprintf("%dh%dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		mins := d / time.Minute
		secs := (d % time.Minute) / time.Second
		if secs > 0 {
			return fmt.Sprintf("%dm%ds", mins, secs)
		}
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", d/time.Second)
}
