// Package report renders a completed analysis run for humans: plain text,
// markdown, or HTML. The format is informational, not a machine contract.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"matchlens/app"
	"matchlens/domain/funnel"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Renderer writes a report to w in some format.
type Renderer interface {
	Render(w io.Writer, r *app.Report) error
}

// ForFormat returns the renderer for a format name.
func ForFormat(f Format) (Renderer, error) {
	switch f {
	case FormatText, "":
		return &TextRenderer{}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", f)
	}
}

// TextRenderer writes the console report.
type TextRenderer struct{}

func (t *TextRenderer) Render(w io.Writer, r *app.Report) error {
	fmt.Fprintf(w, "matchlens run %s (%s)\n\n", r.RunID, r.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "Profiles: %d total, %d with background info", r.Totals.Profiles, r.Totals.WithBackground)
	if r.Totals.FilteredOut > 0 {
		fmt.Fprintf(w, ", %d filtered out", r.Totals.FilteredOut)
	}
	fmt.Fprintln(w)
	if skipped := r.Totals.SkippedMatchRows + r.Totals.SkippedBaselineRows; skipped > 0 {
		fmt.Fprintf(w, "Skipped rows: %d match log, %d baseline\n", r.Totals.SkippedMatchRows, r.Totals.SkippedBaselineRows)
	}
	fmt.Fprintf(w, "Sample cutoff: %d (observed per-race samples min %.0f / median %.1f / mean %.1f / max %.0f)\n\n",
		r.SampleCutoff, r.Diagnostics.Min, r.Diagnostics.Median, r.Diagnostics.Mean, r.Diagnostics.Max)

	fmt.Fprintln(w, "Preference Index")
	if r.PreferenceUnavailable != "" {
		fmt.Fprintf(w, "\tnot enough data: %s\n", r.PreferenceUnavailable)
	} else {
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "\tRANK\tRACE\tWEIGHT\tCOUNT")
		for i, p := range r.Preferences {
			if p.Count < r.SampleCutoff {
				fmt.Fprintf(tw, "\t%d\t%s\t%s\t%d\n", i+1, p.Label(), "NOT ENOUGH SAMPLES", p.Count)
				continue
			}
			fmt.Fprintf(tw, "\t%d\t%s\t%.4f\t%d\n", i+1, p.Label(), p.Weight, p.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Conversation Funnel")
	if r.FunnelUnavailable != "" {
		fmt.Fprintf(w, "\tnot enough data: %s\n", r.FunnelUnavailable)
		return nil
	}
	for _, row := range funnelRows(r.Funnel) {
		fmt.Fprintf(w, "\t%s:\t%.1f%%\n", row.label, row.value*100)
	}
	return nil
}

type funnelRow struct {
	label string
	value float64
}

func funnelRows(m *funnel.Metrics) []funnelRow {
	return []funnelRow{
		{"interested", m.Interested},
		{"they never answered", m.TheyFailed},
		{"no one interested", m.NoOneInterested},
		{"starter success", m.StarterSuccess},
		{"starter failed", m.StarterFailed},
		{"you ghosted them", m.YouGhostThem},
		{"they ghosted you", m.ThemGhostYou},
		{"date rate", m.DateRate},
		{"date given interest", m.DateGivenInterest},
	}
}
