package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"matchlens/app"
)

// MarkdownRenderer writes the report as a markdown document.
type MarkdownRenderer struct{}

func (m *MarkdownRenderer) Render(w io.Writer, r *app.Report) error {
	fmt.Fprintf(w, "# matchlens run %s\n\n", r.RunID)
	fmt.Fprintf(w, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "- Profiles: %d total, %d with background info, %d filtered out\n",
		r.Totals.Profiles, r.Totals.WithBackground, r.Totals.FilteredOut)
	fmt.Fprintf(w, "- Skipped rows: %d match log, %d baseline\n",
		r.Totals.SkippedMatchRows, r.Totals.SkippedBaselineRows)
	fmt.Fprintf(w, "- Sample cutoff: %d (samples min %.0f / median %.1f / mean %.1f / max %.0f)\n\n",
		r.SampleCutoff, r.Diagnostics.Min, r.Diagnostics.Median, r.Diagnostics.Mean, r.Diagnostics.Max)

	fmt.Fprintln(w, "## Preference Index")
	fmt.Fprintln(w)
	if r.PreferenceUnavailable != "" {
		fmt.Fprintf(w, "Not enough data: %s\n\n", r.PreferenceUnavailable)
	} else {
		fmt.Fprintln(w, "| Rank | Race | Weight | Count |")
		fmt.Fprintln(w, "|------|------|--------|-------|")
		for i, p := range r.Preferences {
			weight := fmt.Sprintf("%.4f", p.Weight)
			if p.Count < r.SampleCutoff {
				weight = "not enough samples"
			}
			fmt.Fprintf(w, "| %d | %s | %s | %d |\n", i+1, p.Label(), weight, p.Count)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Conversation Funnel")
	fmt.Fprintln(w)
	if r.FunnelUnavailable != "" {
		fmt.Fprintf(w, "Not enough data: %s\n", r.FunnelUnavailable)
		return nil
	}
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	for _, row := range funnelRows(r.Funnel) {
		fmt.Fprintf(w, "| %s | %.1f%% |\n", row.label, row.value*100)
	}
	return nil
}

// HTMLRenderer renders the markdown report to a standalone HTML page.
type HTMLRenderer struct{}

func (h *HTMLRenderer) Render(w io.Writer, r *app.Report) error {
	var md bytes.Buffer
	if err := (&MarkdownRenderer{}).Render(&md, r); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: fmt.Sprintf("matchlens run %s", r.RunID),
		Flags: html.CommonFlags | html.CompletePage,
	})
	_, err := w.Write(markdown.ToHTML(md.Bytes(), p, renderer))
	return err
}
