package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jask/worldinsights/internal/dataset"
)

// IssueMarkdown lays out an issue the way the detail page reads: header,
// timeline and stakeholders, implications, then every opportunity.
func IssueMarkdown(is dataset.Issue, dashboardURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", is.Title)
	arrow := "▼"
	if is.Trend == dataset.TrendUp {
		arrow = "▲"
	}
	fmt.Fprintf(&b, "**%s priority** %s\n\n", is.Severity, arrow)
	fmt.Fprintf(&b, "%s\n\n", is.Details)

	b.WriteString("## Timeline\n\n")
	fmt.Fprintf(&b, "%s\n\n", is.Timeline)

	b.WriteString("## Key Stakeholders\n\n")
	for _, s := range is.Stakeholders {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Market Implications\n\n")
	for _, s := range is.Implications {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Related Opportunities\n\n")
	for _, o := range is.RelatedOpportunities {
		fmt.Fprintf(&b, "- **%s** · %s · %s · %d%% match\n", o.Title, o.Type, o.Amount, o.Match)
	}
	if dashboardURL != "" {
		fmt.Fprintf(&b, "\n[View all →](%s)\n", dashboardURL)
	}
	return b.String()
}

func (a *App) markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if a.renderer != nil && a.rendererWidth == width {
		return a.renderer, nil
	}
	styleOpt := glamour.WithStandardStyle(a.markdownStyle)
	if a.markdownStyle == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	a.renderer, a.rendererWidth = r, width
	return r, nil
}

// refreshDetail re-renders the overlay issue into the detail viewport.
func (a *App) refreshDetail() {
	id, ok := a.state.Issue()
	if !ok {
		return
	}
	width, height := a.mainSize()
	a.detail.Width = width
	a.detail.Height = max(1, height)

	is, found := a.world.IssueByID(id)
	if !found {
		a.detail.SetContent(mutedStyle.Render("Issue not found"))
		return
	}
	md := IssueMarkdown(is, a.ui.DashboardURL)
	r, err := a.markdownRenderer(max(20, width-2))
	if err != nil {
		a.log.Warn("markdown renderer", zap.Error(err))
		a.detail.SetContent(wrap(md, width))
		return
	}
	out, err := r.Render(md)
	if err != nil {
		a.log.Warn("render issue markdown", zap.Int("issue", id), zap.Error(err))
		out = wrap(md, width)
	}
	a.detail.SetContent(out)
}
