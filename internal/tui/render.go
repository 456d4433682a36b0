package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/worldinsights/internal/badge"
	"github.com/jask/worldinsights/internal/view"
)

func (a *App) View() string {
	if a.quitting {
		return "Goodbye\n"
	}
	header := a.renderHeader()
	status := a.renderStatus()
	footer := a.help.View(a.keys)
	bodyHeight := max(0, a.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))

	var body string
	if a.tab == tabAtlas {
		body = a.atlas.View(max(1, a.width), bodyHeight)
	} else {
		body = a.renderInsights(bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	out := strings.Join([]string{header, status, body, footer}, "\n")
	return appStyle.Width(max(1, a.width)).MaxWidth(max(1, a.width)).Render(fitHeight(out, max(1, a.height)))
}

// mainSize is the width and height available to the insights content
// column below the breadcrumb and filter lines.
func (a *App) mainSize() (int, int) {
	width := a.width
	if a.width >= minSidebarAt {
		width -= sidebarWidth + 1
	}
	chrome := 4 + lipgloss.Height(a.help.View(a.keys))
	return max(20, width), max(1, a.height-chrome)
}

func (a *App) renderHeader() string {
	tabs := []struct {
		id    tabID
		title string
	}{
		{tabInsights, "Insights"},
		{tabAtlas, a.atlas.Title()},
	}
	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d:%s", i+1, t.title)
		if t.id == a.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	left := headerAppStyle.Render("World Insights")
	right := strings.Join(parts, headerBarStyle.Render("│"))
	gap := max(1, a.width-ansi.StringWidth(left)-ansi.StringWidth(right))
	return renderBar(headerBarStyle, max(1, a.width), left+headerBarStyle.Render(strings.Repeat(" ", gap))+right)
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, max(1, a.width), msg)
	}
	return renderBar(statusBarStyle, max(1, a.width), msg)
}

func (a *App) renderInsights(height int) string {
	mainWidth, contentHeight := a.mainSize()

	var main string
	switch {
	case a.mode == modeSearch:
		main = a.renderSearch(mainWidth)
	case a.isDetail():
		main = a.detail.View()
	default:
		main = a.renderList(a.current(), mainWidth, contentHeight)
	}
	column := strings.Join([]string{a.renderBreadcrumbs(mainWidth), a.renderFilters(), main}, "\n")
	column = fitHeight(column, height)

	if a.width < minSidebarAt {
		return column
	}
	side := fitHeight(a.renderSidebar(sidebarWidth), height)
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(mainWidth).Render(column), " ", side)
}

func (a *App) isDetail() bool {
	_, ok := a.state.Issue()
	return ok
}

func (a *App) renderBreadcrumbs(width int) string {
	crumbs := a.state.Breadcrumbs()
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = currentStyle.Render(c)
		} else {
			parts[i] = crumbStyle.Render(c)
		}
	}
	line := strings.Join(parts, crumbStyle.Render(" › "))
	if a.state.Depth() > 0 {
		line = cursorStyle.Render("← ") + line
	}
	return ansi.Truncate(line, width, "…")
}

func (a *App) renderFilters() string {
	return filterStyle.Render("t "+a.filters.Time.Label()) + " " + filterStyle.Render("s "+a.filters.Severity.Label())
}

// renderList draws the cards of a list view, scrolled so the cursor card
// is visible.
func (a *App) renderList(v view.View, width, height int) string {
	if v.Len() == 0 {
		return mutedStyle.Render("Nothing tracked here yet.")
	}
	cards := make([]string, v.Len())
	for i := range cards {
		cards[i] = a.renderCard(v, i, width)
	}
	cur := min(a.cursor, len(cards)-1)
	start := 0
	for start < cur && totalHeight(cards[start:cur+1]) > height {
		start++
	}
	return strings.Join(cards[start:], "\n")
}

func totalHeight(cards []string) int {
	n := 0
	for _, c := range cards {
		n += lipgloss.Height(c)
	}
	return n
}

func (a *App) renderCard(v view.View, i, width int) string {
	selected := i == a.cursor
	inner := width - 4
	switch v.Kind {
	case view.RegionList:
		r := v.Regions[i]
		content := badge.Impact(r.Impact).Render() + " " + badge.Trend(r.Trend).Render() + "\n" +
			wrap(mutedStyle.Render("Key Issues: "+strings.Join(r.KeyIssues, ", ")), inner)
		return Pane{Title: r.Name, Content: content, Selected: selected}.Render(width)
	case view.CountryList:
		c := v.Countries[i]
		return Pane{Title: c.Name, Content: mutedStyle.Render(fmt.Sprintf("%d active sectors", c.Sectors)), Selected: selected}.Render(width)
	case view.SectorList:
		s := v.Sectors[i]
		return Pane{Title: s.Name, Content: mutedStyle.Render(fmt.Sprintf("%d active issues", s.Issues)), Selected: selected}.Render(width)
	case view.IssueList:
		return a.renderIssueCard(v.Issues[i], width, selected)
	}
	return ""
}

func (a *App) renderIssueCard(is view.IssueRow, width int, selected bool) string {
	inner := width - 4
	var b strings.Builder
	b.WriteString(badge.Severity(is.Severity).Render() + " " + badge.Trend(is.Trend).Render() + "\n")
	b.WriteString(wrap(is.Summary, inner) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("⏱ %s · %d opportunities", is.Timeline, is.Opportunities)) + "\n")
	if len(is.Preview) > 0 {
		b.WriteString(titleStyle.Render("Related Opportunities") + "\n")
	}
	for _, o := range is.Preview {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			badge.Render(badge.Secondary, o.Type),
			o.Title,
			mutedStyle.Render(o.Amount),
			mutedStyle.Render(fmt.Sprintf("%d%% match", o.Match)),
		)
	}
	return Pane{Title: is.Title, Content: b.String(), Selected: selected}.Render(width)
}

func (a *App) renderSidebar(width int) string {
	var focus strings.Builder
	for _, f := range a.ui.Focus() {
		fmt.Fprintf(&focus, "%s %s\n", padRight(f.Name, width-14), mutedStyle.Render(f.Role))
	}
	if focus.Len() == 0 {
		focus.WriteString(mutedStyle.Render("No focus areas configured"))
	}

	var trending strings.Builder
	for _, is := range a.world.Trending(3) {
		fmt.Fprintf(&trending, "%s %s\n", badge.Trend(is.Trend).Render(), is.Title)
	}

	ov := a.world.Overview(a.ui.MatchThreshold)
	overview := fmt.Sprintf("%s %d\n%s %d\n%s %d",
		padRight("Active Issues", width-10), ov.ActiveIssues,
		padRight("Related Opportunities", width-10), ov.RelatedOpportunities,
		padRight("Your Matches", width-10), ov.Matches,
	)
	panes := []string{
		Pane{Title: "Your Focus Areas", Content: focus.String()}.Render(width),
		Pane{Title: "Trending in Your Field", Content: trending.String()}.Render(width),
		Pane{Title: "Global Overview", Content: overview}.Render(width),
	}
	if a.isDetail() && a.ui.DashboardURL != "" {
		panes = append(panes, Pane{Title: "Dashboard", Content: linkStyle.Render(a.ui.DashboardURL)}.Render(width))
	}
	return strings.Join(panes, "\n")
}
