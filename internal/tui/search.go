package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/worldinsights/internal/dataset"
	"github.com/jask/worldinsights/internal/nav"
)

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit
	case "esc":
		a.closeSearch()
		return a, nil
	case "up":
		a.hitCursor = max(0, a.hitCursor-1)
		return a, nil
	case "down":
		a.hitCursor = min(max(0, len(a.hits)-1), a.hitCursor+1)
		return a, nil
	case "enter":
		if a.hitCursor < len(a.hits) {
			a.jump(a.hits[a.hitCursor])
		}
		a.closeSearch()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.hits = a.world.Search(a.search.Value(), searchLimit)
	a.hitCursor = min(a.hitCursor, max(0, len(a.hits)-1))
	return a, cmd
}

func (a *App) closeSearch() {
	a.mode = modeBrowse
	a.search.Blur()
	a.hits, a.hitCursor = nil, 0
}

// jump walks from the world root to the hit, leaving the cursor on the
// node that was found.
func (a *App) jump(h dataset.Hit) {
	parent := h.Path
	if h.Kind != dataset.HitIssue {
		parent = h.Path[:len(h.Path)-1]
	}
	s, err := nav.Walk(a.world, parent)
	if err != nil {
		a.setError(err)
		return
	}
	a.state = s
	a.tab = tabInsights
	a.cursorStack = make([]int, len(parent))
	a.cursor = 0
	v := a.current()
	for i := range v.Len() {
		if k, ok := v.Key(i); ok && h.Kind != dataset.HitIssue && k == h.Label {
			a.cursor = i
		}
		if id, ok := v.IssueID(i); ok && id == h.IssueID {
			a.cursor = i
		}
	}
	if h.Kind == dataset.HitIssue {
		a.dispatch(nav.SelectIssue{ID: h.IssueID})
		return
	}
	a.log.Debug("search jump", zap.String("to", a.state.String()), zap.String("label", h.Label))
	a.setStatus(fmt.Sprintf("Found %s %s", h.Kind, h.Label))
}

func (a *App) renderSearch(width int) string {
	var b strings.Builder
	b.WriteString(a.search.View())
	b.WriteString("\n")
	if strings.TrimSpace(a.search.Value()) != "" && len(a.hits) == 0 {
		b.WriteString(mutedStyle.Render("No matches"))
	}
	for i, h := range a.hits {
		marker := "  "
		label := h.Label
		if i == a.hitCursor {
			marker = cursorStyle.Render("▶ ")
			label = currentStyle.Render(label)
		}
		where := strings.Join(h.Path, " › ")
		fmt.Fprintf(&b, "%s%s %s\n", marker, label, mutedStyle.Render(string(h.Kind)+" · "+where))
	}
	return Pane{Title: "Search", Content: b.String(), Selected: true}.Render(width)
}
