// Package tui is the terminal front end: an Insights tab that drills down
// through the dataset and an Atlas tab supplied by the caller.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jask/worldinsights/internal/config"
	"github.com/jask/worldinsights/internal/dataset"
	"github.com/jask/worldinsights/internal/nav"
	"github.com/jask/worldinsights/internal/view"
)

type tabID string

const (
	tabInsights tabID = "insights"
	tabAtlas    tabID = "atlas"
)

type inputMode string

const (
	modeBrowse inputMode = "browse"
	modeSearch inputMode = "search"
)

const (
	searchLimit  = 8
	sidebarWidth = 34
	minSidebarAt = 100
)

// Options configures an App. World is required; everything else has a
// usable zero value.
type Options struct {
	World *dataset.World
	UI    config.UIConfig
	Atlas Atlas
	Log   *zap.Logger
	Start nav.State
	// MarkdownStyle is a glamour standard style name, or "auto" to detect
	// the terminal background. Empty means "dark".
	MarkdownStyle string
}

// App is the Bubble Tea model.
type App struct {
	world *dataset.World
	ui    config.UIConfig
	atlas Atlas
	log   *zap.Logger

	keys   keyMap
	help   help.Model
	search textinput.Model
	detail viewport.Model

	markdownStyle string
	renderer      *glamour.TermRenderer
	rendererWidth int

	state       nav.State
	filters     view.Filters
	cursor      int
	cursorStack []int
	tab         tabID
	mode        inputMode
	hits        []dataset.Hit
	hitCursor   int
	status      string
	statusErr   bool
	width       int
	height      int
	quitting    bool
}

func New(opts Options) *App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	atlas := opts.Atlas
	if atlas == nil {
		atlas = RegionAtlas{World: opts.World}
	}
	style := opts.MarkdownStyle
	if style == "" {
		style = "dark"
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "region, country, sector or issue"
	ti.CharLimit = 64

	a := &App{
		world:         opts.World,
		ui:            opts.UI,
		atlas:         atlas,
		log:           log,
		keys:          newKeyMap(),
		help:          help.New(),
		search:        ti,
		detail:        viewport.New(80, 20),
		markdownStyle: style,
		state:         opts.Start,
		filters:       view.DefaultFilters(),
		cursorStack:   make([]int, opts.Start.Depth()),
		tab:           tabInsights,
		mode:          modeBrowse,
		status:        "Ready",
		width:         100,
		height:        32,
	}
	if opts.UI.DefaultTab == string(tabAtlas) {
		a.tab = tabAtlas
	}
	if _, ok := a.state.Issue(); ok {
		a.refreshDetail()
	}
	return a
}

func (a *App) Init() tea.Cmd { return nil }

// State returns the current navigation state.
func (a *App) State() nav.State { return a.state }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.refreshDetail()
		return a, nil
	case tea.KeyMsg:
		if a.mode == modeSearch {
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit
	case key.Matches(m, a.keys.Tab):
		if a.tab == tabInsights {
			a.tab = tabAtlas
		} else {
			a.tab = tabInsights
		}
		return a, nil
	case key.Matches(m, a.keys.Insights):
		a.tab = tabInsights
		return a, nil
	case key.Matches(m, a.keys.Atlas):
		a.tab = tabAtlas
		return a, nil
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	}
	if a.tab != tabInsights {
		return a, nil
	}

	_, overlay := a.state.Issue()
	switch {
	case key.Matches(m, a.keys.Close):
		if overlay {
			a.dispatch(nav.ClearIssue{})
		} else if a.state.Depth() > 0 {
			a.goBack()
		}
	case key.Matches(m, a.keys.Back):
		a.goBack()
	case key.Matches(m, a.keys.Home):
		a.dispatch(nav.Reset{})
		a.cursor, a.cursorStack = 0, a.cursorStack[:0]
	case key.Matches(m, a.keys.Search):
		a.mode = modeSearch
		a.search.SetValue("")
		a.hits, a.hitCursor = nil, 0
		return a, a.search.Focus()
	case key.Matches(m, a.keys.Severity):
		a.filters = a.filters.NextSeverity()
		a.clampCursor()
		a.setStatus("Severity: " + a.filters.Severity.Label())
	case key.Matches(m, a.keys.Time):
		a.filters = a.filters.NextTime()
		a.setStatus("Time: " + a.filters.Time.Label())
	case overlay:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(m)
		return a, cmd
	case key.Matches(m, a.keys.Up):
		a.cursor = max(0, a.cursor-1)
	case key.Matches(m, a.keys.Down):
		a.cursor = min(max(0, a.current().Len()-1), a.cursor+1)
	case key.Matches(m, a.keys.Enter):
		a.open()
	}
	return a, nil
}

// current renders the view for the present state and filters.
func (a *App) current() view.View {
	return view.Render(a.world, a.state, a.filters)
}

func (a *App) open() {
	v := a.current()
	switch v.Kind {
	case view.RegionList, view.CountryList, view.SectorList:
		k, ok := v.Key(a.cursor)
		if !ok {
			return
		}
		if a.dispatch(nav.Descend{Level: nav.Level(a.state.Depth() + 1), Key: k}) {
			a.cursorStack = append(a.cursorStack, a.cursor)
			a.cursor = 0
		}
	case view.IssueList:
		id, ok := v.IssueID(a.cursor)
		if !ok {
			return
		}
		a.dispatch(nav.SelectIssue{ID: id})
	}
}

func (a *App) goBack() {
	if a.state.Depth() == 0 {
		return
	}
	if a.dispatch(nav.Back{}) {
		if n := len(a.cursorStack); n > 0 {
			a.cursor = a.cursorStack[n-1]
			a.cursorStack = a.cursorStack[:n-1]
		} else {
			a.cursor = 0
		}
		a.clampCursor()
	}
}

// dispatch applies a navigation action and reports whether it succeeded.
func (a *App) dispatch(act nav.Action) bool {
	next, err := nav.Reduce(a.world, a.state, act)
	if err != nil {
		a.log.Warn("navigation rejected", zap.String("state", a.state.String()), zap.Error(err))
		a.setError(err)
		return false
	}
	a.log.Debug("navigate",
		zap.String("action", fmt.Sprintf("%T", act)),
		zap.String("from", a.state.String()),
		zap.String("to", next.String()),
	)
	a.state = next
	a.setStatus(a.describe())
	if _, ok := a.state.Issue(); ok {
		a.refreshDetail()
		a.detail.GotoTop()
	}
	return true
}

func (a *App) describe() string {
	if id, ok := a.state.Issue(); ok {
		if is, found := a.world.IssueByID(id); found {
			return is.Title
		}
	}
	crumbs := a.state.Breadcrumbs()
	return crumbs[len(crumbs)-1]
}

func (a *App) clampCursor() {
	n := a.current().Len()
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	if err == nil {
		a.setStatus("")
		return
	}
	a.status = err.Error()
	a.statusErr = true
}
