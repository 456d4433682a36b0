package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Close    key.Binding
	Home     key.Binding
	Tab      key.Binding
	Insights key.Binding
	Atlas    key.Binding
	Severity key.Binding
	Time     key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("backspace", "left", "h"), key.WithHelp("⌫", "back")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Home:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "world")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Insights: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "insights")),
		Atlas:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "atlas")),
		Severity: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "severity")),
		Time:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Close, k.Search, k.Severity, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Close, k.Home},
		{k.Tab, k.Insights, k.Atlas, k.Search},
		{k.Severity, k.Time, k.Help, k.Quit},
	}
}
