// Package badge renders small rounded labels for severities, impacts,
// trends and opportunity types.
package badge

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/worldinsights/internal/dataset"
)

type Variant string

const (
	Default     Variant = "default"
	Secondary   Variant = "secondary"
	Destructive Variant = "destructive"
	Outline     Variant = "outline"
)

// Variants lists every variant in declaration order.
var Variants = []Variant{Default, Secondary, Destructive, Outline}

// ParseVariant maps a name to a variant. Anything unrecognised, including
// the empty string, is Default.
func ParseVariant(name string) Variant {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case Default, Secondary, Destructive, Outline:
		return v
	}
	return Default
}

var (
	colorStone50  lipgloss.Color = "#fafaf9"
	colorStone100 lipgloss.Color = "#f5f5f4"
	colorStone200 lipgloss.Color = "#e7e5e4"
	colorStone700 lipgloss.Color = "#44403c"
	colorStone900 lipgloss.Color = "#1c1917"
	colorRed500   lipgloss.Color = "#ef4444"
)

var base = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var variantStyles = map[Variant]lipgloss.Style{
	Default:     base.Background(colorStone900).Foreground(colorStone50),
	Secondary:   base.Background(colorStone100).Foreground(colorStone900),
	Destructive: base.Background(colorRed500).Foreground(colorStone50),
	Outline: base.Foreground(colorStone700).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorStone200).
		Padding(0),
}

// Style returns the style set for v; unknown variants get Default's.
func Style(v Variant) lipgloss.Style {
	if s, ok := variantStyles[v]; ok {
		return s
	}
	return variantStyles[Default]
}

func Render(v Variant, content string) string {
	return Style(v).Render(content)
}

// Tone is the colour family of a data-driven label.
type Tone string

const (
	ToneRed    Tone = "red"
	ToneOrange Tone = "orange"
	ToneYellow Tone = "yellow"
	ToneGreen  Tone = "green"
	ToneMuted  Tone = "muted"
)

var toneStyles = map[Tone]lipgloss.Style{
	ToneRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")).Background(lipgloss.Color("#fee2e2")).Padding(0, 1),
	ToneOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("#c2410c")).Background(lipgloss.Color("#ffedd5")).Padding(0, 1),
	ToneYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#a16207")).Background(lipgloss.Color("#fef9c3")).Padding(0, 1),
	ToneGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")).Background(lipgloss.Color("#dcfce7")).Padding(0, 1),
	ToneMuted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#78716c")).Padding(0, 1),
}

// Label is a piece of text with the tone it should be drawn in.
type Label struct {
	Text string
	Tone Tone
}

func (l Label) Render() string {
	s, ok := toneStyles[l.Tone]
	if !ok {
		s = toneStyles[ToneMuted]
	}
	return s.Render(l.Text)
}

func Severity(s dataset.Severity) Label {
	switch s {
	case dataset.SeverityCritical:
		return Label{Text: string(s), Tone: ToneRed}
	case dataset.SeverityHigh:
		return Label{Text: string(s), Tone: ToneOrange}
	}
	return Label{Text: string(s), Tone: ToneYellow}
}

func Impact(i dataset.Impact) Label {
	text := string(i) + " impact"
	switch i {
	case dataset.ImpactHigh:
		return Label{Text: text, Tone: ToneRed}
	case dataset.ImpactMedium:
		return Label{Text: text, Tone: ToneYellow}
	}
	return Label{Text: text, Tone: ToneGreen}
}

func Trend(t dataset.Trend) Label {
	switch t {
	case dataset.TrendUp:
		return Label{Text: "▲", Tone: ToneGreen}
	case dataset.TrendDown:
		return Label{Text: "▼", Tone: ToneRed}
	}
	return Label{Text: "●", Tone: ToneMuted}
}
