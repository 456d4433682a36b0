package tui

import (
	"fmt"
	"strings"

	"github.com/jask/worldinsights/internal/badge"
	"github.com/jask/worldinsights/internal/dataset"
)

// Atlas is the second tab. The app treats it as an opaque view supplied
// by the caller.
type Atlas interface {
	Title() string
	View(width, height int) string
}

// RegionAtlas lays every region out as a pane with its impact, trend and
// the places below it.
type RegionAtlas struct {
	World *dataset.World
}

func (RegionAtlas) Title() string { return "Atlas" }

func (a RegionAtlas) View(width, height int) string {
	if a.World == nil {
		return mutedStyle.Render("No atlas data")
	}
	var panes []string
	for name, r := range a.World.Regions.All() {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", badge.Impact(r.Impact).Render(), badge.Trend(r.Trend).Render())
		if r.Countries.Len() == 0 {
			b.WriteString(mutedStyle.Render("No country coverage yet"))
		}
		for cname, c := range r.Countries.All() {
			fmt.Fprintf(&b, "%s  %s\n", currentStyle.Render(cname), mutedStyle.Render(strings.Join(c.Sectors.Keys(), " · ")))
		}
		panes = append(panes, Pane{Title: name, Content: b.String()}.Render(width))
	}
	return fitHeight(strings.Join(panes, "\n"), height)
}
