// Package view derives what the insights screen shows from a navigation
// state. Render is pure: the same world, state and filters always give the
// same View, and nothing is mutated.
package view

import (
	"encoding/json"

	"github.com/jask/worldinsights/internal/dataset"
	"github.com/jask/worldinsights/internal/nav"
)

type Kind string

const (
	RegionList  Kind = "region_list"
	CountryList Kind = "country_list"
	SectorList  Kind = "sector_list"
	IssueList   Kind = "issue_list"
	IssueDetail Kind = "issue_detail"
)

// PreviewOpportunities is how many opportunities an issue row shows.
const PreviewOpportunities = 2

type RegionRow struct {
	Name      string         `json:"name"`
	Impact    dataset.Impact `json:"impact"`
	Trend     dataset.Trend  `json:"trend"`
	KeyIssues []string       `json:"key_issues"`
	Countries int            `json:"countries"`
}

type CountryRow struct {
	Name    string `json:"name"`
	Sectors int    `json:"sectors"`
}

type SectorRow struct {
	Name   string `json:"name"`
	Issues int    `json:"issues"`
}

type IssueRow struct {
	ID            int                   `json:"id"`
	Title         string                `json:"title"`
	Severity      dataset.Severity      `json:"severity"`
	Trend         dataset.Trend         `json:"trend"`
	Summary       string                `json:"summary"`
	Timeline      string                `json:"timeline"`
	Opportunities int                   `json:"opportunities"`
	Preview       []dataset.Opportunity `json:"preview"`
}

// View is one of the five screens. Exactly one of the row slices or
// Detail is populated, matching Kind; list slices are empty (not nil) when
// the path does not resolve.
type View struct {
	Kind        Kind           `json:"kind"`
	Breadcrumbs []string       `json:"breadcrumbs"`
	Filters     Filters        `json:"filters"`
	Regions     []RegionRow    `json:"regions"`
	Countries   []CountryRow   `json:"countries"`
	Sectors     []SectorRow    `json:"sectors"`
	Issues      []IssueRow     `json:"issues"`
	Detail      *dataset.Issue `json:"detail"`
}

// MarshalJSON writes only the field that matches Kind. The active list is
// always present, as [] when it has no rows.
func (v View) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind        Kind           `json:"kind"`
		Breadcrumbs []string       `json:"breadcrumbs"`
		Filters     Filters        `json:"filters"`
		Regions     *[]RegionRow   `json:"regions,omitempty"`
		Countries   *[]CountryRow  `json:"countries,omitempty"`
		Sectors     *[]SectorRow   `json:"sectors,omitempty"`
		Issues      *[]IssueRow    `json:"issues,omitempty"`
		Detail      *dataset.Issue `json:"detail,omitempty"`
	}{Kind: v.Kind, Breadcrumbs: v.Breadcrumbs, Filters: v.Filters, Detail: v.Detail}
	switch v.Kind {
	case RegionList:
		rows := nonNil(v.Regions)
		out.Regions = &rows
	case CountryList:
		rows := nonNil(v.Countries)
		out.Countries = &rows
	case SectorList:
		rows := nonNil(v.Sectors)
		out.Sectors = &rows
	case IssueList:
		rows := nonNil(v.Issues)
		out.Issues = &rows
	}
	return json.Marshal(out)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// Len is the number of selectable rows.
func (v View) Len() int {
	switch v.Kind {
	case RegionList:
		return len(v.Regions)
	case CountryList:
		return len(v.Countries)
	case SectorList:
		return len(v.Sectors)
	case IssueList:
		return len(v.Issues)
	}
	return 0
}

// Key returns the navigation key of row i: the child name for place
// lists. Issue rows and the detail view have no key.
func (v View) Key(i int) (string, bool) {
	if i < 0 || i >= v.Len() {
		return "", false
	}
	switch v.Kind {
	case RegionList:
		return v.Regions[i].Name, true
	case CountryList:
		return v.Countries[i].Name, true
	case SectorList:
		return v.Sectors[i].Name, true
	}
	return "", false
}

// IssueID returns the id of issue row i.
func (v View) IssueID(i int) (int, bool) {
	if v.Kind != IssueList || i < 0 || i >= len(v.Issues) {
		return 0, false
	}
	return v.Issues[i].ID, true
}

// Render builds the view for s. An issue overlay wins over the level. A
// path that does not resolve renders as an empty list of its level.
func Render(w *dataset.World, s nav.State, f Filters) View {
	v := View{Breadcrumbs: s.Breadcrumbs(), Filters: f}
	if id, ok := s.Issue(); ok {
		v.Kind = IssueDetail
		if is, found := w.IssueByID(id); found {
			v.Detail = &is
		}
		return v
	}
	path := s.Path()
	switch s.Level() {
	case nav.World:
		v.Kind = RegionList
		v.Regions = regionRows(w)
	case nav.Region:
		v.Kind = CountryList
		v.Countries = countryRows(w, path[0])
	case nav.Country:
		v.Kind = SectorList
		v.Sectors = sectorRows(w, path[0], path[1])
	default:
		v.Kind = IssueList
		v.Issues = issueRows(w, path, f)
	}
	return v
}

func regionRows(w *dataset.World) []RegionRow {
	rows := make([]RegionRow, 0, w.Regions.Len())
	for name, r := range w.Regions.All() {
		rows = append(rows, RegionRow{
			Name:      name,
			Impact:    r.Impact,
			Trend:     r.Trend,
			KeyIssues: append([]string(nil), r.KeyIssues...),
			Countries: r.Countries.Len(),
		})
	}
	return rows
}

func countryRows(w *dataset.World, region string) []CountryRow {
	r, ok := w.Region(region)
	if !ok {
		return []CountryRow{}
	}
	rows := make([]CountryRow, 0, r.Countries.Len())
	for name, c := range r.Countries.All() {
		rows = append(rows, CountryRow{Name: name, Sectors: c.Sectors.Len()})
	}
	return rows
}

func sectorRows(w *dataset.World, region, country string) []SectorRow {
	r, ok := w.Region(region)
	if !ok {
		return []SectorRow{}
	}
	c, ok := r.Country(country)
	if !ok {
		return []SectorRow{}
	}
	rows := make([]SectorRow, 0, c.Sectors.Len())
	for name, s := range c.Sectors.All() {
		rows = append(rows, SectorRow{Name: name, Issues: len(s.Issues)})
	}
	return rows
}

func issueRows(w *dataset.World, path []string, f Filters) []IssueRow {
	issues, ok := w.Issues(path)
	if !ok {
		return []IssueRow{}
	}
	rows := make([]IssueRow, 0, len(issues))
	for _, is := range issues {
		if !f.Severity.Allows(is.Severity) {
			continue
		}
		preview := is.RelatedOpportunities
		if len(preview) > PreviewOpportunities {
			preview = preview[:PreviewOpportunities]
		}
		rows = append(rows, IssueRow{
			ID:            is.ID,
			Title:         is.Title,
			Severity:      is.Severity,
			Trend:         is.Trend,
			Summary:       is.Summary,
			Timeline:      is.Timeline,
			Opportunities: len(is.RelatedOpportunities),
			Preview:       preview,
		})
	}
	return rows
}
