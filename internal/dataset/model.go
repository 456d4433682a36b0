// Package dataset holds the static world insights data: regions, countries,
// sectors and the issues tracked in each sector.
//
// A World is immutable once loaded. Accessors hand out values or fresh
// slices so callers cannot reach back into the loaded tree.
package dataset

import "slices"

// Impact is a region's overall impact rating.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

func (i Impact) Valid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	}
	return false
}

// Trend is the direction an issue or region is moving in.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ValidForRegion reports whether t is allowed on a region.
func (t Trend) ValidForRegion() bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	}
	return false
}

// ValidForIssue reports whether t is allowed on an issue. Issues never
// carry a stable trend.
func (t Trend) ValidForIssue() bool {
	return t == TrendUp || t == TrendDown
}

// Severity ranks how pressing an issue is.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Rank orders severities; unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// Opportunity is a funding or work opportunity related to an issue.
// Amount is free-form currency or rate text ("$50K-200K", "$150/hour").
type Opportunity struct {
	Title  string `yaml:"title" json:"title"`
	Type   string `yaml:"type" json:"type"`
	Amount string `yaml:"amount" json:"amount"`
	Match  int    `yaml:"match" json:"match"`
}

type Issue struct {
	ID                   int           `yaml:"id" json:"id"`
	Title                string        `yaml:"title" json:"title"`
	Severity             Severity      `yaml:"severity" json:"severity"`
	Trend                Trend         `yaml:"trend" json:"trend"`
	Summary              string        `yaml:"summary" json:"summary"`
	Details              string        `yaml:"details" json:"details"`
	RelatedOpportunities []Opportunity `yaml:"related_opportunities" json:"related_opportunities"`
	Implications         []string      `yaml:"implications" json:"implications"`
	Timeline             string        `yaml:"timeline" json:"timeline"`
	Stakeholders         []string      `yaml:"stakeholders" json:"stakeholders"`
}

// clone returns a copy whose slices do not alias the receiver's.
func (i Issue) clone() Issue {
	i.RelatedOpportunities = slices.Clone(i.RelatedOpportunities)
	i.Implications = slices.Clone(i.Implications)
	i.Stakeholders = slices.Clone(i.Stakeholders)
	return i
}

// BestMatch returns the highest opportunity match, or 0 when there are none.
func (i Issue) BestMatch() int {
	best := 0
	for _, o := range i.RelatedOpportunities {
		best = max(best, o.Match)
	}
	return best
}

type Sector struct {
	Issues []Issue `yaml:"issues" json:"issues"`
}

func (s Sector) clone() Sector {
	issues := make([]Issue, len(s.Issues))
	for i, is := range s.Issues {
		issues[i] = is.clone()
	}
	s.Issues = issues
	return s
}

type Country struct {
	Sectors Ordered[Sector] `yaml:"sectors" json:"sectors"`
}

func (c Country) clone() Country {
	c.Sectors = c.Sectors.clone()
	return c
}

// Region is a top-level area of the world. Countries is optional; regions
// without drill-down data have an empty mapping.
type Region struct {
	Impact    Impact           `yaml:"impact" json:"impact"`
	Trend     Trend            `yaml:"trend" json:"trend"`
	KeyIssues []string         `yaml:"key_issues" json:"key_issues"`
	Countries Ordered[Country] `yaml:"countries" json:"countries"`
}

func (r Region) clone() Region {
	r.KeyIssues = slices.Clone(r.KeyIssues)
	r.Countries = r.Countries.clone()
	return r
}

// World is the root of the dataset. Regions hands out copies; the loaded
// tree cannot be changed through it.
type World struct {
	Regions Ordered[Region] `yaml:"regions" json:"regions"`

	issues map[int]issueRef
}

type issueRef struct {
	path  [3]string
	issue Issue
}
