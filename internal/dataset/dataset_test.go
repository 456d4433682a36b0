package dataset

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultDatasetShape(t *testing.T) {
	t.Parallel()

	w := Default()
	require.Equal(t, []string{"Africa", "Europe", "North America"}, w.Regions.Keys())

	africa, ok := w.Region("Africa")
	require.True(t, ok)
	require.Equal(t, ImpactHigh, africa.Impact)
	require.Equal(t, TrendUp, africa.Trend)
	require.Equal(t, []string{"Economic Growth", "Climate Adaptation", "Digital Transformation"}, africa.KeyIssues)

	kenya, ok := africa.Country("Kenya")
	require.True(t, ok)
	require.Equal(t, []string{"Healthcare", "Technology", "Education"}, kenya.Sectors.Keys())

	europe, ok := w.Region("Europe")
	require.True(t, ok)
	require.Equal(t, TrendStable, europe.Trend)
	require.Zero(t, europe.Countries.Len())
}

func TestIssueLookups(t *testing.T) {
	t.Parallel()

	w := Default()
	issues, ok := w.Issues([]string{"Africa", "Kenya", "Healthcare"})
	require.True(t, ok)
	require.Len(t, issues, 2)
	require.Equal(t, 1, issues[0].ID)
	require.Equal(t, SeverityCritical, issues[1].Severity)

	is, ok := w.IssueByID(1)
	require.True(t, ok)
	require.Len(t, is.RelatedOpportunities, 2)
	require.Equal(t, "Digital Health Innovation Grant", is.RelatedOpportunities[0].Title)

	path, ok := w.PathOf(3)
	require.True(t, ok)
	require.Equal(t, []string{"Africa", "Kenya", "Technology"}, path)

	_, ok = w.IssueByID(99)
	require.False(t, ok)
	require.Equal(t, []int{1, 2, 3, 4}, w.IssueIDs())
}

func TestAccessorsDoNotAlias(t *testing.T) {
	t.Parallel()

	w := Default()
	is, _ := w.IssueByID(1)
	is.Stakeholders[0] = "changed"
	is.RelatedOpportunities[0].Match = 0

	again, _ := w.IssueByID(1)
	require.Equal(t, "Ministry of Health", again.Stakeholders[0])
	require.Equal(t, 94, again.RelatedOpportunities[0].Match)

	keys := w.Regions.Keys()
	keys[0] = "Atlantis"
	require.Equal(t, "Africa", w.Regions.Keys()[0])
}

func TestNodeAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	w := Default()
	r, ok := w.Region("Africa")
	require.True(t, ok)
	r.KeyIssues[0] = "changed"

	c, ok := r.Country("Kenya")
	require.True(t, ok)
	s, ok := c.Sector("Healthcare")
	require.True(t, ok)
	s.Issues[0].Title = "changed"
	s.Issues[0].Stakeholders[0] = "changed"

	for _, region := range w.Regions.All() {
		if len(region.KeyIssues) > 0 {
			region.KeyIssues[0] = "changed"
		}
		for _, country := range region.Countries.All() {
			for _, sector := range country.Sectors.All() {
				sector.Issues[0].Summary = "changed"
			}
		}
	}

	again, _ := w.Region("Africa")
	require.Equal(t, "Economic Growth", again.KeyIssues[0])

	issues, ok := w.Issues([]string{"Africa", "Kenya", "Healthcare"})
	require.True(t, ok)
	require.Equal(t, "Digital Health Infrastructure Expansion", issues[0].Title)
	require.Equal(t, "Ministry of Health", issues[0].Stakeholders[0])
	require.NotEqual(t, "changed", issues[0].Summary)

	tech, _ := w.Issues([]string{"Africa", "Kenya", "Technology"})
	require.NotEqual(t, "changed", tech[0].Summary)
}

func TestChildrenAndResolves(t *testing.T) {
	t.Parallel()

	w := Default()
	cases := []struct {
		path []string
		want []string
		ok   bool
	}{
		{nil, []string{"Africa", "Europe", "North America"}, true},
		{[]string{"Africa"}, []string{"Kenya"}, true},
		{[]string{"Europe"}, nil, true},
		{[]string{"Africa", "Kenya"}, []string{"Healthcare", "Technology", "Education"}, true},
		{[]string{"Atlantis"}, nil, false},
		{[]string{"Africa", "Kenya", "Healthcare"}, nil, false},
	}
	for _, tc := range cases {
		got, ok := w.Children(tc.path)
		require.Equal(t, tc.ok, ok, "path %v", tc.path)
		require.Equal(t, len(tc.want), len(got), "path %v", tc.path)
		for i := range tc.want {
			require.Equal(t, tc.want[i], got[i])
		}
	}

	require.True(t, w.Resolves([]string{"Africa", "Kenya", "Education"}))
	require.False(t, w.Resolves([]string{"Africa", "Kenya", "Mining"}))
	require.False(t, w.Resolves([]string{"a", "b", "c", "d"}))
}

func TestLoadRejectsInvalidData(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad impact": `
regions:
  X: {impact: extreme, trend: up, key_issues: []}
`,
		"stable issue trend": `
regions:
  X:
    impact: low
    trend: up
    countries:
      C:
        sectors:
          S:
            issues:
              - {id: 1, title: T, severity: high, trend: stable}
`,
		"duplicate issue id": `
regions:
  X:
    impact: low
    trend: up
    countries:
      C:
        sectors:
          S:
            issues:
              - {id: 7, title: A, severity: high, trend: up}
              - {id: 7, title: B, severity: medium, trend: down}
`,
		"match out of range": `
regions:
  X:
    impact: low
    trend: up
    countries:
      C:
        sectors:
          S:
            issues:
              - id: 1
                title: A
                severity: high
                trend: up
                related_opportunities:
                  - {title: O, type: Grant, amount: $1, match: 101}
`,
		"no regions": `regions: {}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestLoadDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader(""))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Load(strings.NewReader("regions:\n  A: {impact: low, trend: up}\n  A: {impact: low, trend: up}\n"))
	require.Error(t, err)
	require.Regexp(t, `duplicate key|already defined`, err.Error())

	_, err = Load(strings.NewReader("continents: {}\n"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("regions: [a, b]\n"))
	require.Error(t, err)
}

func TestLoadRejectsNestedUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader(`
regions:
  Asia:
    impact: high
    trend: up
    keyIssues: [Trade]
`))
	require.ErrorContains(t, err, "keyIssues")

	_, err = Load(strings.NewReader(`
regions:
  Asia:
    impact: high
    trend: up
    countries:
      Japan:
        sectors:
          Energy:
            issues:
              - {id: 9, title: Grid, severity: high, trend: up, relatedOpportunities: []}
`))
	require.ErrorContains(t, err, "relatedOpportunities")

	w, err := Load(strings.NewReader(`
regions:
  Asia:
    impact: high
    trend: up
    key_issues: [Trade]
    countries:
      Japan:
`))
	require.NoError(t, err)
	r, _ := w.Region("Asia")
	require.Equal(t, []string{"Trade"}, r.KeyIssues)
	require.Equal(t, []string{"Japan"}, r.Countries.Keys())
}

func TestOrderedMarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	w, err := Load(strings.NewReader(`
regions:
  Zeta: {impact: low, trend: up}
  Alpha: {impact: high, trend: down}
`))
	require.NoError(t, err)

	b, err := json.Marshal(w.Regions)
	require.NoError(t, err)
	require.Less(t, strings.Index(string(b), "Zeta"), strings.Index(string(b), "Alpha"))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	w := Default()

	hits := w.Search("kenya", 0)
	require.NotEmpty(t, hits)
	require.Equal(t, HitCountry, hits[0].Kind)
	require.Equal(t, 0, hits[0].Score)
	require.Equal(t, []string{"Africa", "Kenya"}, hits[0].Path)

	hits = w.Search("Afrika", 1)
	require.Len(t, hits, 1)
	require.Equal(t, "Africa", hits[0].Label)

	hits = w.Search("maternal", 0)
	require.Len(t, hits, 1)
	require.Equal(t, HitIssue, hits[0].Kind)
	require.Equal(t, 2, hits[0].IssueID)
	require.Equal(t, []string{"Africa", "Kenya", "Healthcare"}, hits[0].Path)

	require.Empty(t, w.Search("   ", 0))
	require.Empty(t, w.Search("zzzzzzzz", 0))
}

func TestClosest(t *testing.T) {
	t.Parallel()

	got, ok := Closest("Kenia", []string{"Kenya"})
	require.True(t, ok)
	require.Equal(t, "Kenya", got)

	got, ok = Closest("healthcar", []string{"Healthcare", "Technology", "Education"})
	require.True(t, ok)
	require.Equal(t, "Healthcare", got)

	_, ok = Closest("Mining", []string{"Healthcare", "Technology"})
	require.False(t, ok)

	_, ok = Closest("x", nil)
	require.False(t, ok)
}

func TestOverviewAndOpportunities(t *testing.T) {
	t.Parallel()

	w := Default()
	ov := w.Overview(80)
	require.Equal(t, Overview{
		Regions:              3,
		Countries:            1,
		Sectors:              3,
		ActiveIssues:         4,
		RelatedOpportunities: 8,
		Matches:              6,
	}, ov)

	opps := w.Opportunities()
	require.Len(t, opps, 8)
	require.Equal(t, 94, opps[0].Match)
	require.Equal(t, 1, opps[0].IssueID)
	require.Equal(t, 76, opps[len(opps)-1].Match)
	for i := 1; i < len(opps); i++ {
		require.GreaterOrEqual(t, opps[i-1].Match, opps[i].Match)
	}

	trending := w.Trending(3)
	require.Len(t, trending, 3)
	require.Equal(t, []int{2, 1, 4}, []int{trending[0].ID, trending[1].ID, trending[2].ID})
}
