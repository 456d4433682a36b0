package dataset

import (
	"slices"
	"sort"
)

// OpportunityRef is an opportunity together with the issue it came from.
type OpportunityRef struct {
	Opportunity
	IssueID    int      `json:"issue_id"`
	IssueTitle string   `json:"issue_title"`
	Path       []string `json:"path"`
}

// Opportunities flattens every related opportunity in the dataset, best
// match first. Ties keep dataset order.
func (w *World) Opportunities() []OpportunityRef {
	var out []OpportunityRef
	for _, id := range w.IssueIDs() {
		ref := w.issues[id]
		for _, o := range ref.issue.RelatedOpportunities {
			out = append(out, OpportunityRef{
				Opportunity: o,
				IssueID:     id,
				IssueTitle:  ref.issue.Title,
				Path:        slices.Clone(ref.path[:]),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Match > out[j].Match })
	return out
}

type Overview struct {
	Regions              int `json:"regions"`
	Countries            int `json:"countries"`
	Sectors              int `json:"sectors"`
	ActiveIssues         int `json:"active_issues"`
	RelatedOpportunities int `json:"related_opportunities"`
	Matches              int `json:"matches"`
}

// Overview counts the dataset. Matches counts opportunities whose match is
// at least threshold.
func (w *World) Overview(threshold int) Overview {
	ov := Overview{Regions: w.Regions.Len()}
	for _, region := range w.Regions.All() {
		ov.Countries += region.Countries.Len()
		for _, country := range region.Countries.All() {
			ov.Sectors += country.Sectors.Len()
		}
	}
	for _, ref := range w.issues {
		ov.ActiveIssues++
		ov.RelatedOpportunities += len(ref.issue.RelatedOpportunities)
		for _, o := range ref.issue.RelatedOpportunities {
			if o.Match >= threshold {
				ov.Matches++
			}
		}
	}
	return ov
}

// Trending returns up to limit issues ordered by severity, then by their
// best opportunity match, then by id.
func (w *World) Trending(limit int) []Issue {
	ids := w.IssueIDs()
	out := make([]Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.issues[id].issue.clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		return a.BestMatch() > b.BestMatch()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
