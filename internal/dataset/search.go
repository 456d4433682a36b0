package dataset

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type HitKind string

const (
	HitRegion  HitKind = "region"
	HitCountry HitKind = "country"
	HitSector  HitKind = "sector"
	HitIssue   HitKind = "issue"
)

func (k HitKind) order() int {
	switch k {
	case HitRegion:
		return 0
	case HitCountry:
		return 1
	case HitSector:
		return 2
	}
	return 3
}

// Hit is one search result. Path locates the node; for issues it is the
// sector path and IssueID names the issue inside it.
type Hit struct {
	Kind    HitKind  `json:"kind"`
	Label   string   `json:"label"`
	Path    []string `json:"path"`
	IssueID int      `json:"issue_id,omitempty"`
	Score   int      `json:"score"`
}

// Search matches query against region, country and sector names and issue
// titles. Exact matches score 0, prefixes 1, substrings 2, and anything
// within a small edit distance of the label or one of its words scores
// 3 plus that distance. Lower is better. limit <= 0 returns all hits.
func (w *World) Search(query string, limit int) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var hits []Hit
	add := func(kind HitKind, label string, path []string, id int) {
		if score, ok := matchScore(q, strings.ToLower(label)); ok {
			hits = append(hits, Hit{Kind: kind, Label: label, Path: path, IssueID: id, Score: score})
		}
	}
	for rname, region := range w.Regions.All() {
		add(HitRegion, rname, []string{rname}, 0)
		for cname, country := range region.Countries.All() {
			add(HitCountry, cname, []string{rname, cname}, 0)
			for sname, sector := range country.Sectors.All() {
				add(HitSector, sname, []string{rname, cname, sname}, 0)
				for _, is := range sector.Issues {
					add(HitIssue, is.Title, []string{rname, cname, sname}, is.ID)
				}
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score < hits[j].Score
		}
		return hits[i].Kind.order() < hits[j].Kind.order()
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func matchScore(q, label string) (int, bool) {
	switch {
	case label == q:
		return 0, true
	case strings.HasPrefix(label, q):
		return 1, true
	case strings.Contains(label, q):
		return 2, true
	}
	best := levenshtein.ComputeDistance(q, label)
	for _, word := range strings.Fields(label) {
		best = min(best, levenshtein.ComputeDistance(q, word))
	}
	if best <= tolerance(q) {
		return 3 + best, true
	}
	return 0, false
}

func tolerance(q string) int {
	return max(1, len([]rune(q))/3)
}

// Closest returns the candidate nearest to key by edit distance, ignoring
// case, if it is close enough to be a plausible typo.
func Closest(key string, candidates []string) (string, bool) {
	k := strings.ToLower(key)
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(k, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len([]rune(key))/2) {
		return "", false
	}
	return best, true
}
