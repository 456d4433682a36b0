package dataset

import (
	"slices"
	"sort"
)

// MaxDepth is the number of keyed levels below the world: region, country, sector.
const MaxDepth = 3

func (w *World) Region(name string) (Region, bool) { return w.Regions.Get(name) }

func (r Region) Country(name string) (Country, bool) { return r.Countries.Get(name) }

func (c Country) Sector(name string) (Sector, bool) { return c.Sectors.Get(name) }

// Children returns the keys one level below path. It reports false when
// path does not resolve or already names a sector, whose children are
// issues rather than keys.
func (w *World) Children(path []string) ([]string, bool) {
	switch len(path) {
	case 0:
		return w.Regions.Keys(), true
	case 1:
		r, ok := w.Region(path[0])
		if !ok {
			return nil, false
		}
		return r.Countries.Keys(), true
	case 2:
		c, ok := w.country(path[0], path[1])
		if !ok {
			return nil, false
		}
		return c.Sectors.Keys(), true
	}
	return nil, false
}

// Resolves reports whether every segment of path exists.
func (w *World) Resolves(path []string) bool {
	switch len(path) {
	case 0:
		return true
	case 1:
		_, ok := w.Region(path[0])
		return ok
	case 2:
		_, ok := w.country(path[0], path[1])
		return ok
	case 3:
		_, ok := w.sector(path[0], path[1], path[2])
		return ok
	}
	return false
}

// Issues returns a copy of the issues in the sector named by a full path.
func (w *World) Issues(path []string) ([]Issue, bool) {
	if len(path) != MaxDepth {
		return nil, false
	}
	s, ok := w.sector(path[0], path[1], path[2])
	if !ok {
		return nil, false
	}
	out := make([]Issue, len(s.Issues))
	for i, is := range s.Issues {
		out[i] = is.clone()
	}
	return out, true
}

func (w *World) IssueByID(id int) (Issue, bool) {
	ref, ok := w.issues[id]
	if !ok {
		return Issue{}, false
	}
	return ref.issue.clone(), true
}

// PathOf returns the region/country/sector path holding the issue.
func (w *World) PathOf(id int) ([]string, bool) {
	ref, ok := w.issues[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(ref.path[:]), true
}

// IssueIDs returns every issue id in ascending order.
func (w *World) IssueIDs() []int {
	ids := make([]int, 0, len(w.issues))
	for id := range w.issues {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (w *World) country(region, country string) (Country, bool) {
	r, ok := w.Region(region)
	if !ok {
		return Country{}, false
	}
	return r.Country(country)
}

func (w *World) sector(region, country, sector string) (Sector, bool) {
	c, ok := w.country(region, country)
	if !ok {
		return Sector{}, false
	}
	return c.Sector(sector)
}
