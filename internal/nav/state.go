// Package nav is the drill-down navigation state machine.
//
// A State is a path of selected keys (region, country, sector) and an
// optional issue overlay. The level is always derived from the path length.
// States change only through Reduce.
package nav

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jask/worldinsights/internal/dataset"
)

type Level int

const (
	World Level = iota
	Region
	Country
	Sector
)

func (l Level) String() string {
	switch l {
	case World:
		return "world"
	case Region:
		return "region"
	case Country:
		return "country"
	case Sector:
		return "sector"
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel accepts the names produced by Level.String.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "world":
		return World, nil
	case "region":
		return Region, nil
	case "country":
		return Country, nil
	case "sector":
		return Sector, nil
	}
	return World, fmt.Errorf("unknown level %q", s)
}

// levelFor maps a path length to its level.
func levelFor(depth int) Level {
	return Level(min(max(depth, 0), dataset.MaxDepth))
}

// ErrTooDeep is returned when a path has more segments than there are levels.
var ErrTooDeep = errors.New("path deeper than sector level")

// State is a navigation position. The zero value is the initial state:
// world level, empty path, no issue selected.
type State struct {
	path     []string
	issueID  int
	hasIssue bool
}

func New() State { return State{} }

// FromPath builds a state at path without checking that the keys exist.
// Rendering such a state degrades to empty lists.
func FromPath(path []string) (State, error) {
	if len(path) > dataset.MaxDepth {
		return State{}, fmt.Errorf("%w: %d segments", ErrTooDeep, len(path))
	}
	return State{path: slices.Clone(path)}, nil
}

func (s State) Level() Level { return levelFor(len(s.path)) }

func (s State) Path() []string { return slices.Clone(s.path) }

func (s State) Depth() int { return len(s.path) }

// Issue returns the overlay issue id, if one is selected.
func (s State) Issue() (int, bool) { return s.issueID, s.hasIssue }

// Breadcrumbs is the path prefixed with the world root.
func (s State) Breadcrumbs() []string {
	return append([]string{"World"}, s.path...)
}

// Equal reports whether two states have the same path and overlay.
func (s State) Equal(o State) bool {
	return slices.Equal(s.path, o.path) && s.hasIssue == o.hasIssue && s.issueID == o.issueID
}

// String renders the state as "Africa/Kenya" or "Africa/Kenya#2" with an
// issue overlay. The world state renders as "/".
func (s State) String() string {
	out := "/" + strings.Join(s.path, "/")
	if len(s.path) > 0 {
		out = out[1:]
	}
	if s.hasIssue {
		out += "#" + strconv.Itoa(s.issueID)
	}
	return out
}

// ParsePath splits a slash-separated path, ignoring empty segments.
func ParsePath(raw string) []string {
	var out []string
	for _, seg := range strings.Split(raw, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
