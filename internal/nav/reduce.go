package nav

import (
	"errors"
	"fmt"

	"github.com/jask/worldinsights/internal/dataset"
)

var (
	ErrLevelMismatch = errors.New("descend level does not follow current level")
	ErrAtLeaf        = errors.New("already at sector level")
	ErrUnknownKey    = errors.New("unknown key")
	ErrUnknownIssue  = errors.New("unknown issue")
)

// UnknownKeyError is returned when descending into a key that is not a
// child of the current node. It matches ErrUnknownKey with errors.Is.
type UnknownKeyError struct {
	Level      Level
	Key        string
	Suggestion string
}

func (e *UnknownKeyError) Error() string {
	msg := fmt.Sprintf("unknown %s %q", e.Level, e.Key)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *UnknownKeyError) Unwrap() error { return ErrUnknownKey }

// Action is a navigation transition.
type Action interface {
	isAction()
}

// Descend moves one level down into Key. Level must name the level being
// entered.
type Descend struct {
	Level Level
	Key   string
}

// Back pops the last path segment. It leaves the issue overlay alone.
type Back struct{}

type SelectIssue struct {
	ID int
}

type ClearIssue struct{}

// Reset returns to the initial state.
type Reset struct{}

func (Descend) isAction()     {}
func (Back) isAction()        {}
func (SelectIssue) isAction() {}
func (ClearIssue) isAction()  {}
func (Reset) isAction()       {}

// Reduce applies a to s. On error the input state is returned unchanged.
func Reduce(w *dataset.World, s State, a Action) (State, error) {
	switch a := a.(type) {
	case Descend:
		return descend(w, s, a)
	case Back:
		if len(s.path) == 0 {
			return s, nil
		}
		next := s
		next.path = s.Path()[:len(s.path)-1]
		return next, nil
	case SelectIssue:
		if _, ok := w.IssueByID(a.ID); !ok {
			return s, fmt.Errorf("%w: %d", ErrUnknownIssue, a.ID)
		}
		next := s
		next.path = s.Path()
		next.issueID, next.hasIssue = a.ID, true
		return next, nil
	case ClearIssue:
		next := s
		next.path = s.Path()
		next.issueID, next.hasIssue = 0, false
		return next, nil
	case Reset:
		return New(), nil
	case nil:
		return s, errors.New("nil action")
	}
	return s, fmt.Errorf("unsupported action %T", a)
}

func descend(w *dataset.World, s State, a Descend) (State, error) {
	if len(s.path) >= dataset.MaxDepth {
		return s, ErrAtLeaf
	}
	want := levelFor(len(s.path) + 1)
	if a.Level != want {
		return s, fmt.Errorf("%w: at %s, asked for %s", ErrLevelMismatch, s.Level(), a.Level)
	}
	children, ok := w.Children(s.path)
	if !ok {
		return s, &UnknownKeyError{Level: want, Key: a.Key}
	}
	found := false
	for _, c := range children {
		if c == a.Key {
			found = true
			break
		}
	}
	if !found {
		suggestion, _ := dataset.Closest(a.Key, children)
		return s, &UnknownKeyError{Level: want, Key: a.Key, Suggestion: suggestion}
	}
	next := s
	next.path = append(s.Path(), a.Key)
	return next, nil
}

// Walk descends through path from the world state, stopping at the first
// error. It is how CLI and search jumps reach a deep position.
func Walk(w *dataset.World, path []string) (State, error) {
	s := New()
	for i, key := range path {
		var err error
		s, err = Reduce(w, s, Descend{Level: levelFor(i + 1), Key: key})
		if err != nil {
			return s, err
		}
	}
	return s, nil
}
