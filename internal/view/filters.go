package view

import (
	"fmt"
	"strings"

	"github.com/jask/worldinsights/internal/dataset"
)

type SeverityFilter string

const (
	SeverityAll      SeverityFilter = "all"
	SeverityCritical SeverityFilter = "critical"
	SeverityHigh     SeverityFilter = "high"
	SeverityMedium   SeverityFilter = "medium"
)

var severityFilters = []SeverityFilter{SeverityAll, SeverityCritical, SeverityHigh, SeverityMedium}

// Allows reports whether an issue of severity s passes the filter. The
// zero value allows everything.
func (f SeverityFilter) Allows(s dataset.Severity) bool {
	if f == "" || f == SeverityAll {
		return true
	}
	return string(f) == string(s)
}

func (f SeverityFilter) Label() string {
	if f == "" || f == SeverityAll {
		return "All Severity"
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// TimeFilter narrows issues by recency. The dataset carries no dates, so
// every value currently admits every issue.
type TimeFilter string

const (
	TimeAll   TimeFilter = "all"
	TimeWeek  TimeFilter = "week"
	TimeMonth TimeFilter = "month"
)

var timeFilters = []TimeFilter{TimeAll, TimeWeek, TimeMonth}

func (f TimeFilter) Label() string {
	switch f {
	case TimeWeek:
		return "This Week"
	case TimeMonth:
		return "This Month"
	}
	return "All Time"
}

type Filters struct {
	Time     TimeFilter     `json:"time"`
	Severity SeverityFilter `json:"severity"`
}

func DefaultFilters() Filters {
	return Filters{Time: TimeAll, Severity: SeverityAll}
}

func ParseSeverityFilter(s string) (SeverityFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SeverityAll, nil
	}
	for _, f := range severityFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return SeverityAll, fmt.Errorf("unknown severity filter %q", s)
}

func ParseTimeFilter(s string) (TimeFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TimeAll, nil
	}
	for _, f := range timeFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return TimeAll, fmt.Errorf("unknown time filter %q", s)
}

// NextSeverity cycles all → critical → high → medium → all.
func (f Filters) NextSeverity() Filters {
	f.Severity = next(severityFilters, f.Severity)
	return f
}

// NextTime cycles all → week → month → all.
func (f Filters) NextTime() Filters {
	f.Time = next(timeFilters, f.Time)
	return f
}

func next[T comparable](order []T, cur T) T {
	for i, v := range order {
		if v == cur {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
