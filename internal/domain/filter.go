package domain

import (
	"errors"
	"strings"
)

// Filter selects tasks by completion state.
type Filter string

// Possible filter values
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// DefaultFilter is used when a listing does not name a filter.
const DefaultFilter = FilterActive

// ErrInvalidFilter is returned for a filter name outside all/active/completed.
var ErrInvalidFilter = errors.New("invalid filter")

// ParseFilter converts a query value into a Filter. Blank input yields
// DefaultFilter; matching is case-insensitive.
func ParseFilter(value string) (Filter, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return DefaultFilter, nil
	}

	f := Filter(value)
	if !f.Valid() {
		return "", NewValidationError("filter", "must be one of all, active, completed", ErrInvalidFilter)
	}
	return f, nil
}

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether the task satisfies the filter predicate.
func (f Filter) Matches(task Task) bool {
	switch f {
	case FilterActive:
		return !task.Done
	case FilterCompleted:
		return task.Done
	default:
		return true
	}
}
