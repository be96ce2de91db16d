// Package filter narrows a fetched entity list locally, without another
// round trip to the backend.
package filter

import (
	"fmt"
	"strings"
)

// Tristate is the active-flag criterion.
type Tristate int

const (
	Any Tristate = iota
	ActiveOnly
	InactiveOnly
)

func (t Tristate) String() string {
	switch t {
	case ActiveOnly:
		return "active"
	case InactiveOnly:
		return "inactive"
	default:
		return "all"
	}
}

// ParseTristate accepts the --status flag values all, active and inactive.
func ParseTristate(value string) (Tristate, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all", "any":
		return Any, nil
	case "active", "true":
		return ActiveOnly, nil
	case "inactive", "false":
		return InactiveOnly, nil
	default:
		return Any, fmt.Errorf("invalid status %q (use all, active, inactive)", value)
	}
}

// Matches reports whether an entity with the given flag passes. A nil flag
// is unknown and only passes Any.
func (t Tristate) Matches(active *bool) bool {
	switch t {
	case Any:
		return true
	case ActiveOnly:
		return active != nil && *active
	case InactiveOnly:
		return active != nil && !*active
	default:
		return false
	}
}

// Apply returns the elements of list accepted by match, in their original
// order. It never mutates list.
func Apply[T, C any](list []T, criteria C, match func(T, C) bool) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if match(item, criteria) {
			out = append(out, item)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
