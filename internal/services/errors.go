package services

import (
	"fmt"
)

// HydrationError reports one item of a collection that could not be
// hydrated. Collection-level operations collect these alongside the items
// that did hydrate instead of discarding the whole result.
type HydrationError struct {
	Entity string
	UUID   string
	Err    error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("failed to hydrate %s %q: %v", e.Entity, e.UUID, e.Err)
}

func (e *HydrationError) Unwrap() error {
	return e.Err
}

func appendUnique(list []string, value string) []string {
	for _, item := range list {
		if item == value {
			return list
		}
	}
	return append(list, value)
}

func removeString(list []string, value string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}
